package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ndrandal/clobsim/internal/config"
	"github.com/ndrandal/clobsim/internal/engine"
	"github.com/ndrandal/clobsim/internal/feed"
	"github.com/ndrandal/clobsim/internal/orderbook"
	"github.com/ndrandal/clobsim/internal/telemetry"
)

func main() {
	cfg := config.Load()

	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
	log.Println("matching engine starting")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Printf("received signal %v, shutting down...", sig)
		cancel()
	}()

	rng := engine.NewRNG(cfg.Seed)
	log.Printf("PRNG seed: %d", cfg.Seed)

	book := orderbook.NewBook(cfg.Symbol, cfg.TickSize)
	book.SetTradeCallback(func(tr orderbook.Trade) {
		log.Printf("trade %s @ %.2f x %.4f (bid=%d ask=%d)", cfg.Symbol, tr.Price, tr.Quantity, tr.BidOrderID, tr.AskOrderID)
	})

	sim := orderbook.NewSimulator(rng, book, cfg.BasePrice)

	mgr := feed.NewManager(cfg.SendBufferSize)

	sampler := telemetry.NewSampler(cfg.Symbol, book, sim)
	go sampler.Run(ctx, cfg.BroadcastInterval, func(snap telemetry.Snapshot) {
		if mgr.ClientCount() == 0 {
			return
		}
		data, err := json.Marshal(snap)
		if err != nil {
			log.Printf("telemetry encode error: %v", err)
			return
		}
		mgr.Broadcast(data)
	})

	sim.Start(cfg.TargetOPS)
	log.Printf("simulator started: symbol=%s target_ops=%d base_price=%.2f", cfg.Symbol, cfg.TargetOPS, cfg.BasePrice)

	mux := http.NewServeMux()
	mux.HandleFunc("/feed", feed.Handler(mgr))
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","symbol":%q,"clients":%d,"orders":%d,"trades":%d}`,
			cfg.Symbol, mgr.ClientCount(), book.OrderCount(), book.TradeCount())
	})

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		<-ctx.Done()
		sim.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("WebSocket server listening on ws://%s/feed", addr)
	log.Printf("Health check: http://%s/health", addr)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}

	log.Println("matching engine stopped")
}
