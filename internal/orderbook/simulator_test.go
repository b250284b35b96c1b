package orderbook

import (
	"testing"
	"time"

	"github.com/ndrandal/clobsim/internal/engine"
)

func TestSimulatorGeneratesOrdersAndTrades(t *testing.T) {
	book := NewBook("SIM", 0.01)
	sim := NewSimulator(engine.NewRNG(1), book, 100.0)

	sim.Start(2000)
	time.Sleep(50 * time.Millisecond)
	sim.Stop()

	stats := sim.GetStats()
	if stats.OrdersGenerated == 0 {
		t.Fatal("simulator should have generated orders")
	}
	if stats.Running {
		t.Fatal("stats should report not-running after Stop")
	}
	if book.OrderCount() == 0 {
		t.Fatal("generated orders should have reached the book")
	}
	if book.TradeCount() == 0 {
		t.Fatal("generated order flow should have produced trades")
	}
}

func TestSimulatorStartStopIdempotent(t *testing.T) {
	book := NewBook("SIM", 0.01)
	sim := NewSimulator(engine.NewRNG(2), book, 100.0)

	sim.Start(1000)
	sim.Start(1000) // no-op, must not spawn a second worker
	sim.Stop()
	sim.Stop() // no-op, must not block or panic

	if sim.GetStats().Running {
		t.Fatal("simulator should report stopped")
	}
}

func TestSimulatorPriceCallbackFires(t *testing.T) {
	book := NewBook("SIM", 0.01)
	sim := NewSimulator(engine.NewRNG(3), book, 100.0)

	var calls int
	sim.SetPriceCallback(func(price float64, total uint64) {
		calls++
	}, 50)

	sim.Start(5000)
	time.Sleep(50 * time.Millisecond)
	sim.Stop()

	if calls == 0 {
		t.Fatal("price callback should have fired at least once")
	}
}
