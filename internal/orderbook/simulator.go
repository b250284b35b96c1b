package orderbook

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ndrandal/clobsim/internal/engine"
)

// batchSize is the number of orders generated between pacing checks,
// matching both the teacher's runSimulation loop and the original C++
// reference's BATCH_SIZE = 10000.
const batchSize = 10_000

// Stats is a live, individually-atomic snapshot of simulator counters.
// Readers may observe inconsistent tuples (e.g. High updated before
// Current) — spec.md §5 explicitly permits this.
type Stats struct {
	ordersGenerated atomic.Uint64
	tradesExecuted  atomic.Uint64
	currentPrice    atomic.Uint64 // bits of a float64
	highPrice       atomic.Uint64
	lowPrice        atomic.Uint64
	ordersPerSecond atomic.Uint64
	running         atomic.Bool
}

// StatsSnapshot is a plain-value copy of Stats for callers that want a
// consistent-looking struct to pass around (it is still assembled from
// independently-read atomics, so it carries the same tearing caveat).
type StatsSnapshot struct {
	OrdersGenerated uint64
	TradesExecuted  uint64
	CurrentPrice    float64
	HighPrice       float64
	LowPrice        float64
	OrdersPerSecond float64
	Running         bool
}

func (s *Stats) snapshot() StatsSnapshot {
	return StatsSnapshot{
		OrdersGenerated: s.ordersGenerated.Load(),
		TradesExecuted:  s.tradesExecuted.Load(),
		CurrentPrice:    loadFloat(&s.currentPrice),
		HighPrice:       loadFloat(&s.highPrice),
		LowPrice:        loadFloat(&s.lowPrice),
		OrdersPerSecond: loadFloat(&s.ordersPerSecond),
		Running:         s.running.Load(),
	}
}

func loadFloat(a *atomic.Uint64) float64 {
	return math.Float64frombits(a.Load())
}

func storeFloat(a *atomic.Uint64, v float64) {
	a.Store(math.Float64bits(v))
}

// PriceCallback is invoked every interval generated orders with the
// current price and the total order count so far.
type PriceCallback func(price float64, totalOrders uint64)

// Simulator drives a Book with a continuous stream of synthetic limit
// orders that statistically resemble a two-sided market, per spec.md
// §4.2. It is the single-symbol counterpart of the teacher's
// orderbook.Simulator, replacing that type's ITCH add/cancel/replace/
// trade action mix with the spec's price-process-driven order generator.
type Simulator struct {
	rng  *engine.RNG
	book *Book
	proc *engine.PriceProcess

	stats Stats

	mu       sync.Mutex // guards start/stop transitions
	wg       sync.WaitGroup
	stopCh   chan struct{}
	started  bool

	callbackMu sync.Mutex
	callback   PriceCallback
	callbackN  uint64
}

// NewSimulator creates a simulator driving book, seeded from rng, with a
// mean-reverting price process anchored at basePrice.
func NewSimulator(rng *engine.RNG, book *Book, basePrice float64) *Simulator {
	s := &Simulator{
		rng:  rng,
		book: book,
		proc: engine.NewPriceProcess(rng, basePrice),
	}
	storeFloat(&s.stats.currentPrice, basePrice)
	storeFloat(&s.stats.highPrice, basePrice)
	storeFloat(&s.stats.lowPrice, basePrice)
	return s
}

// Book returns the underlying order book.
func (s *Simulator) Book() *Book { return s.book }

// SetPriceCallback registers a handler invoked every interval generated
// orders with the current price and cumulative order count. interval
// must be at least 1.
func (s *Simulator) SetPriceCallback(fn PriceCallback, interval uint64) {
	if interval < 1 {
		interval = 1
	}
	s.callbackMu.Lock()
	s.callback = fn
	s.callbackN = interval
	s.callbackMu.Unlock()
}

// Start begins generating orders at targetOPS on a dedicated goroutine.
// Calling Start while already running is a no-op.
func (s *Simulator) Start(targetOPS uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	if targetOPS == 0 {
		targetOPS = 1
	}
	s.started = true
	s.stats.running.Store(true)
	s.stopCh = make(chan struct{})

	s.wg.Add(1)
	go s.run(targetOPS, s.stopCh)
}

// Stop signals the worker to exit and waits for it to finish. Safe to
// call repeatedly, including when never started.
func (s *Simulator) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	close(s.stopCh)
	s.started = false
	s.mu.Unlock()

	s.wg.Wait()
	s.stats.running.Store(false)
}

// GetStats returns a point-in-time snapshot of the simulator's counters.
// Safe to call concurrently with the running worker.
func (s *Simulator) GetStats() StatsSnapshot {
	return s.stats.snapshot()
}

func (s *Simulator) run(targetOPS uint64, stop <-chan struct{}) {
	defer s.wg.Done()

	start := time.Now()
	var generated uint64

	for {
		for i := 0; i < batchSize; i++ {
			select {
			case <-stop:
				return
			default:
			}

			s.generateOrder()
			generated++
			s.stats.ordersGenerated.Add(1)

			s.fireCallback(generated)
		}

		elapsed := time.Since(start).Seconds()
		if elapsed > 0 {
			storeFloat(&s.stats.ordersPerSecond, float64(generated)/elapsed)
		}

		expected := float64(generated) / float64(targetOPS)
		if elapsed < expected {
			select {
			case <-stop:
				return
			case <-time.After(time.Duration((expected - elapsed) * float64(time.Second))):
			}
		}

		s.stats.tradesExecuted.Store(s.book.TradeCount())
	}
}

func (s *Simulator) fireCallback(generated uint64) {
	s.callbackMu.Lock()
	cb, n := s.callback, s.callbackN
	s.callbackMu.Unlock()
	if cb != nil && n > 0 && generated%n == 0 {
		cb(s.proc.Current(), generated)
	}
}

// generateOrder advances the price process one step and submits a single
// randomized limit order straddling the new price, per spec.md §4.2.
func (s *Simulator) generateOrder() {
	price := s.proc.Step()
	storeFloat(&s.stats.currentPrice, price)
	storeFloat(&s.stats.highPrice, s.proc.High())
	storeFloat(&s.stats.lowPrice, s.proc.Low())

	side := Bid
	if s.rng.Float64() < 0.5 {
		side = Ask
	}

	spreadOffset := 0.5 + s.rng.Float64()*4.5 // U(0.5, 5.0)
	var limitPrice float64
	if side == Bid {
		limitPrice = price - spreadOffset
	} else {
		limitPrice = price + spreadOffset
	}
	if limitPrice <= 0 {
		limitPrice = s.book.TickSize()
	}

	size := 0.001 + s.rng.Float64()*1.999 // U(0.001, 2.0)

	s.book.AddOrder(side, limitPrice, size)
}
