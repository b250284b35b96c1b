package telemetry

import (
	"context"
	"time"

	"github.com/ndrandal/clobsim/internal/orderbook"
)

const depthLevels = 10

// Sampler periodically reads a Book and its driving Simulator and
// produces Snapshot values. It submits no orders and holds no reference
// into book-owned memory beyond the duration of a single read — it is
// the pure reader spec.md §4.3 and §5 describe.
type Sampler struct {
	symbol string
	book   *orderbook.Book
	sim    *orderbook.Simulator
}

// NewSampler creates a sampler for book, reporting sim's stats under symbol.
func NewSampler(symbol string, book *orderbook.Book, sim *orderbook.Simulator) *Sampler {
	return &Sampler{symbol: symbol, book: book, sim: sim}
}

// Sample takes one immediate reading. The fields are read independently
// of one another (via the book's RWMutex-guarded accessors and the
// simulator's atomic stats) and may not represent a single consistent
// instant; spec.md §5 explicitly permits this.
func (s *Sampler) Sample(now time.Time) Snapshot {
	stats := s.sim.GetStats()

	return Snapshot{
		Type:      "telemetry",
		Timestamp: now.UnixMilli(),
		Symbol:    s.symbol,

		Price: stats.CurrentPrice,
		High:  stats.HighPrice,
		Low:   stats.LowPrice,

		BestBid:  s.book.BestBid(),
		BestAsk:  s.book.BestAsk(),
		Spread:   s.book.Spread(),
		MidPrice: s.book.MidPrice(),

		OrdersPerSecond: uint64(stats.OrdersPerSecond),
		TotalOrders:     stats.OrdersGenerated,
		TotalTrades:     stats.TradesExecuted,

		Bids: toDepthLevels(s.book.TopBids(depthLevels)),
		Asks: toDepthLevels(s.book.TopAsks(depthLevels)),
	}
}

func toDepthLevels(entries []orderbook.DepthEntry) []DepthLevel {
	out := make([]DepthLevel, len(entries))
	for i, e := range entries {
		out[i] = DepthLevel{Price: e.Price, Size: e.Quantity}
	}
	return out
}

// Run samples every interval and calls publish with each Snapshot, until
// ctx is canceled. Intended to run on its own goroutine.
func (s *Sampler) Run(ctx context.Context, interval time.Duration, publish func(Snapshot)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			publish(s.Sample(t))
		}
	}
}
