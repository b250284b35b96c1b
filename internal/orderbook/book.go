package orderbook

import (
	"sync"
	"time"
)

// DepthEntry is one aggregated price level as returned by TopBids/TopAsks.
type DepthEntry struct {
	Price    float64
	Quantity float64
}

// Book is a price-time-priority limit order book for a single symbol.
// Bids and asks are each a red-black tree of PriceLevel queues (rbtree.go,
// pricelevel.go); orderIndex is a non-owning O(1) lookup from order id to
// the order's location within its queue (order.go's intrusive links).
//
// Mutating methods take the write lock; read-only snapshot methods take
// the read lock — option (a) of the two conforming reader policies this
// system documents (a lightweight shared lock around the book's
// containers), adapted from the teacher's orderbook.Book.
type Book struct {
	mu sync.RWMutex

	symbol   string
	tickSize float64

	bids *levelTree
	asks *levelTree

	orderIndex map[uint64]*Order

	nextOrderID    uint64
	tradeCount     uint64
	lastTradeTicks int64
	lastTimestamp  int64

	tradeCallback func(Trade)
}

// NewBook creates an empty order book. tickSize must be positive; if zero
// is passed, DefaultTickSize is used.
func NewBook(symbol string, tickSize float64) *Book {
	if tickSize <= 0 {
		tickSize = DefaultTickSize
	}
	return &Book{
		symbol:      symbol,
		tickSize:    tickSize,
		bids:        newLevelTree(),
		asks:        newLevelTree(),
		orderIndex:  make(map[uint64]*Order),
		nextOrderID: 1,
	}
}

// Symbol returns the book's symbol label.
func (b *Book) Symbol() string { return b.symbol }

// TickSize returns the book's price tick size.
func (b *Book) TickSize() float64 { return b.tickSize }

// SetTradeCallback registers a handler invoked synchronously, in match
// order, for each trade. Replaces any previously registered handler.
// Must not be called concurrently with AddOrder/CancelOrder/Clear.
func (b *Book) SetTradeCallback(fn func(Trade)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tradeCallback = fn
}

// AddOrder submits a new limit order, runs matching against the opposite
// side, and — if any quantity remains — rests the residue. It returns the
// assigned order id, or 0 if the order was fully filled or rejected for a
// non-positive price or quantity. A rejected order consumes no id.
//
// Trade callbacks fire synchronously, in match order, before AddOrder
// returns. The book's own state is fully updated for a fill before the
// callback for that fill runs.
func (b *Book) AddOrder(side Side, price, quantity float64) uint64 {
	if price <= 0 || quantity <= 0 {
		return 0
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	priceTicks := toTicks(price, b.tickSize)
	units := toMicroUnits(quantity)
	if priceTicks <= 0 || units <= 0 {
		return 0
	}

	id := b.nextOrderID
	b.nextOrderID++

	o := &Order{
		ID:              id,
		Side:            side,
		PriceTicks:      priceTicks,
		RemainingUnits:  units,
		SubmitTimestamp: b.nextTimestamp(),
	}

	b.match(o)

	if o.Filled() {
		return 0
	}

	b.restOrder(o)
	return id
}

// CancelOrder removes a resting order by id. Returns true if the order
// existed and was resting (false if unknown or already filled/canceled).
func (b *Book) CancelOrder(id uint64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	o, ok := b.orderIndex[id]
	if !ok {
		return false
	}
	delete(b.orderIndex, id)

	level := b.levelFor(o.Side, o.PriceTicks)
	if level == nil {
		return false
	}
	level.unlink(o)
	if level.empty() {
		b.removeLevel(o.Side, o.PriceTicks)
	}
	return true
}

// Clear drops all resting orders and resets the trade counter. It does
// not reset the order id sequence.
func (b *Book) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.bids = newLevelTree()
	b.asks = newLevelTree()
	b.orderIndex = make(map[uint64]*Order)
	b.tradeCount = 0
}

// BestBid returns the best (highest) bid price, or 0 if there are no bids.
func (b *Book) BestBid() float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if lvl := b.bids.max(); lvl != nil {
		return fromTicks(lvl.PriceTicks, b.tickSize)
	}
	return 0
}

// BestAsk returns the best (lowest) ask price, or 0 if there are no asks.
func (b *Book) BestAsk() float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if lvl := b.asks.min(); lvl != nil {
		return fromTicks(lvl.PriceTicks, b.tickSize)
	}
	return 0
}

// Spread returns BestAsk - BestBid, or 0 unless both sides have orders.
func (b *Book) Spread() float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	bidLvl, askLvl := b.bids.max(), b.asks.min()
	if bidLvl == nil || askLvl == nil {
		return 0
	}
	return fromTicks(askLvl.PriceTicks-bidLvl.PriceTicks, b.tickSize)
}

// MidPrice returns the arithmetic mean of the best bid and ask when both
// sides are present, or the last trade price otherwise.
func (b *Book) MidPrice() float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	bidLvl, askLvl := b.bids.max(), b.asks.min()
	if bidLvl == nil || askLvl == nil {
		return fromTicks(b.lastTradeTicks, b.tickSize)
	}
	return fromTicks(bidLvl.PriceTicks+askLvl.PriceTicks, b.tickSize) / 2
}

// LastPrice returns the price of the most recent trade, or 0 if none.
func (b *Book) LastPrice() float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return fromTicks(b.lastTradeTicks, b.tickSize)
}

// BidLevels returns the number of distinct bid price levels.
func (b *Book) BidLevels() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.bids.Size()
}

// AskLevels returns the number of distinct ask price levels.
func (b *Book) AskLevels() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.asks.Size()
}

// TradeCount returns the number of trades emitted since construction or
// the last Clear.
func (b *Book) TradeCount() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tradeCount
}

// OrderCount returns the number of order ids issued so far.
func (b *Book) OrderCount() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.nextOrderID - 1
}

// TopBids returns up to n aggregated bid levels, highest price first.
func (b *Book) TopBids(n int) []DepthEntry {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.topLevels(b.bids, n, true)
}

// TopAsks returns up to n aggregated ask levels, lowest price first.
func (b *Book) TopAsks(n int) []DepthEntry {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.topLevels(b.asks, n, false)
}

func (b *Book) topLevels(t *levelTree, n int, descending bool) []DepthEntry {
	if n <= 0 {
		return nil
	}
	out := make([]DepthEntry, 0, n)
	visit := func(lvl *PriceLevel) bool {
		out = append(out, DepthEntry{
			Price:    fromTicks(lvl.PriceTicks, b.tickSize),
			Quantity: fromMicroUnits(lvl.TotalUnits),
		})
		return len(out) < n
	}
	if descending {
		t.descending(visit)
	} else {
		t.ascending(visit)
	}
	return out
}

// match runs the taker order against the opposite side until it is
// filled or no crossable level remains, per the matching algorithm in
// spec.md §4.1.1. Caller must hold b.mu (write lock).
func (b *Book) match(taker *Order) {
	makerSide := oppositeSide(taker.Side)
	best := b.asks.min
	if taker.Side == Ask {
		best = b.bids.max
	}

	for !taker.Filled() {
		level := best()
		if level == nil {
			return
		}
		if !crosses(taker, level.PriceTicks) {
			return
		}

		for !taker.Filled() && !level.empty() {
			maker := level.head
			fillUnits := taker.RemainingUnits
			if maker.RemainingUnits < fillUnits {
				fillUnits = maker.RemainingUnits
			}

			taker.RemainingUnits -= fillUnits
			maker.RemainingUnits -= fillUnits
			level.reduce(fillUnits)

			if maker.Filled() {
				delete(b.orderIndex, maker.ID)
				level.unlink(maker)
				if level.empty() {
					b.removeLevel(makerSide, level.PriceTicks)
				}
			}

			b.emitTrade(taker, maker, level.PriceTicks, fillUnits)
		}
	}
}

// crosses reports whether a taker can trade against a resting level at
// levelTicks: a bid must bid at least the ask's price, an ask must ask
// at most the bid's price.
func crosses(taker *Order, levelTicks int64) bool {
	if taker.Side == Bid {
		return taker.PriceTicks >= levelTicks
	}
	return taker.PriceTicks <= levelTicks
}

func oppositeSide(side Side) Side {
	if side == Bid {
		return Ask
	}
	return Bid
}

func (b *Book) emitTrade(taker, maker *Order, fillPriceTicks, fillUnits int64) {
	b.tradeCount++
	b.lastTradeTicks = fillPriceTicks

	if b.tradeCallback == nil {
		return
	}

	var bidID, askID uint64
	if taker.Side == Bid {
		bidID, askID = taker.ID, maker.ID
	} else {
		bidID, askID = maker.ID, taker.ID
	}

	b.tradeCallback(Trade{
		BidOrderID: bidID,
		AskOrderID: askID,
		Price:      fromTicks(fillPriceTicks, b.tickSize),
		Quantity:   fromMicroUnits(fillUnits),
		Timestamp:  taker.SubmitTimestamp,
	})
}

func (b *Book) restOrder(o *Order) {
	level := b.levelFor(o.Side, o.PriceTicks)
	if level == nil {
		level = b.upsertLevel(o.Side, o.PriceTicks)
	}
	level.enqueue(o)
	b.orderIndex[o.ID] = o
}

func (b *Book) levelFor(side Side, priceTicks int64) *PriceLevel {
	if side == Bid {
		return b.bids.find(priceTicks)
	}
	return b.asks.find(priceTicks)
}

func (b *Book) upsertLevel(side Side, priceTicks int64) *PriceLevel {
	if side == Bid {
		return b.bids.upsert(priceTicks)
	}
	return b.asks.upsert(priceTicks)
}

func (b *Book) removeLevel(side Side, priceTicks int64) {
	if side == Bid {
		b.bids.delete(priceTicks)
	} else {
		b.asks.delete(priceTicks)
	}
}

// nextTimestamp returns a strictly non-decreasing nanosecond timestamp,
// guarding against two submissions landing in the same clock tick (or a
// non-monotonic clock source) breaking the FIFO invariant.
func (b *Book) nextTimestamp() int64 {
	now := time.Now().UnixNano()
	if now <= b.lastTimestamp {
		now = b.lastTimestamp + 1
	}
	b.lastTimestamp = now
	return now
}
