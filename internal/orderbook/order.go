package orderbook

// Side identifies which side of the book an order rests on.
type Side byte

const (
	Bid Side = 'B'
	Ask Side = 'A'
)

// Order is a resting or in-flight limit order. PriceTicks and
// RemainingUnits are the fixed-point internal representation of price and
// quantity (see price.go); Price/Remaining convert back to float64 for
// callers.
//
// next/prev form the intrusive FIFO linked list for the price level the
// order currently rests in (adapted from the UmarFarooq-MP-Loki
// order_book package's Order/PriceLevel pair). An order not currently
// resting in a level has next == prev == nil.
type Order struct {
	ID              uint64
	Side            Side
	PriceTicks      int64
	RemainingUnits  int64
	SubmitTimestamp int64

	next, prev *Order
}

// Price returns the order's limit price as a float64.
func (o *Order) Price(tickSize float64) float64 {
	return fromTicks(o.PriceTicks, tickSize)
}

// Remaining returns the order's remaining quantity as a float64.
func (o *Order) Remaining() float64 {
	return fromMicroUnits(o.RemainingUnits)
}

// Filled reports whether the order has no remaining quantity.
func (o *Order) Filled() bool {
	return o.RemainingUnits <= 0
}

// Trade is an immutable record of one match between a resting maker order
// and an incoming taker order.
type Trade struct {
	BidOrderID uint64
	AskOrderID uint64
	Price      float64
	Quantity   float64
	Timestamp  int64
}
