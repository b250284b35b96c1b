package orderbook

// PriceLevel is the FIFO queue of resting orders at a single price,
// on one side of the book. Orders are linked intrusively (Order.next /
// Order.prev) so that an order already located via the book's index can
// be unlinked in O(1), without scanning the queue.
//
// Adapted from UmarFarooq-MP-Loki's orderbook/price_level.go, generalized
// from int64 lot counts to the book's fixed-point RemainingUnits and
// taught to support partial fills (the original only unlinked on full
// cancel/fill).
type PriceLevel struct {
	PriceTicks int64
	head, tail *Order
	TotalUnits int64
	Count      int
}

// enqueue appends an order to the tail of the level's FIFO queue.
func (p *PriceLevel) enqueue(o *Order) {
	o.next = nil
	o.prev = p.tail
	if p.tail != nil {
		p.tail.next = o
	} else {
		p.head = o
	}
	p.tail = o
	p.TotalUnits += o.RemainingUnits
	p.Count++
}

// unlink removes o from the queue. o must currently belong to this level.
func (p *PriceLevel) unlink(o *Order) {
	if o.prev != nil {
		o.prev.next = o.next
	} else {
		p.head = o.next
	}
	if o.next != nil {
		o.next.prev = o.prev
	} else {
		p.tail = o.prev
	}
	o.next, o.prev = nil, nil
	p.TotalUnits -= o.RemainingUnits
	if p.TotalUnits < 0 {
		p.TotalUnits = 0
	}
	p.Count--
}

// reduce records that an order in this level had its remaining quantity
// drop by delta, without removing it from the queue (a partial fill).
func (p *PriceLevel) reduce(delta int64) {
	p.TotalUnits -= delta
	if p.TotalUnits < 0 {
		p.TotalUnits = 0
	}
}

// empty reports whether the level has no resting orders.
func (p *PriceLevel) empty() bool {
	return p.head == nil
}
