package orderbook

import "testing"

func TestRestAndCross(t *testing.T) {
	b := NewBook("SIM", 0.01)

	id := b.AddOrder(Bid, 100.00, 5)
	if id == 0 {
		t.Fatal("resting bid should have been assigned an id")
	}
	if b.BestBid() != 100.00 {
		t.Fatalf("BestBid = %v, want 100.00", b.BestBid())
	}

	var trades []Trade
	b.SetTradeCallback(func(tr Trade) { trades = append(trades, tr) })

	takerID := b.AddOrder(Ask, 100.00, 5)
	if takerID != 0 {
		t.Fatal("fully filled taker should return id 0")
	}
	if len(trades) != 1 {
		t.Fatalf("got %d trades, want 1", len(trades))
	}
	if trades[0].Price != 100.00 || trades[0].Quantity != 5 {
		t.Fatalf("unexpected trade %+v", trades[0])
	}
	if b.BestBid() != 0 {
		t.Fatalf("resting bid should be fully consumed, got BestBid = %v", b.BestBid())
	}
}

func TestSweepMultipleLevels(t *testing.T) {
	b := NewBook("SIM", 0.01)

	b.AddOrder(Ask, 100.00, 2)
	b.AddOrder(Ask, 100.05, 2)
	b.AddOrder(Ask, 100.10, 2)

	var trades []Trade
	b.SetTradeCallback(func(tr Trade) { trades = append(trades, tr) })

	b.AddOrder(Bid, 100.10, 5)

	if len(trades) != 3 {
		t.Fatalf("got %d trades, want 3", len(trades))
	}
	wantPrices := []float64{100.00, 100.05, 100.10}
	for i, tr := range trades {
		if tr.Price != wantPrices[i] {
			t.Fatalf("trade %d price = %v, want %v", i, tr.Price, wantPrices[i])
		}
	}
	if trades[2].Quantity != 1 {
		t.Fatalf("final level should be partially consumed for 1, got %v", trades[2].Quantity)
	}
	if b.BestAsk() != 100.10 {
		t.Fatalf("BestAsk = %v, want 100.10 with residue resting", b.BestAsk())
	}
}

func TestPartialMakerFillRetainsFIFO(t *testing.T) {
	b := NewBook("SIM", 0.01)

	first := b.AddOrder(Bid, 100.00, 3)
	second := b.AddOrder(Bid, 100.00, 3)

	var trades []Trade
	b.SetTradeCallback(func(tr Trade) { trades = append(trades, tr) })

	b.AddOrder(Ask, 100.00, 4)

	if len(trades) != 2 {
		t.Fatalf("got %d trades, want 2", len(trades))
	}
	if trades[0].BidOrderID != first {
		t.Fatalf("first trade should fill the first order in queue")
	}
	if trades[1].BidOrderID != second {
		t.Fatalf("second trade should fill the second order in queue")
	}
	if trades[0].Quantity != 3 {
		t.Fatalf("first maker should be fully filled for 3, got %v", trades[0].Quantity)
	}
	if trades[1].Quantity != 1 {
		t.Fatalf("second maker should be partially filled for 1, got %v", trades[1].Quantity)
	}

	if !b.CancelOrder(second) {
		t.Fatal("partially filled resting order should still be cancelable")
	}
}

func TestCancelMidBook(t *testing.T) {
	b := NewBook("SIM", 0.01)

	a := b.AddOrder(Bid, 100.00, 1)
	mid := b.AddOrder(Bid, 100.00, 1)
	c := b.AddOrder(Bid, 100.00, 1)

	if !b.CancelOrder(mid) {
		t.Fatal("cancel of resting mid-queue order should succeed")
	}
	if b.CancelOrder(mid) {
		t.Fatal("double cancel should fail")
	}

	var trades []Trade
	b.SetTradeCallback(func(tr Trade) { trades = append(trades, tr) })

	b.AddOrder(Ask, 100.00, 2)

	if len(trades) != 2 {
		t.Fatalf("got %d trades, want 2", len(trades))
	}
	if trades[0].BidOrderID != a || trades[1].BidOrderID != c {
		t.Fatalf("canceled order should have been skipped, trades=%+v", trades)
	}
}

func TestNoCrossWhenLimitsDontAllow(t *testing.T) {
	b := NewBook("SIM", 0.01)

	b.AddOrder(Ask, 101.00, 5)

	var trades []Trade
	b.SetTradeCallback(func(tr Trade) { trades = append(trades, tr) })

	id := b.AddOrder(Bid, 100.00, 5)
	if id == 0 {
		t.Fatal("non-crossing bid should rest")
	}
	if len(trades) != 0 {
		t.Fatalf("got %d trades, want 0", len(trades))
	}
	if b.BestBid() != 100.00 || b.BestAsk() != 101.00 {
		t.Fatalf("book should show both resting orders, bid=%v ask=%v", b.BestBid(), b.BestAsk())
	}
}

func TestRejectsNonPositivePriceOrQuantity(t *testing.T) {
	b := NewBook("SIM", 0.01)

	if id := b.AddOrder(Bid, 0, 5); id != 0 {
		t.Fatal("zero price should be rejected")
	}
	if id := b.AddOrder(Bid, 100, 0); id != 0 {
		t.Fatal("zero quantity should be rejected")
	}
	if id := b.AddOrder(Bid, -1, 5); id != 0 {
		t.Fatal("negative price should be rejected")
	}
	if b.OrderCount() != 0 {
		t.Fatalf("rejected submissions should not consume an order id, OrderCount = %d", b.OrderCount())
	}
}

func TestSpreadMidAndLastPrice(t *testing.T) {
	b := NewBook("SIM", 0.01)

	if b.Spread() != 0 || b.MidPrice() != 0 {
		t.Fatal("empty book should report zero spread and mid price")
	}

	b.AddOrder(Bid, 99.00, 1)
	b.AddOrder(Ask, 101.00, 1)

	if got := round2(b.Spread()); got != 2.00 {
		t.Fatalf("Spread = %v, want 2.00", got)
	}
	if got := round2(b.MidPrice()); got != 100.00 {
		t.Fatalf("MidPrice = %v, want 100.00", got)
	}

	b.AddOrder(Bid, 101.00, 1)
	if b.LastPrice() != 101.00 {
		t.Fatalf("LastPrice = %v, want 101.00", b.LastPrice())
	}
}

func TestTopBidsAndAsksOrdering(t *testing.T) {
	b := NewBook("SIM", 0.01)

	b.AddOrder(Bid, 99.00, 1)
	b.AddOrder(Bid, 100.00, 1)
	b.AddOrder(Bid, 98.00, 1)

	b.AddOrder(Ask, 103.00, 1)
	b.AddOrder(Ask, 102.00, 1)

	bids := b.TopBids(10)
	wantBids := []float64{100.00, 99.00, 98.00}
	for i, lvl := range bids {
		if lvl.Price != wantBids[i] {
			t.Fatalf("TopBids[%d] = %v, want %v", i, lvl.Price, wantBids[i])
		}
	}

	asks := b.TopAsks(10)
	wantAsks := []float64{102.00, 103.00}
	for i, lvl := range asks {
		if lvl.Price != wantAsks[i] {
			t.Fatalf("TopAsks[%d] = %v, want %v", i, lvl.Price, wantAsks[i])
		}
	}
}

func TestClearResetsBookButNotOrderIDSequence(t *testing.T) {
	b := NewBook("SIM", 0.01)
	b.AddOrder(Bid, 100.00, 1)
	b.AddOrder(Ask, 101.00, 1)

	b.Clear()

	if b.BidLevels() != 0 || b.AskLevels() != 0 {
		t.Fatal("Clear should drop all resting levels")
	}
	if b.TradeCount() != 0 {
		t.Fatal("Clear should reset the trade counter")
	}

	id := b.AddOrder(Bid, 100.00, 1)
	if id != 3 {
		t.Fatalf("order id sequence should not reset across Clear, got %d", id)
	}
}

func round2(f float64) float64 {
	return float64(int64(f*100+0.5)) / 100
}
