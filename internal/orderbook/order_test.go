package orderbook

import "testing"

func TestFilled(t *testing.T) {
	o := &Order{RemainingUnits: 0}
	if !o.Filled() {
		t.Fatal("zero remaining units should be Filled")
	}
	o.RemainingUnits = 1
	if o.Filled() {
		t.Fatal("positive remaining units should not be Filled")
	}
}

func TestPriceRoundTrip(t *testing.T) {
	ticks := toTicks(100.05, 0.01)
	if got := fromTicks(ticks, 0.01); got != 100.05 {
		t.Fatalf("round trip = %v, want 100.05", got)
	}
}

func TestPriceTicksRoundToNearest(t *testing.T) {
	if got := toTicks(100.004, 0.01); got != 10000 {
		t.Fatalf("toTicks(100.004) = %d, want 10000", got)
	}
	if got := toTicks(100.006, 0.01); got != 10001 {
		t.Fatalf("toTicks(100.006) = %d, want 10001", got)
	}
}

func TestMicroUnitsRoundTrip(t *testing.T) {
	units := toMicroUnits(1.234567)
	if got := fromMicroUnits(units); got != 1.234567 {
		t.Fatalf("round trip = %v, want 1.234567", got)
	}
}
