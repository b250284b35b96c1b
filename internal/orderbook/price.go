package orderbook

import "math"

// DefaultTickSize is the price increment used when a Book is constructed
// without an explicit tick size.
const DefaultTickSize = 0.01

// quantityScale converts float64 quantities to integer micro-units so
// that two "equal" quantities always compare bit-for-bit equal, the same
// canonicalization spec.md's design notes ask for on the price axis.
const quantityScale = 1_000_000

// toTicks converts a float64 price into an integer number of ticks of the
// given size, rounding to the nearest tick. Adapted from the teacher's
// itch.Price4/Price4ToFloat fixed-point convention (there a fixed 4
// decimal places; here a configurable tick size).
func toTicks(price, tickSize float64) int64 {
	return int64(math.Round(price / tickSize))
}

// fromTicks converts ticks back to a float64 price. When the tick size
// divides 1 evenly (0.01, 0.05, 0.25, ...), it divides by the integer
// ticks-per-unit so the result is the same float64 as the decimal price
// literal (10010 ticks of 0.01 gives 100.1, not 100.10000000000001).
func fromTicks(ticks int64, tickSize float64) float64 {
	if perUnit := 1 / tickSize; perUnit >= 1 && perUnit == math.Round(perUnit) {
		return float64(ticks) / perUnit
	}
	return float64(ticks) * tickSize
}

func toMicroUnits(qty float64) int64 {
	return int64(math.Round(qty * quantityScale))
}

func fromMicroUnits(units int64) float64 {
	return float64(units) / quantityScale
}
