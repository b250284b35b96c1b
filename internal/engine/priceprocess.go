package engine

// PriceProcess drives a single reference price through a multiplicative
// shock followed by mean reversion toward a base price. It tracks the
// running high/low alongside the current price.
//
// This is the single-symbol collapse of the sector-correlated GBM the
// teacher's MarketEngine ran across many symbols: one shock per step,
// no sector blending, same reversion shape.
type PriceProcess struct {
	rng     *RNG
	base    float64
	current float64
	high    float64
	low     float64
}

// NewPriceProcess creates a price process anchored at base.
func NewPriceProcess(rng *RNG, base float64) *PriceProcess {
	return &PriceProcess{
		rng:     rng,
		base:    base,
		current: base,
		high:    base,
		low:     base,
	}
}

// Step advances the price by one multiplicative shock plus mean reversion
// and returns the new current price.
func (p *PriceProcess) Step() float64 {
	shock := p.rng.Float64()*0.02 - 0.01 // U(-0.01, +0.01)
	p.current *= 1 + shock

	p.current += (p.base - p.current) * 0.0001

	if p.current > p.high {
		p.high = p.current
	}
	if p.current < p.low {
		p.low = p.current
	}
	return p.current
}

// Current returns the current price without advancing the process.
func (p *PriceProcess) Current() float64 { return p.current }

// High returns the running high since construction.
func (p *PriceProcess) High() float64 { return p.high }

// Low returns the running low since construction.
func (p *PriceProcess) Low() float64 { return p.low }
