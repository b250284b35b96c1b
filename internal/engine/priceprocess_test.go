package engine

import "testing"

func TestPriceProcessStaysPositive(t *testing.T) {
	rng := NewRNG(42)
	p := NewPriceProcess(rng, 92000.0)
	for i := 0; i < 100000; i++ {
		if v := p.Step(); v <= 0 {
			t.Fatalf("price went non-positive at step %d: %f", i, v)
		}
	}
}

func TestPriceProcessTracksHighLow(t *testing.T) {
	rng := NewRNG(7)
	p := NewPriceProcess(rng, 100.0)
	for i := 0; i < 10000; i++ {
		v := p.Step()
		if v > p.High() || v < p.Low() {
			t.Fatalf("current %f outside [low=%f, high=%f]", v, p.Low(), p.High())
		}
	}
	if p.High() < p.Low() {
		t.Fatal("high is below low")
	}
}

func TestPriceProcessMeanReverts(t *testing.T) {
	rng := NewRNG(3)
	p := NewPriceProcess(rng, 100.0)
	p.current = 150.0 // displace far from base
	for i := 0; i < 5000; i++ {
		p.Step()
	}
	if p.Current() > 150.0 {
		t.Fatalf("expected reversion to pull price down from 150, got %f", p.Current())
	}
}
