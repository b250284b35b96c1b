package config

import (
	"flag"
	"os"
	"strconv"
	"time"
)

// Config holds the matching engine's runtime configuration.
type Config struct {
	// Server
	Host string
	Port int

	// Symbol / book
	Symbol   string
	TickSize float64

	// Simulation
	Seed      int64
	BasePrice float64
	TargetOPS uint64

	// Telemetry
	BroadcastInterval time.Duration
	SendBufferSize    int
}

func Load() *Config {
	c := &Config{}

	flag.StringVar(&c.Host, "host", envStr("MATCHSIM_HOST", "0.0.0.0"), "listen host")
	flag.IntVar(&c.Port, "port", envInt("MATCHSIM_PORT", 8100), "listen port")

	flag.StringVar(&c.Symbol, "symbol", envStr("MATCHSIM_SYMBOL", "SIM"), "symbol label")
	flag.Float64Var(&c.TickSize, "tick-size", envFloat("MATCHSIM_TICK_SIZE", 0.01), "price tick size")

	flag.Int64Var(&c.Seed, "seed", envInt64("MATCHSIM_SEED", 0), "PRNG seed (0 = time-derived)")
	flag.Float64Var(&c.BasePrice, "base-price", envFloat("MATCHSIM_BASE_PRICE", 100.0), "price process anchor")
	flag.Uint64Var(&c.TargetOPS, "target-ops", envUint64("MATCHSIM_TARGET_OPS", 1000), "target generated orders per second")

	broadcastMs := flag.Int("broadcast-interval-ms", envInt("MATCHSIM_BROADCAST_MS", 50), "telemetry broadcast interval in milliseconds")
	flag.IntVar(&c.SendBufferSize, "send-buffer", envInt("MATCHSIM_SEND_BUFFER", 256), "per-client outbound buffer size")

	flag.Parse()

	c.BroadcastInterval = time.Duration(*broadcastMs) * time.Millisecond

	return c
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func envUint64(key string, def uint64) uint64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
