// Package telemetry implements the pure-reader boundary described in
// spec.md §4.3: periodic sampling of book and simulator state into an
// opaque, transport-agnostic Snapshot.
package telemetry

// DepthLevel is one aggregated price level in a Snapshot's depth arrays.
type DepthLevel struct {
	Price float64 `json:"price"`
	Size  float64 `json:"size"`
}

// Snapshot is the literal Go expression of spec.md §6's wire contract.
// Encoding and transport are explicitly out of scope here; Sampler only
// produces values of this type.
type Snapshot struct {
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
	Symbol    string `json:"symbol"`

	Price float64 `json:"price"`
	High  float64 `json:"high"`
	Low   float64 `json:"low"`

	BestBid  float64 `json:"bestBid"`
	BestAsk  float64 `json:"bestAsk"`
	Spread   float64 `json:"spread"`
	MidPrice float64 `json:"midPrice"`

	OrdersPerSecond uint64 `json:"ordersPerSecond"`
	TotalOrders     uint64 `json:"totalOrders"`
	TotalTrades     uint64 `json:"totalTrades"`

	Bids []DepthLevel `json:"bids"`
	Asks []DepthLevel `json:"asks"`
}
