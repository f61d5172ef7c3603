// internal/engine/probe.go
package engine

// Chain is one ledger the node reports being configured for.
type Chain struct {
	Chain   string
	Network string
}

// Info is the payload of a successful info probe.
type Info struct {
	Chains        []Chain
	Version       string
	SyncedToChain bool
}

// InfoProbe queries the primary RPC surface.
// Failures should carry a *ProbeError or a gRPC status.
type InfoProbe interface {
	GetInfo() (*Info, error)
}

// SeedProbe asks the wallet unlocker service for a fresh seed.
// Success means no wallet has been created yet.
type SeedProbe interface {
	GenSeed() error
}

// AvailabilityProbe checks whether the primary RPC surface is serving.
type AvailabilityProbe interface {
	CheckAvailable() error
}

// Engine is the read-only context for one managed node.
// It is built once and shared by every classification of that node.
type Engine struct {
	ChainName  string
	MinVersion string

	Info         InfoProbe
	Seed         SeedProbe
	Availability AvailabilityProbe
}
