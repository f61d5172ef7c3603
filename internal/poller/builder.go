// internal/poller/builder.go
package poller

import (
	"time"

	cfg "github.com/tamzrod/engine-watch/internal/config"
	"github.com/tamzrod/engine-watch/internal/engine"
	"github.com/tamzrod/engine-watch/internal/probe/lndrest"
)

// BuildEngine wires one node's probes into an engine context.
// The REST client backs all three probes.
func BuildEngine(n cfg.NodeConfig) (*engine.Engine, error) {
	client, err := lndrest.New(lndrest.Config{
		Endpoint:     n.RPC.Endpoint,
		TLSCertPath:  n.RPC.TLSCertPath,
		MacaroonPath: n.RPC.MacaroonPath,
		Timeout:      time.Duration(n.RPC.TimeoutMs) * time.Millisecond,
	})
	if err != nil {
		return nil, err
	}

	return &engine.Engine{
		ChainName:    n.Chain,
		MinVersion:   n.MinVersion,
		Info:         client,
		Seed:         client,
		Availability: client,
	}, nil
}

// Build constructs a Poller for one node.
// No connection is opened here; the first probe dials.
func Build(n cfg.NodeConfig, c Classifier) (*Poller, error) {
	e, err := BuildEngine(n)
	if err != nil {
		return nil, err
	}

	return New(
		Config{
			NodeID:   n.ID,
			Interval: time.Duration(n.Poll.IntervalMs) * time.Millisecond,
		},
		e,
		c,
	)
}
