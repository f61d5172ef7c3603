// internal/writer/builder.go
package writer

import (
	"fmt"
	"time"

	cfg "github.com/tamzrod/engine-watch/internal/config"
	"github.com/tamzrod/engine-watch/internal/writer/ingest"
	wmodbus "github.com/tamzrod/engine-watch/internal/writer/modbus"
)

// BuildPlans returns one StatusPlan per node that opted in, keyed by node id.
// Assumes config has already passed validation.
func BuildPlans(c *cfg.Config) map[string]StatusPlan {
	plans := make(map[string]StatusPlan)
	sm := c.Watch.StatusMemory

	for _, n := range c.Watch.Nodes {
		if n.StatusSlot == nil {
			continue
		}
		plans[n.ID] = StatusPlan{
			NodeID:     n.ID,
			Endpoint:   sm.Endpoint,
			UnitID:     sm.UnitID,
			BaseSlot:   *n.StatusSlot,
			DeviceName: n.DeviceName,
		}
	}

	return plans
}

// BuildEndpointClient connects the status memory sink named by the config.
func BuildEndpointClient(sm cfg.StatusMemoryConfig) (RegisterClient, func() error, error) {
	timeout := time.Duration(sm.TimeoutMs) * time.Millisecond

	switch sm.Protocol {
	case cfg.ProtocolModbus, "":
		c, err := wmodbus.NewEndpointClient(wmodbus.Config{
			Endpoint: sm.Endpoint,
			Timeout:  timeout,
		})
		if err != nil {
			return nil, nil, err
		}
		return c, c.Close, nil

	case cfg.ProtocolIngest:
		c, err := ingest.NewEndpointClient(ingest.Config{
			Endpoint: sm.Endpoint,
			Timeout:  timeout,
		})
		if err != nil {
			return nil, nil, err
		}
		return c, c.Close, nil

	default:
		return nil, nil, fmt.Errorf("writer: unknown status protocol %q", sm.Protocol)
	}
}
