// internal/config/validate.go
package config

import (
	"fmt"

	"github.com/tamzrod/engine-watch/internal/engine"
	"github.com/tamzrod/engine-watch/internal/status"
)

const (
	ProtocolModbus = "modbus"
	ProtocolIngest = "ingest"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: nil config")
	}
	if len(cfg.Watch.Nodes) == 0 {
		return fmt.Errorf("config: at least one node required")
	}

	// ------------------------------------------------------------
	// NODE VALIDATION
	// ------------------------------------------------------------

	seen := make(map[string]struct{}, len(cfg.Watch.Nodes))

	for _, n := range cfg.Watch.Nodes {
		if n.ID == "" {
			return fmt.Errorf("node: id required")
		}
		if _, dup := seen[n.ID]; dup {
			return fmt.Errorf("node %q: duplicate id", n.ID)
		}
		seen[n.ID] = struct{}{}

		if n.Chain == "" {
			return fmt.Errorf("node %q: chain required", n.ID)
		}
		if n.RPC.Endpoint == "" {
			return fmt.Errorf("node %q: rpc.endpoint required", n.ID)
		}
		if n.MinVersion == "" {
			return fmt.Errorf("node %q: min_version required", n.ID)
		}
		// The floor must itself be a comparable version.
		if _, err := engine.AtLeast(n.MinVersion, n.MinVersion); err != nil {
			return fmt.Errorf("node %q: min_version: %w", n.ID, err)
		}
		if n.RPC.TimeoutMs < 0 {
			return fmt.Errorf("node %q: rpc.timeout_ms must be >= 0", n.ID)
		}
		if n.Poll.IntervalMs < 0 {
			return fmt.Errorf("node %q: poll.interval_ms must be >= 0", n.ID)
		}

		// device_name sanity (ASCII only)
		for i := 0; i < len(n.DeviceName); i++ {
			if n.DeviceName[i] > 0x7F {
				return fmt.Errorf(
					"node %q: device_name must contain ASCII characters only",
					n.ID,
				)
			}
		}
	}

	// ------------------------------------------------------------
	// CLASSIFIER SIGNALS
	// ------------------------------------------------------------

	if c := cfg.Watch.Classifier.UnimplementedCode; c != nil && *c < 0 {
		return fmt.Errorf("classifier: unimplemented_code must be >= 0")
	}

	// ------------------------------------------------------------
	// STATUS BLOCK VALIDATION (OPT-IN)
	// ------------------------------------------------------------

	if !cfg.StatusEnabled() {
		return nil
	}

	sm := cfg.Watch.StatusMemory
	if sm.Endpoint == "" {
		return fmt.Errorf("status_memory: endpoint required when a node sets status_slot")
	}
	switch sm.Protocol {
	case "", ProtocolModbus, ProtocolIngest:
	default:
		return fmt.Errorf("status_memory: unknown protocol %q", sm.Protocol)
	}

	// key = status_slot
	slotOwner := make(map[uint16]string)

	for _, n := range cfg.Watch.Nodes {
		if n.StatusSlot == nil {
			continue
		}

		slot := *n.StatusSlot
		if int(slot) >= status.MaxSlots {
			return fmt.Errorf("node %q: status_slot %d out of range (max %d)", n.ID, slot, status.MaxSlots-1)
		}
		if prev, exists := slotOwner[slot]; exists {
			return fmt.Errorf(
				"status_slot collision: endpoint=%s unit_id=%d slot=%d used by nodes %q and %q",
				sm.Endpoint,
				sm.UnitID,
				slot,
				prev,
				n.ID,
			)
		}
		slotOwner[slot] = n.ID
	}

	return nil
}
