// internal/config/normalize.go
package config

import "github.com/tamzrod/engine-watch/internal/engine"

const (
	DefaultRPCTimeoutMs    = 5000
	DefaultPollIntervalMs  = 5000
	DefaultStatusTimeoutMs = 1000
	DefaultStatusProtocol  = ProtocolModbus
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	cl := &cfg.Watch.Classifier
	if cl.UnimplementedCode == nil {
		code := engine.DefaultUnimplementedCode
		cl.UnimplementedCode = &code
	}
	if cl.WalletExistsMessage == "" {
		cl.WalletExistsMessage = engine.DefaultWalletExistsMessage
	}

	sm := &cfg.Watch.StatusMemory
	if sm.Protocol == "" {
		sm.Protocol = DefaultStatusProtocol
	}
	if sm.TimeoutMs <= 0 {
		sm.TimeoutMs = DefaultStatusTimeoutMs
	}

	for i := range cfg.Watch.Nodes {
		n := &cfg.Watch.Nodes[i]

		if n.RPC.TimeoutMs <= 0 {
			n.RPC.TimeoutMs = DefaultRPCTimeoutMs
		}
		if n.Poll.IntervalMs <= 0 {
			n.Poll.IntervalMs = DefaultPollIntervalMs
		}

		// device_name is already ASCII; truncate to the register budget.
		if len(n.DeviceName) > 16 {
			n.DeviceName = n.DeviceName[:16]
		}
	}
}

// ErrorClassifier builds the classifier signals from a normalized config.
func (c ClassifierConfig) ErrorClassifier() engine.ErrorClassifier {
	ec := engine.DefaultErrorClassifier()
	if c.UnimplementedCode != nil {
		ec.UnimplementedCode = *c.UnimplementedCode
	}
	if c.WalletExistsMessage != "" {
		ec.WalletExistsMessage = c.WalletExistsMessage
	}
	return ec
}
