// internal/config/config.go
package config

type Config struct {
	Watch WatchConfig `yaml:"watch"`
}

type WatchConfig struct {
	Classifier   ClassifierConfig   `yaml:"classifier"`
	StatusMemory StatusMemoryConfig `yaml:"status_memory"`
	Nodes        []NodeConfig       `yaml:"nodes"`
}

// ---- CLASSIFIER ----

// ClassifierConfig holds the two signals the daemon overloads.
// Zero values are replaced by the daemon defaults in Normalize.
type ClassifierConfig struct {
	UnimplementedCode   *int   `yaml:"unimplemented_code"`
	WalletExistsMessage string `yaml:"wallet_exists_message"`
}

// ---- STATUS MEMORY ----

type StatusMemoryConfig struct {
	Endpoint  string `yaml:"endpoint"`
	Protocol  string `yaml:"protocol"` // modbus | ingest
	UnitID    uint8  `yaml:"unit_id"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// ---- NODE ----

type NodeConfig struct {
	ID         string     `yaml:"id"`
	Chain      string     `yaml:"chain"`
	MinVersion string     `yaml:"min_version"`
	RPC        RPCConfig  `yaml:"rpc"`
	Poll       PollConfig `yaml:"poll"`

	// Status block publication (optional, opt-in)
	StatusSlot *uint16 `yaml:"status_slot"`
	DeviceName string  `yaml:"device_name"`
}

type RPCConfig struct {
	Endpoint     string `yaml:"endpoint"`
	TLSCertPath  string `yaml:"tls_cert"`
	MacaroonPath string `yaml:"macaroon"`
	TimeoutMs    int    `yaml:"timeout_ms"`
}

// ---- POLL ----

type PollConfig struct {
	IntervalMs int `yaml:"interval_ms"`
}

// StatusEnabled reports whether any node opted into status publication.
func (c *Config) StatusEnabled() bool {
	for _, n := range c.Watch.Nodes {
		if n.StatusSlot != nil {
			return true
		}
	}
	return false
}
