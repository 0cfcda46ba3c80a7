package config

import "time"

// Config holds runtime settings for filemetactl.
//
// Fields:
//   - ServerEndpointAddr: host:port of the filemeta gRPC endpoint.
//   - Timeout: deadline applied to every call.
//   - TokenSubject: subject of the service token minted for calls.
type Config struct {
	ServerEndpointAddr string
	Timeout            time.Duration
	TokenSubject       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.Timeout = 10 * time.Second
	c.TokenSubject = "filemetactl"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
