package config

import "time"

// Config holds runtime settings for the intake CLI.
//
// Fields:
//   - ServerEndpointAddr: base address of the intake backend (host:port or URL).
//   - RequestTimeout: per-request HTTP timeout.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - SuccessBannerDelay: how long the profile-saved banner stays visible.
type Config struct {
	ServerEndpointAddr  string
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration
	SuccessBannerDelay  time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:8000"
	c.RequestTimeout = 30 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
	c.SuccessBannerDelay = 3 * time.Second
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
