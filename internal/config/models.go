package config

import "time"

// Settings is the entire user configuration file. Every field has a
// sensible default so a missing file means "talk to the player on
// localhost".
type Settings struct {
	Version int `yaml:"version"`

	// Address is the player's host:port (or websocket URL when
	// Transport is "ws").
	Address string `yaml:"address,omitempty"`

	// Transport selects how to reach the player: "tcp" or "ws".
	Transport string `yaml:"transport,omitempty"`

	// RetryMillis is the pause between connection attempts while the
	// player isn't listening yet, in milliseconds.
	RetryMillis int `yaml:"retry_millis,omitempty"`

	// Discover enables mDNS discovery of the player when no address is
	// configured.
	Discover bool `yaml:"discover"`

	// DiscoverTimeout is the mDNS browse timeout in seconds.
	DiscoverTimeout int `yaml:"discover_timeout,omitempty"`

	// LogLevel overrides the LCDRADIO_LOG_LEVEL environment variable
	// when set.
	LogLevel string `yaml:"log_level,omitempty"`
}

// NewSettings creates Settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version:         1,
		Address:         "localhost:8002",
		Transport:       "tcp",
		RetryMillis:     100,
		Discover:        false,
		DiscoverTimeout: 10,
	}
}

// RetryInterval returns the connection retry pause as a duration.
func (s *Settings) RetryInterval() time.Duration {
	if s.RetryMillis <= 0 {
		return 100 * time.Millisecond
	}
	return time.Duration(s.RetryMillis) * time.Millisecond
}

// applyDefaults fills in zero-valued fields after a partial file load.
func (s *Settings) applyDefaults() {
	defaults := NewSettings()
	if s.Address == "" {
		s.Address = defaults.Address
	}
	if s.Transport == "" {
		s.Transport = defaults.Transport
	}
	if s.RetryMillis <= 0 {
		s.RetryMillis = defaults.RetryMillis
	}
	if s.DiscoverTimeout <= 0 {
		s.DiscoverTimeout = defaults.DiscoverTimeout
	}
}
