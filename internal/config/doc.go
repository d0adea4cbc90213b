// Package config provides user configuration for the lcdradio client.
//
// Configuration lives in a single YAML file in the platform's standard
// config directory (XDG on Linux). Every field has a default, so running
// without a config file talks to a player on localhost:8002 over TCP.
//
// # File Location
//
//   - Linux: $XDG_CONFIG_HOME/lcdradio/config.yaml or ~/.config/lcdradio/config.yaml
//   - macOS: ~/.config/lcdradio/config.yaml
//   - Windows: %LOCALAPPDATA%\lcdradio\config.yaml
//
// # Example
//
//	version: 1
//	address: radio.local:8002
//	transport: tcp
//	retry_millis: 100
//	discover: false
//	discover_timeout: 10
//	log_level: info
package config
