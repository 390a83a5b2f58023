// Package config loads and validates the static qotd.toml configuration.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Mode names the four selection policies a corpus can be served under.
const (
	ModeRandom          = "random"
	ModeSequential      = "sequential"
	ModeRandomNoRepeat  = "random-no-repeat"
	ModeShuffleCycle    = "shuffle-cycle"
)

var validModes = map[string]bool{
	ModeRandom:         true,
	ModeSequential:     true,
	ModeRandomNoRepeat: true,
	ModeShuffleCycle:   true,
}

// Server holds the network-facing settings.
type Server struct {
	Host     string `mapstructure:"host"`
	TCPPort  int    `mapstructure:"tcp_port"`
	UDPPort  int    `mapstructure:"udp_port"`
}

// Quotes holds the corpus-facing settings.
type Quotes struct {
	Directories []string `mapstructure:"directories"`
	Mode        string   `mapstructure:"mode"`
}

// Polling holds the watcher cadence.
type Polling struct {
	IntervalSeconds int `mapstructure:"interval_seconds"`
}

// Config is the fully-decoded, validated qotd.toml.
type Config struct {
	Server  Server  `mapstructure:"server"`
	Quotes  Quotes  `mapstructure:"quotes"`
	Polling Polling `mapstructure:"polling"`
}

// Applied records a default value Load substituted for a missing field, so
// the caller can log it per spec.md §6 ("applied defaults ... are logged").
type Applied struct {
	Key   string
	Value any
}

// Load reads path (a TOML file) into a Config, applying defaults for any
// optional field left unset, and returns the list of defaults that were
// actually applied. It does not validate; call Validate on the result.
func Load(path string) (Config, []Applied, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.tcp_port", 17)
	v.SetDefault("server.udp_port", 17)
	v.SetDefault("quotes.mode", ModeRandom)
	v.SetDefault("polling.interval_seconds", 60)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, nil, fmt.Errorf("config: decoding %s: %w", path, err)
	}

	var applied []Applied
	for _, key := range []string{"server.host", "server.tcp_port", "server.udp_port", "quotes.mode", "polling.interval_seconds"} {
		if !v.InConfig(key) {
			applied = append(applied, Applied{Key: key, Value: v.Get(key)})
		}
	}

	return cfg, applied, nil
}

// Validate checks the invariants spec.md §6 requires, returning a single
// wrapped error describing the first violation it encounters.
func (c Config) Validate() error {
	if len(c.Quotes.Directories) == 0 {
		return fmt.Errorf("config: quotes.directories is required and must be non-empty")
	}
	if c.Quotes.Mode == "" {
		c.Quotes.Mode = ModeRandom
	}
	if !validModes[c.Quotes.Mode] {
		return fmt.Errorf("config: quotes.mode %q is not one of random, sequential, random-no-repeat, shuffle-cycle", c.Quotes.Mode)
	}
	if c.Server.TCPPort < 1 || c.Server.TCPPort > 65535 {
		return fmt.Errorf("config: server.tcp_port %d out of range 1..65535", c.Server.TCPPort)
	}
	if c.Server.UDPPort < 1 || c.Server.UDPPort > 65535 {
		return fmt.Errorf("config: server.udp_port %d out of range 1..65535", c.Server.UDPPort)
	}
	if c.Polling.IntervalSeconds < 1 {
		return fmt.Errorf("config: polling.interval_seconds must be >= 1, got %d", c.Polling.IntervalSeconds)
	}
	return nil
}
