package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port     int
	DBPath   string
	LogLevel string
	// Control loop
	TickInterval   time.Duration
	RequestTimeout time.Duration
	// Hardware
	Hardware  string
	BoardFile string
	// LAN discovery
	MDNSEnabled bool
	DeviceName  string
}

// Supported HARDWARE values.
const (
	HardwareSim = "sim"
)

func Load() (*Config, error) {
	cfg := &Config{
		Port:           envInt("PORT", 8080),
		DBPath:         envStr("RELAYD_DB_PATH", "/data/relayd.db"),
		LogLevel:       envStr("LOG_LEVEL", "info"),
		TickInterval:   envMillis("TICK_INTERVAL_MS", 50*time.Millisecond),
		RequestTimeout: envMillis("REQUEST_TIMEOUT_MS", 2*time.Second),
		Hardware:       envStr("HARDWARE", HardwareSim),
		BoardFile:      envStr("BOARD_FILE", ""),
		MDNSEnabled:    envBool("MDNS_ENABLED", true),
		DeviceName:     envStr("DEVICE_NAME", "relay-panel"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// Validate is exported so flag overrides can be re-checked after Load.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.DBPath == "" {
		return fmt.Errorf("RELAYD_DB_PATH must not be empty")
	}
	if c.TickInterval < time.Millisecond {
		return fmt.Errorf("TICK_INTERVAL_MS must be at least 1, got %s", c.TickInterval)
	}
	if c.RequestTimeout <= c.TickInterval {
		return fmt.Errorf("REQUEST_TIMEOUT_MS (%s) must exceed TICK_INTERVAL_MS (%s)", c.RequestTimeout, c.TickInterval)
	}
	if c.Hardware != HardwareSim {
		return fmt.Errorf("HARDWARE %q is not supported (want %q)", c.Hardware, HardwareSim)
	}
	if c.DeviceName == "" {
		return fmt.Errorf("DEVICE_NAME must not be empty")
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envMillis(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return fallback
}
