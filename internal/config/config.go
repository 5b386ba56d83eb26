// Package config loads host-runtime configuration from TOML files with
// environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix is the prefix for environment overrides.
const EnvPrefix = "ADDONKIT_"

// Config is the host-runtime configuration.
type Config struct {
	// Namespace is the root used for ledger naming and broadcast
	// addressing.
	Namespace string `toml:"namespace"`

	// Script configures the Lua scripting engine.
	Script ScriptConfig `toml:"script"`
}

// ScriptConfig configures scripted addon handlers.
type ScriptConfig struct {
	// Enabled toggles the scripting engine.
	Enabled bool `toml:"enabled"`

	// CallStackSize bounds the Lua call stack. Zero means the engine
	// default.
	CallStackSize int `toml:"call_stack_size"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Namespace: "ADDONKIT",
		Script: ScriptConfig{
			Enabled: true,
		},
	}
}

// Load reads configuration from path, layering TOML over the defaults and
// environment overrides over the TOML. A missing file is not an error; the
// defaults (plus environment) apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// File doesn't exist, not an error
		case err != nil:
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv layers environment overrides onto the config.
func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv(EnvPrefix + "NAMESPACE"); ok {
		c.Namespace = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "SCRIPT_ENABLED"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Script.Enabled = b
		}
	}
	if v, ok := os.LookupEnv(EnvPrefix + "SCRIPT_CALL_STACK_SIZE"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.Script.CallStackSize = n
		}
	}
}

// validate rejects configurations the runtime cannot honor.
func (c *Config) validate() error {
	if c.Namespace == "" {
		return fmt.Errorf("config: namespace must not be empty")
	}
	if strings.Contains(c.Namespace, ".") {
		return fmt.Errorf("config: namespace must not contain dots, got %q", c.Namespace)
	}
	if c.Script.CallStackSize < 0 {
		return fmt.Errorf("config: script call stack size must not be negative")
	}
	return nil
}
