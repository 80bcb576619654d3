// Package config loads process configuration: defaults, then an optional
// YAML file, then TOHU_* environment overrides, then provider key discovery.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/tohu/internal/imagegen"
	"github.com/abhisek/tohu/internal/llm"
)

// Config is loaded once at startup and not modified afterwards.
type Config struct {
	Server ServerConfig    `yaml:"server"`
	LLM    llm.Config      `yaml:"llm"`
	Images imagegen.Config `yaml:"images"`
	Log    LogConfig       `yaml:"log"`

	// Timeout bounds each outbound model call.
	Timeout time.Duration `yaml:"timeout"`
}

// ServerConfig configures the HTTP endpoint.
type ServerConfig struct {
	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// LogConfig selects the logger flavour: "dev" or "prod".
type LogConfig struct {
	Mode string `yaml:"mode"`
}

// DefaultTimeout applies to every outbound call unless overridden.
const DefaultTimeout = 60 * time.Second

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:        ":8000",
			CORSOrigins: []string{"*"},
		},
		LLM:     llm.DefaultConfig(),
		Images:  imagegen.DefaultConfig(),
		Log:     LogConfig{Mode: "dev"},
		Timeout: DefaultTimeout,
	}
}

// Load builds the configuration. An empty path or a missing file leaves the
// defaults in place.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()
	cfg.LLM.Discover()
	cfg.Images.Inherit(cfg.LLM)
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("TOHU_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("TOHU_CORS_ORIGINS"); v != "" {
		c.Server.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("TOHU_LOG_MODE"); v != "" {
		c.Log.Mode = v
	}
	if v := os.Getenv("TOHU_TIMEOUT_SECS"); v != "" {
		if secs, err := strconv.ParseFloat(v, 64); err == nil && secs > 0 {
			c.Timeout = time.Duration(secs * float64(time.Second))
		}
	}
	c.LLM.ApplyEnv()
	c.Images.ApplyEnv()
}

// Validate reports configuration that cannot serve a request.
func (c *Config) Validate() error {
	if err := c.LLM.Validate(); err != nil {
		return err
	}
	if err := c.Images.Validate(); err != nil {
		return err
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("server address is empty")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
