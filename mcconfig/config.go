// Package mcconfig loads the YAML configuration file describing how a
// connection engine instance should behave: timeouts, whether its
// handshake helpers auto-handle SetCompression/KeepAlive, a fixed
// compression threshold, outbound rate limiting, session capture, and
// the capture upload target.
//
// Default returns the lifecycle defaults: no compression (threshold
// -1), 30-second timeouts, and auto-handle and hide-handled on. A
// zero-value Config is not the same: its timeouts are zero, which
// validation rejects, and its compression threshold is 0.
package mcconfig

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"

	"go.uber.org/zap"

	"mcproto/conn"
	"mcproto/gateway"
)

// RateLimit configures outbound packet throttling. Rps of 0 disables
// limiting entirely.
type RateLimit struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// CaptureUpload configures the optional S3 archival step a capture
// Recorder performs on Close.
type CaptureUpload struct {
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`
}

// Capture configures session recording.
type Capture struct {
	Enabled bool          `yaml:"enabled"`
	Dir     string        `yaml:"dir"`
	Upload  CaptureUpload `yaml:"upload"`
}

// Config is the full recognized option set.
type Config struct {
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`

	AutoHandle  bool `yaml:"auto_handle"`
	HideHandled bool `yaml:"hide_handled"`

	// CompressionThreshold of -1 means absent (compression disabled).
	CompressionThreshold int32 `yaml:"compression_threshold"`

	RateLimit RateLimit `yaml:"rate_limit"`
	Capture   Capture   `yaml:"capture"`
}

// Default returns the lifecycle defaults documented on Config.
func Default() *Config {
	return &Config{
		ReadTimeout:          30 * time.Second,
		WriteTimeout:         30 * time.Second,
		AutoHandle:           true,
		HideHandled:          true,
		CompressionThreshold: -1,
	}
}

// Load reads and validates a YAML configuration file at path. Fields
// absent from the file keep Default's values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Limiter builds the rate.Limiter a Connection should enforce for this
// configuration, or nil when RateLimit.RPS is 0 (limiting disabled).
func (c *Config) Limiter() *rate.Limiter {
	if c.RateLimit.RPS == 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(c.RateLimit.RPS), c.RateLimit.Burst)
}

// ConnOptions builds the conn.Options a Connection opened or adopted
// under this configuration should use: its rate limiter and logger.
func (c *Config) ConnOptions(logger *zap.Logger) conn.Options {
	return conn.Options{Limiter: c.Limiter(), Logger: logger}
}

// GatewayOptions builds the gateway.Options a Listener or Dialer running
// under this configuration should use.
func (c *Config) GatewayOptions(logger *zap.Logger) gateway.Options {
	return gateway.Options{Limiter: c.Limiter(), Logger: logger}
}

// CompressionThresholdPtr returns &CompressionThreshold, or nil when it
// is -1 (compression disabled), in the shape
// handshake.ServerOptions.CompressionThreshold expects.
func (c *Config) CompressionThresholdPtr() *int32 {
	if c.CompressionThreshold < 0 {
		return nil
	}
	t := c.CompressionThreshold
	return &t
}

func (c *Config) validate() error {
	if c.ReadTimeout <= 0 {
		return fmt.Errorf("read_timeout must be positive, got %s", c.ReadTimeout)
	}
	if c.WriteTimeout <= 0 {
		return fmt.Errorf("write_timeout must be positive, got %s", c.WriteTimeout)
	}
	if c.RateLimit.RPS < 0 {
		return fmt.Errorf("rate_limit.rps must not be negative, got %f", c.RateLimit.RPS)
	}
	if c.RateLimit.Burst < 0 {
		return fmt.Errorf("rate_limit.burst must not be negative, got %d", c.RateLimit.Burst)
	}
	if c.Capture.Enabled && c.Capture.Dir == "" {
		return fmt.Errorf("capture.dir is required when capture.enabled is true")
	}
	return nil
}
