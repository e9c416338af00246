package mcconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"go.uber.org/zap"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "mcproto.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFillsDefaults(t *testing.T) {
	path := writeConfig(t, `
auto_handle: false
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ReadTimeout != 30*time.Second {
		t.Errorf("expected default read_timeout, got %s", cfg.ReadTimeout)
	}
	if cfg.AutoHandle {
		t.Error("expected auto_handle override to false")
	}
	if !cfg.HideHandled {
		t.Error("expected hide_handled to keep its default of true")
	}
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
read_timeout: 10s
write_timeout: 5s
auto_handle: true
hide_handled: false
compression_threshold: 256
rate_limit:
  rps: 20
  burst: 40
capture:
  enabled: true
  dir: ./captures
  upload:
    bucket: my-bucket
    prefix: sessions/
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := &Config{
		ReadTimeout:          10 * time.Second,
		WriteTimeout:         5 * time.Second,
		AutoHandle:           true,
		HideHandled:          false,
		CompressionThreshold: 256,
		RateLimit:            RateLimit{RPS: 20, Burst: 40},
		Capture: Capture{
			Enabled: true,
			Dir:     "./captures",
			Upload:  CaptureUpload{Bucket: "my-bucket", Prefix: "sessions/"},
		},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRejectsCaptureWithoutDir(t *testing.T) {
	path := writeConfig(t, `
capture:
  enabled: true
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for capture.enabled without capture.dir")
	}
}

func TestLoadRejectsNegativeRate(t *testing.T) {
	path := writeConfig(t, `
rate_limit:
  rps: -1
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for negative rate_limit.rps")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLimiterDisabledByZeroRPS(t *testing.T) {
	cfg := Default()
	if l := cfg.Limiter(); l != nil {
		t.Errorf("expected nil limiter for zero rps, got %v", l)
	}
}

func TestLimiterBuiltFromRateLimit(t *testing.T) {
	cfg := Default()
	cfg.RateLimit = RateLimit{RPS: 10, Burst: 5}
	if l := cfg.Limiter(); l == nil {
		t.Fatal("expected a non-nil limiter")
	}
}

func TestConnOptionsAndGatewayOptionsCarryLimiterAndLogger(t *testing.T) {
	cfg := Default()
	cfg.RateLimit = RateLimit{RPS: 10, Burst: 5}
	logger := zap.NewNop()

	connOpts := cfg.ConnOptions(logger)
	if connOpts.Limiter == nil || connOpts.Logger != logger {
		t.Errorf("ConnOptions did not carry limiter/logger through: %+v", connOpts)
	}

	gwOpts := cfg.GatewayOptions(logger)
	if gwOpts.Limiter == nil || gwOpts.Logger != logger {
		t.Errorf("GatewayOptions did not carry limiter/logger through: %+v", gwOpts)
	}
}

func TestCompressionThresholdPtr(t *testing.T) {
	cfg := Default()
	if p := cfg.CompressionThresholdPtr(); p != nil {
		t.Errorf("expected nil threshold by default, got %d", *p)
	}
	cfg.CompressionThreshold = 256
	p := cfg.CompressionThresholdPtr()
	if p == nil || *p != 256 {
		t.Errorf("expected threshold 256, got %v", p)
	}
}
