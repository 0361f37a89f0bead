package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig_Defaults(t *testing.T) {
	cfg := NewDefaultConfig()
	if cfg.Analysis.DefaultWindow != 30 {
		t.Errorf("Analysis.DefaultWindow default = %d, want 30", cfg.Analysis.DefaultWindow)
	}
	if cfg.Analysis.Engine.Indicators.RSIPeriod != 14 {
		t.Errorf("Engine RSI period = %d, want 14", cfg.Analysis.Engine.Indicators.RSIPeriod)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestConfig_EnvOverrides(t *testing.T) {
	t.Setenv("TRENDSCORE_ENV", "production")
	t.Setenv("TRENDSCORE_LOG_LEVEL", "debug")
	t.Setenv("TRENDSCORE_DATA_PATH", "/tmp/ts")
	t.Setenv("TRENDSCORE_WINDOW", "90")
	t.Setenv("TRENDSCORE_CONCURRENCY", "8")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if !cfg.IsProduction() {
		t.Errorf("Environment = %q, want production", cfg.Environment)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Storage.Market.Path != filepath.Join("/tmp/ts", "market") {
		t.Errorf("Storage.Market.Path = %q", cfg.Storage.Market.Path)
	}
	if cfg.Analysis.DefaultWindow != 90 {
		t.Errorf("Analysis.DefaultWindow = %d, want 90", cfg.Analysis.DefaultWindow)
	}
	if cfg.Analysis.Concurrency != 8 {
		t.Errorf("Analysis.Concurrency = %d, want 8", cfg.Analysis.Concurrency)
	}
}

func TestConfig_BadEnvValuesIgnored(t *testing.T) {
	t.Setenv("TRENDSCORE_WINDOW", "thirty")
	t.Setenv("TRENDSCORE_CONCURRENCY", "-2")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Analysis.DefaultWindow != 30 {
		t.Errorf("Analysis.DefaultWindow = %d, want default 30", cfg.Analysis.DefaultWindow)
	}
	if cfg.Analysis.Concurrency != 4 {
		t.Errorf("Analysis.Concurrency = %d, want default 4", cfg.Analysis.Concurrency)
	}
}

func TestConfig_EODHDKeyEnvOverride(t *testing.T) {
	t.Setenv("EODHD_API_KEY", "from-env")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Clients.EODHD.APIKey != "from-env" {
		t.Errorf("EODHD.APIKey = %q, want %q", cfg.Clients.EODHD.APIKey, "from-env")
	}
	if missing := cfg.ValidateRequired(); len(missing) != 0 {
		t.Errorf("expected no missing fields, got %v", missing)
	}
}

func TestConfig_ValidateRequired_MissingKey(t *testing.T) {
	cfg := NewDefaultConfig()
	missing := cfg.ValidateRequired()
	if len(missing) != 1 || missing[0] != "clients.eodhd.api_key" {
		t.Errorf("missing = %v, want [clients.eodhd.api_key]", missing)
	}
}

func TestLoadConfig_LayersFiles(t *testing.T) {
	t.Setenv("TRENDSCORE_WINDOW", "")
	dir := t.TempDir()
	base := filepath.Join(dir, "base.toml")
	local := filepath.Join(dir, "local.toml")

	writeFile(t, base, `
[analysis]
default_window = 7
concurrency = 2

[analysis.engine.indicators]
rsi_period = 21

[storage.market]
cache_ttl = "15m"
`)
	writeFile(t, local, `
[analysis]
default_window = 60
`)

	cfg, err := LoadConfig(base, filepath.Join(dir, "missing.toml"), local)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Analysis.DefaultWindow != 60 {
		t.Errorf("DefaultWindow = %d, want 60 from later file", cfg.Analysis.DefaultWindow)
	}
	if cfg.Analysis.Concurrency != 2 {
		t.Errorf("Concurrency = %d, want 2", cfg.Analysis.Concurrency)
	}
	if cfg.Analysis.Engine.Indicators.RSIPeriod != 21 {
		t.Errorf("RSIPeriod = %d, want 21", cfg.Analysis.Engine.Indicators.RSIPeriod)
	}
	if cfg.Analysis.Engine.Indicators.MACDSlow != 26 {
		t.Errorf("MACDSlow = %d, want default 26 kept", cfg.Analysis.Engine.Indicators.MACDSlow)
	}
	if got := cfg.Storage.Market.GetCacheTTL(); got != 15*time.Minute {
		t.Errorf("cache TTL = %v, want 15m", got)
	}
}

func TestLoadConfig_RejectsInvalidWindow(t *testing.T) {
	t.Setenv("TRENDSCORE_WINDOW", "")
	path := filepath.Join(t.TempDir(), "bad.toml")
	writeFile(t, path, "[analysis]\ndefault_window = 400\n")

	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for window outside 1-365")
	}
}

func TestLoadConfig_ParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	writeFile(t, path, "[analysis\n")

	if _, err := LoadConfig(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestDurationFallbacks(t *testing.T) {
	e := EODHDConfig{Timeout: "bogus"}
	if e.GetTimeout() != 30*time.Second {
		t.Errorf("GetTimeout fallback = %v, want 30s", e.GetTimeout())
	}
	m := MarketConfig{CacheTTL: "bogus"}
	if m.GetCacheTTL() != FreshnessSeries {
		t.Errorf("GetCacheTTL fallback = %v, want %v", m.GetCacheTTL(), FreshnessSeries)
	}
	m.CacheTTL = "0"
	if m.GetCacheTTL() != 0 {
		t.Errorf("GetCacheTTL(0) = %v, want 0", m.GetCacheTTL())
	}
}

func TestIsFresh(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	if !IsFresh(now.Add(-time.Minute), now, time.Hour) {
		t.Error("one minute old should be fresh")
	}
	if IsFresh(now.Add(-2*time.Hour), now, time.Hour) {
		t.Error("two hours old should be stale")
	}
	if IsFresh(time.Time{}, now, time.Hour) {
		t.Error("zero time is never fresh")
	}
	if IsFresh(now, now, 0) {
		t.Error("zero TTL is never fresh")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
