package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.FrameRate != 60 || cfg.PersistFormat != FormatJSON || cfg.LogLevel != "info" {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.FrameInterval() != time.Second/60 {
		t.Errorf("FrameInterval = %v", cfg.FrameInterval())
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "presencex.yaml")

	yaml := `
log_level: debug
frame_rate: 30
state_dir: /tmp/presence
persist_format: yaml
trace: true
`
	if err := os.WriteFile(cfgPath, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "debug" || cfg.FrameRate != 30 || cfg.StateDir != "/tmp/presence" ||
		cfg.PersistFormat != FormatYAML || !cfg.Trace {
		t.Errorf("loaded = %+v", cfg)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "c.yaml")
	if err := os.WriteFile(cfgPath, []byte("trace: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.FrameRate != 60 || !cfg.Trace {
		t.Errorf("loaded = %+v", cfg)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string]string{
		"bad level":  "log_level: loud\n",
		"bad rate":   "frame_rate: 0\n",
		"bad format": "persist_format: toml\n",
		"bad yaml":   "frame_rate: [\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			cfgPath := filepath.Join(t.TempDir(), "c.yaml")
			if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(cfgPath); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}
