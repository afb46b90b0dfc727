package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tinytelemetry/quiniela/internal/model"
)

func TestLoadCLIConfig_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := loadCLIConfig("")
	if err != nil {
		t.Fatalf("loadCLIConfig: %v", err)
	}
	if cfg.APIBase != model.DefaultAPIBase {
		t.Errorf("api-base = %q", cfg.APIBase)
	}
	if cfg.CurrentInterval != 30*time.Second || cfg.FullInterval != 5*time.Minute {
		t.Errorf("intervals = %s / %s", cfg.CurrentInterval, cfg.FullInterval)
	}
	if cfg.RevealStep != 60*time.Millisecond || cfg.RevealMax != 360*time.Millisecond {
		t.Errorf("reveal = %s / %s", cfg.RevealStep, cfg.RevealMax)
	}
	if cfg.ConfigPath != "" {
		t.Errorf("config path = %q, want none", cfg.ConfigPath)
	}
}

func TestLoadCLIConfig_File(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yml")
	data := []byte("api-base: http://draws.local:8080/api\ncurrent-interval: 10s\nreduce-motion: true\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadCLIConfig(path)
	if err != nil {
		t.Fatalf("loadCLIConfig: %v", err)
	}
	if cfg.APIBase != "http://draws.local:8080/api" || cfg.CurrentInterval != 10*time.Second || !cfg.ReduceMotion {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.FullInterval != model.DefaultFullInterval {
		t.Errorf("full-interval = %s, want default", cfg.FullInterval)
	}
	if cfg.ConfigPath != path {
		t.Errorf("config path = %q, want %q", cfg.ConfigPath, path)
	}
}

func TestLoadCLIConfig_Env(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("QUINIELA_FULL_INTERVAL", "2m")
	t.Setenv("QUINIELA_DIAGNOSTICS_ENABLED", "true")

	cfg, err := loadCLIConfig("")
	if err != nil {
		t.Fatalf("loadCLIConfig: %v", err)
	}
	if cfg.FullInterval != 2*time.Minute || !cfg.DiagnosticsEnabled {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadCLIConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"relative api", map[string]string{"QUINIELA_API_BASE": "/api"}},
		{"ftp api", map[string]string{"QUINIELA_API_BASE": "ftp://host/api"}},
		{"zero interval", map[string]string{"QUINIELA_CURRENT_INTERVAL": "0s"}},
		{"negative reveal", map[string]string{"QUINIELA_REVEAL_STEP": "-1ms"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HOME", t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := loadCLIConfig(""); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
