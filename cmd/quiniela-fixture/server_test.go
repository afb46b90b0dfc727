package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFixture(t *testing.T) {
	fx, source, err := loadFixture("")
	if err != nil {
		t.Fatalf("embedded fixture: %v", err)
	}
	if source != "embedded" || len(fx.Paths()) == 0 {
		t.Errorf("source=%q paths=%v", source, fx.Paths())
	}

	path := filepath.Join(t.TempDir(), "fixture.yml")
	data := []byte("endpoints:\n  /current:\n    body: {success: true, data: {}}\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	fx, _, err = loadFixture(path)
	if err != nil {
		t.Fatalf("file fixture: %v", err)
	}
	if got := fx.Paths(); len(got) != 1 || got[0] != "/current" {
		t.Errorf("paths = %v", got)
	}

	if _, _, err := loadFixture(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("expected error for missing fixture")
	}
}

func TestLoadFixtureConfig_Env(t *testing.T) {
	t.Setenv("QUINIELA_FIXTURE_ADDR", "127.0.0.1:6000")

	cfg, err := loadFixtureConfig("")
	if err != nil {
		t.Fatalf("loadFixtureConfig: %v", err)
	}
	if cfg.Addr != "127.0.0.1:6000" || cfg.FixturePath != "" {
		t.Errorf("cfg = %+v", cfg)
	}
}
