package config

import "testing"

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Server.Bind != "127.0.0.1" || cfg.Server.Port != 38800 {
		t.Errorf("server defaults = %s:%d", cfg.Server.Bind, cfg.Server.Port)
	}
	if cfg.Database.Path != "" {
		t.Errorf("db path default = %q, want empty (resolved at runtime)", cfg.Database.Path)
	}
	if got := cfg.ListenAddr(); got != "127.0.0.1:38800" {
		t.Errorf("ListenAddr = %q", got)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("WASTETRACK_BIND", "0.0.0.0")
	t.Setenv("WASTETRACK_PORT", "9000")
	t.Setenv("WASTETRACK_DB", "/tmp/waste-test.db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.ListenAddr(); got != "0.0.0.0:9000" {
		t.Errorf("ListenAddr = %q, want 0.0.0.0:9000", got)
	}
	if cfg.Database.Path != "/tmp/waste-test.db" {
		t.Errorf("db path = %q", cfg.Database.Path)
	}
}
