package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := NewLoader().Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Run.Judges != 2 {
		t.Fatalf("expected default judges=2, got %d", cfg.Run.Judges)
	}
	if cfg.Run.Seed != 42 {
		t.Fatalf("expected default seed=42, got %d", cfg.Run.Seed)
	}
}

func TestLoad_YAMLOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("run:\n  judges: 5\n  output_dir: custom_runs/\n"), 0644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg, err := NewLoader().WithConfigPath(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Run.Judges != 5 {
		t.Fatalf("expected judges=5 from YAML, got %d", cfg.Run.Judges)
	}
	if cfg.Run.OutputDir != "custom_runs/" {
		t.Fatalf("expected output_dir override, got %q", cfg.Run.OutputDir)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SHIPEVAL_RUN_JUDGES", "7")
	cfg, err := NewLoader().Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Run.Judges != 7 {
		t.Fatalf("expected judges=7 from env, got %d", cfg.Run.Judges)
	}
}

func TestLoad_MissingFileIsNotError(t *testing.T) {
	cfg, err := NewLoader().WithConfigPath("/nonexistent/config.yaml").Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Run.Judges != 2 {
		t.Fatalf("expected defaults when file missing, got %d", cfg.Run.Judges)
	}
}
