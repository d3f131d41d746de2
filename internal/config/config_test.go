package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Backend != BackendNative {
		t.Errorf("Backend: want %q, got %q", BackendNative, cfg.Backend)
	}
	if want := []string{"ie1g", "rtl1g", "rtl1gl"}; !reflect.DeepEqual(cfg.Native.Prefixes, want) {
		t.Errorf("Prefixes: want %v, got %v", want, cfg.Native.Prefixes)
	}
	if cfg.Native.Instances != 4 {
		t.Errorf("Instances: want 4, got %d", cfg.Native.Instances)
	}
	if want := []string{"ven"}; !reflect.DeepEqual(cfg.System.ReservedPrefixes, want) {
		t.Errorf("ReservedPrefixes: want %v, got %v", want, cfg.System.ReservedPrefixes)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestParse_overrides(t *testing.T) {
	data := []byte(`
backend: system
max_adapters: 2
system:
  source: pcap
  reserved_prefixes: []
log:
  level: debug
`)

	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend != BackendSystem || cfg.MaxAdapters != 2 {
		t.Errorf("unexpected backend/limit: %q/%d", cfg.Backend, cfg.MaxAdapters)
	}
	if cfg.System.Source != SourcePcap {
		t.Errorf("Source: want %q, got %q", SourcePcap, cfg.System.Source)
	}
	if cfg.System.ReservedPrefixes == nil || len(cfg.System.ReservedPrefixes) != 0 {
		t.Errorf("explicit empty reserved prefixes should survive, got %#v", cfg.System.ReservedPrefixes)
	}
	if cfg.Native.Instances != 4 {
		t.Errorf("unset native block should take defaults, got %d instances", cfg.Native.Instances)
	}
}

func TestParse_invalid(t *testing.T) {
	cases := map[string]string{
		"backend":  "backend: usb\n",
		"driver":   "native:\n  driver: npf\n",
		"source":   "system:\n  source: proc\n",
		"limit":    "max_adapters: -1\n",
		"instance": "native:\n  instances: -2\n",
		"prefix":   "native:\n  prefixes: [\"ie1g\", \"\"]\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(data)); !errors.Is(err, ErrInvalid) {
				t.Errorf("want ErrInvalid, got %v", err)
			}
		})
	}
}

func TestParse_badYAML(t *testing.T) {
	if _, err := Parse([]byte("backend: [")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoad_envPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ecoshw.yaml")
	if err := os.WriteFile(path, []byte("backend: system\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ECOSHW_CONFIG", path)

	cfg, got, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != path {
		t.Errorf("path: want %q, got %q", path, got)
	}
	if cfg.Backend != BackendSystem {
		t.Errorf("Backend: want %q, got %q", BackendSystem, cfg.Backend)
	}
}

func TestLoadFromPath_missing(t *testing.T) {
	_, _, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("want os.ErrNotExist, got %v", err)
	}
}
