package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Namespace != "ADDONKIT" {
		t.Errorf("unexpected namespace %q", cfg.Namespace)
	}
	if !cfg.Script.Enabled {
		t.Error("expected scripting enabled by default")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Namespace != "ADDONKIT" {
		t.Errorf("expected defaults, got namespace %q", cfg.Namespace)
	}
}

func TestLoad_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "addonkit.toml")
	data := `
namespace = "VAULT"

[script]
enabled = false
call_stack_size = 64
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Namespace != "VAULT" {
		t.Errorf("unexpected namespace %q", cfg.Namespace)
	}
	if cfg.Script.Enabled {
		t.Error("expected scripting disabled")
	}
	if cfg.Script.CallStackSize != 64 {
		t.Errorf("unexpected call stack size %d", cfg.Script.CallStackSize)
	}
}

func TestLoad_EnvOverridesTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "addonkit.toml")
	os.WriteFile(path, []byte(`namespace = "VAULT"`), 0o644)

	t.Setenv(EnvPrefix+"NAMESPACE", "OVERRIDDEN")
	t.Setenv(EnvPrefix+"SCRIPT_ENABLED", "false")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Namespace != "OVERRIDDEN" {
		t.Errorf("expected env override, got %q", cfg.Namespace)
	}
	if cfg.Script.Enabled {
		t.Error("expected env to disable scripting")
	}
}

func TestLoad_InvalidNamespace(t *testing.T) {
	t.Setenv(EnvPrefix+"NAMESPACE", "HAS.DOTS")

	_, err := Load("")
	if err == nil || !strings.Contains(err.Error(), "dots") {
		t.Errorf("expected dotted-namespace rejection, got %v", err)
	}
}

func TestLoad_BadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "addonkit.toml")
	os.WriteFile(path, []byte("namespace = ["), 0o644)

	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}
