package navcommands

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigInitWritesExampleConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "navigator.yaml")
	cmd := &ConfigInitCommand{Output: path}
	if err := cmd.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file to exist: %v", err)
	}
}

func TestConfigInitRefusesToOverwriteWithoutForce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "navigator.yaml")
	if err := os.WriteFile(path, []byte("map: {}\n"), 0644); err != nil {
		t.Fatalf("failed to seed file: %v", err)
	}
	cmd := &ConfigInitCommand{Output: path}
	if err := cmd.Run(); err == nil {
		t.Fatalf("expected an error when the output file already exists")
	}
}

func TestConfigShowPrintsLoadedConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "navigator.yaml")
	initCmd := &ConfigInitCommand{Output: path}
	if err := initCmd.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	showCmd := &ConfigShowCommand{Config: path}
	if err := showCmd.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
