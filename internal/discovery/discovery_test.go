package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sethgrid/bolita/internal/storage"
)

func TestFindConfigFileWalksUp(t *testing.T) {
	tmpDir := t.TempDir()

	path, err := storage.InitPet("Bolita", tmpDir, storage.FormatYAML)
	if err != nil {
		t.Fatalf("Failed to initialize pet: %v", err)
	}

	deep := filepath.Join(tmpDir, "a", "b", "c")
	if err := os.MkdirAll(deep, 0755); err != nil {
		t.Fatalf("Failed to create dirs: %v", err)
	}

	found, ok, err := FindConfigFile(deep)
	if err != nil {
		t.Fatalf("FindConfigFile returned error: %v", err)
	}
	if !ok {
		t.Fatal("Expected to find config")
	}
	want, _ := filepath.Abs(path)
	if found != want {
		t.Errorf("Expected %s, got %s", want, found)
	}
}

func TestFindConfigFilePrefersNearest(t *testing.T) {
	tmpDir := t.TempDir()
	inner := filepath.Join(tmpDir, "project")

	if _, err := storage.InitPet("Outer", tmpDir, storage.FormatTOML); err != nil {
		t.Fatalf("Failed to initialize outer pet: %v", err)
	}
	innerPath, err := storage.InitPet("Inner", inner, storage.FormatTOML)
	if err != nil {
		t.Fatalf("Failed to initialize inner pet: %v", err)
	}

	found, ok, err := FindConfigFile(inner)
	if err != nil || !ok {
		t.Fatalf("Expected to find config, ok=%v err=%v", ok, err)
	}
	if want, _ := filepath.Abs(innerPath); found != want {
		t.Errorf("Expected %s, got %s", want, found)
	}
}

func TestResolveExplicit(t *testing.T) {
	tmpDir := t.TempDir()

	if _, err := Resolve(filepath.Join(tmpDir, "nope.toml"), tmpDir); err == nil {
		t.Error("Expected error for missing explicit config")
	}

	path, err := storage.InitPet("Bolita", tmpDir, storage.FormatTOML)
	if err != nil {
		t.Fatalf("Failed to initialize pet: %v", err)
	}
	got, err := Resolve(path, "/")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got != path {
		t.Errorf("Expected %s, got %s", path, got)
	}
}
