package overrides

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	data := []byte(`
commands:
  Move:
    roles: [Moderator, Admin]
  upload:
    disabled: true
`)

	result, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	move, ok := result["move"]
	if !ok {
		t.Fatal("expected move override")
	}
	if len(move.Roles) != 2 || move.Roles[0] != "Moderator" {
		t.Errorf("expected roles [Moderator Admin], got %v", move.Roles)
	}
	if !result["upload"].Disabled {
		t.Error("expected upload to be disabled")
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("commands: [")); err == nil {
		t.Error("expected error for invalid YAML, got nil")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	f, err := Load(filepath.Join(t.TempDir(), "overrides.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.Overrides()) != 0 {
		t.Errorf("expected no overrides, got %v", f.Overrides())
	}
}

func TestFile_WatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.yaml")
	if err := os.WriteFile(path, []byte("commands: {}\n"), 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 10)
	if err := f.Watch(ctx, func() { changed <- struct{}{} }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := os.WriteFile(path, []byte("commands:\n  delete:\n    disabled: true\n"), 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case <-changed:
			if f.Overrides()["delete"].Disabled {
				return
			}
		case <-deadline:
			t.Fatal("expected overrides to reload")
		}
	}
}
