package rigfile

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsRigWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	// Non-rig files are ignored.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "arm.yaml")
	if err := os.WriteFile(path, []byte(fullRig), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Events:
		if got != path {
			t.Errorf("event = %q, want %q", got, path)
		}
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("no event for rig write")
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	// Events is closed once the run loop exits.
	select {
	case _, ok := <-w.Events:
		if ok {
			t.Error("expected Events to be closed")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Events not closed after Close")
	}
}

func TestNewWatcherMissingDir(t *testing.T) {
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestDebouncerPrunesOldPaths(t *testing.T) {
	d := newDebouncer(100 * time.Millisecond)
	t0 := time.Unix(0, 0)

	if !d.allow("a.yaml", t0) {
		t.Fatal("first event dropped")
	}
	if d.allow("a.yaml", t0.Add(50*time.Millisecond)) {
		t.Error("repeat within window not dropped")
	}
	if !d.allow("b.yaml", t0.Add(200*time.Millisecond)) {
		t.Error("event for new path dropped")
	}
	if len(d.last) != 1 {
		t.Errorf("tracked paths = %d, want 1", len(d.last))
	}
	if !d.allow("a.yaml", t0.Add(250*time.Millisecond)) {
		t.Error("event after window dropped")
	}
}
