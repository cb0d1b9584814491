package input

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shnupta/sift/internal/session"
)

func TestResolveExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	src, err := Resolve(path)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if src.Kind != session.SourceFile {
		t.Fatalf("expected SourceFile, got %v", src.Kind)
	}
	if src.Owned {
		t.Fatal("caller-owned files must not be marked owned")
	}
}

func TestResolveMissingFile(t *testing.T) {
	if _, err := Resolve(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestSnapshotCopiesContent(t *testing.T) {
	src, err := Snapshot(strings.NewReader("a: 1\nb: 2\n"))
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	defer os.Remove(src.Path)

	if src.Kind != session.SourceTemp || !src.Owned {
		t.Fatalf("expected owned temp source, got %+v", src)
	}
	data, err := os.ReadFile(src.Path)
	if err != nil {
		t.Fatalf("reading snapshot: %v", err)
	}
	if string(data) != "a: 1\nb: 2\n" {
		t.Fatalf("snapshot content mismatch: %q", data)
	}
}
