package filesystem

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteFileAtomic(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out", "editorial_data.js")

	if err := WriteFileAtomic(target, []byte("const A = 1;\n"), 0o644); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := WriteFileAtomic(target, []byte("const A = 2;\n"), 0o644); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	got, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "const A = 2;\n" {
		t.Errorf("content = %q", got)
	}

	entries, err := os.ReadDir(filepath.Dir(target))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the target, found %d entries", len(entries))
	}
	info, err := os.Stat(target)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Mode().Perm() != 0o644 {
		t.Errorf("perm = %o, want 644", info.Mode().Perm())
	}
}

func TestWriteReaderAtomic(t *testing.T) {
	target := filepath.Join(t.TempDir(), "missing.csv")
	if err := WriteReaderAtomic(target, strings.NewReader("ARTIST NAME\n"), 0o600); err != nil {
		t.Fatalf("WriteReaderAtomic: %v", err)
	}
	got, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "ARTIST NAME\n" {
		t.Errorf("content = %q", got)
	}
}

func TestWriteFileAtomicBadDir(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := WriteFileAtomic(filepath.Join(blocker, "x.js"), []byte("x"), 0o644); err == nil {
		t.Fatal("expected error when parent is a file")
	}
}
