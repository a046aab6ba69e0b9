package output

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDerivePath(t *testing.T) {
	cases := []struct {
		name  string
		input string
		dir   string
		ext   string
		want  string
	}{
		{"strip underscore", "builds/_zvt.txt", "", "", "builds/zvt.txt"},
		{"only one underscore", "builds/__zvt.txt", "", "", "builds/_zvt.txt"},
		{"output dir", "builds/_zvt.txt", "out", "", "out/zvt.txt"},
		{"json extension", "builds/_zvt.txt", "", ".json", "builds/zvt.json"},
		{"other dir keeps name", "builds/zvt.txt", "clean", "", "clean/zvt.txt"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DerivePath(tc.input, tc.dir, tc.ext)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != filepath.FromSlash(tc.want) {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDerivePathRefusesInput(t *testing.T) {
	_, err := DerivePath("builds/zvt.txt", "", "")
	if !errors.Is(err, ErrSameOutputPath) {
		t.Fatalf("expected ErrSameOutputPath, got %v", err)
	}
}

func TestWriteAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "zvt.txt")

	if err := os.WriteFile(path, []byte("old\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := WriteAtomic(path, []byte("    0:00   Overlord 15 of 14\n")); err != nil {
		t.Fatalf("WriteAtomic: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "    0:00   Overlord 15 of 14\n" {
		t.Errorf("got %q", got)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %v", entries)
	}
}

func TestWriteAtomicMissingDir(t *testing.T) {
	err := WriteAtomic(filepath.Join(t.TempDir(), "nope", "zvt.txt"), []byte("x"))
	if err == nil {
		t.Fatal("expected error writing into a missing directory")
	}
}
