package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadImageList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "images.txt")
	manifest := "plain.png\n42,cat,images/cat.jpg\na,b\n"
	if err := os.WriteFile(path, []byte(manifest), 0644); err != nil {
		t.Fatal(err)
	}

	paths, err := ReadImageList(path)
	if err != nil {
		t.Fatalf("ReadImageList failed: %v", err)
	}

	want := []string{"plain.png", "images/cat.jpg", "a,b"}
	if len(paths) != len(want) {
		t.Fatalf("Expected %d paths, got %d: %v", len(want), len(paths), paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("Path %d: expected %q, got %q", i, want[i], paths[i])
		}
	}
}

func TestReadImageListMissing(t *testing.T) {
	if _, err := ReadImageList(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("Expected error for missing manifest")
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if !FileExists(path) {
		t.Error("Expected FileExists to be true for an existing file")
	}
	if FileExists(filepath.Join(dir, "missing.txt")) {
		t.Error("Expected FileExists to be false for a missing file")
	}
	if FileExists(dir) {
		t.Error("Expected FileExists to be false for a directory")
	}
}
