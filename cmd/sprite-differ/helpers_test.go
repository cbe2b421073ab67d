package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aezell/sprite-differ/pkg/differ/manifest"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{input: "short", maxLen: 10, want: "short"},
		{input: "exactly-10", maxLen: 10, want: "exactly-10"},
		{input: "a-longer-string", maxLen: 10, want: "a-longe..."},
		{input: "abc", maxLen: 2, want: "ab"},
	}

	for _, tt := range tests {
		if got := truncateString(tt.input, tt.maxLen); got != tt.want {
			t.Errorf("truncateString(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
		}
	}
}

func TestLargestFiles(t *testing.T) {
	entries := []manifest.Entry{
		{Path: "small.txt", Type: manifest.TypeFile, Size: 10},
		{Path: "big.bin", Type: manifest.TypeFile, Size: 1000},
		{Path: "dir", Type: manifest.TypeDirectory},
		{Path: "mid.txt", Type: manifest.TypeFile, Size: 100},
	}

	top := largestFiles(entries, 2)
	if len(top) != 2 {
		t.Fatalf("got %d entries, want 2", len(top))
	}
	if top[0].Path != "big.bin" || top[1].Path != "mid.txt" {
		t.Errorf("unexpected order: %q, %q", top[0].Path, top[1].Path)
	}
}

func TestLargestFilesTieBreak(t *testing.T) {
	entries := []manifest.Entry{
		{Path: "b.txt", Type: manifest.TypeFile, Size: 10},
		{Path: "a.txt", Type: manifest.TypeFile, Size: 10},
	}

	top := largestFiles(entries, 10)
	if top[0].Path != "a.txt" {
		t.Errorf("equal sizes should order by path, got %q first", top[0].Path)
	}
}

func TestResolveDir(t *testing.T) {
	dir := t.TempDir()

	got, err := resolveDir(dir)
	if err != nil {
		t.Fatalf("resolveDir(%q) error = %v", dir, err)
	}
	if !filepath.IsAbs(got) {
		t.Errorf("resolveDir should return an absolute path, got %q", got)
	}

	if _, err := resolveDir(filepath.Join(dir, "missing")); err == nil {
		t.Error("expected error for missing directory")
	}

	file := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := resolveDir(file); err == nil {
		t.Error("expected error for non-directory path")
	}
}

func TestReadTextFile(t *testing.T) {
	dir := t.TempDir()

	text := filepath.Join(dir, "text.txt")
	if err := os.WriteFile(text, []byte("line one\nline two\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	content, err := readTextFile(text)
	if err != nil {
		t.Fatalf("readTextFile failed: %v", err)
	}
	if content != "line one\nline two\n" {
		t.Errorf("content = %q", content)
	}

	binary := filepath.Join(dir, "blob.bin")
	if err := os.WriteFile(binary, []byte{0x00, 0x01, 0x02}, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := readTextFile(binary); err == nil {
		t.Error("expected error for binary file")
	}

	if _, err := readTextFile(filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}
