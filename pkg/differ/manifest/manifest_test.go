package manifest

import (
	"path/filepath"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("derives totals from entries", func(t *testing.T) {
		t.Parallel()

		entries := []Entry{
			{Path: "a.txt", Type: TypeFile, Size: 10, SHA256: "aa"},
			{Path: "b.txt", Type: TypeFile, Size: 32, SHA256: "bb"},
			{Path: "sub", Type: TypeDirectory},
		}

		m := New("ckpt-1", "web-1", "/srv/app", entries)

		if m.TotalFiles != 2 {
			t.Errorf("TotalFiles = %d, want 2", m.TotalFiles)
		}
		if m.TotalDirs != 1 {
			t.Errorf("TotalDirs = %d, want 1", m.TotalDirs)
		}
		if m.TotalSize != 42 {
			t.Errorf("TotalSize = %d, want 42", m.TotalSize)
		}
		if m.CheckpointID != "ckpt-1" {
			t.Errorf("CheckpointID = %q, want %q", m.CheckpointID, "ckpt-1")
		}
		if m.CreatedAt.IsZero() {
			t.Error("CreatedAt is zero")
		}
	})

	t.Run("nil entries become empty file list", func(t *testing.T) {
		t.Parallel()

		m := New("ckpt-2", "", "/srv/app", nil)
		if m.Files == nil {
			t.Fatal("Files is nil, want empty slice")
		}
		if len(m.Files) != 0 || m.TotalFiles != 0 || m.TotalSize != 0 {
			t.Errorf("empty manifest has totals %d/%d", m.TotalFiles, m.TotalSize)
		}
	})
}

func TestDecode(t *testing.T) {
	t.Parallel()

	t.Run("missing files collection degrades to empty", func(t *testing.T) {
		t.Parallel()

		m, err := Decode([]byte(`{"checkpoint_id":"old-1","base_path":"/srv"}`))
		if err != nil {
			t.Fatalf("Decode() error = %v, want nil", err)
		}
		if m.Files == nil {
			t.Fatal("Files is nil, want empty slice")
		}
		if len(m.Files) != 0 {
			t.Errorf("len(Files) = %d, want 0", len(m.Files))
		}
	})

	t.Run("null files collection degrades to empty", func(t *testing.T) {
		t.Parallel()

		m, err := Decode([]byte(`{"checkpoint_id":"old-2","files":null}`))
		if err != nil {
			t.Fatalf("Decode() error = %v, want nil", err)
		}
		if m.Files == nil || len(m.Files) != 0 {
			t.Errorf("Files = %v, want empty slice", m.Files)
		}
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		t.Parallel()

		if _, err := Decode([]byte(`{not json`)); err == nil {
			t.Fatal("Decode() error = nil, want error")
		}
	})
}

func TestSaveLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.json")

	m := New("ckpt-3", "db-1", "/var/lib/db", []Entry{
		{Path: "data.db", Type: TypeFile, Size: 4096, Mode: "-rw-------",
			Mtime: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), SHA256: "cafe"},
	})

	if err := m.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if loaded.CheckpointID != m.CheckpointID {
		t.Errorf("CheckpointID = %q, want %q", loaded.CheckpointID, m.CheckpointID)
	}
	if len(loaded.Files) != 1 {
		t.Fatalf("len(Files) = %d, want 1", len(loaded.Files))
	}
	if loaded.Files[0] != m.Files[0] {
		t.Errorf("entry = %+v, want %+v", loaded.Files[0], m.Files[0])
	}
	if loaded.TotalSize != 4096 {
		t.Errorf("TotalSize = %d, want 4096", loaded.TotalSize)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	if _, err := Load(""); err == nil {
		t.Error("Load(\"\") error = nil, want error")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Load() error = nil for missing file, want error")
	}
}

func TestIndex(t *testing.T) {
	t.Parallel()

	t.Run("maps paths to entries", func(t *testing.T) {
		t.Parallel()

		m := New("c", "", "/", []Entry{
			{Path: "a", Type: TypeFile, Size: 1},
			{Path: "b", Type: TypeDirectory},
		})

		idx := m.Index()
		if len(idx) != 2 {
			t.Fatalf("len(idx) = %d, want 2", len(idx))
		}
		if idx["a"].Size != 1 {
			t.Errorf("idx[a].Size = %d, want 1", idx["a"].Size)
		}
		if idx["b"].Type != TypeDirectory {
			t.Errorf("idx[b].Type = %q, want directory", idx["b"].Type)
		}
	})

	t.Run("later duplicate wins", func(t *testing.T) {
		t.Parallel()

		m := New("c", "", "/", []Entry{
			{Path: "a", Type: TypeFile, Size: 1, SHA256: "first"},
			{Path: "a", Type: TypeFile, Size: 2, SHA256: "second"},
		})

		idx := m.Index()
		if idx["a"].SHA256 != "second" {
			t.Errorf("idx[a].SHA256 = %q, want %q", idx["a"].SHA256, "second")
		}
	})
}
