// Package manifest defines the checkpoint manifest data model: a
// point-in-time inventory of the files and directories under a sprite's
// base path, with size, mode, and content hash metadata per entry.
package manifest

import "time"

// EntryType distinguishes files from directories.
type EntryType string

const (
	// TypeFile marks a regular file entry.
	TypeFile EntryType = "file"
	// TypeDirectory marks a directory entry.
	TypeDirectory EntryType = "directory"
)

// Entry represents a single filesystem entry in a manifest.
// Entries are immutable once constructed.
type Entry struct {
	// Path is the entry's path relative to the manifest base path.
	// Unique within a manifest.
	Path string `json:"path"`

	// Type is "file" or "directory".
	Type EntryType `json:"type"`

	// Size is the file size in bytes. Zero for directories.
	Size int64 `json:"size,omitempty"`

	// Mtime is the last modification time, if known.
	Mtime time.Time `json:"mtime,omitzero"`

	// Mode is the permission string (e.g. "-rw-r--r--").
	Mode string `json:"mode,omitempty"`

	// SHA256 is the lowercase hex content digest. Empty for directories
	// and for files that could not be read.
	SHA256 string `json:"sha256,omitempty"`
}

// IsFile reports whether the entry is a regular file.
func (e Entry) IsFile() bool {
	return e.Type == TypeFile
}

// Manifest is a complete inventory of a sprite's filesystem at one
// checkpoint.
type Manifest struct {
	// CheckpointID is the opaque snapshot identifier.
	CheckpointID string `json:"checkpoint_id"`

	// Sprite is the sprite name the checkpoint belongs to, if any.
	Sprite string `json:"sprite,omitempty"`

	// CreatedAt is when the manifest was taken.
	CreatedAt time.Time `json:"created_at"`

	// BasePath is the root path the inventory was taken from.
	BasePath string `json:"base_path"`

	// Files holds every entry. Order is not significant; paths are unique.
	Files []Entry `json:"files"`

	// TotalFiles counts type=file entries.
	TotalFiles int `json:"total_files"`

	// TotalDirs counts type=directory entries.
	TotalDirs int `json:"total_dirs"`

	// TotalSize is the sum of all file sizes in bytes.
	TotalSize int64 `json:"total_size"`
}
