// Package types provides shared data types for the sprite-differ tool.
// It includes scan options and progress structures used by the manifest
// scanner, along with utility functions for parsing and formatting sizes.
package types

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// Size constants for binary (IEC) units.
const (
	KiB int64 = 1024
	MiB int64 = 1024 * KiB
	GiB int64 = 1024 * MiB
	TiB int64 = 1024 * GiB
)

// ScanOptions configures manifest acquisition.
type ScanOptions struct {
	// Root is the base path the manifest is built from.
	Root string `json:"root"`

	// CheckpointID labels the resulting manifest. Empty generates a UUID.
	CheckpointID string `json:"checkpoint_id"`

	// Sprite is an optional sprite name recorded in the manifest.
	Sprite string `json:"sprite"`

	// Exclude contains glob patterns for paths to skip during scanning.
	Exclude []string `json:"exclude"`

	// HashWorkers is the number of concurrent SHA-256 hashing workers.
	HashWorkers int `json:"hash_workers"`

	// MaxHashSize skips content hashing for files larger than this many
	// bytes. Zero means no limit.
	MaxHashSize int64 `json:"max_hash_size"`
}

// ScanProgress reports real-time scan progress.
type ScanProgress struct {
	// DirsScanned is the number of directories processed so far.
	DirsScanned int64 `json:"dirs_scanned"`

	// FilesScanned is the number of files examined so far.
	FilesScanned int64 `json:"files_scanned"`

	// FilesHashed is the number of files whose content has been hashed.
	FilesHashed int64 `json:"files_hashed"`

	// BytesScanned is the total bytes of all files examined so far.
	BytesScanned int64 `json:"bytes_scanned"`

	// CurrentPath is the path currently being scanned.
	CurrentPath string `json:"current_path"`
}

// ScanError pairs a path with the error encountered there.
type ScanError struct {
	// Path is the file or directory path where the error occurred.
	Path string `json:"path"`

	// Error is the error message describing what went wrong.
	Error string `json:"error"`
}

// sizePattern matches size strings like "100M", "2G", "500K", "1.5GB", etc.
var sizePattern = regexp.MustCompile(`(?i)^\s*([0-9]+(?:\.[0-9]+)?)\s*([KMGT]?(?:i?B)?)\s*$`)

// ErrInvalidSize indicates that the size string could not be parsed.
var ErrInvalidSize = errors.New("invalid size format")

// ErrNegativeSize indicates that a negative size value was provided.
var ErrNegativeSize = errors.New("size cannot be negative")

// ParseSize parses a human-readable size string and returns the size in bytes.
// It supports plain byte counts ("1024"), byte suffixes ("512B"), and
// K/M/G/T units in both short ("100M") and IEC ("100MiB") spellings.
// Decimal values are supported and truncated to the nearest byte.
//
// Returns ErrInvalidSize if the format is not recognized.
// Returns ErrNegativeSize if the value is negative.
func ParseSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidSize)
	}

	if strings.HasPrefix(s, "-") {
		return 0, ErrNegativeSize
	}

	matches := sizePattern.FindStringSubmatch(s)
	if matches == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSize, s)
	}

	value, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSize, s)
	}

	suffix := strings.ToUpper(matches[2])
	suffix = strings.TrimSuffix(suffix, "IB")
	suffix = strings.TrimSuffix(suffix, "B")

	var multiplier int64
	switch suffix {
	case "":
		multiplier = 1
	case "K":
		multiplier = KiB
	case "M":
		multiplier = MiB
	case "G":
		multiplier = GiB
	case "T":
		multiplier = TiB
	default:
		return 0, fmt.Errorf("%w: unknown suffix %q", ErrInvalidSize, suffix)
	}

	return int64(value * float64(multiplier)), nil
}

// FormatSize converts a size in bytes to a human-readable string using
// binary (IEC) units for consistency with common filesystem tools.
func FormatSize(bytes int64) string {
	return humanize.IBytes(uint64(bytes))
}
