package config

// Default configuration values.
const (
	// DefaultMaxHashSize is the largest file (as a size string) whose
	// content is hashed during a scan. Larger files keep an empty hash.
	DefaultMaxHashSize = "256M"

	// DefaultHashWorkers of 0 lets the tuner size the pool.
	DefaultHashWorkers = 0

	// DefaultWatchDebounce is how long the watcher waits after the last
	// filesystem event before rescanning, in milliseconds.
	DefaultWatchDebounce = 500

	// DefaultRetentionDays is how long stored checkpoints are kept.
	DefaultRetentionDays = 30
)

// DefaultExclusions are glob/prefix patterns skipped during scans.
var DefaultExclusions = []string{
	".git",
	"node_modules",
	"*.swp",
	"/proc",
	"/sys",
	"/dev",
}
