package tuner

// Worker configuration limits.
const (
	// maxWorkers is the maximum number of hashing workers.
	maxWorkers = 64

	// minWorkers keeps some parallelism even on small systems since
	// hashing is I/O bound as much as CPU bound.
	minWorkers = 4

	// minQueueSize is the minimum hash job queue size.
	minQueueSize = 64

	// maxQueueSize is the maximum hash job queue size.
	maxQueueSize = 8192
)

// Memory-based queue sizing constants.
const (
	// bytesPerQueueEntry estimates memory per queued hash job: a path
	// string plus stat metadata.
	bytesPerQueueEntry = 512

	// queueMemoryFraction is the fraction of available RAM to use for the
	// job queue. Small, since hashing buffers consume the real memory.
	queueMemoryFraction = 0.01
)

// OptimalConfig contains tuned scanner configuration for the detected
// system resources.
type OptimalConfig struct {
	// HashWorkers is the number of content hashing workers.
	HashWorkers int

	// QueueSize is the hash job queue buffer size.
	QueueSize int
}

// Calculate returns optimal configuration based on system resources.
// Hashing gets NumCPU workers, bounded to [minWorkers, maxWorkers]; the
// queue is sized from available RAM.
func Calculate(resources SystemResources) OptimalConfig {
	workers := resources.CPUCores
	workers = max(workers, minWorkers)
	workers = min(workers, maxWorkers)

	return OptimalConfig{
		HashWorkers: workers,
		QueueSize:   calculateQueueSize(resources.AvailableRAM),
	}
}

// CalculateWithOverrides applies user overrides to the optimal config.
// A workerOverride greater than 0 replaces the calculated worker count,
// still respecting the maximum cap.
func CalculateWithOverrides(resources SystemResources, workerOverride int) OptimalConfig {
	config := Calculate(resources)

	if workerOverride > 0 {
		config.HashWorkers = min(workerOverride, maxWorkers)
	}

	return config
}

// calculateQueueSize determines queue size based on available memory.
func calculateQueueSize(availableRAM int64) int {
	queueMemory := float64(availableRAM) * queueMemoryFraction
	entries := int(queueMemory / bytesPerQueueEntry)

	entries = max(entries, minQueueSize)
	entries = min(entries, maxQueueSize)

	return entries
}
