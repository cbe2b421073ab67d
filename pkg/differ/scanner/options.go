package scanner

import (
	"runtime"

	"github.com/aezell/sprite-differ/pkg/differ/types"
)

// Default option values applied by Validate.
const (
	// defaultMaxHashSize caps content hashing at 256 MiB per file. Larger
	// files keep an empty hash, which the comparator treats conservatively.
	defaultMaxHashSize = 256 * types.MiB

	// maxHashWorkers bounds the hashing pool to avoid excessive
	// context switching on large machines.
	maxHashWorkers = 64
)

// Options configures a manifest scan.
type Options struct {
	types.ScanOptions

	// OnProgress, if set, receives throttled progress updates during the
	// scan. It must not block.
	OnProgress func(types.ScanProgress)
}

// Validate applies defaults for unset or invalid values.
func (o *Options) Validate() error {
	if o.HashWorkers <= 0 {
		o.HashWorkers = runtime.NumCPU()
	}
	if o.HashWorkers > maxHashWorkers {
		o.HashWorkers = maxHashWorkers
	}
	if o.MaxHashSize <= 0 {
		o.MaxHashSize = defaultMaxHashSize
	}
	return nil
}
