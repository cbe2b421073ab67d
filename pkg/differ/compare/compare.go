// Package compare implements the manifest diff engine. It classifies every
// path across two checkpoint manifests as added, modified, or deleted and
// aggregates summary statistics including a content-hash similarity score.
//
// The engine is a pure, synchronous transformation: it accepts fully
// materialized manifests and returns a fully materialized result, with no
// I/O and no shared state. Invocations are independent and safe to run
// concurrently for different manifest pairs.
package compare

import (
	"math"
	"sort"

	"github.com/aezell/sprite-differ/pkg/differ/manifest"
)

// Status classifies how a path changed between two manifests.
type Status string

const (
	// StatusAdded marks paths present only in the second manifest.
	StatusAdded Status = "added"
	// StatusModified marks files whose size or content hash changed.
	StatusModified Status = "modified"
	// StatusDeleted marks paths present only in the first manifest.
	StatusDeleted Status = "deleted"
)

// Change describes a single changed path. Before fields are populated for
// modified and deleted entries, after fields for added and modified ones.
type Change struct {
	Path         string             `json:"path"`
	Status       Status             `json:"status"`
	Type         manifest.EntryType `json:"type"`
	SizeBefore   *int64             `json:"size_before,omitempty"`
	SizeAfter    *int64             `json:"size_after,omitempty"`
	SHA256Before string             `json:"sha256_before,omitempty"`
	SHA256After  string             `json:"sha256_after,omitempty"`
}

// Summary aggregates change counts and byte deltas for a comparison.
type Summary struct {
	FilesAdded    int   `json:"files_added"`
	FilesModified int   `json:"files_modified"`
	FilesDeleted  int   `json:"files_deleted"`
	TotalChanges  int   `json:"total_changes"`
	BytesAdded    int64 `json:"bytes_added"`
	BytesRemoved  int64 `json:"bytes_removed"`
	BytesDelta    int64 `json:"bytes_delta"`
	TotalFilesA   int   `json:"total_files_a"`
	TotalFilesB   int   `json:"total_files_b"`

	// SimilarityScore is the Jaccard coefficient over the sets of distinct
	// content hashes in the two manifests, in [0,1] rounded to 4 decimals.
	SimilarityScore float64 `json:"similarity_score"`
}

// Result is the complete outcome of comparing two manifests. Changes are
// ordered added, then modified, then deleted, each group sorted by path.
type Result struct {
	CheckpointA string   `json:"checkpoint_a"`
	CheckpointB string   `json:"checkpoint_b"`
	Summary     Summary  `json:"summary"`
	Changes     []Change `json:"changes"`
}

// Compare diffs two checkpoint manifests. It classifies every path via
// hash-set algebra (O(|A|+|B|), no pairwise comparison) and never fails:
// a manifest with no files simply compares as empty.
func Compare(a, b *manifest.Manifest) *Result {
	idxA := a.Index()
	idxB := b.Index()

	var addedPaths, deletedPaths, commonPaths []string
	for path := range idxB {
		if _, ok := idxA[path]; ok {
			commonPaths = append(commonPaths, path)
		} else {
			addedPaths = append(addedPaths, path)
		}
	}
	for path := range idxA {
		if _, ok := idxB[path]; !ok {
			deletedPaths = append(deletedPaths, path)
		}
	}

	sort.Strings(addedPaths)
	sort.Strings(deletedPaths)
	sort.Strings(commonPaths)

	result := &Result{
		CheckpointA: a.CheckpointID,
		CheckpointB: b.CheckpointID,
		Changes:     []Change{},
	}
	summary := &result.Summary

	for _, path := range addedPaths {
		entry := idxB[path]
		size := entry.Size
		result.Changes = append(result.Changes, Change{
			Path:        path,
			Status:      StatusAdded,
			Type:        entry.Type,
			SizeAfter:   &size,
			SHA256After: entry.SHA256,
		})
		summary.FilesAdded++
		if entry.IsFile() {
			summary.BytesAdded += entry.Size
		}
	}

	for _, path := range commonPaths {
		before := idxA[path]
		after := idxB[path]

		// Only file/file pairings can be modified. Directories carry no
		// content hash, and a file replaced by a directory (or vice versa)
		// already surfaces through its children.
		if !before.IsFile() || !after.IsFile() {
			continue
		}
		if before.SHA256 == after.SHA256 && before.Size == after.Size {
			continue
		}

		sizeBefore, sizeAfter := before.Size, after.Size
		result.Changes = append(result.Changes, Change{
			Path:         path,
			Status:       StatusModified,
			Type:         manifest.TypeFile,
			SizeBefore:   &sizeBefore,
			SizeAfter:    &sizeAfter,
			SHA256Before: before.SHA256,
			SHA256After:  after.SHA256,
		})
		summary.FilesModified++

		// A grown file contributes to bytes_added, a shrunk one to
		// bytes_removed, never both.
		if after.Size > before.Size {
			summary.BytesAdded += after.Size - before.Size
		} else {
			summary.BytesRemoved += before.Size - after.Size
		}
	}

	for _, path := range deletedPaths {
		entry := idxA[path]
		size := entry.Size
		result.Changes = append(result.Changes, Change{
			Path:         path,
			Status:       StatusDeleted,
			Type:         entry.Type,
			SizeBefore:   &size,
			SHA256Before: entry.SHA256,
		})
		summary.FilesDeleted++
		if entry.IsFile() {
			summary.BytesRemoved += entry.Size
		}
	}

	summary.TotalChanges = summary.FilesAdded + summary.FilesModified + summary.FilesDeleted
	summary.BytesDelta = summary.BytesAdded - summary.BytesRemoved
	summary.TotalFilesA = countFiles(a)
	summary.TotalFilesB = countFiles(b)
	summary.SimilarityScore = similarity(idxA, idxB)

	return result
}

// countFiles counts type=file entries, independent of classification.
func countFiles(m *manifest.Manifest) int {
	n := 0
	for _, e := range m.Files {
		if e.IsFile() {
			n++
		}
	}
	return n
}

// similarity computes the Jaccard coefficient over the sets of content
// hashes present on each side. Entries without a hash are excluded from
// both sets. Two manifests with no hashable files score 1.0 by convention.
func similarity(idxA, idxB map[string]manifest.Entry) float64 {
	hashesA := hashSet(idxA)
	hashesB := hashSet(idxB)

	if len(hashesA) == 0 && len(hashesB) == 0 {
		return 1.0
	}

	intersection := 0
	for h := range hashesA {
		if _, ok := hashesB[h]; ok {
			intersection++
		}
	}
	union := len(hashesA) + len(hashesB) - intersection

	return math.Round(float64(intersection)/float64(union)*10000) / 10000
}

// hashSet collects the distinct non-empty content hashes in an index.
func hashSet(idx map[string]manifest.Entry) map[string]struct{} {
	set := make(map[string]struct{}, len(idx))
	for _, e := range idx {
		if e.SHA256 != "" {
			set[e.SHA256] = struct{}{}
		}
	}
	return set
}
