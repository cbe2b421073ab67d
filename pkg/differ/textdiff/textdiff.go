// Package textdiff computes line-based diffs between two text blobs using a
// longest-common-subsequence alignment, grouping the changed lines into
// hunks bounded to a renderable size.
//
// The engine is pure and synchronous: any two finite inputs, including
// empty ones, produce a valid result. The DP table is O(|A|·|B|) in both
// time and space, which is the known scalability ceiling for large inputs;
// callers should bound line counts before invoking it.
package textdiff

import "strings"

// LineKind classifies a diff line.
type LineKind string

const (
	// KindContext marks a line common to both sides.
	KindContext LineKind = "context"
	// KindAdd marks a line present only in the after side.
	KindAdd LineKind = "add"
	// KindDelete marks a line present only in the before side.
	KindDelete LineKind = "delete"
)

// Line is a single line within a hunk. Content carries no trailing newline.
type Line struct {
	Kind    LineKind `json:"type"`
	Content string   `json:"content"`
}

// Hunk is a contiguous block of context, added, and deleted lines.
// StartA and StartB are the 1-based line numbers where the hunk begins on
// each side.
type Hunk struct {
	StartA int    `json:"start_a"`
	StartB int    `json:"start_b"`
	Lines  []Line `json:"lines"`
}

// FileDiff is the complete line diff of one file.
type FileDiff struct {
	Filename    string `json:"filename"`
	LinesBefore int    `json:"lines_before"`
	LinesAfter  int    `json:"lines_after"`
	Hunks       []Hunk `json:"hunks"`
	Additions   int    `json:"additions"`
	Deletions   int    `json:"deletions"`
}

// maxHunkLines bounds individual hunks to keep them renderable. A hunk is
// closed once it exceeds this count and the current step contributed a
// non-context line.
const maxHunkLines = 50

// match is one aligned line: indices into each side plus the shared text.
type match struct {
	a, b int
	line string
}

// Diff computes the line diff between two text blobs. Identical inputs
// yield zero hunks; an empty side yields a single hunk of pure additions
// or deletions.
func Diff(filename, before, after string) *FileDiff {
	linesA := splitLines(before)
	linesB := splitLines(after)

	fd := &FileDiff{
		Filename:    filename,
		LinesBefore: len(linesA),
		LinesAfter:  len(linesB),
		Hunks:       []Hunk{},
	}

	if before == after {
		return fd
	}

	alignment := lcs(linesA, linesB)
	fd.Hunks = buildHunks(linesA, linesB, alignment)

	for _, h := range fd.Hunks {
		for _, l := range h.Lines {
			switch l.Kind {
			case KindAdd:
				fd.Additions++
			case KindDelete:
				fd.Deletions++
			}
		}
	}

	return fd
}

// splitLines splits content on newlines. The trailing empty segment
// produced by a final newline is kept as a real line: stripping it would
// observably change line counts and hunk boundaries. Empty content is a
// zero-line sequence.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}

// lcs computes the longest common subsequence of the two line slices as an
// alignment in increasing index order on both sides. Equality is exact
// line content, no whitespace normalization.
func lcs(a, b []string) []match {
	m, n := len(a), len(b)

	dp := make([][]int, m+1)
	for i := range dp {
		dp[i] = make([]int, n+1)
	}
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			if a[i-1] == b[j-1] {
				dp[i][j] = dp[i-1][j-1] + 1
			} else {
				dp[i][j] = max(dp[i-1][j], dp[i][j-1])
			}
		}
	}

	// Backtrack. On ties, prefer decreasing the A index so that an
	// ambiguous line is treated as a deletion source; this keeps the
	// output deterministic.
	var alignment []match
	i, j := m, n
	for i > 0 && j > 0 {
		switch {
		case a[i-1] == b[j-1]:
			alignment = append(alignment, match{a: i - 1, b: j - 1, line: a[i-1]})
			i--
			j--
		case dp[i-1][j] >= dp[i][j-1]:
			i--
		default:
			j--
		}
	}

	// Reverse into increasing order.
	for l, r := 0, len(alignment)-1; l < r; l, r = l+1, r-1 {
		alignment[l], alignment[r] = alignment[r], alignment[l]
	}
	return alignment
}

// buildHunks walks the alignment with cursors into each side, emitting the
// unmatched lines before each aligned pair as deletions and additions and
// the aligned line itself as context. Oversized hunks are closed at step
// boundaries.
func buildHunks(linesA, linesB []string, alignment []match) []Hunk {
	var hunks []Hunk
	var cur []Line
	i, j := 0, 0
	startA, startB := 1, 1

	flush := func() {
		if len(cur) > 0 {
			hunks = append(hunks, Hunk{StartA: startA, StartB: startB, Lines: cur})
			cur = nil
		}
	}

	for _, m := range alignment {
		changed := i < m.a || j < m.b
		for ; i < m.a; i++ {
			cur = append(cur, Line{Kind: KindDelete, Content: linesA[i]})
		}
		for ; j < m.b; j++ {
			cur = append(cur, Line{Kind: KindAdd, Content: linesB[j]})
		}
		cur = append(cur, Line{Kind: KindContext, Content: m.line})
		i, j = m.a+1, m.b+1

		if len(cur) > maxHunkLines && changed {
			flush()
			startA, startB = i+1, j+1
		}
	}

	for ; i < len(linesA); i++ {
		cur = append(cur, Line{Kind: KindDelete, Content: linesA[i]})
	}
	for ; j < len(linesB); j++ {
		cur = append(cur, Line{Kind: KindAdd, Content: linesB[j]})
	}
	flush()

	return hunks
}
