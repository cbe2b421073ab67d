package textdiff

import (
	"fmt"
	"strings"
)

// prefix returns the unified diff prefix character for a line kind.
func (k LineKind) prefix() string {
	switch k {
	case KindAdd:
		return "+"
	case KindDelete:
		return "-"
	default:
		return " "
	}
}

// Unified renders the diff in standard unified diff format.
func (d *FileDiff) Unified() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("--- a/%s\n", d.Filename))
	sb.WriteString(fmt.Sprintf("+++ b/%s\n", d.Filename))

	for _, hunk := range d.Hunks {
		countA, countB := 0, 0
		for _, line := range hunk.Lines {
			switch line.Kind {
			case KindContext:
				countA++
				countB++
			case KindDelete:
				countA++
			case KindAdd:
				countB++
			}
		}

		sb.WriteString(fmt.Sprintf("@@ -%d,%d +%d,%d @@\n",
			hunk.StartA, countA, hunk.StartB, countB))

		for _, line := range hunk.Lines {
			sb.WriteString(line.Kind.prefix())
			sb.WriteString(line.Content)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// Stat returns a short "+N -M" summary of the diff.
func (d *FileDiff) Stat() string {
	return fmt.Sprintf("+%d -%d", d.Additions, d.Deletions)
}
