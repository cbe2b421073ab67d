package output

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/aezell/sprite-differ/pkg/differ/compare"
	"github.com/aezell/sprite-differ/pkg/differ/types"
)

// PlainFormatter formats output as a simple tab-separated table.
// It produces plain text output suitable for scripting and piping.
// No colors or styling are applied.
type PlainFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *PlainFormatter) Format(w *bytes.Buffer, r *Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)

	if _, err := tw.Write([]byte("STATUS\tTYPE\tSIZE\tPATH\n")); err != nil {
		return err
	}

	for _, change := range r.Result.Changes {
		size := changeSize(change)
		row := string(change.Status) + "\t" + string(change.Type) + "\t" +
			size + "\t" + change.Path + "\n"
		if _, err := tw.Write([]byte(row)); err != nil {
			return err
		}
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	s := r.Result.Summary
	fmt.Fprintf(w, "\n%d added, %d modified, %d deleted (%+d bytes, similarity %.4f)\n",
		s.FilesAdded, s.FilesModified, s.FilesDeleted, s.BytesDelta, s.SimilarityScore)

	for _, fd := range r.FileDiffs {
		w.WriteString("\n")
		w.WriteString(fd.Unified())
	}

	return nil
}

// changeSize renders the most relevant size for a change row: after-size
// for added/modified entries, before-size for deleted ones.
func changeSize(c compare.Change) string {
	switch {
	case c.SizeAfter != nil:
		return types.FormatSize(*c.SizeAfter)
	case c.SizeBefore != nil:
		return types.FormatSize(*c.SizeBefore)
	default:
		return "-"
	}
}

func init() {
	Register("plain", func() Formatter {
		return &PlainFormatter{}
	})
}

// Ensure PlainFormatter implements Formatter.
var _ Formatter = (*PlainFormatter)(nil)
