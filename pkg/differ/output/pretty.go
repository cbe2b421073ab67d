package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aezell/sprite-differ/pkg/differ/compare"
	"github.com/aezell/sprite-differ/pkg/differ/textdiff"
)

// PrettyFormatter formats output with colors, tables, and visual styling
// using lipgloss. This is the default formatter for interactive terminal
// usage.
type PrettyFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *PrettyFormatter) Format(w *bytes.Buffer, r *Report) error {
	w.WriteString(f.formatHeader(r.Result))

	if len(r.Result.Changes) == 0 {
		w.WriteString(MutedStyle.Render("No changes.") + "\n")
	} else {
		w.WriteString(f.formatChanges(r.Result.Changes))
	}

	for _, fd := range r.FileDiffs {
		w.WriteString("\n")
		w.WriteString(f.formatFileDiff(fd))
	}

	w.WriteString(f.formatFooter(r.Result.Summary))
	return nil
}

// formatHeader renders the boxed header naming the compared checkpoints.
func (f *PrettyFormatter) formatHeader(res *compare.Result) string {
	var sb strings.Builder
	sb.WriteString(TitleStyle.Render("Checkpoint Diff"))
	sb.WriteString("\n")
	sb.WriteString(LabelStyle.Render("From: "))
	sb.WriteString(ValueStyle.Render(res.CheckpointA))
	sb.WriteString("\n")
	sb.WriteString(LabelStyle.Render("To:   "))
	sb.WriteString(ValueStyle.Render(res.CheckpointB))
	return HeaderBox.Render(sb.String()) + "\n"
}

// formatChanges renders one colored row per change.
func (f *PrettyFormatter) formatChanges(changes []compare.Change) string {
	var sb strings.Builder
	for _, change := range changes {
		marker, style := changeMarker(change.Status)
		line := fmt.Sprintf("%s %s", marker, change.Path)
		if size := changeSizeDetail(change); size != "" {
			line += " " + MutedStyle.Render(size)
		}
		sb.WriteString(style.Render(line))
		sb.WriteString("\n")
	}
	return sb.String()
}

// formatFileDiff renders a colored unified diff for one modified file.
func (f *PrettyFormatter) formatFileDiff(fd *textdiff.FileDiff) string {
	var sb strings.Builder
	sb.WriteString(TitleStyle.Render(fd.Filename))
	sb.WriteString(" ")
	sb.WriteString(MutedStyle.Render(fd.Stat()))
	sb.WriteString("\n")

	for _, hunk := range fd.Hunks {
		header := fmt.Sprintf("@@ -%d +%d @@", hunk.StartA, hunk.StartB)
		sb.WriteString(MutedStyle.Render(header))
		sb.WriteString("\n")
		for _, line := range hunk.Lines {
			switch line.Kind {
			case textdiff.KindAdd:
				sb.WriteString(AddedStyle.Render("+" + line.Content))
			case textdiff.KindDelete:
				sb.WriteString(DeletedStyle.Render("-" + line.Content))
			default:
				sb.WriteString(" " + line.Content)
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// formatFooter renders the boxed summary statistics.
func (f *PrettyFormatter) formatFooter(s compare.Summary) string {
	var sb strings.Builder
	sb.WriteString(AddedStyle.Render(fmt.Sprintf("%d added", s.FilesAdded)))
	sb.WriteString(MutedStyle.Render("  ·  "))
	sb.WriteString(ModifiedStyle.Render(fmt.Sprintf("%d modified", s.FilesModified)))
	sb.WriteString(MutedStyle.Render("  ·  "))
	sb.WriteString(DeletedStyle.Render(fmt.Sprintf("%d deleted", s.FilesDeleted)))
	sb.WriteString("\n")
	sb.WriteString(LabelStyle.Render("Bytes: "))
	sb.WriteString(ValueStyle.Render(fmt.Sprintf("+%d / -%d (net %+d)", s.BytesAdded, s.BytesRemoved, s.BytesDelta)))
	sb.WriteString("\n")
	sb.WriteString(LabelStyle.Render("Similarity: "))
	sb.WriteString(ValueStyle.Render(fmt.Sprintf("%.4f", s.SimilarityScore)))
	return FooterBox.Render(sb.String()) + "\n"
}

// changeMarker maps a change status to its row marker and style.
func changeMarker(status compare.Status) (string, lipgloss.Style) {
	switch status {
	case compare.StatusAdded:
		return "+", AddedStyle
	case compare.StatusDeleted:
		return "-", DeletedStyle
	default:
		return "~", ModifiedStyle
	}
}

// changeSizeDetail renders the size transition for a change, when known.
func changeSizeDetail(c compare.Change) string {
	switch {
	case c.SizeBefore != nil && c.SizeAfter != nil:
		if *c.SizeBefore == *c.SizeAfter {
			return ""
		}
		return fmt.Sprintf("(%d -> %d bytes)", *c.SizeBefore, *c.SizeAfter)
	case c.SizeAfter != nil:
		return fmt.Sprintf("(%d bytes)", *c.SizeAfter)
	case c.SizeBefore != nil:
		return fmt.Sprintf("(%d bytes)", *c.SizeBefore)
	default:
		return ""
	}
}

func init() {
	Register("pretty", func() Formatter {
		return &PrettyFormatter{}
	})
}

// Ensure PrettyFormatter implements Formatter.
var _ Formatter = (*PrettyFormatter)(nil)
