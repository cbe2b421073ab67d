package textdiff

import (
	"fmt"
	"strings"
	"testing"
)

func TestDiff_Identical(t *testing.T) {
	t.Parallel()

	content := "a\nb\nc\n"
	fd := Diff("same.txt", content, content)

	if len(fd.Hunks) != 0 {
		t.Errorf("len(Hunks) = %d, want 0", len(fd.Hunks))
	}
	if fd.Additions != 0 || fd.Deletions != 0 {
		t.Errorf("additions/deletions = %d/%d, want 0/0", fd.Additions, fd.Deletions)
	}
	if fd.LinesBefore != fd.LinesAfter {
		t.Errorf("LinesBefore = %d, LinesAfter = %d, want equal", fd.LinesBefore, fd.LinesAfter)
	}
}

func TestDiff_BothEmpty(t *testing.T) {
	t.Parallel()

	fd := Diff("empty.txt", "", "")
	if len(fd.Hunks) != 0 {
		t.Errorf("len(Hunks) = %d, want 0", len(fd.Hunks))
	}
	if fd.LinesBefore != 0 || fd.LinesAfter != 0 {
		t.Errorf("line counts = %d/%d, want 0/0", fd.LinesBefore, fd.LinesAfter)
	}
}

func TestDiff_NewFile(t *testing.T) {
	t.Parallel()

	fd := Diff("new.txt", "", "a\nb\n")

	if len(fd.Hunks) != 1 {
		t.Fatalf("len(Hunks) = %d, want 1", len(fd.Hunks))
	}
	if fd.Deletions != 0 {
		t.Errorf("Deletions = %d, want 0", fd.Deletions)
	}
	// "a\nb\n" splits into "a", "b" and the trailing empty segment, which
	// counts as a real line.
	if fd.LinesAfter != 3 {
		t.Errorf("LinesAfter = %d, want 3", fd.LinesAfter)
	}
	if fd.Additions != 3 {
		t.Errorf("Additions = %d, want 3", fd.Additions)
	}

	hunk := fd.Hunks[0]
	if hunk.StartA != 1 || hunk.StartB != 1 {
		t.Errorf("hunk start = %d/%d, want 1/1", hunk.StartA, hunk.StartB)
	}
	want := []Line{
		{Kind: KindAdd, Content: "a"},
		{Kind: KindAdd, Content: "b"},
		{Kind: KindAdd, Content: ""},
	}
	if len(hunk.Lines) != len(want) {
		t.Fatalf("len(Lines) = %d, want %d", len(hunk.Lines), len(want))
	}
	for i, l := range hunk.Lines {
		if l != want[i] {
			t.Errorf("Lines[%d] = %+v, want %+v", i, l, want[i])
		}
	}
}

func TestDiff_DeletedFile(t *testing.T) {
	t.Parallel()

	fd := Diff("gone.txt", "only\n", "")

	if len(fd.Hunks) != 1 {
		t.Fatalf("len(Hunks) = %d, want 1", len(fd.Hunks))
	}
	if fd.Additions != 0 {
		t.Errorf("Additions = %d, want 0", fd.Additions)
	}
	if fd.Deletions != 2 {
		t.Errorf("Deletions = %d, want 2", fd.Deletions)
	}
	for _, l := range fd.Hunks[0].Lines {
		if l.Kind != KindDelete {
			t.Errorf("line kind = %q, want delete", l.Kind)
		}
	}
}

func TestDiff_SingleLineChange(t *testing.T) {
	t.Parallel()

	fd := Diff("f.txt", "a\nb\nc\n", "a\nx\nc\n")

	if len(fd.Hunks) != 1 {
		t.Fatalf("len(Hunks) = %d, want 1", len(fd.Hunks))
	}
	if fd.Additions != 1 || fd.Deletions != 1 {
		t.Errorf("additions/deletions = %d/%d, want 1/1", fd.Additions, fd.Deletions)
	}

	want := []Line{
		{Kind: KindContext, Content: "a"},
		{Kind: KindDelete, Content: "b"},
		{Kind: KindAdd, Content: "x"},
		{Kind: KindContext, Content: "c"},
		{Kind: KindContext, Content: ""},
	}
	hunk := fd.Hunks[0]
	if len(hunk.Lines) != len(want) {
		t.Fatalf("len(Lines) = %d, want %d", len(hunk.Lines), len(want))
	}
	for i, l := range hunk.Lines {
		if l != want[i] {
			t.Errorf("Lines[%d] = %+v, want %+v", i, l, want[i])
		}
	}
}

func TestDiff_TrailingLineAdded(t *testing.T) {
	t.Parallel()

	fd := Diff("f.txt", "a\n", "a\nb\n")

	if fd.Additions != 1 || fd.Deletions != 0 {
		t.Errorf("additions/deletions = %d/%d, want 1/0", fd.Additions, fd.Deletions)
	}
	if fd.LinesBefore != 2 || fd.LinesAfter != 3 {
		t.Errorf("line counts = %d/%d, want 2/3", fd.LinesBefore, fd.LinesAfter)
	}
}

func TestDiff_TieBreakPrefersDeleteSide(t *testing.T) {
	t.Parallel()

	// "a" and "b" swap positions. Either line could anchor the alignment;
	// the backtrack must deterministically keep "a" and treat the A-side
	// "b" as the deletion.
	fd := Diff("f.txt", "a\nb", "b\na")

	want := []Line{
		{Kind: KindAdd, Content: "b"},
		{Kind: KindContext, Content: "a"},
		{Kind: KindDelete, Content: "b"},
	}
	if len(fd.Hunks) != 1 {
		t.Fatalf("len(Hunks) = %d, want 1", len(fd.Hunks))
	}
	hunk := fd.Hunks[0]
	if len(hunk.Lines) != len(want) {
		t.Fatalf("len(Lines) = %d, want %d", len(hunk.Lines), len(want))
	}
	for i, l := range hunk.Lines {
		if l != want[i] {
			t.Errorf("Lines[%d] = %+v, want %+v", i, l, want[i])
		}
	}
}

func TestDiff_HunkSplitting(t *testing.T) {
	t.Parallel()

	// Interleave an insertion after every common line so the accumulating
	// hunk keeps growing through alignment steps that contribute changes.
	var before, after []string
	for i := 0; i < 60; i++ {
		common := fmt.Sprintf("common-%02d", i)
		before = append(before, common)
		after = append(after, common, fmt.Sprintf("inserted-%02d", i))
	}

	fd := Diff("big.txt", strings.Join(before, "\n"), strings.Join(after, "\n"))

	if len(fd.Hunks) < 2 {
		t.Fatalf("len(Hunks) = %d, want >= 2 (split expected)", len(fd.Hunks))
	}
	if fd.Additions != 60 || fd.Deletions != 0 {
		t.Errorf("additions/deletions = %d/%d, want 60/0", fd.Additions, fd.Deletions)
	}

	// Each hunk may exceed the bound only by the lines added in the step
	// that triggered the split decision.
	for i, h := range fd.Hunks {
		if len(h.Lines) > maxHunkLines+2 {
			t.Errorf("Hunks[%d] has %d lines, want <= %d", i, len(h.Lines), maxHunkLines+2)
		}
	}

	// The second hunk resumes at the cursor position after the split.
	if fd.Hunks[1].StartA != 27 || fd.Hunks[1].StartB != 52 {
		t.Errorf("Hunks[1] start = %d/%d, want 27/52", fd.Hunks[1].StartA, fd.Hunks[1].StartB)
	}
}

func TestLCS_Alignment(t *testing.T) {
	t.Parallel()

	alignment := lcs([]string{"a", "b", "c"}, []string{"a", "x", "c"})

	if len(alignment) != 2 {
		t.Fatalf("len(alignment) = %d, want 2", len(alignment))
	}
	if alignment[0].line != "a" || alignment[0].a != 0 || alignment[0].b != 0 {
		t.Errorf("alignment[0] = %+v, want (0,0,a)", alignment[0])
	}
	if alignment[1].line != "c" || alignment[1].a != 2 || alignment[1].b != 2 {
		t.Errorf("alignment[1] = %+v, want (2,2,c)", alignment[1])
	}
}

func TestUnified(t *testing.T) {
	t.Parallel()

	fd := Diff("f.txt", "a\nb\nc", "a\nx\nc")
	out := fd.Unified()

	if !strings.HasPrefix(out, "--- a/f.txt\n+++ b/f.txt\n") {
		t.Errorf("missing header: %q", out)
	}
	if !strings.Contains(out, "@@ -1,3 +1,3 @@\n") {
		t.Errorf("missing hunk header: %q", out)
	}
	for _, want := range []string{"\n a\n", "\n-b\n", "\n+x\n", "\n c\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %q", want, out)
		}
	}
}

func TestSplitLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"empty is zero lines", "", 0},
		{"no trailing newline", "a\nb", 2},
		{"trailing newline keeps empty segment", "a\nb\n", 3},
		{"lone newline is two lines", "\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := len(splitLines(tt.content)); got != tt.want {
				t.Errorf("splitLines(%q) = %d lines, want %d", tt.content, got, tt.want)
			}
		})
	}
}
