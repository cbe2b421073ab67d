package output

import (
	"bytes"
	"encoding/json"

	"github.com/aezell/sprite-differ/pkg/differ/compare"
	"github.com/aezell/sprite-differ/pkg/differ/textdiff"
)

// jsonOutput is the diff result exactly as downstream machine consumers
// expect it, with optional per-file content diffs appended.
type jsonOutput struct {
	*compare.Result
	FileDiffs []*textdiff.FileDiff `json:"file_diffs,omitempty"`
}

// JSONFormatter formats output as a single indented JSON object matching
// the diff result wire shape. Machine consumers rely on the field names
// and the added/modified/deleted change ordering bit-exact.
type JSONFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *JSONFormatter) Format(w *bytes.Buffer, r *Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(jsonOutput{
		Result:    r.Result,
		FileDiffs: r.FileDiffs,
	})
}

func init() {
	Register("json", func() Formatter {
		return &JSONFormatter{}
	})
}

// Ensure JSONFormatter implements Formatter.
var _ Formatter = (*JSONFormatter)(nil)

// JSONLFormatter formats output as newline-delimited JSON (one change per
// line). This format is suitable for streaming processing with tools
// like jq.
type JSONLFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *JSONLFormatter) Format(w *bytes.Buffer, r *Report) error {
	for _, change := range r.Result.Changes {
		data, err := json.Marshal(change)
		if err != nil {
			return err
		}
		w.Write(data)
		w.WriteByte('\n')
	}
	return nil
}

func init() {
	Register("jsonl", func() Formatter {
		return &JSONLFormatter{}
	})
}

// Ensure JSONLFormatter implements Formatter.
var _ Formatter = (*JSONLFormatter)(nil)
