package output

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

// yamlOutput represents the full YAML output structure.
type yamlOutput struct {
	CheckpointA string       `yaml:"checkpoint_a"`
	CheckpointB string       `yaml:"checkpoint_b"`
	Summary     yamlSummary  `yaml:"summary"`
	Changes     []yamlChange `yaml:"changes"`
}

// yamlSummary represents diff statistics in YAML output.
type yamlSummary struct {
	FilesAdded      int     `yaml:"files_added"`
	FilesModified   int     `yaml:"files_modified"`
	FilesDeleted    int     `yaml:"files_deleted"`
	TotalChanges    int     `yaml:"total_changes"`
	BytesAdded      int64   `yaml:"bytes_added"`
	BytesRemoved    int64   `yaml:"bytes_removed"`
	BytesDelta      int64   `yaml:"bytes_delta"`
	TotalFilesA     int     `yaml:"total_files_a"`
	TotalFilesB     int     `yaml:"total_files_b"`
	SimilarityScore float64 `yaml:"similarity_score"`
}

// yamlChange represents one changed path in YAML output.
type yamlChange struct {
	Path         string `yaml:"path"`
	Status       string `yaml:"status"`
	Type         string `yaml:"type"`
	SizeBefore   *int64 `yaml:"size_before,omitempty"`
	SizeAfter    *int64 `yaml:"size_after,omitempty"`
	SHA256Before string `yaml:"sha256_before,omitempty"`
	SHA256After  string `yaml:"sha256_after,omitempty"`
}

// YAMLFormatter formats output as YAML.
// It produces the same structure as JSONFormatter but in YAML format.
type YAMLFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *YAMLFormatter) Format(w *bytes.Buffer, r *Report) error {
	out := f.buildOutput(r)

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(out); err != nil {
		return err
	}
	return encoder.Close()
}

// buildOutput converts a Report to the YAML output structure.
func (f *YAMLFormatter) buildOutput(r *Report) yamlOutput {
	result := r.Result

	changes := make([]yamlChange, len(result.Changes))
	for i, c := range result.Changes {
		changes[i] = yamlChange{
			Path:         c.Path,
			Status:       string(c.Status),
			Type:         string(c.Type),
			SizeBefore:   c.SizeBefore,
			SizeAfter:    c.SizeAfter,
			SHA256Before: c.SHA256Before,
			SHA256After:  c.SHA256After,
		}
	}

	return yamlOutput{
		CheckpointA: result.CheckpointA,
		CheckpointB: result.CheckpointB,
		Summary: yamlSummary{
			FilesAdded:      result.Summary.FilesAdded,
			FilesModified:   result.Summary.FilesModified,
			FilesDeleted:    result.Summary.FilesDeleted,
			TotalChanges:    result.Summary.TotalChanges,
			BytesAdded:      result.Summary.BytesAdded,
			BytesRemoved:    result.Summary.BytesRemoved,
			BytesDelta:      result.Summary.BytesDelta,
			TotalFilesA:     result.Summary.TotalFilesA,
			TotalFilesB:     result.Summary.TotalFilesB,
			SimilarityScore: result.Summary.SimilarityScore,
		},
		Changes: changes,
	}
}

func init() {
	Register("yaml", func() Formatter {
		return &YAMLFormatter{}
	})
}

// Ensure YAMLFormatter implements Formatter.
var _ Formatter = (*YAMLFormatter)(nil)
