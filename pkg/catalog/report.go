package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Observer receives line-level diagnostics during a conversion. Converters
// call it instead of logging so they stay pure; the CLI wires it to zerolog
// and tests wire it to a recording sink. A nil Observer is valid and drops
// the diagnostics.
type Observer func(line int, message string)

// notify calls the observer when one is set.
func (o Observer) notify(line int, message string) {
	if o != nil {
		o(line, message)
	}
}

// SkippedLine records one input line a conversion could not use.
type SkippedLine struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// ConvertReport summarizes one conversion run.
type ConvertReport struct {
	RunID      string        `json:"run_id"`
	SourceFile string        `json:"source_file,omitempty"`
	Encoding   string        `json:"encoding,omitempty"`
	StartedAt  time.Time     `json:"started_at"`
	Converted  int           `json:"converted"`
	Skipped    []SkippedLine `json:"skipped"`
}

// NewConvertReport creates a report with a fresh run ID.
func NewConvertReport() *ConvertReport {
	return &ConvertReport{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
		Skipped:   []SkippedLine{},
	}
}

// RecordSkip adds one skipped line to the report.
func (r *ConvertReport) RecordSkip(line int, reason string) {
	r.Skipped = append(r.Skipped, SkippedLine{Line: line, Reason: reason})
}

// Markdown renders the report as a short markdown summary.
func (r *ConvertReport) Markdown() string {
	var builder strings.Builder

	builder.WriteString("# Conversion Report\n\n")
	builder.WriteString(fmt.Sprintf("- Run: `%s`\n", r.RunID))
	if r.SourceFile != "" {
		builder.WriteString(fmt.Sprintf("- Source: `%s`\n", r.SourceFile))
	}
	if r.Encoding != "" {
		builder.WriteString(fmt.Sprintf("- Encoding: %s\n", r.Encoding))
	}
	builder.WriteString(fmt.Sprintf("- Started: %s\n", r.StartedAt.Format(time.RFC3339)))
	builder.WriteString(fmt.Sprintf("- Converted: %d\n", r.Converted))
	builder.WriteString(fmt.Sprintf("- Skipped: %d\n", len(r.Skipped)))

	if len(r.Skipped) > 0 {
		builder.WriteString("\n| Line | Reason |\n|---|---|\n")
		for _, skipped := range r.Skipped {
			builder.WriteString(fmt.Sprintf("| %d | %s |\n", skipped.Line, skipped.Reason))
		}
	}

	return builder.String()
}

// SaveJSON writes the report to a file as indented JSON.
func (r *ConvertReport) SaveJSON(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
