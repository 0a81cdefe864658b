// Package output renders annotation outcomes and directory trees as raw text, JSON, or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/temirov/pathstamp/internal/types"
)

const (
	progressLineFormat    = "[%s] %s\n"
	summaryLineFormat     = "%d inserted, %d updated, %d unchanged, %d skipped, %d failed"
	doneLabel             = "Done: "
	pendingLabel          = "Pending: "
	jsonIndent            = "  "
	errorUnsupportedWrite = "unsupported format '%s'"
	errorEncodeFormat     = "encoding %s output: %w"
)

// NewOutcomeRenderer returns the renderer for format.
// Raw output streams progress lines; JSON and YAML emit one document on Flush.
func NewOutcomeRenderer(stdout io.Writer, format string, root string, dryRun bool) (OutcomeRenderer, error) {
	switch format {
	case types.FormatRaw:
		return &rawOutcomeRenderer{stdout: stdout, dryRun: dryRun}, nil
	case types.FormatJSON, types.FormatYAML:
		return &structuredOutcomeRenderer{
			stdout: stdout,
			format: format,
			report: types.AnnotationReport{Root: root, DryRun: dryRun, Outcomes: []types.Outcome{}},
		}, nil
	default:
		return nil, fmt.Errorf(errorUnsupportedWrite, format)
	}
}

// FormatSummaryLine formats counts per action.
func FormatSummaryLine(summary types.OutcomeSummary) string {
	return fmt.Sprintf(summaryLineFormat, summary.Inserted, summary.Updated, summary.Unchanged, summary.Skipped, summary.Failed)
}

type rawOutcomeRenderer struct {
	stdout  io.Writer
	dryRun  bool
	summary types.OutcomeSummary
}

// Handle prints a progress line for every file that was, or would be, rewritten.
func (renderer *rawOutcomeRenderer) Handle(outcome types.Outcome) error {
	renderer.summary.Add(outcome)
	if !outcome.Changed() {
		return nil
	}
	_, writeError := fmt.Fprintf(renderer.stdout, progressLineFormat, outcome.Action, outcome.RelativePath)
	return writeError
}

func (renderer *rawOutcomeRenderer) Flush() error {
	label := doneLabel
	if renderer.dryRun {
		label = pendingLabel
	}
	_, writeError := fmt.Fprintf(renderer.stdout, "\n%s%s\n", label, FormatSummaryLine(renderer.summary))
	return writeError
}

type structuredOutcomeRenderer struct {
	stdout io.Writer
	format string
	report types.AnnotationReport
}

func (renderer *structuredOutcomeRenderer) Handle(outcome types.Outcome) error {
	renderer.report.Summary.Add(outcome)
	if outcome.Action == types.ActionSkip {
		return nil
	}
	renderer.report.Outcomes = append(renderer.report.Outcomes, outcome)
	return nil
}

func (renderer *structuredOutcomeRenderer) Flush() error {
	return encodeDocument(renderer.stdout, renderer.format, renderer.report)
}

// encodeDocument writes value as a single JSON or YAML document.
func encodeDocument(writer io.Writer, format string, value any) error {
	switch format {
	case types.FormatJSON:
		encoder := json.NewEncoder(writer)
		encoder.SetIndent("", jsonIndent)
		if encodeError := encoder.Encode(value); encodeError != nil {
			return fmt.Errorf(errorEncodeFormat, format, encodeError)
		}
		return nil
	case types.FormatYAML:
		encoder := yaml.NewEncoder(writer)
		encoder.SetIndent(len(jsonIndent))
		if encodeError := encoder.Encode(value); encodeError != nil {
			return fmt.Errorf(errorEncodeFormat, format, encodeError)
		}
		if closeError := encoder.Close(); closeError != nil {
			return fmt.Errorf(errorEncodeFormat, format, closeError)
		}
		return nil
	default:
		return fmt.Errorf(errorUnsupportedWrite, format)
	}
}
