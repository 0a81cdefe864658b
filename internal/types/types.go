// Package types defines every cross‑package data structure used by the pathstamp CLI.
package types

const (
	NodeTypeFile      = "file"
	NodeTypeDirectory = "directory"

	CommandAnnotate = "annotate"
	CommandTree     = "tree"

	FormatRaw  = "raw"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Action names what the annotator did, or would do, with a single file.
type Action string

const (
	// ActionSkip marks a file whose extension has no comment syntax.
	ActionSkip Action = "SKIP"
	// ActionInsert marks a file that received a new annotation line.
	ActionInsert Action = "INSERT"
	// ActionUpdate marks a file whose stale annotation line was replaced.
	ActionUpdate Action = "UPDATE"
	// ActionUnchanged marks a file that already carried the expected annotation.
	ActionUnchanged Action = "UNCHANGED"
	// ActionFail marks a file that could not be read or written.
	ActionFail Action = "FAILED"
)

// ValidatedPath is an absolute input path that already passed existence checks.
type ValidatedPath struct {
	AbsolutePath string
	IsDir        bool
}

// Outcome is the per-file result of an annotation pass.
type Outcome struct {
	Path         string `json:"path" yaml:"path"`
	RelativePath string `json:"relativePath" yaml:"relativePath"`
	Action       Action `json:"action" yaml:"action"`
	Reason       string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Changed reports whether the outcome rewrote (or would rewrite) the file.
func (outcome Outcome) Changed() bool {
	return outcome.Action == ActionInsert || outcome.Action == ActionUpdate
}

// OutcomeSummary counts outcomes per action.
type OutcomeSummary struct {
	Inserted  int `json:"inserted" yaml:"inserted"`
	Updated   int `json:"updated" yaml:"updated"`
	Unchanged int `json:"unchanged" yaml:"unchanged"`
	Skipped   int `json:"skipped" yaml:"skipped"`
	Failed    int `json:"failed" yaml:"failed"`
}

// Add counts a single outcome.
func (summary *OutcomeSummary) Add(outcome Outcome) {
	switch outcome.Action {
	case ActionInsert:
		summary.Inserted++
	case ActionUpdate:
		summary.Updated++
	case ActionUnchanged:
		summary.Unchanged++
	case ActionSkip:
		summary.Skipped++
	case ActionFail:
		summary.Failed++
	}
}

// AnnotationReport is the structured result of the annotate command.
type AnnotationReport struct {
	Root     string         `json:"root" yaml:"root"`
	DryRun   bool           `json:"dryRun,omitempty" yaml:"dryRun,omitempty"`
	Outcomes []Outcome      `json:"outcomes" yaml:"outcomes"`
	Summary  OutcomeSummary `json:"summary" yaml:"summary"`
}

// TreeNode represents a node of a directory tree returned by the tree command.
type TreeNode struct {
	Name     string      `json:"name" yaml:"name"`
	Type     string      `json:"type" yaml:"type"`
	Remark   string      `json:"remark,omitempty" yaml:"remark,omitempty"`
	Children []*TreeNode `json:"children,omitempty" yaml:"children,omitempty"`
}
