package output_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/temirov/pathstamp/internal/output"
	"github.com/temirov/pathstamp/internal/types"
)

const sampleRoot = "/srv/backend"

// sampleOutcomes covers every action once.
var sampleOutcomes = []types.Outcome{
	{Path: sampleRoot + "/main.go", RelativePath: "main.go", Action: types.ActionInsert},
	{Path: sampleRoot + "/new/path.go", RelativePath: "new/path.go", Action: types.ActionUpdate},
	{Path: sampleRoot + "/models/poi.go", RelativePath: "models/poi.go", Action: types.ActionUnchanged},
	{Path: sampleRoot + "/README.md", Action: types.ActionSkip},
	{Path: sampleRoot + "/locked.go", RelativePath: "locked.go", Action: types.ActionFail, Reason: "permission denied"},
}

// rawOutcomeExpected defines the raw progress log for sampleOutcomes.
const rawOutcomeExpected = "[INSERT] main.go\n" +
	"[UPDATE] new/path.go\n" +
	"\n" +
	"Done: 1 inserted, 1 updated, 1 unchanged, 1 skipped, 1 failed\n"

func renderOutcomes(testingInstance *testing.T, format string, dryRun bool) string {
	testingInstance.Helper()
	var buffer bytes.Buffer
	renderer, constructionError := output.NewOutcomeRenderer(&buffer, format, sampleRoot, dryRun)
	if constructionError != nil {
		testingInstance.Fatalf("constructing renderer: %v", constructionError)
	}
	for _, outcome := range sampleOutcomes {
		if handleError := renderer.Handle(outcome); handleError != nil {
			testingInstance.Fatalf("handle: %v", handleError)
		}
	}
	if flushError := renderer.Flush(); flushError != nil {
		testingInstance.Fatalf("flush: %v", flushError)
	}
	return buffer.String()
}

// TestRawOutcomeRenderer verifies progress lines and the summary.
func TestRawOutcomeRenderer(testingInstance *testing.T) {
	if actual := renderOutcomes(testingInstance, types.FormatRaw, false); actual != rawOutcomeExpected {
		testingInstance.Fatalf("unexpected raw output:\n%q\nwant:\n%q", actual, rawOutcomeExpected)
	}
}

// TestRawOutcomeRendererDryRun verifies the pending label in check mode.
func TestRawOutcomeRendererDryRun(testingInstance *testing.T) {
	actual := renderOutcomes(testingInstance, types.FormatRaw, true)
	if !strings.HasSuffix(actual, "Pending: 1 inserted, 1 updated, 1 unchanged, 1 skipped, 1 failed\n") {
		testingInstance.Fatalf("unexpected dry run output %q", actual)
	}
}

// TestJSONOutcomeRenderer verifies the structured report.
func TestJSONOutcomeRenderer(testingInstance *testing.T) {
	var report types.AnnotationReport
	if decodeError := json.Unmarshal([]byte(renderOutcomes(testingInstance, types.FormatJSON, false)), &report); decodeError != nil {
		testingInstance.Fatalf("decoding json: %v", decodeError)
	}
	if report.Root != sampleRoot || len(report.Outcomes) != 4 {
		testingInstance.Fatalf("unexpected report %+v", report)
	}
	expectedSummary := types.OutcomeSummary{Inserted: 1, Updated: 1, Unchanged: 1, Skipped: 1, Failed: 1}
	if report.Summary != expectedSummary {
		testingInstance.Fatalf("unexpected summary %+v", report.Summary)
	}
	if report.Outcomes[3].Reason != "permission denied" {
		testingInstance.Fatalf("missing failure reason %+v", report.Outcomes[3])
	}
}

// TestYAMLOutcomeRenderer verifies YAML encoding of the report.
func TestYAMLOutcomeRenderer(testingInstance *testing.T) {
	rendered := renderOutcomes(testingInstance, types.FormatYAML, true)
	var report types.AnnotationReport
	if decodeError := yaml.Unmarshal([]byte(rendered), &report); decodeError != nil {
		testingInstance.Fatalf("decoding yaml: %v", decodeError)
	}
	if !report.DryRun || report.Summary.Inserted != 1 || len(report.Outcomes) != 4 {
		testingInstance.Fatalf("unexpected report %+v", report)
	}
	if !strings.Contains(rendered, "action: INSERT") {
		testingInstance.Fatalf("expected action field in:\n%s", rendered)
	}
}

// TestNewOutcomeRendererRejectsUnknownFormat verifies format validation.
func TestNewOutcomeRendererRejectsUnknownFormat(testingInstance *testing.T) {
	if _, constructionError := output.NewOutcomeRenderer(&bytes.Buffer{}, "xml", sampleRoot, false); constructionError == nil {
		testingInstance.Fatalf("expected error for xml format")
	}
}

// TestWriteTree verifies raw passthrough and structured encoding of trees.
func TestWriteTree(testingInstance *testing.T) {
	node := &types.TreeNode{
		Name: "backend",
		Type: types.NodeTypeDirectory,
		Children: []*types.TreeNode{
			{Name: "main.go", Type: types.NodeTypeFile, Remark: "[entry]"},
		},
	}
	const rawText = "/\n└── main.go  # [entry]\n"

	var rawBuffer bytes.Buffer
	if writeError := output.WriteTree(&rawBuffer, types.FormatRaw, rawText, node); writeError != nil {
		testingInstance.Fatalf("raw: %v", writeError)
	}
	if rawBuffer.String() != rawText {
		testingInstance.Fatalf("unexpected raw output %q", rawBuffer.String())
	}

	var jsonBuffer bytes.Buffer
	if writeError := output.WriteTree(&jsonBuffer, types.FormatJSON, rawText, node); writeError != nil {
		testingInstance.Fatalf("json: %v", writeError)
	}
	var decoded types.TreeNode
	if decodeError := json.Unmarshal(jsonBuffer.Bytes(), &decoded); decodeError != nil {
		testingInstance.Fatalf("decoding json: %v", decodeError)
	}
	if len(decoded.Children) != 1 || decoded.Children[0].Remark != "[entry]" {
		testingInstance.Fatalf("unexpected decoded tree %+v", decoded)
	}

	var yamlBuffer bytes.Buffer
	if writeError := output.WriteTree(&yamlBuffer, types.FormatYAML, rawText, node); writeError != nil {
		testingInstance.Fatalf("yaml: %v", writeError)
	}
	if !strings.Contains(yamlBuffer.String(), "name: main.go") {
		testingInstance.Fatalf("unexpected yaml output:\n%s", yamlBuffer.String())
	}
}
