package output

import (
	"io"

	"github.com/temirov/pathstamp/internal/types"
)

// WriteTree writes rawText for raw output, or the encoded node for JSON and YAML.
func WriteTree(writer io.Writer, format string, rawText string, node *types.TreeNode) error {
	if format == types.FormatRaw {
		_, writeError := io.WriteString(writer, rawText)
		return writeError
	}
	return encodeDocument(writer, format, node)
}
