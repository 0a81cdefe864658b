package annotate

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	temporaryFilePattern    = ".pathstamp-*"
	errorCreateTempFormat   = "creating temporary file in %s: %w"
	errorWriteTempFormat    = "writing temporary file %s: %w"
	errorCloseTempFormat    = "closing temporary file %s: %w"
	errorChmodTempFormat    = "setting mode on %s: %w"
	errorRenameTempFormat   = "replacing %s: %w"
	errorWriteInPlaceFormat = "writing %s: %w"
)

// FileWriter replaces the full content of an existing file.
type FileWriter interface {
	WriteFile(path string, content []byte, mode fs.FileMode) error
}

// InPlaceWriter truncates and rewrites the file. It is not atomic: a crash mid-write can
// leave a partially written file.
type InPlaceWriter struct{}

// WriteFile overwrites path with content.
func (InPlaceWriter) WriteFile(path string, content []byte, mode fs.FileMode) error {
	if writeError := os.WriteFile(path, content, mode); writeError != nil {
		return fmt.Errorf(errorWriteInPlaceFormat, path, writeError)
	}
	return nil
}

// AtomicWriter writes to a temporary sibling and renames it over the original.
type AtomicWriter struct{}

// WriteFile replaces path with content via write-to-temp-then-rename.
func (AtomicWriter) WriteFile(path string, content []byte, mode fs.FileMode) error {
	directory := filepath.Dir(path)
	temporaryFile, createError := os.CreateTemp(directory, temporaryFilePattern)
	if createError != nil {
		return fmt.Errorf(errorCreateTempFormat, directory, createError)
	}
	temporaryPath := temporaryFile.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(temporaryPath)
		}
	}()

	if _, writeError := temporaryFile.Write(content); writeError != nil {
		_ = temporaryFile.Close()
		return fmt.Errorf(errorWriteTempFormat, temporaryPath, writeError)
	}
	if closeError := temporaryFile.Close(); closeError != nil {
		return fmt.Errorf(errorCloseTempFormat, temporaryPath, closeError)
	}
	if chmodError := os.Chmod(temporaryPath, mode); chmodError != nil {
		return fmt.Errorf(errorChmodTempFormat, temporaryPath, chmodError)
	}
	if renameError := os.Rename(temporaryPath, path); renameError != nil {
		return fmt.Errorf(errorRenameTempFormat, path, renameError)
	}
	committed = true
	return nil
}

var (
	_ FileWriter = InPlaceWriter{}
	_ FileWriter = AtomicWriter{}
)
