// Package clipboard copies rendered trees to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

const errorCopyFormat = "copying to clipboard: %w"

// ErrUnsupported is returned when the host has no clipboard utility.
var ErrUnsupported = errors.New("no clipboard utility available")

// Copier copies text to the system clipboard.
type Copier interface {
	Copy(text string) error
}

// Service implements Copier using github.com/atotto/clipboard.
type Service struct {
	writeAll    func(text string) error
	unsupported func() bool
}

// NewService returns a Service bound to the system clipboard.
func NewService() *Service {
	return &Service{
		writeAll:    clipboard.WriteAll,
		unsupported: func() bool { return clipboard.Unsupported },
	}
}

// Copy writes text to the clipboard.
func (service *Service) Copy(text string) error {
	if service.unsupported != nil && service.unsupported() {
		return fmt.Errorf(errorCopyFormat, ErrUnsupported)
	}
	if writeError := service.writeAll(text); writeError != nil {
		return fmt.Errorf(errorCopyFormat, writeError)
	}
	return nil
}

var _ Copier = (*Service)(nil)
