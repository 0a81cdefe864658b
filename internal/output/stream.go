package output

import (
	"github.com/temirov/pathstamp/internal/types"
)

// OutcomeRenderer consumes annotation outcomes as they are produced and writes them out.
type OutcomeRenderer interface {
	Handle(outcome types.Outcome) error
	Flush() error
}
