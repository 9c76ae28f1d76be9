package agent

import (
	"context"

	"github.com/tbxark/briefing/types"
)

type FormSpec[T any] interface {
	JsonSchema() (string, error)
	Fields() []types.FieldInfo
	Initial() T

	// CheckFacts rejects values the form can never hold, such as an option
	// outside a closed choice list.
	CheckFacts(current T) error
	// ValidateFacts maps each missing required field to its message.
	ValidateFacts(current T) map[string]string

	Summary(current T) string
	Subject(current T) (name, category string)
}

// Summarizer rewrites a composed message. It must return the original
// message on any failure.
type Summarizer interface {
	Summarize(ctx context.Context, name, category, message string) string
}

type Dispatcher interface {
	Dispatch(ctx context.Context, message string) error
}
