package agent

import (
	"maps"

	"github.com/tbxark/briefing/types"
)

// State is one immutable snapshot of a form session. Flow methods never
// modify a State they have read; they write a new one.
type State[T any] struct {
	Phase     types.Phase       `json:"phase" jsonschema:"enum=idle,enum=processing"`
	FormState T                 `json:"form_state"`
	Errors    map[string]string `json:"errors,omitempty"`
}

func (s *State[T]) next() *State[T] {
	return &State[T]{
		Phase:     s.Phase,
		FormState: s.FormState,
		Errors:    maps.Clone(s.Errors),
	}
}

func (s *State[T]) withoutError(field string) *State[T] {
	out := s.next()
	delete(out.Errors, field)
	return out
}

// Processing reports whether a submission is in flight.
func (s *State[T]) Processing() bool {
	return s.Phase == types.PhaseProcessing
}

// Outcome is the result of one submission attempt. Errors is non-empty
// exactly when validation stopped the submission before dispatch.
type Outcome struct {
	Errors     map[string]string `json:"errors,omitempty"`
	Message    string            `json:"message,omitempty"`
	Dispatched bool              `json:"dispatched"`
}

type Response[T any] struct {
	Message  string            `json:"message,omitempty"`
	State    *State[T]         `json:"state,omitempty"`
	Outcome  *Outcome          `json:"outcome,omitempty"`
	Quit     bool              `json:"quit,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}
