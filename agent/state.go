package agent

import (
	"context"

	"github.com/tbxark/briefing/types"
)

// StateReadWriter provides read/write access to state using context for routing.
type StateReadWriter[T any] interface {
	InitState(ctx context.Context) *State[T]
	Remove(ctx context.Context) error
	Read(ctx context.Context) (*State[T], error)
	Write(ctx context.Context, state *State[T]) error
}

type stateKeyContext struct{}

const defaultStateKey = "default"

// WithStateKey sets a routing key for state storage in the context.
func WithStateKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, stateKeyContext{}, key)
}

// StateKeyFromContext gets the routing key from the context.
func StateKeyFromContext(ctx context.Context) (string, bool) {
	key, ok := ctx.Value(stateKeyContext{}).(string)
	return key, ok
}

func stateKeyOrDefault(ctx context.Context) (string, bool) {
	key, ok := StateKeyFromContext(ctx)
	if ok && key != "" {
		return key, true
	}
	return defaultStateKey, true
}

// MemoryStateReadWriter keeps one State per routing key in a Cache.
type MemoryStateReadWriter[T any] struct {
	store Store[*State[T]]
	init  func(ctx context.Context) T
}

func NewMemoryStateReadWriter[T any](core Cache[*State[T]], init func(ctx context.Context) T) *MemoryStateReadWriter[T] {
	return &MemoryStateReadWriter[T]{
		store: NewStore(core, "form:state", stateKeyOrDefault),
		init:  init,
	}
}

func (m *MemoryStateReadWriter[T]) InitState(ctx context.Context) *State[T] {
	var form T
	if m.init != nil {
		form = m.init(ctx)
	}
	return &State[T]{
		Phase:     types.PhaseIdle,
		FormState: form,
		Errors:    map[string]string{},
	}
}

func (m *MemoryStateReadWriter[T]) Read(ctx context.Context) (*State[T], error) {
	state, ok, err := m.store.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return m.InitState(ctx), nil
	}
	return state, nil
}

func (m *MemoryStateReadWriter[T]) Write(ctx context.Context, state *State[T]) error {
	if state.Phase == "" {
		state.Phase = types.PhaseIdle
	}
	return m.store.Set(ctx, state)
}

func (m *MemoryStateReadWriter[T]) Remove(ctx context.Context) error {
	return m.store.Del(ctx)
}
