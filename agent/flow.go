package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/tbxark/briefing/command"
	"github.com/tbxark/briefing/patch"
	"github.com/tbxark/briefing/types"
	"go.uber.org/zap"
)

// AlertMessage is the only thing a user learns about a failed submission.
const AlertMessage = "Ocorreu um erro ao processar."

var (
	ErrUnknownField       = errors.New("unknown field")
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
	ErrSubmission         = errors.New("submission failed")
	ErrNoParser           = errors.New("no command parser configured")
)

// FormFlow owns the form sessions held by its StateReadWriter and runs the
// validate, compose, summarize, dispatch pipeline on submit.
type FormFlow[T any] struct {
	spec       FormSpec[T]
	dispatcher Dispatcher
	store      StateReadWriter[T]
	summarizer Summarizer
	parser     command.Parser[T]
	logger     *zap.Logger

	schema  string
	fields  []types.FieldInfo
	allowed map[string]bool

	// mu serialises read-modify-write of session state. It is never held
	// while a submission is composing or dispatching.
	mu sync.Mutex
}

type Option[T any] func(*FormFlow[T])

func WithStore[T any](store StateReadWriter[T]) Option[T] {
	return func(f *FormFlow[T]) {
		f.store = store
	}
}

// WithSummarizer enables the rewrite step between compose and dispatch.
func WithSummarizer[T any](s Summarizer) Option[T] {
	return func(f *FormFlow[T]) {
		f.summarizer = s
	}
}

func WithParser[T any](p command.Parser[T]) Option[T] {
	return func(f *FormFlow[T]) {
		f.parser = p
	}
}

func WithLogger[T any](logger *zap.Logger) Option[T] {
	return func(f *FormFlow[T]) {
		f.logger = logger
	}
}

func NewFormFlow[T any](spec FormSpec[T], dispatcher Dispatcher, opts ...Option[T]) (*FormFlow[T], error) {
	if dispatcher == nil {
		return nil, errors.New("dispatcher is required")
	}
	schema, err := spec.JsonSchema()
	if err != nil {
		return nil, err
	}
	fields := spec.Fields()
	names := make([]string, len(fields))
	for i, field := range fields {
		names[i] = field.Name
	}
	f := &FormFlow[T]{
		spec:       spec,
		dispatcher: dispatcher,
		logger:     zap.NewNop(),
		schema:     schema,
		fields:     fields,
		allowed:    patch.AllowedPaths(names),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	if f.store == nil {
		f.store = NewMemoryStateReadWriter[T](NewMemoryCache[*State[T]](0), func(context.Context) T {
			return spec.Initial()
		})
	}
	return f, nil
}

func (f *FormFlow[T]) Schema() string {
	return f.schema
}

func (f *FormFlow[T]) Get(ctx context.Context) (*State[T], error) {
	return f.store.Read(ctx)
}

// Update replaces exactly one field and clears the error shown for it.
func (f *FormFlow[T]) Update(ctx context.Context, field, value string) (*State[T], error) {
	if !f.allowed[patch.Pointer(field)] {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	cur, err := f.store.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}
	form, err := patch.Apply(cur.FormState, []patch.Operation{patch.ReplaceField(field, value)}, f.allowed)
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", field, err)
	}
	if err := f.spec.CheckFacts(form); err != nil {
		return nil, fmt.Errorf("update %s: %w", field, err)
	}
	next := cur.withoutError(field)
	next.FormState = form
	if err := f.store.Write(ctx, next); err != nil {
		return nil, fmt.Errorf("write state: %w", err)
	}
	f.logger.Debug("Field updated", zap.String("field", field))
	return next, nil
}

func (f *FormFlow[T]) ClearError(ctx context.Context, field string) (*State[T], error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	cur, err := f.store.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}
	if _, ok := cur.Errors[field]; !ok {
		return cur, nil
	}
	next := cur.withoutError(field)
	if err := f.store.Write(ctx, next); err != nil {
		return nil, fmt.Errorf("write state: %w", err)
	}
	return next, nil
}

// Prefill carries every non-empty value of initial into the session. Fields
// it touches lose their errors like any other edit.
func (f *FormFlow[T]) Prefill(ctx context.Context, initial T) (*State[T], error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	cur, err := f.store.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}
	ops, err := patch.GeneratePatchesFromInitial(cur.FormState, initial)
	if err != nil {
		return nil, fmt.Errorf("failed to generate patches from initial values: %w", err)
	}
	if len(ops) == 0 {
		return cur, nil
	}
	form, err := patch.Apply(cur.FormState, ops, f.allowed)
	if err != nil {
		return nil, fmt.Errorf("failed to apply initial values: %w", err)
	}
	if err := f.spec.CheckFacts(form); err != nil {
		return nil, fmt.Errorf("failed to apply initial values: %w", err)
	}
	next := cur.next()
	next.FormState = form
	for _, op := range ops {
		delete(next.Errors, strings.TrimPrefix(op.Path, "/"))
	}
	if err := f.store.Write(ctx, next); err != nil {
		return nil, fmt.Errorf("write state: %w", err)
	}
	return next, nil
}

func (f *FormFlow[T]) Reset(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.store.Remove(ctx)
}

// Submit validates the session and, when nothing is missing, composes the
// message, optionally summarizes it and hands it to the dispatcher. The
// session is back to idle when Submit returns, whatever happened.
func (f *FormFlow[T]) Submit(ctx context.Context) (*Outcome, error) {
	form, errs, err := f.begin(ctx)
	if err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		return &Outcome{Errors: errs}, nil
	}
	defer f.finish(ctx)

	message, err := f.deliver(ctx, form)
	if err != nil {
		f.logger.Error("Erro ao enviar", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrSubmission, err)
	}
	f.logger.Info("Briefing dispatched", zap.Int("message_length", len(message)))
	return &Outcome{Message: message, Dispatched: true}, nil
}

func (f *FormFlow[T]) begin(ctx context.Context) (T, map[string]string, error) {
	var zero T
	f.mu.Lock()
	defer f.mu.Unlock()

	cur, err := f.store.Read(ctx)
	if err != nil {
		return zero, nil, fmt.Errorf("read state: %w", err)
	}
	if cur.Processing() {
		return zero, nil, ErrSubmissionInFlight
	}
	errs := f.spec.ValidateFacts(cur.FormState)
	next := cur.next()
	next.Errors = errs
	if len(errs) == 0 {
		next.Phase = types.PhaseProcessing
	}
	if err := f.store.Write(ctx, next); err != nil {
		return zero, nil, fmt.Errorf("write state: %w", err)
	}
	return cur.FormState, errs, nil
}

func (f *FormFlow[T]) finish(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()

	cur, err := f.store.Read(ctx)
	if err != nil {
		f.logger.Error("Failed to read state after submission", zap.Error(err))
		return
	}
	next := cur.next()
	next.Phase = types.PhaseIdle
	if err := f.store.Write(ctx, next); err != nil {
		f.logger.Error("Failed to reset processing flag", zap.Error(err))
	}
}

func (f *FormFlow[T]) deliver(ctx context.Context, form T) (message string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("recover from panic: %v", r)
		}
	}()
	message = f.spec.Summary(form)
	if f.summarizer != nil {
		name, category := f.spec.Subject(form)
		message = f.summarizer.Summarize(ctx, name, category, message)
	}
	if err := f.dispatcher.Dispatch(ctx, message); err != nil {
		return "", fmt.Errorf("dispatch: %w", err)
	}
	return message, nil
}

// Interpret turns one line of user input into commands using the configured
// parser.
func (f *FormFlow[T]) Interpret(ctx context.Context, input string) ([]command.Command, error) {
	if f.parser == nil {
		return nil, ErrNoParser
	}
	state, err := f.store.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}
	return f.parser.ParseCommand(ctx, &types.ToolRequest[T]{
		State:       state.FormState,
		StateSchema: f.schema,
		Phase:       state.Phase,
		Fields:      f.fields,
		Errors:      state.Errors,
		Input:       input,
	})
}

// Invoke interprets input and handles the resulting commands.
func (f *FormFlow[T]) Invoke(ctx context.Context, input string) (*Response[T], error) {
	cmds, err := f.Interpret(ctx, input)
	if err != nil {
		if errors.Is(err, command.ErrUnrecognized) {
			return f.respond(ctx, &Response[T]{
				Message:  "Não entendi. Digite \"help\" para ver os comandos.",
				Metadata: map[string]string{"error": err.Error()},
			})
		}
		return f.handleError(ctx, fmt.Errorf("failed to parse command: %w", err))
	}
	return f.Handle(ctx, cmds...)
}

// Handle consumes commands in order. Field-level problems are reported in
// the response message; only storage failures are returned as errors.
func (f *FormFlow[T]) Handle(ctx context.Context, cmds ...command.Command) (*Response[T], error) {
	resp := &Response[T]{Metadata: map[string]string{}}
	var lines []string
	for _, cmd := range cmds {
		resp.Metadata["command"] = string(cmd.Kind)
		switch cmd.Kind {
		case command.Set:
			if _, err := f.Update(ctx, cmd.Field, cmd.Value); err != nil {
				return f.handleError(ctx, err)
			}
			lines = append(lines, fmt.Sprintf("Campo %s atualizado.", cmd.Field))
		case command.Clear:
			if _, err := f.ClearError(ctx, cmd.Field); err != nil {
				return nil, err
			}
			lines = append(lines, fmt.Sprintf("Erro de %s removido.", cmd.Field))
		case command.Reset:
			if err := f.Reset(ctx); err != nil {
				return nil, err
			}
			lines = append(lines, "Formulário reiniciado.")
		case command.Submit:
			outcome, err := f.Submit(ctx)
			switch {
			case errors.Is(err, ErrSubmissionInFlight):
				lines = append(lines, "Aguarde, o envio anterior ainda está em andamento.")
			case err != nil:
				resp.Metadata["error"] = err.Error()
				lines = append(lines, AlertMessage)
			case len(outcome.Errors) > 0:
				resp.Outcome = outcome
				lines = append(lines, "Preencha os campos obrigatórios antes de enviar.")
			default:
				resp.Outcome = outcome
				lines = append(lines, "Respostas enviadas! O WhatsApp será aberto com a mensagem.")
			}
		case command.Quit:
			resp.Quit = true
		case command.Show, command.Help:
		default:
			return f.handleError(ctx, fmt.Errorf("unknown command: %s", cmd.Kind))
		}
	}
	resp.Message = strings.Join(lines, "\n")
	return f.respond(ctx, resp)
}

func (f *FormFlow[T]) respond(ctx context.Context, resp *Response[T]) (*Response[T], error) {
	state, err := f.store.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}
	resp.State = state
	return resp, nil
}

func (f *FormFlow[T]) handleError(ctx context.Context, err error) (*Response[T], error) {
	f.logger.Debug("Command rejected", zap.Error(err))
	return f.respond(ctx, &Response[T]{
		Message: fmt.Sprintf("Não foi possível aplicar: %s", err.Error()),
		Metadata: map[string]string{
			"error": err.Error(),
		},
	})
}
