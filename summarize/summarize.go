package summarize

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
)

var (
	ErrMissingCredential = errors.New("API key is missing")
	ErrEmptyResponse     = errors.New("empty response")
)

// Summarizer rewrites a composed message. Implementations in this package
// never fail: whatever goes wrong, the caller gets the original message.
type Summarizer interface {
	Summarize(ctx context.Context, name, category, message string) string
}

// Result is the outcome of one backend call before it is collapsed to a
// plain string.
type Result struct {
	Text string
	Err  error
}

func Ok(text string) Result {
	return Result{Text: text}
}

func Err(reason error) Result {
	return Result{Err: reason}
}

// Or returns the trimmed text, or fallback when the call failed or produced
// nothing but whitespace.
func (r Result) Or(fallback string) string {
	if r.Err != nil {
		return fallback
	}
	text := strings.TrimSpace(r.Text)
	if text == "" {
		return fallback
	}
	return text
}

type backend interface {
	configured() bool
	call(ctx context.Context, prompt string, req Request) Result
}

type Request struct {
	Name     string
	Category string
	Message  string
}

type options struct {
	model   string
	baseURL string
	timeout time.Duration
	logger  *zap.Logger
}

type Option func(*options)

func WithModel(model string) Option {
	return func(o *options) {
		o.model = model
	}
}

func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = baseURL
	}
}

// WithTimeout bounds a single call. Zero means no bound.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func newOptions(defaultModel string, opts []Option) *options {
	o := &options{model: defaultModel, logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	if o.model == "" {
		o.model = defaultModel
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	return o
}

// fallback runs b and collapses its Result. It is the only place where a
// backend failure is observed.
func fallback(ctx context.Context, b backend, o *options, provider string, req Request) string {
	if !b.configured() {
		o.logger.Warn("API Key is missing. Returning original message.",
			zap.String("provider", provider),
			zap.Error(ErrMissingCredential))
		return req.Message
	}
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}
	res := safeCall(ctx, b, req)
	if res.Err == nil && strings.TrimSpace(res.Text) == "" {
		res = Err(ErrEmptyResponse)
	}
	if res.Err != nil {
		o.logger.Error("Error summarizing message",
			zap.String("provider", provider),
			zap.String("model", o.model),
			zap.Error(res.Err))
	}
	return res.Or(req.Message)
}

func safeCall(ctx context.Context, b backend, req Request) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Err(errors.New("summarizer panicked"))
		}
	}()
	return b.call(ctx, BuildPrompt(req.Name, req.Category, req.Message), req)
}
