package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/pkg/browser"
	"go.uber.org/zap"
)

// BrowserSink opens the deep link in the user's default browser.
type BrowserSink struct {
	Link   Link
	Open   func(url string) error
	Logger *zap.Logger
}

func NewBrowserSink(link Link, logger *zap.Logger) *BrowserSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BrowserSink{Link: link, Open: browser.OpenURL, Logger: logger}
}

func (s *BrowserSink) Dispatch(ctx context.Context, message string) error {
	u, err := s.Link.URL(message)
	if err != nil {
		return err
	}
	s.Logger.Info("Opening deep link", zap.String("destination", s.Link.Destination))
	return s.Open(u)
}

// WriterSink prints the deep link, one per line.
type WriterSink struct {
	Link Link
	W    io.Writer
}

func (s *WriterSink) Dispatch(ctx context.Context, message string) error {
	u, err := s.Link.URL(message)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(s.W, u)
	return err
}

type captureKey struct{}

// Capture receives the deep link built during one request.
type Capture struct {
	mu  sync.Mutex
	url string
}

func (c *Capture) URL() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.url
}

func (c *Capture) set(u string) {
	c.mu.Lock()
	c.url = u
	c.mu.Unlock()
}

// WithCapture attaches a Capture to ctx for CaptureSink to fill.
func WithCapture(ctx context.Context) (context.Context, *Capture) {
	c := &Capture{}
	return context.WithValue(ctx, captureKey{}, c), c
}

var ErrNoCapture = errors.New("no capture in context")

// CaptureSink stores the deep link in the Capture carried by ctx, leaving it
// to the caller (an HTTP handler redirecting the browser) to open it.
type CaptureSink struct {
	Link Link
}

func (s *CaptureSink) Dispatch(ctx context.Context, message string) error {
	c, ok := ctx.Value(captureKey{}).(*Capture)
	if !ok {
		return ErrNoCapture
	}
	u, err := s.Link.URL(message)
	if err != nil {
		return err
	}
	c.set(u)
	return nil
}

// Recorder keeps every dispatched message. It is safe for concurrent use.
type Recorder struct {
	mu       sync.Mutex
	messages []string
}

func (r *Recorder) Dispatch(ctx context.Context, message string) error {
	r.mu.Lock()
	r.messages = append(r.messages, message)
	r.mu.Unlock()
	return nil
}

func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}
