package dispatch

import (
	"context"
	"errors"
	"net/url"
	"strings"
)

const (
	DefaultBaseURL     = "https://wa.me/"
	DefaultDestination = "5511936200509"
)

var ErrNoDestination = errors.New("destination is empty")

// Sink hands a finished message to the outside world. A nil error only
// means the hand-off happened, never that the message was delivered.
type Sink interface {
	Dispatch(ctx context.Context, message string) error
}

type SinkFunc func(ctx context.Context, message string) error

func (f SinkFunc) Dispatch(ctx context.Context, message string) error {
	return f(ctx, message)
}

// Link builds deep links to one destination.
type Link struct {
	BaseURL     string
	Destination string
}

func NewLink(destination string) Link {
	return Link{BaseURL: DefaultBaseURL, Destination: destination}
}

func (l Link) URL(message string) (string, error) {
	if strings.TrimSpace(l.Destination) == "" {
		return "", ErrNoDestination
	}
	base := l.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + url.PathEscape(l.Destination) + "?text=" + EncodeComponent(message), nil
}

// BuildURL is NewLink(destination).URL(message) for the default base.
func BuildURL(destination, message string) (string, error) {
	return NewLink(destination).URL(message)
}

// EncodeComponent percent-encodes every byte outside the unreserved set.
// Spaces become %20 and '+' becomes %2B, so url.QueryUnescape returns s
// unchanged.
func EncodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
