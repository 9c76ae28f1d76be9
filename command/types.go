package command

import (
	"context"
	"errors"

	"github.com/tbxark/briefing/types"
)

type Kind string

const (
	Set    Kind = "set"
	Clear  Kind = "clear"
	Submit Kind = "submit"
	Show   Kind = "show"
	Reset  Kind = "reset"
	Help   Kind = "help"
	Quit   Kind = "quit"
)

// Command is one discrete event consumed by the form flow.
type Command struct {
	Kind  Kind   `json:"kind"`
	Field string `json:"field,omitempty"`
	Value string `json:"value,omitempty"`
}

var ErrUnrecognized = errors.New("unrecognized input")

type Parser[T any] interface {
	ParseCommand(ctx context.Context, req *types.ToolRequest[T]) ([]Command, error)
}
