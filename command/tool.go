package command

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/tbxark/briefing/structured"
	"github.com/tbxark/briefing/types"
)

const (
	fillFormToolName        = "fill_briefing"
	fillFormToolDescription = "Turn the user's free-text answer into form field updates, a submit request, or nothing."
)

const fillFormSystemPrompt = `You help a user fill a business briefing form written in Brazilian Portuguese.

Read the user input together with the current form state and decide:
- fill: the input carries information for one or more fields. Return one update per field, using the exact field name from the fields table. Copy the user's wording; do not invent or embellish. For choice fields use one of the listed options verbatim.
- submit: the user explicitly asks to send or submit the answers. Include updates only if the same input also provides field values.
- show: the user asks to see what has been filled so far.
- none: chatter or anything unrelated to the form.

Call the '%s' tool with the result.`

type fieldUpdate struct {
	Field string `json:"field" jsonschema:"required,description=Field name exactly as listed in the form fields table"`
	Value string `json:"value" jsonschema:"required,description=New value for the field"`
}

type fillIntent struct {
	Intent  string        `json:"intent" jsonschema:"required,enum=fill,enum=submit,enum=show,enum=none,description=What the user wants to do"`
	Updates []fieldUpdate `json:"updates,omitempty" jsonschema:"description=Field updates extracted from the input"`
}

// ToolBasedParser asks a tool-calling model to interpret free text.
type ToolBasedParser[T any] struct {
	chain *structured.Chain[*types.ToolRequest[T], fillIntent]
}

func NewToolBasedParser[T any](chatModel model.ToolCallingChatModel) (*ToolBasedParser[T], error) {
	chain, err := structured.NewChain[*types.ToolRequest[T], fillIntent](
		chatModel,
		buildFillPrompt[T],
		fillFormToolName,
		fillFormToolDescription,
	)
	if err != nil {
		return nil, err
	}
	return &ToolBasedParser[T]{chain: chain}, nil
}

func (p *ToolBasedParser[T]) ParseCommand(ctx context.Context, req *types.ToolRequest[T]) ([]Command, error) {
	result, err := p.chain.Invoke(ctx, req)
	if err != nil {
		return nil, err
	}
	if result == nil || result.Intent == "" {
		return nil, fmt.Errorf("empty intent returned by %s", fillFormToolName)
	}

	cmds := make([]Command, 0, len(result.Updates)+1)
	for _, u := range result.Updates {
		if u.Field == "" {
			continue
		}
		cmds = append(cmds, Command{Kind: Set, Field: u.Field, Value: u.Value})
	}
	switch result.Intent {
	case "submit":
		cmds = append(cmds, Command{Kind: Submit})
	case "show":
		cmds = append(cmds, Command{Kind: Show})
	case "fill", "none":
	default:
		return nil, fmt.Errorf("unknown intent %q returned by %s", result.Intent, fillFormToolName)
	}
	return cmds, nil
}

func buildFillPrompt[T any](ctx context.Context, req *types.ToolRequest[T]) ([]*schema.Message, error) {
	message, err := types.FormatToolRequest(req)
	if err != nil {
		return nil, fmt.Errorf("convert to prompt message failed: %w", err)
	}
	return []*schema.Message{
		schema.SystemMessage(fmt.Sprintf(fillFormSystemPrompt, fillFormToolName)),
		schema.UserMessage(message),
	}, nil
}
