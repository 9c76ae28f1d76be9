package summarize

import (
	"context"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/tbxark/briefing/structured"
)

const (
	summarizeToolName        = "summarize_contact"
	summarizeToolDescription = "Return the contact card fields for a WhatsApp message."
)

type card struct {
	Name    string `json:"name" jsonschema:"required,description=Nome do remetente"`
	Subject string `json:"subject" jsonschema:"required,description=Assunto ou categoria do contato"`
	Summary string `json:"summary" jsonschema:"required,description=Resumo em tópicos ou parágrafo curto com emojis adequados"`
}

// ChatModel summarizes through any eino tool-calling chat model and renders
// the structured answer as the four-line contact card.
type ChatModel struct {
	chain *structured.Chain[Request, card]
	opts  *options
}

var _ Summarizer = (*ChatModel)(nil)

// NewChatModel accepts a nil chatModel, which yields a pass-through
// summarizer, mirroring NewGemini without an API key.
func NewChatModel(chatModel model.ToolCallingChatModel, opts ...Option) (*ChatModel, error) {
	o := newOptions("", opts)
	s := &ChatModel{opts: o}
	if chatModel == nil {
		return s, nil
	}
	chain, err := structured.NewChain[Request, card](
		chatModel,
		buildCardPrompt,
		summarizeToolName,
		summarizeToolDescription,
	)
	if err != nil {
		return nil, err
	}
	s.chain = chain
	return s, nil
}

func (s *ChatModel) Summarize(ctx context.Context, name, category, message string) string {
	return fallback(ctx, s, s.opts, "chat_model", Request{Name: name, Category: category, Message: message})
}

func (s *ChatModel) configured() bool {
	return s.chain != nil
}

func (s *ChatModel) call(ctx context.Context, _ string, req Request) Result {
	out, err := s.chain.Invoke(ctx, req)
	if err != nil {
		return Err(err)
	}
	if out == nil || strings.TrimSpace(out.Summary) == "" {
		return Err(ErrEmptyResponse)
	}
	name := strings.TrimSpace(out.Name)
	if name == "" {
		name = req.Name
	}
	subject := strings.TrimSpace(out.Subject)
	if subject == "" {
		subject = req.Category
	}
	return Ok(FormatCard(name, subject, strings.TrimSpace(out.Summary)))
}

func buildCardPrompt(ctx context.Context, req Request) ([]*schema.Message, error) {
	return []*schema.Message{
		schema.SystemMessage("Você resume mensagens de contato para WhatsApp. Responda chamando a ferramenta '" + summarizeToolName + "'."),
		schema.UserMessage(BuildPrompt(req.Name, req.Category, req.Message)),
	}, nil
}
