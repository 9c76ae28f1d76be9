package summarize

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-3-flash-preview"

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini summarizes through Google's Gemini API. Built without an API key it
// is a pass-through that logs a warning on every call.
type Gemini struct {
	models contentGenerator
	opts   *options
}

var _ Summarizer = (*Gemini)(nil)

func NewGemini(ctx context.Context, apiKey string, opts ...Option) (*Gemini, error) {
	o := newOptions(DefaultGeminiModel, opts)
	g := &Gemini{opts: o}
	if apiKey == "" {
		return g, nil
	}
	config := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if o.baseURL != "" {
		config.HTTPOptions = genai.HTTPOptions{BaseURL: o.baseURL}
	}
	client, err := genai.NewClient(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	g.models = client.Models
	return g, nil
}

func (g *Gemini) Summarize(ctx context.Context, name, category, message string) string {
	return fallback(ctx, g, g.opts, "gemini", Request{Name: name, Category: category, Message: message})
}

func (g *Gemini) configured() bool {
	return g.models != nil
}

func (g *Gemini) call(ctx context.Context, prompt string, _ Request) Result {
	resp, err := g.models.GenerateContent(ctx, g.opts.model, genai.Text(prompt), nil)
	if err != nil {
		return Err(fmt.Errorf("GenAI generate failed: %w", err))
	}
	if resp == nil {
		return Err(ErrEmptyResponse)
	}
	return Ok(resp.Text())
}
