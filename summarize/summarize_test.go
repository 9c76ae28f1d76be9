package summarize

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/genai"
)

const original = "Olá, realizei a assinatura da minha estrutura e preenchi o formulário."

type fakeGenerator struct {
	resp  *genai.GenerateContentResponse
	err   error
	panic bool
	model string
	text  string
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	if f.panic {
		panic("sdk exploded")
	}
	f.model = model
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.text = contents[0].Parts[0].Text
	}
	return f.resp, f.err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: genai.NewContentFromText(text, genai.RoleModel),
		}},
	}
}

func observed() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return zap.New(core), logs
}

func TestResultOr(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "resumo", Ok("  resumo\n").Or("x"))
	assert.Equal(t, "x", Ok(" \n\t").Or("x"))
	assert.Equal(t, "x", Err(errors.New("fail")).Or("x"))
}

func TestGeminiWithoutKeyReturnsOriginal(t *testing.T) {
	t.Parallel()
	logger, logs := observed()
	g, err := NewGemini(context.Background(), "", WithLogger(logger))
	require.NoError(t, err)

	assert.Equal(t, original, g.Summarize(context.Background(), "Acme", "Moda", original))
	require.Equal(t, 1, logs.FilterMessage("API Key is missing. Returning original message.").Len())
}

func TestGeminiSuccess(t *testing.T) {
	t.Parallel()
	gen := &fakeGenerator{resp: textResponse("*Novo Contato* 🔔\n👤 *Nome:* Acme\n")}
	g := &Gemini{models: gen, opts: newOptions(DefaultGeminiModel, nil)}

	got := g.Summarize(context.Background(), "Acme", "Moda", original)
	assert.Equal(t, "*Novo Contato* 🔔\n👤 *Nome:* Acme", got)
	assert.Equal(t, "gemini-3-flash-preview", gen.model)
	assert.Equal(t, BuildPrompt("Acme", "Moda", original), gen.text)
}

func TestGeminiFallbacks(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		gen  *fakeGenerator
	}{
		{"error", &fakeGenerator{err: errors.New("quota exceeded")}},
		{"empty text", &fakeGenerator{resp: textResponse("   ")}},
		{"nil response", &fakeGenerator{}},
		{"no candidates", &fakeGenerator{resp: &genai.GenerateContentResponse{}}},
		{"panic", &fakeGenerator{panic: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			logger, logs := observed()
			g := &Gemini{models: tt.gen, opts: newOptions(DefaultGeminiModel, []Option{WithLogger(logger)})}
			assert.Equal(t, original, g.Summarize(context.Background(), "Acme", "Moda", original))
			assert.Equal(t, 1, logs.FilterMessage("Error summarizing message").Len())
		})
	}
}

func TestGeminiServerError(t *testing.T) {
	t.Parallel()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"code":500,"message":"internal","status":"INTERNAL"}}`))
	}))
	defer srv.Close()

	g, err := NewGemini(context.Background(), "test-key", WithBaseURL(srv.URL), WithTimeout(5*time.Second))
	require.NoError(t, err)
	assert.Equal(t, original, g.Summarize(context.Background(), "Acme", "Moda", original))
	assert.Positive(t, hits.Load())
}

type cardModel struct {
	args string
	err  error
}

func (m *cardModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &schema.Message{
		Role: schema.Assistant,
		ToolCalls: []schema.ToolCall{{
			Function: schema.FunctionCall{Name: summarizeToolName, Arguments: m.args},
		}},
	}, nil
}

func (m *cardModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("not supported")
}

func (m *cardModel) WithTools(tools []*schema.ToolInfo) (model.ToolCallingChatModel, error) {
	return m, nil
}

func TestChatModelRendersCard(t *testing.T) {
	t.Parallel()
	s, err := NewChatModel(&cardModel{args: `{"name":"","subject":"Moda praia","summary":"Loja online de biquínis."}`})
	require.NoError(t, err)

	got := s.Summarize(context.Background(), "Acme", "Moda", original)
	assert.Equal(t, FormatCard("Acme", "Moda praia", "Loja online de biquínis."), got)
}

func TestChatModelFallbacks(t *testing.T) {
	t.Parallel()
	for _, m := range []*cardModel{
		{err: errors.New("timeout")},
		{args: `{"name":"Acme","subject":"Moda","summary":"  "}`},
		{args: `not json`},
	} {
		s, err := NewChatModel(m)
		require.NoError(t, err)
		assert.Equal(t, original, s.Summarize(context.Background(), "Acme", "Moda", original))
	}

	s, err := NewChatModel(nil)
	require.NoError(t, err)
	assert.Equal(t, original, s.Summarize(context.Background(), "Acme", "Moda", original))
}

func TestFormatCard(t *testing.T) {
	t.Parallel()
	assert.Equal(t,
		"*Novo Contato* 🔔\n👤 *Nome:* Ana\n📂 *Assunto:* Moda\n📝 *Resumo:* Loja.",
		FormatCard("Ana", "Moda", "Loja."))
	assert.Contains(t, BuildPrompt("Ana", "Moda", "oi"), "Nome: Ana\nCategoria: Moda")
}
