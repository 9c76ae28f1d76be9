package main

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/tbxark/briefing"
	"github.com/tbxark/briefing/agent"
	"github.com/tbxark/briefing/command"
	"github.com/tbxark/briefing/config"
	"github.com/tbxark/briefing/summarize"
	"go.uber.org/zap"
)

// newSummarizer returns nil when the rewrite step is disabled.
func newSummarizer(ctx context.Context, conf config.SummarizerConfig, logger *zap.Logger) (agent.Summarizer, error) {
	if !conf.Enabled {
		return nil, nil
	}
	timeout, err := conf.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	opts := []summarize.Option{
		summarize.WithModel(conf.Model),
		summarize.WithBaseURL(conf.BaseURL),
		summarize.WithTimeout(timeout),
		summarize.WithLogger(logger.Named("summarize")),
	}
	if conf.Provider != config.ProviderOpenAI {
		g, err := summarize.NewGemini(ctx, conf.APIKey, opts...)
		if err != nil {
			return nil, err
		}
		return g, nil
	}
	var cm model.ToolCallingChatModel
	if conf.APIKey != "" {
		if cm, err = newChatModel(ctx, conf); err != nil {
			return nil, err
		}
	}
	s, err := summarize.NewChatModel(cm, opts...)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func newChatModel(ctx context.Context, conf config.SummarizerConfig) (*openai.ChatModel, error) {
	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:  conf.APIKey,
		Model:   conf.Model,
		BaseURL: conf.BaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("create chat model: %w", err)
	}
	return cm, nil
}

func fieldNames() []string {
	fields := briefing.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = string(f)
	}
	return names
}

// newParser always understands the line syntax and, with an OpenAI key,
// falls back to free-text interpretation.
func newParser(ctx context.Context, conf config.SummarizerConfig) (*command.LocalParser[briefing.FieldValues], command.Parser[briefing.FieldValues], error) {
	local := command.NewLocalParser[briefing.FieldValues](fieldNames())
	if conf.Provider != config.ProviderOpenAI || conf.APIKey == "" {
		return local, local, nil
	}
	cm, err := newChatModel(ctx, conf)
	if err != nil {
		return nil, nil, err
	}
	tool, err := command.NewToolBasedParser[briefing.FieldValues](cm)
	if err != nil {
		return nil, nil, err
	}
	return local, command.NewFailbackParser[briefing.FieldValues](local, tool), nil
}

func flowOptions(summarizer agent.Summarizer) []agent.Option[briefing.FieldValues] {
	opts := []agent.Option[briefing.FieldValues]{
		agent.WithLogger[briefing.FieldValues](logger.Named("flow")),
	}
	if summarizer != nil {
		opts = append(opts, agent.WithSummarizer[briefing.FieldValues](summarizer))
	}
	return opts
}
