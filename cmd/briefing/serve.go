package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tbxark/briefing"
	"github.com/tbxark/briefing/agent"
	"github.com/tbxark/briefing/dispatch"
	"github.com/tbxark/briefing/server"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the briefing form over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return runServe(ctx)
	},
}

func runServe(ctx context.Context) error {
	ttl, err := cfg.Server.SessionTTLDuration()
	if err != nil {
		return err
	}
	summarizer, err := newSummarizer(ctx, cfg.Summarizer, logger)
	if err != nil {
		return err
	}

	spec := briefing.Spec{}
	store := agent.NewMemoryStateReadWriter[briefing.FieldValues](
		agent.NewMemoryCache[*agent.State[briefing.FieldValues]](ttl),
		func(context.Context) briefing.FieldValues { return spec.Initial() },
	)
	opts := append(flowOptions(summarizer), agent.WithStore[briefing.FieldValues](store))
	flow, err := agent.NewFormFlow[briefing.FieldValues](spec, &dispatch.CaptureSink{Link: dispatch.NewLink(cfg.Destination)}, opts...)
	if err != nil {
		return err
	}

	srv := server.New(flow, server.Config{
		Addr:       cfg.Server.Addr,
		SessionTTL: ttl,
		Origins:    cfg.Server.Origins,
	}, logger.Named("http"))
	logger.Info("Briefing form ready",
		zap.String("addr", cfg.Server.Addr),
		zap.Bool("summarize", summarizer != nil))
	return srv.Run(ctx)
}
