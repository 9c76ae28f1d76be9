package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tbxark/briefing"
	"github.com/tbxark/briefing/agent"
	"github.com/tbxark/briefing/command"
	"github.com/tbxark/briefing/dispatch"
	"github.com/tbxark/briefing/types"
)

var printOnly bool

var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Fill the briefing form in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFill(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	fillCmd.Flags().BoolVar(&printOnly, "print", false, "print the WhatsApp link instead of opening a browser")
}

func runFill(ctx context.Context, in io.Reader, out io.Writer) error {
	summarizer, err := newSummarizer(ctx, cfg.Summarizer, logger)
	if err != nil {
		return err
	}
	local, parser, err := newParser(ctx, cfg.Summarizer)
	if err != nil {
		return err
	}

	link := dispatch.NewLink(cfg.Destination)
	var sink agent.Dispatcher = dispatch.NewBrowserSink(link, logger.Named("dispatch"))
	if printOnly {
		sink = &dispatch.WriterSink{Link: link, W: out}
	}
	opts := append(flowOptions(summarizer), agent.WithParser[briefing.FieldValues](parser))
	flow, err := agent.NewFormFlow[briefing.FieldValues](briefing.Spec{}, sink, opts...)
	if err != nil {
		return err
	}

	ctx = agent.WithStateKey(ctx, "terminal")
	fmt.Fprintln(out, "Briefing Inicial. Digite \"help\" para ver os comandos.")
	reader := bufio.NewReader(in)
	for {
		fmt.Fprint(out, "> ")
		input, rErr := reader.ReadString('\n')
		if rErr != nil && input == "" {
			if rErr == io.EOF {
				return nil
			}
			return rErr
		}
		resp, err := flow.Invoke(ctx, strings.TrimSpace(input))
		if err != nil {
			return err
		}
		if resp.Message != "" {
			fmt.Fprintln(out, resp.Message)
		}
		switch resp.Metadata["command"] {
		case string(command.Show):
			printState(out, resp.State)
		case string(command.Help):
			fmt.Fprint(out, local.Usage())
		case string(command.Submit):
			if resp.Outcome != nil && len(resp.Outcome.Errors) > 0 {
				printState(out, resp.State)
			}
		}
		if resp.Quit {
			return nil
		}
	}
}

func printState(w io.Writer, state *agent.State[briefing.FieldValues]) {
	if state == nil {
		return
	}
	rows := briefing.Rows(state.FormState, briefing.FieldErrorsFromStrings(state.Errors))
	fmt.Fprintln(w, types.FormatFieldTable(rows))
}
