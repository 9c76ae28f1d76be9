package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
	"github.com/tbxark/briefing"
	"github.com/tbxark/briefing/dispatch"
)

var (
	composeFrom string
	composeSet  []string
	composeOpen bool
)

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Print the WhatsApp message and link for a set of answers",
	Example: `  briefing compose --from answers.json
  briefing compose --set companyName="Padaria Sol" --set whatsapp="11 99999-0000" --set services=Pães`,
	RunE: func(cmd *cobra.Command, args []string) error {
		values, err := loadAnswers(composeFrom, composeSet)
		if err != nil {
			return err
		}
		if errs := briefing.Validate(values); len(errs) > 0 {
			for _, f := range errs.Fields() {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", f, errs[f])
			}
			return fmt.Errorf("%d required field(s) missing", len(errs))
		}
		message := briefing.Compose(values)
		u, err := dispatch.BuildURL(cfg.Destination, message)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, message)
		fmt.Fprintln(out)
		fmt.Fprintln(out, u)
		if composeOpen {
			return browser.OpenURL(u)
		}
		return nil
	},
}

func init() {
	composeCmd.Flags().StringVar(&composeFrom, "from", "", "JSON file with the answers")
	composeCmd.Flags().StringArrayVar(&composeSet, "set", nil, "field=value pair, repeatable")
	composeCmd.Flags().BoolVar(&composeOpen, "open", false, "open the link in the browser")
}

// loadAnswers starts from the defaults, overlays the JSON file, then each
// --set pair in order.
func loadAnswers(path string, pairs []string) (briefing.FieldValues, error) {
	values := briefing.NewFieldValues()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return values, fmt.Errorf("read answers: %w", err)
		}
		if err := sonic.Unmarshal(data, &values); err != nil {
			return values, fmt.Errorf("parse answers %s: %w", path, err)
		}
		if err := briefing.CheckOptions(values); err != nil {
			return values, err
		}
	}
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return values, fmt.Errorf("invalid --set %q, want field=value", pair)
		}
		f, ok := briefing.LookupField(strings.TrimSpace(name))
		if !ok {
			return values, fmt.Errorf("%w: %q", briefing.ErrUnknownField, name)
		}
		var err error
		if values, err = values.With(f, value); err != nil {
			return values, err
		}
	}
	return values, nil
}
