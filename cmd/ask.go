package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newAskCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <text...>",
		Short: "Run one message through the pipeline and print the reply",
		Long: `Run one message through the pipeline against a fresh catalog and print
the reply followed by the outcome.

Examples:
  procurement-service ask necesito 10 sacos de cemento
  LLM_PROVIDER=openai procurement-service ask "500 planchas de yeso para planta 2"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			a, err := newApp(ctx, *configPath)
			if err != nil {
				return err
			}
			defer func() { _ = a.close(context.Background()) }()

			res := a.orchestrator().Process(ctx, strings.Join(args, " "))

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, res.Reply)
			fmt.Fprintf(out, "outcome: %s\n", res.Decision.Outcome)
			return nil
		},
	}
}
