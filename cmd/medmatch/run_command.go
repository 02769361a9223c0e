package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"medmatch/internal/classify"
	"medmatch/internal/config"
	"medmatch/internal/pipeline"
	"medmatch/internal/results"
	"medmatch/internal/store"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var retrain bool
	var nonInteractive bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Deduplicate all patient sources and write the cluster report",
		Long: "Run extracts every source table, normalizes and compares candidate pairs,\n" +
			"and writes the cluster assignment report to the configured output directory.\n" +
			"When no trained model exists an interactive labeling session starts first.",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.logger()
			if err != nil {
				return err
			}
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				var oracle *consoleOracle
				if !nonInteractive {
					oracle = newConsoleOracle(cmd.InOrStdin(), cmd.OutOrStdout())
				}

				runner := pipeline.New(cfg, st, oracleOrNil(oracle), logger)
				outcome, err := runner.Run(cmd.Context(), pipeline.Options{
					Retrain:       retrain,
					AllowTraining: !nonInteractive,
				})
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if stdoutIsTerminal() {
					fmt.Fprintln(out, results.RenderSummary(outcome.Clusters))
				}
				fmt.Fprintf(out, "Processed %d records across %d candidate pairs.\n",
					outcome.Records, outcome.Pairs)
				fmt.Fprintf(out, "Results written to %s\n", outcome.ResultPath)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&retrain, "retrain", false, "Discard the persisted model and run a fresh labeling session")
	cmd.Flags().BoolVar(&nonInteractive, "non-interactive", false, "Fail instead of prompting when no trained model exists")
	return cmd
}

// oracleOrNil avoids handing the pipeline a non-nil interface wrapping a nil
// pointer.
func oracleOrNil(oracle *consoleOracle) classify.Oracle {
	if oracle == nil {
		return nil
	}
	return oracle
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
