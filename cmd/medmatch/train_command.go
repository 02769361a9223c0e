package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"medmatch/internal/config"
	"medmatch/internal/pipeline"
	"medmatch/internal/store"
)

func newTrainCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "train",
		Short: "Run an interactive labeling session and persist the model",
		Long: "Train extracts and compares candidate pairs, then asks you to label the\n" +
			"most uncertain ones until the label budget runs out or the model converges.\n" +
			"The fitted model replaces any previously persisted artifact.",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.logger()
			if err != nil {
				return err
			}
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				oracle := newConsoleOracle(cmd.InOrStdin(), cmd.OutOrStdout())
				runner := pipeline.New(cfg, st, oracle, logger)
				if _, err := runner.Train(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Model written to %s\n", cfg.Paths.Model)
				return nil
			})
		},
	}
}
