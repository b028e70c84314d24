package main

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/ntalo/ntalo/internal/cli"
)

func backfillCmd() *cobra.Command {
	var city string
	var force bool

	cmd := &cobra.Command{
		Use:   "backfill",
		Short: "Recompute community entry statistics and metadata",
		Long: `Backfill walks a city's community ledger and recomputes each entry's
categories and search keywords with the current lexicon. Use after lexicon
changes; --force rewrites values that were already set.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, engine, err := openEngine()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.Migrate(ctx); err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}

			bar := progressbar.NewOptions(-1,
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan][bold]Backfilling community entries...[reset]"),
				progressbar.OptionSpinnerType(14),
			)

			updated, err := engine.Backfill(ctx, city, force, func() {
				_ = bar.Add(1)
			})
			_ = bar.Finish()
			fmt.Fprintln(os.Stderr)

			if err != nil {
				return fmt.Errorf("failed to backfill: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Backfill complete: %d entries updated", updated)))

			return nil
		},
	}

	cmd.Flags().StringVarP(&city, "city", "c", "", "city whose community ledger to backfill")
	cmd.Flags().BoolVar(&force, "force", false, "rewrite values that were already set")
	_ = cmd.MarkFlagRequired("city")

	return cmd
}
