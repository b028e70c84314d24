package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ntalo/ntalo/internal/cli"
)

func deleteCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "delete <receipt-id>",
		Short: "Remove a receipt's observations from the personal ledger",
		Long: `Delete removes every personal price observation recorded from the given
receipt. Community observations are kept; they are anonymous aggregates.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, engine, err := openEngine()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.Migrate(ctx); err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}

			if err := engine.DeleteReceipt(ctx, userID, args[0]); err != nil {
				return fmt.Errorf("failed to delete receipt: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Deleted receipt %s from %s's ledger", args[0], userID)))

			return nil
		},
	}

	cmd.Flags().StringVarP(&userID, "user", "u", "", "user id owning the receipt")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
