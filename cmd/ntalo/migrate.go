package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ntalo/ntalo/internal/cli"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStorage()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.Migrate(cmd.Context()); err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render("✓ Database schema is up to date"))

			return nil
		},
	}
}
