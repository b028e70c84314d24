package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ntalo/ntalo/internal/cli"
	"github.com/ntalo/ntalo/internal/search"
)

func searchCmd() *cobra.Command {
	var city string
	var page, pageSize int

	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Search community prices by product name",
		Long: `Search ranks a city's community price entries against a free-text query,
tolerating the OCR noise and synonyms the ledger itself was built from.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := openStorage()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.Migrate(ctx); err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}

			query := strings.Join(args, " ")
			result := search.NewRanker(store).Search(ctx, city, query, page, pageSize)

			fmt.Println(cli.RenderSearchResults(result, query))

			return nil
		},
	}

	cmd.Flags().StringVarP(&city, "city", "c", "", "city whose community ledger to search")
	cmd.Flags().IntVar(&page, "page", 0, "result page (zero-based)")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "results per page")
	_ = cmd.MarkFlagRequired("city")

	return cmd
}
