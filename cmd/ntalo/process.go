package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ntalo/ntalo/internal/cli"
	"github.com/ntalo/ntalo/internal/common"
	"github.com/ntalo/ntalo/internal/ingest"
	"github.com/ntalo/ntalo/internal/merge"
	"github.com/ntalo/ntalo/internal/model"
)

func processCmd() *cobra.Command {
	var userID string
	var pages bool

	cmd := &cobra.Command{
		Use:   "process [file]",
		Short: "Process a receipt JSON file into the price ledgers",
		Long: `Process reads an OCR-extracted receipt (JSON, from a file or stdin),
resolves its product names into canonical identities, and records the
prices in the personal and community ledgers.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			data, err := readInput(args)
			if err != nil {
				return err
			}

			store, engine, err := openEngine()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.Migrate(ctx); err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}

			decoder := ingest.NewDecoder(engine.Lexicon())

			var receipt *model.Receipt
			if pages {
				envelope, receiptPages, err := decoder.DecodePages(data)
				if err != nil {
					return fmt.Errorf("failed to decode receipt pages: %w", err)
				}

				merged, err := engine.Resolver().MergePages(receiptPages, merge.NoDuplicates{})
				if err != nil {
					return fmt.Errorf("failed to merge receipt pages: %w", err)
				}

				receipt = envelope
				receipt.StoreName = merged.StoreName
				receipt.Items = merged.Items
			} else {
				receipt, err = decoder.Decode(data)
				if err != nil {
					return fmt.Errorf("failed to decode receipt: %w", err)
				}
			}

			if userID != "" {
				receipt.UserID = userID
			}
			if receipt.UserID == "" {
				return fmt.Errorf("%w: user id is required (use --user)", common.ErrInvalidConfig)
			}

			if err := engine.ProcessReceipt(ctx, receipt); err != nil {
				return fmt.Errorf("failed to process receipt: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Processed receipt %s (%d items)", receipt.ID, len(receipt.Items))))

			return nil
		},
	}

	cmd.Flags().StringVarP(&userID, "user", "u", "", "user id owning the receipt")
	cmd.Flags().BoolVar(&pages, "pages", false, "treat input as a multi-page receipt")

	return cmd
}

func readInput(args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}

		return data, nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	return data, nil
}
