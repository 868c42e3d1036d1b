package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/currix/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a progress record for the active user",
	Long:  "Import a previously exported progress record, replacing the active user's current record. Invalid input leaves existing progress intact.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, cleanup, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer cleanup()
		ctx := cmd.Context()

		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read import file: %w", err)
		}

		user, err := env.registry.ActiveUser(ctx)
		if err != nil {
			return err
		}
		rec, err := env.repo.Import(ctx, user, string(raw))
		if err != nil {
			var importErr *store.ErrImport
			if errors.As(err, &importErr) {
				return fmt.Errorf("%w (existing progress left intact)", err)
			}
			return err
		}

		fmt.Printf("imported %d topics for %s\n", len(rec), user)
		return nil
	},
}
