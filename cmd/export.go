package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/currix/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the active user's progress record",
	Long:  "Export the active user's progress record as a JSON document. With no file argument the record is written to stdout. Importing the output reproduces the record exactly.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, cleanup, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer cleanup()
		ctx := cmd.Context()

		user, err := env.registry.ActiveUser(ctx)
		if err != nil {
			return err
		}
		rec, err := env.repo.Load(ctx, user)
		if err != nil {
			rec = store.ProgressRecord{}
		}

		out, err := store.MarshalRecord(rec)
		if err != nil {
			return fmt.Errorf("serialize record: %w", err)
		}

		if len(args) == 0 {
			fmt.Println(out)
			return nil
		}
		if err := os.WriteFile(args[0], []byte(out+"\n"), 0o644); err != nil {
			return fmt.Errorf("write export file: %w", err)
		}
		fmt.Printf("exported %s's progress to %s\n", user, args[0])
		return nil
	},
}
