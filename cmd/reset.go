package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset [user]",
	Short: "Delete a user's progress",
	Long:  "Delete a user's progress record and timestamp. Defaults to the active user. A reset user disappears from the registry unless they are still active.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, cleanup, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer cleanup()
		ctx := cmd.Context()

		user := ""
		if len(args) == 1 {
			user = args[0]
		} else {
			if user, err = env.registry.ActiveUser(ctx); err != nil {
				return err
			}
		}

		if err := env.repo.Clear(ctx, user); err != nil {
			return err
		}
		fmt.Println("progress reset for", user)
		return nil
	},
}
