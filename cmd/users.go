package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List known users",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, cleanup, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer cleanup()
		ctx := cmd.Context()

		active, err := env.registry.ActiveUser(ctx)
		if err != nil {
			return err
		}
		users, err := env.registry.ListUsers(ctx)
		if err != nil {
			return err
		}

		for _, user := range users {
			marker := " "
			if user == active {
				marker = "*"
			}
			fmt.Printf("%s %s\n", marker, user)
		}
		return nil
	},
}

var switchCmd = &cobra.Command{
	Use:   "switch <user>",
	Short: "Switch the active user",
	Long:  "Switch the active user. Users are created implicitly the first time their progress is written, so any name works.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, cleanup, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := env.registry.SetActiveUser(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("active user:", args[0])
		return nil
	},
}
