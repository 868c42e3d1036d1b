package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/currix/internal/leaderboard"
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Rank all users by overall curriculum completion",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, cleanup, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		builder := leaderboard.New(env.registry, env.repo, env.progression)
		entries, err := builder.Build(cmd.Context())
		if err != nil {
			return err
		}

		for i, entry := range entries {
			marker := " "
			if entry.Leader {
				marker = "*"
			}
			lastActive := "never"
			if entry.LastActive != nil {
				lastActive = entry.LastActive.Local().Format("2006-01-02 15:04")
			}
			fmt.Printf("%2d. %s %-16s %3d%%  last active: %s\n", i+1, marker, entry.User, entry.Percent, lastActive)
		}
		return nil
	},
}
