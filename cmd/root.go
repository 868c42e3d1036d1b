package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/currix/internal/progress"
	"github.com/abhisek/currix/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "currix",
	Short: "Curriculum progress tracker",
	Long:  "Currix — track per-user completion progress against a subject/year/topic curriculum, with a cross-user leaderboard.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOverview(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides CURRIX_DB env var)")
	rootCmd.PersistentFlags().String("curriculum", "", "Path to curriculum JSON document (overrides CURRIX_CURRICULUM env var)")

	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(switchCmd)
	rootCmd.AddCommand(toggleCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// runOverview prints the active user's completion at a glance: overall
// percentage plus one line per subject.
func runOverview(cmd *cobra.Command) error {
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

	overall := progress.PercentFor(env.progression.AllTopics(), rec)
	fmt.Printf("%s — %d%% of the curriculum complete\n\n", user, overall)

	for _, subject := range env.progression.Subjects() {
		summary := progress.CompletionSummary(env.progression.Years(subject), rec)
		fmt.Printf("  %-14s %3d%%  (%d topics remaining)\n", subject, summary.Percent, summary.Remaining)
	}
	return nil
}
