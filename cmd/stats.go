package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/currix/internal/progress"
	"github.com/abhisek/currix/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats [subject]",
	Short: "Show the active user's progress by subject and year",
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

		subjects := env.progression.Subjects()
		if len(args) == 1 {
			if env.progression.Years(args[0]) == nil {
				return fmt.Errorf("unknown subject %q", args[0])
			}
			subjects = args[:1]
		}

		fmt.Println("progress for", user)
		for _, subject := range subjects {
			years := env.progression.Years(subject)
			summary := progress.CompletionSummary(years, rec)
			fmt.Printf("\n%s — %d%% (%d topics remaining)\n", subject, summary.Percent, summary.Remaining)

			for _, yg := range years {
				fmt.Printf("  %s (%d%%)\n", yg.Year, progress.PercentFor(yg.Topics, rec))
				for _, topic := range yg.Topics {
					mark := " "
					if rec[topic.Code] {
						mark = "x"
					}
					fmt.Printf("    [%s] %-8s %s\n", mark, topic.Code, topic.Topic)
				}
			}
		}
		return nil
	},
}
