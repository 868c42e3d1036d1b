package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle <code>",
	Short: "Toggle a topic's completion for the active user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, cleanup, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer cleanup()
		ctx := cmd.Context()
		code := args[0]

		var label string
		found := false
		for _, topic := range env.progression.AllTopics() {
			if topic.Code == code {
				label = topic.Topic
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("unknown topic code %q", code)
		}

		user, err := env.registry.ActiveUser(ctx)
		if err != nil {
			return err
		}
		rec, err := env.repo.Toggle(ctx, user, code)
		if err != nil {
			return err
		}

		state := "not done"
		if rec[code] {
			state = "done"
		}
		fmt.Printf("%s: %s — %s\n", code, label, state)
		return nil
	},
}
