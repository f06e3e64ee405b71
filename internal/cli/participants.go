package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <name>",
		Short: "Join the room and remember the name for later commands",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			if err := client.Post("/participants", map[string]string{"name": name}, nil); err != nil {
				return err
			}

			// Save user
			if err := cfg.SaveUser(name); err != nil {
				return fmt.Errorf("failed to save user: %w", err)
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.PrintMessage(fmt.Sprintf("joined as %s", name))
			return nil
		},
	}
}

func newParticipantsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "participants",
		Short: "List participants in the room",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Participant

			if err := client.Get("/participants", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}
