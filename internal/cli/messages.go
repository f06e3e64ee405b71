package cli

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
)

var errNoUser = errors.New("no user: run 'batepapo join <name>' or pass --user")

func newSendCmd() *cobra.Command {
	var to string
	var private bool

	cmd := &cobra.Command{
		Use:   "send <text>",
		Short: "Send a message to the room or to one participant",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.User == "" {
				return errNoUser
			}

			msgType := "message"
			if private {
				msgType = "private_message"
			}

			req := map[string]string{
				"to":   to,
				"text": strings.Join(args, " "),
				"type": msgType,
			}
			if err := client.Post("/messages", req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.PrintMessage("message sent")
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "Todos", "Recipient name")
	cmd.Flags().BoolVar(&private, "private", false, "Send as a private message")

	return cmd
}

func newMessagesCmd() *cobra.Command {
	var limit string

	cmd := &cobra.Command{
		Use:   "messages",
		Short: "Show the messages visible to you, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/messages"
			if cmd.Flags().Changed("limit") {
				path += "?" + url.Values{"limit": {limit}}.Encode()
			}

			var result []Message
			if err := client.Get(path, &result); err != nil {
				return fmt.Errorf("failed to get messages: %w", err)
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&limit, "limit", "", "Maximum number of messages to show")

	return cmd
}
