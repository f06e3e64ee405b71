package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "batepapo",
		Short: "CLI tool for the batepapo chat API",
		Long: `batepapo is a CLI tool for interacting with the batepapo chat JSON API.

Join the room once with 'batepapo join <name>'; the name is remembered in the
user file and sent as the User header on later commands.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load user from file if not provided via flag/env
			if err := cfg.LoadUser(); err != nil {
				return err
			}

			// Create HTTP client
			client = NewClient(cfg.ServerURL, cfg.User)
			if cfg.Verbose {
				client.SetTrace(cmd.ErrOrStderr())
			}
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: BATEPAPO_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.User, "user", cfg.User, "Participant name (env: BATEPAPO_USER)")
	rootCmd.PersistentFlags().StringVar(&cfg.UserFile, "user-file", cfg.UserFile, "User file path (env: BATEPAPO_USER_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newJoinCmd())
	rootCmd.AddCommand(newParticipantsCmd())
	rootCmd.AddCommand(newSendCmd())
	rootCmd.AddCommand(newMessagesCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
