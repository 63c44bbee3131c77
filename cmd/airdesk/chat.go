package main

import (
	"context"
	"os"

	"github.com/aretw0/airdesk/internal/cli"
	"github.com/google/uuid"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the agent in the terminal",
	Long: `Starts an interactive conversation with the agent using the configured
session store and airline data. Type /help inside the chat for commands.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Keep the chat readable unless the user asked for more logging.
		if !cmd.Flags().Changed("log-level") {
			_ = cmd.Flags().Set("log-level", "warn")
		}
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		sessionID, _ := cmd.Flags().GetString("session")
		if sessionID == "" {
			sessionID = "cli-" + uuid.NewString()[:8]
		}
		noColor, _ := cmd.Flags().GetBool("no-color")

		interactive := term.IsTerminal(int(os.Stdin.Fd()))
		profile := termenv.Ascii
		if !noColor && term.IsTerminal(int(os.Stdout.Fd())) {
			profile = termenv.EnvColorProfile()
		}

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		rt, err := cli.Build(sigCtx, cfg, logger)
		if err != nil {
			return err
		}
		defer rt.Close()

		if fresh, _ := cmd.Flags().GetBool("fresh"); fresh {
			if err := rt.Agent.Reset(sigCtx, sessionID); err != nil {
				return err
			}
		}

		return cli.Chat(sigCtx, rt.Agent, cli.ChatOptions{
			SessionID: sessionID,
			In:        os.Stdin,
			Out:       os.Stdout,
			Profile:   profile,
			Banner:    interactive,
		})
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringP("session", "s", "", "Session ID to resume (default: a new random session)")
	chatCmd.Flags().Bool("fresh", false, "Forget the session before starting")
	chatCmd.Flags().Bool("no-color", false, "Disable colored output")
}
