package main

import (
	"context"
	"fmt"

	"github.com/aretw0/airdesk/internal/cli"
	"github.com/aretw0/airdesk/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the dialogue flow visualization",
	Long: `Outputs a Mermaid diagram (graph TD) of the booking, status and cancellation
flows. With --session, the session's position is highlighted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID, _ := cmd.Flags().GetString("session")
		if sessionID == "" {
			fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(nil))
			return nil
		}

		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		ctx := context.Background()
		rt, err := cli.Build(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer rt.Close()

		sess, err := rt.Agent.Session(ctx, sessionID)
		if err != nil {
			return fmt.Errorf("load session %s: %w", sessionID, err)
		}
		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(&graph.Overlay{Intent: sess.Intent, State: sess.State}))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringP("session", "s", "", "Highlight this session's position (reads the configured store)")
}
