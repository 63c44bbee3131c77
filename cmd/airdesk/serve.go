package main

import (
	"context"
	"fmt"
	"net"

	"github.com/aretw0/airdesk/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the webhook server",
	Long: `Starts the agent behind an HTTP webhook (POST /agent_webhook), with
health, session inspection, reply streaming and Prometheus metrics endpoints.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			cfg.Server.Addr, _ = cmd.Flags().GetString("addr")
		}

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		rt, err := cli.Build(sigCtx, cfg, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := rt.Close(); err != nil {
				logger.Error("Failed to close backends", "err", err)
			}
		}()

		ln, err := net.Listen("tcp", cfg.Server.Addr)
		if err != nil {
			return fmt.Errorf("listen on %s: %w", cfg.Server.Addr, err)
		}

		if err := cli.Serve(sigCtx, ln, rt, cfg.Server, logger); err != nil {
			return err
		}
		if sig := sigCtx.Signal(); sig != nil {
			logger.Info("Stopped by signal", "signal", sig.String())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", ":8080", "Address to listen on (overrides config)")
}
