package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/airdesk"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of airdesk",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "airdesk version %s\n", strings.TrimSpace(airdesk.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
