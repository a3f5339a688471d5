package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/writego"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of writego",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "writego version %s\n", strings.TrimSpace(writego.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
