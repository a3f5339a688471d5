package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/writego/pkg/core"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Invalidate the access token and remove the config file",
	Long: `Logout asks the instance to invalidate the saved access token, then deletes
config.json. When the instance cannot be reached (e.g. offline), the config
file is removed anyway.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		report, err := svc.LogoutSaved(cmd.Context())
		if core.IsConfigMissing(err) {
			fmt.Fprintf(out, "No config file found at: %s\n", configPath())
			return nil
		}
		if err != nil {
			return fmt.Errorf("logout failed: %w", err)
		}

		if report.Invalidated {
			fmt.Fprintln(out, "Access token invalidated.")
		} else {
			fmt.Fprintf(cmd.ErrOrStderr(), "Logout attempt unsuccessful: %v\n", report.RemoteErr)
			fmt.Fprintln(cmd.ErrOrStderr(), "Proceeded with local file removal.")
		}
		fmt.Fprintf(out, "Removed %s\n", configPath())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
