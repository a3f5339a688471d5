package main

import (
	"encoding/json"
	"strings"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"

	"github.com/aretw0/writego"
)

type componentStatus struct {
	Type  string `json:"type"`
	State any    `json:"state"`
}

type statusReport struct {
	Version    string            `json:"version"`
	ConfigPath string            `json:"config_path"`
	Service    any               `json:"service"`
	Components []componentStatus `json:"components"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the login state and configuration as JSON",
	Long: `Status prints the version, the config file location, whether a login is
saved, and the state of the credential store and the API client.
The access token is never printed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}

		report := statusReport{
			Version:    strings.TrimSpace(writego.Version),
			ConfigPath: configPath(),
			Service:    svc.State(),
		}
		for _, c := range svc.Components() {
			status := componentStatus{State: c.State()}
			if comp, ok := c.(introspection.Component); ok {
				status.Type = comp.ComponentType()
			}
			report.Components = append(report.Components, status)
		}

		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
