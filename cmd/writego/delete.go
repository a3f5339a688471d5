package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <post-id>",
	Short: "Delete a post",
	Long:  `Delete permanently removes a post from the instance.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		cred, err := loadCredential(svc)
		if err != nil {
			return err
		}

		if err := svc.DeletePost(cmd.Context(), cred, args[0]); err != nil {
			return fmt.Errorf("could not delete post %s: %w", args[0], err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Post deleted: %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
