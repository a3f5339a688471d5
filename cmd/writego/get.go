package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/writego/pkg/core"
)

var getFormat string

var getCmd = &cobra.Command{
	Use:   "get <collection>",
	Short: "List the most recent posts of a collection",
	Long: `Get validates the collection, then lists its most recent posts, newest first.
The instance decides how many posts are returned.

Posts without a title are shown with the start of their body.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		collection := args[0]

		svc, err := newService()
		if err != nil {
			return err
		}
		cred, err := loadCredential(svc)
		if err != nil {
			return err
		}

		if ok, err := svc.ValidateCollection(cmd.Context(), cred, collection); !ok {
			return fmt.Errorf("specified collection of %s is not valid: %w", collection, err)
		}

		posts, err := svc.ListPosts(cmd.Context(), cred, collection)
		if err != nil {
			return err
		}
		return writePosts(cmd.OutOrStdout(), posts, getFormat)
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
	getCmd.Flags().StringVarP(&getFormat, "format", "f", "text", "Output format: text, json or yaml")
}

func writePosts(w io.Writer, posts []core.PostSummary, format string) error {
	if posts == nil {
		posts = []core.PostSummary{}
	}

	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(posts)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(posts); err != nil {
			return err
		}
		return encoder.Close()
	case "text", "":
		if len(posts) == 0 {
			_, err := fmt.Fprintln(w, "No posts found.")
			return err
		}
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, p := range posts {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Created.Local().Format("2006-01-02 15:04"), p.ID, p.Title)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("%w: unknown format %q (want text, json or yaml)", core.ErrInvalidArgument, format)
	}
}
