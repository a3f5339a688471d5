package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/aretw0/writego/pkg/core"
)

// stdinArg makes post read the content from standard input.
const stdinArg = "-"

var postCmd = &cobra.Command{
	Use:   "post <file|-|glob> [collection]",
	Short: "Publish a Markdown file as a post",
	Long: `Post publishes the content of a file, of standard input ("-"), or of every
file matched by a glob such as "drafts/**/*.md".

When the first line starts with '#', it becomes the title and is removed from
the body. A YAML frontmatter block may set "title" and "collection"; the
collection argument wins over the frontmatter. Without any collection the
post is created as an uncollected post. A collection is validated before the
post is created.`,
	Example: `  writego post hello.md blog
  cat hello.md | writego post - blog
  writego post 'drafts/*.md'`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var collection string
		if len(args) == 2 {
			collection = args[1]
		}

		svc, err := newService()
		if err != nil {
			return err
		}
		cred, err := loadCredential(svc)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if args[0] == stdinArg {
			fmt.Fprintln(cmd.ErrOrStderr(), "Reading post content from STDIN.")
			raw, err := io.ReadAll(lifecycle.NewInterruptibleReader(cmd.InOrStdin(), cmd.Context().Done()))
			if ctxErr := cmd.Context().Err(); ctxErr != nil {
				return ctxErr
			}
			if err != nil {
				return fmt.Errorf("cannot read standard input: %w", err)
			}
			_, id, err := svc.Publish(cmd.Context(), cred, string(raw), collection)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Successfully created post with ID: %s\n", id)
			return nil
		}

		paths, err := expandPostPaths(args[0])
		if err != nil {
			return err
		}

		// Each collection is checked once, however many files name it.
		checked := map[string]error{}
		var failed int
		for _, path := range paths {
			id, err := publishFile(cmd, svc, cred, path, collection, checked)
			if err == nil {
				fmt.Fprintf(out, "%s: Successfully created post with ID: %s\n", path, id)
				continue
			}
			if len(paths) == 1 {
				return err
			}
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d posts failed", failed, len(paths))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(postCmd)
}

// publishFile creates the post held in path. The validation outcome of every
// collection is remembered in checked.
func publishFile(cmd *cobra.Command, svc *core.Service, cred core.Credential, path, collection string, checked map[string]error) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	post, err := svc.PreparePost(string(raw), collection)
	if err != nil {
		return "", err
	}

	if post.Collection != "" {
		err, seen := checked[post.Collection]
		if !seen {
			_, err = svc.ValidateCollection(cmd.Context(), cred, post.Collection)
			checked[post.Collection] = err
		}
		if err != nil {
			return "", fmt.Errorf("collection %q is not valid: %w", post.Collection, err)
		}
	}

	return svc.CreatePost(cmd.Context(), cred, post)
}

// expandPostPaths returns the file itself when it exists, otherwise the
// regular files matching the pattern, in lexical order.
func expandPostPaths(pattern string) ([]string, error) {
	if info, err := os.Stat(pattern); err == nil && !info.IsDir() {
		return []string{pattern}, nil
	}

	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("unable to find a file at given path of: %s", pattern)
	}
	sort.Strings(matches)
	return matches, nil
}
