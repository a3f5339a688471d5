package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/spf13/cobra"

	"github.com/aretw0/writego"
	"github.com/aretw0/writego/pkg/core"
)

var (
	verbose   bool
	configDir string
	timeout   time.Duration

	// extraOptions are appended to every service built by the commands.
	extraOptions []writego.Option
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "writego",
	Short: "Post to a WriteFreely instance from the command line",
	Long: `writego logs in to a WriteFreely instance, keeps the access token in a
local config file, and creates, lists and deletes posts.

The instance is given as a bare host name, e.g. write.as.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
//
// The first Ctrl+C cancels the command's context, which abandons pending
// prompts and requests; a second one exits at once.
func Execute() {
	ctx := lifecycle.NewSignalContext(context.Background(), lifecycle.WithForceExit(2))
	err := rootCmd.ExecuteContext(ctx)
	ctx.Stop()
	if err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Directory holding config.json (default $WRITEGO_CONFIG_DIR or the user config dir)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Timeout for each request to the instance (default 30s)")
}

func serviceOptions() []writego.Option {
	opts := []writego.Option{
		writego.WithLogger(slog.Default()),
		writego.WithTimeout(timeout),
	}
	if configDir != "" {
		opts = append(opts, writego.WithConfigDir(configDir))
	}
	return append(opts, extraOptions...)
}

func newService() (*core.Service, error) {
	svc, err := writego.New(serviceOptions()...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize writego: %w", err)
	}
	return svc, nil
}

// configPath is best-effort and only used in messages.
func configPath() string {
	p, err := writego.ConfigPath(serviceOptions()...)
	if err != nil {
		return "the config file"
	}
	return p
}

// loadCredential returns the saved login, or an error hinting at login.
func loadCredential(svc *core.Service) (core.Credential, error) {
	cred, err := svc.Credential()
	if err != nil {
		return core.Credential{}, fmt.Errorf("cannot load credentials: %w", err)
	}
	return cred, nil
}

func reportError(w io.Writer, err error) {
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(w, "Interrupted.")
		return
	}

	fmt.Fprintf(w, "Error: %v\n", err)

	var rej *core.APIRejection
	switch {
	case core.IsConfigMissing(err):
		fmt.Fprintln(w, `Try running "writego login <username> <instance>".`)
	case errors.As(err, &rej) && rej.Status == http.StatusUnauthorized:
		fmt.Fprintln(w, `The instance refused the access token. Try running "writego login" again.`)
	case core.IsTransport(err):
		fmt.Fprintln(w, "Check the instance name and your network connection.")
	}
}
