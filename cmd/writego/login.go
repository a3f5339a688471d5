package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/lifecycle"
	"github.com/spf13/cobra"

	"github.com/aretw0/writego/internal/console"
)

var loginCmd = &cobra.Command{
	Use:   "login <username> [password] <instance>",
	Short: "Log in and save the access token",
	Long: `Login exchanges a username and password for an access token and saves it,
with the instance, in config.json. The password itself is never stored.

The instance is the bare host name, e.g. write.as. When the password is
omitted it is read from the terminal without echo. Passwords with special
characters may need single quotes to get past your shell.

Any saved login is replaced, and its token is invalidated on its instance.`,
	Example: `  writego login alice write.as
  writego login alice 'p@ss!word' write.as`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		username, instance := args[0], args[len(args)-1]

		var password string
		if len(args) == 3 {
			password = args[1]
		} else {
			var err error
			if password, err = promptPassword(cmd); err != nil {
				return err
			}
		}

		svc, err := newService()
		if err != nil {
			return err
		}

		previous, prevErr := svc.Credential()

		cred, err := svc.Login(cmd.Context(), instance, username, password)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Logged in to %s. Credentials saved to %s\n", cred.Instance, configPath())

		if prevErr == nil && previous.AccessToken != cred.AccessToken {
			if err := svc.Revoke(cmd.Context(), previous); err != nil {
				slog.Warn("could not invalidate the previous token", "instance", previous.Instance, "error", err)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Invalidated the previous token on %s\n", previous.Instance)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
}

// promptPassword reads without echo from a terminal, or a plain line otherwise.
// Both give up when the command's context is cancelled.
func promptPassword(cmd *cobra.Command) (string, error) {
	ctx := cmd.Context()
	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")

	if f, ok := cmd.InOrStdin().(*os.File); ok {
		if read := console.TerminalPassword(f); read != nil {
			password, err := read(ctx)
			fmt.Fprintln(cmd.ErrOrStderr())
			if err != nil {
				return "", fmt.Errorf("cannot read password: %w", err)
			}
			return password, nil
		}
	}

	in := lifecycle.NewInterruptibleReader(cmd.InOrStdin(), ctx.Done())
	line, err := bufio.NewReader(in).ReadString('\n')
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", fmt.Errorf("cannot read password: %w", ctxErr)
	}
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("cannot read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
