package console

import (
	"context"
	"os"

	"github.com/aretw0/lifecycle"
	"golang.org/x/term"
)

// PasswordReader reads a secret without echoing it.
// It returns ctx.Err() when the context ends first.
type PasswordReader func(ctx context.Context) (string, error)

// TerminalPassword reads from f with echo disabled.
// It returns nil when f is not a terminal, in which case the console reads
// the password as a plain line.
func TerminalPassword(f *os.File) PasswordReader {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return nil
	}

	type result struct {
		password string
		err      error
	}

	return func(ctx context.Context) (string, error) {
		state, err := term.GetState(fd)
		if err != nil {
			return "", err
		}

		done := make(chan result, 1)
		lifecycle.Go(ctx, func(context.Context) error {
			b, err := term.ReadPassword(fd)
			done <- result{password: string(b), err: err}
			return err
		})

		select {
		case r := <-done:
			return r.password, r.err
		case <-ctx.Done():
			// The pending read is abandoned; echo must come back now.
			term.Restore(fd, state)
			return "", ctx.Err()
		}
	}
}
