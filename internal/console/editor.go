package console

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/aretw0/lifecycle"
	"github.com/kballard/go-shellquote"
)

// Editor opens a file for the user to edit and returns once they are done.
type Editor interface {
	Edit(ctx context.Context, path string) error
}

// CommandEditor runs an editor command line, such as the value of $EDITOR.
// The command may carry arguments ("code --wait"); the file path is appended.
type CommandEditor struct {
	Command string
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
}

// EditorFromEnv returns the editor named by $EDITOR, or nil when unset.
func EditorFromEnv() *CommandEditor {
	cmd := os.Getenv("EDITOR")
	if cmd == "" {
		return nil
	}
	return &CommandEditor{Command: cmd, Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Edit implements Editor. A non-zero exit status is returned as an error.
// The editor is killed when ctx ends or when writego itself dies.
func (e *CommandEditor) Edit(ctx context.Context, path string) error {
	args, err := shellquote.Split(e.Command)
	if err != nil {
		return fmt.Errorf("cannot parse editor command %q: %w", e.Command, err)
	}
	if len(args) == 0 {
		return fmt.Errorf("editor command is empty")
	}

	cmd := exec.CommandContext(ctx, args[0], append(args[1:], path)...)
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	if err := lifecycle.StartProcess(cmd); err != nil {
		return err
	}
	return cmd.Wait()
}
