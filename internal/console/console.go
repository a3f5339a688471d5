// Package console implements the interactive menu of writego.
//
// The console keeps a core.Session in memory: the credential is loaded from
// the store the first time an action needs it, and the collection is asked
// for whenever none is set. Every failure is printed and the menu continues.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aretw0/lifecycle"
	"github.com/google/uuid"

	"github.com/aretw0/writego/pkg/core"
)

// RecentLimit caps how many posts the listing shows.
const RecentLimit = 10

// TempFilePrefix names the files handed to the editor.
const TempFilePrefix = "writego_"

var menu = []string{
	"Login",
	"Logout",
	"Define collection",
	"Create post",
	fmt.Sprintf("Get %d most recent posts", RecentLimit),
	"Delete a post",
	"Quit",
}

const (
	optLogin = iota + 1
	optLogout
	optCollection
	optCreate
	optList
	optDelete
	optQuit
)

// Config holds the collaborators of a Console.
type Config struct {
	Service *core.Service
	In      io.Reader
	Out     io.Writer

	// Editor edits new posts. Creating posts is refused when nil.
	Editor Editor
	// Picker chooses the post to delete. The ID is typed when nil.
	Picker Picker
	// Password reads the login password. A plain line is read when nil.
	Password PasswordReader
	// TempDir holds the files handed to the editor. Defaults to os.TempDir().
	TempDir string
	Logger  *slog.Logger
}

// Console is an interactive session over a reader and a writer.
type Console struct {
	svc      *core.Service
	src      io.Reader
	in       *bufio.Reader
	out      io.Writer
	editor   Editor
	picker   Picker
	password PasswordReader
	tempDir  string
	logger   *slog.Logger
	style    styles

	session   core.Session
	validated bool
}

// New creates a Console.
func New(config Config) *Console {
	in := config.In
	if in == nil {
		in = os.Stdin
	}
	out := config.Out
	if out == nil {
		out = os.Stdout
	}
	tempDir := config.TempDir
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Console{
		svc:      config.Service,
		src:      in,
		in:       bufio.NewReader(in),
		out:      out,
		editor:   config.Editor,
		picker:   config.Picker,
		password: config.Password,
		tempDir:  tempDir,
		logger:   logger,
		style:    newStyles(out),
	}
}

// Session returns the in-memory state of the console.
func (c *Console) Session() core.Session {
	return c.session
}

// Run shows the menu until the user quits or the input ends.
// A blocked prompt is abandoned when ctx ends, and Run returns ctx.Err().
// Otherwise it only returns an error when reading the input fails.
func (c *Console) Run(ctx context.Context) error {
	c.in = bufio.NewReader(lifecycle.NewInterruptibleReader(c.src, ctx.Done()))
	c.greet()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if c.session.Collection == "" {
			if err := c.defineCollection(); err != nil {
				return stopped(ctx, err)
			}
			continue
		}

		for i, option := range menu {
			c.printf("%s%s\n", c.style.option.Render(fmt.Sprintf("%d. ", i+1)), option)
		}
		line, err := c.readLine("> ")
		if err != nil {
			return stopped(ctx, err)
		}

		choice, ok := parseChoice(line, len(menu))
		if !ok {
			c.println(c.style.err.Render(fmt.Sprintf("%s is not valid!", line)))
			continue
		}

		switch choice {
		case optLogin:
			err = c.login(ctx)
		case optLogout:
			c.logout(ctx)
		case optCollection:
			err = c.defineCollection()
		case optCreate:
			err = c.createPost(ctx)
		case optList:
			c.listPosts(ctx)
		case optDelete:
			err = c.deletePost(ctx)
		case optQuit:
			c.println(c.style.accent.Render("Goodbye!"))
			return nil
		}
		if err != nil {
			return stopped(ctx, err)
		}
	}
}

func (c *Console) greet() {
	c.println(c.style.rule.Render("──── writego ────"))
	c.println(c.style.welcome.Render("Welcome to the interactive console!"))
}

func (c *Console) login(ctx context.Context) error {
	c.println("Enter your instance name.")
	instance, err := c.readLine("> ")
	if err != nil {
		return err
	}
	c.println("Enter your username.")
	username, err := c.readLine("> ")
	if err != nil {
		return err
	}
	c.println("Enter your password.")
	password, err := c.readPassword(ctx, "> ")
	if err != nil {
		return err
	}

	previous := c.session.Credential
	if !previous.Valid() {
		previous, _ = c.svc.Credential()
	}

	cred, err := c.svc.Login(ctx, instance, username, password)
	if err != nil && !cred.Valid() {
		c.printError("Login failed", err)
		return nil
	}
	if err != nil {
		c.println(c.style.warn.Render(fmt.Sprintf("Logged in, but the credentials were not saved: %v", err)))
	}

	c.session.Credential = cred
	c.validated = false
	c.printf("Logged in to %s\n", c.style.accent.Render(cred.Instance))

	if previous.Valid() && previous.AccessToken != cred.AccessToken {
		c.revokePrevious(ctx, previous)
	}
	return nil
}

// revokePrevious retires the token a new login replaced.
func (c *Console) revokePrevious(ctx context.Context, previous core.Credential) {
	if err := c.svc.Revoke(ctx, previous); err != nil {
		c.logger.Warn("could not invalidate the previous token", "instance", previous.Instance, "error", err)
		c.println(c.style.warn.Render(fmt.Sprintf("Could not invalidate the previous token on %s: %v", previous.Instance, err)))
		return
	}
	c.printf("Invalidated the previous token on %s\n", previous.Instance)
}

func (c *Console) logout(ctx context.Context) {
	var (
		report core.LogoutReport
		err    error
	)
	if c.session.LoggedIn() {
		report, err = c.svc.Logout(ctx, c.session.Credential)
	} else {
		report, err = c.svc.LogoutSaved(ctx)
	}
	c.session.Reset()
	c.validated = false

	switch {
	case core.IsConfigMissing(err):
		c.println("Not logged in, nothing to remove.")
		return
	case err != nil:
		c.printError("Could not remove the local credentials", err)
		return
	}

	if report.RemoteErr != nil {
		c.println(c.style.warn.Render(fmt.Sprintf("Could not invalidate the token on the instance: %v", report.RemoteErr)))
	}
	c.println("Logged out. Local credentials removed.")
}

func (c *Console) defineCollection() error {
	c.printf("Enter the name of the current %s:\n", c.style.accent.Render("collection"))
	name, err := c.readLine("> ")
	if err != nil {
		return err
	}

	c.session.Collection = strings.TrimSpace(name)
	c.validated = false
	if c.session.Collection != "" {
		c.printf("Saved collection of: %s\n", c.style.accent.Render(c.session.Collection))
	}
	return nil
}

// ready loads the credential and validates the collection once per choice.
func (c *Console) ready(ctx context.Context) (core.Credential, bool) {
	if c.session.Collection == "" {
		c.printf("No %s has been specified!\n", c.style.accent.Render("collection"))
		return core.Credential{}, false
	}

	if !c.session.LoggedIn() {
		cred, err := c.svc.Credential()
		if err != nil {
			if core.IsConfigMissing(err) {
				c.printMissingConfig()
			} else {
				c.printError("Could not load credentials", err)
			}
			return core.Credential{}, false
		}
		c.session.Credential = cred
	}

	if !c.validated {
		if ok, err := c.svc.ValidateCollection(ctx, c.session.Credential, c.session.Collection); !ok {
			c.println(c.style.err.Render(fmt.Sprintf("Invalid collection! Specify a new one with option %d.", optCollection)))
			c.println(c.style.dim.Render(err.Error()))
			c.hintLogin(err)
			return core.Credential{}, false
		}
		c.validated = true
	}
	return c.session.Credential, true
}

func (c *Console) createPost(ctx context.Context) error {
	cred, ok := c.ready(ctx)
	if !ok {
		return nil
	}
	if c.editor == nil {
		c.printf("No %s found. Be sure this environment variable is set.\n", c.style.err.Render("EDITOR"))
		return nil
	}

	name := TempFilePrefix + uuid.NewString() + ".md"
	path := filepath.Join(c.tempDir, name)
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		c.printError("Could not create the temporary file", err)
		return nil
	}
	defer func() {
		c.printf("Deleting %s\n", path)
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			c.printError(fmt.Sprintf("Failed to remove file %q", path), err)
		}
	}()

	c.printf("Launching your editor with temporary file: %s\n", c.style.accent.Render(name))

	publish, err := c.editLoop(ctx, path)
	if err != nil || !publish {
		return err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		c.printError("Could not read the post", err)
		return nil
	}

	c.println("Creating the post...")
	_, id, err := c.svc.Publish(ctx, cred, string(raw), c.session.Collection)
	if err != nil {
		c.printError("Could not create the post", err)
		return nil
	}
	c.printf("Successfully created post with ID: %s\n", c.style.accent.Render(id))
	return nil
}

// editLoop runs the editor until the user publishes or discards.
func (c *Console) editLoop(ctx context.Context, path string) (bool, error) {
	for {
		if err := c.editor.Edit(ctx, path); err != nil {
			c.println(c.style.err.Render(fmt.Sprintf("Aborting. Editor failed: %v", err)))
			return false, nil
		}

		answer, err := c.askPublish()
		if err != nil {
			return false, err
		}
		switch answer {
		case "1":
			return true, nil
		case "3":
			c.println("Post discarded.")
			return false, nil
		}
	}
}

// askPublish repeats the question until it gets 1, 2 or 3.
func (c *Console) askPublish() (string, error) {
	for {
		c.println("Do you want to publish this post?")
		c.println("1. Publish")
		c.println("2. Edit")
		c.println("3. Discard")
		line, err := c.readLine("> ")
		if err != nil {
			return "", err
		}

		switch answer := strings.TrimSpace(line); answer {
		case "1", "2", "3":
			return answer, nil
		}
		c.println(c.style.err.Render("Invalid selection!"))
	}
}

func (c *Console) listPosts(ctx context.Context) {
	cred, ok := c.ready(ctx)
	if !ok {
		return
	}

	posts, err := c.svc.ListPosts(ctx, cred, c.session.Collection)
	if err != nil {
		c.printError("Could not list posts", err)
		return
	}
	if len(posts) == 0 {
		c.printf("No posts in %s.\n", c.style.accent.Render(c.session.Collection))
		return
	}

	if len(posts) > RecentLimit {
		posts = posts[:RecentLimit]
	}
	for _, p := range posts {
		c.printf("%s  %s  %s\n",
			c.style.dim.Render(p.Created.Local().Format("2006-01-02 15:04")),
			c.style.accent.Render(p.ID),
			p.Title)
	}
}

func (c *Console) deletePost(ctx context.Context) error {
	cred, ok := c.ready(ctx)
	if !ok {
		return nil
	}

	id, picked := c.pick(ctx, cred)
	if picked && id == "" {
		c.println("Nothing deleted.")
		return nil
	}
	if !picked {
		c.println("Enter the post ID to remove.")
		line, err := c.readLine("> ")
		if err != nil {
			return err
		}
		id = line
	}

	if err := c.svc.DeletePost(ctx, cred, id); err != nil {
		c.printError("Could not delete the post", err)
		return nil
	}
	c.printf("Deleted post %s\n", c.style.accent.Render(strings.TrimSpace(id)))
	return nil
}

// pick offers the picker over the collection. It reports false when the
// picker could not be used and the ID has to be typed instead.
func (c *Console) pick(ctx context.Context, cred core.Credential) (string, bool) {
	if c.picker == nil {
		return "", false
	}

	posts, err := c.svc.ListPosts(ctx, cred, c.session.Collection)
	if err != nil || len(posts) == 0 {
		c.logger.Debug("picker unavailable", "posts", len(posts), "error", err)
		return "", false
	}

	id, err := c.picker.Pick(posts)
	switch {
	case errors.Is(err, ErrNoSelection):
		return "", true
	case err != nil:
		c.logger.Debug("picker failed, falling back to typed id", "error", err)
		return "", false
	}
	return id, true
}

func (c *Console) printMissingConfig() {
	c.printf("Try running %s\n", c.style.accent.Render("login"))
}

func (c *Console) printError(msg string, err error) {
	c.println(c.style.err.Render(fmt.Sprintf("%s: %v", msg, err)))
	c.hintLogin(err)
}

// hintLogin suggests a new login when the instance refused the token.
func (c *Console) hintLogin(err error) {
	if status, ok := core.IsRejection(err); ok && status == http.StatusUnauthorized {
		c.printMissingConfig()
	}
}

func (c *Console) readLine(prompt string) (string, error) {
	io.WriteString(c.out, prompt)
	line, err := c.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *Console) readPassword(ctx context.Context, prompt string) (string, error) {
	if c.password == nil {
		return c.readLine(prompt)
	}
	io.WriteString(c.out, prompt)
	pass, err := c.password(ctx)
	io.WriteString(c.out, "\n")
	return pass, err
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}

func parseChoice(line string, limit int) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || n < 1 || n > limit {
		return 0, false
	}
	return n, true
}

// stopped decides what Run returns after a failed read: the context's error
// when it ended, nothing when the input is closed, and err otherwise.
func stopped(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, io.EOF) || lifecycle.IsInterrupted(err) {
		return nil
	}
	return err
}
