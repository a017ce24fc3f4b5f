package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/byte4ever/powergit/hosting/git"
	"github.com/byte4ever/powergit/hosting/platform"
)

// InitOptions carries the collaborators of Init. Zero
// values select the real implementations.
type InitOptions struct {
	// Dir is where the local repository is created.
	// Empty means the current working directory.
	Dir string
	// Initializer creates the local repository.
	Initializer git.Initializer
	// NewCreator builds the remote repository client.
	NewCreator CreatorFactory
}

// Init creates a local repository and, when a name is
// given, a remote repository on the selected platform.
type Init struct {
	env      Env
	name     string
	platform string
	opts     InitOptions
}

// NewInit validates args (at most one repository name).
// Nothing is read or written.
func NewInit(
	env Env,
	args []string,
	platformFlag string,
	opts InitOptions,
) (*Init, error) {
	const errCtx = "init"

	if len(args) > 1 {
		return nil, fmt.Errorf(
			"%s: %w: expected at most one repository name, got %d",
			errCtx, ErrArgs, len(args),
		)
	}

	var name string
	if len(args) == 1 {
		name = args[0]
	}

	if opts.Initializer == nil {
		opts.Initializer = git.DefaultInitializer
	}

	if opts.NewCreator == nil {
		opts.NewCreator = NewRepoCreator
	}

	return &Init{
		env:      env,
		name:     name,
		platform: platformFlag,
		opts:     opts,
	}, nil
}

// Run initializes the local repository, then creates
// the remote one when a name was given. The local step
// always runs and its failure is only logged; remote
// creation is attempted once and never retried.
func (c *Init) Run(ctx context.Context) error {
	const errCtx = "init"

	if kind, ok := explicitPlatform(c.platform); ok {
		if err := kind.Check(); err != nil {
			c.env.report(unsupportedMessage())

			return nil
		}
	}

	if err := c.env.ensure(); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	kind, err := c.env.resolvePlatform(c.platform)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if !kind.Supported() {
		c.env.report(unsupportedMessage())

		return nil
	}

	doc, err := c.env.Store.Load()
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	rec, ok := doc.Find(kind.String())
	if !ok {
		return fmt.Errorf(
			"%s: %w: no record for %s in %s (found: %s)",
			errCtx, ErrConfigMissing,
			kind.String(), c.env.Store.Path(),
			strings.Join(doc.Names(), ", "),
		)
	}

	dir, err := c.dir()
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	c.initLocal(ctx, dir)

	if c.name == "" {
		return nil
	}

	c.printf("Initializing remote repository %s on %s...\n", c.name, kind)

	creator, err := c.opts.NewCreator(kind, rec.Cfg)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	remote, err := creator.CreateRepo(ctx, c.name)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	c.printf("Remote repository %s created: %s\n", remote.Name, remote.WebURL)

	return nil
}

func unsupportedMessage() string {
	return "Unsupported platform please use one of the following: " +
		platform.Names()
}

func (c *Init) dir() (string, error) {
	if c.opts.Dir != "" {
		return c.opts.Dir, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("working directory: %w", err)
	}

	return wd, nil
}

// initLocal runs the local initializer and reports its
// exit status without enforcing it.
func (c *Init) initLocal(ctx context.Context, dir string) {
	c.printf("Initializing repository in %s...\n", dir)

	repo, err := c.opts.Initializer.Init(ctx, dir)
	if err != nil {
		slog.Warn(
			"local repository initialization failed",
			"dir", dir,
			"error", err,
		)
	}

	if repo == nil {
		return
	}

	slog.Debug(
		"local repository initialized",
		"dir", repo.Dir,
		"method", repo.Method,
		"exit_code", repo.ExitCode,
		"output", repo.Output,
	)

	c.printf("exit status: %d\n", repo.ExitCode)
}

func (c *Init) printf(format string, a ...any) {
	_, _ = fmt.Fprintf(c.env.Out, format, a...) //nolint:errcheck // best-effort output
}
