package git

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	gogit "github.com/go-git/go-git/v5"

	"github.com/byte4ever/powergit/hosting/exec"
)

// Init methods recorded in Repo.Method.
const (
	MethodBinary = "git"
	MethodGoGit  = "go-git"
)

// Repo is a local repository prepared by Init.
type Repo struct {
	// Dir is the working tree location.
	Dir string
	// Method tells how the repository was initialized.
	Method string
	// Output is what the initializer printed.
	Output string
	// ExitCode is the git binary exit status, 0 for
	// go-git.
	ExitCode int
}

// Initializer prepares a local repository in a
// directory.
type Initializer interface {
	Init(ctx context.Context, dir string) (*Repo, error)
}

// InitializerFunc adapts a plain function to the
// Initializer interface.
type InitializerFunc func(
	ctx context.Context,
	dir string,
) (*Repo, error)

// Init delegates to the wrapped function.
func (f InitializerFunc) Init(
	ctx context.Context,
	dir string,
) (*Repo, error) {
	return f(ctx, dir)
}

// DefaultInitializer runs Init.
var DefaultInitializer Initializer = InitializerFunc(Init)

// Init runs "git init" in dir. When no git binary is
// installed the repository is created with go-git. The
// returned Repo carries the exit status even when the
// binary failed.
func Init(ctx context.Context, dir string) (*Repo, error) {
	if !exec.Available("git") {
		slog.Debug("git binary not found, using go-git")

		return plainInit(dir)
	}

	return binaryInit(ctx, dir)
}

func binaryInit(ctx context.Context, dir string) (*Repo, error) {
	const errCtx = "initializing repository"

	res, err := exec.Ex(ctx, dir, "git", "init")

	repo := &Repo{
		Dir:      dir,
		Method:   MethodBinary,
		Output:   res.Output,
		ExitCode: res.ExitCode,
	}

	if err != nil {
		return repo, fmt.Errorf("%s: %w", errCtx, err)
	}

	return repo, nil
}

func plainInit(dir string) (*Repo, error) {
	const errCtx = "initializing repository with go-git"

	repo := &Repo{Dir: dir, Method: MethodGoGit}

	_, err := gogit.PlainInit(dir, false)
	if errors.Is(err, gogit.ErrRepositoryAlreadyExists) {
		repo.Output = "repository already exists in " + dir

		return repo, nil
	}

	if err != nil {
		repo.ExitCode = 1

		return repo, fmt.Errorf("%s: %w", errCtx, err)
	}

	repo.Output = "initialized empty repository in " + dir

	return repo, nil
}
