package git

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Pattern: Strategy -- swap hosting platform without
// changing command logic.

var (
	// ErrAuthConfigInvalid is returned when a creator
	// cannot be built from the stored URL and token.
	ErrAuthConfigInvalid = errors.New("invalid platform credentials")
	// ErrRemoteRejected is returned when the platform
	// API declines to create the repository. The
	// upstream error is wrapped unchanged.
	ErrRemoteRejected = errors.New("remote rejected repository creation")
	// ErrInvalidName is returned for an empty
	// repository name.
	ErrInvalidName = errors.New("invalid repository name")
)

// RemoteRepo describes a repository created on a
// hosting platform. Raw holds the platform specific
// payload and is not interpreted by callers.
type RemoteRepo struct {
	Platform string
	Name     string
	WebURL   string
	CloneURL string
	Raw      any
}

// RepoCreator creates repositories on a git hosting
// platform.
type RepoCreator interface {
	CreateRepo(
		ctx context.Context,
		name string,
	) (*RemoteRepo, error)
}

// RepoCreatorFunc adapts a plain function to the
// RepoCreator interface. Blank names are rejected
// before the function is called.
type RepoCreatorFunc func(
	ctx context.Context,
	name string,
) (*RemoteRepo, error)

// CreateRepo delegates to the wrapped function.
func (f RepoCreatorFunc) CreateRepo(
	ctx context.Context,
	name string,
) (*RemoteRepo, error) {
	if err := CheckName(name); err != nil {
		return nil, err
	}

	return f(ctx, name)
}

// CheckName rejects blank repository names.
func CheckName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf(
			"%w: name must not be empty", ErrInvalidName,
		)
	}

	return nil
}
