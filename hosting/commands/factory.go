package commands

import (
	"fmt"

	"github.com/byte4ever/powergit/hosting/config"
	"github.com/byte4ever/powergit/hosting/git"
	"github.com/byte4ever/powergit/hosting/git/bitbucket"
	"github.com/byte4ever/powergit/hosting/git/github"
	"github.com/byte4ever/powergit/hosting/git/gitlab"
	"github.com/byte4ever/powergit/hosting/platform"
)

// CreatorFactory builds the RepoCreator for a platform
// from its stored settings.
type CreatorFactory func(
	kind platform.Kind,
	settings config.Settings,
) (git.RepoCreator, error)

// NewRepoCreator creates a git.RepoCreator based on the
// platform kind. Pattern: Factory -- selects platform
// implementation at runtime.
func NewRepoCreator(
	kind platform.Kind,
	settings config.Settings,
) (git.RepoCreator, error) {
	const errCtx = "creating repository client"

	switch kind {
	case platform.GitHub:
		c, err := github.NewCreator(github.Config{
			URL:   settings.URL,
			Token: settings.Token,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}

		return c, nil

	case platform.GitLab:
		c, err := gitlab.NewCreator(gitlab.Config{
			URL:   settings.URL,
			Token: settings.Token,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}

		return c, nil

	case platform.Bitbucket:
		c, err := bitbucket.NewCreator(bitbucket.Config{
			URL:   settings.URL,
			Token: settings.Token,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}

		return c, nil

	default:
		return nil, fmt.Errorf(
			"%s: %w", errCtx, kind.Check(),
		)
	}
}
