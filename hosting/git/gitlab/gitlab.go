// Package gitlab implements a git.RepoCreator that creates projects on
// gitlab.com or a self-managed GitLab instance.
package gitlab

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	gl "gitlab.com/gitlab-org/api/client-go"

	"github.com/byte4ever/powergit/hosting/git"
)

// DefaultURL is used when no instance URL is stored.
const DefaultURL = "https://gitlab.com"

// Config holds the settings needed to create a GitLab
// repository creator.
type Config struct {
	// URL is the base URL of the GitLab instance
	// (e.g. "https://gitlab.com").
	URL string
	// Token is a personal access token with api
	// scope.
	Token string
	// HTTPClient overrides the transport. Nil uses the
	// client library default.
	HTTPClient *http.Client
}

// Creator creates projects on GitLab.
//
// Pattern: Strategy -- implements git.RepoCreator.
type Creator struct {
	client *gl.Client
}

// NewCreator validates cfg and returns a Creator.
// Client side retries are disabled: creating a project
// twice is not harmless.
func NewCreator(cfg Config) (*Creator, error) {
	const errCtx = "creating gitlab client"

	if err := git.CheckToken(cfg.Token); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	host := cfg.URL
	if host == "" {
		host = DefaultURL
	}

	if _, err := git.ParseBaseURL(host); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	opts := []gl.ClientOptionFunc{
		gl.WithBaseURL(host),
		gl.WithCustomRetryMax(0),
	}

	if cfg.HTTPClient != nil {
		opts = append(opts, gl.WithHTTPClient(cfg.HTTPClient))
	}

	client, err := gl.NewClient(cfg.Token, opts...)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: %w: new client: %w",
			errCtx, git.ErrAuthConfigInvalid, err,
		)
	}

	return &Creator{client: client}, nil
}

// CreateRepo creates a private project with "main" as
// its default branch.
func (c *Creator) CreateRepo(
	ctx context.Context,
	name string,
) (*git.RemoteRepo, error) {
	const errCtx = "creating gitlab project"

	if err := git.CheckName(name); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	opts := gl.CreateProjectOptions{
		Name:          gl.Ptr(name),
		Visibility:    gl.Ptr(gl.PrivateVisibility),
		DefaultBranch: gl.Ptr("main"),
	}

	created, resp, err := c.client.Projects.CreateProject(
		&opts, gl.WithContext(ctx),
	)
	if err != nil {
		logResponse(resp)

		if resp != nil {
			return nil, fmt.Errorf(
				"%s: %w: %w",
				errCtx, git.ErrRemoteRejected, err,
			)
		}

		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	slog.Info(
		"created project",
		"url", created.WebURL,
	)

	return &git.RemoteRepo{
		Platform: "gitlab",
		Name:     created.PathWithNamespace,
		WebURL:   created.WebURL,
		CloneURL: created.HTTPURLToRepo,
		Raw:      created,
	}, nil
}

// logResponse logs the response body for debugging.
func logResponse(resp *gl.Response) {
	if resp == nil || resp.Body == nil {
		return
	}

	defer resp.Body.Close() //nolint:errcheck

	rb, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Warn(
			"cannot read response body",
			"error", err,
		)

		return
	}

	slog.Debug("gitlab response", "body", string(rb))
}
