package github

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	gh "github.com/google/go-github/v68/github"

	"github.com/byte4ever/powergit/hosting/git"
)

// Config holds the settings needed to create a GitHub
// repository creator.
type Config struct {
	// URL is an optional GitHub Enterprise base URL
	// (e.g. "https://git.corp.example.com"). Leave
	// empty for github.com.
	URL string
	// Token is a personal access token.
	Token string
	// HTTPClient overrides the transport. Nil uses the
	// go-github default.
	HTTPClient *http.Client
}

// Creator creates repositories on GitHub.
//
// Pattern: Strategy -- implements git.RepoCreator.
type Creator struct {
	client *gh.Client
}

// NewCreator validates cfg and returns a Creator.
func NewCreator(cfg Config) (*Creator, error) {
	const errCtx = "creating github client"

	if err := git.CheckToken(cfg.Token); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	client := gh.NewClient(cfg.HTTPClient).
		WithAuthToken(cfg.Token)

	if cfg.URL != "" {
		if _, err := git.ParseBaseURL(cfg.URL); err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}

		var err error

		client, err = client.WithEnterpriseURLs(
			cfg.URL, cfg.URL,
		)
		if err != nil {
			return nil, fmt.Errorf(
				"%s: %w: enterprise urls: %w",
				errCtx, git.ErrAuthConfigInvalid, err,
			)
		}
	}

	return &Creator{client: client}, nil
}

// CreateRepo creates a private repository owned by the
// authenticated user.
func (c *Creator) CreateRepo(
	ctx context.Context,
	name string,
) (*git.RemoteRepo, error) {
	const errCtx = "creating github repository"

	if err := git.CheckName(name); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	req := &gh.Repository{
		Name:     gh.Ptr(name),
		Private:  gh.Ptr(true),
		AutoInit: gh.Ptr(false),
	}

	created, resp, err := c.client.Repositories.Create(
		ctx, "", req,
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
		"created repository",
		"url", created.GetHTMLURL(),
	)

	return &git.RemoteRepo{
		Platform: "github",
		Name:     created.GetFullName(),
		WebURL:   created.GetHTMLURL(),
		CloneURL: created.GetCloneURL(),
		Raw:      created,
	}, nil
}

// logResponse logs the response body for debugging.
func logResponse(resp *gh.Response) {
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

	slog.Debug("github response", "body", string(rb))
}
