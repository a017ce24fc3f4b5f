// Package bitbucket implements a git.RepoCreator for Bitbucket Cloud. The
// stored URL is the repository collection of a workspace, for example
// "https://api.bitbucket.org/2.0/repositories/my-workspace".
package bitbucket

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/byte4ever/powergit/hosting/git"
)

// Config holds the settings needed to create a
// Bitbucket repository creator.
type Config struct {
	// URL is the workspace repository collection
	// endpoint. Required: it carries the workspace.
	URL string
	// Token is a workspace or repository access token
	// sent as a bearer token.
	Token string
	// HTTPClient overrides the transport. Nil uses
	// http.DefaultClient.
	HTTPClient *http.Client
}

// Creator creates repositories on Bitbucket Cloud.
//
// Pattern: Strategy -- implements git.RepoCreator.
type Creator struct {
	endpoint string
	token    string
	client   *http.Client
}

type createRequest struct {
	SCM       string `json:"scm"`
	Name      string `json:"name"`
	IsPrivate bool   `json:"is_private"`
}

type link struct {
	Href string `json:"href"`
	Name string `json:"name,omitempty"`
}

// Repository is the subset of the Bitbucket repository
// resource returned on creation.
type Repository struct {
	UUID     string `json:"uuid"`
	Slug     string `json:"slug"`
	FullName string `json:"full_name"`
	Links    struct {
		HTML  link   `json:"html"`
		Clone []link `json:"clone"`
	} `json:"links"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// NewCreator validates cfg and returns a Creator.
func NewCreator(cfg Config) (*Creator, error) {
	const errCtx = "creating bitbucket client"

	if cfg.URL == "" {
		return nil, fmt.Errorf(
			"%s: %w: url must be set",
			errCtx, git.ErrAuthConfigInvalid,
		)
	}

	if _, err := git.ParseBaseURL(cfg.URL); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := git.CheckToken(cfg.Token); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	client := cfg.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	return &Creator{
		endpoint: strings.TrimRight(cfg.URL, "/"),
		token:    cfg.Token,
		client:   client,
	}, nil
}

// Slug derives the repository slug from name.
func Slug(name string) string {
	return strings.ToLower(
		strings.Join(strings.Fields(name), "-"),
	)
}

// CreateRepo creates a private git repository. Returns
// the created repository on 200 or 201.
func (c *Creator) CreateRepo(
	ctx context.Context,
	name string,
) (*git.RemoteRepo, error) {
	const errCtx = "creating bitbucket repository"

	if err := git.CheckName(name); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	payload, err := json.Marshal(&createRequest{
		SCM:       "git",
		Name:      name,
		IsPrivate: true,
	})
	if err != nil {
		return nil, fmt.Errorf(
			"%s: marshal request: %w", errCtx, err,
		)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.endpoint+"/"+Slug(name),
		bytes.NewBuffer(payload),
	)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: build request: %w", errCtx, err,
		)
	}

	req.Header.Set(
		"Content-Type",
		"application/json; charset=utf-8",
	)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: send request: %w", errCtx, err,
		)
	}

	defer resp.Body.Close() //nolint:errcheck

	rb, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: read response: %w", errCtx, err,
		)
	}

	slog.Debug(
		"bitbucket response",
		"status", resp.Status,
		"body", string(rb),
	)

	if resp.StatusCode != http.StatusOK &&
		resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf(
			"%s: %w: %s: %s",
			errCtx, git.ErrRemoteRejected,
			resp.Status, upstreamMessage(rb),
		)
	}

	var created Repository

	if err := json.Unmarshal(rb, &created); err != nil {
		return nil, fmt.Errorf(
			"%s: decode response: %w", errCtx, err,
		)
	}

	slog.Info(
		"created repository",
		"url", created.Links.HTML.Href,
	)

	return &git.RemoteRepo{
		Platform: "bitbucket",
		Name:     created.FullName,
		WebURL:   created.Links.HTML.Href,
		CloneURL: cloneURL(created),
		Raw:      &created,
	}, nil
}

// upstreamMessage extracts the error message from a
// Bitbucket error body, falling back to the raw body.
func upstreamMessage(body []byte) string {
	var er errorResponse

	if err := json.Unmarshal(body, &er); err == nil &&
		er.Error.Message != "" {
		return er.Error.Message
	}

	return strings.TrimSpace(string(body))
}

func cloneURL(repo Repository) string {
	for _, l := range repo.Links.Clone {
		if l.Name == "https" {
			return l.Href
		}
	}

	return ""
}
