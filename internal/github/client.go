// Package github fetches releases and downloads release assets through the
// GitHub REST API.
package github

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v75/github"
	"go.uber.org/zap"

	"github.com/ZebulonRouseFrantzich/relfetch/internal/download"
	"github.com/ZebulonRouseFrantzich/relfetch/internal/release"
)

// DefaultUserAgent is the User-Agent header sent with requests.
const DefaultUserAgent = "relfetch"

// maxRedirects bounds redirects followed for asset downloads, which GitHub
// serves from a separate storage host.
const maxRedirects = 10

var (
	// ErrReleaseNotFound is returned when the repository or the requested
	// release does not exist, or is not visible with the configured token.
	ErrReleaseNotFound = errors.New("release not found")

	// ErrRateLimited is returned when the API refuses requests until the
	// rate limit resets.
	ErrRateLimited = errors.New("GitHub API rate limit exceeded")
)

// Client talks to the GitHub API.
type Client struct {
	api     *gh.Client
	http    *http.Client
	logger  *zap.Logger
	baseURL string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root, such as a GitHub
// Enterprise server or a test server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient replaces the HTTP client used for all requests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.http = client
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a Client. An empty token makes unauthenticated
// requests, which GitHub rate limits more strictly.
func NewClient(token string, opts ...Option) (*Client, error) {
	c := &Client{
		http: &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.api = gh.NewClient(c.http)
	c.api.UserAgent = DefaultUserAgent
	if token != "" {
		c.api = c.api.WithAuthToken(token)
	}

	if c.baseURL != "" {
		base := c.baseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("parse base URL: %w", err)
		}
		c.api.BaseURL = u
	}

	return c, nil
}

// FetchRelease returns the release of repo with the given tag, or the
// latest release when tag is nil.
func (c *Client) FetchRelease(ctx context.Context, repo release.Repository, tag *release.Tag) (*release.Release, error) {
	var (
		rel *gh.RepositoryRelease
		err error
	)

	if tag == nil {
		c.logger.Debug("fetching latest release", zap.Stringer("repository", repo))
		rel, _, err = c.api.Repositories.GetLatestRelease(ctx, repo.Owner, repo.Repo)
	} else {
		c.logger.Debug("fetching release", zap.Stringer("repository", repo), zap.String("tag", tag.Value))
		rel, _, err = c.api.Repositories.GetReleaseByTag(ctx, repo.Owner, repo.Repo, tag.Value)
	}
	if err != nil {
		return nil, classify(err, describeRelease(repo, tag), ErrReleaseNotFound)
	}

	return convertRelease(rel), nil
}

// DownloadAsset opens a stream of the asset's content. The caller must
// close the returned body.
func (c *Client) DownloadAsset(ctx context.Context, repo release.Repository, asset release.Asset) (download.Stream, io.Closer, error) {
	c.logger.Debug("downloading asset",
		zap.Stringer("repository", repo),
		zap.String("asset", asset.Name),
		zap.Int64("id", asset.ID),
	)

	body, _, err := c.api.Repositories.DownloadReleaseAsset(ctx, repo.Owner, repo.Repo, asset.ID, c.http)
	if err != nil {
		return download.Stream{}, nil, classify(err, "asset "+asset.Name, release.ErrAssetNotFound)
	}

	stream := download.Stream{
		Body:   body,
		Name:   asset.Name,
		Length: asset.Size,
	}
	return stream, body, nil
}

func describeRelease(repo release.Repository, tag *release.Tag) string {
	if tag == nil {
		return "latest release of " + repo.String()
	}
	return fmt.Sprintf("release %s of %s", tag.Value, repo)
}

// classify maps API errors onto sentinels. A 404 becomes notFound.
func classify(err error, what string, notFound error) error {
	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		return fmt.Errorf("%w (resets at %s), set GITHUB_TOKEN to raise the limit",
			ErrRateLimited, rateErr.Rate.Reset.Format("15:04:05"))
	}

	var respErr *gh.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil && respErr.Response.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s: %w", what, notFound)
	}

	return fmt.Errorf("%s: %w", what, err)
}

func convertRelease(rel *gh.RepositoryRelease) *release.Release {
	out := &release.Release{
		Tag:    release.Tag{Value: rel.GetTagName()},
		Assets: make([]release.Asset, 0, len(rel.Assets)),
	}
	for _, a := range rel.Assets {
		out.Assets = append(out.Assets, release.Asset{
			Name:        a.GetName(),
			DownloadURL: a.GetBrowserDownloadURL(),
			ID:          a.GetID(),
			Size:        int64(a.GetSize()),
		})
	}
	return out
}
