package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/cli/go-gh/v2/pkg/api"
	"github.com/shurcooL/graphql"
	"golang.org/x/time/rate"

	"github.com/swfz/gh-reporank/internal/models"
)

const (
	graphqlURL = "https://api.github.com/graphql"
	restURL    = "https://api.github.com"
)

// Options controls timeout and retry behaviour of lookups
type Options struct {
	Timeout time.Duration // Per-attempt timeout (0 = no timeout)
	Retries int           // Extra attempts after a transient failure
}

// DefaultOptions returns the options used when none are configured
func DefaultOptions() Options {
	return Options{
		Timeout: 30 * time.Second,
		Retries: 2,
	}
}

// Client wraps GitHub API client with rate limiting
type Client struct {
	graphqlClient *graphql.Client
	httpClient    *http.Client
	restURL       string
	rateLimiter   *rate.Limiter
	options       Options
	newBackOff    func() backoff.BackOff
	now           func() time.Time
	logger        *slog.Logger
}

// NewClient creates a new GitHub API client using gh CLI authentication
func NewClient(options Options, logger *slog.Logger) (*Client, error) {
	// Use gh CLI's authentication
	httpClient, err := api.DefaultHTTPClient()
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	return newClient(httpClient, graphqlURL, restURL, options, logger), nil
}

func newClient(httpClient *http.Client, graphqlEndpoint, restEndpoint string, options Options, logger *slog.Logger) *Client {
	if options.Retries < 0 {
		options.Retries = 0
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Client{
		graphqlClient: graphql.NewClient(graphqlEndpoint, httpClient),
		httpClient:    httpClient,
		restURL:       restEndpoint,
		// 5000 points per hour; one lookup costs two requests
		rateLimiter: rate.NewLimiter(rate.Every(time.Second), 10),
		options:     options,
		newBackOff: func() backoff.BackOff {
			return backoff.NewExponentialBackOff()
		},
		now:    time.Now,
		logger: logger,
	}
}

// FetchRepoInfo looks up a repository and computes its metric groups.
// Every error returned is a *LookupError. Transient failures are retried
// up to Options.Retries times with exponential backoff.
func (c *Client) FetchRepoInfo(ctx context.Context, owner, name string) (*models.RepoInfo, error) {
	id := models.NewIdentity(owner, name)
	if !id.Complete() {
		return nil, &LookupError{Kind: KindUnknown, Identity: id, Message: "owner and repository name are required"}
	}

	operation := func() (*models.RepoInfo, error) {
		info, err := c.fetchOnce(ctx, id)
		if err == nil {
			return info, nil
		}

		lookupErr := classify(id, err)
		if !lookupErr.Retryable() {
			return nil, backoff.Permanent(lookupErr)
		}
		return nil, lookupErr
	}

	info, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(c.newBackOff()),
		backoff.WithMaxTries(uint(c.options.Retries+1)),
		backoff.WithNotify(func(err error, next time.Duration) {
			c.logger.Warn("lookup failed, retrying", "repo", id.String(), "error", err, "backoff", next)
		}),
	)
	if err != nil {
		return nil, classify(id, err)
	}

	return info, nil
}

// fetchOnce performs a single lookup attempt
func (c *Client) fetchOnce(ctx context.Context, id models.Identity) (*models.RepoInfo, error) {
	if c.options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.options.Timeout)
		defer cancel()
	}

	// Wait for rate limiter
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	var query RepositoryQuery
	variables := map[string]interface{}{
		"owner": graphql.String(id.Owner),
		"name":  graphql.String(id.Name),
	}

	c.logger.Debug("querying repository", "repo", id.String())

	if err := c.graphqlClient.Query(ctx, &query, variables); err != nil {
		return nil, fmt.Errorf("GraphQL query failed: %w", err)
	}
	if query.Repository == nil {
		return nil, NotFound(id, "repository not found")
	}

	// The community profile is optional; only transient failures fail the lookup
	profile, err := c.fetchCommunityProfile(ctx, id.Owner, id.Name)
	if err != nil {
		if lookupErr := classify(id, err); lookupErr.Retryable() {
			return nil, lookupErr
		}
		c.logger.Debug("community profile unavailable", "repo", id.String(), "error", err)
		profile = nil
	}

	return buildRepoInfo(query.Repository, profile, c.now()), nil
}
