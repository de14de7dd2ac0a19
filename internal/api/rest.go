package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// CommunityProfile represents the response from GitHub's community profile API
type CommunityProfile struct {
	HealthPercentage int `json:"health_percentage"`
	Files            struct {
		CodeOfConduct       *struct{} `json:"code_of_conduct"`
		Contributing        *struct{} `json:"contributing"`
		IssueTemplate       *struct{} `json:"issue_template"`
		PullRequestTemplate *struct{} `json:"pull_request_template"`
		Readme              *struct{} `json:"readme"`
	} `json:"files"`
}

// fetchCommunityProfile fetches the community health profile of a repository
func (c *Client) fetchCommunityProfile(ctx context.Context, owner, repo string) (*CommunityProfile, error) {
	// Wait for rate limiter
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	url := fmt.Sprintf("%s/repos/%s/%s/community/profile", c.restURL, owner, repo)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	c.logger.Debug("fetching community profile", "repo", owner+"/"+repo)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	// Handle non-2xx status codes
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var profile CommunityProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &profile, nil
}
