package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/swfz/gh-reporank/internal/models"
)

const repositoryBody = `{"data":{"repository":{
	"nameWithOwner":"acme/widget",
	"description":"A widget",
	"url":"https://github.com/acme/widget",
	"stargazerCount":120,
	"forkCount":7,
	"isArchived":false,
	"isFork":false,
	"createdAt":"2020-06-01T00:00:00Z",
	"pushedAt":"2024-05-30T00:00:00Z",
	"diskUsage":10,
	"owner":{"login":"acme","__typename":"Organization"},
	"primaryLanguage":{"name":"Go"},
	"licenseInfo":{"spdxId":"MIT"},
	"watchers":{"totalCount":9},
	"openIssues":{"totalCount":3},
	"closedIssues":{"totalCount":9},
	"openPullRequests":{"totalCount":2},
	"mergedPullRequests":{"totalCount":40},
	"releases":{"totalCount":5},
	"mentionableUsers":{"totalCount":11}
}}}`

const notFoundBody = `{"data":{"repository":null},"errors":[{"type":"NOT_FOUND","path":["repository"],` +
	`"locations":[{"line":1,"column":2}],"message":"Could not resolve to a Repository with the name 'acme/missing'."}]}`

// fakeGitHub serves canned GraphQL and community profile responses
type fakeGitHub struct {
	graphql      []response // Served in order; the last one repeats
	profile      response
	delay        time.Duration // Applied to GraphQL responses
	graphqlCalls atomic.Int32
	profileCalls atomic.Int32
}

type response struct {
	status int
	body   string
}

func (f *fakeGitHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/graphql":
		n := int(f.graphqlCalls.Add(1)) - 1
		if f.delay > 0 {
			select {
			case <-time.After(f.delay):
			case <-r.Context().Done():
				return
			}
		}
		if n >= len(f.graphql) {
			n = len(f.graphql) - 1
		}
		w.WriteHeader(f.graphql[n].status)
		_, _ = w.Write([]byte(f.graphql[n].body))
	case strings.HasSuffix(r.URL.Path, "/community/profile"):
		f.profileCalls.Add(1)
		w.WriteHeader(f.profile.status)
		_, _ = w.Write([]byte(f.profile.body))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newTestClient(t *testing.T, fake *fakeGitHub, options Options) *Client {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	c := newClient(srv.Client(), srv.URL+"/graphql", srv.URL, options, nil)
	c.newBackOff = func() backoff.BackOff { return &backoff.ZeroBackOff{} }
	c.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	return c
}

func TestFetchRepoInfo_MapsRepository(t *testing.T) {
	fake := &fakeGitHub{
		graphql: []response{{http.StatusOK, repositoryBody}},
		profile: response{http.StatusOK, `{"health_percentage":85,"files":{"readme":{}}}`},
	}
	c := newTestClient(t, fake, DefaultOptions())

	info, err := c.FetchRepoInfo(context.Background(), "acme", "widget")
	require.NoError(t, err)

	assert.Equal(t, "acme", info.Owner)
	assert.Equal(t, models.OwnerTypeOrganization, info.Type)
	assert.Equal(t, "Go", info.PrimaryLanguage)
	assert.Equal(t, "acme/widget", info.FullName)
	assert.Equal(t, []string{GroupPopularity, GroupActivity, GroupCommunity}, models.GroupNames(info.MetricGroups))

	popularity := info.MetricGroups[0]
	assert.Equal(t, models.Metric{Name: "Stars", Value: "120"}, popularity.Metrics[0])

	community := info.MetricGroups[2]
	assert.Contains(t, community.Metrics, models.Metric{Name: "Issue close rate", Value: "75%"})
	assert.Contains(t, community.Metrics, models.Metric{Name: "License", Value: "MIT"})
	assert.Contains(t, community.Metrics, models.Metric{Name: "Health", Value: "85%", Hint: "community profile"})
}

func TestFetchRepoInfo_MissingProfileIsNotFatal(t *testing.T) {
	fake := &fakeGitHub{
		graphql: []response{{http.StatusOK, repositoryBody}},
		profile: response{http.StatusNotFound, `{"message":"Not Found"}`},
	}
	c := newTestClient(t, fake, DefaultOptions())

	info, err := c.FetchRepoInfo(context.Background(), "acme", "widget")
	require.NoError(t, err)

	for _, m := range info.MetricGroups[2].Metrics {
		assert.NotEqual(t, "Health", m.Name)
	}
}

func TestFetchRepoInfo_NotFoundIsNotRetried(t *testing.T) {
	fake := &fakeGitHub{graphql: []response{{http.StatusOK, notFoundBody}}}
	c := newTestClient(t, fake, Options{Retries: 3})

	_, err := c.FetchRepoInfo(context.Background(), "acme", "missing")
	require.Error(t, err)

	var lookupErr *LookupError
	require.True(t, errors.As(err, &lookupErr))
	assert.Equal(t, KindNotFound, lookupErr.Kind)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "acme/missing: repository not found", err.Error())
	assert.Equal(t, int32(1), fake.graphqlCalls.Load())
}

func TestFetchRepoInfo_RetriesTransientFailure(t *testing.T) {
	fake := &fakeGitHub{
		graphql: []response{
			{http.StatusServiceUnavailable, "unavailable"},
			{http.StatusOK, repositoryBody},
		},
		profile: response{http.StatusOK, `{"health_percentage":50}`},
	}
	c := newTestClient(t, fake, Options{Retries: 2})

	info, err := c.FetchRepoInfo(context.Background(), "acme", "widget")
	require.NoError(t, err)
	assert.Equal(t, "acme", info.Owner)
	assert.Equal(t, int32(2), fake.graphqlCalls.Load())
}

func TestFetchRepoInfo_GivesUpAfterRetries(t *testing.T) {
	fake := &fakeGitHub{graphql: []response{{http.StatusBadGateway, "bad gateway"}}}
	c := newTestClient(t, fake, Options{Retries: 1})

	_, err := c.FetchRepoInfo(context.Background(), "acme", "widget")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransient)
	assert.Equal(t, int32(2), fake.graphqlCalls.Load())
}

func TestFetchRepoInfo_MalformedResponse(t *testing.T) {
	fake := &fakeGitHub{graphql: []response{{http.StatusOK, "<html>oops</html>"}}}
	c := newTestClient(t, fake, Options{Retries: 2})

	_, err := c.FetchRepoInfo(context.Background(), "acme", "widget")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformed)
	assert.Equal(t, int32(1), fake.graphqlCalls.Load())
}

func TestFetchRepoInfo_IncompleteIdentity(t *testing.T) {
	fake := &fakeGitHub{graphql: []response{{http.StatusOK, repositoryBody}}}
	c := newTestClient(t, fake, DefaultOptions())

	_, err := c.FetchRepoInfo(context.Background(), "acme", "")
	require.Error(t, err)
	assert.Equal(t, int32(0), fake.graphqlCalls.Load())
}

func TestFetchRepoInfo_TransientProfileFailureFailsLookup(t *testing.T) {
	fake := &fakeGitHub{
		graphql: []response{{http.StatusOK, repositoryBody}},
		profile: response{http.StatusInternalServerError, "boom"},
	}
	c := newTestClient(t, fake, Options{Retries: 0})

	_, err := c.FetchRepoInfo(context.Background(), "acme", "widget")
	assert.ErrorIs(t, err, ErrTransient)
}

func TestFetchRepoInfo_TimeoutIsTransient(t *testing.T) {
	tests := []struct {
		name    string
		retries int
		calls   int32
	}{
		{"no retries", 0, 1},
		{"retried after timeout", 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeGitHub{
				graphql: []response{{http.StatusOK, repositoryBody}},
				delay:   2 * time.Second,
			}
			c := newTestClient(t, fake, Options{Timeout: 50 * time.Millisecond, Retries: tt.retries})

			_, err := c.FetchRepoInfo(context.Background(), "acme", "widget")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrTransient)
			assert.Equal(t, "acme/widget: request timed out", err.Error())
			assert.Equal(t, tt.calls, fake.graphqlCalls.Load())
		})
	}
}

func TestFetchRepoInfo_ProfileWaitsForRateLimiter(t *testing.T) {
	fake := &fakeGitHub{
		graphql: []response{{http.StatusOK, repositoryBody}},
		profile: response{http.StatusOK, `{"health_percentage":50}`},
	}
	c := newTestClient(t, fake, Options{Timeout: time.Second, Retries: 0})
	// One token: the GraphQL query takes it, the profile request cannot get another in time
	c.rateLimiter = rate.NewLimiter(rate.Every(time.Hour), 1)

	_, err := c.FetchRepoInfo(context.Background(), "acme", "widget")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransient)
	assert.Equal(t, int32(1), fake.graphqlCalls.Load())
	assert.Equal(t, int32(0), fake.profileCalls.Load())
}
