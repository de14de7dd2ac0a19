package api

import "time"

// GraphQL query structures for fetching repository metrics

// RepositoryQuery represents the GraphQL query for a single repository
type RepositoryQuery struct {
	Repository *RepositoryNode `graphql:"repository(owner: $owner, name: $name)"`
}

// RepositoryNode represents a repository with the counts used for metrics
type RepositoryNode struct {
	NameWithOwner  string
	Description    string
	URL            string
	StargazerCount int
	ForkCount      int
	IsArchived     bool
	IsFork         bool
	CreatedAt      time.Time
	PushedAt       time.Time
	DiskUsage      int // Kilobytes
	Owner          struct {
		Login    string
		Typename string `graphql:"__typename"`
	}
	PrimaryLanguage *struct {
		Name string
	}
	LicenseInfo *struct {
		SpdxID string `graphql:"spdxId"`
	}
	Watchers struct {
		TotalCount int
	}
	OpenIssues struct {
		TotalCount int
	} `graphql:"openIssues: issues(states: OPEN)"`
	ClosedIssues struct {
		TotalCount int
	} `graphql:"closedIssues: issues(states: CLOSED)"`
	OpenPullRequests struct {
		TotalCount int
	} `graphql:"openPullRequests: pullRequests(states: OPEN)"`
	MergedPullRequests struct {
		TotalCount int
	} `graphql:"mergedPullRequests: pullRequests(states: MERGED)"`
	Releases struct {
		TotalCount int
	}
	MentionableUsers struct {
		TotalCount int
	}
}
