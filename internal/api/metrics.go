package api

import (
	"fmt"
	"strconv"
	"time"

	"github.com/swfz/gh-reporank/internal/models"
)

// Metric group names, in display order
const (
	GroupPopularity = "Popularity"
	GroupActivity   = "Activity"
	GroupCommunity  = "Community"
)

// buildRepoInfo converts the GraphQL repository node and the optional
// community profile into a RepoInfo
func buildRepoInfo(repo *RepositoryNode, profile *CommunityProfile, now time.Time) *models.RepoInfo {
	info := &models.RepoInfo{
		Owner:       repo.Owner.Login,
		Type:        repo.Owner.Typename,
		FullName:    repo.NameWithOwner,
		Description: repo.Description,
		URL:         repo.URL,
	}
	if repo.PrimaryLanguage != nil {
		info.PrimaryLanguage = repo.PrimaryLanguage.Name
	}

	info.MetricGroups = []models.MetricGroup{
		popularityGroup(repo),
		activityGroup(repo, now),
		communityGroup(repo, profile),
	}

	return info
}

func popularityGroup(repo *RepositoryNode) models.MetricGroup {
	return models.MetricGroup{
		Name: GroupPopularity,
		Metrics: []models.Metric{
			{Name: "Stars", Value: strconv.Itoa(repo.StargazerCount)},
			{Name: "Forks", Value: strconv.Itoa(repo.ForkCount)},
			{Name: "Watchers", Value: strconv.Itoa(repo.Watchers.TotalCount)},
		},
	}
}

func activityGroup(repo *RepositoryNode, now time.Time) models.MetricGroup {
	metrics := []models.Metric{
		{Name: "Last push", Value: formatAge(repo.PushedAt, now), Hint: formatDate(repo.PushedAt)},
		{Name: "Created", Value: formatAge(repo.CreatedAt, now), Hint: formatDate(repo.CreatedAt)},
		{Name: "Open pull requests", Value: strconv.Itoa(repo.OpenPullRequests.TotalCount)},
		{Name: "Merged pull requests", Value: strconv.Itoa(repo.MergedPullRequests.TotalCount)},
		{Name: "Releases", Value: strconv.Itoa(repo.Releases.TotalCount)},
	}
	if repo.IsArchived {
		metrics = append(metrics, models.Metric{Name: "Archived", Value: "yes", Hint: "read-only"})
	}

	return models.MetricGroup{Name: GroupActivity, Metrics: metrics}
}

func communityGroup(repo *RepositoryNode, profile *CommunityProfile) models.MetricGroup {
	open := repo.OpenIssues.TotalCount
	closed := repo.ClosedIssues.TotalCount

	license := "None"
	if repo.LicenseInfo != nil && repo.LicenseInfo.SpdxID != "" {
		license = repo.LicenseInfo.SpdxID
	}

	metrics := []models.Metric{
		{Name: "Open issues", Value: strconv.Itoa(open)},
		{Name: "Closed issues", Value: strconv.Itoa(closed)},
		{Name: "Issue close rate", Value: formatRatio(closed, open+closed)},
		{Name: "Contributors", Value: strconv.Itoa(repo.MentionableUsers.TotalCount), Hint: "mentionable users"},
		{Name: "License", Value: license},
	}
	if profile != nil {
		metrics = append(metrics, models.Metric{
			Name:  "Health",
			Value: fmt.Sprintf("%d%%", profile.HealthPercentage),
			Hint:  "community profile",
		})
	}

	return models.MetricGroup{Name: GroupCommunity, Metrics: metrics}
}

// formatRatio returns part/total as a percentage, or "-" when total is zero
func formatRatio(part, total int) string {
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%.0f%%", float64(part)*100/float64(total))
}

// formatDate returns the date in YYYY-MM-DD format, or "-" for the zero time
func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

// formatAge returns a coarse human-readable duration between t and now
func formatAge(t time.Time, now time.Time) string {
	if t.IsZero() {
		return "-"
	}

	d := now.Sub(t)
	switch {
	case d < time.Hour:
		return "just now"
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 60*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	case d < 2*365*24*time.Hour:
		return fmt.Sprintf("%dmo ago", int(d.Hours()/24/30))
	default:
		return fmt.Sprintf("%dy ago", int(d.Hours()/24/365))
	}
}
