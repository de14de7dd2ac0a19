package models

import (
	"fmt"
	"strings"
)

// Identity identifies a repository by owner and name
type Identity struct {
	Owner string // Owner (user or organization) login
	Name  string // Repository name only
}

// NewIdentity creates an Identity, trimming surrounding whitespace
func NewIdentity(owner, name string) Identity {
	return Identity{
		Owner: strings.TrimSpace(owner),
		Name:  strings.TrimSpace(name),
	}
}

// Complete reports whether both owner and name are present
func (id Identity) Complete() bool {
	return id.Owner != "" && id.Name != ""
}

// String returns the full repository name (owner/repo)
func (id Identity) String() string {
	if !id.Complete() {
		return ""
	}
	return fmt.Sprintf("%s/%s", id.Owner, id.Name)
}

// Owner types reported by GitHub for a repository owner
const (
	OwnerTypeUser         = "User"
	OwnerTypeOrganization = "Organization"
)

// RepoInfo is the result of looking up metrics for one repository
type RepoInfo struct {
	Owner           string        `json:"owner" yaml:"owner"`                       // Owner login
	Type            string        `json:"type" yaml:"type"`                         // User or Organization
	PrimaryLanguage string        `json:"primary_language" yaml:"primary_language"` // Empty when GitHub detected none
	FullName        string        `json:"full_name" yaml:"full_name"`               // owner/repo
	Description     string        `json:"description,omitempty" yaml:"description,omitempty"`
	URL             string        `json:"url" yaml:"url"`
	MetricGroups    []MetricGroup `json:"metric_groups" yaml:"metric_groups"` // Order is significant
}

// OwnerURL returns the GitHub profile URL of the owner
func (r *RepoInfo) OwnerURL() string {
	return "https://github.com/" + r.Owner
}

// LanguageURL returns the GitHub topic URL for the primary language,
// or an empty string when there is none
func (r *RepoInfo) LanguageURL() string {
	if r.PrimaryLanguage == "" {
		return ""
	}
	topic := strings.ReplaceAll(strings.ToLower(r.PrimaryLanguage), " ", "-")
	return "https://github.com/topics/" + topic
}

// LanguageOrNone returns the primary language or "None"
func (r *RepoInfo) LanguageOrNone() string {
	if r.PrimaryLanguage == "" {
		return "None"
	}
	return r.PrimaryLanguage
}
