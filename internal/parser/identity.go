package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/swfz/gh-reporank/internal/models"
)

var (
	// URL format: "https://github.com/owner/repo" with optional ".git" or trailing path
	urlRegex = regexp.MustCompile(`^(?:https?://)?(?:www\.)?github\.com/([^/\s]+)/([^/\s#?]+)`)

	// SSH remote format: "git@github.com:owner/repo.git"
	sshRegex = regexp.MustCompile(`^git@github\.com:([^/\s]+)/([^/\s]+)$`)

	// Short format: "owner/repo"
	shortRegex = regexp.MustCompile(`^([^/\s]+)/([^/\s]+)$`)
)

// ParseIdentity extracts owner and repository name from user input.
// Accepts "owner/repo", GitHub URLs and SSH remotes.
func ParseIdentity(input string) (models.Identity, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return models.Identity{}, fmt.Errorf("empty repository")
	}

	for _, regex := range []*regexp.Regexp{urlRegex, sshRegex, shortRegex} {
		matches := regex.FindStringSubmatch(input)
		if len(matches) >= 3 {
			name := strings.TrimSuffix(matches[2], ".git")
			id := models.NewIdentity(matches[1], name)
			if id.Complete() {
				return id, nil
			}
		}
	}

	return models.Identity{}, fmt.Errorf("invalid repository format: %s (expected owner/repo)", input)
}

// PartialIdentity splits input on the first slash without validating it.
// Missing parts are left empty, so "acme/" yields an incomplete identity.
func PartialIdentity(input string) models.Identity {
	if id, err := ParseIdentity(input); err == nil {
		return id
	}

	owner, name, _ := strings.Cut(strings.TrimSpace(input), "/")
	return models.NewIdentity(owner, name)
}
