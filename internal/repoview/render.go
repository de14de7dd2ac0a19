package repoview

import (
	"github.com/swfz/gh-reporank/internal/models"
)

// Views renders each phase of the dashboard
type Views interface {
	Loading(title string) string
	Error(err error) string
	Content(info *models.RepoInfo) string
}

// Render picks the view for state. Idle and Loading share the loading
// view; an error always wins over the loading view once settled.
func Render(state State, v Views) string {
	switch state.Phase {
	case Failed:
		return v.Error(state.Err)
	case Loaded:
		return v.Content(state.Info)
	default:
		return v.Loading(state.Title())
	}
}
