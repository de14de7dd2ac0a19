package repoview

import (
	"github.com/swfz/gh-reporank/internal/models"
)

// Phase is the active branch of a State
type Phase int

const (
	Idle    Phase = iota // Identity not yet complete
	Loading              // Fetch in flight for Identity
	Loaded               // Fetch succeeded, Info is set
	Failed               // Fetch failed, Err is set
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is the observable fetch state. Only the payload belonging to
// Phase is meaningful: Info for Loaded, Err for Failed.
type State struct {
	Phase    Phase
	Identity models.Identity
	Info     *models.RepoInfo
	Err      error
}

// placeholderTitle is shown while the identity is unknown
const placeholderTitle = "Loading..."

// Title returns "owner/repo" when the identity is known, else a placeholder
func (s State) Title() string {
	if s.Identity.Complete() {
		return s.Identity.String()
	}
	return placeholderTitle
}

// Settled reports whether the state holds a fetch outcome
func (s State) Settled() bool {
	return s.Phase == Loaded || s.Phase == Failed
}
