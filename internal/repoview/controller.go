// Package repoview drives the fetch-and-render lifecycle of the repository
// dashboard. A Controller turns identity changes into fetches and accepts
// only the settlement of the most recently issued fetch.
//
// The controller is not safe for concurrent use. It is meant to be driven
// from a single event loop; Fetch functions run elsewhere and report back
// through Settle.
package repoview

import (
	"context"
	"errors"
	"log/slog"

	"github.com/swfz/gh-reporank/internal/models"
)

var errNoResult = errors.New("lookup returned no result")

// Lookup resolves a repository identity to its metrics
type Lookup interface {
	FetchRepoInfo(ctx context.Context, owner, name string) (*models.RepoInfo, error)
}

// LookupFunc adapts a function to the Lookup interface
type LookupFunc func(ctx context.Context, owner, name string) (*models.RepoInfo, error)

func (f LookupFunc) FetchRepoInfo(ctx context.Context, owner, name string) (*models.RepoInfo, error) {
	return f(ctx, owner, name)
}

// Fetch performs one lookup and returns its outcome. It does not touch
// controller state and may run on any goroutine.
type Fetch func() Settlement

// Settlement is the outcome of a Fetch
type Settlement struct {
	Identity models.Identity
	Seq      uint64 // Sequence number of the fetch that produced it
	Info     *models.RepoInfo
	Err      error
}

// Controller owns the fetch state for one dashboard
type Controller struct {
	lookup Lookup
	logger *slog.Logger

	state  State
	seq    uint64             // Sequence number of the current fetch, 0 when none
	cancel context.CancelFunc // Cancels the current fetch
}

// New creates a controller in the Idle state
func New(lookup Lookup, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Controller{
		lookup: lookup,
		logger: logger,
		state:  State{Phase: Idle},
	}
}

// State returns the current observable state
func (c *Controller) State() State {
	return c.state
}

// OnIdentityChange reacts to a new (owner, name) pair. It returns the
// Fetch to run when a new lookup must be issued, nil otherwise.
func (c *Controller) OnIdentityChange(ctx context.Context, owner, name string) Fetch {
	id := models.NewIdentity(owner, name)

	if !id.Complete() {
		c.abandon()
		c.state = State{Phase: Idle, Identity: id}
		return nil
	}

	// Same identity as the fetch in flight or last settled
	if c.state.Phase != Idle && c.state.Identity == id {
		c.logger.Debug("identity unchanged, skipping fetch", "repo", id.String(), "phase", c.state.Phase)
		return nil
	}

	return c.issue(ctx, id)
}

// Reload issues a new fetch for the current identity, even when it has
// already settled. Returns nil when the identity is incomplete.
func (c *Controller) Reload(ctx context.Context) Fetch {
	if !c.state.Identity.Complete() {
		return nil
	}
	return c.issue(ctx, c.state.Identity)
}

// Settle applies the outcome of a fetch. Outcomes of superseded fetches
// are discarded. Returns true when the state changed.
func (c *Controller) Settle(s Settlement) bool {
	if s.Seq == 0 || s.Seq != c.seq || c.state.Phase != Loading {
		c.logger.Debug("discarding stale settlement", "repo", s.Identity.String(), "seq", s.Seq, "current", c.seq)
		return false
	}

	c.release()

	if s.Err == nil && s.Info == nil {
		s.Err = errNoResult
	}

	if s.Err != nil {
		c.logger.Info("lookup failed", "repo", s.Identity.String(), "error", s.Err)
		c.state = State{Phase: Failed, Identity: s.Identity, Err: s.Err}
		return true
	}

	c.logger.Info("lookup succeeded", "repo", s.Identity.String(), "groups", len(s.Info.MetricGroups))
	c.state = State{Phase: Loaded, Identity: s.Identity, Info: s.Info}
	return true
}

// Close cancels any fetch in flight. The controller must not be used after.
func (c *Controller) Close() {
	c.abandon()
}

// issue moves to Loading and builds the Fetch for id
func (c *Controller) issue(ctx context.Context, id models.Identity) Fetch {
	c.abandon()

	c.seq++
	seq := c.seq
	fetchCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.state = State{Phase: Loading, Identity: id}

	c.logger.Debug("issuing fetch", "repo", id.String(), "seq", seq)

	lookup := c.lookup
	return func() Settlement {
		info, err := lookup.FetchRepoInfo(fetchCtx, id.Owner, id.Name)
		if err == nil && info == nil {
			err = errNoResult
		}
		return Settlement{Identity: id, Seq: seq, Info: info, Err: err}
	}
}

// abandon cancels the current fetch so its settlement is ignored
func (c *Controller) abandon() {
	c.release()
	c.seq++
}

// release frees the context of the current fetch
func (c *Controller) release() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}
