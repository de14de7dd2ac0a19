package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/briandowns/spinner"
	"github.com/cli/go-gh/v2/pkg/repository"
	"github.com/cli/go-gh/v2/pkg/term"

	"github.com/swfz/gh-reporank/internal/api"
	"github.com/swfz/gh-reporank/internal/formatter"
	"github.com/swfz/gh-reporank/internal/interactive"
	"github.com/swfz/gh-reporank/internal/logging"
	"github.com/swfz/gh-reporank/internal/models"
	"github.com/swfz/gh-reporank/internal/repoview"
)

// ErrLookupFailed is returned by Run after the error view has been printed
var ErrLookupFailed = errors.New("lookup failed")

// App encapsulates the application logic
type App struct {
	client      *api.Client
	lookup      repoview.Lookup
	config      *Config
	logger      *slog.Logger
	stdout      io.Writer
	stderr      io.Writer
	showSpinner bool
	currentRepo func() (models.Identity, error)
	closeLog    func()
}

// New creates a new application instance
func New(config *Config) (*App, error) {
	logger, closeLog, err := newLogger(config)
	if err != nil {
		return nil, err
	}

	client, err := api.NewClient(config.LookupOptions(), logger)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	return &App{
		client:      client,
		lookup:      client,
		config:      config,
		logger:      logger,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		showSpinner: term.FromEnv().IsTerminalOutput(),
		currentRepo: currentRepository,
		closeLog:    closeLog,
	}, nil
}

// Run executes the main application logic
func (a *App) Run(ctx context.Context) error {
	if a.closeLog != nil {
		defer a.closeLog()
	}

	id, err := a.resolveIdentity()
	if err != nil && !a.config.Interactive {
		return err
	}

	controller := repoview.New(a.lookup, a.logger)

	if a.config.Interactive {
		return interactive.RunTUI(ctx, controller, id, a.rateLimitStatus(ctx))
	}

	if a.config.Verbose {
		if status := a.rateLimitStatus(ctx); status != "" {
			fmt.Fprintln(a.stderr, status)
		}
	}

	return a.runOnce(ctx, controller, id)
}

// runOnce fetches a single repository and prints the resulting view
func (a *App) runOnce(ctx context.Context, controller *repoview.Controller, id models.Identity) error {
	defer controller.Close()

	views := formatter.Views{Format: a.config.Format}

	fetch := controller.OnIdentityChange(ctx, id.Owner, id.Name)
	if fetch == nil {
		return errors.New("a repository is required")
	}

	stop := a.startSpinner(views.Loading(controller.State().Title()))
	controller.Settle(fetch())
	stop()

	state := controller.State()
	out := repoview.Render(state, views)
	if state.Phase == repoview.Failed {
		fmt.Fprint(a.stderr, out)
		return ErrLookupFailed
	}

	fmt.Fprint(a.stdout, out)
	return nil
}

// resolveIdentity returns the configured identity, falling back to the
// repository of the current directory
func (a *App) resolveIdentity() (models.Identity, error) {
	if a.config.Identity.Complete() {
		return a.config.Identity, nil
	}

	id, err := a.currentRepo()
	if err != nil {
		a.logger.Debug("no current repository", "error", err)
		return models.Identity{}, fmt.Errorf("no repository given and none found in the current directory: %w", err)
	}

	a.logger.Debug("using current repository", "repo", id.String())
	return id, nil
}

// startSpinner shows the loading view on stderr until the returned func is called
func (a *App) startSpinner(message string) func() {
	if !a.showSpinner {
		a.logger.Debug(message)
		return func() {}
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(a.stderr))
	s.Suffix = " " + message
	s.Start()
	return s.Stop
}

// rateLimitStatus returns the remaining API quota when verbose, else ""
func (a *App) rateLimitStatus(ctx context.Context) string {
	if !a.config.Verbose || a.client == nil {
		return ""
	}

	info, err := a.client.CheckRateLimit(ctx)
	if err != nil {
		a.logger.Warn("failed to check rate limit", "error", err)
		return ""
	}
	return "Rate limit: " + info.String()
}

func currentRepository() (models.Identity, error) {
	repo, err := repository.Current()
	if err != nil {
		return models.Identity{}, err
	}
	return models.NewIdentity(repo.Owner, repo.Name), nil
}

// newLogger logs to stderr, or to a file in interactive mode so the
// dashboard is not overwritten
func newLogger(config *Config) (*slog.Logger, func(), error) {
	if !config.Interactive {
		return logging.New(os.Stderr, config.Verbose), func() {}, nil
	}
	if !config.Verbose {
		return logging.Discard(), func() {}, nil
	}

	dir, err := os.UserCacheDir()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to locate cache directory: %w", err)
	}
	dir = filepath.Join(dir, "gh-reporank")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(dir, "debug.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return logging.New(f, true), func() { _ = f.Close() }, nil
}
