package app

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/swfz/gh-reporank/internal/api"
	"github.com/swfz/gh-reporank/internal/formatter"
	"github.com/swfz/gh-reporank/internal/models"
	"github.com/swfz/gh-reporank/internal/parser"
)

// Config holds the application configuration
type Config struct {
	Identity    models.Identity // Repository to look up; empty means the current repository
	Interactive bool            // Enable the interactive dashboard
	Format      string          // Output format for non-interactive mode
	Timeout     time.Duration   // Per-attempt lookup timeout
	Retries     int             // Retries for transient lookup failures
	Verbose     bool            // Enable verbose output
}

// LookupOptions returns the lookup collaborator options
func (c *Config) LookupOptions() api.Options {
	return api.Options{Timeout: c.Timeout, Retries: c.Retries}
}

// ParseConfig parses command-line arguments and validates configuration
func ParseConfig(args []string, output io.Writer) (*Config, error) {
	defaults := api.DefaultOptions()
	config := &Config{}

	fs := pflag.NewFlagSet("gh-reporank", pflag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintln(output, "Usage: gh reporank [flags] [owner/repo]")
		fmt.Fprintln(output)
		fmt.Fprint(output, fs.FlagUsages())
	}

	fs.BoolVarP(&config.Interactive, "interactive", "i", false, "Open the interactive dashboard")
	fs.StringVarP(&config.Format, "format", "f", formatter.FormatTable,
		fmt.Sprintf("Output format (%s)", strings.Join(formatter.Formats, ", ")))
	fs.DurationVar(&config.Timeout, "timeout", defaults.Timeout, "Timeout for each lookup attempt (0 = none)")
	fs.IntVar(&config.Retries, "retries", defaults.Retries, "Retries for transient lookup failures")
	fs.BoolVarP(&config.Verbose, "verbose", "v", false, "Enable verbose output")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// At most one repository argument
	if fs.NArg() > 1 {
		return nil, errors.New("expected at most one repository argument")
	}
	if fs.NArg() == 1 {
		id, err := parser.ParseIdentity(fs.Arg(0))
		if err != nil {
			return nil, err
		}
		config.Identity = id
	}

	if !formatter.ValidFormat(config.Format) {
		return nil, fmt.Errorf("--format must be one of %s", strings.Join(formatter.Formats, ", "))
	}
	if config.Interactive && fs.Changed("format") {
		return nil, errors.New("cannot specify both --interactive and --format")
	}
	if config.Timeout < 0 {
		return nil, errors.New("--timeout must be >= 0")
	}
	if config.Retries < 0 {
		return nil, errors.New("--retries must be >= 0")
	}

	return config, nil
}
