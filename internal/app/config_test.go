package app

import (
	"io"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swfz/gh-reporank/internal/models"
)

func TestParseConfig_Defaults(t *testing.T) {
	config, err := ParseConfig([]string{"acme/widget"}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, models.NewIdentity("acme", "widget"), config.Identity)
	assert.Equal(t, "table", config.Format)
	assert.Equal(t, 30*time.Second, config.Timeout)
	assert.Equal(t, 2, config.Retries)
	assert.False(t, config.Interactive)
}

func TestParseConfig_Flags(t *testing.T) {
	config, err := ParseConfig([]string{"-f", "json", "--timeout", "5s", "--retries", "0", "-v", "https://github.com/acme/widget"}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "json", config.Format)
	assert.Equal(t, 5*time.Second, config.Timeout)
	assert.Equal(t, 0, config.Retries)
	assert.True(t, config.Verbose)
	assert.Equal(t, "widget", config.Identity.Name)
	assert.Equal(t, 5*time.Second, config.LookupOptions().Timeout)
}

func TestParseConfig_NoRepositoryArgument(t *testing.T) {
	config, err := ParseConfig([]string{"-i"}, io.Discard)
	require.NoError(t, err)
	assert.True(t, config.Interactive)
	assert.False(t, config.Identity.Complete())
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := map[string][]string{
		"too many args":          {"acme/widget", "acme/other"},
		"bad repository":         {"acme"},
		"unknown format":         {"-f", "xml", "acme/widget"},
		"interactive and format": {"-i", "-f", "json"},
		"negative timeout":       {"--timeout", "-1s"},
		"negative retries":       {"--retries", "-1"},
		"unknown flag":           {"--org", "acme"},
	}

	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseConfig(args, io.Discard)
			assert.Error(t, err)
		})
	}
}

func TestParseConfig_Help(t *testing.T) {
	_, err := ParseConfig([]string{"--help"}, io.Discard)
	assert.ErrorIs(t, err, pflag.ErrHelp)
}
