package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/swfz/gh-reporank/internal/models"
)

// Output formats for the content view
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Formats lists the supported output formats
var Formats = []string{FormatTable, FormatJSON, FormatYAML}

// ValidFormat reports whether format is supported
func ValidFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

// Views renders plain-text views for non-interactive output
type Views struct {
	Format string
}

// Loading returns the loading message for title
func (v Views) Loading(title string) string {
	return fmt.Sprintf("Fetching %s\n", title)
}

// Error returns the error message as is
func (v Views) Error(err error) string {
	return fmt.Sprintf("Error: %v\n", err)
}

// Content renders info in the configured format
func (v Views) Content(info *models.RepoInfo) string {
	out, err := v.render(info)
	if err != nil {
		return v.Error(fmt.Errorf("failed to render %s output: %w", v.Format, err))
	}
	return out
}

func (v Views) render(info *models.RepoInfo) (string, error) {
	switch strings.ToLower(v.Format) {
	case FormatJSON:
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil
	case FormatYAML:
		data, err := yaml.Marshal(info)
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		var buf bytes.Buffer
		if err := RenderTable(&buf, info); err != nil {
			return "", err
		}
		return buf.String(), nil
	}
}
