package interactive

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/swfz/gh-reporank/internal/formatter"
	"github.com/swfz/gh-reporank/internal/models"
)

// Styles
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginTop(1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	valueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252"))

	linkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("37")).
			Underline(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

// dashboardViews renders the loading, error and content views of the dashboard
type dashboardViews struct {
	spinner string // Current spinner frame
	width   int    // Terminal width
}

func (v dashboardViews) Loading(title string) string {
	return fmt.Sprintf("\n  %s Loading %s\n", v.spinner, title)
}

func (v dashboardViews) Error(err error) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(errorStyle.Render("  ✗ Could not load repository") + "\n\n")
	b.WriteString("  " + err.Error() + "\n\n")
	b.WriteString(dimStyle.Render("  Press r to retry or / to look up another repository") + "\n")
	return b.String()
}

func (v dashboardViews) Content(info *models.RepoInfo) string {
	var b strings.Builder

	if info.Description != "" {
		b.WriteString("\n  " + dimStyle.Render(formatter.TruncateWithEllipsis(info.Description, v.contentWidth())) + "\n")
	}

	// About
	b.WriteString(sectionStyle.Render("About") + "\n")
	language := valueStyle.Render(info.LanguageOrNone())
	if url := info.LanguageURL(); url != "" {
		language += "\n" + linkStyle.Render(url)
	}
	about := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Owner", valueStyle.Render(info.Owner)+"\n"+linkStyle.Render(info.OwnerURL())),
		card("Type", valueStyle.Render(info.Type)),
		card("Primary language", language),
	)
	b.WriteString(about + "\n")

	// Metrics, in the order they were returned
	b.WriteString(sectionStyle.Render("Metrics") + "\n")
	for _, group := range info.MetricGroups {
		b.WriteString(metricGroupSection(group) + "\n")
	}

	return b.String()
}

func (v dashboardViews) contentWidth() int {
	if v.width <= 10 {
		return 70
	}
	return v.width - 4
}

func card(label, body string) string {
	return cardStyle.Render(labelStyle.Render(label) + "\n" + body)
}

// metricGroupSection renders one group as a bordered list of metrics
func metricGroupSection(group models.MetricGroup) string {
	nameWidth := 0
	for _, m := range group.Metrics {
		if w := lipgloss.Width(m.Name); w > nameWidth {
			nameWidth = w
		}
	}

	lines := []string{valueStyle.Render(group.Name)}
	for _, m := range group.Metrics {
		line := labelStyle.Render(fmt.Sprintf("%-*s", nameWidth, m.Name)) + "  " + valueStyle.Render(m.Value)
		if m.Hint != "" {
			line += "  " + dimStyle.Render(m.Hint)
		}
		lines = append(lines, line)
	}

	return cardStyle.Render(strings.Join(lines, "\n"))
}
