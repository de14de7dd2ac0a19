package interactive

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/swfz/gh-reporank/internal/models"
	"github.com/swfz/gh-reporank/internal/parser"
	"github.com/swfz/gh-reporank/internal/repoview"
)

// model represents the TUI state
type model struct {
	controller *repoview.Controller // Owns the fetch state
	ctx        context.Context      // Context for lookups
	input      textinput.Model      // Repository prompt
	spinner    spinner.Model        // Loading indicator
	editing    bool                 // Whether the prompt has focus
	status     string               // Footer status line (e.g. rate limit)
	width      int                  // Terminal width
	height     int                  // Terminal height
	done       bool                 // Whether to quit
	initial    models.Identity      // Identity to load on start
}

// settledMsg carries the outcome of a fetch back to the event loop
type settledMsg repoview.Settlement

func newModel(ctx context.Context, controller *repoview.Controller, initial models.Identity, status string) model {
	input := textinput.New()
	input.Prompt = "Repository: "
	input.Placeholder = "owner/repo"
	input.CharLimit = 200
	if initial.Complete() {
		input.SetValue(initial.String())
	} else {
		input.Focus()
	}

	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("170"))),
	)

	return model{
		controller: controller,
		ctx:        ctx,
		input:      input,
		spinner:    s,
		editing:    !initial.Complete(),
		status:     status,
		width:      80,
		height:     24,
		initial:    initial,
	}
}

// Init starts the spinner and the lookup for the initial identity
func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if m.editing {
		cmds = append(cmds, textinput.Blink)
	}
	cmds = append(cmds, fetchCmd(m.controller.OnIdentityChange(m.ctx, m.initial.Owner, m.initial.Name)))
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case settledMsg:
		m.controller.Settle(repoview.Settlement(msg))
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.editing {
			return m.updatePrompt(msg)
		}

		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.done = true
			return m, tea.Quit

		case "/", "e":
			m.editing = true
			m.input.SetValue("")
			return m, m.input.Focus()

		case "r":
			return m, fetchCmd(m.controller.Reload(m.ctx))
		}
	}

	return m, nil
}

// updatePrompt handles keys while the repository prompt has focus
func (m model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.done = true
		return m, tea.Quit

	case "esc":
		m.editing = false
		m.input.Blur()
		return m, nil

	case "enter":
		id := parser.PartialIdentity(m.input.Value())
		if id.Complete() {
			m.editing = false
			m.input.Blur()
		}
		return m, fetchCmd(m.controller.OnIdentityChange(m.ctx, id.Owner, id.Name))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the UI
func (m model) View() string {
	if m.done {
		return "Exiting...\n"
	}

	state := m.controller.State()

	var b strings.Builder

	// Header
	b.WriteString(headerStyle.Render(" "+state.Title()+" ") + "\n")

	if m.editing {
		b.WriteString("\n" + m.input.View() + "\n")
	}

	views := dashboardViews{spinner: m.spinner.View(), width: m.width}
	b.WriteString(repoview.Render(state, views))

	// Footer
	help := "  / to change repository, r to reload, q to quit"
	if m.editing {
		help = "  Enter to load, Esc to cancel"
	}
	b.WriteString("\n" + dimStyle.Render(help) + "\n")
	if m.status != "" {
		b.WriteString(dimStyle.Render("  "+m.status) + "\n")
	}

	return b.String()
}

// fetchCmd runs fetch off the event loop and reports back with a settledMsg
func fetchCmd(fetch repoview.Fetch) tea.Cmd {
	if fetch == nil {
		return nil
	}
	return func() tea.Msg {
		return settledMsg(fetch())
	}
}

// RunTUI starts the interactive dashboard
func RunTUI(ctx context.Context, controller *repoview.Controller, initial models.Identity, status string) error {
	defer controller.Close()

	m := newModel(ctx, controller, initial, status)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		// Interrupted through the context
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
