// Package tui provides a Bubble Tea viewer for cleaned build orders.
package tui

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fakeyudi/bocleaner/internal/buildorder"
)

// ── Styles ────────────

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 2)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245")).
				Background(lipgloss.Color("235")).
				Padding(0, 1)

	tabSepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238")).
			Background(lipgloss.Color("235"))

	sectionHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	timeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("178"))
	nameStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	supplyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)
)

type tabID int

const (
	tabTimeline tabID = iota
	tabWarnings
	tabCount
)

var tabNames = [tabCount]string{"Timeline", "Warnings"}

// Model is the root Bubble Tea model for the viewer.
type Model struct {
	lines     []buildorder.Line
	warnings  []string
	filename  string
	activeTab tabID
	viewports [tabCount]viewport.Model
	width     int
	height    int
	ready     bool
}

// New creates a viewer for the resolved lines of filename.
func New(lines []buildorder.Line, warnings []string, filename string) Model {
	return Model{
		lines:    lines,
		warnings: warnings,
		filename: filepath.Base(filename),
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab", "l", "right":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab", "h", "left":
			m.activeTab = (m.activeTab - 1 + tabCount) % tabCount
			return m, nil
		case "1", "2":
			m.activeTab = tabID(msg.String()[0] - '1')
			return m, nil
		}
		var cmd tea.Cmd
		m.viewports[m.activeTab], cmd = m.viewports[m.activeTab].Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.initViewports()
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	if !m.ready {
		return "Loading…"
	}

	title := titleStyle.Width(m.width).Render("  bocleaner  " + m.filename)

	var tabParts []string
	for i := tabID(0); i < tabCount; i++ {
		label := fmt.Sprintf(" %d %s ", i+1, tabNames[i])
		if i == tabWarnings && len(m.warnings) > 0 {
			label = fmt.Sprintf(" %d %s (%d) ", i+1, tabNames[i], len(m.warnings))
		}
		if i == m.activeTab {
			tabParts = append(tabParts, activeTabStyle.Render(label))
		} else {
			tabParts = append(tabParts, inactiveTabStyle.Render(label))
		}
		if i < tabCount-1 {
			tabParts = append(tabParts, tabSepStyle.Render("│"))
		}
	}
	tabRow := lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		Width(m.width).
		Render(lipgloss.JoinHorizontal(lipgloss.Top, tabParts...))

	content := m.viewports[m.activeTab].View()

	hint := "  ←/→ tab  ↑/↓ scroll  1-2 jump  q quit"
	pct := fmt.Sprintf("%3.0f%%", m.viewports[m.activeTab].ScrollPercent()*100)
	pad := m.width - lipgloss.Width(hint) - len(pct) - 2
	if pad < 1 {
		pad = 1
	}
	statusBar := statusBarStyle.Width(m.width).Render(
		hint + strings.Repeat(" ", pad) + pct,
	)

	return lipgloss.JoinVertical(lipgloss.Left, title, tabRow, content, statusBar)
}

func (m *Model) initViewports() {
	// title(1) + tabRow(1) + statusBar(1) = 3 fixed rows
	vpHeight := m.height - 3
	if vpHeight < 1 {
		vpHeight = 1
	}
	for i := tabID(0); i < tabCount; i++ {
		vp := viewport.New(m.width, vpHeight)
		vp.SetContent(m.renderTab(i))
		m.viewports[i] = vp
	}
}

func (m *Model) renderTab(t tabID) string {
	switch t {
	case tabTimeline:
		return m.renderTimeline()
	case tabWarnings:
		return m.renderWarnings()
	}
	return ""
}

func heading(s string) string {
	return "\n" + sectionHeader.Render("  "+s) + "\n\n"
}

func (m *Model) renderTimeline() string {
	var sb strings.Builder
	sb.WriteString(heading(fmt.Sprintf("Timeline (%d)", len(m.lines))))
	if len(m.lines) == 0 {
		sb.WriteString(dimStyle.Render("  (empty)") + "\n")
		return sb.String()
	}
	for _, l := range m.lines {
		parts := make([]string, len(l.Tokens))
		for i, tok := range l.Tokens {
			parts[i] = renderToken(tok)
		}
		sb.WriteString("  " + timeStyle.Render(l.At.String()) + "   " + strings.Join(parts, dimStyle.Render(", ")) + "\n")
	}
	return sb.String()
}

// renderToken styles each part of a token. The plain text matches
// buildorder.Token.String.
func renderToken(tok buildorder.Token) string {
	var sb strings.Builder
	sb.WriteString(nameStyle.Render(tok.Name))
	switch {
	case len(tok.Numbers) > 0:
		nums := make([]string, len(tok.Numbers))
		for i, n := range tok.Numbers {
			nums[i] = strconv.Itoa(n)
		}
		sb.WriteString(" " + strings.Join(nums, " "))
	case tok.Count > 1:
		sb.WriteString(" x" + strconv.Itoa(int(tok.Count)))
	}
	if tok.Label != "" {
		sb.WriteString(" " + labelStyle.Render(tok.Label))
	}
	if tok.Cap != nil {
		s := tok.Cap.Shorthand()
		if tok.Supply != nil {
			s = tok.Supply.Shorthand() + " of " + s
		}
		sb.WriteString(" " + supplyStyle.Render(s))
	}
	return sb.String()
}

func (m *Model) renderWarnings() string {
	var sb strings.Builder
	sb.WriteString(heading(fmt.Sprintf("Warnings (%d)", len(m.warnings))))
	if len(m.warnings) == 0 {
		sb.WriteString(dimStyle.Render("  (none)") + "\n")
		return sb.String()
	}
	for _, w := range m.warnings {
		sb.WriteString(warnStyle.Render("  !") + "  " + w + "\n")
	}
	return sb.String()
}

// Run starts the viewer.
func Run(lines []buildorder.Line, warnings []string, filename string) error {
	p := tea.NewProgram(New(lines, warnings, filename), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
