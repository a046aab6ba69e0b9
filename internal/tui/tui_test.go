package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/fakeyudi/bocleaner/internal/buildorder"
)

func init() {
	// Plain output keeps assertions independent of the terminal.
	lipgloss.SetColorProfile(termenv.Ascii)
}

func sampleLines() []buildorder.Line {
	supplyCap, supply := buildorder.Supply(14), buildorder.Supply(15)
	return []buildorder.Line{
		{At: 0, Tokens: []buildorder.Token{{Name: "Overlord", Count: 2, Supply: &supply, Cap: &supplyCap}}},
		{At: 60, Tokens: []buildorder.Token{
			{Name: "Barracks", Count: 2, Numbers: []int{2, 3}, Label: "Tech Lab"},
			{Name: "Barracks", Count: 1, Numbers: []int{4}},
		}},
	}
}

func TestRenderTokenMatchesPlainText(t *testing.T) {
	for _, l := range sampleLines() {
		for _, tok := range l.Tokens {
			if got, want := renderToken(tok), tok.String(); got != want {
				t.Errorf("renderToken = %q, want %q", got, want)
			}
		}
	}
}

func TestViewShowsTimelineAndWarnings(t *testing.T) {
	var m tea.Model = New(sampleLines(), []string{"impossible upgrade: 15 1:20 Orbital Command"}, "/tmp/_zvt.txt")
	if got := m.View(); got != "Loading…" {
		t.Fatalf("before sizing: got %q", got)
	}

	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 20})
	view := m.View()
	for _, want := range []string{"_zvt.txt", "Timeline (2)", "Overlord x2 15 of 14", "Barracks 2 3 Tech Lab, Barracks 4", "Warnings (1)"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if !strings.Contains(m.View(), "Orbital Command") {
		t.Errorf("warnings tab missing warning:\n%s", m.View())
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should quit")
	}
}

func TestEmptyTimeline(t *testing.T) {
	var m tea.Model = New(nil, nil, "empty.txt")
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	if !strings.Contains(m.View(), "(empty)") {
		t.Errorf("expected empty marker:\n%s", m.View())
	}
}
