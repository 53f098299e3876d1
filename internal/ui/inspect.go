// Package ui renders finalized class hierarchies in an interactive
// terminal inspector.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// MemberChain is one member's provider chain, rendered front to back.
type MemberChain struct {
	Member    string
	Providers []string
}

// ClassView is the display form of one finalized class.
type ClassView struct {
	Name   string
	Order  []string
	Chains []MemberChain
}

type inspectModel struct {
	classes  []ClassView
	selected int
	viewport viewport.Model
	width    int
	height   int
	ready    bool
}

// NewInspectModel returns a Bubble Tea model that browses finalized
// classes: resolution order and dispatch table per class.
func NewInspectModel(classes []ClassView) tea.Model {
	return &inspectModel{classes: classes, width: 80, height: 24}
}

func (m *inspectModel) Init() tea.Cmd {
	return nil
}

func (m *inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.selected > 0 {
				m.selected--
				m.refreshDetail()
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.classes)-1 {
				m.selected++
				m.refreshDetail()
			}
			return m, nil
		}
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.height = msg.Height
		}
		m.layout()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *inspectModel) layout() {
	detailWidth := m.width - m.listWidth() - 3
	if detailWidth < 20 {
		detailWidth = 20
	}
	detailHeight := m.height - 4
	if detailHeight < 5 {
		detailHeight = 5
	}
	if !m.ready {
		m.viewport = viewport.New(detailWidth, detailHeight)
		m.ready = true
	} else {
		m.viewport.Width = detailWidth
		m.viewport.Height = detailHeight
	}
	m.refreshDetail()
}

func (m *inspectModel) listWidth() int {
	w := 16
	for _, c := range m.classes {
		if cw := runewidth.StringWidth(c.Name) + 2; cw > w {
			w = cw
		}
	}
	if max := m.width / 3; w > max && max > 8 {
		w = max
	}
	return w
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
)

func (m *inspectModel) refreshDetail() {
	if !m.ready || len(m.classes) == 0 {
		return
	}
	c := m.classes[m.selected]

	var b strings.Builder
	b.WriteString(headerStyle.Render("resolution order"))
	b.WriteString("\n")
	for i, name := range c.Order {
		fmt.Fprintf(&b, "  %2d. %s\n", i, name)
	}
	b.WriteString("\n")
	b.WriteString(headerStyle.Render("dispatch table"))
	b.WriteString("\n")
	if len(c.Chains) == 0 {
		b.WriteString(dimStyle.Render("  (no members)"))
		b.WriteString("\n")
	}
	for _, ch := range c.Chains {
		fmt.Fprintf(&b, "  %s: %s\n", ch.Member, strings.Join(ch.Providers, " -> "))
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoTop()
}

func (m *inspectModel) View() string {
	if len(m.classes) == 0 {
		return dimStyle.Render("no finalized classes") + "\n"
	}
	if !m.ready {
		m.layout()
	}

	header := titleStyle.Render("weave inspect") +
		dimStyle.Render("  ↑/↓ select class, q quit")

	listWidth := m.listWidth()
	rows := make([]string, 0, len(m.classes))
	for i, c := range m.classes {
		label := runewidth.FillRight(runewidth.Truncate(c.Name, listWidth-2, "…"), listWidth-2)
		if i == m.selected {
			rows = append(rows, selectedStyle.Render("> "+label))
		} else {
			rows = append(rows, "  "+label)
		}
	}
	list := strings.Join(rows, "\n")

	body := lipgloss.JoinHorizontal(lipgloss.Top, list, " │ ", m.viewport.View())
	return header + "\n\n" + body + "\n"
}
