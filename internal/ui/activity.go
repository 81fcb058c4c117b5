package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/songmatch/internal/logtail"
)

// activityMsg carries the latest tail of the log file.
type activityMsg struct {
	lines []string
	err   error
}

func readActivityCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if strings.TrimSpace(path) == "" {
			return activityMsg{}
		}
		lines, err := logtail.Read(path, ActivityLines)
		return activityMsg{lines: lines, err: err}
	}
}

// resizeActivityViewport fits the viewport inside the activity box.
func (m *Model) resizeActivityViewport() {
	width := max(m.width-4, 1)
	height := max(m.height-6, 1) // header, cmdbar, status line, box borders, footer
	if m.activityViewport.Width == 0 {
		m.activityViewport = viewport.New(width, height)
	}
	m.activityViewport.Width = width
	m.activityViewport.Height = height
	m.activityViewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg))
	if len(m.activityLines) > 0 {
		m.activityViewport.SetContent(m.renderActivityContent())
	}
}

// handleActivity refreshes the viewport, following the tail when the view
// was already scrolled to the bottom.
func (m *Model) handleActivity(msg activityMsg) {
	m.activityErr = msg.err
	if msg.err != nil {
		return
	}
	follow := m.activityViewport.AtBottom() || len(m.activityLines) == 0
	m.activityLines = msg.lines
	if m.activityViewport.Width == 0 {
		m.resizeActivityViewport()
	}
	m.activityViewport.SetContent(m.renderActivityContent())
	if follow {
		m.activityViewport.GotoBottom()
	}
}

// handleActivityKey scrolls the activity log.
func (m Model) handleActivityKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Top):
		m.activityViewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.activityViewport.GotoBottom()
		return m, nil
	}
	var cmd tea.Cmd
	m.activityViewport, cmd = m.activityViewport.Update(msg)
	return m, cmd
}

// renderActivityContent formats log lines colored by level.
func (m Model) renderActivityContent() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.FocusBg)
	width := max(m.activityViewport.Width, 20)

	out := make([]string, 0, len(m.activityLines))
	for _, raw := range m.activityLines {
		entry := logtail.Parse(raw)
		line := truncate(logtail.Format(raw), width)
		out = append(out, bg.Render(line, styles.LevelStyle(entry.Level)))
	}
	return strings.Join(out, "\n")
}

// renderActivity renders the activity view.
func (m Model) renderActivity() string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	bg := NewBgStyle(m.theme.Background)
	contentHeight := max(m.height-4, 3)

	content := m.activityViewport.View()
	if len(m.activityLines) == 0 {
		content = styles.MutedText.Render("No activity yet")
	}
	box := m.renderTitledBox("Activity", content, m.width, contentHeight, true)

	var footer string
	switch {
	case m.activityErr != nil:
		footer = bg.Render("log unavailable: "+truncate(m.activityErr.Error(), max(m.width-20, 20)), styles.DangerText)
	default:
		footer = bg.Render(fmt.Sprintf("%d lines", len(m.activityLines)), styles.FaintText) + bg.Spaces(2) +
			bg.Render(truncateMiddle(m.logFile, max(m.width-20, 20)), styles.FaintText)
	}
	return box + "\n" + bg.FillLine(footer, m.width)
}
