package ui

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderStatusLine renders the outcome of the latest add and match requests.
// Finished results fade after StatusMessageTTL.
func (m Model) renderStatusLine() string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	bg := NewBgStyle(m.theme.Background)
	now := time.Now()
	width := max(m.width/2-4, 20)

	var parts []string

	sub := m.snapshot.Submission
	switch {
	case sub.Loading:
		parts = append(parts, bg.Render(m.spinner.View()+" adding "+truncateMiddle(sub.URL, width), styles.WarningText))
	case sub.Done && now.Sub(sub.Finished) < StatusMessageTTL:
		if sub.Err != nil {
			parts = append(parts, bg.Render("✗ add failed: "+truncate(sub.Err.Error(), width), styles.DangerText))
		} else {
			parts = append(parts, bg.Render("✓ added "+truncateMiddle(sub.URL, width), styles.SuccessText))
		}
	}

	match := m.snapshot.Match
	switch {
	case match.Loading:
		parts = append(parts, bg.Render(m.spinner.View()+" matching "+truncateMiddle(match.File, width), styles.WarningText))
	case !match.Finished.IsZero() && now.Sub(match.Finished) < StatusMessageTTL:
		if match.HasSong {
			parts = append(parts, bg.Render("♪ "+truncate(match.Song.Title, width), styles.SuccessText))
		} else if match.Err != nil {
			parts = append(parts, bg.Render("✗ no match: "+truncate(match.Err.Error(), width), styles.DangerText))
		}
	}

	if len(parts) == 0 {
		for _, binding := range m.keys.ShortHelp() {
			h := binding.Help()
			parts = append(parts, bg.Render(h.Key, styles.FaintText)+bg.Space()+bg.Render(h.Desc, styles.FaintText))
		}
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Background)).
		Width(m.width).
		MaxWidth(m.width).
		Render(bg.Join(parts, "   "))
}
