package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/songmatch/internal/request"
	"github.com/five82/songmatch/internal/songs"
)

// renderHeader renders the status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth
	cat := m.snapshot.Catalogue

	parts := []string{bg.Render("songmatch", styles.Logo)}

	switch {
	case cat.IsOffline():
		parts = append(parts, styles.BadgeStyle(m.theme.Danger).Render(classifyConnectionError(cat.LastError)))
	case cat.HasPage:
		parts = append(parts, styles.BadgeStyle(m.theme.Success).Render("ONLINE"))
	default:
		parts = append(parts, styles.BadgeStyle(m.theme.Warning).Render("CONNECTING"))
	}

	if m.snapshot.Loading() {
		parts = append(parts, bg.Render(m.spinner.View(), styles.AccentText))
	}

	if cat.HasPage {
		listing := cat.Page
		parts = append(parts,
			bg.Render("Page:", styles.MutedText)+bg.Space()+
				bg.Render(fmt.Sprintf("%d/%d", listing.Page, max(listing.PageCount(), 1)), styles.Text),
			bg.Render("Songs:", styles.MutedText)+bg.Space()+
				bg.Render(fmt.Sprintf("%d", listing.Total), styles.Text),
		)
	}

	if !compact && m.serverURL != "" {
		parts = append(parts, bg.Render(truncateMiddle(m.serverURL, 40), styles.FaintText))
	}

	if ts := formatTimestamp(m.lastUpdated, time.Now()); ts != "" {
		parts = append(parts, bg.Render(ts, styles.MutedText))
	}

	if cat.LastError != nil && !cat.IsOffline() {
		maxErr := 60
		if compact {
			maxErr = 30
		}
		parts = append(parts,
			bg.Render("ERROR", styles.DangerText.Bold(true))+bg.Space()+
				bg.Render(truncate(cat.LastError.Error(), maxErr), styles.DangerText))
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		MaxWidth(m.width).
		Render(bg.Join(parts, "  "))
}

// formatTimestamp formats the last update time with a relative indicator.
func formatTimestamp(updated, now time.Time) string {
	if updated.IsZero() {
		return ""
	}
	since := now.Sub(updated)
	ts := updated.Format("15:04:05")
	switch {
	case since < time.Minute:
		ts += " (now)"
	case since < time.Hour:
		ts += fmt.Sprintf(" (%dm ago)", int(since.Minutes()))
	case since < 24*time.Hour:
		ts += fmt.Sprintf(" (%dh ago)", int(since.Hours()))
	}
	return ts
}

// classifyConnectionError returns a short label for a failed request.
func classifyConnectionError(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *songs.APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("HTTP %d", apiErr.Status)
	}
	msg := err.Error()
	switch request.KindOf(err) {
	case request.KindParseFailure:
		return "BAD RESPONSE"
	case request.KindTransportFailure:
		switch {
		case strings.Contains(msg, "connection refused"):
			return "OFFLINE"
		case strings.Contains(msg, "no such host"):
			return "HOST NOT FOUND"
		case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
			return "TIMEOUT"
		}
		return "UNREACHABLE"
	}
	return "ERROR"
}

// renderCommandBar renders the command hints bar.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.currentView {
	case ViewActivity:
		commands = []cmd{
			{"j/k", "Scroll"},
			{"g/G", "Top/Bottom"},
			{"L", "Songs"},
			{"a", "Add"},
			{"m", "Match"},
			{"?", "More"},
		}
	default:
		commands = []cmd{
			{"j/k", "Navigate"},
			{"h/l", "Page"},
			{"a", "Add"},
			{"m", "Match"},
			{"r", "Reload"},
			{"L", "Activity"},
			{"?", "More"},
		}
	}

	colon := bg.Sep(":")
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).MaxWidth(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}

// truncate truncates a string to max runes with an ellipsis.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

// truncateMiddle truncates a string in the middle, keeping more of the end.
func truncateMiddle(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 5 {
		return string(r[:max])
	}
	endLen := (max - 3) * 2 / 3
	startLen := max - 3 - endLen
	return string(r[:startLen]) + "..." + string(r[len(r)-endLen:])
}
