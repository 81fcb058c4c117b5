package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/songmatch/internal/songs"
)

// handleSongsKey processes keyboard input for the songs view.
func (m Model) handleSongsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.snapshot.Catalogue.Page.Songs)

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.selectedRow < count-1 {
			m.selectedRow++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case key.Matches(msg, m.keys.Top):
		m.selectedRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selectedRow = max(count-1, 0)
	case key.Matches(msg, m.keys.NextPage):
		if m.catalogue != nil {
			m.catalogue.Next()
		}
		return m, m.snapshotCmd()
	case key.Matches(msg, m.keys.PrevPage):
		if m.catalogue != nil {
			m.catalogue.Prev()
		}
		return m, m.snapshotCmd()
	case key.Matches(msg, m.keys.Reload):
		if m.catalogue != nil {
			m.catalogue.Reload()
		}
		return m, m.snapshotCmd()
	}
	return m, nil
}

func (m Model) snapshotCmd() tea.Cmd {
	if m.store == nil {
		return nil
	}
	return fetchSnapshotCmd(m.store)
}

// clampSelection keeps the selected row within the current page.
func (m *Model) clampSelection() {
	count := len(m.snapshot.Catalogue.Page.Songs)
	if count == 0 {
		m.selectedRow = 0
		return
	}
	if m.selectedRow >= count {
		m.selectedRow = count - 1
	}
	if m.selectedRow < 0 {
		m.selectedRow = 0
	}
}

// selectedSong returns the highlighted song, if any.
func (m Model) selectedSong() (songs.Song, bool) {
	list := m.snapshot.Catalogue.Page.Songs
	if m.selectedRow < 0 || m.selectedRow >= len(list) {
		return songs.Song{}, false
	}
	return list[m.selectedRow], true
}

// renderSongs renders the song table, the detail pane, and the pager.
func (m Model) renderSongs() string {
	styles := m.theme.Styles()
	contentHeight := max(m.height-4, 3) // header, cmdbar, pager, status line

	cat := m.snapshot.Catalogue
	if !cat.HasPage {
		msg := "Loading catalogue..."
		if cat.LastError != nil {
			msg = "Catalogue unavailable: " + truncate(cat.LastError.Error(), max(m.width-30, 20))
		}
		placeholder := lipgloss.Place(m.width, contentHeight, lipgloss.Center, lipgloss.Center, styles.MutedText.Render(msg))
		return placeholder + "\n" + m.renderPager()
	}

	tableWidth := m.width
	if m.width >= LayoutCompactWidth {
		tableWidth = m.width * 55 / 100
		if m.width >= LayoutWideWidth {
			tableWidth = m.width * 45 / 100
		}
	}

	tableTitle := m.songsTitle()
	tableContent := m.renderSongTable(tableWidth-2, m.theme.FocusBg)
	tablePane := m.renderTitledBox(tableTitle, tableContent, tableWidth, contentHeight, true)

	if tableWidth == m.width {
		return tablePane + "\n" + m.renderPager()
	}

	detailWidth := m.width - tableWidth
	detailContent := m.renderSongDetail(detailWidth-4, m.theme.SurfaceAlt)
	detailPane := m.renderTitledBox("Details", detailContent, detailWidth, contentHeight, false)

	return lipgloss.JoinHorizontal(lipgloss.Top, tablePane, detailPane) + "\n" + m.renderPager()
}

// songsTitle returns the table title, e.g. "Songs 15-28 of 40".
func (m Model) songsTitle() string {
	listing := m.snapshot.Catalogue.Page
	if len(listing.Songs) == 0 {
		return fmt.Sprintf("Songs (%d)", listing.Total)
	}
	first := listing.FirstNumber()
	last := first + len(listing.Songs) - 1
	return fmt.Sprintf("Songs %d-%d of %d", first, last, listing.Total)
}

// renderSongTable renders the songs as styled rows.
func (m Model) renderSongTable(width int, bgColor string) string {
	listing := m.snapshot.Catalogue.Page
	if len(listing.Songs) == 0 {
		bg := NewBgStyle(bgColor)
		return bg.Render("No songs yet. Press a to add one.", m.theme.Styles().MutedText)
	}

	first := listing.FirstNumber()
	lines := make([]string, 0, len(listing.Songs))
	for i, song := range listing.Songs {
		rowBg := bgColor
		if i == m.selectedRow {
			rowBg = m.theme.SelectionBg
		}
		content := m.formatSongRow(first+i, song, width, rowBg, i == m.selectedRow)
		lines = append(lines, lipgloss.NewStyle().
			Background(lipgloss.Color(rowBg)).
			Width(width).
			Render(content))
	}
	return strings.Join(lines, "\n")
}

// formatSongRow formats "  15  Title" with the number right-aligned.
func (m Model) formatSongRow(number int, song songs.Song, width int, bgColor string, selected bool) string {
	bg := NewBgStyle(bgColor)

	numStr := fmt.Sprintf("%4d", number)
	title := strings.TrimSpace(song.Title)
	if title == "" {
		title = song.URL
	}
	titleWidth := max(width-len(numStr)-2, 10)

	var numStyle, titleStyle lipgloss.Style
	if selected {
		selText := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		numStyle, titleStyle = selText, selText.Bold(true)
	} else {
		styles := m.theme.Styles()
		numStyle, titleStyle = styles.FaintText, styles.Text
	}

	return bg.Render(numStr, numStyle) + bg.Spaces(2) + bg.Render(truncate(title, titleWidth), titleStyle)
}

// renderSongDetail renders the highlighted song and the latest match result.
func (m Model) renderSongDetail(width int, bgColor string) string {
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)

	var lines []string
	field := func(label, value string, style lipgloss.Style) {
		lines = append(lines,
			bg.Render(fmt.Sprintf("%-7s", label), styles.MutedText)+bg.Space()+
				bg.Render(truncateMiddle(value, max(width-8, 10)), style))
	}

	if song, ok := m.selectedSong(); ok {
		field("Title", song.Title, styles.Text.Bold(true))
		field("ID", fmt.Sprintf("%d", song.ID), styles.Text)
		field("Link", song.URL, styles.AccentText)
		if embed, err := songs.EmbedURL(song.URL); err == nil {
			field("Embed", embed, styles.FaintText)
		}
	} else {
		lines = append(lines, bg.Render("Select a song", styles.MutedText))
	}

	match := m.snapshot.Match
	if match.HasSong || match.Err != nil || match.Loading {
		lines = append(lines, "", bg.Render("Last match", styles.AccentText.Bold(true)))
		switch {
		case match.Loading:
			lines = append(lines, bg.Render(m.spinner.View()+" matching "+truncateMiddle(match.File, max(width-12, 10)), styles.WarningText))
		case match.HasSong:
			field("Title", match.Song.Title, styles.SuccessText)
			field("Link", match.Song.URL, styles.AccentText)
			if embed, err := songs.EmbedURL(match.Song.URL); err == nil {
				field("Embed", embed, styles.FaintText)
			}
		default:
			field("Result", match.Err.Error(), styles.DangerText)
		}
	}

	return strings.Join(lines, "\n")
}
