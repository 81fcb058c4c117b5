package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// pagerItem is one cell of the page selector.
type pagerItem struct {
	page     int // zero for an ellipsis
	current  bool
	ellipsis bool
}

// pagerItems lays out the page selector: the first three pages, an ellipsis
// when the current page is past 5, the current page and its neighbours, an
// ellipsis when more than four pages follow, and the trailing pages.
func pagerItems(page, pageCount int) []pagerItem {
	if pageCount <= 0 {
		return nil
	}
	page = min(max(page, 1), pageCount)

	var items []pagerItem
	last := 0
	add := func(p int) {
		if p <= last || p > pageCount {
			return
		}
		items = append(items, pagerItem{page: p, current: p == page})
		last = p
	}

	for i := 1; i <= min(pageCount, 3); i++ {
		add(i)
	}
	if page > 5 {
		items = append(items, pagerItem{ellipsis: true})
	}
	for i := page - 1; i <= page+1; i++ {
		if i > 3 {
			add(i)
		}
	}
	if pageCount-page > 4 {
		items = append(items, pagerItem{ellipsis: true})
	}
	for i := max(page+2, pageCount-2); i <= pageCount; i++ {
		add(i)
	}
	return items
}

// pagerText renders the layout as plain text, e.g. "1 2 3 … [6] 7 … 9 10".
func pagerText(items []pagerItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		switch {
		case it.ellipsis:
			parts = append(parts, "…")
		case it.current:
			parts = append(parts, "["+strconv.Itoa(it.page)+"]")
		default:
			parts = append(parts, strconv.Itoa(it.page))
		}
	}
	return strings.Join(parts, " ")
}

// renderPager renders the page selector line under the song table.
func (m Model) renderPager() string {
	bg := NewBgStyle(m.theme.Background)
	styles := m.theme.Styles()

	listing := m.snapshot.Catalogue.Page
	items := pagerItems(listing.Page, listing.PageCount())
	if len(items) == 0 {
		return bg.FillLine("", m.width)
	}

	current := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.SelectionText)).
		Background(lipgloss.Color(m.theme.SelectionBg)).
		Bold(true)

	parts := make([]string, 0, len(items)+2)
	parts = append(parts, bg.Render("Pages", styles.MutedText))
	for _, it := range items {
		switch {
		case it.ellipsis:
			parts = append(parts, bg.Render("…", styles.FaintText))
		case it.current:
			parts = append(parts, current.Render(" "+strconv.Itoa(it.page)+" "))
		default:
			parts = append(parts, bg.Render(strconv.Itoa(it.page), styles.Text))
		}
	}
	parts = append(parts, bg.Render("h/l", styles.AccentText))
	return bg.FillLine(bg.Join(parts, " "), m.width)
}
