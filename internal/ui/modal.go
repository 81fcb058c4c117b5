package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// inputModal asks for one line of text and hands it to submit. A submit
// error keeps the dialog open and is shown under the input.
type inputModal struct {
	title  string
	hint   string
	input  textinput.Model
	submit func(string) error
	err    string
}

func newAddSongModal(submit func(string) error) Modal {
	return newInputModal("Add Song", "Paste a youtu.be link", "https://youtu.be/...", submit)
}

func newMatchModal(submit func(string) error) Modal {
	return newInputModal("Match Recording", "Path to an audio file (≤ 10 MiB)", "~/recording.webm", submit)
}

func newInputModal(title, hint, placeholder string, submit func(string) error) inputModal {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 512
	ti.Width = 48
	ti.Focus()
	return inputModal{title: title, hint: hint, input: ti, submit: submit}
}

func (d inputModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(kmsg, keys.Escape):
			return d, nil, true
		case key.Matches(kmsg, keys.Confirm):
			value := strings.TrimSpace(d.input.Value())
			if value == "" {
				d.err = "a value is required"
				return d, nil, false
			}
			if err := d.submit(value); err != nil {
				d.err = err.Error()
				return d, nil, false
			}
			return d, nil, true
		}
	}

	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	if _, ok := msg.(tea.KeyMsg); ok {
		d.err = ""
	}
	return d, cmd, false
}

func (d inputModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(d.title))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(d.hint))
	b.WriteString("\n\n")
	b.WriteString(d.input.View())
	b.WriteString("\n\n")
	if d.err != "" {
		b.WriteString(styles.DangerText.Render(truncate(d.err, 60)))
		b.WriteString("\n")
	}
	b.WriteString(styles.FaintText.Render("enter submit · esc cancel"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2).
		Width(60)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		box.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
