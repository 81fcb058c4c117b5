package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/songmatch/internal/prefs"
	"github.com/five82/songmatch/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewSongs View = iota
	ViewActivity
)

// Catalogue pages through the song listing.
type Catalogue interface {
	Page() int
	Show(page int)
	Next()
	Prev()
	Reload()
}

// Actions submits requests on behalf of the user.
type Actions interface {
	AddSong(songURL string) error
	Match(path string) error
}

// Options configures the UI.
type Options struct {
	Context     context.Context
	Store       *state.Store
	Catalogue   Catalogue
	Actions     Actions
	ServerURL   string
	LogFile     string
	RefreshTick time.Duration
	ThemeName   string
	PrefsPath   string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx         context.Context
	store       *state.Store
	catalogue   Catalogue
	actions     Actions
	serverURL   string
	logFile     string
	prefsPath   string
	refreshTick time.Duration
	keys        keyMap

	// UI state
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	spinner     spinner.Model

	// Data state
	snapshot    state.Snapshot
	lastUpdated time.Time

	// Songs state
	selectedRow int
	shownPage   int

	// Activity state
	activityViewport viewport.Model
	activityLines    []string
	activityErr      error

	// Overlays
	showHelp bool
	modal    Modal
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	refresh := opts.RefreshTick
	if refresh <= 0 {
		refresh = DefaultUIInterval
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = palettes[0].Name
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return Model{
		ctx:         ctx,
		store:       opts.Store,
		catalogue:   opts.Catalogue,
		actions:     opts.Actions,
		serverURL:   opts.ServerURL,
		logFile:     opts.LogFile,
		prefsPath:   prefsPath,
		refreshTick: refresh,
		keys:        DefaultKeyMap(),
		theme:       GetTheme(themeName),
		currentView: ViewSongs,
		spinner:     spin,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tickCmd(m.refreshTick),
		m.spinner.Tick,
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.ctx.Done() != nil {
		cmds = append(cmds, waitDoneCmd(m.ctx))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizeActivityViewport()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.applySnapshot(state.Snapshot(msg))
		return m, nil

	case activityMsg:
		m.handleActivity(msg)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case contextDoneMsg:
		return m, tea.Quit
	}

	if m.modal != nil {
		var cmd tea.Cmd
		var closed bool
		m.modal, cmd, closed = m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		}
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		var cmd tea.Cmd
		var closed bool
		m.modal, cmd, closed = m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
			if m.store != nil {
				cmd = tea.Batch(cmd, fetchSnapshotCmd(m.store))
			}
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.saveTheme()
		return m, nil

	case key.Matches(msg, m.keys.ViewActivity):
		if m.currentView == ViewActivity {
			m.currentView = ViewSongs
			return m, nil
		}
		m.currentView = ViewActivity
		return m, readActivityCmd(m.logFile)

	case key.Matches(msg, m.keys.Escape):
		m.currentView = ViewSongs
		return m, nil

	case key.Matches(msg, m.keys.AddSong):
		if m.actions != nil {
			m.modal = newAddSongModal(m.actions.AddSong)
		}
		return m, nil

	case key.Matches(msg, m.keys.Match):
		if m.actions != nil {
			m.modal = newMatchModal(m.actions.Match)
		}
		return m, nil
	}

	switch m.currentView {
	case ViewSongs:
		return m.handleSongsKey(msg)
	case ViewActivity:
		return m.handleActivityKey(msg)
	}
	return m, nil
}

// saveTheme persists the theme while keeping the other preferences.
func (m Model) saveTheme() {
	if m.prefsPath == "" {
		return
	}
	current, _ := prefs.Load(m.prefsPath)
	current.Theme = m.theme.Name
	_ = prefs.Save(m.prefsPath, current)
}

// handleTick processes the refresh tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.currentView == ViewActivity {
		cmds = append(cmds, readActivityCmd(m.logFile))
	}
	cmds = append(cmds, tickCmd(m.refreshTick))
	return m, tea.Batch(cmds...)
}

// applySnapshot stores a new snapshot and keeps the selection in range.
func (m *Model) applySnapshot(snap state.Snapshot) {
	m.snapshot = snap
	if !snap.Catalogue.LastUpdated.IsZero() {
		m.lastUpdated = snap.Catalogue.LastUpdated
	}
	if snap.Catalogue.Page.Page != m.shownPage {
		m.shownPage = snap.Catalogue.Page.Page
		m.selectedRow = 0
	}
	m.clampSelection()
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	switch m.currentView {
	case ViewActivity:
		b.WriteString(m.renderActivity())
	default:
		b.WriteString(m.renderSongs())
	}
	b.WriteString("\n")
	b.WriteString(m.renderStatusLine())

	return b.String()
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type contextDoneMsg struct{}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func waitDoneCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return contextDoneMsg{}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
