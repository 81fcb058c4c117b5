// Package ui provides the Bubble Tea terminal interface for songmatch.
//
// # Architecture Overview
//
// Model is a standard Bubble Tea model. It never performs network I/O
// itself: key presses call into the Catalogue and Actions interfaces, whose
// request coordinators report back through state.Store. A periodic tick
// pulls a fresh Snapshot from the store, so rendering only ever reads
// immutable copies.
//
//	key press ──→ Catalogue / Actions ──→ request.Coordinator
//	                                            │ callbacks
//	tick ──→ store.Snapshot() ←──────── state.Store
//	  │
//	  └──→ View()
//
// # Package Structure
//
//   - app.go: Model, Update loop, messages and Run
//   - songs_view.go: song table and detail pane
//   - pager.go: page selector layout
//   - activity.go: log tail view
//   - modal.go: add-song and match dialogs
//   - header.go: status bar, command bar and text helpers
//   - status.go: outcome line for add and match requests
//   - box.go, style_helpers.go, theme.go: rendering primitives
//   - keys.go, help.go: key bindings and the help overlay
//
// # Views
//
//   - Songs: the current catalogue page with the highlighted song's details
//     and the last match result
//   - Activity: the tail of the JSON log, one line per request event
//
// # Keyboard Shortcuts
//
//	j/k      move selection       h/l      previous/next page
//	a        add a song           m        match a recording
//	r        reload page          L        toggle activity log
//	T        cycle theme          ?        help
//	esc      back / cancel        e        quit
//
// # Pager
//
// The page selector shows the first three pages, then an ellipsis once the
// current page is past 5, the current page with its neighbours, another
// ellipsis when more than four pages follow, and the last pages. Numbers
// never repeat.
//
// # Themes
//
// Nightfox (default), Kanagawa and Slate. The choice is saved to the prefs
// file as soon as it changes.
package ui
