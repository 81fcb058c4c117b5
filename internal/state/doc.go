// Package state provides thread-safe state management for songmatch.
//
// # Overview
//
// Request coordinators deliver their outcomes on background goroutines. The
// UI renders on the Bubble Tea event loop. Store sits between the two:
// coordinator callbacks write into it and the UI reads immutable snapshots on
// every tick.
//
//	Producers (callbacks):              Consumer (UI):
//	┌─────────────────────────┐        ┌──────────────────┐
//	│ onLoading → *Loading()  │        │                  │
//	│ onSuccess → *Loaded()   │───────→│ store.Snapshot() │
//	│ onError   → *Failed()   │(mutex) │       ↓          │
//	│ onFail    → *Failed()   │        │   render view    │
//	└─────────────────────────┘        └──────────────────┘
//
// # Sections
//
// A Snapshot holds three independent sections:
//
//   - Catalogue: the current song page, the page being requested, load
//     state and a consecutive failure count used for the offline banner
//   - Submission: the most recent add-song request
//   - Match: the most recent audio match and the song it found
//
// # Update Semantics
//
// A failed catalogue load keeps the previously displayed page and records the
// error, so the UI always has the last good listing to show:
//
//	store.CatalogueLoaded(page)  → Page = page, LastError = nil, failures = 0
//	store.CatalogueFailed(err)   → Page unchanged, LastError = err, failures++
//
// Starting a submission or match resets that section.
//
// # Defensive Copying
//
// Snapshot clones the song slice and wraps stored errors so callers can never
// mutate shared state. The zero Store is ready to use.
package state
