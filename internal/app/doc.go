// Package app provides the orchestration layer for songmatch.
//
// # Overview
//
// This package wires configuration, logging, the songs client, state and the
// UI together. It is the composition root: every request coordinator the
// interactive client uses is built and owned here.
//
// # Components
//
//   - app.go: Run, config overrides and prefs persistence
//   - catalogue.go: Catalogue, which owns the coordinator for the page on screen
//   - actions.go: Actions, which submit songs and audio matches
//   - poller.go: background refresh of the current page
//
// # Data Flow
//
//	Run()
//	  ├─> LoadConfig()          config file + flag overrides
//	  ├─> logging.OpenFile()    JSON log the Activity view tails
//	  ├─> songs.NewClient()     builds coordinators
//	  ├─> NewCatalogue()        page coordinator → state.Store
//	  ├─> NewActions()          add/match coordinators → state.Store
//	  ├─> StartPoller()         periodic Catalogue.Reload
//	  └─> ui.Run()              blocks until quit
//
// # One Coordinator Per Call Site
//
// Catalogue keeps a single coordinator for the current page. Reloading the
// same page calls Initiate on it again, so a reload while the previous load
// is outstanding is a no-op. Moving to another page closes the old
// coordinator; callbacks also check a generation counter so a response that
// was already in transit cannot overwrite the newer page.
//
// Actions builds a fresh coordinator per submission because each carries a
// different body. A second submission while one is outstanding returns
// ErrBusy.
//
// # Polling Behavior
//
// The poller reloads the current page every poll interval (default 10s). When
// loads keep failing the wait doubles per consecutive failure up to 30s and
// drops back to the base interval after the next success.
package app
