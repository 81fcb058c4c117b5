package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the width below which the detail pane is hidden.
	LayoutCompactWidth = 90

	// LayoutWideWidth is the width from which the song table gets less room.
	LayoutWideWidth = 150
)

// Activity view limits.
const (
	// ActivityLines is the number of log lines read for the Activity view.
	ActivityLines = 500
)

// Timing constants.
const (
	// DefaultUIInterval is the default snapshot refresh interval.
	DefaultUIInterval = 250 * time.Millisecond

	// StatusMessageTTL is how long a finished add/match result stays visible.
	StatusMessageTTL = 15 * time.Second
)
