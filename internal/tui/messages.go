package tui

import (
	"github.com/mmcdole/marquee/internal/domain"
)

// Message types for the TUI

// FeedUpdateMsg carries a pager snapshot for one browsing tab
type FeedUpdateMsg struct {
	Tab      Tab
	Snapshot domain.FeedSnapshot
}

// BundleLoadedMsg signals that the detail bundle for an id is ready
type BundleLoadedMsg struct {
	ID     int
	Bundle domain.TitleBundle
	Err    error
}

// TrailerLaunchedMsg reports the outcome of opening a trailer
type TrailerLaunchedMsg struct {
	Name string
	Err  error
}

// TickMsg is a general tick message for animations
type TickMsg struct{}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}
