package tui

import "github.com/mmcdole/marquee/internal/domain"

// ChannelObserver adapts domain.FeedObserver to a channel for Bubble Tea.
type ChannelObserver struct {
	tab Tab
	ch  chan<- FeedUpdateMsg
}

// NewChannelObserver creates a new channel-based observer for one tab.
func NewChannelObserver(tab Tab, ch chan<- FeedUpdateMsg) *ChannelObserver {
	return &ChannelObserver{tab: tab, ch: ch}
}

// OnFeedUpdate sends the snapshot to the channel (non-blocking if full).
// The model re-reads the feed on every message, so a dropped update is
// covered by the next one.
func (o *ChannelObserver) OnFeedUpdate(snap domain.FeedSnapshot) {
	select {
	case o.ch <- FeedUpdateMsg{Tab: o.tab, Snapshot: snap}:
	default: // Non-blocking if channel full
	}
}
