package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/service"
)

// Command factories for async operations. Feed results arrive through
// the observer channel, so feed commands return nil messages.

// WaitForFeedCmd waits for the next snapshot from any feed
func WaitForFeedCmd(ch <-chan FeedUpdateMsg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

// StartFeedCmd activates a feed's initial key
func StartFeedCmd(ctx context.Context, feed *service.Feed) tea.Cmd {
	return func() tea.Msg {
		feed.Start(ctx)
		return nil
	}
}

// SelectKindCmd switches a feed to another list kind
func SelectKindCmd(ctx context.Context, feed *service.Feed, kind domain.ListKind) tea.Cmd {
	return func() tea.Msg {
		feed.SelectKind(ctx, kind)
		return nil
	}
}

// LoadMoreCmd requests the next page of a feed
func LoadMoreCmd(ctx context.Context, feed *service.Feed) tea.Cmd {
	return func() tea.Msg {
		feed.LoadMore(ctx)
		return nil
	}
}

// RefreshCmd revalidates a feed's committed key
func RefreshCmd(ctx context.Context, feed *service.Feed) tea.Cmd {
	return func() tea.Msg {
		feed.Refresh(ctx)
		return nil
	}
}

// LoadBundleCmd loads detail, cast, trailers and recommendations for an id
func LoadBundleCmd(ctx context.Context, svc *service.CatalogService, id int) tea.Cmd {
	return func() tea.Msg {
		res := svc.FetchBundle(ctx, id)
		return BundleLoadedMsg{ID: id, Bundle: res.Value, Err: res.Err}
	}
}

// LaunchTrailerCmd opens a trailer in the external player
func LaunchTrailerCmd(launcher *adapter.Launcher, video domain.Video) tea.Cmd {
	return func() tea.Msg {
		return TrailerLaunchedMsg{Name: video.Name, Err: launcher.Launch(video.URL())}
	}
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
