package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/search"
	"github.com/mmcdole/marquee/internal/service"
)

// Tab identifies a top-level screen
type Tab int

const (
	TabMovies Tab = iota
	TabTV
	TabShortlist
	tabCount
)

func (t Tab) String() string {
	switch t {
	case TabMovies:
		return "Movies"
	case TabTV:
		return "TV"
	case TabShortlist:
		return "Shortlist"
	default:
		return "?"
	}
}

const (
	// Rows from the end of the list at which the next page is requested
	loadMoreThreshold = 5

	tickInterval  = 100 * time.Millisecond
	statusTimeout = 3 * time.Second
)

// row is one rendered list entry
type row struct {
	Title   domain.Title
	Matched []int // rune indexes of fuzzy matches in the name
}

// Model is the main Bubble Tea model for the application
type Model struct {
	Ready    bool
	ShowHelp bool

	// Services
	CatalogSvc   *service.CatalogService
	Shortlist    *service.Shortlist
	Launcher     *adapter.Launcher
	ImageBaseURL string                      // poster host; empty uses the catalog default
	feeds        [TabShortlist]*service.Feed // one per browsing tab
	updates      <-chan FeedUpdateMsg
	ctx          context.Context

	// Browsing state
	Tab     Tab
	cursors [tabCount]int
	queries [tabCount]string
	Query   textinput.Model
	Editing bool

	// Detail panel
	ShowDetail    bool
	DetailID      int
	Detail        *domain.TitleBundle
	DetailLoading bool

	// Dimensions
	Width  int
	Height int

	// Status line
	StatusMsg    string
	StatusIsErr  bool
	SpinnerFrame int
}

// NewModel creates a new application model. The feeds must report to
// ChannelObservers writing to updates.
func NewModel(
	ctx context.Context,
	catalogSvc *service.CatalogService,
	shortlist *service.Shortlist,
	launcher *adapter.Launcher,
	movies, tv *service.Feed,
	updates <-chan FeedUpdateMsg,
) Model {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "search"
	ti.CharLimit = 100

	return Model{
		CatalogSvc: catalogSvc,
		Shortlist:  shortlist,
		Launcher:   launcher,
		feeds:      [TabShortlist]*service.Feed{TabMovies: movies, TabTV: tv},
		updates:    updates,
		ctx:        ctx,
		Tab:        TabMovies,
		Query:      ti,
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		StartFeedCmd(m.ctx, m.feeds[TabMovies]),
		StartFeedCmd(m.ctx, m.feeds[TabTV]),
		WaitForFeedCmd(m.updates),
		TickCmd(tickInterval),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case FeedUpdateMsg:
		m.clampCursor(msg.Tab)
		return m, WaitForFeedCmd(m.updates)

	case BundleLoadedMsg:
		if !m.ShowDetail || msg.ID != m.DetailID {
			return m, nil // Panel closed or moved on
		}
		m.DetailLoading = false
		m.Detail = &msg.Bundle
		return m, nil

	case TrailerLaunchedMsg:
		if msg.Err != nil {
			return m.setStatus("Could not open trailer: "+msg.Err.Error(), true)
		}
		return m.setStatus("Opening "+msg.Name, false)

	case TickMsg:
		m.SpinnerFrame++
		return m, TickCmd(tickInterval)

	case StatusMsg:
		return m.setStatus(msg.Message, msg.IsError)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Editing {
		return m.handleQueryKey(msg)
	}

	if m.ShowHelp {
		m.ShowHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.ShowHelp = true
		return m, nil

	case key.Matches(msg, Keys.Escape):
		if m.ShowDetail {
			m.closeDetail()
			return m, nil
		}
		if m.queries[m.Tab] != "" {
			m.Query.SetValue("")
			m.setQuery("")
		}
		return m, nil

	case key.Matches(msg, Keys.NextTab):
		m.switchTab((m.Tab + 1) % tabCount)
		return m, nil

	case key.Matches(msg, Keys.PrevTab):
		m.switchTab((m.Tab + tabCount - 1) % tabCount)
		return m, nil

	case key.Matches(msg, Keys.NextKind):
		return m, m.cycleKind(1)

	case key.Matches(msg, Keys.PrevKind):
		return m, m.cycleKind(-1)

	case key.Matches(msg, Keys.Search):
		m.Editing = true
		m.Query.SetValue(m.queries[m.Tab])
		m.Query.CursorEnd()
		return m, m.Query.Focus()

	case key.Matches(msg, Keys.Up):
		return m.moveCursor(-1)
	case key.Matches(msg, Keys.Down):
		return m.moveCursor(1)
	case key.Matches(msg, Keys.PageUp):
		return m.moveCursor(-m.listHeight())
	case key.Matches(msg, Keys.PageDown):
		return m.moveCursor(m.listHeight())
	case key.Matches(msg, Keys.Home):
		return m.moveCursor(-m.cursors[m.Tab])
	case key.Matches(msg, Keys.End):
		return m.moveCursor(len(m.rows()))

	case key.Matches(msg, Keys.Enter):
		sel, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.ShowDetail = true
		m.DetailID = sel.ID
		m.Detail = nil
		m.DetailLoading = true
		return m, LoadBundleCmd(m.ctx, m.CatalogSvc, sel.ID)

	case key.Matches(msg, Keys.Shortlist):
		return m.toggleShortlist()

	case key.Matches(msg, Keys.Trailer):
		if m.Detail == nil || len(m.Detail.Videos) == 0 {
			return m.setStatus("No trailer available", false)
		}
		return m, LaunchTrailerCmd(m.Launcher, m.Detail.Videos[0])

	case key.Matches(msg, Keys.Refresh):
		if feed := m.feed(); feed != nil {
			return m, RefreshCmd(m.ctx, feed)
		}
		return m, nil
	}

	return m, nil
}

// handleQueryKey routes keys to the search input while it has focus
func (m Model) handleQueryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		m.Editing = false
		m.Query.Blur()
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.Query, cmd = m.Query.Update(msg)
	if m.Query.Value() != m.queries[m.Tab] {
		m.setQuery(m.Query.Value())
	}
	return m, cmd
}

// setQuery records the typed text for the current tab. Browsing tabs
// hand it to the feed, which commits it once typing pauses.
func (m *Model) setQuery(text string) {
	m.queries[m.Tab] = text
	m.cursors[m.Tab] = 0
	if feed := m.feed(); feed != nil {
		feed.SetQueryText(text)
	}
}

func (m *Model) switchTab(tab Tab) {
	m.Tab = tab
	m.Query.SetValue(m.queries[tab])
	m.closeDetail()
	m.clampCursor(tab)
}

func (m *Model) closeDetail() {
	m.ShowDetail = false
	m.DetailID = 0
	m.Detail = nil
	m.DetailLoading = false
}

// cycleKind selects the next or previous list kind of the current tab
func (m *Model) cycleKind(step int) tea.Cmd {
	feed := m.feed()
	if feed == nil {
		return nil
	}
	kinds := domain.ListKindsFor(feed.Kind().Namespace())
	idx := 0
	for i, k := range kinds {
		if k == feed.Kind() {
			idx = i
			break
		}
	}
	next := kinds[(idx+step+len(kinds))%len(kinds)]
	m.cursors[m.Tab] = 0
	return SelectKindCmd(m.ctx, feed, next)
}

func (m Model) moveCursor(delta int) (tea.Model, tea.Cmd) {
	n := len(m.rows())
	c := m.cursors[m.Tab] + delta
	if c >= n {
		c = n - 1
	}
	if c < 0 {
		c = 0
	}
	m.cursors[m.Tab] = c
	return m, m.maybeLoadMore(n)
}

// maybeLoadMore requests the next page once the cursor nears the end of
// the loaded results. The pager drops the request when one is in flight
// or no page is left.
func (m Model) maybeLoadMore(rowCount int) tea.Cmd {
	feed := m.feed()
	if feed == nil || m.previewing(feed) {
		return nil
	}
	if m.cursors[m.Tab] < rowCount-loadMoreThreshold {
		return nil
	}
	snap := feed.Snapshot()
	if !snap.HasMore || snap.State != domain.StateReady {
		return nil
	}
	return LoadMoreCmd(m.ctx, feed)
}

func (m Model) toggleShortlist() (tea.Model, tea.Cmd) {
	var title domain.Title
	switch {
	case m.ShowDetail && m.Detail != nil && m.Detail.Detail != nil:
		title = *m.Detail.Detail
	default:
		sel, ok := m.selected()
		if !ok {
			return m, nil
		}
		title = sel
	}

	added := m.Shortlist.Toggle(title)
	m.clampCursor(TabShortlist)

	verb := "Removed from"
	if added {
		verb = "Added to"
	}
	status := fmt.Sprintf("%s shortlist: %s", verb, title.Name)
	if m.Shortlist.LastPersistErr() != nil {
		status += " (not saved)"
	}
	return m.setStatus(status, false)
}

func (m Model) setStatus(text string, isErr bool) (tea.Model, tea.Cmd) {
	m.StatusMsg = text
	m.StatusIsErr = isErr
	return m, ClearStatusCmd(statusTimeout)
}

// feed returns the feed of the current tab, nil on the shortlist tab
func (m Model) feed() *service.Feed {
	if m.Tab >= TabShortlist {
		return nil
	}
	return m.feeds[m.Tab]
}

// previewing reports whether typed text has not been committed yet
func (m Model) previewing(feed *service.Feed) bool {
	pending := strings.TrimSpace(feed.PendingQuery())
	return pending != "" && pending != feed.Key().Query
}

// rows returns the entries the current tab shows
func (m Model) rows() []row {
	return m.rowsFor(m.Tab)
}

func (m Model) rowsFor(tab Tab) []row {
	if tab == TabShortlist {
		results := m.Shortlist.Filter(m.queries[TabShortlist])
		rows := make([]row, len(results))
		for i, r := range results {
			rows[i] = row{Title: r.Title, Matched: r.MatchedIndexes}
		}
		return rows
	}

	feed := m.feeds[tab]
	titles := feed.Snapshot().Titles
	if m.previewing(feed) {
		// Narrow what is loaded until the debounced search lands
		titles = search.Narrow(strings.TrimSpace(feed.PendingQuery()), titles)
	}
	rows := make([]row, len(titles))
	for i, t := range titles {
		rows[i] = row{Title: t}
	}
	return rows
}

func (m Model) selected() (domain.Title, bool) {
	rows := m.rows()
	c := m.cursors[m.Tab]
	if c < 0 || c >= len(rows) {
		return domain.Title{}, false
	}
	return rows[c].Title, true
}

func (m *Model) clampCursor(tab Tab) {
	n := len(m.rowsFor(tab))
	if m.cursors[tab] >= n {
		m.cursors[tab] = max(0, n-1)
	}
}

// listHeight is the number of rows the list panel can show
func (m Model) listHeight() int {
	// Tab bar, list bar, search line, footer
	return max(1, m.Height-4)
}
