package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/marquee/internal/catalog/tmdb"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Detail panel share of the width when open
const detailPercent = 55

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}
	if m.ShowHelp {
		return m.renderHelp()
	}

	header := lipgloss.JoinVertical(lipgloss.Left,
		m.renderTabs(),
		m.renderKindBar(),
		m.renderSearchLine(),
	)

	height := m.listHeight()
	body := m.renderList(m.Width, height)
	if m.ShowDetail {
		detailWidth := m.Width * detailPercent / 100
		listWidth := m.Width - detailWidth
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			m.renderList(listWidth, height),
			m.renderDetail(detailWidth, height),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.renderFooter())
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, tabCount)
	for t := Tab(0); t < tabCount; t++ {
		label := t.String()
		if t == TabShortlist {
			label = fmt.Sprintf("%s (%d)", label, m.Shortlist.Len())
		}
		if t == m.Tab {
			tabs = append(tabs, styles.ActiveTabStyle.Render(label))
		} else {
			tabs = append(tabs, styles.InactiveTabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderKindBar shows the list categories of a browsing tab
func (m Model) renderKindBar() string {
	feed := m.feed()
	if feed == nil {
		return styles.DimStyle.Render(" Saved titles")
	}
	current := feed.Kind()
	parts := make([]string, 0, 4)
	for _, k := range domain.ListKindsFor(current.Namespace()) {
		if k == current {
			parts = append(parts, styles.AccentStyle.Render(k.Label()))
		} else {
			parts = append(parts, styles.DimStyle.Render(k.Label()))
		}
	}
	return " " + strings.Join(parts, styles.DimStyle.Render(" · "))
}

func (m Model) renderSearchLine() string {
	if m.Editing {
		return " " + m.Query.View()
	}
	if q := m.queries[m.Tab]; q != "" {
		return " " + styles.FilterPromptStyle.Render("/ ") + q
	}
	return ""
}

func (m Model) renderList(width, height int) string {
	rows := m.rows()
	if len(rows) == 0 {
		msg := "No titles"
		if feed := m.feed(); feed != nil && feed.Snapshot().State == domain.StateFetching {
			msg = "Loading..."
		}
		return lipgloss.NewStyle().Width(width).Height(height).
			Render(styles.DimStyle.Render("  " + msg))
	}

	cursor := m.cursors[m.Tab]
	start := 0
	if cursor >= height {
		start = cursor - height + 1
	}
	end := min(len(rows), start+height)

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, m.renderRow(rows[i], i == cursor, width))
	}
	return lipgloss.NewStyle().Width(width).Height(height).
		Render(strings.Join(lines, "\n"))
}

func (m Model) renderRow(r row, selected bool, width int) string {
	mark := " "
	if m.Shortlist.IsShortlisted(r.Title.ID) {
		mark = styles.ShortlistChar
	}
	gold := styles.MarqueeGold
	dim := styles.DimGray

	suffix := ""
	if year := r.Title.Year(); year > 0 {
		suffix = fmt.Sprintf(" %d", year)
	}
	if r.Title.VoteAverage > 0 {
		suffix += fmt.Sprintf("  %.1f", r.Title.VoteAverage)
	}

	nameWidth := width - 4 - lipgloss.Width(suffix)
	name := styles.Truncate(r.Title.Name, nameWidth)

	parts := []styles.RowPart{{Text: mark + " ", Foreground: &gold}}
	parts = append(parts, highlightParts(name, r.Matched)...)
	parts = append(parts, styles.RowPart{Text: suffix, Foreground: &dim})
	return styles.RenderListRow(parts, selected, width)
}

// highlightParts splits name into runs, emphasizing matched runes
func highlightParts(name string, matched []int) []styles.RowPart {
	if len(matched) == 0 {
		return []styles.RowPart{{Text: name}}
	}
	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}
	gold := styles.MarqueeGold

	var parts []styles.RowPart
	var run []rune
	runHit := false
	flush := func() {
		if len(run) == 0 {
			return
		}
		p := styles.RowPart{Text: string(run)}
		if runHit {
			p.Foreground = &gold
			p.Bold = true
		}
		parts = append(parts, p)
		run = run[:0]
	}
	for i, r := range []rune(name) {
		if hit[i] != runHit {
			flush()
			runHit = hit[i]
		}
		run = append(run, r)
	}
	flush()
	return parts
}

func (m Model) renderDetail(width, height int) string {
	box := styles.DetailStyle.Width(width).Height(height)
	inner := width - 4

	if m.DetailLoading {
		return box.Render(RenderSpinner(m.SpinnerFrame) + styles.DimStyle.Render(" Loading details..."))
	}
	if m.Detail == nil || m.Detail.Detail == nil {
		return box.Render(styles.DimStyle.Render("No details available"))
	}

	b := m.Detail
	t := b.Detail
	var lines []string

	lines = append(lines, styles.TitleStyle.Render(styles.Truncate(t.Name, inner)))

	var meta []string
	if year := t.Year(); year > 0 {
		meta = append(meta, fmt.Sprint(year))
	}
	if rt := t.FormattedRuntime(); rt != "" {
		meta = append(meta, rt)
	}
	if t.VoteAverage > 0 {
		meta = append(meta, fmt.Sprintf("%.1f/10", t.VoteAverage))
	}
	if b.Namespace == domain.NamespaceTV {
		meta = append(meta, "TV")
	}
	if len(meta) > 0 {
		lines = append(lines, styles.SubtitleStyle.Render(strings.Join(meta, " · ")))
	}
	if len(t.Genres) > 0 {
		names := make([]string, len(t.Genres))
		for i, g := range t.Genres {
			names[i] = g.Name
		}
		lines = append(lines, styles.DimStyle.Render(strings.Join(names, ", ")))
	}
	if t.Tagline != "" {
		lines = append(lines, "", styles.AccentStyle.Italic(true).Render(t.Tagline))
	}
	if t.Overview != "" {
		lines = append(lines, "", lipgloss.NewStyle().Width(inner).Render(t.Overview))
	}
	if poster := m.posterURL(t.PosterPath); poster != "" {
		lines = append(lines, "", styles.DimStyle.Render(styles.Truncate(poster, inner)))
	}

	if len(b.Cast) > 0 {
		lines = append(lines, "", styles.AccentStyle.Render("Cast"))
		for _, c := range b.Cast {
			line := c.Name
			if c.Character != "" {
				line += styles.DimStyle.Render(" as " + c.Character)
			}
			lines = append(lines, "  "+line)
		}
	}
	if len(b.Videos) > 0 {
		lines = append(lines, "", styles.AccentStyle.Render("Trailers")+styles.DimStyle.Render("  t to play"))
		for _, v := range b.Videos {
			lines = append(lines, "  "+styles.Truncate(v.Name, inner-2))
		}
	}
	if len(b.Recommendations) > 0 {
		lines = append(lines, "", styles.AccentStyle.Render("Recommended"))
		for _, r := range b.Recommendations {
			lines = append(lines, "  "+styles.Truncate(r.Name, inner-2))
		}
	}

	if len(lines) > height {
		lines = lines[:height]
	}
	return box.Render(strings.Join(lines, "\n"))
}

func (m Model) posterURL(path string) string {
	if m.ImageBaseURL == "" {
		return tmdb.ImageURL(path, "w500")
	}
	return tmdb.ImageURLWithBase(m.ImageBaseURL, path, "w500")
}

// renderFooter renders the status line
func (m Model) renderFooter() string {
	var left string
	feed := m.feed()
	var snap domain.FeedSnapshot
	if feed != nil {
		snap = feed.Snapshot()
	}

	switch {
	case snap.State == domain.StateFetching || snap.State == domain.StateFetchingMore:
		text := "Loading..."
		if snap.State == domain.StateFetchingMore {
			text = fmt.Sprintf("Loading page %d...", snap.Page+1)
		}
		left = RenderSpinner(m.SpinnerFrame) + " " + styles.DimStyle.Render(text)
	case m.StatusMsg != "":
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.DimStyle.Render(m.StatusMsg)
		}
	case snap.Err != nil:
		// Failures degrade to what is cached; only hint at them
		left = styles.DimStyle.Render("offline? showing cached results")
	}

	var center string
	if feed != nil && snap.TotalPages > 0 {
		center = styles.DimStyle.Render(fmt.Sprintf("%d titles · page %d/%d", len(snap.Titles), snap.Page, snap.TotalPages))
	}

	right := styles.AccentStyle.Render("?") + styles.DimStyle.Render(" help")

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	if leftWidth+centerWidth+rightWidth >= m.Width {
		// Not enough space - just left + right
		gap := max(0, m.Width-leftWidth-rightWidth)
		return left + strings.Repeat(" ", gap) + right
	}

	available := m.Width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad
	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	help := `
NAVIGATION                      ACTIONS
  j/k        Up/down               Enter  Details
  g/G        First/last            s      Toggle shortlist
  PgUp/PgDn  Scroll page           t      Play trailer
  Tab        Next tab              r      Refresh
  [ / ]      Previous/next list    /      Search
                                   Esc    Close / Clear
                                   q      Quit

Press any key to return...
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(help))
}

// RenderSpinner renders a spinner frame
func RenderSpinner(frame int) string {
	return styles.SpinnerStyle.Render(styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])
}
