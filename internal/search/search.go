package search

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	sahilm "github.com/sahilm/fuzzy"

	"github.com/mmcdole/marquee/internal/domain"
)

// FilterResult is a title matched by FilterTitles
type FilterResult struct {
	Title          domain.Title
	Index          int   // position in the filtered slice
	MatchedIndexes []int // rune positions in Title.Name that matched (for highlighting)
	Score          int   // higher is better
}

// titleIndex implements sahilm/fuzzy.Source over pre-lowercased names
type titleIndex struct {
	lowerNames []string
}

func (idx titleIndex) String(i int) string { return idx.lowerNames[i] }
func (idx titleIndex) Len() int            { return len(idx.lowerNames) }

// FilterTitles ranks titles by fuzzy match of query against their names.
// An empty query returns nil.
func FilterTitles(query string, titles []domain.Title) []FilterResult {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || len(titles) == 0 {
		return nil
	}

	idx := titleIndex{lowerNames: make([]string, len(titles))}
	for i, t := range titles {
		idx.lowerNames[i] = strings.ToLower(t.Name)
	}

	matches := sahilm.FindFrom(query, idx)
	results := make([]FilterResult, len(matches))
	for i, m := range matches {
		results[i] = FilterResult{
			Title:          titles[m.Index],
			Index:          m.Index,
			MatchedIndexes: runeIndexes(idx.lowerNames[m.Index], m.MatchedIndexes),
			Score:          m.Score,
		}
	}
	return results
}

// runeIndexes converts byte offsets in s to rune positions. Lowercasing
// maps rune to rune, so positions carry over to the original name.
func runeIndexes(s string, offsets []int) []int {
	pos := make(map[int]int, len(s))
	n := 0
	for i := range s {
		pos[i] = n
		n++
	}
	out := make([]int, 0, len(offsets))
	for _, off := range offsets {
		if r, ok := pos[off]; ok {
			out = append(out, r)
		}
	}
	return out
}

// Narrow keeps the titles whose name contains the characters of query in
// order, closest matches first. Used to preview already loaded results
// while a typed query waits for its debounce; the cache is not touched.
func Narrow(query string, titles []domain.Title) []domain.Title {
	query = strings.TrimSpace(query)
	if query == "" {
		return titles
	}

	names := make([]string, len(titles))
	for i, t := range titles {
		names[i] = t.Name
	}

	ranks := fuzzy.RankFindFold(query, names)
	sort.Stable(ranks)

	narrowed := make([]domain.Title, 0, len(ranks))
	for _, r := range ranks {
		narrowed = append(narrowed, titles[r.OriginalIndex])
	}
	return narrowed
}
