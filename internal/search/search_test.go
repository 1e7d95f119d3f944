package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/marquee/internal/domain"
)

func titles(names ...string) []domain.Title {
	out := make([]domain.Title, len(names))
	for i, n := range names {
		out[i] = domain.Title{ID: i + 1, Name: n}
	}
	return out
}

func TestFilterTitlesEmptyQuery(t *testing.T) {
	assert.Nil(t, FilterTitles("", titles("Alien")))
	assert.Nil(t, FilterTitles("   ", titles("Alien")))
	assert.Nil(t, FilterTitles("alien", nil))
}

func TestFilterTitlesMatchesCaseInsensitive(t *testing.T) {
	list := titles("The Matrix", "Alien", "Aliens", "Heat")

	results := FilterTitles("ALIEN", list)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Contains(t, []string{"Alien", "Aliens"}, r.Title.Name)
		assert.Equal(t, list[r.Index].ID, r.Title.ID)
		assert.Len(t, r.MatchedIndexes, 5)
	}
}

func TestFilterTitlesNoMatch(t *testing.T) {
	assert.Empty(t, FilterTitles("zzz", titles("Alien", "Heat")))
}

func TestNarrowKeepsSubsequenceMatches(t *testing.T) {
	list := titles("Blade Runner", "Blade", "Heat", "Babel")

	got := Narrow("blade", list)
	require.Len(t, got, 2)
	assert.Equal(t, "Blade", got[0].Name, "exact name has the smallest distance")
	assert.Equal(t, "Blade Runner", got[1].Name)
}

func TestNarrowEmptyQueryReturnsInput(t *testing.T) {
	list := titles("A", "B")
	assert.Equal(t, list, Narrow(" ", list))
}

func TestFilterTitlesReportsRunePositions(t *testing.T) {
	results := FilterTitles("lie", titles("Amélie"))
	require.Len(t, results, 1)
	assert.Equal(t, []int{3, 4, 5}, results[0].MatchedIndexes)
}
