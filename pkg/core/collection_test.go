package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
}

func fixtureCollection() Collection {
	return Collection{
		{ID: "oldest", Title: "Oldest", Date: day(1), Category: "hardware", Group: "ee"},
		{ID: "draft", Title: "Draft", Date: day(2), Category: "software", Draft: true},
		{ID: "middle", Title: "Middle", Date: day(3), Category: "software", Group: "pipelines", Featured: true},
		{ID: "orphan", Title: "Orphan", Date: day(4), Category: "software", Group: "nonexistent"},
		{ID: "newest", Title: "Newest", Date: day(5), Category: "software", Group: "pipelines"},
	}
}

func TestPublished(t *testing.T) {
	pub := fixtureCollection().Published()

	require.Len(t, pub, 4)
	for _, a := range pub {
		assert.False(t, a.Draft, "draft %q leaked into published view", a.ID)
	}
}

func TestSortedByDate(t *testing.T) {
	t.Run("Descending Order", func(t *testing.T) {
		sorted := fixtureCollection().SortedByDate()

		for i := 1; i < len(sorted); i++ {
			assert.False(t, sorted[i].Date.After(sorted[i-1].Date),
				"%q (%v) sorted after %q (%v)", sorted[i].ID, sorted[i].Date, sorted[i-1].ID, sorted[i-1].Date)
		}
		assert.Equal(t, "newest", sorted[0].ID)
		assert.Equal(t, "oldest", sorted[len(sorted)-1].ID)
	})

	t.Run("Stable For Equal Dates", func(t *testing.T) {
		c := Collection{
			{ID: "first", Date: day(1)},
			{ID: "second", Date: day(1)},
			{ID: "third", Date: day(1)},
		}
		sorted := c.SortedByDate()
		assert.Equal(t, "first", sorted[0].ID)
		assert.Equal(t, "second", sorted[1].ID)
		assert.Equal(t, "third", sorted[2].ID)
	})

	t.Run("Does Not Mutate Receiver", func(t *testing.T) {
		c := fixtureCollection()
		_ = c.SortedByDate()
		assert.Equal(t, "oldest", c[0].ID)
	})
}

func TestRecent(t *testing.T) {
	recent := fixtureCollection().Published().Recent(2)

	require.Len(t, recent, 2)
	assert.Equal(t, "newest", recent[0].ID)
	assert.Equal(t, "orphan", recent[1].ID)

	t.Run("N Larger Than Collection", func(t *testing.T) {
		assert.Len(t, fixtureCollection().Recent(100), 5)
	})
}

func TestByGroup(t *testing.T) {
	groups := []Group{
		{ID: "pipelines", Name: "Processing Pipelines", Order: 2},
		{ID: "ee", Name: "Electrical Engineering", Order: 1},
		{ID: "empty", Name: "Nothing Here", Order: 3},
	}

	grouped := fixtureCollection().Published().ByGroup(groups)

	require.Len(t, grouped, 2, "empty groups must be skipped")
	assert.Equal(t, "ee", grouped[0].Group.ID, "groups must honor Order")
	assert.Equal(t, "pipelines", grouped[1].Group.ID)

	require.Len(t, grouped[1].Articles, 2)
	assert.Equal(t, "newest", grouped[1].Articles[0].ID)

	t.Run("Unknown Group Is Dropped Silently", func(t *testing.T) {
		for _, ga := range grouped {
			for _, a := range ga.Articles {
				assert.NotEqual(t, "orphan", a.ID)
			}
		}
	})
}

func TestUnknownGroups(t *testing.T) {
	groups := []Group{{ID: "pipelines"}, {ID: "ee"}}

	unknown := fixtureCollection().UnknownGroups(groups)
	assert.Equal(t, []string{"nonexistent"}, unknown)

	t.Run("Empty Group Key Is Not Unknown", func(t *testing.T) {
		c := Collection{{ID: "plain"}}
		assert.Empty(t, c.UnknownGroups(groups))
	})
}

func TestFeaturedAndFilters(t *testing.T) {
	c := fixtureCollection()

	feat := c.Featured()
	require.Len(t, feat, 1)
	assert.Equal(t, "middle", feat[0].ID)

	assert.Len(t, c.ByCategory("software"), 4)
	assert.Equal(t, []string{"hardware", "software"}, c.Categories())
}

func TestByTag(t *testing.T) {
	c := Collection{
		{ID: "a", Tags: []string{"go", "search"}},
		{ID: "b", Tags: []string{"regex"}},
	}

	assert.Len(t, c.ByTag("go"), 1)
	assert.Empty(t, c.ByTag("rust"))
}

func TestGet(t *testing.T) {
	c := fixtureCollection()

	a, err := c.Get("middle")
	require.NoError(t, err)
	assert.Equal(t, "Middle", a.Title)

	_, err = c.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
