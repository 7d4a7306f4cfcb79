package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Justusveijk/mesa-eatsight-sub000/internal/models"
	"github.com/Justusveijk/mesa-eatsight-sub000/internal/taxonomy"
)

func scoredWith(id string, score float64, popularity int) models.ScoredItem {
	return models.ScoredItem{
		Item: models.MenuItem{
			ID:          id,
			Name:        id,
			Type:        models.TypeFood,
			Popularity:  popularity,
			IsAvailable: true,
		},
		Score: score,
	}
}

func TestFullPrimaryNeedsNoFallback(t *testing.T) {
	scored := []models.ScoredItem{
		scoredWith("a", 9, 0),
		scoredWith("b", 7, 0),
		scoredWith("c", 5, 0),
		scoredWith("d", 3, 0),
	}

	result := SelectTop(scored, 3)

	assert.Len(t, result.Primary, 3)
	assert.Empty(t, result.Fallback)
	assert.False(t, result.ShowFallbackMessage)
}

// All items scoring zero leaves the primary list empty; the fallback
// supplies the most popular items and the UI gets told to disclose it.
func TestAllZeroScoresFallBackToPopularity(t *testing.T) {
	scored := []models.ScoredItem{
		scoredWith("a", 0, 5),
		scoredWith("b", 0, 50),
		scoredWith("c", 0, 20),
		scoredWith("d", 0, 10),
		scoredWith("e", 0, 1),
	}

	result := SelectTop(scored, 3)

	assert.Empty(t, result.Primary)
	require.Len(t, result.Fallback, 3)
	assert.Equal(t, []string{"b", "c", "d"}, scoredIDs(result.Fallback))
	assert.True(t, result.ShowFallbackMessage)
	for _, f := range result.Fallback {
		assert.Zero(t, f.Score)
		assert.Equal(t, "Popular with other guests", f.Reason)
	}
}

func TestPartialPrimaryIsToppedUp(t *testing.T) {
	scored := []models.ScoredItem{
		scoredWith("winner", 8, 0),
		scoredWith("meh", 0, 10),
		scoredWith("popular", 0, 99),
	}

	result := SelectTop(scored, 3)

	require.Len(t, result.Primary, 1)
	assert.Equal(t, "winner", result.Primary[0].Item.ID)
	require.Len(t, result.Fallback, 2)
	assert.Equal(t, []string{"popular", "meh"}, scoredIDs(result.Fallback))
	assert.True(t, result.ShowFallbackMessage)
}

func TestNoDuplicatesBetweenLists(t *testing.T) {
	scored := []models.ScoredItem{
		scoredWith("a", 5, 100),
		scoredWith("b", 0, 90),
		scoredWith("c", 0, 80),
	}

	result := SelectTop(scored, 3)

	seen := map[string]bool{}
	for _, s := range append(result.Primary, result.Fallback...) {
		assert.False(t, seen[s.Item.ID], "item %s duplicated", s.Item.ID)
		seen[s.Item.ID] = true
	}
	assert.LessOrEqual(t, len(result.Primary)+len(result.Fallback), 3)
}

// When the whole pool is smaller than the requested count the result is
// simply short: no padding with ineligible items.
func TestShortPoolReturnsShortResult(t *testing.T) {
	scored := []models.ScoredItem{
		scoredWith("only", 4, 0),
	}

	result := SelectTop(scored, 3)

	assert.Len(t, result.Primary, 1)
	assert.Empty(t, result.Fallback)
	assert.True(t, result.ShowFallbackMessage)
}

func TestZeroLimitUsesDefault(t *testing.T) {
	scored := []models.ScoredItem{
		scoredWith("a", 5, 0),
		scoredWith("b", 4, 0),
		scoredWith("c", 3, 0),
		scoredWith("d", 2, 0),
	}
	result := SelectTop(scored, 0)
	assert.Len(t, result.Primary, DefaultLimit)
}

// End-to-end over the scorer: five items with no preference signal at all
// produce an empty primary and a popularity-ranked fallback.
func TestNoSignalQueryEndToEnd(t *testing.T) {
	var items []models.MenuItem
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		items = append(items, models.MenuItem{
			ID:          id,
			Type:        models.TypeFood,
			Tags:        []taxonomy.Tag{taxonomy.PortionStandard, taxonomy.TempRoom},
			IsAvailable: true,
		})
	}

	result := SelectTop(ScoreFood(items, FoodQuery{Mood: taxonomy.MoodTreat}), 3)

	assert.Empty(t, result.Primary)
	require.Len(t, result.Fallback, 3)
	// Equal popularity: stable selection keeps input order.
	assert.Equal(t, []string{"a", "b", "c"}, scoredIDs(result.Fallback))
	assert.True(t, result.ShowFallbackMessage)
}
