package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Justusveijk/mesa-eatsight-sub000/internal/models"
	"github.com/Justusveijk/mesa-eatsight-sub000/internal/taxonomy"
)

func foodItem(id string, tags ...taxonomy.Tag) models.MenuItem {
	return models.MenuItem{
		ID:          id,
		Name:        id,
		Type:        models.TypeFood,
		Tags:        tags,
		IsAvailable: true,
	}
}

func findScored(t *testing.T, scored []models.ScoredItem, id string) models.ScoredItem {
	t.Helper()
	for _, s := range scored {
		if s.Item.ID == id {
			return s
		}
	}
	t.Fatalf("item %s not in scored list", id)
	return models.ScoredItem{}
}

func TestDietaryGateIsAbsolute(t *testing.T) {
	// A perfect-scoring item missing one required dietary tag must vanish,
	// however popular or pushed it is.
	violator := foodItem("violator", taxonomy.MoodComfort, taxonomy.FlavorSpicy, taxonomy.PortionStandard)
	violator.Popularity = 1000
	violator.IsPush = true

	compliant := foodItem("ok", taxonomy.DietGlutenFree, taxonomy.MoodComfort)

	scored := ScoreFood([]models.MenuItem{violator, compliant}, FoodQuery{
		Mood:    taxonomy.MoodComfort,
		Flavors: []taxonomy.Tag{taxonomy.FlavorSpicy},
		Dietary: []taxonomy.Tag{taxonomy.DietGlutenFree},
	})

	require.Len(t, scored, 1)
	assert.Equal(t, "ok", scored[0].Item.ID)
}

func TestVeganSatisfiesVegetarianAsk(t *testing.T) {
	item := foodItem("vegan-bowl",
		taxonomy.DietVegan, taxonomy.MoodLight, taxonomy.PortionStandard, taxonomy.TempRoom)

	scored := ScoreFood([]models.MenuItem{item}, FoodQuery{
		Dietary: []taxonomy.Tag{taxonomy.DietVegetarian},
	})

	require.Len(t, scored, 1)
	assert.Equal(t, weightDietary, scored[0].Score)
	assert.Contains(t, scored[0].MatchedTags, taxonomy.DietVegan)
}

func TestVegetarianDoesNotSatisfyVeganAsk(t *testing.T) {
	item := foodItem("veggie", taxonomy.DietVegetarian)
	scored := ScoreFood([]models.MenuItem{item}, FoodQuery{
		Dietary: []taxonomy.Tag{taxonomy.DietVegan},
	})
	assert.Empty(t, scored)
}

func TestScoringWeights(t *testing.T) {
	item := foodItem("full-match",
		taxonomy.MoodComfort, taxonomy.FlavorSpicy, taxonomy.FlavorSmoky,
		taxonomy.PortionHearty, taxonomy.PriceMid, taxonomy.DietVegan)
	item.Popularity = 10
	item.IsPush = true

	scored := ScoreFood([]models.MenuItem{item}, FoodQuery{
		Mood:    taxonomy.MoodComfort,
		Flavors: []taxonomy.Tag{taxonomy.FlavorSpicy, taxonomy.FlavorSmoky},
		Portion: taxonomy.PortionHearty,
		Dietary: []taxonomy.Tag{taxonomy.DietVegan},
		Price:   taxonomy.PriceMid,
	})

	require.Len(t, scored, 1)
	// 5 (mood) + 3+3 (flavors) + 4 (portion) + 3 (dietary) + 2 (price)
	// + 1.0 (popularity) + 2 (push)
	assert.InDelta(t, 23.0, scored[0].Score, 1e-9)
}

func TestFlavorMonotonicity(t *testing.T) {
	base := foodItem("base", taxonomy.MoodComfort)
	richer := foodItem("richer", taxonomy.MoodComfort, taxonomy.FlavorSpicy)

	q := FoodQuery{
		Mood:    taxonomy.MoodComfort,
		Flavors: []taxonomy.Tag{taxonomy.FlavorSpicy},
	}
	scored := ScoreFood([]models.MenuItem{base, richer}, q)

	baseScore := findScored(t, scored, "base").Score
	richerScore := findScored(t, scored, "richer").Score
	assert.GreaterOrEqual(t, richerScore, baseScore)
}

func TestStableTieBreakByInputOrder(t *testing.T) {
	a := foodItem("A", taxonomy.MoodComfort)
	b := foodItem("B", taxonomy.MoodComfort)

	q := FoodQuery{Mood: taxonomy.MoodComfort}
	scored := ScoreFood([]models.MenuItem{a, b}, q)

	require.Len(t, scored, 2)
	assert.Equal(t, "A", scored[0].Item.ID)
	assert.Equal(t, "B", scored[1].Item.ID)
}

func TestDeterminism(t *testing.T) {
	items := []models.MenuItem{
		foodItem("x", taxonomy.MoodComfort, taxonomy.FlavorSweet),
		foodItem("y", taxonomy.MoodComfort),
		foodItem("z", taxonomy.FlavorSweet),
	}
	q := FoodQuery{Mood: taxonomy.MoodComfort, Flavors: []taxonomy.Tag{taxonomy.FlavorSweet}}

	first := ScoreFood(items, q)
	second := ScoreFood(items, q)
	assert.Equal(t, first, second)
}

func TestUnavailableAndOutOfStockAreFilteredHere(t *testing.T) {
	unavailable := foodItem("gone", taxonomy.MoodComfort)
	unavailable.IsAvailable = false
	outOfStock := foodItem("86ed", taxonomy.MoodComfort)
	outOfStock.OutOfStock = true
	drink := models.MenuItem{ID: "beer", Type: models.TypeDrink, IsAvailable: true}

	scored := ScoreFood([]models.MenuItem{unavailable, outOfStock, drink}, FoodQuery{})
	assert.Empty(t, scored)
}

func TestReasonStrings(t *testing.T) {
	t.Run("built in category order", func(t *testing.T) {
		item := foodItem("steak",
			taxonomy.MoodProtein, taxonomy.FlavorSmoky, taxonomy.PortionHearty, taxonomy.DietGlutenFree)
		scored := ScoreFood([]models.MenuItem{item}, FoodQuery{
			Mood:    taxonomy.MoodProtein,
			Flavors: []taxonomy.Tag{taxonomy.FlavorSmoky},
			Portion: taxonomy.PortionHearty,
			Dietary: []taxonomy.Tag{taxonomy.DietGlutenFree},
		})
		require.Len(t, scored, 1)
		assert.Equal(t,
			"Packed with protein, with smoky depth, generous enough to share, gluten-free",
			scored[0].Reason)
	})

	t.Run("default when nothing matched", func(t *testing.T) {
		item := foodItem("plain", taxonomy.MoodComfort)
		scored := ScoreFood([]models.MenuItem{item}, FoodQuery{})
		require.Len(t, scored, 1)
		assert.Equal(t, "Chef's recommendation", scored[0].Reason)
	})
}
