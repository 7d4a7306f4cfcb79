package engine

import (
	"sort"
	"strings"

	"github.com/Justusveijk/mesa-eatsight-sub000/internal/models"
	"github.com/Justusveijk/mesa-eatsight-sub000/internal/taxonomy"
)

// Drink scoring weights. Feel and taste dominate because the alcohol
// question is already settled by the hard filter before scoring starts.
const (
	weightFeel         = 20.0
	weightHotCategory  = 20.0
	weightTaste        = 10.0
	weightStrengthEcho = 2.0
)

// nonAlcoholicCategories are safe to serve on a zero-alcohol ask even when
// the item carries no ABV tag.
var nonAlcoholicCategories = []string{
	"mocktail", "soft drink", "smoothie", "coffee", "tea", "juice", "hot drink",
}

// lightCategories lean low-ABV and stay eligible on a "light" ask.
var lightCategories = []string{
	"wine", "beer", "spritz", "mocktail", "soft drink", "cider",
	"hot drink", "coffee", "tea",
}

var spiritCategories = []string{"spirit", "whiskey", "whisky"}

// hotDrinkCategories get the extra category bonus on a hot-feel ask.
var hotDrinkCategories = []string{"hot drink", "coffee", "tea"}

// ScoreDrinks ranks the servable drink items against the guest's drink
// preferences. The strength filter runs before any scoring: serving alcohol
// to a guest who asked for none is a correctness failure, so filtered items
// are removed outright and never reappear as fallback.
func ScoreDrinks(items []models.MenuItem, q DrinkQuery) []models.ScoredItem {
	var scored []models.ScoredItem
	for _, item := range items {
		if !item.Servable() || item.Type != models.TypeDrink {
			continue
		}
		if !passesStrengthFilter(item, q.Strength) {
			continue
		}
		scored = append(scored, scoreDrinkItem(item, q))
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// passesStrengthFilter applies the categorical alcohol gate. Tag presence
// overrides category inference: a strong-tagged item in a mocktail category
// is still excluded on a zero ask.
func passesStrengthFilter(item models.MenuItem, strength taxonomy.Tag) bool {
	switch strength {
	case taxonomy.ABVZero:
		if carriesAlcoholTag(item.Tags) {
			return false
		}
		return taxonomy.Has(item.Tags, taxonomy.ABVZero) ||
			categoryMatches(item.Category, nonAlcoholicCategories)
	case taxonomy.ABVLight:
		if categoryMatches(item.Category, spiritCategories) {
			return false
		}
		return taxonomy.Has(item.Tags, taxonomy.ABVZero) ||
			taxonomy.Has(item.Tags, taxonomy.ABVLight) ||
			categoryMatches(item.Category, lightCategories)
	default:
		// Regular, strong, or no stated strength: everything is eligible.
		return true
	}
}

func carriesAlcoholTag(tags []taxonomy.Tag) bool {
	return taxonomy.Has(tags, taxonomy.ABVLight) ||
		taxonomy.Has(tags, taxonomy.ABVRegular) ||
		taxonomy.Has(tags, taxonomy.ABVStrong)
}

func scoreDrinkItem(item models.MenuItem, q DrinkQuery) models.ScoredItem {
	s := models.ScoredItem{Item: item}

	if q.Feel != "" {
		if taxonomy.Has(item.Tags, q.Feel) {
			s.Score += weightFeel
			s.MatchedTags = append(s.MatchedTags, q.Feel)
		}
		// For hot drinks the category is a stronger signal than the tag, and
		// the two bonuses stack on purpose for items carrying both.
		if q.Feel == taxonomy.FeelHot && categoryMatches(item.Category, hotDrinkCategories) {
			s.Score += weightHotCategory
			s.MatchedTags = append(s.MatchedTags, taxonomy.FeelHot)
		}
	}

	for _, t := range q.Tastes {
		if taxonomy.Has(item.Tags, t) {
			s.Score += weightTaste
			s.MatchedTags = append(s.MatchedTags, t)
		}
	}

	if q.Strength != "" && taxonomy.Has(item.Tags, q.Strength) {
		s.Score += weightStrengthEcho
	}

	s.Score += weightPopularity * float64(item.Popularity)
	if item.IsPush {
		s.Score += weightPush
	}

	s.MatchedTags = taxonomy.Dedupe(s.MatchedTags)
	s.Reason = buildReason(s.MatchedTags)
	return s
}

func categoryMatches(category string, keywords []string) bool {
	cat := strings.ToLower(category)
	for _, kw := range keywords {
		if strings.Contains(cat, kw) {
			return true
		}
	}
	return false
}
