// Package engine ranks menu items against one guest's questionnaire
// answers. Scorers are pure functions over the item list passed in: no
// storage access, no shared state, safe to call concurrently.
package engine

import (
	"sort"

	"github.com/Justusveijk/mesa-eatsight-sub000/internal/models"
	"github.com/Justusveijk/mesa-eatsight-sub000/internal/taxonomy"
)

// Food scoring weights. Dietary is a flat bonus because the restriction
// itself is a hard gate, not a preference.
const (
	weightMood       = 5.0
	weightFlavor     = 3.0
	weightPortion    = 4.0
	weightDietary    = 3.0
	weightPrice      = 2.0
	weightPush       = 2.0
	weightPopularity = 0.1
)

const exclusionDietary = "dietary restriction not satisfied"

// ScoreFood ranks the servable food items in the list against the guest's
// preferences. Items failing the dietary gate are removed outright; they
// must never surface, not even as fallback. The result is ordered by score
// descending with input order preserved on ties.
func ScoreFood(items []models.MenuItem, q FoodQuery) []models.ScoredItem {
	var scored []models.ScoredItem
	for _, item := range items {
		if !item.Servable() || item.Type != models.TypeFood {
			continue
		}
		s := scoreFoodItem(item, q)
		if s.Excluded {
			continue
		}
		scored = append(scored, s)
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

func scoreFoodItem(item models.MenuItem, q FoodQuery) models.ScoredItem {
	s := models.ScoredItem{Item: item}

	// Mandatory dietary gate: every stated restriction must hold, with a
	// vegan item satisfying a vegetarian ask.
	if len(q.Dietary) > 0 {
		for _, want := range q.Dietary {
			if !taxonomy.SatisfiesDietary(item.Tags, want) {
				s.Excluded = true
				s.ExclusionReason = exclusionDietary
				return s
			}
		}
		s.Score += weightDietary
		for _, want := range q.Dietary {
			if m, ok := dietaryMatchTag(item.Tags, want); ok {
				s.MatchedTags = append(s.MatchedTags, m)
			}
		}
	}

	if q.Mood != "" && taxonomy.Has(item.Tags, q.Mood) {
		s.Score += weightMood
		s.MatchedTags = append(s.MatchedTags, q.Mood)
	}
	for _, f := range q.Flavors {
		if taxonomy.Has(item.Tags, f) {
			s.Score += weightFlavor
			s.MatchedTags = append(s.MatchedTags, f)
		}
	}
	if q.Portion != "" && taxonomy.Has(item.Tags, q.Portion) {
		s.Score += weightPortion
		s.MatchedTags = append(s.MatchedTags, q.Portion)
	}
	if q.Price != "" && taxonomy.Has(item.Tags, q.Price) {
		s.Score += weightPrice
	}

	s.Score += weightPopularity * float64(item.Popularity)
	if item.IsPush {
		s.Score += weightPush
	}

	s.MatchedTags = taxonomy.Dedupe(s.MatchedTags)
	s.Reason = buildReason(s.MatchedTags)
	return s
}

// dietaryMatchTag returns the item tag that satisfied a dietary ask, so the
// reason string can say "vegan" when a vegan item answered a vegetarian
// request.
func dietaryMatchTag(itemTags []taxonomy.Tag, want taxonomy.Tag) (taxonomy.Tag, bool) {
	if taxonomy.Has(itemTags, want) {
		return want, true
	}
	if want == taxonomy.DietVegetarian && taxonomy.Has(itemTags, taxonomy.DietVegan) {
		return taxonomy.DietVegan, true
	}
	return "", false
}
