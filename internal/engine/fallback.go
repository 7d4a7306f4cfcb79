package engine

import (
	"sort"

	"github.com/Justusveijk/mesa-eatsight-sub000/internal/models"
)

// DefaultLimit is the product default for how many recommendations a guest
// sees per query.
const DefaultLimit = 3

// SelectTop takes a scored list and assembles the final result: the top
// limit positively scored items as primary, padded from the remaining pool
// by popularity when too few qualify. Fallback items carry a zero score and
// a fixed reason; the flag tells the UI to disclose the partial match. An
// item never appears in both lists, and when the pool itself is short the
// result is simply short.
func SelectTop(scored []models.ScoredItem, limit int) models.RecommendationResult {
	if limit <= 0 {
		limit = DefaultLimit
	}

	var result models.RecommendationResult
	chosen := make(map[string]struct{}, limit)
	for _, s := range scored {
		if len(result.Primary) >= limit {
			break
		}
		if s.Score <= 0 {
			continue
		}
		result.Primary = append(result.Primary, s)
		chosen[s.Item.ID] = struct{}{}
	}
	if len(result.Primary) >= limit {
		return result
	}

	result.ShowFallbackMessage = true

	pool := make([]models.ScoredItem, 0, len(scored))
	for _, s := range scored {
		if _, ok := chosen[s.Item.ID]; !ok {
			pool = append(pool, s)
		}
	}
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].Item.Popularity > pool[j].Item.Popularity
	})

	need := limit - len(result.Primary)
	for _, s := range pool {
		if need == 0 {
			break
		}
		result.Fallback = append(result.Fallback, models.ScoredItem{
			Item:   s.Item,
			Score:  0,
			Reason: fallbackReason,
		})
		need--
	}
	return result
}
