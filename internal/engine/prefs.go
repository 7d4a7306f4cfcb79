package engine

import (
	"strings"

	"github.com/Justusveijk/mesa-eatsight-sub000/internal/models"
	"github.com/Justusveijk/mesa-eatsight-sub000/internal/taxonomy"
)

// FoodQuery is the canonical food preference shape the scorer works with.
// Unanswered questions are the zero value.
type FoodQuery struct {
	Mood    taxonomy.Tag
	Flavors []taxonomy.Tag
	Portion taxonomy.Tag
	Dietary []taxonomy.Tag
	Price   taxonomy.Tag
}

// DrinkQuery is the canonical drink preference shape. Strength drives the
// hard alcohol filter; Feel and Tastes are soft preferences.
type DrinkQuery struct {
	Strength taxonomy.Tag
	Feel     taxonomy.Tag
	Tastes   []taxonomy.Tag
}

// NormalizeFood maps raw questionnaire answers onto vocabulary tags.
// Values may arrive as full tag ids ("mood_comfort") or bare answers
// ("comfort"); anything unrecognized is dropped rather than rejected, since
// every food question is optional.
func NormalizeFood(p models.FoodPreferences) FoodQuery {
	q := FoodQuery{
		Mood:    parseWithPrefix(p.Mood, "mood_"),
		Portion: parseWithPrefix(p.Portion, "portion_"),
		Price:   parseWithPrefix(p.Price, "price_"),
	}
	for _, f := range p.Flavors {
		if t := parseWithPrefix(f, "flavor_"); t != "" {
			q.Flavors = append(q.Flavors, t)
		}
	}
	for _, d := range p.Dietary {
		if t := parseWithPrefix(d, "diet_"); t != "" {
			q.Dietary = append(q.Dietary, t)
		}
	}
	q.Flavors = taxonomy.Dedupe(q.Flavors)
	if len(q.Flavors) > 2 {
		q.Flavors = q.Flavors[:2]
	}
	q.Dietary = taxonomy.Dedupe(q.Dietary)
	return q
}

// strengthAliases maps legacy strength answers onto the canonical tiers.
var strengthAliases = map[string]taxonomy.Tag{
	"zero": taxonomy.ABVZero, "none": taxonomy.ABVZero, "non_alcoholic": taxonomy.ABVZero, "no_alcohol": taxonomy.ABVZero,
	"light": taxonomy.ABVLight, "low": taxonomy.ABVLight, "soft": taxonomy.ABVLight,
	"regular": taxonomy.ABVRegular, "medium": taxonomy.ABVRegular, "normal": taxonomy.ABVRegular,
	"strong": taxonomy.ABVStrong, "high": taxonomy.ABVStrong, "boozy": taxonomy.ABVStrong,
}

// legacyFeel maps the retired drink_mood answers onto feel tags.
var legacyFeel = map[string]taxonomy.Tag{
	"cozy": taxonomy.FeelHot, "warm": taxonomy.FeelHot, "hot": taxonomy.FeelHot,
	"refreshing": taxonomy.FeelCrispCold, "cold": taxonomy.FeelCrispCold, "crisp": taxonomy.FeelCrispCold,
	"bubbly": taxonomy.FeelSparkling, "festive": taxonomy.FeelSparkling, "sparkling": taxonomy.FeelSparkling,
	"indulgent": taxonomy.FeelCreamy, "creamy": taxonomy.FeelCreamy, "smooth": taxonomy.FeelCreamy,
}

// legacyTaste maps the retired drink_style answers onto taste tags.
var legacyTaste = map[string]taxonomy.Tag{
	"sweet": taxonomy.FlavorSweet,
	"sour":  taxonomy.FlavorTangy, "tangy": taxonomy.FlavorTangy, "citrus": taxonomy.FlavorTangy,
	"spicy": taxonomy.FlavorSpicy,
	"smoky": taxonomy.FlavorSmoky,
	"savoury": taxonomy.FlavorUmami, "savory": taxonomy.FlavorUmami, "umami": taxonomy.FlavorUmami,
}

// NormalizeDrink collapses the current and legacy drink preference fields
// into one canonical query. The newer feel/tastes fields win; mood/style are
// consulted only when they are absent.
func NormalizeDrink(p models.DrinkPreferences) DrinkQuery {
	q := DrinkQuery{Strength: normalizeStrength(p.Strength)}

	q.Feel = parseWithPrefix(p.Feel, "feel_")
	if q.Feel == "" && p.Mood != "" {
		q.Feel = legacyFeel[normalizeAnswer(p.Mood)]
	}

	raw := p.Tastes
	if len(raw) == 0 {
		for _, s := range p.Style {
			if t, ok := legacyTaste[normalizeAnswer(s)]; ok {
				q.Tastes = append(q.Tastes, t)
			}
		}
	} else {
		for _, s := range raw {
			if t := parseWithPrefix(s, "flavor_"); t != "" {
				q.Tastes = append(q.Tastes, t)
			}
		}
	}
	q.Tastes = taxonomy.Dedupe(q.Tastes)
	if len(q.Tastes) > 2 {
		q.Tastes = q.Tastes[:2]
	}
	return q
}

func normalizeStrength(s string) taxonomy.Tag {
	v := normalizeAnswer(s)
	if t, ok := taxonomy.Parse(v); ok {
		if c, _ := taxonomy.CategoryOf(t); c == taxonomy.CategoryStrength {
			return t
		}
	}
	if t, ok := strengthAliases[strings.TrimPrefix(v, "abv_")]; ok {
		return t
	}
	return ""
}

func parseWithPrefix(s, prefix string) taxonomy.Tag {
	v := normalizeAnswer(s)
	if v == "" {
		return ""
	}
	if t, ok := taxonomy.Parse(v); ok {
		return t
	}
	if t, ok := taxonomy.Parse(prefix + v); ok {
		return t
	}
	return ""
}

func normalizeAnswer(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.ReplaceAll(strings.ReplaceAll(s, "-", "_"), " ", "_")
}
