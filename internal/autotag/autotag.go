// Package autotag infers taxonomy tags for imported menu rows from their
// free-text and numeric descriptors. The tagger is pure: one row in, one
// tag set out, one decision per category, no I/O.
package autotag

import (
	"strings"

	"github.com/Justusveijk/mesa-eatsight-sub000/internal/taxonomy"
)

// Row is one imported menu line as the tagger sees it. Numeric descriptors
// use the zero value for "not provided"; VolumeML and ABVPercent distinguish
// absent from zero because zero is meaningful for both.
type Row struct {
	Name        string
	Description string
	Category    string
	DietaryText string
	Allergens   string

	Sweetness  int // 0-5
	Bitterness int // 0-5
	Sourness   int // 0-5
	Spice      int // 0-3
	Intensity  int // 0-5

	VolumeML   *float64
	ABVPercent *float64

	IsDrink bool
}

// Tags derives the full tag set for a row. Categories are decided
// independently of each other; within a category the first matching rule
// wins. Required categories always produce a tag via their defaults, so the
// output is never missing mood, portion or temperature.
func (r Row) Tags() []taxonomy.Tag {
	tags := []taxonomy.Tag{r.mood(), r.portion(), r.temperature()}
	tags = append(tags, r.flavors()...)
	tags = append(tags, r.dietary()...)
	if p, ok := r.protein(); ok {
		tags = append(tags, p)
	}
	if p, ok := r.preparation(); ok {
		tags = append(tags, p)
	}
	if r.IsDrink {
		if s, ok := r.strength(); ok {
			tags = append(tags, s)
		}
		if f, ok := r.feel(); ok {
			tags = append(tags, f)
		}
	}
	return taxonomy.Dedupe(tags)
}

func (r Row) mood() taxonomy.Tag {
	cat := strings.ToLower(r.Category)
	desc := strings.ToLower(r.Description)
	switch {
	case containsAny(cat, "dessert") || r.Sweetness >= 4:
		return taxonomy.MoodTreat
	case r.Intensity >= 4 && containsAny(cat, "cocktail"):
		return taxonomy.MoodComfort
	case containsAny(cat, "salad", "light"):
		return taxonomy.MoodLight
	case r.Intensity >= 4 && containsAny(cat, "grill", "meat", "steak", "bbq"):
		return taxonomy.MoodProtein
	case containsAny(cat, "soup") || containsAny(desc, "warm", "hot"):
		return taxonomy.MoodWarm
	default:
		return taxonomy.MoodComfort
	}
}

// flavorRules run in fixed order; the first two that qualify are kept.
func (r Row) flavors() []taxonomy.Tag {
	desc := strings.ToLower(r.Description)
	var out []taxonomy.Tag
	add := func(cond bool, t taxonomy.Tag) {
		if cond && len(out) < 2 {
			out = append(out, t)
		}
	}
	add(r.Sweetness >= 3, taxonomy.FlavorSweet)
	add(r.Bitterness >= 3 || r.Sourness >= 3, taxonomy.FlavorTangy)
	add(r.Spice >= 2, taxonomy.FlavorSpicy)
	add(containsAny(desc, "smoke", "smoked", "smoky", "bbq", "char"), taxonomy.FlavorSmoky)
	add(containsAny(desc, "miso", "truffle", "soy", "mushroom", "parmesan"), taxonomy.FlavorUmami)
	return out
}

func (r Row) portion() taxonomy.Tag {
	cat := strings.ToLower(r.Category)
	switch {
	case containsAny(cat, "sharing", "board", "platter", "feast"):
		return taxonomy.PortionHearty
	case containsAny(cat, "bite", "snack", "tapas", "small"),
		r.VolumeML != nil && *r.VolumeML <= 100:
		return taxonomy.PortionBite
	default:
		return taxonomy.PortionStandard
	}
}

func (r Row) temperature() taxonomy.Tag {
	cat := strings.ToLower(r.Category)
	desc := strings.ToLower(r.Description)
	switch {
	case r.IsDrink || containsAny(cat, "beer", "wine", "cocktail"):
		return taxonomy.TempChilled
	case containsAny(cat, "soup") || containsAny(desc, "warm", "hot", "steaming"):
		return taxonomy.TempHot
	default:
		return taxonomy.TempRoom
	}
}

// dietary grants each tag independently. Gluten-free, dairy-free and
// nut-free default to granted when the allergen text carries no contrary
// evidence. That is deliberately permissive: a blank allergen field on a
// genuinely gluten-containing dish yields a false gluten-free tag. Known
// false-negative risk, kept for compatibility with existing venue data.
func (r Row) dietary() []taxonomy.Tag {
	diet := strings.ToLower(r.DietaryText)
	allerg := strings.ToLower(r.Allergens)
	desc := strings.ToLower(r.Description)

	var out []taxonomy.Tag
	if containsAny(diet, "vegan") {
		out = append(out, taxonomy.DietVegan)
	}
	if containsAny(diet, "vegetarian") {
		out = append(out, taxonomy.DietVegetarian)
	}
	if !containsAny(allerg, "gluten", "wheat") &&
		!containsAny(desc, "bread", "pasta", "noodle", "flour", "pizza", "wrap", "bun") {
		out = append(out, taxonomy.DietGlutenFree)
	}
	if !containsAny(allerg, "milk", "dairy", "lactose", "cheese", "cream") {
		out = append(out, taxonomy.DietDairyFree)
	}
	if containsAny(diet, "halal") {
		out = append(out, taxonomy.DietHalal)
	}
	if !containsAny(allerg, "nut", "almond", "cashew", "peanut", "walnut", "pistachio", "hazelnut") {
		out = append(out, taxonomy.DietNutFree)
	}
	return out
}

func (r Row) protein() (taxonomy.Tag, bool) {
	text := strings.ToLower(r.Name + " " + r.Description + " " + r.Category)
	diet := strings.ToLower(r.DietaryText)
	switch {
	case containsAny(text, "chicken", "turkey", "duck", "poultry"):
		return taxonomy.ProteinPoultry, true
	case containsAny(text, "beef", "pork", "lamb", "bacon", "ham", "steak"):
		return taxonomy.ProteinRedMeat, true
	case containsAny(text, "fish", "salmon", "tuna", "shrimp", "prawn", "seafood", "crab", "squid", "octopus", "oyster", "mussel"):
		return taxonomy.ProteinSeafood, true
	case containsAny(diet, "vegetarian", "vegan"),
		containsAny(text, "tofu", "tempeh", "seitan", "falafel", "lentil", "chickpea", "bean"):
		return taxonomy.ProteinPlant, true
	default:
		return "", false
	}
}

func (r Row) preparation() (taxonomy.Tag, bool) {
	text := strings.ToLower(r.Name + " " + r.Description)
	switch {
	case containsAny(text, "grilled", "chargrilled"):
		return taxonomy.PrepGrilled, true
	case containsAny(text, "fried", "crispy", "tempura"):
		return taxonomy.PrepFriedCrispy, true
	case containsAny(text, "raw", "tartare", "ceviche", "carpaccio", "sashimi"):
		return taxonomy.PrepRawFresh, true
	default:
		return "", false
	}
}

// strength maps a declared ABV percentage onto the alcohol tier used by the
// drink filter. Absent ABV leaves the drink untiered.
func (r Row) strength() (taxonomy.Tag, bool) {
	if r.ABVPercent == nil {
		return "", false
	}
	abv := *r.ABVPercent
	switch {
	case abv <= 0:
		return taxonomy.ABVZero, true
	case abv < 6:
		return taxonomy.ABVLight, true
	case abv < 15:
		return taxonomy.ABVRegular, true
	default:
		return taxonomy.ABVStrong, true
	}
}

func (r Row) feel() (taxonomy.Tag, bool) {
	cat := strings.ToLower(r.Category)
	text := strings.ToLower(r.Name + " " + r.Description)
	switch {
	case containsAny(cat, "hot drink", "coffee", "tea"):
		return taxonomy.FeelHot, true
	case containsAny(text, "sparkling", "soda", "spritz", "fizzy", "tonic"):
		return taxonomy.FeelSparkling, true
	case containsAny(text, "creamy", "milk", "latte", "smoothie", "shake"):
		return taxonomy.FeelCreamy, true
	case containsAny(text, "iced", "chilled", "cold", "crisp"):
		return taxonomy.FeelCrispCold, true
	default:
		return "", false
	}
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
