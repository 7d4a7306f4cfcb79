package taxonomy

// Category identifies one axis of the menu tag vocabulary.
type Category string

const (
	CategoryMood     Category = "mood"
	CategoryFlavor   Category = "flavor"
	CategoryPortion  Category = "portion"
	CategoryDietary  Category = "dietary"
	CategoryTemp     Category = "temperature"
	CategoryProtein  Category = "protein"
	CategoryPrep     Category = "preparation"
	CategoryPrice    Category = "price"
	CategoryStrength Category = "strength"
	CategoryFeel     Category = "feel"
)

// Tag is one value from the closed vocabulary. Tags are plain strings at
// storage and wire boundaries; inside the engine they stay typed.
type Tag string

// Mood tags. Every recommendation-ready item carries exactly one.
const (
	MoodComfort Tag = "mood_comfort"
	MoodLight   Tag = "mood_light"
	MoodProtein Tag = "mood_protein"
	MoodWarm    Tag = "mood_warm"
	MoodTreat   Tag = "mood_treat"
)

// Flavor tags, at most two per item. Drinks reuse this axis as "taste".
const (
	FlavorSweet Tag = "flavor_sweet"
	FlavorTangy Tag = "flavor_tangy"
	FlavorSpicy Tag = "flavor_spicy"
	FlavorSmoky Tag = "flavor_smoky"
	FlavorUmami Tag = "flavor_umami"
)

// Portion tags, exactly one per item.
const (
	PortionBite     Tag = "portion_bite"
	PortionStandard Tag = "portion_standard"
	PortionHearty   Tag = "portion_hearty"
)

// Dietary tags, any subset. DietVegan implies DietVegetarian for matching
// purposes; see SatisfiesDietary.
const (
	DietVegetarian  Tag = "diet_vegetarian"
	DietVegan       Tag = "diet_vegan"
	DietGlutenFree  Tag = "diet_gluten_free"
	DietDairyFree   Tag = "diet_dairy_free"
	DietHalal       Tag = "diet_halal"
	DietNutFree     Tag = "diet_nut_free"
	DietPescatarian Tag = "diet_pescatarian"
)

// Temperature tags, exactly one per item.
const (
	TempHot     Tag = "temp_hot"
	TempRoom    Tag = "temp_room"
	TempChilled Tag = "temp_chilled"
)

// Protein tags, at most one per item.
const (
	ProteinPoultry Tag = "protein_poultry"
	ProteinRedMeat Tag = "protein_red_meat"
	ProteinSeafood Tag = "protein_seafood"
	ProteinPlant   Tag = "protein_plant"
)

// Preparation tags, at most one per item.
const (
	PrepGrilled     Tag = "prep_grilled"
	PrepFriedCrispy Tag = "prep_fried_crispy"
	PrepRawFresh    Tag = "prep_raw_fresh"
)

// Price tier tags, derived from the item price at import time.
const (
	PriceBudget  Tag = "price_budget"
	PriceMid     Tag = "price_mid"
	PricePremium Tag = "price_premium"
)

// Alcohol strength tags for drinks. Used as a hard filter, not a bonus.
const (
	ABVZero    Tag = "abv_zero"
	ABVLight   Tag = "abv_light"
	ABVRegular Tag = "abv_regular"
	ABVStrong  Tag = "abv_strong"
)

// Feel tags describing a drink's format.
const (
	FeelHot       Tag = "feel_hot"
	FeelCrispCold Tag = "feel_crisp_cold"
	FeelSparkling Tag = "feel_sparkling"
	FeelCreamy    Tag = "feel_creamy"
)

var tagCategories = map[Tag]Category{
	MoodComfort: CategoryMood,
	MoodLight:   CategoryMood,
	MoodProtein: CategoryMood,
	MoodWarm:    CategoryMood,
	MoodTreat:   CategoryMood,

	FlavorSweet: CategoryFlavor,
	FlavorTangy: CategoryFlavor,
	FlavorSpicy: CategoryFlavor,
	FlavorSmoky: CategoryFlavor,
	FlavorUmami: CategoryFlavor,

	PortionBite:     CategoryPortion,
	PortionStandard: CategoryPortion,
	PortionHearty:   CategoryPortion,

	DietVegetarian:  CategoryDietary,
	DietVegan:       CategoryDietary,
	DietGlutenFree:  CategoryDietary,
	DietDairyFree:   CategoryDietary,
	DietHalal:       CategoryDietary,
	DietNutFree:     CategoryDietary,
	DietPescatarian: CategoryDietary,

	TempHot:     CategoryTemp,
	TempRoom:    CategoryTemp,
	TempChilled: CategoryTemp,

	ProteinPoultry: CategoryProtein,
	ProteinRedMeat: CategoryProtein,
	ProteinSeafood: CategoryProtein,
	ProteinPlant:   CategoryProtein,

	PrepGrilled:     CategoryPrep,
	PrepFriedCrispy: CategoryPrep,
	PrepRawFresh:    CategoryPrep,

	PriceBudget:  CategoryPrice,
	PriceMid:     CategoryPrice,
	PricePremium: CategoryPrice,

	ABVZero:    CategoryStrength,
	ABVLight:   CategoryStrength,
	ABVRegular: CategoryStrength,
	ABVStrong:  CategoryStrength,

	FeelHot:       CategoryFeel,
	FeelCrispCold: CategoryFeel,
	FeelSparkling: CategoryFeel,
	FeelCreamy:    CategoryFeel,
}

// CategoryOf returns the category a tag belongs to, or false for a string
// outside the vocabulary.
func CategoryOf(t Tag) (Category, bool) {
	c, ok := tagCategories[t]
	return c, ok
}

// IsKnown reports whether t is part of the vocabulary.
func IsKnown(t Tag) bool {
	_, ok := tagCategories[t]
	return ok
}

// Parse converts a raw string into a vocabulary tag.
func Parse(s string) (Tag, bool) {
	t := Tag(s)
	return t, IsKnown(t)
}

// TagsIn returns the subset of tags belonging to the given category,
// preserving input order.
func TagsIn(tags []Tag, c Category) []Tag {
	var out []Tag
	for _, t := range tags {
		if tc, ok := tagCategories[t]; ok && tc == c {
			out = append(out, t)
		}
	}
	return out
}

// Has reports whether tags contains t.
func Has(tags []Tag, t Tag) bool {
	for _, v := range tags {
		if v == t {
			return true
		}
	}
	return false
}

// SatisfiesDietary reports whether an item's tag set satisfies one requested
// dietary restriction. A vegetarian ask is satisfied by a vegan item: vegan
// is the stricter diet, so the implication only runs that way.
func SatisfiesDietary(itemTags []Tag, want Tag) bool {
	if Has(itemTags, want) {
		return true
	}
	if want == DietVegetarian && Has(itemTags, DietVegan) {
		return true
	}
	return false
}

// IsReady reports whether a tag set makes an item recommendation-ready:
// at least one mood, exactly one portion and at least one temperature tag.
// Flavor, dietary, protein, prep and price are optional enrichments.
func IsReady(tags []Tag) bool {
	return len(MissingRequired(tags)) == 0
}

// MissingRequired returns the required categories absent from a tag set,
// in a stable order for display.
func MissingRequired(tags []Tag) []Category {
	var missing []Category
	if len(TagsIn(tags, CategoryMood)) == 0 {
		missing = append(missing, CategoryMood)
	}
	if len(TagsIn(tags, CategoryPortion)) != 1 {
		missing = append(missing, CategoryPortion)
	}
	if len(TagsIn(tags, CategoryTemp)) == 0 {
		missing = append(missing, CategoryTemp)
	}
	return missing
}

// Price tier boundaries. Anything below budgetCeiling is budget, below
// midCeiling is mid, the rest premium.
const (
	budgetCeiling = 12.0
	midCeiling    = 28.0
)

// PriceTier derives the system-assigned price tag from an item price.
func PriceTier(price float64) Tag {
	switch {
	case price < budgetCeiling:
		return PriceBudget
	case price < midCeiling:
		return PriceMid
	default:
		return PricePremium
	}
}

// Dedupe removes duplicate tags preserving first occurrence order.
func Dedupe(tags []Tag) []Tag {
	seen := make(map[Tag]struct{}, len(tags))
	var out []Tag
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// Strings converts a tag slice to plain strings for the storage boundary.
func Strings(tags []Tag) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = string(t)
	}
	return out
}

// FromStrings converts raw strings back into tags, dropping anything outside
// the vocabulary.
func FromStrings(raw []string) []Tag {
	var out []Tag
	for _, s := range raw {
		if t, ok := Parse(s); ok {
			out = append(out, t)
		}
	}
	return out
}
