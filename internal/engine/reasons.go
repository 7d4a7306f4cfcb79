package engine

import (
	"strings"

	"github.com/Justusveijk/mesa-eatsight-sub000/internal/taxonomy"
)

// defaultReason is shown when nothing matched, which happens whenever the
// guest skipped every optional question.
const defaultReason = "Chef's recommendation"

// fallbackReason marks popularity-selected filler items.
const fallbackReason = "Popular with other guests"

var reasonPhrases = map[taxonomy.Tag]string{
	taxonomy.MoodComfort: "a comforting choice",
	taxonomy.MoodLight:   "light and fresh",
	taxonomy.MoodProtein: "packed with protein",
	taxonomy.MoodWarm:    "a warming pick",
	taxonomy.MoodTreat:   "a proper treat",

	taxonomy.FlavorSweet: "with sweet notes",
	taxonomy.FlavorTangy: "with a tangy kick",
	taxonomy.FlavorSpicy: "with some heat",
	taxonomy.FlavorSmoky: "with smoky depth",
	taxonomy.FlavorUmami: "rich and savoury",

	taxonomy.PortionBite:     "sized for a quick bite",
	taxonomy.PortionStandard: "a solid portion",
	taxonomy.PortionHearty:   "generous enough to share",

	taxonomy.DietVegan:       "fits your vegan diet",
	taxonomy.DietVegetarian:  "fits your vegetarian diet",
	taxonomy.DietGlutenFree:  "gluten-free",
	taxonomy.DietDairyFree:   "dairy-free",
	taxonomy.DietHalal:       "halal",
	taxonomy.DietNutFree:     "nut-free",
	taxonomy.DietPescatarian: "fits your pescatarian diet",

	taxonomy.FeelHot:       "served hot",
	taxonomy.FeelCrispCold: "crisp and cold",
	taxonomy.FeelSparkling: "lightly sparkling",
	taxonomy.FeelCreamy:    "smooth and creamy",
}

// buildReason renders the matched tags into one display string, in fixed
// category order: mood, up to two flavors, portion, then the first dietary
// match. Drinks go feel first, then tastes.
func buildReason(matched []taxonomy.Tag) string {
	var phrases []string
	appendPhrases := func(tags []taxonomy.Tag, limit int) {
		for i, t := range tags {
			if limit > 0 && i >= limit {
				break
			}
			if p, ok := reasonPhrases[t]; ok {
				phrases = append(phrases, p)
			}
		}
	}

	appendPhrases(taxonomy.TagsIn(matched, taxonomy.CategoryMood), 1)
	appendPhrases(taxonomy.TagsIn(matched, taxonomy.CategoryFeel), 1)
	appendPhrases(taxonomy.TagsIn(matched, taxonomy.CategoryFlavor), 2)
	appendPhrases(taxonomy.TagsIn(matched, taxonomy.CategoryPortion), 1)
	appendPhrases(taxonomy.TagsIn(matched, taxonomy.CategoryDietary), 1)

	if len(phrases) == 0 {
		return defaultReason
	}
	out := strings.Join(phrases, ", ")
	return strings.ToUpper(out[:1]) + out[1:]
}
