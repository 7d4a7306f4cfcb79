// Package importer parses operator menu uploads into tagged import rows.
// Structural problems (missing name/price column, unreadable CSV) fail the
// whole import; everything else is reported per row so the dashboard can
// show partial results.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/Justusveijk/mesa-eatsight-sub000/internal/autotag"
	"github.com/Justusveijk/mesa-eatsight-sub000/internal/models"
	"github.com/Justusveijk/mesa-eatsight-sub000/internal/taxonomy"
)

// Column names are the externally visible contract of the upload format.
// Matching is case-insensitive with spaces normalized to underscores.
const (
	colName        = "name"
	colPrice       = "price"
	colDescription = "description"
	colCategory    = "category"
	colType        = "type"
	colTags        = "tags"
	colDietary     = "dietary"
	colAllergens   = "allergens"
	colSweetness   = "sweetness_0_5"
	colBitterness  = "bitterness_0_5"
	colSourness    = "sourness_0_5"
	colSpice       = "spice_0_3"
	colIntensity   = "intensity_0_5"
	colVolume      = "volume_ml"
	colABV         = "abv_percent"
)

// detailedMarkers flag the richer upload format; their presence enables the
// auto-tagging pass.
var detailedMarkers = []string{colSweetness, colBitterness, colIntensity, colDietary, colAllergens}

// drinkCategories is the fixed keyword list used to classify rows without an
// explicit type column. Single words match whole category words only, so
// "tea" never matches "Steak".
var drinkCategories = []string{
	"drink", "beverage", "beer", "wine", "cocktail", "mocktail", "spirit",
	"whiskey", "cider", "spritz", "soda", "soft drink", "hot drink",
	"smoothie", "coffee", "tea", "juice",
}

// Parse reads a CSV menu upload and returns the per-row import outcome.
// The returned error is reserved for unreadable input; format-level problems
// come back as GlobalErrors on the report.
func Parse(r io.Reader) (models.ImportReport, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return models.ImportReport{}, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) == 0 {
		return models.ImportReport{
			GlobalErrors: []string{"empty file"},
		}, nil
	}

	cols := headerIndex(records[0])
	var report models.ImportReport
	if _, ok := cols[colName]; !ok {
		report.GlobalErrors = append(report.GlobalErrors, "missing required column: name")
	}
	if _, ok := cols[colPrice]; !ok {
		report.GlobalErrors = append(report.GlobalErrors, "missing required column: price")
	}
	if len(report.GlobalErrors) > 0 {
		return report, nil
	}

	report.Detailed = detectDetailed(cols)
	for i, record := range records[1:] {
		row := parseRow(i, record, cols, report.Detailed)
		report.Rows = append(report.Rows, row)
	}
	report.Summary = summarize(report.Rows)
	return report, nil
}

func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[normalizeHeader(h)] = i
	}
	return cols
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.TrimPrefix(h, "\ufeff")
	return strings.ReplaceAll(h, " ", "_")
}

func detectDetailed(cols map[string]int) bool {
	for _, marker := range detailedMarkers {
		if _, ok := cols[marker]; ok {
			return true
		}
	}
	return false
}

func parseRow(index int, record []string, cols map[string]int, detailed bool) models.ImportRow {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	row := models.ImportRow{
		Index:       index,
		Name:        field(colName),
		Description: field(colDescription),
		Category:    field(colCategory),
		IsValid:     true,
	}
	if row.Name == "" {
		row.IsValid = false
		row.Errors = append(row.Errors, "name is required")
	}

	price, err := parsePrice(field(colPrice))
	if err != nil {
		row.IsValid = false
		row.Errors = append(row.Errors, err.Error())
	} else {
		row.Price = price
	}

	row.Type = classifyType(field(colType), row.Category)

	// Explicit tags are additive: heuristics may extend the set but never
	// override what the operator declared.
	explicit := parseExplicitTags(field(colTags))
	tags := explicit
	if detailed {
		tagged := tagRow(row, field)
		tags = taxonomy.Dedupe(append(explicit, tagged...))
	}
	if row.IsValid && len(taxonomy.TagsIn(tags, taxonomy.CategoryPrice)) == 0 {
		tags = append(tags, taxonomy.PriceTier(row.Price))
	}
	row.Tags = tags
	row.MissingCategories = taxonomy.MissingRequired(tags)
	return row
}

func tagRow(row models.ImportRow, field func(string) string) []taxonomy.Tag {
	raw := autotag.Row{
		Name:        row.Name,
		Description: row.Description,
		Category:    row.Category,
		DietaryText: field(colDietary),
		Allergens:   field(colAllergens),
		Sweetness:   parseScale(field(colSweetness)),
		Bitterness:  parseScale(field(colBitterness)),
		Sourness:    parseScale(field(colSourness)),
		Spice:       parseScale(field(colSpice)),
		Intensity:   parseScale(field(colIntensity)),
		VolumeML:    parseOptionalFloat(field(colVolume)),
		ABVPercent:  parseOptionalFloat(field(colABV)),
		IsDrink:     row.Type == models.TypeDrink,
	}
	return raw.Tags()
}

// parsePrice accepts plain decimals with an optional currency symbol and
// thousands separators.
func parsePrice(s string) (float64, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.TrimLeft(cleaned, "$€£¥ ")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return 0, fmt.Errorf("price is required")
	}
	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || price < 0 {
		return 0, fmt.Errorf("invalid price %q", s)
	}
	return price, nil
}

func parseScale(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func parseOptionalFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

func parseExplicitTags(s string) []taxonomy.Tag {
	if s == "" {
		return nil
	}
	var out []taxonomy.Tag
	for _, part := range strings.Split(s, ",") {
		if t, ok := taxonomy.Parse(strings.TrimSpace(part)); ok {
			out = append(out, t)
		}
	}
	return taxonomy.Dedupe(out)
}

// classifyType applies the explicit type column when present, otherwise
// infers drink rows from the category keyword list. Food is the default.
func classifyType(explicit, category string) models.ItemType {
	switch strings.ToLower(strings.TrimSpace(explicit)) {
	case string(models.TypeFood):
		return models.TypeFood
	case string(models.TypeDrink):
		return models.TypeDrink
	}
	if categoryIsDrink(category) {
		return models.TypeDrink
	}
	return models.TypeFood
}

func categoryIsDrink(category string) bool {
	cat := strings.ToLower(category)
	words := strings.FieldsFunc(cat, func(r rune) bool { return !unicode.IsLetter(r) })
	for _, kw := range drinkCategories {
		if strings.Contains(kw, " ") {
			if strings.Contains(cat, kw) {
				return true
			}
			continue
		}
		for _, w := range words {
			if w == kw || w == kw+"s" {
				return true
			}
		}
	}
	return false
}

func summarize(rows []models.ImportRow) models.ImportSummary {
	s := models.ImportSummary{Total: len(rows)}
	for _, row := range rows {
		switch {
		case !row.IsValid:
			s.Invalid++
		case row.Ready():
			s.Ready++
		default:
			s.NeedsReview++
		}
	}
	return s
}
