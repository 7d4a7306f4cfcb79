package models

import (
	"time"

	"github.com/Justusveijk/mesa-eatsight-sub000/internal/taxonomy"
)

// MenuItem represents one dish or drink on a venue's menu.
type MenuItem struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Price       float64        `json:"price"`
	Category    string         `json:"category"`
	Type        ItemType       `json:"type"`
	Tags        []taxonomy.Tag `json:"tags"`
	Popularity  int            `json:"popularity"`
	IsPush      bool           `json:"is_push"`
	IsAvailable bool           `json:"is_available"`
	OutOfStock  bool           `json:"is_out_of_stock"`
	NeedsReview bool           `json:"needs_review,omitempty"`
}

// ItemType distinguishes food from drink items.
type ItemType string

const (
	TypeFood  ItemType = "food"
	TypeDrink ItemType = "drink"
)

// Servable reports whether an item may appear in recommendations at all.
func (m MenuItem) Servable() bool {
	return m.IsAvailable && !m.OutOfStock
}

// FoodPreferences holds one guest's answers to the food questionnaire.
// Every field is optional except that a non-empty dietary list is a hard
// constraint, never a soft preference.
type FoodPreferences struct {
	Mood    string   `json:"mood,omitempty"`
	Flavors []string `json:"flavors,omitempty"`
	Portion string   `json:"portion,omitempty"`
	Dietary []string `json:"dietary,omitempty"`
	Price   string   `json:"price,omitempty"`
}

// DrinkPreferences holds one guest's answers to the drink questionnaire.
// Strength is the mandatory first question. Mood and Style are the legacy
// field names older clients still send; they are normalized onto Feel and
// Tastes before scoring.
type DrinkPreferences struct {
	Strength string   `json:"strength"`
	Feel     string   `json:"feel,omitempty"`
	Tastes   []string `json:"tastes,omitempty"`
	Mood     string   `json:"mood,omitempty"`
	Style    []string `json:"style,omitempty"`
}

// ScoredItem is one menu item annotated with its score and the tags that
// matched the guest's stated preferences. Computed per request, never stored.
type ScoredItem struct {
	Item        MenuItem       `json:"item"`
	Score       float64        `json:"score"`
	MatchedTags []taxonomy.Tag `json:"matched_tags,omitempty"`
	Reason      string         `json:"reason"`

	// Excluded marks items removed by a hard constraint (dietary or ABV).
	// An excluded item never reaches primary or fallback lists.
	Excluded        bool   `json:"-"`
	ExclusionReason string `json:"-"`
}

// RecommendationResult is what one scoring pass hands back to the caller.
type RecommendationResult struct {
	Primary             []ScoredItem `json:"primary"`
	Fallback            []ScoredItem `json:"fallback,omitempty"`
	ShowFallbackMessage bool         `json:"show_fallback_message"`
}

// ImportRow is the outcome of parsing and tagging one CSV line.
type ImportRow struct {
	Index             int                 `json:"index"`
	Name              string              `json:"name"`
	Description       string              `json:"description,omitempty"`
	Price             float64             `json:"price"`
	Category          string              `json:"category,omitempty"`
	Type              ItemType            `json:"type"`
	Tags              []taxonomy.Tag      `json:"tags"`
	IsValid           bool                `json:"is_valid"`
	Errors            []string            `json:"errors,omitempty"`
	MissingCategories []taxonomy.Category `json:"missing_categories,omitempty"`
}

// Ready reports whether a row is importable without operator review.
func (r ImportRow) Ready() bool {
	return r.IsValid && len(r.MissingCategories) == 0
}

// ImportSummary aggregates row outcomes for the operator.
type ImportSummary struct {
	Total       int `json:"total"`
	Ready       int `json:"ready"`
	NeedsReview int `json:"needs_review"`
	Invalid     int `json:"invalid"`
}

// ImportReport is the full result of one CSV import run. GlobalErrors is
// non-empty only for structural failures (missing name/price column), in
// which case Rows is empty.
type ImportReport struct {
	Rows         []ImportRow   `json:"rows"`
	Summary      ImportSummary `json:"summary"`
	GlobalErrors []string      `json:"global_errors,omitempty"`
	Detailed     bool          `json:"detailed_format"`
}

// ShownRecommendation is the analytics payload recorded for each item a
// guest was shown. Persisted by the event recorder, never read back by
// the engine.
type ShownRecommendation struct {
	SessionID string  `json:"session_id"`
	ItemID    string  `json:"item_id"`
	Rank      int     `json:"rank"`
	Score     float64 `json:"score"`
	Reason    string  `json:"reason"`
}

// Event is an arbitrary analytics record.
type Event struct {
	Name      string         `json:"name"`
	Props     map[string]any `json:"props,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
