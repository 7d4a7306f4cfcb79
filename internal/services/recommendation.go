package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Justusveijk/mesa-eatsight-sub000/internal/engine"
	"github.com/Justusveijk/mesa-eatsight-sub000/internal/models"
)

// recordTimeout bounds the fire-and-forget analytics writes so a slow store
// can never pile up goroutines indefinitely.
const recordTimeout = 5 * time.Second

// MenuFetcher supplies the eligible item set for one scoring pass.
type MenuFetcher interface {
	FetchMenu(ctx context.Context, itemType models.ItemType) ([]models.MenuItem, error)
}

// Recorder persists questionnaire sessions and shown recommendations.
type Recorder interface {
	RecordSession(ctx context.Context, sessionID string, answers any) error
	RecordShown(ctx context.Context, shown []models.ShownRecommendation) error
	RecordEvent(ctx context.Context, event models.Event) error
}

// RecommendationService wires the pure scoring engine to the menu store and
// the analytics recorder. Scoring itself never does I/O: the full item set
// is fetched once per request and passed in.
type RecommendationService struct {
	menu     MenuFetcher
	recorder Recorder
	logger   zerolog.Logger
}

// NewRecommendationService creates a new recommendation service.
func NewRecommendationService(menu MenuFetcher, recorder Recorder, logger zerolog.Logger) *RecommendationService {
	return &RecommendationService{
		menu:     menu,
		recorder: recorder,
		logger:   logger.With().Str("service", "recommendation").Logger(),
	}
}

// BothResult carries the food and drink blocks of a combined questionnaire.
// The two passes are scored independently; merging is display-only.
type BothResult struct {
	SessionID string                      `json:"session_id"`
	Food      models.RecommendationResult `json:"food"`
	Drink     models.RecommendationResult `json:"drink"`
}

// RecommendFood scores the food menu against one guest's answers and records
// the session. A blank session id gets a generated one.
func (s *RecommendationService) RecommendFood(ctx context.Context, sessionID string, prefs models.FoodPreferences, limit int) (string, models.RecommendationResult, error) {
	sessionID = ensureSessionID(sessionID)

	items, err := s.menu.FetchMenu(ctx, models.TypeFood)
	if err != nil {
		return sessionID, models.RecommendationResult{}, fmt.Errorf("failed to load food menu: %w", err)
	}

	query := engine.NormalizeFood(prefs)
	result := engine.SelectTop(engine.ScoreFood(items, query), limit)

	s.logger.Debug().
		Str("session_id", sessionID).
		Int("menu_size", len(items)).
		Int("primary", len(result.Primary)).
		Int("fallback", len(result.Fallback)).
		Msg("scored food menu")

	s.recordAsync(sessionID, prefs, result)
	return sessionID, result, nil
}

// RecommendDrinks scores the drink menu with the alcohol-aware variant.
func (s *RecommendationService) RecommendDrinks(ctx context.Context, sessionID string, prefs models.DrinkPreferences, limit int) (string, models.RecommendationResult, error) {
	sessionID = ensureSessionID(sessionID)

	items, err := s.menu.FetchMenu(ctx, models.TypeDrink)
	if err != nil {
		return sessionID, models.RecommendationResult{}, fmt.Errorf("failed to load drink menu: %w", err)
	}

	query := engine.NormalizeDrink(prefs)
	result := engine.SelectTop(engine.ScoreDrinks(items, query), limit)

	s.logger.Debug().
		Str("session_id", sessionID).
		Str("strength", string(query.Strength)).
		Int("menu_size", len(items)).
		Int("primary", len(result.Primary)).
		Int("fallback", len(result.Fallback)).
		Msg("scored drink menu")

	s.recordAsync(sessionID, prefs, result)
	return sessionID, result, nil
}

// RecommendBoth runs food and drink scoring separately over one session.
func (s *RecommendationService) RecommendBoth(ctx context.Context, sessionID string, food models.FoodPreferences, drink models.DrinkPreferences, limit int) (BothResult, error) {
	sessionID = ensureSessionID(sessionID)

	sessionID, foodResult, err := s.RecommendFood(ctx, sessionID, food, limit)
	if err != nil {
		return BothResult{}, err
	}
	_, drinkResult, err := s.RecommendDrinks(ctx, sessionID, drink, limit)
	if err != nil {
		return BothResult{}, err
	}

	return BothResult{
		SessionID: sessionID,
		Food:      foodResult,
		Drink:     drinkResult,
	}, nil
}

// recordAsync writes the session and shown recommendations in the
// background. Analytics must never block or fail a recommendation response,
// so errors are logged and dropped.
func (s *RecommendationService) recordAsync(sessionID string, answers any, result models.RecommendationResult) {
	shown := shownPayload(sessionID, result)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()

		if err := s.recorder.RecordSession(ctx, sessionID, answers); err != nil {
			s.logger.Warn().Err(err).Str("session_id", sessionID).Msg("failed to record session")
			return
		}
		if err := s.recorder.RecordShown(ctx, shown); err != nil {
			s.logger.Warn().Err(err).Str("session_id", sessionID).Msg("failed to record shown recommendations")
		}
	}()
}

// shownPayload flattens a result into analytics rows: primary first in rank
// order, then fallback.
func shownPayload(sessionID string, result models.RecommendationResult) []models.ShownRecommendation {
	var shown []models.ShownRecommendation
	rank := 1
	for _, list := range [][]models.ScoredItem{result.Primary, result.Fallback} {
		for _, item := range list {
			shown = append(shown, models.ShownRecommendation{
				SessionID: sessionID,
				ItemID:    item.Item.ID,
				Rank:      rank,
				Score:     item.Score,
				Reason:    item.Reason,
			})
			rank++
		}
	}
	return shown
}

func ensureSessionID(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}
