package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Justusveijk/mesa-eatsight-sub000/internal/models"
)

// EventRecorder persists questionnaire sessions and shown recommendations
// for the analytics dashboard. Writes are fire-and-forget from the caller's
// perspective; nothing here ever influences scoring.
type EventRecorder struct {
	client *Neo4jClient
}

// NewEventRecorder creates an event recorder backed by the given client.
func NewEventRecorder(client *Neo4jClient) *EventRecorder {
	return &EventRecorder{client: client}
}

// RecordSession stores one guest questionnaire session with its raw answers.
func (r *EventRecorder) RecordSession(ctx context.Context, sessionID string, answers any) error {
	payload, err := json.Marshal(answers)
	if err != nil {
		return fmt.Errorf("failed to encode session answers: %w", err)
	}

	query := `
		MERGE (s:GuestSession {id: $sessionId})
		SET s.answers_json = $answers,
			s.created_at = datetime($createdAt)
	`

	params := map[string]any{
		"sessionId": sessionID,
		"answers":   string(payload),
		"createdAt": time.Now().UTC().Format(time.RFC3339),
	}

	if err := r.client.ExecuteWrite(ctx, query, params); err != nil {
		return fmt.Errorf("failed to record session %s: %w", sessionID, err)
	}
	return nil
}

// RecordShown stores the recommendations a guest was shown, one relationship
// per item with its rank, score and reason.
func (r *EventRecorder) RecordShown(ctx context.Context, shown []models.ShownRecommendation) error {
	if len(shown) == 0 {
		return nil
	}

	query := `
		UNWIND $shown AS row
		MATCH (s:GuestSession {id: row.sessionId})
		MATCH (i:Item {id: row.itemId})
		MERGE (s)-[w:WAS_SHOWN]->(i)
		SET w.rank = row.rank,
			w.score = row.score,
			w.reason = row.reason
	`

	rows := make([]map[string]any, 0, len(shown))
	for _, s := range shown {
		rows = append(rows, map[string]any{
			"sessionId": s.SessionID,
			"itemId":    s.ItemID,
			"rank":      s.Rank,
			"score":     s.Score,
			"reason":    s.Reason,
		})
	}

	if err := r.client.ExecuteWrite(ctx, query, map[string]any{"shown": rows}); err != nil {
		return fmt.Errorf("failed to record shown recommendations: %w", err)
	}
	return nil
}

// RecordEvent stores an arbitrary analytics event.
func (r *EventRecorder) RecordEvent(ctx context.Context, event models.Event) error {
	payload, err := json.Marshal(event.Props)
	if err != nil {
		return fmt.Errorf("failed to encode event props: %w", err)
	}

	createdAt := event.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	query := `
		CREATE (e:Event {
			name: $name,
			props_json: $props,
			created_at: datetime($createdAt)
		})
	`

	params := map[string]any{
		"name":      event.Name,
		"props":     string(payload),
		"createdAt": createdAt.Format(time.RFC3339),
	}

	if err := r.client.ExecuteWrite(ctx, query, params); err != nil {
		return fmt.Errorf("failed to record event %q: %w", event.Name, err)
	}
	return nil
}
