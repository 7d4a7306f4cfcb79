package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/Justusveijk/mesa-eatsight-sub000/internal/models"
	"github.com/Justusveijk/mesa-eatsight-sub000/internal/taxonomy"
)

// MenuStore persists menu items and their tags. The scoring engine never
// talks to it directly; services fetch the full eligible item set once per
// request and hand it over.
type MenuStore struct {
	client *Neo4jClient
}

// NewMenuStore creates a menu store backed by the given client.
func NewMenuStore(client *Neo4jClient) *MenuStore {
	return &MenuStore{client: client}
}

// FetchMenu returns all items of the given type with their tags. Availability
// is returned as-is: the engine does its own servability filtering so import
// counts and diagnostics stay accurate.
func (s *MenuStore) FetchMenu(ctx context.Context, itemType models.ItemType) ([]models.MenuItem, error) {
	query := `
		MATCH (i:Item {type: $type})
		OPTIONAL MATCH (i)-[:TAGGED]->(t:Tag)
		WITH i, collect(t.id) AS tags
		RETURN i.id AS id,
			   i.name AS name,
			   i.description AS description,
			   i.price AS price,
			   i.category AS category,
			   i.type AS type,
			   i.popularity AS popularity,
			   i.is_push AS is_push,
			   i.is_available AS is_available,
			   i.is_out_of_stock AS is_out_of_stock,
			   tags
		ORDER BY i.name
	`

	params := map[string]any{
		"type": string(itemType),
	}

	results, err := s.client.ExecuteRead(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch menu: %w", err)
	}

	var items []models.MenuItem
	for _, result := range results {
		items = append(items, itemFromRecord(result))
	}
	return items, nil
}

// SaveImportedRows persists the valid rows of an import run. Invalid rows
// never reach the store; rows missing required tag categories are saved
// flagged for review. Existing items with the same name are replaced. Each
// row is upserted together with its tags in one transaction.
func (s *MenuStore) SaveImportedRows(ctx context.Context, rows []models.ImportRow) (int, error) {
	saved := 0
	for _, row := range rows {
		if !row.IsValid {
			continue
		}

		_, err := s.client.ExecuteWriteTransaction(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
			query := `
				MERGE (i:Item {name: $name, type: $type})
				ON CREATE SET i.id = $id, i.popularity = 0
				SET i.description = $description,
					i.price = $price,
					i.category = $category,
					i.is_push = false,
					i.is_available = true,
					i.is_out_of_stock = false,
					i.needs_review = $needsReview
				RETURN i.id AS id
			`

			params := map[string]any{
				"id":          uuid.NewString(),
				"name":        row.Name,
				"type":        string(row.Type),
				"description": row.Description,
				"price":       row.Price,
				"category":    row.Category,
				"needsReview": !row.Ready(),
			}

			result, err := tx.Run(ctx, query, params)
			if err != nil {
				return nil, err
			}
			record, err := result.Single(ctx)
			if err != nil {
				return nil, err
			}
			id, _ := record.Values[0].(string)

			return nil, replaceTagsTx(ctx, tx, id, row.Tags)
		})
		if err != nil {
			return saved, fmt.Errorf("failed to save imported row %q: %w", row.Name, err)
		}
		saved++
	}
	return saved, nil
}

// ReplaceTags swaps an item's tag set wholesale. Tag edits are
// delete-then-insert, never an incremental diff, so a save always leaves the
// item with exactly the tags given.
func (s *MenuStore) ReplaceTags(ctx context.Context, itemID string, tags []taxonomy.Tag) error {
	_, err := s.client.ExecuteWriteTransaction(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return nil, replaceTagsTx(ctx, tx, itemID, tags)
	})
	if err != nil {
		return fmt.Errorf("failed to replace tags for item %s: %w", itemID, err)
	}
	return nil
}

func replaceTagsTx(ctx context.Context, tx neo4j.ManagedTransaction, itemID string, tags []taxonomy.Tag) error {
	deleteQuery := `
		MATCH (i:Item {id: $itemId})-[r:TAGGED]->(:Tag)
		DELETE r
	`
	if _, err := tx.Run(ctx, deleteQuery, map[string]any{"itemId": itemID}); err != nil {
		return err
	}

	insertQuery := `
		MATCH (i:Item {id: $itemId})
		UNWIND $tags AS tag
		MERGE (t:Tag {id: tag.id})
		SET t.category = tag.category
		MERGE (i)-[:TAGGED]->(t)
	`
	tagParams := make([]map[string]any, 0, len(tags))
	for _, t := range tags {
		c, _ := taxonomy.CategoryOf(t)
		tagParams = append(tagParams, map[string]any{
			"id":       string(t),
			"category": string(c),
		})
	}
	_, err := tx.Run(ctx, insertQuery, map[string]any{
		"itemId": itemID,
		"tags":   tagParams,
	})
	return err
}

// BumpPopularity increments an item's popularity counter. Popularity is
// maintained here, outside the scoring engine, which only reads it.
func (s *MenuStore) BumpPopularity(ctx context.Context, itemID string) error {
	query := `
		MATCH (i:Item {id: $itemId})
		SET i.popularity = COALESCE(i.popularity, 0) + 1
	`

	params := map[string]any{
		"itemId": itemID,
	}

	if err := s.client.ExecuteWrite(ctx, query, params); err != nil {
		return fmt.Errorf("failed to bump popularity for item %s: %w", itemID, err)
	}
	return nil
}

func itemFromRecord(record map[string]any) models.MenuItem {
	item := models.MenuItem{
		ID:          stringValue(record["id"]),
		Name:        stringValue(record["name"]),
		Description: stringValue(record["description"]),
		Category:    stringValue(record["category"]),
		Type:        models.ItemType(stringValue(record["type"])),
		IsPush:      boolValue(record["is_push"]),
		IsAvailable: boolValue(record["is_available"]),
		OutOfStock:  boolValue(record["is_out_of_stock"]),
	}
	if price, ok := record["price"].(float64); ok {
		item.Price = price
	}
	if pop, ok := record["popularity"].(int64); ok {
		item.Popularity = int(pop)
	}
	if raw, ok := record["tags"].([]any); ok {
		for _, v := range raw {
			if t, ok := taxonomy.Parse(stringValue(v)); ok {
				item.Tags = append(item.Tags, t)
			}
		}
	}
	return item
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

func boolValue(v any) bool {
	b, _ := v.(bool)
	return b
}
