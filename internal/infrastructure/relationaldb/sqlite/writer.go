package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ersonp/lore-oracle/internal/domain/entities"
)

// SaveEntity saves or updates an entity.
func (r *Repository) SaveEntity(ctx context.Context, entity *entities.Entity) error {
	if !entity.Kind.IsValid() {
		return fmt.Errorf("saving entity %s: invalid kind %q", entity.ID, entity.Kind)
	}

	query := `
		INSERT INTO entities (id, kind, name, description)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			kind = excluded.kind,
			name = excluded.name,
			description = excluded.description
	`
	_, err := r.db.ExecContext(ctx, query,
		entity.ID,
		string(entity.Kind),
		entity.Name,
		entity.Description,
	)
	if err != nil {
		return fmt.Errorf("saving entity: %w", err)
	}
	return nil
}

// SaveGeneration saves or updates a generation.
func (r *Repository) SaveGeneration(ctx context.Context, generation *entities.Generation) error {
	query := `
		INSERT INTO generations (id, name, description)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description
	`
	_, err := r.db.ExecContext(ctx, query, generation.ID, generation.Name, generation.Description)
	if err != nil {
		return fmt.Errorf("saving generation: %w", err)
	}
	return nil
}

// SaveEvent saves or updates an event and replaces its character list.
func (r *Repository) SaveEvent(ctx context.Context, event *entities.Event) error {
	return r.withTx(ctx, "saving event", func(tx *sql.Tx) error {
		query := `
			INSERT INTO events (id, name, description, place_id, generation_id)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				name = excluded.name,
				description = excluded.description,
				place_id = excluded.place_id,
				generation_id = excluded.generation_id
		`
		if _, err := tx.ExecContext(ctx, query,
			event.ID,
			event.Name,
			event.Description,
			nullable(event.PlaceID),
			nullable(event.GenerationID),
		); err != nil {
			return fmt.Errorf("upserting event: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM event_characters WHERE event_id = ?`, event.ID); err != nil {
			return fmt.Errorf("clearing event characters: %w", err)
		}
		for i, id := range event.CharacterIDs {
			if _, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO event_characters (event_id, character_id, position) VALUES (?, ?, ?)`,
				event.ID, id, i,
			); err != nil {
				return fmt.Errorf("linking character %s: %w", id, err)
			}
		}
		return nil
	})
}

// SaveChapter saves a chapter and replaces its event list.
func (r *Repository) SaveChapter(ctx context.Context, chapter *entities.Chapter) error {
	return r.withTx(ctx, "saving chapter", func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO chapters (number) VALUES (?) ON CONFLICT(number) DO NOTHING`, chapter.Number,
		); err != nil {
			return fmt.Errorf("upserting chapter: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM chapter_events WHERE chapter_number = ?`, chapter.Number); err != nil {
			return fmt.Errorf("clearing chapter events: %w", err)
		}
		for i, id := range chapter.EventIDs {
			if _, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO chapter_events (chapter_number, event_id, position) VALUES (?, ?, ?)`,
				chapter.Number, id, i,
			); err != nil {
				return fmt.Errorf("linking event %s: %w", id, err)
			}
		}
		return nil
	})
}

// withTx runs fn in a transaction, rolling back on error.
func (r *Repository) withTx(ctx context.Context, op string, fn func(*sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: beginning transaction: %w", op, err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: committing: %w", op, err)
	}
	return nil
}
