package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ersonp/lore-oracle/internal/domain/entities"
)

// catalog implements ports.EntityCatalog over one kind of the entities table.
type catalog struct {
	db   *sql.DB
	kind entities.EntityKind
}

// ListNames returns every entity of the kind in insertion order.
func (c *catalog) ListNames(ctx context.Context) ([]entities.Entity, error) {
	query := `
		SELECT id, kind, name, description
		FROM entities
		WHERE kind = ?
		ORDER BY rowid
	`
	rows, err := c.db.QueryContext(ctx, query, string(c.kind))
	if err != nil {
		return nil, fmt.Errorf("querying %s catalog: %w", c.kind, err)
	}
	defer rows.Close()

	return scanEntities(rows)
}

// FindIDsByNames returns the ids of entities whose name equals one of names,
// ignoring ASCII case, in insertion order.
func (c *catalog) FindIDsByNames(ctx context.Context, names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}

	marks, args := placeholders(names)
	query := fmt.Sprintf(`
		SELECT id
		FROM entities
		WHERE kind = ? AND name COLLATE NOCASE IN (%s)
		ORDER BY rowid
	`, marks)

	rows, err := c.db.QueryContext(ctx, query, append([]any{string(c.kind)}, args...)...)
	if err != nil {
		return nil, fmt.Errorf("querying %s ids: %w", c.kind, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning %s id: %w", c.kind, err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanEntities(rows *sql.Rows) ([]entities.Entity, error) {
	var result []entities.Entity
	for rows.Next() {
		var e entities.Entity
		var kind string
		if err := rows.Scan(&e.ID, &kind, &e.Name, &e.Description); err != nil {
			return nil, fmt.Errorf("scanning entity: %w", err)
		}
		e.Kind = entities.EntityKind(kind)
		result = append(result, e)
	}
	return result, rows.Err()
}

// ListGenerations returns every generation in insertion order.
func (r *Repository) ListGenerations(ctx context.Context) ([]entities.Generation, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, description FROM generations ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying generations: %w", err)
	}
	defer rows.Close()

	var result []entities.Generation
	for rows.Next() {
		var g entities.Generation
		if err := rows.Scan(&g.ID, &g.Name, &g.Description); err != nil {
			return nil, fmt.Errorf("scanning generation: %w", err)
		}
		result = append(result, g)
	}
	return result, rows.Err()
}
