package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ersonp/lore-oracle/internal/domain/entities"
)

const eventColumns = `e.id, e.name, e.description, COALESCE(e.place_id, ''), COALESCE(e.generation_id, '')`

// ListSummaries returns id, name and description of every event in
// insertion order.
func (r *Repository) ListSummaries(ctx context.Context) ([]entities.EventSummary, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, description FROM events ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying event summaries: %w", err)
	}
	defer rows.Close()

	var result []entities.EventSummary
	for rows.Next() {
		var s entities.EventSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Description); err != nil {
			return nil, fmt.Errorf("scanning event summary: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// Query returns the populated events accepted by filter. Character and place
// groups are evaluated in SQL; the phrase group is applied to the candidates
// afterwards. An empty filter returns no events.
func (r *Repository) Query(ctx context.Context, filter entities.EventFilter) ([]entities.Event, error) {
	if filter.IsEmpty() {
		return []entities.Event{}, nil
	}

	var where []string
	var args []any

	if len(filter.CharacterIDs) > 0 {
		marks, ids := placeholders(filter.CharacterIDs)
		where = append(where, fmt.Sprintf(
			"e.id IN (SELECT event_id FROM event_characters WHERE character_id IN (%s))", marks))
		args = append(args, ids...)
	}
	if len(filter.PlaceIDs) > 0 {
		marks, ids := placeholders(filter.PlaceIDs)
		where = append(where, fmt.Sprintf("e.place_id IN (%s)", marks))
		args = append(args, ids...)
	}

	query := `SELECT ` + eventColumns + ` FROM events e`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY e.rowid`

	candidates, err := r.queryEvents(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	result := make([]entities.Event, 0, len(candidates))
	for i := range candidates {
		if filter.MatchesText(candidates[i]) {
			result = append(result, candidates[i])
		}
	}

	if err := r.populate(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

// FindByID returns the populated event, or nil if it does not exist.
func (r *Repository) FindByID(ctx context.Context, id string) (*entities.Event, error) {
	events, err := r.queryEvents(ctx, `SELECT `+eventColumns+` FROM events e WHERE e.id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, nil
	}
	if err := r.populate(ctx, events); err != nil {
		return nil, err
	}
	return &events[0], nil
}

// ListEvents returns every populated event in insertion order.
func (r *Repository) ListEvents(ctx context.Context) ([]entities.Event, error) {
	events, err := r.queryEvents(ctx, `SELECT `+eventColumns+` FROM events e ORDER BY e.rowid`)
	if err != nil {
		return nil, err
	}
	if err := r.populate(ctx, events); err != nil {
		return nil, err
	}
	return events, nil
}

// FindByNumber returns the chapter with its events in narration order, or
// nil if no chapter has that number.
func (r *Repository) FindByNumber(ctx context.Context, number int) (*entities.Chapter, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT number FROM chapters WHERE number = ?`, number).Scan(&n)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning chapter: %w", err)
	}

	query := `
		SELECT ` + eventColumns + `
		FROM chapter_events ce
		JOIN events e ON e.id = ce.event_id
		WHERE ce.chapter_number = ?
		ORDER BY ce.position
	`
	events, err := r.queryEvents(ctx, query, number)
	if err != nil {
		return nil, err
	}
	if err := r.populate(ctx, events); err != nil {
		return nil, err
	}

	chapter := &entities.Chapter{Number: n, EventIDs: make([]string, len(events)), Events: events}
	for i := range events {
		chapter.EventIDs[i] = events[i].ID
	}
	return chapter, nil
}

// ListChapterNumbers returns every chapter number in ascending order.
func (r *Repository) ListChapterNumbers(ctx context.Context) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT number FROM chapters ORDER BY number`)
	if err != nil {
		return nil, fmt.Errorf("querying chapters: %w", err)
	}
	defer rows.Close()

	var numbers []int
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scanning chapter: %w", err)
		}
		numbers = append(numbers, n)
	}
	return numbers, rows.Err()
}

// queryEvents scans event rows without their relations. Rows are closed
// before returning so callers can issue further queries on a single
// connection.
func (r *Repository) queryEvents(ctx context.Context, query string, args ...any) ([]entities.Event, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer rows.Close()

	result := []entities.Event{}
	for rows.Next() {
		var e entities.Event
		if err := rows.Scan(&e.ID, &e.Name, &e.Description, &e.PlaceID, &e.GenerationID); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// populate fills character ids and the Characters, Place and Generation
// fields of events.
func (r *Repository) populate(ctx context.Context, events []entities.Event) error {
	if len(events) == 0 {
		return nil
	}

	index := make(map[string]int, len(events))
	ids := make([]string, len(events))
	for i := range events {
		index[events[i].ID] = i
		ids[i] = events[i].ID
		events[i].CharacterIDs = []string{}
		events[i].Characters = []entities.Entity{}
	}

	marks, args := placeholders(ids)
	query := fmt.Sprintf(`
		SELECT ec.event_id, c.id, c.kind, c.name, c.description
		FROM event_characters ec
		JOIN entities c ON c.id = ec.character_id
		WHERE ec.event_id IN (%s)
		ORDER BY ec.event_id, ec.position
	`, marks)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("querying event characters: %w", err)
	}
	for rows.Next() {
		var eventID, kind string
		var c entities.Entity
		if err := rows.Scan(&eventID, &c.ID, &kind, &c.Name, &c.Description); err != nil {
			rows.Close()
			return fmt.Errorf("scanning event character: %w", err)
		}
		c.Kind = entities.EntityKind(kind)
		e := &events[index[eventID]]
		e.CharacterIDs = append(e.CharacterIDs, c.ID)
		e.Characters = append(e.Characters, c)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return fmt.Errorf("reading event characters: %w", err)
	}

	places, err := r.entitiesByID(ctx, collect(events, func(e *entities.Event) string { return e.PlaceID }))
	if err != nil {
		return err
	}
	generations, err := r.generationsByID(ctx, collect(events, func(e *entities.Event) string { return e.GenerationID }))
	if err != nil {
		return err
	}

	for i := range events {
		if p, ok := places[events[i].PlaceID]; ok {
			events[i].Place = &p
		}
		if g, ok := generations[events[i].GenerationID]; ok {
			events[i].Generation = &g
		}
	}
	return nil
}

// collect returns the distinct non-empty values of field over events.
func collect(events []entities.Event, field func(*entities.Event) string) []string {
	seen := make(map[string]bool)
	var out []string
	for i := range events {
		v := field(&events[i])
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func (r *Repository) entitiesByID(ctx context.Context, ids []string) (map[string]entities.Entity, error) {
	result := make(map[string]entities.Entity, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	marks, args := placeholders(ids)
	rows, err := r.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT id, kind, name, description FROM entities WHERE id IN (%s)`, marks), args...)
	if err != nil {
		return nil, fmt.Errorf("querying entities: %w", err)
	}
	defer rows.Close()

	list, err := scanEntities(rows)
	if err != nil {
		return nil, err
	}
	for _, e := range list {
		result[e.ID] = e
	}
	return result, nil
}

func (r *Repository) generationsByID(ctx context.Context, ids []string) (map[string]entities.Generation, error) {
	result := make(map[string]entities.Generation, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	marks, args := placeholders(ids)
	rows, err := r.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT id, name, description FROM generations WHERE id IN (%s)`, marks), args...)
	if err != nil {
		return nil, fmt.Errorf("querying generations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var g entities.Generation
		if err := rows.Scan(&g.ID, &g.Name, &g.Description); err != nil {
			return nil, fmt.Errorf("scanning generation: %w", err)
		}
		result[g.ID] = g
	}
	return result, rows.Err()
}
