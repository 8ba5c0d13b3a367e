package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ersonp/lore-oracle/internal/domain/entities"
	"github.com/ersonp/lore-oracle/internal/domain/ports"
	"github.com/ersonp/lore-oracle/internal/domain/textnorm"
	"github.com/ersonp/lore-oracle/internal/infrastructure/parsers"
)

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun bool // Validate without saving
}

// ImportError represents an error for a specific record during import.
type ImportError struct {
	Record  string // Collection and index, e.g. "events[2]"
	Field   string // Which field has the error
	Value   string // The invalid value
	Message string // Human-readable error message
}

func (e ImportError) Error() string {
	if e.Record != "" {
		return fmt.Sprintf("%s: %s", e.Record, e.Message)
	}
	return e.Message
}

// ImportResult contains the result of an import operation.
type ImportResult struct {
	Imported int
	Skipped  int
	Errors   []ImportError
}

// ImportService loads narrative datasets into storage.
type ImportService struct {
	writer   ports.DatasetWriter
	catalogs ports.Catalogs
	events   ports.EventStore
	logger   *zap.Logger
}

// NewImportService creates a new import service. catalogs and events resolve
// references to records stored by an earlier import; events may be nil.
func NewImportService(writer ports.DatasetWriter, catalogs ports.Catalogs, events ports.EventStore, logger *zap.Logger) *ImportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportService{
		writer:   writer,
		catalogs: catalogs,
		events:   events,
		logger:   logger,
	}
}

// refIndex resolves references by id or by case and accent insensitive name.
type refIndex struct {
	ids    map[string]bool
	byName map[string]string
}

func newRefIndex() *refIndex {
	return &refIndex{ids: make(map[string]bool), byName: make(map[string]string)}
}

func (x *refIndex) add(id, name string) {
	x.ids[id] = true
	key := textnorm.CleanOnly(strings.TrimSpace(name))
	if _, ok := x.byName[key]; !ok {
		x.byName[key] = id
	}
}

func (x *refIndex) resolve(ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if x.ids[ref] {
		return ref, true
	}
	id, ok := x.byName[textnorm.CleanOnly(ref)]
	return id, ok
}

// importPlan holds validated records ready to be saved.
type importPlan struct {
	entities    []entities.Entity
	generations []entities.Generation
	events      []entities.Event
	chapters    []entities.Chapter
}

func (p *importPlan) size() int {
	return len(p.entities) + len(p.generations) + len(p.events) + len(p.chapters)
}

// Import validates the dataset, resolves references between its records and
// saves everything that is valid. Invalid records are reported in the result
// and skipped; they never abort the import.
func (s *ImportService) Import(ctx context.Context, ds *parsers.Dataset, opts ImportOptions) (*ImportResult, error) {
	if ds == nil {
		return nil, fmt.Errorf("nil dataset: %w", ErrInvalidInput)
	}

	result := &ImportResult{}
	plan := &importPlan{}

	refs := map[entities.EntityKind]*refIndex{
		entities.KindCharacter: newRefIndex(),
		entities.KindPlace:     newRefIndex(),
		entities.KindObject:    newRefIndex(),
	}
	s.planEntities(entities.KindCharacter, "characters", ds.Characters, refs, plan, result)
	s.planEntities(entities.KindPlace, "places", ds.Places, refs, plan, result)
	s.planEntities(entities.KindObject, "objects", ds.Objects, refs, plan, result)

	generations := s.planGenerations(ds.Generations, plan, result)

	events, err := s.planEvents(ctx, ds.Events, refs, generations, plan, result)
	if err != nil {
		return nil, err
	}

	if err := s.planChapters(ctx, ds.Chapters, events, plan, result); err != nil {
		return nil, err
	}

	if opts.DryRun {
		result.Imported = plan.size()
		return result, nil
	}

	if err := s.save(ctx, plan); err != nil {
		return nil, fmt.Errorf("saving dataset: %w", err)
	}
	result.Imported = plan.size()

	s.logger.Info("dataset imported",
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped),
	)

	return result, nil
}

func (s *ImportService) planEntities(kind entities.EntityKind, collection string, raws []parsers.RawEntity, refs map[entities.EntityKind]*refIndex, plan *importPlan, result *ImportResult) {
	for i := range raws {
		raw := &raws[i]
		record := fmt.Sprintf("%s[%d]", collection, i)

		name := strings.TrimSpace(raw.Name)
		if name == "" {
			result.reject(record, "name", "", "missing required field: name")
			continue
		}

		id := idOrNew(raw.ID)
		refs[kind].add(id, name)
		plan.entities = append(plan.entities, entities.Entity{
			ID:          id,
			Kind:        kind,
			Name:        name,
			Description: strings.TrimSpace(raw.Description),
		})
	}
}

func (s *ImportService) planGenerations(raws []parsers.RawGeneration, plan *importPlan, result *ImportResult) *refIndex {
	idx := newRefIndex()
	for i := range raws {
		raw := &raws[i]
		name := strings.TrimSpace(raw.Name)
		if name == "" {
			result.reject(fmt.Sprintf("generations[%d]", i), "name", "", "missing required field: name")
			continue
		}

		id := idOrNew(raw.ID)
		idx.add(id, name)
		plan.generations = append(plan.generations, entities.Generation{
			ID:          id,
			Name:        name,
			Description: strings.TrimSpace(raw.Description),
		})
	}
	return idx
}

func (s *ImportService) planEvents(ctx context.Context, raws []parsers.RawEvent, refs map[entities.EntityKind]*refIndex, generations *refIndex, plan *importPlan, result *ImportResult) (*refIndex, error) {
	idx := newRefIndex()

	for i := range raws {
		raw := &raws[i]
		record := fmt.Sprintf("events[%d]", i)

		name := strings.TrimSpace(raw.Name)
		if name == "" {
			result.reject(record, "name", "", "missing required field: name")
			continue
		}

		event := entities.Event{
			ID:          idOrNew(raw.ID),
			Name:        name,
			Description: strings.TrimSpace(raw.Description),
		}

		valid := true
		for _, ref := range raw.Characters {
			id, err := s.resolveEntity(ctx, s.catalogs.Characters, refs[entities.KindCharacter], ref)
			if err != nil {
				return nil, err
			}
			if id == "" {
				result.reject(record, "characters", ref, fmt.Sprintf("unknown character %q", ref))
				valid = false
				break
			}
			event.CharacterIDs = appendUnique(event.CharacterIDs, id)
		}
		if !valid {
			continue
		}

		if raw.Place != "" {
			id, err := s.resolveEntity(ctx, s.catalogs.Places, refs[entities.KindPlace], raw.Place)
			if err != nil {
				return nil, err
			}
			if id == "" {
				result.reject(record, "place", raw.Place, fmt.Sprintf("unknown place %q", raw.Place))
				continue
			}
			event.PlaceID = id
		}

		if raw.Generation != "" {
			id, ok := generations.resolve(raw.Generation)
			if !ok {
				result.reject(record, "generation", raw.Generation, fmt.Sprintf("unknown generation %q", raw.Generation))
				continue
			}
			event.GenerationID = id
		}

		idx.add(event.ID, event.Name)
		plan.events = append(plan.events, event)
	}

	return idx, nil
}

func (s *ImportService) planChapters(ctx context.Context, raws []parsers.RawChapter, events *refIndex, plan *importPlan, result *ImportResult) error {
	seen := make(map[int]bool)
	var stored *refIndex

	for i := range raws {
		raw := &raws[i]
		record := fmt.Sprintf("chapters[%d]", i)

		if raw.Number <= 0 {
			result.reject(record, "number", fmt.Sprint(raw.Number), "chapter number must be positive")
			continue
		}
		if seen[raw.Number] {
			result.reject(record, "number", fmt.Sprint(raw.Number), "duplicate chapter number")
			continue
		}

		chapter := entities.Chapter{Number: raw.Number, EventIDs: []string{}}
		valid := true
		for _, ref := range raw.Events {
			id, ok := events.resolve(ref)
			if !ok && s.events != nil {
				if stored == nil {
					var err error
					if stored, err = s.storedEvents(ctx); err != nil {
						return err
					}
				}
				id, ok = stored.resolve(ref)
			}
			if !ok {
				result.reject(record, "events", ref, fmt.Sprintf("unknown event %q", ref))
				valid = false
				break
			}
			chapter.EventIDs = appendUnique(chapter.EventIDs, id)
		}
		if !valid {
			continue
		}

		seen[raw.Number] = true
		plan.chapters = append(plan.chapters, chapter)
	}
	return nil
}

// storedEvents indexes the events already in storage by id and name.
func (s *ImportService) storedEvents(ctx context.Context) (*refIndex, error) {
	summaries, err := s.events.ListSummaries(ctx)
	if err != nil {
		return nil, storageErr("listing stored events", err)
	}
	idx := newRefIndex()
	for _, e := range summaries {
		idx.add(e.ID, e.Name)
	}
	return idx, nil
}

// resolveEntity looks a reference up in the dataset first, then by name in
// storage. An empty id means the reference is unknown.
func (s *ImportService) resolveEntity(ctx context.Context, catalog ports.EntityCatalog, idx *refIndex, ref string) (string, error) {
	if id, ok := idx.resolve(ref); ok {
		return id, nil
	}
	if catalog == nil {
		return "", nil
	}

	ids, err := catalog.FindIDsByNames(ctx, []string{strings.TrimSpace(ref)})
	if err != nil {
		return "", storageErr("resolving reference", err)
	}
	if len(ids) == 0 {
		return "", nil
	}
	return ids[0], nil
}

func (s *ImportService) save(ctx context.Context, plan *importPlan) error {
	for i := range plan.entities {
		if err := s.writer.SaveEntity(ctx, &plan.entities[i]); err != nil {
			return storageErr("saving entity", err)
		}
	}
	for i := range plan.generations {
		if err := s.writer.SaveGeneration(ctx, &plan.generations[i]); err != nil {
			return storageErr("saving generation", err)
		}
	}
	for i := range plan.events {
		if err := s.writer.SaveEvent(ctx, &plan.events[i]); err != nil {
			return storageErr("saving event", err)
		}
	}
	for i := range plan.chapters {
		if err := s.writer.SaveChapter(ctx, &plan.chapters[i]); err != nil {
			return storageErr("saving chapter", err)
		}
	}
	return nil
}

func (r *ImportResult) reject(record, field, value, message string) {
	r.Skipped++
	r.Errors = append(r.Errors, ImportError{Record: record, Field: field, Value: value, Message: message})
}

func idOrNew(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return uuid.New().String()
	}
	return id
}

func appendUnique(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}
