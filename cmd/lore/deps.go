package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ersonp/lore-oracle/internal/application/handlers"
	"github.com/ersonp/lore-oracle/internal/domain/entities"
	"github.com/ersonp/lore-oracle/internal/domain/nlp"
	"github.com/ersonp/lore-oracle/internal/domain/services"
	"github.com/ersonp/lore-oracle/internal/infrastructure/config"
	"github.com/ersonp/lore-oracle/internal/infrastructure/logging"
	"github.com/ersonp/lore-oracle/internal/infrastructure/relationaldb/sqlite"
)

// Deps holds high-level dependencies for commands.
// Only handlers are exposed - services and repositories are internal.
type Deps struct {
	Config          *config.Config
	Logger          *zap.Logger
	Lexicon         entities.IntentLexicon
	QuestionHandler *handlers.QuestionHandler
	SearchHandler   *handlers.SearchHandler
	ImportHandler   *handlers.ImportHandler
	CatalogHandler  *handlers.CatalogHandler
}

// withDeps loads config, opens the selected world's database and builds
// dependencies, then calls the provided function. It handles cleanup
// automatically.
func withDeps(ctx context.Context, fn func(*Deps) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	worlds, err := config.LoadWorlds(cwd)
	if err != nil {
		return fmt.Errorf("loading worlds: %w", err)
	}

	if globalWorld == "" {
		return errors.New("world is required (use --world flag)")
	}

	world, err := worlds.Get(globalWorld)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	logger = logger.With(zap.String("world", globalWorld))

	lexicon, err := resolveLexicon(cwd, cfg, world)
	if err != nil {
		return err
	}

	classifier, err := nlp.NewIntentClassifier(lexicon)
	if err != nil {
		return fmt.Errorf("compiling lexicon: %w", err)
	}

	repo, err := openWorldDB(ctx, cwd, cfg, globalWorld)
	if err != nil {
		return err
	}
	defer repo.Close()

	analysisCatalogs := repo.Catalogs(cfg.Analysis.ObjectsOn())
	allCatalogs := repo.Catalogs(true)

	analyzer := services.NewQueryAnalyzer(analysisCatalogs, repo, classifier, nlp.NewFuzzyMatcher(cfg.Analysis.FuzzyThreshold), logger)
	resolver := services.NewResolver(analysisCatalogs, repo, repo, classifier, logger)

	deps := &Deps{
		Config:          cfg,
		Logger:          logger,
		Lexicon:         lexicon,
		QuestionHandler: handlers.NewQuestionHandler(services.NewQuestionService(analyzer, resolver)),
		SearchHandler:   handlers.NewSearchHandler(services.NewSearchService(allCatalogs, repo, repo)),
		ImportHandler:   handlers.NewImportHandler(services.NewImportService(repo, allCatalogs, repo, logger)),
		CatalogHandler:  handlers.NewCatalogHandler(allCatalogs, repo, repo, repo),
	}

	return fn(deps)
}

// openWorldDB opens the world's database, creating its directory and schema
// on first use.
func openWorldDB(ctx context.Context, cwd string, cfg *config.Config, world string) (*sqlite.Repository, error) {
	path := cfg.DatabasePath(cwd, world)
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	repo, err := sqlite.NewRepository(config.SQLiteConfig{Path: path})
	if err != nil {
		return nil, fmt.Errorf("creating sqlite repository: %w", err)
	}

	if err := repo.EnsureSchema(ctx); err != nil {
		repo.Close()
		return nil, fmt.Errorf("ensuring sqlite schema: %w", err)
	}

	return repo, nil
}

// resolveLexicon picks the world's lexicon, then the configured one, then
// the built-in lexicon. Relative paths are resolved against cwd.
func resolveLexicon(cwd string, cfg *config.Config, world *config.WorldEntry) (entities.IntentLexicon, error) {
	path := cfg.Analysis.LexiconFile
	if world != nil && world.Lexicon != "" {
		path = world.Lexicon
	}
	if path != "" && !filepath.IsAbs(path) {
		path = filepath.Join(cwd, path)
	}

	lexicon, err := config.LoadLexicon(path)
	if err != nil {
		return entities.IntentLexicon{}, fmt.Errorf("loading lexicon: %w", err)
	}
	return lexicon, nil
}
