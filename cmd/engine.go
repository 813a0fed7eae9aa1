package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pokeprice/engine/internal/config"
	"github.com/pokeprice/engine/internal/domain/pricing"
	"github.com/pokeprice/engine/internal/domain/reconcile"
	"github.com/pokeprice/engine/internal/domain/search"
	"github.com/pokeprice/engine/internal/domain/selection"
	"github.com/pokeprice/engine/internal/gateways/database"
	"github.com/pokeprice/engine/internal/gateways/database/repositories"
	"github.com/pokeprice/engine/internal/workpool"
)

// engine is the wired object graph shared by the subcommands.
type engine struct {
	db           *database.DB
	cards        *repositories.CardRepository
	criteria     *repositories.SearchCriteriaRepository
	priceRecords *repositories.RecordRepository
	openListings *repositories.RecordRepository
	lifecycle    *search.Lifecycle
	reconciler   *reconcile.Reconciler
	pricing      *pricing.Service
	pool         *workpool.Pool
}

func newEngine(ctx context.Context, cfg *config.Config) (*engine, error) {
	start := time.Now()
	db, err := database.New(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("database connection failed after %s: %w", time.Since(start).Round(time.Millisecond), err)
	}
	if err := db.InitializeSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	slog.Info("Database ready",
		slog.String("type", "db"),
		slog.String("database", cfg.DB.Database),
		slog.Duration("took", time.Since(start)),
	)

	bunDB := db.BunDB()
	e := &engine{
		db:           db,
		cards:        repositories.NewCardRepository(bunDB),
		criteria:     repositories.NewSearchCriteriaRepository(bunDB),
		priceRecords: repositories.NewPriceRecordRepository(bunDB),
		openListings: repositories.NewOpenListingRepository(bunDB),
		pool:         workpool.New(cfg.Engine.Workers),
	}

	matchers, err := search.NewMatcherCache(cfg.Engine.MatcherCacheSize)
	if err != nil {
		db.Close()
		return nil, err
	}

	syncer := selection.NewSyncer(e.criteria, repositories.NewSelectionRepository(bunDB))
	e.lifecycle = search.NewLifecycle(e.criteria, syncer, cfg.Search.BaseURL)
	e.reconciler = reconcile.New(e.criteria,
		[]reconcile.RecordSource{e.priceRecords, e.openListings},
		reconcile.WithBatchSize(cfg.Engine.BatchSize),
		reconcile.WithListingSources(cfg.Engine.ListingSourceTypes...),
		reconcile.WithMatcherCache(matchers),
	)
	e.pricing = pricing.NewService(repositories.NewAggregateRepository(bunDB), cfg.Engine.VolumeFloor)
	return e, nil
}

func (e *engine) Close() {
	e.db.Close()
}
