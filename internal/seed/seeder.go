package seed

import (
	"context"
	"fmt"

	"handi-menu/internal/model"
	"handi-menu/internal/repository"

	"github.com/rs/zerolog"
)

// Result summarises one seeding run.
type Result struct {
	Loaded   int
	Skipped  int
	Upserted int
}

// Seeder writes a seed catalog into the menu store.
type Seeder struct {
	loader Loader
	repo   repository.MenuRepository
	logger zerolog.Logger
}

// NewSeeder creates a seeder that reads with loader and writes to repo.
func NewSeeder(loader Loader, repo repository.MenuRepository, logger zerolog.Logger) *Seeder {
	return &Seeder{
		loader: loader,
		repo:   repo,
		logger: logger.With().Str("component", "seeder").Logger(),
	}
}

// Run loads path and upserts every valid item. Invalid items are skipped.
func (s *Seeder) Run(ctx context.Context, path string) (Result, error) {
	catalog, err := s.loader.Load(ctx, path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load seed catalog: %w", err)
	}

	result := Result{Loaded: catalog.Size()}

	valid := make([]model.MenuItem, 0, catalog.Size())
	for _, item := range catalog.Items() {
		if err := item.Validate(); err != nil {
			s.logger.Warn().Err(err).Str("item_id", item.ID).Msg("invalid seed item skipped")
			result.Skipped++
			continue
		}
		valid = append(valid, item)
	}

	n, err := s.repo.Upsert(ctx, valid)
	result.Upserted = n
	if err != nil {
		return result, fmt.Errorf("failed to upsert seed catalog: %w", err)
	}

	s.logger.Info().
		Int("loaded", result.Loaded).
		Int("skipped", result.Skipped).
		Int("upserted", result.Upserted).
		Msg("menu seeded")

	return result, nil
}
