package service

import (
	"context"
	"fmt"

	"handi-menu/internal/model"
	"handi-menu/internal/repository"

	"github.com/rs/zerolog"
)

// statsService implements StatsService.
type statsService struct {
	orderRepo   repository.OrderRepository
	historyRepo repository.HistoryRepository
	logger      zerolog.Logger
}

// NewStatsService creates a new stats service.
func NewStatsService(orderRepo repository.OrderRepository, historyRepo repository.HistoryRepository, logger zerolog.Logger) StatsService {
	return &statsService{
		orderRepo:   orderRepo,
		historyRepo: historyRepo,
		logger:      logger.With().Str("service", "stats").Logger(),
	}
}

// Get computes stats over active and archived orders.
func (s *statsService) Get(ctx context.Context) (*model.Stats, error) {
	active, err := s.orderRepo.List(ctx, model.OrderFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	archived, err := s.historyRepo.List(ctx, model.OrderFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}

	all := make([]model.Order, 0, len(active)+len(archived))
	all = append(all, active...)
	for _, rec := range archived {
		all = append(all, rec.Order)
	}

	stats := model.ComputeStats(all)

	s.logger.Debug().
		Int("active", len(active)).
		Int("archived", len(archived)).
		Float64("revenue", stats.TotalRevenue).
		Msg("stats computed")

	return &stats, nil
}
