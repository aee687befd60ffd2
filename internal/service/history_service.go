package service

import (
	"context"
	"fmt"
	"time"

	"handi-menu/internal/model"
	"handi-menu/internal/repository"

	"github.com/rs/zerolog"
)

// historyService implements HistoryService.
type historyService struct {
	historyRepo repository.HistoryRepository
	orderRepo   repository.OrderRepository
	logger      zerolog.Logger
}

// NewHistoryService creates a new history service. orderRepo is consulted so
// that an order still active is archived from its stored snapshot.
func NewHistoryService(
	historyRepo repository.HistoryRepository,
	orderRepo repository.OrderRepository,
	logger zerolog.Logger,
) HistoryService {
	return &historyService{
		historyRepo: historyRepo,
		orderRepo:   orderRepo,
		logger:      logger.With().Str("service", "history").Logger(),
	}
}

// List retrieves archived orders matching filter.
func (s *historyService) List(ctx context.Context, filter model.OrderFilter) ([]model.HistoryRecord, error) {
	records, err := s.historyRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list history")
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	return records, nil
}

// Append stores a terminal order in history. When the id is still an active
// order, the stored order replaces the submitted body and its own status
// decides whether it may be archived. The total is always recomputed.
func (s *historyService) Append(ctx context.Context, record *model.HistoryRecord) (*model.HistoryRecord, bool, error) {
	if record == nil {
		return nil, false, model.ErrEmptyOrder
	}
	if record.ID == "" {
		return nil, false, model.NewValidationError(model.ErrCodeMissingField, "id is required")
	}

	active, err := s.orderRepo.GetByID(ctx, record.ID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get order: %w", err)
	}
	if active != nil {
		record = &model.HistoryRecord{Order: *active, ArchivedAt: record.ArchivedAt}
	}

	if err := record.Order.Validate(); err != nil {
		return nil, false, err
	}
	if !record.Status.IsTerminal() {
		s.logger.Warn().
			Str("order_id", record.ID).
			Str("status", string(record.Status)).
			Bool("active", active != nil).
			Msg("history append rejected")
		return nil, false, model.ErrNotArchivable
	}
	record.RecomputeTotal()

	if record.ArchivedAt.IsZero() {
		record.ArchivedAt = time.Now().UTC()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = record.ArchivedAt
	}
	record.Items = model.CloneLines(record.Items)

	inserted, err := s.historyRepo.Append(ctx, record)
	if err != nil {
		return nil, false, fmt.Errorf("failed to append history: %w", err)
	}

	if !inserted {
		existing, err := s.historyRepo.GetByID(ctx, record.ID)
		if err != nil {
			return nil, false, fmt.Errorf("failed to get archived order: %w", err)
		}
		if existing != nil {
			return existing, false, nil
		}
	}

	s.logger.Info().
		Str("order_id", record.ID).
		Str("status", string(record.Status)).
		Msg("order appended to history")

	return record, true, nil
}
