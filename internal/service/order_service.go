package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"handi-menu/internal/model"
	"handi-menu/internal/repository"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

// OrderOptions tunes the order lifecycle.
type OrderOptions struct {
	// StrictTransitions enables the forward-only status graph.
	StrictTransitions bool

	// ArchiveRetries is the number of retries after a transient archival failure.
	ArchiveRetries int

	// BackOff builds the retry schedule for one archival. Defaults to exponential.
	BackOff func() backoff.BackOff
}

// orderService implements OrderService.
type orderService struct {
	orderRepo   repository.OrderRepository
	historyRepo repository.HistoryRepository
	opts        OrderOptions
	now         func() time.Time
	logger      zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	historyRepo repository.HistoryRepository,
	opts OrderOptions,
	logger zerolog.Logger,
) OrderService {
	if opts.BackOff == nil {
		opts.BackOff = func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 50 * time.Millisecond
			b.MaxInterval = time.Second
			return b
		}
	}
	if opts.ArchiveRetries < 0 {
		opts.ArchiveRetries = 0
	}

	return &orderService{
		orderRepo:   orderRepo,
		historyRepo: historyRepo,
		opts:        opts,
		now:         func() time.Time { return time.Now().UTC() },
		logger:      logger.With().Str("service", "order").Logger(),
	}
}

// List retrieves active orders matching filter.
func (s *orderService) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	orders, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// GetByID looks an order up among active orders, then history.
func (s *orderService) GetByID(ctx context.Context, id string) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order != nil {
		return order, nil
	}

	record, err := s.historyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get archived order: %w", err)
	}
	if record == nil {
		s.logger.Debug().Str("order_id", id).Msg("order not found")
		return nil, model.ErrOrderNotFound
	}

	return &record.Order, nil
}

// Create places a new order. Every order starts Pending, the total is
// recomputed from the lines and the creation time is set by the server.
func (s *orderService) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if order == nil {
		return nil, model.ErrEmptyOrder
	}

	if order.Status != "" && order.Status != model.StatusPending {
		s.logger.Warn().
			Str("order_id", order.ID).
			Str("status", string(order.Status)).
			Msg("order must be created Pending")
		return nil, model.ErrInvalidInitialStatus
	}
	order.Status = model.StatusPending

	if err := order.Validate(); err != nil {
		s.logger.Warn().Err(err).Str("order_id", order.ID).Msg("invalid order")
		return nil, err
	}

	if order.ID == "" {
		order.ID = model.NewReference()
	}
	order.CreatedAt = s.now()
	order.RecomputeTotal()

	if err := s.orderRepo.Create(ctx, order); err != nil {
		if errors.Is(err, model.ErrDuplicateOrder) {
			return nil, model.ErrDuplicateOrder
		}
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID).
		Int("item_count", len(order.Items)).
		Float64("total", order.Total).
		Str("table", order.TableNumber).
		Msg("order created successfully")

	return order, nil
}

// UpdateStatus moves an order to a new lifecycle status.
func (s *orderService) UpdateStatus(ctx context.Context, id string, raw string) (*model.Order, error) {
	status, err := model.ParseStatus(raw)
	if err != nil {
		s.logger.Warn().Str("order_id", id).Str("status", raw).Msg("invalid status")
		return nil, err
	}

	if s.opts.StrictTransitions {
		current, err := s.orderRepo.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to get order: %w", err)
		}
		if current == nil {
			return nil, model.ErrOrderNotFound
		}
		if !model.CanTransition(current.Status, status, true) {
			s.logger.Warn().
				Str("order_id", id).
				Str("from", string(current.Status)).
				Str("to", string(status)).
				Msg("status transition rejected")
			return nil, model.ErrInvalidTransition
		}
	}

	order, err := s.orderRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	s.logger.Info().
		Str("order_id", id).
		Str("status", string(status)).
		Msg("order status updated")

	return order, nil
}

// Delete removes an active order once its id is in history, finishing a
// client-side archival. A missing id is a no-op; an order that was never
// archived is refused so it cannot vanish from both stores.
func (s *orderService) Delete(ctx context.Context, id string) error {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		s.logger.Debug().Str("order_id", id).Msg("order already removed")
		return nil
	}

	record, err := s.historyRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get archived order: %w", err)
	}
	if record == nil {
		s.logger.Warn().
			Str("order_id", id).
			Str("status", string(order.Status)).
			Msg("delete refused, order not archived")
		return model.ErrNotArchived
	}

	deleted, err := s.orderRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	s.logger.Info().Str("order_id", id).Bool("deleted", deleted).Msg("order delete handled")
	return nil
}

// Archive moves a terminal order into history in one transaction, retrying
// transient failures. Archiving an order that is already in history returns
// the stored record.
func (s *orderService) Archive(ctx context.Context, id string) (*model.HistoryRecord, error) {
	var record *model.HistoryRecord

	operation := func() error {
		rec, err := s.archiveOnce(ctx, id)
		if err != nil {
			var domainErr *model.DomainError
			if errors.As(err, &domainErr) {
				return backoff.Permanent(err)
			}
			return err
		}
		record = rec
		return nil
	}

	notify := func(err error, wait time.Duration) {
		s.logger.Warn().
			Err(err).
			Str("order_id", id).
			Dur("retry_in", wait).
			Msg("archival failed, retrying")
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(s.opts.BackOff(), uint64(s.opts.ArchiveRetries)), ctx)
	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		var domainErr *model.DomainError
		if errors.As(err, &domainErr) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("order_id", id).Msg("archival failed")
		return nil, fmt.Errorf("failed to archive order: %w", err)
	}

	return record, nil
}

func (s *orderService) archiveOnce(ctx context.Context, id string) (*model.HistoryRecord, error) {
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	order, err := s.orderRepo.GetForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if order == nil {
		existing, err := s.historyRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, model.ErrOrderNotFound
		}
		s.logger.Debug().Str("order_id", id).Msg("order already archived")
		return existing, nil
	}

	if !order.Status.IsTerminal() {
		s.logger.Warn().
			Str("order_id", id).
			Str("status", string(order.Status)).
			Msg("order is not archivable")
		return nil, model.ErrNotArchivable
	}

	record := model.NewHistoryRecord(*order, s.now())

	if _, err := s.historyRepo.AppendTx(ctx, tx, record); err != nil {
		return nil, err
	}
	if _, err := s.orderRepo.DeleteTx(ctx, tx, id); err != nil {
		return nil, err
	}

	// A failed commit closes the transaction as well.
	committed = true
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit archival: %w", err)
	}

	s.logger.Info().
		Str("order_id", id).
		Str("status", string(order.Status)).
		Msg("order archived")

	return record, nil
}
