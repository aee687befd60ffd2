package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"handi-menu/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestHistoryService() (HistoryService, *MockHistoryRepository, *MockOrderRepository) {
	historyRepo := new(MockHistoryRepository)
	orderRepo := new(MockOrderRepository)
	return NewHistoryService(historyRepo, orderRepo, zerolog.Nop()), historyRepo, orderRepo
}

func TestHistoryService_Append(t *testing.T) {
	ctx := context.Background()

	t.Run("New record", func(t *testing.T) {
		svc, repo, orders := newTestHistoryService()
		orders.On("GetByID", ctx, "A1").Return(nil, nil)
		repo.On("Append", ctx, mock.AnythingOfType("*model.HistoryRecord")).Return(true, nil)

		rec := &model.HistoryRecord{Order: *testOrder("A1", model.StatusCompleted)}
		stored, created, err := svc.Append(ctx, rec)

		require.NoError(t, err)
		assert.True(t, created)
		assert.False(t, stored.ArchivedAt.IsZero())
		assert.False(t, stored.CreatedAt.IsZero())
	})

	t.Run("Submitted total is recomputed", func(t *testing.T) {
		svc, repo, orders := newTestHistoryService()
		orders.On("GetByID", ctx, "H1").Return(nil, nil)
		repo.On("Append", ctx, mock.MatchedBy(func(r *model.HistoryRecord) bool {
			return r.Total == 750
		})).Return(true, nil)

		rec := &model.HistoryRecord{Order: *testOrder("H1", model.StatusCompleted)}
		rec.Total = 1

		stored, _, err := svc.Append(ctx, rec)

		require.NoError(t, err)
		assert.Equal(t, 750.0, stored.Total)
		repo.AssertExpectations(t)
	})

	t.Run("Active order archived from its stored snapshot", func(t *testing.T) {
		svc, repo, orders := newTestHistoryService()
		active := testOrder("A1", model.StatusCancelled)
		active.Total = 750
		orders.On("GetByID", ctx, "A1").Return(active, nil)
		repo.On("Append", ctx, mock.MatchedBy(func(r *model.HistoryRecord) bool {
			return r.Status == model.StatusCancelled && r.CustomerName == "Ram" && r.Total == 750
		})).Return(true, nil)

		claimed := testOrder("A1", model.StatusCompleted)
		claimed.CustomerName = "Someone else"
		claimed.Items[0].Quantity = 10
		stored, created, err := svc.Append(ctx, &model.HistoryRecord{Order: *claimed})

		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, model.StatusCancelled, stored.Status)
		repo.AssertExpectations(t)
	})

	t.Run("Active order still Pending rejected despite claimed status", func(t *testing.T) {
		svc, repo, orders := newTestHistoryService()
		orders.On("GetByID", ctx, "A1").Return(testOrder("A1", model.StatusPending), nil)

		_, _, err := svc.Append(ctx, &model.HistoryRecord{Order: *testOrder("A1", model.StatusCompleted)})

		assert.ErrorIs(t, err, model.ErrNotArchivable)
		repo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("Duplicate returns the stored record", func(t *testing.T) {
		svc, repo, orders := newTestHistoryService()
		original := model.NewHistoryRecord(*testOrder("A1", model.StatusCompleted), time.Now().Add(-time.Hour))
		orders.On("GetByID", ctx, "A1").Return(nil, nil)
		repo.On("Append", ctx, mock.Anything).Return(false, nil)
		repo.On("GetByID", ctx, "A1").Return(original, nil)

		stored, created, err := svc.Append(ctx, &model.HistoryRecord{Order: *testOrder("A1", model.StatusCompleted)})

		require.NoError(t, err)
		assert.False(t, created)
		assert.Same(t, original, stored)
	})

	t.Run("Non-terminal status rejected", func(t *testing.T) {
		svc, repo, orders := newTestHistoryService()
		orders.On("GetByID", ctx, "A1").Return(nil, nil)

		_, _, err := svc.Append(ctx, &model.HistoryRecord{Order: *testOrder("A1", model.StatusPreparing)})

		assert.ErrorIs(t, err, model.ErrNotArchivable)
		repo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("Missing id rejected", func(t *testing.T) {
		svc, _, orders := newTestHistoryService()

		_, _, err := svc.Append(ctx, &model.HistoryRecord{Order: *testOrder("", model.StatusCompleted)})

		var domainErr *model.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, model.ErrCodeMissingField, domainErr.Code)
		orders.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Order lookup error", func(t *testing.T) {
		svc, repo, orders := newTestHistoryService()
		orders.On("GetByID", ctx, "A1").Return(nil, errors.New("connection reset"))

		_, _, err := svc.Append(ctx, &model.HistoryRecord{Order: *testOrder("A1", model.StatusCompleted)})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get order")
		repo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("Repository error", func(t *testing.T) {
		svc, repo, orders := newTestHistoryService()
		orders.On("GetByID", ctx, "A1").Return(nil, nil)
		repo.On("Append", ctx, mock.Anything).Return(false, errors.New("disk full"))

		_, _, err := svc.Append(ctx, &model.HistoryRecord{Order: *testOrder("A1", model.StatusCancelled)})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to append history")
	})
}

func TestHistoryService_List(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestHistoryService()

	filter := model.OrderFilter{Name: "ram"}
	records := []model.HistoryRecord{*model.NewHistoryRecord(*testOrder("A1", model.StatusCompleted), time.Now())}
	repo.On("List", ctx, filter).Return(records, nil)

	got, err := svc.List(ctx, filter)

	require.NoError(t, err)
	assert.Len(t, got, 1)
}
