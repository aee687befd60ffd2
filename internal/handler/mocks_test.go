package handler

import (
	"context"

	"handi-menu/internal/model"

	"github.com/stretchr/testify/mock"
)

// MockMenuService is a mock implementation of MenuService.
type MockMenuService struct {
	mock.Mock
}

func (m *MockMenuService) List(ctx context.Context) ([]model.MenuItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MenuItem), args.Error(1)
}

func (m *MockMenuService) Create(ctx context.Context, item *model.MenuItem) (*model.MenuItem, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MenuItem), args.Error(1)
}

func (m *MockMenuService) Update(ctx context.Context, id string, update *model.MenuItemUpdate) (*model.MenuItem, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MenuItem), args.Error(1)
}

func (m *MockMenuService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockOrderService is a mock implementation of OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderService) GetByID(ctx context.Context, id string) (*model.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	args := m.Called(ctx, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, id string, status string) (*model.Order, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderService) Archive(ctx context.Context, id string) (*model.HistoryRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.HistoryRecord), args.Error(1)
}

// MockHistoryService is a mock implementation of HistoryService.
type MockHistoryService struct {
	mock.Mock
}

func (m *MockHistoryService) List(ctx context.Context, filter model.OrderFilter) ([]model.HistoryRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.HistoryRecord), args.Error(1)
}

func (m *MockHistoryService) Append(ctx context.Context, record *model.HistoryRecord) (*model.HistoryRecord, bool, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*model.HistoryRecord), args.Bool(1), args.Error(2)
}

// MockStatsService is a mock implementation of StatsService.
type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) Get(ctx context.Context) (*model.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Stats), args.Error(1)
}

// MockAssistant is a mock implementation of Assistant.
type MockAssistant struct {
	mock.Mock
}

func (m *MockAssistant) Recommend(ctx context.Context, items []string) []string {
	args := m.Called(ctx, items)
	return args.Get(0).([]string)
}

func (m *MockAssistant) Describe(ctx context.Context, name, category string) string {
	args := m.Called(ctx, name, category)
	return args.String(0)
}

func (m *MockAssistant) Assist(ctx context.Context, preferences, budget, occasion string) string {
	args := m.Called(ctx, preferences, budget, occasion)
	return args.String(0)
}
