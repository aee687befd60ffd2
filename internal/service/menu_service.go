package service

import (
	"context"
	"errors"
	"fmt"

	"handi-menu/internal/model"
	"handi-menu/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// menuService implements MenuService.
type menuService struct {
	menuRepo repository.MenuRepository
	logger   zerolog.Logger
}

// NewMenuService creates a new menu service.
func NewMenuService(menuRepo repository.MenuRepository, logger zerolog.Logger) MenuService {
	return &menuService{
		menuRepo: menuRepo,
		logger:   logger.With().Str("service", "menu").Logger(),
	}
}

// List retrieves every menu item.
func (s *menuService) List(ctx context.Context) ([]model.MenuItem, error) {
	items, err := s.menuRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list menu")
		return nil, fmt.Errorf("failed to list menu: %w", err)
	}

	s.logger.Debug().Int("count", len(items)).Msg("retrieved menu")
	return items, nil
}

// Create validates and stores a new menu item.
func (s *menuService) Create(ctx context.Context, item *model.MenuItem) (*model.MenuItem, error) {
	if item == nil {
		return nil, model.NewValidationError(model.ErrCodeInvalidMenuItem, "menu item is required")
	}

	if err := item.Validate(); err != nil {
		s.logger.Warn().Err(err).Str("name", item.Name).Msg("invalid menu item")
		return nil, err
	}

	if item.ID == "" {
		item.ID = "item_" + uuid.NewString()
	}

	if err := s.menuRepo.Create(ctx, item); err != nil {
		if errors.Is(err, model.ErrDuplicateMenuItem) {
			return nil, model.ErrDuplicateMenuItem
		}
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}

	s.logger.Info().
		Str("item_id", item.ID).
		Str("category", string(item.Category)).
		Msg("menu item created")

	return item, nil
}

// Update applies a partial update to an existing menu item.
func (s *menuService) Update(ctx context.Context, id string, update *model.MenuItemUpdate) (*model.MenuItem, error) {
	if id == "" {
		s.logger.Warn().Msg("menu item ID is empty")
		return nil, model.ErrMenuItemNotFound
	}

	item, err := s.menuRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}
	if item == nil {
		return nil, model.ErrMenuItemNotFound
	}

	if update != nil {
		update.Apply(item)
	}
	if err := item.Validate(); err != nil {
		s.logger.Warn().Err(err).Str("item_id", id).Msg("invalid menu item update")
		return nil, err
	}

	if err := s.menuRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update menu item: %w", err)
	}

	s.logger.Info().Str("item_id", id).Msg("menu item updated")
	return item, nil
}

// Delete removes a menu item.
func (s *menuService) Delete(ctx context.Context, id string) error {
	if err := s.menuRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}

	s.logger.Info().Str("item_id", id).Msg("menu item deleted")
	return nil
}
