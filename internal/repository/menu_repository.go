package repository

import (
	"context"
	"errors"
	"fmt"

	"handi-menu/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// menuRepository implements the MenuRepository interface using PostgreSQL.
type menuRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewMenuRepository creates a new PostgreSQL-backed menu repository.
func NewMenuRepository(pool *pgxpool.Pool, logger zerolog.Logger) MenuRepository {
	return &menuRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "menu").Logger(),
	}
}

const menuColumns = `id, name, category, price, rating, description, image, prep_time, created_at`

func scanMenuItem(row pgx.Row) (*model.MenuItem, error) {
	var m model.MenuItem
	err := row.Scan(&m.ID, &m.Name, &m.Category, &m.Price, &m.Rating, &m.Description, &m.Image, &m.PrepTime, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetAll retrieves every menu item ordered by id.
func (r *menuRepository) GetAll(ctx context.Context) ([]model.MenuItem, error) {
	query := `SELECT ` + menuColumns + ` FROM menu ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query menu")
		return nil, fmt.Errorf("failed to query menu: %w", err)
	}
	defer rows.Close()

	items := []model.MenuItem{}
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan menu row")
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating menu rows")
		return nil, fmt.Errorf("error iterating menu: %w", err)
	}

	return items, nil
}

// GetByID retrieves a single menu item by its ID.
func (r *menuRepository) GetByID(ctx context.Context, id string) (*model.MenuItem, error) {
	query := `SELECT ` + menuColumns + ` FROM menu WHERE id = $1`

	item, err := scanMenuItem(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("item_id", id).Msg("menu item not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("item_id", id).Msg("failed to query menu item")
		return nil, fmt.Errorf("failed to query menu item: %w", err)
	}

	return item, nil
}

// Create inserts a new menu item.
func (r *menuRepository) Create(ctx context.Context, item *model.MenuItem) error {
	query := `
		INSERT INTO menu (id, name, category, price, rating, description, image, prep_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`

	err := r.pool.QueryRow(ctx, query,
		item.ID, item.Name, item.Category, item.Price, item.Rating, item.Description, item.Image, item.PrepTime,
	).Scan(&item.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Warn().Str("item_id", item.ID).Msg("menu item id already in use")
			return model.ErrDuplicateMenuItem
		}
		r.logger.Error().Err(err).Str("item_id", item.ID).Msg("failed to create menu item")
		return fmt.Errorf("failed to create menu item: %w", err)
	}

	r.logger.Debug().Str("item_id", item.ID).Msg("menu item created successfully")
	return nil
}

// Update overwrites an existing menu item.
func (r *menuRepository) Update(ctx context.Context, item *model.MenuItem) error {
	query := `
		UPDATE menu
		SET name = $2, category = $3, price = $4, rating = $5, description = $6, image = $7, prep_time = $8
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		item.ID, item.Name, item.Category, item.Price, item.Rating, item.Description, item.Image, item.PrepTime,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("item_id", item.ID).Msg("failed to update menu item")
		return fmt.Errorf("failed to update menu item: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Debug().Str("item_id", item.ID).Msg("menu item not found for update")
		return model.ErrMenuItemNotFound
	}

	return nil
}

// Delete removes a menu item.
func (r *menuRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM menu WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("item_id", id).Msg("failed to delete menu item")
		return fmt.Errorf("failed to delete menu item: %w", err)
	}

	r.logger.Debug().
		Str("item_id", id).
		Int64("rows", tag.RowsAffected()).
		Msg("menu item deleted")
	return nil
}

// Upsert inserts or replaces menu items in one batch.
func (r *menuRepository) Upsert(ctx context.Context, items []model.MenuItem) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO menu (id, name, category, price, rating, description, image, prep_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			category = EXCLUDED.category,
			price = EXCLUDED.price,
			rating = EXCLUDED.rating,
			description = EXCLUDED.description,
			image = EXCLUDED.image,
			prep_time = EXCLUDED.prep_time
	`

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(query, item.ID, item.Name, item.Category, item.Price, item.Rating, item.Description, item.Image, item.PrepTime)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(items); i++ {
		if _, err := results.Exec(); err != nil {
			r.logger.Error().
				Err(err).
				Str("item_id", items[i].ID).
				Msg("failed to upsert menu item")
			return i, fmt.Errorf("failed to upsert menu item %s: %w", items[i].ID, err)
		}
	}

	r.logger.Debug().Int("count", len(items)).Msg("menu items upserted successfully")
	return len(items), nil
}
