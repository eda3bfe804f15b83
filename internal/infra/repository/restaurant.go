package repository

import (
	"context"
	"errors"

	"dinetime-api/internal/infra"
	"dinetime-api/internal/usecase/commands"
	"dinetime-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RestaurantRepository struct {
	db *pgxpool.Pool
}

func NewRestaurantRepository(db *pgxpool.Pool) *RestaurantRepository {
	return &RestaurantRepository{db: db}
}

// FindByID serves the write side: just enough to validate a slot choice.
func (r *RestaurantRepository) FindByID(ctx context.Context, id uuid.UUID) (*commands.RestaurantSnapshot, error) {
	var snap commands.RestaurantSnapshot
	err := r.db.QueryRow(ctx, `
		SELECT id, name, slots
		FROM restaurants
		WHERE id = $1`,
		id,
	).Scan(&snap.ID, &snap.Name, &snap.Slots)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("restaurant not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find restaurant", err)
	}
	return &snap, nil
}

func (r *RestaurantRepository) List(ctx context.Context) ([]*queries.RestaurantListItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, address, opening, closing, image_url
		FROM restaurants
		ORDER BY name`,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list restaurants", err)
	}
	defer rows.Close()

	items := make([]*queries.RestaurantListItem, 0)
	for rows.Next() {
		var item queries.RestaurantListItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Address, &item.Opening, &item.Closing, &item.ImageURL); err != nil {
			return nil, infra.WrapRepoErr("failed to scan restaurant row", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate restaurant rows", err)
	}
	return items, nil
}

func (r *RestaurantRepository) GetByID(ctx context.Context, id uuid.UUID) (*queries.RestaurantView, error) {
	var view queries.RestaurantView
	err := r.db.QueryRow(ctx, `
		SELECT id, name, address, opening, closing, image_url, latitude, longitude, slots, created_at
		FROM restaurants
		WHERE id = $1`,
		id,
	).Scan(
		&view.ID, &view.Name, &view.Address, &view.Opening, &view.Closing,
		&view.ImageURL, &view.Latitude, &view.Longitude, &view.Slots, &view.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("restaurant not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find restaurant", err)
	}
	return &view, nil
}
