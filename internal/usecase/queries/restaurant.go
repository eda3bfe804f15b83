package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type RestaurantView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Opening   string    `json:"opening"`
	Closing   string    `json:"closing"`
	ImageURL  *string   `json:"image_url,omitempty"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	Slots     []string  `json:"slots"`
	CreatedAt time.Time `json:"created_at"`
}

type RestaurantListItem struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Address  string    `json:"address"`
	Opening  string    `json:"opening"`
	Closing  string    `json:"closing"`
	ImageURL *string   `json:"image_url,omitempty"`
}

type RestaurantQueries interface {
	List(ctx context.Context) ([]*RestaurantListItem, error)
	GetByID(ctx context.Context, id uuid.UUID) (*RestaurantView, error)
}
