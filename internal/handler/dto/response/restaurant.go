package response

import (
	"time"

	"dinetime-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type RestaurantResponse struct {
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

type RestaurantListResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Address  string    `json:"address"`
	Opening  string    `json:"opening"`
	Closing  string    `json:"closing"`
	ImageURL *string   `json:"image_url,omitempty"`
}

func FromRestaurantView(rm *queries.RestaurantView) *RestaurantResponse {
	var resp RestaurantResponse
	_ = copier.Copy(&resp, rm)
	return &resp
}

func FromRestaurantListItem(rm *queries.RestaurantListItem) *RestaurantListResponse {
	var resp RestaurantListResponse
	_ = copier.Copy(&resp, rm)
	return &resp
}
