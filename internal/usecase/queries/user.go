package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type UserView struct {
	ID        uuid.UUID  `json:"id"`
	UserName  string     `json:"user_name"`
	Email     string     `json:"email"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type UserQueries interface {
	GetCurrentUser(ctx context.Context, id uuid.UUID) (*UserView, error)
}
