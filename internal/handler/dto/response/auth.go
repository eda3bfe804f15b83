package response

import (
	"time"

	"dinetime-api/internal/usecase/commands"
	"dinetime-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type AuthResponse struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
}

type UserResponse struct {
	ID        uuid.UUID  `json:"id"`
	UserName  string     `json:"user_name"`
	Email     string     `json:"email"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func FromAuthResult(result *commands.AuthResult) *AuthResponse {
	return &AuthResponse{
		UserID: result.UserID,
		Email:  result.Email,
	}
}

func FromUserView(rm *queries.UserView) *UserResponse {
	var resp UserResponse
	_ = copier.Copy(&resp, rm)
	return &resp
}
