package user

import (
	"time"

	"github.com/google/uuid"
)

// User entity. Diners with an email/password account; guests never get a row
// here, they book through the OTP flow instead.
type User struct {
	id           uuid.UUID
	userName     UserName
	email        Email
	passwordHash string
	lastLogin    *time.Time
	createdAt    time.Time
	updatedAt    time.Time
}

func NewUser(userName UserName, email Email, passwordHash string) *User {
	now := time.Now()
	return &User{
		id:           uuid.New(),
		userName:     userName,
		email:        email,
		passwordHash: passwordHash,
		createdAt:    now,
		updatedAt:    now,
	}
}

func ReconstructUser(
	id uuid.UUID,
	userName UserName,
	email Email,
	passwordHash string,
	lastLogin *time.Time,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		id:           id,
		userName:     userName,
		email:        email,
		passwordHash: passwordHash,
		lastLogin:    lastLogin,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (u *User) ID() uuid.UUID         { return u.id }
func (u *User) UserName() UserName    { return u.userName }
func (u *User) Email() Email          { return u.email }
func (u *User) PasswordHash() string  { return u.passwordHash }
func (u *User) LastLogin() *time.Time { return u.lastLogin }
func (u *User) CreatedAt() time.Time  { return u.createdAt }
func (u *User) UpdatedAt() time.Time  { return u.updatedAt }
