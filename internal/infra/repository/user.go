package repository

import (
	"context"
	"errors"

	"dinetime-api/internal/domain/user"
	"dinetime-api/internal/infra"
	"dinetime-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgUniqueViolation = "23505"

func isDuplicateKey(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (id, user_name, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		u.ID(), u.UserName().Value(), u.Email().Value(), u.PasswordHash(), u.CreatedAt(),
	)
	if err != nil {
		if isDuplicateKey(err) {
			return infra.WrapRepoErr("email already registered", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create user", err)
	}
	return nil
}

func (r *UserRepository) FindByEmailWithHash(ctx context.Context, email string) (*queries.UserView, string, error) {
	var (
		view queries.UserView
		hash string
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, user_name, email, password_hash, last_login, created_at
		FROM users
		WHERE email = $1`,
		email,
	).Scan(&view.ID, &view.UserName, &view.Email, &hash, &view.LastLogin, &view.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find user by email", err)
	}
	return &view, hash, nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET last_login = now() WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to update user last login", err)
	}
	return nil
}

func (r *UserRepository) GetCurrentUser(ctx context.Context, id uuid.UUID) (*queries.UserView, error) {
	var view queries.UserView
	err := r.db.QueryRow(ctx, `
		SELECT id, user_name, email, last_login, created_at
		FROM users
		WHERE id = $1`,
		id,
	).Scan(&view.ID, &view.UserName, &view.Email, &view.LastLogin, &view.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return &view, nil
}
