package commands

import (
	"context"
	"log/slog"

	"dinetime-api/internal/domain/user"
	reqdto "dinetime-api/internal/handler/dto/request"
	"dinetime-api/internal/infra"
	"dinetime-api/internal/pkg/errs"
	"dinetime-api/internal/pkg/jwt"
	"dinetime-api/internal/pkg/password"

	"github.com/google/uuid"
)

var (
	ErrEmailAlreadyExists   = errs.New("email already registered")
	ErrInvalidCredentials   = errs.New("invalid credentials")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
	ErrTokenValidation      = errs.New("token validation failed")
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthResult struct {
	UserID    uuid.UUID
	Email     string
	TokenPair *TokenPair
}

type AuthCommands interface {
	Signup(ctx context.Context, req reqdto.SignupRequest) (*AuthResult, error)
	Login(ctx context.Context, req reqdto.LoginRequest) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
}

type authCommandsImpl struct {
	userRepo   UserRepository
	jwtService *jwt.Service
}

func NewAuthCommands(userRepo UserRepository, jwtService *jwt.Service) AuthCommands {
	return &authCommandsImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

func (a *authCommandsImpl) Signup(ctx context.Context, req reqdto.SignupRequest) (*AuthResult, error) {
	userName, err := user.NewUserName(req.UserName)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}
	email, err := user.NewEmail(req.Email)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}
	pass, err := user.NewPassword(req.Password)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	hash, err := password.HashPassword(pass.Value())
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	entity := user.NewUser(userName, email, hash)
	if err := a.userRepo.Create(ctx, entity); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	return a.issueTokens(entity.ID(), email.Value())
}

func (a *authCommandsImpl) Login(ctx context.Context, req reqdto.LoginRequest) (*AuthResult, error) {
	email, err := user.NewEmail(req.Email)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidCredentials)
	}

	view, hash, err := a.userRepo.FindByEmailWithHash(ctx, email.Value())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	if err := password.ComparePassword(hash, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := a.userRepo.UpdateLastLogin(ctx, view.ID); err != nil {
		// Not critical: the login itself succeeded.
		slog.Warn("failed to update last login", "user_id", view.ID, "error", err.Error())
	}

	return a.issueTokens(view.ID, view.Email)
}

func (a *authCommandsImpl) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := a.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenValidation)
	}

	result, err := a.issueTokens(claims.UserID, claims.Email)
	if err != nil {
		return nil, err
	}
	return result.TokenPair, nil
}

func (a *authCommandsImpl) issueTokens(userID uuid.UUID, email string) (*AuthResult, error) {
	accessToken, err := a.jwtService.GenerateAccessToken(userID, email)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	refreshToken, err := a.jwtService.GenerateRefreshToken(userID, email)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	return &AuthResult{
		UserID: userID,
		Email:  email,
		TokenPair: &TokenPair{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		},
	}, nil
}
