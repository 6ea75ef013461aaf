package usecase

import (
	"context"
	"errors"

	"roombook/internal/domain/user"
	"roombook/internal/infra"
	"roombook/internal/pkg/jwt"
	"roombook/internal/pkg/password"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTokenGeneration    = errors.New("token generation failed")
	ErrTokenValidation    = errors.New("token validation failed")
)

// Identity is the authenticated caller extracted from a bearer token.
type Identity struct {
	UserID string
	Email  string
	Role   user.Role
}

type TokenValidator interface {
	ValidateToken(tokenString string) (Identity, error)
}

type AuthUseCase interface {
	Login(ctx context.Context, credentials user.Credentials) (string, *user.User, error)
	Refresh(tokenString string) (string, error)
	GetCurrentUser(ctx context.Context, userID string) (*user.User, error)
	TokenValidator
}

type authUseCaseImpl struct {
	users      UserRepository
	jwtService *jwt.Service
}

func NewAuthUseCase(users UserRepository, jwtService *jwt.Service) AuthUseCase {
	return &authUseCaseImpl{
		users:      users,
		jwtService: jwtService,
	}
}

func (a *authUseCaseImpl) Login(ctx context.Context, credentials user.Credentials) (string, *user.User, error) {
	u, hash, err := a.users.FindByEmail(ctx, credentials.Email())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			// Same response as a wrong password; do not leak which one it was.
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := password.ComparePassword(hash, credentials.Password()); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := a.jwtService.GenerateToken(u.ID(), u.Email(), u.Role())
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	return token, u, nil
}

func (a *authUseCaseImpl) Refresh(tokenString string) (string, error) {
	claims, err := a.jwtService.ValidateToken(tokenString)
	if err != nil {
		return "", ErrTokenValidation
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return "", ErrTokenValidation
	}

	token, err := a.jwtService.GenerateToken(claims.UserID, claims.Email, role)
	if err != nil {
		return "", ErrTokenGeneration
	}

	return token, nil
}

func (a *authUseCaseImpl) GetCurrentUser(ctx context.Context, userID string) (*user.User, error) {
	u, err := a.users.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (a *authUseCaseImpl) ValidateToken(tokenString string) (Identity, error) {
	claims, err := a.jwtService.ValidateToken(tokenString)
	if err != nil {
		return Identity{}, ErrTokenValidation
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return Identity{}, ErrTokenValidation
	}

	return Identity{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   role,
	}, nil
}
