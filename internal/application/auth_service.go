package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/aldisetiawan/go-user-address-api/internal/domain/repository"
	"github.com/aldisetiawan/go-user-address-api/pkg/apperrors"
	"github.com/aldisetiawan/go-user-address-api/pkg/helpers"
)

// LoginInput is the POST /auth/login payload.
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshInput is the POST /auth/refresh-token payload.
type RefreshInput struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// AuthService issues and refreshes token pairs.
type AuthService struct {
	users  *UserService
	repo   repository.UserRepository
	jwt    *helpers.JWTManager
	logger *logrus.Logger
}

func NewAuthService(users *UserService, repo repository.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthService {
	return &AuthService{users: users, repo: repo, jwt: jwt, logger: logger}
}

// Login validates credentials and issues a token pair. Unknown email and
// wrong password share one message; an inactive account gets its own.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*TokenView, error) {
	user := s.users.ValidatePassword(ctx, in.Email, in.Password)
	if user == nil {
		return nil, apperrors.Unauthorized("invalid email or password")
	}
	if !user.IsActive {
		return nil, apperrors.Unauthorized("account is inactive")
	}
	return s.issue(user.ID, user.Email, user.Roles)
}

// Refresh exchanges a valid refresh token for a fresh pair. The subject is
// re-resolved so deactivated or deleted users stop refreshing immediately.
func (s *AuthService) Refresh(ctx context.Context, in RefreshInput) (*TokenView, error) {
	claims, err := s.jwt.ParseRefreshToken(in.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, helpers.ErrTokenExpired):
			return nil, apperrors.Unauthorized("refresh token expired")
		case errors.Is(err, helpers.ErrWrongTokenType):
			return nil, apperrors.Unauthorized("token is not a refresh token")
		default:
			return nil, apperrors.Unauthorized("invalid refresh token")
		}
	}

	u, err := s.repo.GetByID(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperrors.Unauthorized("user no longer exists")
	}
	if !u.IsActive {
		return nil, apperrors.Unauthorized("account is inactive")
	}
	return s.issue(u.ID, u.Email, u.Roles)
}

// Profile returns the authenticated user's view.
func (s *AuthService) Profile(ctx context.Context, userID string) (*UserView, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *AuthService) issue(userID, email string, roles []string) (*TokenView, error) {
	pair, err := s.jwt.GeneratePair(userID, email, roles)
	if err != nil {
		s.logger.WithError(err).Error("failed to sign token pair")
		return nil, apperrors.Internal("")
	}
	return &TokenView{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
		TokenType:    "Bearer",
	}, nil
}
