package auth

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/internal/user"
)

type ServiceAPI interface {
	Login(ctx context.Context, dto LoginDTO) (*AuthTokens, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*AuthTokens, error)
	Authenticate(accessToken string) (internal.Principal, error)
}

// PasswordComparer checks a plaintext password against a stored hash.
type PasswordComparer interface {
	Compare(hash, password string) bool
}

type Service struct {
	users     user.Repository
	tokens    TokenGenerator
	passwords PasswordComparer
	logger    *slog.Logger
}

func NewService(users user.Repository, tokens TokenGenerator, passwords PasswordComparer, logger *slog.Logger) *Service {
	return &Service{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// Login verifies credentials. Unknown usernames and wrong passwords are
// indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, dto LoginDTO) (*AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row, err := s.users.GetByUsername(ctx, dto.Username)
	if err != nil {
		s.logger.Error("failed to load user for login", "error", err, "username", dto.Username)
		return nil, internal.NewInternalError("failed to authenticate", err)
	}
	if row == nil || !s.passwords.Compare(row.PasswordHash, dto.Password) {
		s.logger.Info("login rejected", "username", dto.Username)
		return nil, internal.ErrInvalidCredentials
	}

	u := user.FromDataModel(row)
	tokens, err := s.issue(u.Principal())
	if err != nil {
		return nil, err
	}
	tokens.User = u

	s.logger.Info("user logged in", "user_id", u.ID, "role", u.Role)
	return tokens, nil
}

// RefreshTokens re-reads the user so that role changes take effect on refresh.
func (s *Service) RefreshTokens(ctx context.Context, refreshToken string) (*AuthTokens, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	row, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		s.logger.Error("failed to load user for refresh", "error", err, "user_id", claims.UserID)
		return nil, internal.NewInternalError("failed to refresh token", err)
	}
	if row == nil {
		return nil, internal.ErrInvalidToken
	}

	u := user.FromDataModel(row)
	tokens, err := s.issue(u.Principal())
	if err != nil {
		return nil, err
	}
	tokens.User = u
	return tokens, nil
}

func (s *Service) Authenticate(accessToken string) (internal.Principal, error) {
	if accessToken == "" {
		return internal.Principal{}, internal.ErrMissingToken
	}
	claims, err := s.tokens.ValidateAccessToken(accessToken)
	if err != nil {
		return internal.Principal{}, err
	}
	return claims.Principal()
}

func (s *Service) issue(p internal.Principal) (*AuthTokens, error) {
	access, err := s.tokens.GenerateAccessToken(p)
	if err != nil {
		s.logger.Error("failed to sign access token", "error", err, "user_id", p.UserID)
		return nil, internal.NewInternalError("failed to issue token", err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(p)
	if err != nil {
		s.logger.Error("failed to sign refresh token", "error", err, "user_id", p.UserID)
		return nil, internal.NewInternalError("failed to issue token", err)
	}

	tokens := &AuthTokens{AccessToken: access, RefreshToken: refresh}
	if claims, err := s.tokens.ValidateAccessToken(access); err == nil && claims.ExpiresAt != nil {
		tokens.ExpiresAt = claims.ExpiresAt.Time
	}
	return tokens, nil
}
