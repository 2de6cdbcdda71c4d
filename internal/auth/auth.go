package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/internal/user"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims carries the identity triple trusted by every downstream handler.
type Claims struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

// Principal converts validated claims into a typed principal. The role is
// parsed here and nowhere else.
func (c *Claims) Principal() (internal.Principal, error) {
	role, err := internal.ParseRole(c.Role)
	if err != nil {
		return internal.Principal{}, internal.ErrInvalidToken
	}
	if c.UserID == "" {
		return internal.Principal{}, internal.ErrInvalidToken
	}
	return internal.Principal{UserID: c.UserID, Username: c.Username, Role: role}, nil
}

// TokenGenerator creates and validates signed tokens.
type TokenGenerator interface {
	GenerateAccessToken(p internal.Principal) (token string, err error)
	GenerateRefreshToken(p internal.Principal) (token string, err error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	ValidateRefreshToken(tokenString string) (*Claims, error)
}

type AuthTokens struct {
	AccessToken  string     `json:"token"`
	RefreshToken string     `json:"refresh_token"`
	ExpiresAt    time.Time  `json:"expires_at"`
	User         *user.User `json:"user,omitempty"`
}

type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
	Now                func() time.Time
}
