package auth_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/internal/auth"
	userDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/user"
)

const (
	accessSecret  = "access-secret-access-secret-access-secret"
	refreshSecret = "refresh-secret-refresh-secret-refresh-secret"
)

type mockUserRepository struct {
	byUsername map[string]*userDatamodel.User
	err        error
}

func newMockUserRepository() *mockUserRepository {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct_password"), bcrypt.MinCost)
	return &mockUserRepository{
		byUsername: map[string]*userDatamodel.User{
			"alice": {ID: "u-alice", Username: "alice", Name: "Alice", PasswordHash: string(hash), Role: "EMPLOYEE"},
			"root":  {ID: "u-root", Username: "root", Name: "Root", PasswordHash: string(hash), Role: "ADMIN"},
		},
	}
}

func (m *mockUserRepository) List(ctx context.Context) ([]*userDatamodel.User, error) {
	return nil, m.err
}

func (m *mockUserRepository) Create(ctx context.Context, u *userDatamodel.User) error {
	return m.err
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*userDatamodel.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.byUsername {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*userDatamodel.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.byUsername[username], nil
}

var _ = ginkgo.Describe("Auth Service", func() {
	var (
		repo      *mockUserRepository
		tokens    *auth.JWTTokenGenerator
		service   *auth.Service
		ctx       context.Context
		testClock time.Time
	)

	ginkgo.BeforeEach(func() {
		repo = newMockUserRepository()
		testClock = time.Now()
		tokens = auth.NewJWTTokenGenerator(accessSecret, refreshSecret, 24*time.Hour, 7*24*time.Hour)
		tokens.Now = func() time.Time { return testClock }
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		service = auth.NewService(repo, tokens, auth.NewBcryptHasher(bcrypt.MinCost), logger)
		ctx = context.Background()
	})

	ginkgo.Describe("Login", func() {
		ginkgo.It("issues tokens carrying the user's identity and role", func() {
			result, err := service.Login(ctx, auth.LoginDTO{Username: "root", Password: "correct_password"})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(result.AccessToken).ToNot(gomega.BeEmpty())
			gomega.Expect(result.RefreshToken).ToNot(gomega.BeEmpty())
			gomega.Expect(result.User.ID).To(gomega.Equal("u-root"))
			gomega.Expect(result.ExpiresAt).To(gomega.BeTemporally("~", testClock.Add(24*time.Hour), time.Second))

			principal, err := service.Authenticate(result.AccessToken)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(principal).To(gomega.Equal(internal.Principal{UserID: "u-root", Username: "root", Role: internal.RoleAdmin}))
		})

		ginkgo.It("rejects a wrong password", func() {
			_, err := service.Login(ctx, auth.LoginDTO{Username: "alice", Password: "nope"})
			gomega.Expect(err).To(gomega.MatchError(internal.ErrInvalidCredentials))
		})

		ginkgo.It("rejects an unknown username the same way", func() {
			_, err := service.Login(ctx, auth.LoginDTO{Username: "ghost", Password: "correct_password"})
			gomega.Expect(err).To(gomega.MatchError(internal.ErrInvalidCredentials))
		})

		ginkgo.It("requires both fields", func() {
			_, err := service.Login(ctx, auth.LoginDTO{Username: "alice"})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.StatusCode).To(gomega.Equal(400))
		})

		ginkgo.It("hides repository failures behind an internal error", func() {
			repo.err = errors.New("connection reset")

			_, err := service.Login(ctx, auth.LoginDTO{Username: "alice", Password: "correct_password"})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeInternal))
		})
	})

	ginkgo.Describe("Authenticate", func() {
		ginkgo.It("rejects an empty token", func() {
			_, err := service.Authenticate("")
			gomega.Expect(err).To(gomega.MatchError(internal.ErrMissingToken))
		})

		ginkgo.It("rejects garbage", func() {
			_, err := service.Authenticate("not-a-jwt")
			gomega.Expect(err).To(gomega.MatchError(internal.ErrInvalidToken))
		})

		ginkgo.It("rejects a token signed with another secret", func() {
			other := auth.NewJWTTokenGenerator("another-secret-another-secret-another", refreshSecret, time.Hour, 2*time.Hour)
			token, err := other.GenerateAccessToken(internal.Principal{UserID: "u-alice", Role: internal.RoleEmployee})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.Authenticate(token)
			gomega.Expect(err).To(gomega.MatchError(internal.ErrInvalidToken))
		})

		ginkgo.It("rejects a refresh token used as an access token", func() {
			token, err := tokens.GenerateRefreshToken(internal.Principal{UserID: "u-alice", Role: internal.RoleEmployee})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.Authenticate(token)
			gomega.Expect(err).To(gomega.MatchError(internal.ErrInvalidToken))
		})

		ginkgo.It("reports expiry distinctly", func() {
			token, err := tokens.GenerateAccessToken(internal.Principal{UserID: "u-alice", Role: internal.RoleEmployee})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			testClock = testClock.Add(25 * time.Hour)

			_, err = service.Authenticate(token)
			gomega.Expect(err).To(gomega.MatchError(internal.ErrTokenExpired))
			gomega.Expect(errors.Is(err, jwt.ErrTokenExpired)).To(gomega.BeTrue())
		})

		ginkgo.It("rejects a token whose role is unknown", func() {
			token, err := tokens.GenerateAccessToken(internal.Principal{UserID: "u-alice", Role: internal.Role("SUPERUSER")})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.Authenticate(token)
			gomega.Expect(err).To(gomega.MatchError(internal.ErrInvalidToken))
		})
	})

	ginkgo.Describe("RefreshTokens", func() {
		ginkgo.It("issues a fresh pair from a valid refresh token", func() {
			login, err := service.Login(ctx, auth.LoginDTO{Username: "alice", Password: "correct_password"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			refreshed, err := service.RefreshTokens(ctx, login.RefreshToken)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(refreshed.User.Username).To(gomega.Equal("alice"))

			principal, err := service.Authenticate(refreshed.AccessToken)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(principal.Role).To(gomega.Equal(internal.RoleEmployee))
		})

		ginkgo.It("rejects an access token", func() {
			login, err := service.Login(ctx, auth.LoginDTO{Username: "alice", Password: "correct_password"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.RefreshTokens(ctx, login.AccessToken)
			gomega.Expect(err).To(gomega.MatchError(internal.ErrInvalidToken))
		})

		ginkgo.It("rejects a token for a deleted user", func() {
			login, err := service.Login(ctx, auth.LoginDTO{Username: "alice", Password: "correct_password"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			delete(repo.byUsername, "alice")

			_, err = service.RefreshTokens(ctx, login.RefreshToken)
			gomega.Expect(err).To(gomega.MatchError(internal.ErrInvalidToken))
		})
	})
})
