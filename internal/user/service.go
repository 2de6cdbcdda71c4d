package user

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/attendance-management/internal"
	userDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/user"
)

type Repository interface {
	// List orders by name ascending.
	List(ctx context.Context) ([]*userDatamodel.User, error)
	// Create returns internal.ErrUsernameTaken on a duplicate username.
	Create(ctx context.Context, u *userDatamodel.User) error
	GetByID(ctx context.Context, id string) (*userDatamodel.User, error)
	GetByUsername(ctx context.Context, username string) (*userDatamodel.User, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
}

type Service struct {
	repo             Repository
	hasher           PasswordHasher
	allowAdminSignup bool
	logger           *slog.Logger
}

func NewService(repo Repository, hasher PasswordHasher, allowAdminSignup bool, logger *slog.Logger) *Service {
	return &Service{
		repo:             repo,
		hasher:           hasher,
		allowAdminSignup: allowAdminSignup,
		logger:           logger,
	}
}

func (s *Service) GetByID(ctx context.Context, userID string) (*User, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		s.logger.Error("failed to get user", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to get user", err)
	}
	if u == nil {
		return nil, internal.ErrUserNotFound
	}
	return FromDataModel(u), nil
}

func (s *Service) List(ctx context.Context, principal internal.Principal) ([]*User, error) {
	if err := principal.RequireAdmin(); err != nil {
		return nil, err
	}

	rows, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, internal.NewInternalError("failed to list users", err)
	}

	users := make([]*User, 0, len(rows))
	for _, row := range rows {
		users = append(users, FromDataModel(row))
	}
	return users, nil
}

// Create adds a user on behalf of an administrator.
func (s *Service) Create(ctx context.Context, principal internal.Principal, dto CreateUserDTO) (*User, error) {
	if err := principal.RequireAdmin(); err != nil {
		return nil, err
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	role, err := internal.ParseRole(dto.Role)
	if err != nil {
		return nil, err
	}

	u, err := s.create(ctx, dto.Username, dto.Password, dto.Name, role)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user created by admin", "user_id", u.ID, "role", u.Role, "admin_id", principal.UserID)
	return u, nil
}

// Register is self-service sign-up. Any role other than ADMIN becomes
// EMPLOYEE, and ADMIN is honored only when admin sign-up is enabled.
func (s *Service) Register(ctx context.Context, dto RegisterDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	role := internal.RoleEmployee
	if parsed, err := internal.ParseRole(dto.Role); err == nil && parsed == internal.RoleAdmin && s.allowAdminSignup {
		role = internal.RoleAdmin
	}

	u, err := s.create(ctx, dto.Username, dto.Password, dto.Name, role)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user registered", "user_id", u.ID, "role", u.Role)
	return u, nil
}

func (s *Service) create(ctx context.Context, username, password, name string, role internal.Role) (*User, error) {
	existing, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		s.logger.Error("failed to check username", "error", err)
		return nil, internal.NewInternalError("failed to create user", err)
	}
	if existing != nil {
		return nil, internal.ErrUsernameTaken
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	row := ToDataModel(&User{
		Username:     username,
		Name:         name,
		PasswordHash: hash,
		Role:         role,
	})
	if err := s.repo.Create(ctx, row); err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to insert user", "error", err)
		return nil, internal.NewInternalError("failed to create user", err)
	}

	return FromDataModel(row), nil
}
