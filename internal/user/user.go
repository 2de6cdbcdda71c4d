package user

import (
	"time"

	"github.com/frahmantamala/attendance-management/internal"
	userDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/user"
)

type User struct {
	ID           string        `json:"id"`
	Username     string        `json:"username"`
	Name         string        `json:"name"`
	PasswordHash string        `json:"-"`
	Role         internal.Role `json:"role"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == internal.RoleAdmin
}

func (u *User) Principal() internal.Principal {
	return internal.Principal{UserID: u.ID, Username: u.Username, Role: u.Role}
}

func ToDataModel(u *User) *userDatamodel.User {
	return &userDatamodel.User{
		ID:           u.ID,
		Username:     u.Username,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func FromDataModel(u *userDatamodel.User) *User {
	return &User{
		ID:           u.ID,
		Username:     u.Username,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Role:         internal.Role(u.Role),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
