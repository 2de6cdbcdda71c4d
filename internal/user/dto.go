package user

import (
	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/internal/core/common/validation"
)

type CreateUserDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// Validate checks the admin-created user shape; role is mandatory.
func (d CreateUserDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("username", d.Username).Required().MaxLength(64)
	v.Field("password", d.Password).Required().MinLength(6).MaxLength(72)
	v.Field("name", d.Name).Required().MaxLength(128)
	v.Field("role", d.Role).Required().OneOf(internal.ErrCodeInvalidRole, string(internal.RoleAdmin), string(internal.RoleEmployee))
	return v.Validate()
}

// RegisterDTO is the self-service sign-up payload; role is optional.
type RegisterDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role,omitempty"`
}

func (d RegisterDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("username", d.Username).Required().MaxLength(64)
	v.Field("password", d.Password).Required().MinLength(6).MaxLength(72)
	v.Field("name", d.Name).Required().MaxLength(128)
	return v.Validate()
}

type RegisterResponse struct {
	Message  string `json:"message"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}
