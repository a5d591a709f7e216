package admin

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Role represents admin panel role
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleModerator  Role = "moderator"
)

// AdminUser represents an admin panel user
type AdminUser struct {
	ID           uuid.UUID    `db:"id" json:"id"`
	Email        string       `db:"email" json:"email"`
	PasswordHash string       `db:"password_hash" json:"-"`
	Name         string       `db:"name" json:"name"`
	Role         Role         `db:"role" json:"role"`
	IsActive     bool         `db:"is_active" json:"is_active"`
	LastLoginAt  sql.NullTime `db:"last_login_at" json:"last_login_at,omitempty"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at" json:"updated_at"`
}

// HasPermission checks if admin has a specific permission
func (a *AdminUser) HasPermission(perm Permission) bool {
	for _, p := range RolePermissions[a.Role] {
		if p == perm {
			return true
		}
	}
	return false
}
