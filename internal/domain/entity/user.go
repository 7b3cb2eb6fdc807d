package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
	RoleUser    = "user"
)

// Roles enumeración completa, en orden de privilegio.
var Roles = []string{RoleAdmin, RoleManager, RoleStaff, RoleUser}

// User representa una cuenta del panel de administración.
type User struct {
	ID           string
	Email        string // único
	PasswordHash string // bcrypt, nunca se serializa
	FullName     string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserSummary datos del creador que se adjuntan a un producto.
type UserSummary struct {
	ID       string
	FullName string
	Email    string
}
