package models

import (
	"time"
)

// User roles. "tecnico" and "cliente" come from the shop's staff/customer
// terminology and are stored as-is in the database and JWT claims.
const (
	RoleAdmin   = "admin"
	RoleTecnico = "tecnico"
	RoleCliente = "cliente"
)

type User struct {
	ID            string    `json:"id" gorm:"primaryKey;size:191"`
	Name          string    `json:"name" gorm:"not null;size:255"`
	Email         string    `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Password      string    `json:"-" gorm:"not null;size:255"`
	Role          string    `json:"role" gorm:"not null;default:'cliente';size:20"`
	Phone         string    `json:"phone" gorm:"size:50"`
	EmailVerified bool      `json:"email_verified" gorm:"default:false"`
	CustomerID    *string   `json:"customer_id" gorm:"size:191"` // set for cliente accounts
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// IsValidRole reports whether role is one of the known account roles.
func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleTecnico, RoleCliente:
		return true
	}
	return false
}
