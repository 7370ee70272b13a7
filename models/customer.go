package models

import (
	"time"
)

type Customer struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	Name      string    `json:"name" gorm:"not null;size:255"`
	Email     string    `json:"email" gorm:"size:255"`
	Phone     string    `json:"phone" gorm:"size:50"`
	Address   string    `json:"address" gorm:"size:500"`
	Notes     string    `json:"notes" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Motorcycles []Motorcycle `json:"motorcycles,omitempty" gorm:"foreignKey:CustomerID"`
	Repairs     []Repair     `json:"repairs,omitempty" gorm:"foreignKey:CustomerID"`
	Invoices    []Invoice    `json:"invoices,omitempty" gorm:"foreignKey:CustomerID"`
}
