package models

import (
	"time"
)

type Motorcycle struct {
	ID         string    `json:"id" gorm:"primaryKey;size:191"`
	CustomerID string    `json:"customer_id" gorm:"not null;size:191;index"`
	Make       string    `json:"make" gorm:"not null;size:100"`
	Model      string    `json:"model" gorm:"not null;size:100"`
	Year       string    `json:"year" gorm:"not null;size:4"`
	Plate      string    `json:"plate" gorm:"size:20;index"`
	VIN        string    `json:"vin" gorm:"size:17"`
	Notes      string    `json:"notes" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Customer Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
}
