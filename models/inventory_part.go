package models

import (
	"time"
)

// InventoryPart is a stock keeping unit. Quantity is kept at zero or above by
// the consumption path (clamped, not rejected), not by a database constraint.
type InventoryPart struct {
	ID              string    `json:"id" gorm:"primaryKey;size:191"`
	Name            string    `json:"name" gorm:"not null;size:255"`
	PartNumber      string    `json:"part_number" gorm:"uniqueIndex;not null;size:100"`
	Price           float64   `json:"price" gorm:"not null;default:0"`
	Cost            float64   `json:"cost" gorm:"not null;default:0"`
	Quantity        int       `json:"quantity" gorm:"not null;default:0"`
	MinimumQuantity int       `json:"minimum_quantity" gorm:"not null;default:0"`
	Location        string    `json:"location" gorm:"size:100"`
	Supplier        string    `json:"supplier" gorm:"size:255"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// IsLowStock reports whether the part is at or below its reorder threshold.
func (p *InventoryPart) IsLowStock() bool {
	return p.Quantity <= p.MinimumQuantity
}
