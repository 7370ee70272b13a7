package models

import (
	"time"
)

// Repair statuses. Every transition between them is legal; entering
// StatusCompleted is the only one with a side effect (invoice generation).
const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

type Repair struct {
	ID            string     `json:"id" gorm:"primaryKey;size:191"`
	MotorcycleID  string     `json:"motorcycle_id" gorm:"not null;size:191;index"`
	CustomerID    string     `json:"customer_id" gorm:"not null;size:191;index"`
	Title         string     `json:"title" gorm:"not null;size:255"`
	Description   string     `json:"description" gorm:"not null;type:text"`
	Status        string     `json:"status" gorm:"not null;default:'pending';size:20;index"`
	DateCompleted *time.Time `json:"date_completed"`
	LaborHours    *float64   `json:"labor_hours"`
	LaborRate     *float64   `json:"labor_rate"`
	Notes         string     `json:"notes" gorm:"type:text"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	Motorcycle Motorcycle    `json:"motorcycle,omitempty" gorm:"foreignKey:MotorcycleID"`
	Customer   Customer      `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Photos     []RepairPhoto `json:"photos" gorm:"foreignKey:RepairID"`
	UsedParts  []UsedPart    `json:"used_parts" gorm:"foreignKey:RepairID"`
}

// IsValidStatus reports whether status is one of the known repair states.
func IsValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// UsedPart is a line item linking a repair to an inventory part. PartName and
// PriceEach are snapshots taken when the part is attached; they are never
// resynced from the inventory row afterwards.
type UsedPart struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	RepairID  string    `json:"repair_id" gorm:"not null;size:191;index"`
	PartID    string    `json:"part_id" gorm:"not null;size:191"`
	PartName  string    `json:"part_name" gorm:"not null;size:255"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	PriceEach float64   `json:"price_each" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

type RepairPhoto struct {
	ID         string    `json:"id" gorm:"primaryKey;size:191"`
	RepairID   string    `json:"repair_id" gorm:"not null;size:191;index"`
	ObjectPath string    `json:"object_path" gorm:"not null;size:500"`
	URL        string    `json:"url" gorm:"size:500"`
	Caption    string    `json:"caption" gorm:"size:255"`
	CreatedAt  time.Time `json:"created_at"`
}
