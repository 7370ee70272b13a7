package models

import (
	"time"
)

// Invoice statuses.
const (
	InvoiceDraft   = "draft"
	InvoiceSent    = "sent"
	InvoicePaid    = "paid"
	InvoiceOverdue = "overdue"
)

// Invoice is the billing document derived from a completed repair. It is
// created by the billing service and manually editable afterwards; it is
// never deleted when the repair changes again.
type Invoice struct {
	ID         string    `json:"id" gorm:"primaryKey;size:191"`
	RepairID   string    `json:"repair_id" gorm:"not null;size:191;index"`
	CustomerID string    `json:"customer_id" gorm:"not null;size:191;index"`
	Number     string    `json:"number" gorm:"not null;size:50;index"`
	Date       time.Time `json:"date"`
	DueDate    time.Time `json:"due_date"`
	Subtotal   float64   `json:"subtotal" gorm:"not null"`
	Tax        float64   `json:"tax" gorm:"not null"`
	Total      float64   `json:"total" gorm:"not null"`
	Notes      string    `json:"notes" gorm:"type:text"`
	Status     string    `json:"status" gorm:"not null;default:'draft';size:20"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Customer Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
}

// IsValidInvoiceStatus reports whether status is one of the known invoice states.
func IsValidInvoiceStatus(status string) bool {
	switch status {
	case InvoiceDraft, InvoiceSent, InvoicePaid, InvoiceOverdue:
		return true
	}
	return false
}
