package services

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motoshop-api/models"
)

func floatPtr(v float64) *float64 { return &v }

func TestGenerateInvoice_Totals(t *testing.T) {
	db := newTestDB(t)
	customerID, motorcycleID := seedCustomerAndMotorcycle(t, db)
	billing := NewBillingService(db, nil)

	repair := &models.Repair{
		ID:           uuid.New().String(),
		MotorcycleID: motorcycleID,
		CustomerID:   customerID,
		Title:        "Full service",
		Description:  "Oil change and brake pads",
		Status:       models.StatusCompleted,
		LaborHours:   floatPtr(2),
		LaborRate:    floatPtr(60),
		UsedParts: []models.UsedPart{
			{Quantity: 4, PriceEach: 18.50},
			{Quantity: 1, PriceEach: 15.75},
		},
	}

	invoice, err := billing.GenerateInvoice(repair)
	require.NoError(t, err)

	// partsCost = 4*18.50 + 1*15.75 = 89.75; laborCost = 120
	assert.InDelta(t, 209.75, invoice.Subtotal, 1e-9)
	assert.InDelta(t, 46.145, invoice.Tax, 1e-9)
	assert.InDelta(t, 255.895, invoice.Total, 1e-9)
	assert.Equal(t, models.InvoiceDraft, invoice.Status)
	assert.Equal(t, repair.ID, invoice.RepairID)
	assert.Equal(t, customerID, invoice.CustomerID)

	var stored models.Invoice
	require.NoError(t, db.First(&stored, "id = ?", invoice.ID).Error)
	assert.InDelta(t, invoice.Total, stored.Total, 1e-9)
}

func TestGenerateInvoice_NumberFormat(t *testing.T) {
	db := newTestDB(t)
	customerID, motorcycleID := seedCustomerAndMotorcycle(t, db)
	billing := NewBillingService(db, nil)

	repair := &models.Repair{
		ID:           uuid.New().String(),
		MotorcycleID: motorcycleID,
		CustomerID:   customerID,
		Title:        "Chain replacement",
		Description:  "Replace chain and sprockets",
		Status:       models.StatusCompleted,
	}

	invoice, err := billing.GenerateInvoice(repair)
	require.NoError(t, err)

	prefix := "INV-" + time.Now().Format("2006") + "-"
	assert.True(t, strings.HasPrefix(invoice.Number, prefix), "number %q should start with %q", invoice.Number, prefix)
}

func TestGenerateInvoice_DueDate(t *testing.T) {
	db := newTestDB(t)
	customerID, motorcycleID := seedCustomerAndMotorcycle(t, db)
	billing := NewBillingService(db, nil)

	repair := &models.Repair{
		ID:           uuid.New().String(),
		MotorcycleID: motorcycleID,
		CustomerID:   customerID,
		Title:        "Tire swap",
		Description:  "Front and rear tires",
		Status:       models.StatusCompleted,
	}

	invoice, err := billing.GenerateInvoice(repair)
	require.NoError(t, err)

	want := invoice.Date.AddDate(0, 0, InvoiceDueDays)
	assert.WithinDuration(t, want, invoice.DueDate, time.Second)
}

func TestGenerateInvoice_NilLaborDefaultsToZero(t *testing.T) {
	db := newTestDB(t)
	customerID, motorcycleID := seedCustomerAndMotorcycle(t, db)
	billing := NewBillingService(db, nil)

	repair := &models.Repair{
		ID:           uuid.New().String(),
		MotorcycleID: motorcycleID,
		CustomerID:   customerID,
		Title:        "Diagnosis only",
		Description:  "Electrical fault diagnosis",
		Status:       models.StatusCompleted,
		UsedParts: []models.UsedPart{
			{Quantity: 2, PriceEach: 10},
		},
	}

	invoice, err := billing.GenerateInvoice(repair)
	require.NoError(t, err)

	assert.InDelta(t, 20.0, invoice.Subtotal, 1e-9)
	assert.InDelta(t, 20.0*TaxRate, invoice.Tax, 1e-9)
}

func TestGenerateInvoice_NoPartsNoLabor(t *testing.T) {
	db := newTestDB(t)
	customerID, motorcycleID := seedCustomerAndMotorcycle(t, db)
	billing := NewBillingService(db, nil)

	repair := &models.Repair{
		ID:           uuid.New().String(),
		MotorcycleID: motorcycleID,
		CustomerID:   customerID,
		Title:        "Goodwill check",
		Description:  "Visual inspection, no charge",
		Status:       models.StatusCompleted,
	}

	invoice, err := billing.GenerateInvoice(repair)
	require.NoError(t, err)

	assert.Zero(t, invoice.Subtotal)
	assert.Zero(t, invoice.Tax)
	assert.Zero(t, invoice.Total)
}
