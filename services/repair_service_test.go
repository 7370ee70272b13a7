package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"motoshop-api/models"
	"motoshop-api/repositories"
)

func newRepairService(t *testing.T) (*RepairService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	billing := NewBillingService(db, nil)
	repo := repositories.NewRepairRepository(db)
	return NewRepairService(repo, billing, nil), db
}

func createTestRepair(t *testing.T, s *RepairService, db *gorm.DB) *models.Repair {
	t.Helper()
	customerID, motorcycleID := seedCustomerAndMotorcycle(t, db)

	repair, err := s.Create(CreateRepairRequest{
		MotorcycleID: motorcycleID,
		CustomerID:   customerID,
		Title:        "Valve clearance check",
		Description:  "15000 km service",
		LaborHours:   floatPtr(2),
		LaborRate:    floatPtr(60),
	})
	require.NoError(t, err)
	return repair
}

func TestCreateRepair_DefaultsToPending(t *testing.T) {
	s, db := newRepairService(t)
	repair := createTestRepair(t, s, db)

	assert.Equal(t, models.StatusPending, repair.Status)
	assert.Nil(t, repair.DateCompleted)
	assert.Empty(t, repair.Photos)
	assert.Empty(t, repair.UsedParts)
	assert.NotEmpty(t, repair.ID)
}

func TestUpdateRepair_PartialFields(t *testing.T) {
	s, db := newRepairService(t)
	repair := createTestRepair(t, s, db)

	title := "Valve clearance and throttle sync"
	updated, err := s.Update(repair.ID, UpdateRepairRequest{Title: &title})
	require.NoError(t, err)

	assert.Equal(t, title, updated.Title)
	// untouched fields survive a partial update
	assert.Equal(t, repair.Description, updated.Description)
	assert.Equal(t, models.StatusPending, updated.Status)
}

func TestUpdateRepair_NotFound(t *testing.T) {
	s, _ := newRepairService(t)

	title := "whatever"
	_, err := s.Update(uuid.New().String(), UpdateRepairRequest{Title: &title})
	assert.ErrorIs(t, err, ErrRepairNotFound)
}

func TestUpdateRepair_InvalidStatusRejected(t *testing.T) {
	s, db := newRepairService(t)
	repair := createTestRepair(t, s, db)

	bogus := "on-hold"
	_, err := s.Update(repair.ID, UpdateRepairRequest{Status: &bogus})
	assert.Error(t, err)
}

func TestCompletion_GeneratesExactlyOneInvoice(t *testing.T) {
	s, db := newRepairService(t)
	repair := createTestRepair(t, s, db)

	// attach parts directly so the invoice has line items to price
	parts := []models.UsedPart{
		{ID: uuid.New().String(), RepairID: repair.ID, PartID: "p1", PartName: "Oil filter", Quantity: 4, PriceEach: 18.50},
		{ID: uuid.New().String(), RepairID: repair.ID, PartID: "p2", PartName: "Crush washer", Quantity: 1, PriceEach: 15.75},
	}
	for _, p := range parts {
		require.NoError(t, db.Create(&p).Error)
	}

	status := models.StatusCompleted
	updated, err := s.Update(repair.ID, UpdateRepairRequest{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, models.StatusCompleted, updated.Status)
	require.NotNil(t, updated.DateCompleted)
	assert.WithinDuration(t, time.Now(), *updated.DateCompleted, 5*time.Second)

	var invoices []models.Invoice
	require.NoError(t, db.Where("repair_id = ?", repair.ID).Find(&invoices).Error)
	require.Len(t, invoices, 1)

	assert.InDelta(t, 209.75, invoices[0].Subtotal, 1e-9)
	assert.InDelta(t, 46.145, invoices[0].Tax, 1e-9)
	assert.InDelta(t, 255.895, invoices[0].Total, 1e-9)
}

func TestNonCompletionUpdate_CreatesNoInvoice(t *testing.T) {
	s, db := newRepairService(t)
	repair := createTestRepair(t, s, db)

	status := models.StatusInProgress
	_, err := s.Update(repair.ID, UpdateRepairRequest{Status: &status})
	require.NoError(t, err)

	notes := "waiting for parts"
	_, err = s.Update(repair.ID, UpdateRepairRequest{Notes: &notes})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Invoice{}).Where("repair_id = ?", repair.ID).Count(&count).Error)
	assert.Zero(t, count)
}

// Re-completing a repair produces a second invoice. This documents the
// current behavior: there is no idempotency guard on invoice generation.
func TestRecompletion_ProducesSecondInvoice(t *testing.T) {
	s, db := newRepairService(t)
	repair := createTestRepair(t, s, db)

	completed := models.StatusCompleted
	inProgress := models.StatusInProgress

	_, err := s.Update(repair.ID, UpdateRepairRequest{Status: &completed})
	require.NoError(t, err)
	_, err = s.Update(repair.ID, UpdateRepairRequest{Status: &inProgress})
	require.NoError(t, err)
	_, err = s.Update(repair.ID, UpdateRepairRequest{Status: &completed})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Invoice{}).Where("repair_id = ?", repair.ID).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestGetByID_LoadsCollections(t *testing.T) {
	s, db := newRepairService(t)
	repair := createTestRepair(t, s, db)

	used := models.UsedPart{
		ID:       uuid.New().String(),
		RepairID: repair.ID,
		PartID:   "p1",
		PartName: "Spark plug",
		Quantity: 2, PriceEach: 9.90,
	}
	require.NoError(t, db.Create(&used).Error)

	photo := models.RepairPhoto{
		ID:         uuid.New().String(),
		RepairID:   repair.ID,
		ObjectPath: "repairs/" + repair.ID + "/1.jpg",
	}
	require.NoError(t, db.Create(&photo).Error)

	got, err := s.GetByID(repair.ID)
	require.NoError(t, err)
	assert.Len(t, got.UsedParts, 1)
	assert.Len(t, got.Photos, 1)
}

func TestGetByID_NotFound(t *testing.T) {
	s, _ := newRepairService(t)

	_, err := s.GetByID(uuid.New().String())
	assert.ErrorIs(t, err, ErrRepairNotFound)
}

func TestDeleteRepair_RemovesPhotosAndParts(t *testing.T) {
	s, db := newRepairService(t)
	repair := createTestRepair(t, s, db)

	require.NoError(t, db.Create(&models.UsedPart{
		ID: uuid.New().String(), RepairID: repair.ID, PartID: "p1",
		PartName: "Air filter", Quantity: 1, PriceEach: 22.00,
	}).Error)
	require.NoError(t, db.Create(&models.RepairPhoto{
		ID: uuid.New().String(), RepairID: repair.ID,
		ObjectPath: "repairs/" + repair.ID + "/before.jpg",
	}).Error)

	require.NoError(t, s.Delete(repair.ID))

	var photoCount, partCount, repairCount int64
	db.Model(&models.RepairPhoto{}).Where("repair_id = ?", repair.ID).Count(&photoCount)
	db.Model(&models.UsedPart{}).Where("repair_id = ?", repair.ID).Count(&partCount)
	db.Model(&models.Repair{}).Where("id = ?", repair.ID).Count(&repairCount)

	assert.Zero(t, photoCount)
	assert.Zero(t, partCount)
	assert.Zero(t, repairCount)
}

func TestListRepairs_FiltersByCustomerAndStatus(t *testing.T) {
	s, db := newRepairService(t)
	repair := createTestRepair(t, s, db)

	otherCustomer, otherMotorcycle := seedCustomerAndMotorcycle(t, db)
	_, err := s.Create(CreateRepairRequest{
		MotorcycleID: otherMotorcycle,
		CustomerID:   otherCustomer,
		Title:        "Fork seals",
		Description:  "Leaking fork seals",
	})
	require.NoError(t, err)

	mine, err := s.List(repair.CustomerID, "")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, repair.ID, mine[0].ID)

	pending, err := s.List("", models.StatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	completed, err := s.List("", models.StatusCompleted)
	require.NoError(t, err)
	assert.Empty(t, completed)
}
