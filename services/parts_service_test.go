package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motoshop-api/models"
)

func TestAttachPart_DecrementsInventory(t *testing.T) {
	db := newTestDB(t)
	s := NewPartsService(db)
	part := seedInventoryPart(t, db, "Oil filter", 18.50, 10, 2)

	used, err := s.AttachPart(uuid.New().String(), AttachPartRequest{
		PartID:   part.ID,
		Quantity: 3,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, used.Quantity)
	assert.Equal(t, "Oil filter", used.PartName)
	assert.InDelta(t, 18.50, used.PriceEach, 1e-9)

	var reloaded models.InventoryPart
	require.NoError(t, db.First(&reloaded, "id = ?", part.ID).Error)
	assert.Equal(t, 7, reloaded.Quantity)
}

func TestAttachPart_ClampsStockAtZero(t *testing.T) {
	db := newTestDB(t)
	s := NewPartsService(db)
	part := seedInventoryPart(t, db, "Brake pads", 42.00, 5, 1)

	_, err := s.AttachPart(uuid.New().String(), AttachPartRequest{
		PartID:   part.ID,
		Quantity: 7,
	})
	require.NoError(t, err)

	var reloaded models.InventoryPart
	require.NoError(t, db.First(&reloaded, "id = ?", part.ID).Error)
	assert.Equal(t, 0, reloaded.Quantity, "stock must clamp at zero, never go negative")
}

func TestAttachPart_SnapshotOverrides(t *testing.T) {
	db := newTestDB(t)
	s := NewPartsService(db)
	part := seedInventoryPart(t, db, "Chain kit", 120.00, 4, 1)

	discounted := 99.50
	used, err := s.AttachPart(uuid.New().String(), AttachPartRequest{
		PartID:    part.ID,
		PartName:  "Chain kit (promo)",
		Quantity:  1,
		PriceEach: &discounted,
	})
	require.NoError(t, err)

	assert.Equal(t, "Chain kit (promo)", used.PartName)
	assert.InDelta(t, 99.50, used.PriceEach, 1e-9)
}

// The snapshot is immutable: renaming or repricing the inventory part later
// must not change the recorded line item.
func TestAttachPart_SnapshotSurvivesInventoryEdit(t *testing.T) {
	db := newTestDB(t)
	s := NewPartsService(db)
	part := seedInventoryPart(t, db, "Clutch lever", 35.00, 6, 1)

	used, err := s.AttachPart(uuid.New().String(), AttachPartRequest{
		PartID:   part.ID,
		Quantity: 1,
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.InventoryPart{}).Where("id = ?", part.ID).
		Updates(map[string]interface{}{"name": "Clutch lever v2", "price": 55.00}).Error)

	var reloaded models.UsedPart
	require.NoError(t, db.First(&reloaded, "id = ?", used.ID).Error)
	assert.Equal(t, "Clutch lever", reloaded.PartName)
	assert.InDelta(t, 35.00, reloaded.PriceEach, 1e-9)
}

func TestAttachPart_RejectsNonPositiveQuantity(t *testing.T) {
	db := newTestDB(t)
	s := NewPartsService(db)
	part := seedInventoryPart(t, db, "Grips", 15.00, 8, 2)

	_, err := s.AttachPart(uuid.New().String(), AttachPartRequest{
		PartID:   part.ID,
		Quantity: 0,
	})
	assert.Error(t, err)

	_, err = s.AttachPart(uuid.New().String(), AttachPartRequest{
		PartID:   part.ID,
		Quantity: -2,
	})
	assert.Error(t, err)

	var count int64
	db.Model(&models.UsedPart{}).Count(&count)
	assert.Zero(t, count)
}

func TestAttachPart_UnknownPart(t *testing.T) {
	db := newTestDB(t)
	s := NewPartsService(db)

	_, err := s.AttachPart(uuid.New().String(), AttachPartRequest{
		PartID:   uuid.New().String(),
		Quantity: 1,
	})
	assert.Error(t, err)
}

func TestAttachPart_ExactDepletion(t *testing.T) {
	db := newTestDB(t)
	s := NewPartsService(db)
	part := seedInventoryPart(t, db, "Fork oil", 12.00, 4, 2)

	_, err := s.AttachPart(uuid.New().String(), AttachPartRequest{
		PartID:   part.ID,
		Quantity: 4,
	})
	require.NoError(t, err)

	var reloaded models.InventoryPart
	require.NoError(t, db.First(&reloaded, "id = ?", part.ID).Error)
	assert.Equal(t, 0, reloaded.Quantity)
}
