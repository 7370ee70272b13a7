package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"motoshop-api/models"
)

// AttachPartRequest records one inventory part consumed by a repair.
// PartName and PriceEach are snapshots; when omitted they are filled from
// the current inventory row at attach time.
type AttachPartRequest struct {
	PartID    string   `json:"part_id" binding:"required"`
	PartName  string   `json:"part_name"`
	Quantity  int      `json:"quantity" binding:"required,gt=0"`
	PriceEach *float64 `json:"price_each"`
}

// PartsService attaches used parts to repairs and keeps inventory counts in
// step, best effort.
type PartsService struct {
	db *gorm.DB
}

func NewPartsService(db *gorm.DB) *PartsService {
	return &PartsService{db: db}
}

// AttachPart writes the used-part row first and then decrements the matching
// inventory quantity, clamped at zero. The two writes are not transactional:
// if the decrement fails the used-part row stays, favoring a complete repair
// record over accurate stock bookkeeping. Decrement failures are logged and
// never propagated.
func (s *PartsService) AttachPart(repairID string, req AttachPartRequest) (*models.UsedPart, error) {
	if req.Quantity <= 0 {
		return nil, errors.New("quantity must be a positive integer")
	}

	var part models.InventoryPart
	if err := s.db.First(&part, "id = ?", req.PartID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("inventory part not found")
		}
		return nil, err
	}

	name := req.PartName
	if name == "" {
		name = part.Name
	}
	price := part.Price
	if req.PriceEach != nil {
		price = *req.PriceEach
	}

	used := models.UsedPart{
		ID:        uuid.New().String(),
		RepairID:  repairID,
		PartID:    part.ID,
		PartName:  name,
		Quantity:  req.Quantity,
		PriceEach: price,
	}
	if err := s.db.Create(&used).Error; err != nil {
		return nil, err
	}

	s.consumeStock(&part, req.Quantity)

	return &used, nil
}

// consumeStock lowers the part's quantity by qty, never below zero. The
// read-then-write is unserialized, so concurrent attaches against the same
// part can lose an update; that hazard is accepted.
func (s *PartsService) consumeStock(part *models.InventoryPart, qty int) {
	newQuantity := part.Quantity - qty
	if newQuantity < 0 {
		newQuantity = 0
	}

	err := s.db.Model(part).Update("quantity", newQuantity).Error
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"part_id":  part.ID,
			"quantity": qty,
		}).Warn("Inventory decrement failed; used part recorded without stock update")
		return
	}

	part.Quantity = newQuantity
	if part.IsLowStock() {
		logrus.WithFields(logrus.Fields{
			"part_id":     part.ID,
			"part_number": part.PartNumber,
			"quantity":    part.Quantity,
			"minimum":     part.MinimumQuantity,
		}).Info("Part at or below reorder threshold")
	}
}
