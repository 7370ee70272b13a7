package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"motoshop-api/models"
	"motoshop-api/repositories"
)

var ErrRepairNotFound = errors.New("repair not found")

// CreateRepairRequest carries the required fields for a new work order.
type CreateRepairRequest struct {
	MotorcycleID string   `json:"motorcycle_id" binding:"required"`
	CustomerID   string   `json:"customer_id" binding:"required"`
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description" binding:"required"`
	LaborHours   *float64 `json:"labor_hours"`
	LaborRate    *float64 `json:"labor_rate"`
	Notes        string   `json:"notes"`
}

// UpdateRepairRequest is a partial update; nil fields are left untouched.
type UpdateRepairRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Status      *string  `json:"status"`
	LaborHours  *float64 `json:"labor_hours"`
	LaborRate   *float64 `json:"labor_rate"`
	Notes       *string  `json:"notes"`
}

// RepairService owns the work order lifecycle: creation, partial updates,
// the completion side effect and the ordered cascade delete.
type RepairService struct {
	repo    *repositories.RepairRepository
	billing *BillingService
	storage *StorageService // nil when object storage is not configured
}

func NewRepairService(repo *repositories.RepairRepository, billing *BillingService, storage *StorageService) *RepairService {
	return &RepairService{
		repo:    repo,
		billing: billing,
		storage: storage,
	}
}

// Create persists a new repair with status pending and empty collections.
func (s *RepairService) Create(req CreateRepairRequest) (*models.Repair, error) {
	repair := &models.Repair{
		ID:           uuid.New().String(),
		MotorcycleID: req.MotorcycleID,
		CustomerID:   req.CustomerID,
		Title:        req.Title,
		Description:  req.Description,
		Status:       models.StatusPending,
		LaborHours:   req.LaborHours,
		LaborRate:    req.LaborRate,
		Notes:        req.Notes,
	}

	if err := s.repo.Create(repair); err != nil {
		return nil, err
	}

	repair.Photos = []models.RepairPhoto{}
	repair.UsedParts = []models.UsedPart{}
	return repair, nil
}

// Update applies a partial update and always refreshes updated_at. When the
// update sets status to completed it also stamps date_completed and triggers
// invoice generation; a billing failure is logged and swallowed so the status
// change the caller asked for stands either way. Only a persistence failure
// on the update itself is returned.
func (s *RepairService) Update(id string, req UpdateRepairRequest) (*models.Repair, error) {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRepairNotFound
		}
		return nil, err
	}

	if req.Status != nil && !models.IsValidStatus(*req.Status) {
		return nil, errors.New("invalid repair status: " + *req.Status)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"updated_at": now,
	}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.LaborHours != nil {
		updates["labor_hours"] = *req.LaborHours
	}
	if req.LaborRate != nil {
		updates["labor_rate"] = *req.LaborRate
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	completing := req.Status != nil && *req.Status == models.StatusCompleted
	if completing {
		updates["date_completed"] = now
	}

	if err := s.repo.Updates(id, updates); err != nil {
		return nil, err
	}

	repair, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if completing {
		if _, err := s.billing.GenerateInvoice(repair); err != nil {
			// Deliberately swallowed: the completed status is already
			// committed and there is no compensation path. The repair ends
			// up completed without an invoice until reconciliation spots it.
			logrus.WithError(err).WithField("repair_id", repair.ID).Error("Invoice generation failed after repair completion")
		}
	}

	return repair, nil
}

// GetByID returns the repair with its photos and used parts, loaded as two
// extra reads after the base row.
func (s *RepairService) GetByID(id string) (*models.Repair, error) {
	repair, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRepairNotFound
		}
		return nil, err
	}

	photos, err := s.repo.GetPhotos(id)
	if err != nil {
		return nil, err
	}
	parts, err := s.repo.GetUsedParts(id)
	if err != nil {
		return nil, err
	}

	repair.Photos = photos
	repair.UsedParts = parts
	return repair, nil
}

// List returns repairs newest first, optionally filtered by customer and/or
// status.
func (s *RepairService) List(customerID, status string) ([]models.Repair, error) {
	filter := map[string]interface{}{}
	if customerID != "" {
		filter["customer_id"] = customerID
	}
	if status != "" {
		filter["status"] = status
	}
	return s.repo.List(filter)
}

// Delete removes the repair's photos, then its used parts, then the repair
// row, in that order. A failed step aborts the sequence and leaves whatever
// already happened in place; there is no rollback.
func (s *RepairService) Delete(id string) error {
	repair, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRepairNotFound
		}
		return err
	}

	s.removeStoredPhotos(id)

	if err := s.repo.DeletePhotos(id); err != nil {
		return err
	}
	if err := s.repo.DeleteUsedParts(id); err != nil {
		return err
	}
	return s.repo.DeleteRepair(repair.ID)
}

// removeStoredPhotos deletes the repair's photo objects from object storage.
// Best effort: a storage failure is logged and the row cascade proceeds.
func (s *RepairService) removeStoredPhotos(repairID string) {
	if s.storage == nil {
		return
	}

	photos, err := s.repo.GetPhotos(repairID)
	if err != nil || len(photos) == 0 {
		return
	}

	paths := make([]string, 0, len(photos))
	for _, photo := range photos {
		paths = append(paths, photo.ObjectPath)
	}

	if err := s.storage.Remove(paths); err != nil {
		logrus.WithError(err).WithField("repair_id", repairID).Warn("Failed to remove repair photos from storage")
	}
}
