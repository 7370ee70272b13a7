package repositories

import (
	"gorm.io/gorm"

	"motoshop-api/models"
)

type RepairRepository struct {
	db *gorm.DB
}

func NewRepairRepository(db *gorm.DB) *RepairRepository {
	return &RepairRepository{db: db}
}

func (r *RepairRepository) Create(repair *models.Repair) error {
	return r.db.Create(repair).Error
}

// GetByID returns the base repair row without its collections.
func (r *RepairRepository) GetByID(id string) (*models.Repair, error) {
	var repair models.Repair
	if err := r.db.First(&repair, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &repair, nil
}

func (r *RepairRepository) GetPhotos(repairID string) ([]models.RepairPhoto, error) {
	var photos []models.RepairPhoto
	if err := r.db.Where("repair_id = ?", repairID).Order("created_at ASC").Find(&photos).Error; err != nil {
		return nil, err
	}
	return photos, nil
}

func (r *RepairRepository) GetUsedParts(repairID string) ([]models.UsedPart, error) {
	var parts []models.UsedPart
	if err := r.db.Where("repair_id = ?", repairID).Order("created_at ASC").Find(&parts).Error; err != nil {
		return nil, err
	}
	return parts, nil
}

// Updates applies a partial column update to one repair row.
func (r *RepairRepository) Updates(id string, fields map[string]interface{}) error {
	return r.db.Model(&models.Repair{}).Where("id = ?", id).Updates(fields).Error
}

func (r *RepairRepository) List(filter map[string]interface{}) ([]models.Repair, error) {
	var repairs []models.Repair
	query := r.db.Order("created_at DESC")
	if len(filter) > 0 {
		query = query.Where(filter)
	}
	if err := query.Find(&repairs).Error; err != nil {
		return nil, err
	}
	return repairs, nil
}

func (r *RepairRepository) DeletePhotos(repairID string) error {
	return r.db.Where("repair_id = ?", repairID).Delete(&models.RepairPhoto{}).Error
}

func (r *RepairRepository) DeleteUsedParts(repairID string) error {
	return r.db.Where("repair_id = ?", repairID).Delete(&models.UsedPart{}).Error
}

func (r *RepairRepository) DeleteRepair(id string) error {
	return r.db.Delete(&models.Repair{}, "id = ?", id).Error
}
