package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"motoshop-api/models"
	"motoshop-api/services"
	"motoshop-api/utils"
)

type RepairController struct {
	db      *gorm.DB
	repairs *services.RepairService
	parts   *services.PartsService
	storage *services.StorageService
}

func NewRepairController(db *gorm.DB, repairs *services.RepairService, parts *services.PartsService, storage *services.StorageService) *RepairController {
	return &RepairController{
		db:      db,
		repairs: repairs,
		parts:   parts,
		storage: storage,
	}
}

func (rc *RepairController) GetRepairs(c *gin.Context) {
	customerID := c.Query("customer_id")
	if scoped, ok := clienteScope(c); ok {
		customerID = scoped
	}

	repairs, err := rc.repairs.List(customerID, c.Query("status"))
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch repairs")
		return
	}

	c.JSON(http.StatusOK, repairs)
}

func (rc *RepairController) GetRepair(c *gin.Context) {
	repair, err := rc.repairs.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrRepairNotFound) {
			utils.SendError(c, http.StatusNotFound, "Repair not found")
			return
		}
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch repair")
		return
	}

	if customerID, ok := clienteScope(c); ok && repair.CustomerID != customerID {
		utils.SendError(c, http.StatusNotFound, "Repair not found")
		return
	}

	c.JSON(http.StatusOK, repair)
}

func (rc *RepairController) CreateRepair(c *gin.Context) {
	var req services.CreateRepairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	repair, err := rc.repairs.Create(req)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to create repair")
		return
	}

	utils.SendCreated(c, "Repair created", repair)
}

func (rc *RepairController) UpdateRepair(c *gin.Context) {
	var req services.UpdateRepairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	repair, err := rc.repairs.Update(c.Param("id"), req)
	if err != nil {
		if errors.Is(err, services.ErrRepairNotFound) {
			utils.SendError(c, http.StatusNotFound, "Repair not found")
			return
		}
		utils.SendError(c, http.StatusBadRequest, err.Error())
		return
	}

	utils.SendSuccess(c, "Repair updated", repair)
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus changes only the repair status. Completion triggers invoice
// generation inside the repair service.
func (rc *RepairController) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	repair, err := rc.repairs.Update(c.Param("id"), services.UpdateRepairRequest{Status: &req.Status})
	if err != nil {
		if errors.Is(err, services.ErrRepairNotFound) {
			utils.SendError(c, http.StatusNotFound, "Repair not found")
			return
		}
		utils.SendError(c, http.StatusBadRequest, err.Error())
		return
	}

	utils.SendSuccess(c, "Repair status updated", repair)
}

func (rc *RepairController) DeleteRepair(c *gin.Context) {
	if err := rc.repairs.Delete(c.Param("id")); err != nil {
		if errors.Is(err, services.ErrRepairNotFound) {
			utils.SendError(c, http.StatusNotFound, "Repair not found")
			return
		}
		utils.SendError(c, http.StatusInternalServerError, "Failed to delete repair")
		return
	}

	utils.SendSuccess(c, "Repair deleted", nil)
}

// AttachPart records an inventory part as consumed by the repair.
func (rc *RepairController) AttachPart(c *gin.Context) {
	repairID := c.Param("id")

	if _, err := rc.repairs.GetByID(repairID); err != nil {
		utils.SendError(c, http.StatusNotFound, "Repair not found")
		return
	}

	var req services.AttachPartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	if !utils.IsValidQuantity(req.Quantity) {
		utils.SendValidationError(c, "Quantity must be a positive integer")
		return
	}
	if req.PriceEach != nil && !utils.IsValidPrice(*req.PriceEach) {
		utils.SendValidationError(c, "Price must not be negative")
		return
	}

	used, err := rc.parts.AttachPart(repairID, req)
	if err != nil {
		utils.SendError(c, http.StatusBadRequest, err.Error())
		return
	}

	utils.SendCreated(c, "Part attached to repair", used)
}

// UploadPhoto stores a photo in object storage and records it on the repair.
func (rc *RepairController) UploadPhoto(c *gin.Context) {
	repairID := c.Param("id")

	if _, err := rc.repairs.GetByID(repairID); err != nil {
		utils.SendError(c, http.StatusNotFound, "Repair not found")
		return
	}
	if rc.storage == nil {
		utils.SendError(c, http.StatusServiceUnavailable, "Photo storage not configured")
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		utils.SendValidationError(c, "Missing photo file")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	objectPath := fmt.Sprintf("repairs/%s/%d%s", repairID, time.Now().UnixMilli(), filepath.Ext(fileHeader.Filename))
	contentType := fileHeader.Header.Get("Content-Type")

	if _, err := rc.storage.Upload(c.Request.Context(), objectPath, file, fileHeader.Size, contentType); err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to upload photo")
		return
	}

	photo := models.RepairPhoto{
		ID:         uuid.New().String(),
		RepairID:   repairID,
		ObjectPath: objectPath,
		URL:        rc.storage.PublicURL(objectPath),
		Caption:    c.PostForm("caption"),
	}

	if err := rc.db.Create(&photo).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to save photo record")
		return
	}

	utils.SendCreated(c, "Photo uploaded", photo)
}

func (rc *RepairController) GetPhotos(c *gin.Context) {
	repairID := c.Param("id")

	var photos []models.RepairPhoto
	if err := rc.db.Where("repair_id = ?", repairID).Order("created_at ASC").Find(&photos).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch photos")
		return
	}

	c.JSON(http.StatusOK, photos)
}

// GetPhotoURL returns a short-lived signed download URL for one photo.
func (rc *RepairController) GetPhotoURL(c *gin.Context) {
	if rc.storage == nil {
		utils.SendError(c, http.StatusServiceUnavailable, "Photo storage not configured")
		return
	}

	var photo models.RepairPhoto
	if err := rc.db.First(&photo, "id = ? AND repair_id = ?", c.Param("photoId"), c.Param("id")).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Photo not found")
		return
	}

	url, err := rc.storage.SignedURL(c.Request.Context(), photo.ObjectPath, 15*time.Minute)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to sign photo URL")
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
