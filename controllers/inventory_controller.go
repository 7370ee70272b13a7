package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"motoshop-api/models"
	"motoshop-api/utils"
)

type InventoryController struct {
	db *gorm.DB
}

func NewInventoryController(db *gorm.DB) *InventoryController {
	return &InventoryController{db: db}
}

type InventoryPartRequest struct {
	Name            string  `json:"name" binding:"required"`
	PartNumber      string  `json:"part_number" binding:"required"`
	Price           float64 `json:"price"`
	Cost            float64 `json:"cost"`
	Quantity        int     `json:"quantity"`
	MinimumQuantity int     `json:"minimum_quantity"`
	Location        string  `json:"location"`
	Supplier        string  `json:"supplier"`
}

func (ic *InventoryController) GetParts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	search := c.Query("search")

	query := ic.db.Model(&models.InventoryPart{})
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR part_number LIKE ?", like, like)
	}

	var total int64
	query.Count(&total)

	var parts []models.InventoryPart
	if err := query.Order("name ASC").Offset((page - 1) * limit).Limit(limit).Find(&parts).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch inventory")
		return
	}

	utils.SendPaginated(c, parts, page, limit, total)
}

// GetLowStock lists parts at or below their reorder threshold.
func (ic *InventoryController) GetLowStock(c *gin.Context) {
	var parts []models.InventoryPart
	if err := ic.db.Where("quantity <= minimum_quantity").Order("quantity ASC").Find(&parts).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch low stock parts")
		return
	}

	c.JSON(http.StatusOK, parts)
}

func (ic *InventoryController) GetPart(c *gin.Context) {
	var part models.InventoryPart
	if err := ic.db.First(&part, "id = ?", c.Param("id")).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Part not found")
		return
	}

	c.JSON(http.StatusOK, part)
}

func (ic *InventoryController) CreatePart(c *gin.Context) {
	var req InventoryPartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	if !utils.IsValidPrice(req.Price) || !utils.IsValidPrice(req.Cost) {
		utils.SendValidationError(c, "Price and cost must not be negative")
		return
	}
	if req.Quantity < 0 {
		utils.SendValidationError(c, "Quantity must not be negative")
		return
	}

	part := models.InventoryPart{
		ID:              uuid.New().String(),
		Name:            req.Name,
		PartNumber:      req.PartNumber,
		Price:           req.Price,
		Cost:            req.Cost,
		Quantity:        req.Quantity,
		MinimumQuantity: req.MinimumQuantity,
		Location:        req.Location,
		Supplier:        req.Supplier,
	}

	if err := ic.db.Create(&part).Error; err != nil {
		utils.SendError(c, http.StatusConflict, "Failed to create part (duplicate part number?)")
		return
	}

	utils.SendCreated(c, "Part created", part)
}

func (ic *InventoryController) UpdatePart(c *gin.Context) {
	var part models.InventoryPart
	if err := ic.db.First(&part, "id = ?", c.Param("id")).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Part not found")
		return
	}

	var req InventoryPartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	if req.Quantity < 0 {
		utils.SendValidationError(c, "Quantity must not be negative")
		return
	}

	updates := map[string]interface{}{
		"name":             req.Name,
		"part_number":      req.PartNumber,
		"price":            req.Price,
		"cost":             req.Cost,
		"quantity":         req.Quantity,
		"minimum_quantity": req.MinimumQuantity,
		"location":         req.Location,
		"supplier":         req.Supplier,
	}

	if err := ic.db.Model(&part).Updates(updates).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to update part")
		return
	}

	utils.SendSuccess(c, "Part updated", part)
}

func (ic *InventoryController) DeletePart(c *gin.Context) {
	var part models.InventoryPart
	if err := ic.db.First(&part, "id = ?", c.Param("id")).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Part not found")
		return
	}

	if err := ic.db.Delete(&part).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to delete part")
		return
	}

	utils.SendSuccess(c, "Part deleted", nil)
}
