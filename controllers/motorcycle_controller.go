package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"motoshop-api/models"
	"motoshop-api/utils"
)

type MotorcycleController struct {
	db *gorm.DB
}

func NewMotorcycleController(db *gorm.DB) *MotorcycleController {
	return &MotorcycleController{db: db}
}

type MotorcycleRequest struct {
	CustomerID string `json:"customer_id" binding:"required"`
	Make       string `json:"make" binding:"required"`
	Model      string `json:"model" binding:"required"`
	Year       string `json:"year" binding:"required"`
	Plate      string `json:"plate"`
	VIN        string `json:"vin"`
	Notes      string `json:"notes"`
}

func (mc *MotorcycleController) GetMotorcycles(c *gin.Context) {
	query := mc.db.Order("created_at DESC")

	// cliente accounts only see their own garage
	if customerID, ok := clienteScope(c); ok {
		query = query.Where("customer_id = ?", customerID)
	} else if customerID := c.Query("customer_id"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}

	var motorcycles []models.Motorcycle
	if err := query.Find(&motorcycles).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch motorcycles")
		return
	}

	c.JSON(http.StatusOK, motorcycles)
}

func (mc *MotorcycleController) GetMotorcycle(c *gin.Context) {
	var motorcycle models.Motorcycle
	if err := mc.db.Preload("Customer").First(&motorcycle, "id = ?", c.Param("id")).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Motorcycle not found")
		return
	}

	if customerID, ok := clienteScope(c); ok && motorcycle.CustomerID != customerID {
		utils.SendError(c, http.StatusNotFound, "Motorcycle not found")
		return
	}

	c.JSON(http.StatusOK, motorcycle)
}

func (mc *MotorcycleController) CreateMotorcycle(c *gin.Context) {
	var req MotorcycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	if !utils.IsValidYear(req.Year) {
		utils.SendValidationError(c, "Invalid model year")
		return
	}
	if req.VIN != "" && !utils.IsValidVIN(req.VIN) {
		utils.SendValidationError(c, "Invalid VIN")
		return
	}

	motorcycle := models.Motorcycle{
		ID:         uuid.New().String(),
		CustomerID: req.CustomerID,
		Make:       req.Make,
		Model:      req.Model,
		Year:       req.Year,
		Plate:      req.Plate,
		VIN:        req.VIN,
		Notes:      req.Notes,
	}

	if err := mc.db.Create(&motorcycle).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to create motorcycle")
		return
	}

	utils.SendCreated(c, "Motorcycle created", motorcycle)
}

func (mc *MotorcycleController) UpdateMotorcycle(c *gin.Context) {
	var motorcycle models.Motorcycle
	if err := mc.db.First(&motorcycle, "id = ?", c.Param("id")).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Motorcycle not found")
		return
	}

	var req MotorcycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	updates := map[string]interface{}{
		"customer_id": req.CustomerID,
		"make":        req.Make,
		"model":       req.Model,
		"year":        req.Year,
		"plate":       req.Plate,
		"vin":         req.VIN,
		"notes":       req.Notes,
	}

	if err := mc.db.Model(&motorcycle).Updates(updates).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to update motorcycle")
		return
	}

	utils.SendSuccess(c, "Motorcycle updated", motorcycle)
}

func (mc *MotorcycleController) DeleteMotorcycle(c *gin.Context) {
	var motorcycle models.Motorcycle
	if err := mc.db.First(&motorcycle, "id = ?", c.Param("id")).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Motorcycle not found")
		return
	}

	if err := mc.db.Delete(&motorcycle).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to delete motorcycle")
		return
	}

	utils.SendSuccess(c, "Motorcycle deleted", nil)
}

// clienteScope returns the caller's customer id when the caller is a cliente
// account that must only see its own records.
func clienteScope(c *gin.Context) (string, bool) {
	if c.GetString("user_role") != models.RoleCliente {
		return "", false
	}
	customerID := c.GetString("customer_id")
	return customerID, customerID != ""
}
