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

type CustomerController struct {
	db *gorm.DB
}

func NewCustomerController(db *gorm.DB) *CustomerController {
	return &CustomerController{db: db}
}

type CustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

func (cc *CustomerController) GetCustomers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	search := c.Query("search")

	query := cc.db.Model(&models.Customer{})
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR email LIKE ? OR phone LIKE ?", like, like, like)
	}

	var total int64
	query.Count(&total)

	var customers []models.Customer
	if err := query.Order("name ASC").Offset((page - 1) * limit).Limit(limit).Find(&customers).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch customers")
		return
	}

	utils.SendPaginated(c, customers, page, limit, total)
}

func (cc *CustomerController) GetCustomer(c *gin.Context) {
	var customer models.Customer
	if err := cc.db.Preload("Motorcycles").First(&customer, "id = ?", c.Param("id")).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Customer not found")
		return
	}

	c.JSON(http.StatusOK, customer)
}

func (cc *CustomerController) CreateCustomer(c *gin.Context) {
	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	if req.Email != "" && !utils.IsValidEmail(req.Email) {
		utils.SendValidationError(c, "Invalid email address")
		return
	}

	customer := models.Customer{
		ID:      uuid.New().String(),
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Notes:   req.Notes,
	}

	if err := cc.db.Create(&customer).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to create customer")
		return
	}

	utils.SendCreated(c, "Customer created", customer)
}

func (cc *CustomerController) UpdateCustomer(c *gin.Context) {
	var customer models.Customer
	if err := cc.db.First(&customer, "id = ?", c.Param("id")).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Customer not found")
		return
	}

	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	updates := map[string]interface{}{
		"name":    req.Name,
		"email":   req.Email,
		"phone":   req.Phone,
		"address": req.Address,
		"notes":   req.Notes,
	}

	if err := cc.db.Model(&customer).Updates(updates).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to update customer")
		return
	}

	utils.SendSuccess(c, "Customer updated", customer)
}

func (cc *CustomerController) DeleteCustomer(c *gin.Context) {
	var customer models.Customer
	if err := cc.db.First(&customer, "id = ?", c.Param("id")).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Customer not found")
		return
	}

	if err := cc.db.Delete(&customer).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to delete customer")
		return
	}

	utils.SendSuccess(c, "Customer deleted", nil)
}
