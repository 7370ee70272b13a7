package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"motoshop-api/models"
	"motoshop-api/utils"
)

// InvoiceController exposes invoices for listing and manual edits. Invoices
// are only ever created by the billing service on repair completion.
type InvoiceController struct {
	db *gorm.DB
}

func NewInvoiceController(db *gorm.DB) *InvoiceController {
	return &InvoiceController{db: db}
}

func (ic *InvoiceController) GetInvoices(c *gin.Context) {
	query := ic.db.Order("date DESC")

	if customerID, ok := clienteScope(c); ok {
		query = query.Where("customer_id = ?", customerID)
	} else if customerID := c.Query("customer_id"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var invoices []models.Invoice
	if err := query.Find(&invoices).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch invoices")
		return
	}

	c.JSON(http.StatusOK, invoices)
}

func (ic *InvoiceController) GetInvoice(c *gin.Context) {
	var invoice models.Invoice
	if err := ic.db.Preload("Customer").First(&invoice, "id = ?", c.Param("id")).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Invoice not found")
		return
	}

	if customerID, ok := clienteScope(c); ok && invoice.CustomerID != customerID {
		utils.SendError(c, http.StatusNotFound, "Invoice not found")
		return
	}

	c.JSON(http.StatusOK, invoice)
}

type UpdateInvoiceRequest struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

// UpdateInvoice allows manual edits to status and notes after generation.
func (ic *InvoiceController) UpdateInvoice(c *gin.Context) {
	var invoice models.Invoice
	if err := ic.db.First(&invoice, "id = ?", c.Param("id")).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Invoice not found")
		return
	}

	var req UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Status != nil {
		if !models.IsValidInvoiceStatus(*req.Status) {
			utils.SendValidationError(c, "Invalid invoice status")
			return
		}
		updates["status"] = *req.Status
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if len(updates) == 0 {
		utils.SendValidationError(c, "Nothing to update")
		return
	}

	if err := ic.db.Model(&invoice).Updates(updates).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to update invoice")
		return
	}

	utils.SendSuccess(c, "Invoice updated", invoice)
}
