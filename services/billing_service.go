package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"motoshop-api/models"
)

// TaxRate is the flat VAT applied to every invoice subtotal.
const TaxRate = 0.22

// InvoiceDueDays is how long after issue an invoice falls due.
const InvoiceDueDays = 30

// BillingService derives an invoice from a completed repair. It is invoked by
// the repair service on the status transition to completed; its failures are
// logged by the caller and never roll back the transition.
type BillingService struct {
	db     *gorm.DB
	mailer *EmailService // nil when mail is not configured
}

func NewBillingService(db *gorm.DB, mailer *EmailService) *BillingService {
	return &BillingService{db: db, mailer: mailer}
}

// GenerateInvoice computes parts cost, labor cost and tax for the repair and
// writes one invoice row with status draft. The repair's UsedParts collection
// must already be loaded. There is no idempotency guard: completing the same
// repair twice produces two invoices.
func (s *BillingService) GenerateInvoice(repair *models.Repair) (*models.Invoice, error) {
	now := time.Now()

	var partsCost float64
	for _, part := range repair.UsedParts {
		partsCost += float64(part.Quantity) * part.PriceEach
	}

	var laborHours, laborRate float64
	if repair.LaborHours != nil {
		laborHours = *repair.LaborHours
	}
	if repair.LaborRate != nil {
		laborRate = *repair.LaborRate
	}
	laborCost := laborHours * laborRate

	subtotal := partsCost + laborCost
	tax := subtotal * TaxRate
	total := subtotal + tax

	invoice := models.Invoice{
		ID:         uuid.New().String(),
		RepairID:   repair.ID,
		CustomerID: repair.CustomerID,
		// Timestamp-based, not a sequence: unique in practice, not guaranteed
		// under concurrent completions.
		Number:   fmt.Sprintf("INV-%d-%d", now.Year(), now.UnixMilli()),
		Date:     now,
		DueDate:  now.AddDate(0, 0, InvoiceDueDays),
		Subtotal: subtotal,
		Tax:      tax,
		Total:    total,
		Status:   models.InvoiceDraft,
	}

	if err := s.db.Create(&invoice).Error; err != nil {
		return nil, fmt.Errorf("failed to create invoice for repair %s: %w", repair.ID, err)
	}

	logrus.WithFields(logrus.Fields{
		"repair_id": repair.ID,
		"invoice":   invoice.Number,
		"total":     invoice.Total,
	}).Info("Invoice generated")

	s.notifyCustomer(repair, &invoice)

	return &invoice, nil
}

// notifyCustomer sends the invoice notification mail. Best effort: a send
// failure is logged and does not affect the invoice that was just written.
func (s *BillingService) notifyCustomer(repair *models.Repair, invoice *models.Invoice) {
	if s.mailer == nil {
		return
	}

	var customer models.Customer
	if err := s.db.First(&customer, "id = ?", repair.CustomerID).Error; err != nil {
		logrus.WithError(err).WithField("customer_id", repair.CustomerID).Warn("Invoice notification skipped: customer lookup failed")
		return
	}
	if customer.Email == "" {
		return
	}

	if err := s.mailer.SendInvoiceNotification(customer.Email, customer.Name, invoice); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"invoice":  invoice.Number,
			"customer": customer.ID,
		}).Warn("Failed to send invoice notification email")
	}
}
