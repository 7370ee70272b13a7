package jobs

import (
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"motoshop-api/models"
)

// ReconciliationJob periodically scans for the drift the best-effort billing
// flow can leave behind: repairs stuck in completed with no invoice, and
// parts at or below their reorder threshold. It only reports; fixing the
// drift stays a manual step.
type ReconciliationJob struct {
	db     *gorm.DB
	ticker *time.Ticker
	done   chan bool
}

func NewReconciliationJob(db *gorm.DB, interval time.Duration) *ReconciliationJob {
	return &ReconciliationJob{
		db:     db,
		ticker: time.NewTicker(interval),
		done:   make(chan bool),
	}
}

// Start begins the reconciliation job
func (j *ReconciliationJob) Start() {
	logrus.Info("Billing reconciliation job started")

	go func() {
		// Run immediately on start
		j.run()

		for {
			select {
			case <-j.ticker.C:
				j.run()
			case <-j.done:
				logrus.Info("Billing reconciliation job stopped")
				return
			}
		}
	}()
}

// Stop stops the reconciliation job
func (j *ReconciliationJob) Stop() {
	j.ticker.Stop()
	j.done <- true
}

func (j *ReconciliationJob) run() {
	j.reportUnbilledRepairs()
	j.reportLowStock()
}

// reportUnbilledRepairs flags completed repairs that have no invoice row.
func (j *ReconciliationJob) reportUnbilledRepairs() {
	var repairs []models.Repair
	err := j.db.
		Where("status = ?", models.StatusCompleted).
		Where("id NOT IN (?)", j.db.Model(&models.Invoice{}).Select("repair_id")).
		Find(&repairs).Error
	if err != nil {
		logrus.WithError(err).Error("Reconciliation scan for unbilled repairs failed")
		return
	}

	for _, repair := range repairs {
		logrus.WithFields(logrus.Fields{
			"repair_id":   repair.ID,
			"customer_id": repair.CustomerID,
			"completed":   repair.DateCompleted,
		}).Warn("Completed repair has no invoice")
	}

	if len(repairs) == 0 {
		logrus.Debug("Reconciliation: no unbilled completed repairs")
	}
}

// reportLowStock flags parts at or below their reorder threshold.
func (j *ReconciliationJob) reportLowStock() {
	var parts []models.InventoryPart
	if err := j.db.Where("quantity <= minimum_quantity").Find(&parts).Error; err != nil {
		logrus.WithError(err).Error("Reconciliation scan for low stock failed")
		return
	}

	for _, part := range parts {
		logrus.WithFields(logrus.Fields{
			"part_number": part.PartNumber,
			"quantity":    part.Quantity,
			"minimum":     part.MinimumQuantity,
		}).Warn("Part needs reordering")
	}
}
