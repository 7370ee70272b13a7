package database

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"motoshop-api/models"
)

func Initialize(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Warn),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Motorcycle{},
		&models.Repair{},
		&models.UsedPart{},
		&models.RepairPhoto{},
		&models.InventoryPart{},
		&models.Invoice{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := addCustomIndexes(db); err != nil {
		return fmt.Errorf("failed to add custom indexes: %w", err)
	}

	return nil
}

func addCustomIndexes(db *gorm.DB) error {
	// Composite indexes for the hot queries: a customer's repair list and
	// the reconciliation scan over completed repairs.
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_repairs_customer_created ON repairs(customer_id, created_at DESC)").Error; err != nil {
		logrus.WithError(err).Warn("Could not create index for repairs")
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_repairs_status_created ON repairs(status, created_at DESC)").Error; err != nil {
		logrus.WithError(err).Warn("Could not create status index for repairs")
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_used_parts_repair ON used_parts(repair_id)").Error; err != nil {
		logrus.WithError(err).Warn("Could not create index for used_parts")
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_invoices_repair ON invoices(repair_id)").Error; err != nil {
		logrus.WithError(err).Warn("Could not create index for invoices")
	}

	return nil
}

// SeedData populates the database with initial data for development. It runs
// only against an empty users table.
func SeedData(db *gorm.DB) error {
	var userCount int64
	db.Model(&models.User{}).Count(&userCount)

	if userCount > 0 {
		logrus.Debug("Database already has data, skipping seed")
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin1234"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		ID:            uuid.New().String(),
		Name:          "Shop Admin",
		Email:         "admin@motoshop.local",
		Password:      string(hashed),
		Role:          models.RoleAdmin,
		EmailVerified: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		logrus.WithError(err).Warn("Could not create seed admin user")
	}

	customer := models.Customer{
		ID:    uuid.New().String(),
		Name:  "Mario Rossi",
		Email: "mario.rossi@example.com",
		Phone: "+39 333 1234567",
	}
	if err := db.Create(&customer).Error; err != nil {
		logrus.WithError(err).Warn("Could not create seed customer")
	}

	motorcycle := models.Motorcycle{
		ID:         uuid.New().String(),
		CustomerID: customer.ID,
		Make:       "Ducati",
		Model:      "Monster 821",
		Year:       "2019",
		Plate:      "AB123CD",
	}
	if err := db.Create(&motorcycle).Error; err != nil {
		logrus.WithError(err).Warn("Could not create seed motorcycle")
	}

	parts := []models.InventoryPart{
		{
			ID:              uuid.New().String(),
			Name:            "Oil filter",
			PartNumber:      "OF-821-01",
			Price:           18.50,
			Cost:            9.20,
			Quantity:        12,
			MinimumQuantity: 4,
			Location:        "A1",
			Supplier:        "Motoparts SRL",
		},
		{
			ID:              uuid.New().String(),
			Name:            "Brake pads front",
			PartNumber:      "BP-F-204",
			Price:           42.00,
			Cost:            24.00,
			Quantity:        6,
			MinimumQuantity: 2,
			Location:        "B3",
			Supplier:        "Brembo",
		},
	}
	for _, part := range parts {
		if err := db.Create(&part).Error; err != nil {
			logrus.WithError(err).WithField("part_number", part.PartNumber).Warn("Could not create seed part")
		}
	}

	logrus.Info("Database seeded with development data")
	return nil
}
