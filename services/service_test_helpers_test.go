package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"motoshop-api/models"
)

// newTestDB opens an in-memory SQLite database with the full schema. A
// single connection keeps the in-memory database alive across queries.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
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
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func seedCustomerAndMotorcycle(t *testing.T, db *gorm.DB) (string, string) {
	t.Helper()

	customer := models.Customer{
		ID:    uuid.New().String(),
		Name:  "Mario Rossi",
		Email: "mario.rossi@example.com",
	}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("failed to seed customer: %v", err)
	}

	motorcycle := models.Motorcycle{
		ID:         uuid.New().String(),
		CustomerID: customer.ID,
		Make:       "Ducati",
		Model:      "Monster 821",
		Year:       "2019",
	}
	if err := db.Create(&motorcycle).Error; err != nil {
		t.Fatalf("failed to seed motorcycle: %v", err)
	}

	return customer.ID, motorcycle.ID
}

func seedInventoryPart(t *testing.T, db *gorm.DB, name string, price float64, quantity, minimum int) *models.InventoryPart {
	t.Helper()

	part := models.InventoryPart{
		ID:              uuid.New().String(),
		Name:            name,
		PartNumber:      "PN-" + uuid.New().String()[:8],
		Price:           price,
		Cost:            price / 2,
		Quantity:        quantity,
		MinimumQuantity: minimum,
	}
	if err := db.Create(&part).Error; err != nil {
		t.Fatalf("failed to seed inventory part: %v", err)
	}
	return &part
}
