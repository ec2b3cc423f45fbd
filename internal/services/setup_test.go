// internal/services/setup_test.go
package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/purzasetu/sparehub-backend/internal/config"
	"github.com/purzasetu/sparehub-backend/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// A single connection keeps the in-memory database alive across the
	// whole test.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.PartRequest{},
		&models.Offer{},
		&models.RequestTarget{},
		&models.RequestView{},
		&models.SparePart{},
		&models.Favorite{},
		&models.AuditLog{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey:      "test-secret",
			AccessTokenTTL: 1,
		},
		Request: config.RequestConfig{
			TTLHours:             168,
			SweepIntervalMinutes: 60,
			StrictTransitions:    true,
		},
	}
}

func createTestCustomer(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()

	user := &models.User{
		Name:     name,
		Email:    name + "@example.com",
		UserType: models.UserTypeCustomer,
		Status:   models.UserStatusActive,
		Location: models.Location{State: "Maharashtra", District: "Pune", Area: "Kothrud"},
	}
	if err := user.SetPassword("Password123!"); err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create customer: %v", err)
	}
	return user
}

func createTestShopkeeper(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()

	user := &models.User{
		Name:     name,
		Email:    name + "@example.com",
		UserType: models.UserTypeShopkeeper,
		ShopName: name + " Auto Parts",
		Status:   models.UserStatusActive,
		Location: models.Location{State: "Maharashtra", District: "Pune", Area: "Shivajinagar"},
	}
	if err := user.SetPassword("Password123!"); err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create shopkeeper: %v", err)
	}
	return user
}

func intPtr(v int) *int { return &v }

func validRequestInput(broadcastTo ...uuid.UUID) *CreateRequestInput {
	return &CreateRequestInput{
		PartName:  "Brake Pad Set",
		Vehicle:   "Maruti Swift 2019",
		Category:  "brakes",
		Condition: models.PartConditionNew,
		BudgetMin: intPtr(500),
		BudgetMax: intPtr(2500),
		Location: LocationInput{
			State:    "Maharashtra",
			District: "Pune",
			Area:     "Kothrud",
		},
		BroadcastTo: broadcastTo,
	}
}

// frozenClock pins a service's notion of now so expiry can be driven
// with logical time.
type frozenClock struct {
	current time.Time
}

func (c *frozenClock) Now() time.Time { return c.current }

func (c *frozenClock) Advance(d time.Duration) { c.current = c.current.Add(d) }
