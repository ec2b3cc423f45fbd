// internal/services/favorite_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/purzasetu/sparehub-backend/internal/models"
)

func createTestPart(t *testing.T, db *gorm.DB, shopkeeperID uuid.UUID, name string) *models.SparePart {
	t.Helper()

	part := &models.SparePart{
		ShopkeeperID: shopkeeperID,
		Name:         name,
		Category:     "brakes",
		Condition:    models.PartConditionNew,
		Price:        1500,
		Stock:        3,
		Status:       models.PartStatusActive,
	}
	if err := db.Create(part).Error; err != nil {
		t.Fatalf("failed to create part: %v", err)
	}
	return part
}

func TestFavoriteToggle(t *testing.T) {
	db := newTestDB(t)
	svc := NewFavoriteService(db)

	customer := createTestCustomer(t, db, "asha")
	shopkeeper := createTestShopkeeper(t, db, "ramesh")
	part := createTestPart(t, db, shopkeeper.ID, "Brake Pad Set")

	// First toggle adds
	action, err := svc.Toggle(customer.ID, part.ID)
	require.NoError(t, err)
	assert.Equal(t, FavoriteAdded, action)

	favorites, err := svc.List(customer.ID)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	require.NotNil(t, favorites[0].Part)
	assert.Equal(t, part.Name, favorites[0].Part.Name)

	// Second toggle removes
	action, err = svc.Toggle(customer.ID, part.ID)
	require.NoError(t, err)
	assert.Equal(t, FavoriteRemoved, action)

	favorites, err = svc.List(customer.ID)
	require.NoError(t, err)
	assert.Empty(t, favorites)

	// Third toggle adds again
	action, err = svc.Toggle(customer.ID, part.ID)
	require.NoError(t, err)
	assert.Equal(t, FavoriteAdded, action)
}

func TestFavoriteToggleUnknownPart(t *testing.T) {
	db := newTestDB(t)
	svc := NewFavoriteService(db)
	customer := createTestCustomer(t, db, "asha")

	_, err := svc.Toggle(customer.ID, uuid.New())
	var notFoundErr *NotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
}

func TestFavoriteRemove(t *testing.T) {
	db := newTestDB(t)
	svc := NewFavoriteService(db)

	customer := createTestCustomer(t, db, "asha")
	shopkeeper := createTestShopkeeper(t, db, "ramesh")
	part := createTestPart(t, db, shopkeeper.ID, "Clutch Plate")

	_, err := svc.Toggle(customer.ID, part.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Remove(customer.ID, part.ID))

	// Removing a pair that is not there reports not found
	err = svc.Remove(customer.ID, part.ID)
	var notFoundErr *NotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
}

func TestFavoritesAreScopedPerUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewFavoriteService(db)

	first := createTestCustomer(t, db, "asha")
	second := createTestCustomer(t, db, "meera")
	shopkeeper := createTestShopkeeper(t, db, "ramesh")
	part := createTestPart(t, db, shopkeeper.ID, "Headlight Assembly")

	_, err := svc.Toggle(first.ID, part.ID)
	require.NoError(t, err)
	_, err = svc.Toggle(second.ID, part.ID)
	require.NoError(t, err)

	// One user toggling off does not touch the other's favorite
	_, err = svc.Toggle(first.ID, part.ID)
	require.NoError(t, err)

	favorites, err := svc.List(second.ID)
	require.NoError(t, err)
	assert.Len(t, favorites, 1)
}
