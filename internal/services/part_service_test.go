// internal/services/part_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purzasetu/sparehub-backend/internal/models"
	"github.com/purzasetu/sparehub-backend/internal/utils"
)

func TestCreatePart(t *testing.T) {
	db := newTestDB(t)
	svc := NewPartService(db)

	shopkeeper := createTestShopkeeper(t, db, "ramesh")
	customer := createTestCustomer(t, db, "asha")

	input := &CreatePartInput{
		Name:      "Brake Pad Set",
		Vehicle:   "Maruti Swift 2019",
		Category:  "brakes",
		Condition: models.PartConditionNew,
		Price:     1500,
		Stock:     5,
		Images:    []string{"https://cdn.example.com/p1.jpg"},
	}

	part, err := svc.CreatePart(shopkeeper.ID, input)
	require.NoError(t, err)
	assert.Equal(t, models.PartStatusActive, part.Status)
	assert.Equal(t, shopkeeper.ID, part.ShopkeeperID)
	require.Len(t, part.Images, 1)
	require.NotNil(t, part.Shopkeeper)
	assert.Equal(t, shopkeeper.ShopName, part.Shopkeeper.ShopName)

	// Customers cannot list parts
	_, err = svc.CreatePart(customer.ID, input)
	var forbiddenErr *ForbiddenError
	assert.ErrorAs(t, err, &forbiddenErr)
}

func TestUpdatePartOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := NewPartService(db)

	owner := createTestShopkeeper(t, db, "ramesh")
	other := createTestShopkeeper(t, db, "suresh")
	part := createTestPart(t, db, owner.ID, "Clutch Plate")

	_, err := svc.UpdatePart(part.ID, other.ID, &UpdatePartInput{Price: 2000})
	var forbiddenErr *ForbiddenError
	require.ErrorAs(t, err, &forbiddenErr)

	updated, err := svc.UpdatePart(part.ID, owner.ID, &UpdatePartInput{Price: 2000})
	require.NoError(t, err)
	assert.Equal(t, 2000, updated.Price)
	require.NotNil(t, updated.Shopkeeper)
	assert.Equal(t, owner.ID, updated.Shopkeeper.ID)
}

func TestDeletePartRemovesFavorites(t *testing.T) {
	db := newTestDB(t)
	partSvc := NewPartService(db)
	favSvc := NewFavoriteService(db)

	owner := createTestShopkeeper(t, db, "ramesh")
	customer := createTestCustomer(t, db, "asha")
	part := createTestPart(t, db, owner.ID, "Alternator")

	_, err := favSvc.Toggle(customer.ID, part.ID)
	require.NoError(t, err)

	require.NoError(t, partSvc.DeletePart(part.ID, owner.ID))

	favorites, err := favSvc.List(customer.ID)
	require.NoError(t, err)
	assert.Empty(t, favorites)
}

func TestSearchParts(t *testing.T) {
	db := newTestDB(t)
	svc := NewPartService(db)

	shopkeeper := createTestShopkeeper(t, db, "ramesh")
	createTestPart(t, db, shopkeeper.ID, "Brake Pad Set")
	createTestPart(t, db, shopkeeper.ID, "Brake Disc")

	suspended := createTestPart(t, db, shopkeeper.ID, "Hidden Part")
	require.NoError(t, db.Model(suspended).Update("status", models.PartStatusSuspended).Error)

	params := PartSearchParams{
		PaginationParams: utils.PaginationParams{Page: 1, Limit: 20, Sort: "created_at", Order: "desc"},
	}
	params.Search = "brake"

	parts, total, err := svc.SearchParts(params)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, parts, 2)
}
