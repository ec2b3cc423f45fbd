// internal/services/request_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/purzasetu/sparehub-backend/internal/models"
)

func newRequestService(t *testing.T) (*RequestService, *frozenClock) {
	t.Helper()

	db := newTestDB(t)
	svc := NewRequestService(db, CallerTargeting{}, newTestConfig())

	clock := &frozenClock{current: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	svc.now = clock.Now
	return svc, clock
}

func TestCreateRequest(t *testing.T) {
	svc, clock := newRequestService(t)
	customer := createTestCustomer(t, svc.db, "asha")
	shopkeeper := createTestShopkeeper(t, svc.db, "ramesh")

	request, err := svc.CreateRequest(customer.ID, validRequestInput(shopkeeper.ID))
	require.NoError(t, err)

	assert.Equal(t, models.RequestStatusPending, request.Status)
	assert.Equal(t, customer.ID, request.CustomerID)
	assert.WithinDuration(t, clock.Now().Add(168*time.Hour), request.ExpiresAt, time.Second)
	assert.Empty(t, request.Offers)
	require.Len(t, request.Targets, 1)
	assert.Equal(t, shopkeeper.ID, request.Targets[0].ShopkeeperID)
}

func TestCreateRequestNormalizesOldCondition(t *testing.T) {
	svc, _ := newRequestService(t)
	customer := createTestCustomer(t, svc.db, "asha")

	input := validRequestInput()
	input.Condition = "Old"

	request, err := svc.CreateRequest(customer.ID, input)
	require.NoError(t, err)
	assert.Equal(t, models.PartConditionUsed, request.Condition)
}

func TestCreateRequestValidation(t *testing.T) {
	svc, _ := newRequestService(t)
	customer := createTestCustomer(t, svc.db, "asha")

	t.Run("missing part name", func(t *testing.T) {
		input := validRequestInput()
		input.PartName = ""
		_, err := svc.CreateRequest(customer.ID, input)
		var validationErr *ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("unknown category", func(t *testing.T) {
		input := validRequestInput()
		input.Category = "flux-capacitors"
		_, err := svc.CreateRequest(customer.ID, input)
		var validationErr *ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("budget_min above budget_max", func(t *testing.T) {
		input := validRequestInput()
		input.BudgetMin = intPtr(5000)
		input.BudgetMax = intPtr(100)
		_, err := svc.CreateRequest(customer.ID, input)
		var validationErr *ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("zero budget is valid", func(t *testing.T) {
		input := validRequestInput()
		input.BudgetMin = intPtr(0)
		input.BudgetMax = intPtr(0)
		_, err := svc.CreateRequest(customer.ID, input)
		assert.NoError(t, err)
	})

	t.Run("unknown customer", func(t *testing.T) {
		_, err := svc.CreateRequest(uuid.New(), validRequestInput())
		var notFoundErr *NotFoundError
		assert.ErrorAs(t, err, &notFoundErr)
	})
}

func TestSubmitOfferLifecycle(t *testing.T) {
	svc, _ := newRequestService(t)
	customer := createTestCustomer(t, svc.db, "asha")
	first := createTestShopkeeper(t, svc.db, "ramesh")
	second := createTestShopkeeper(t, svc.db, "suresh")

	request, err := svc.CreateRequest(customer.ID, validRequestInput())
	require.NoError(t, err)

	// First offer flips Pending to OffersReceived
	updated, err := svc.SubmitOffer(request.ID, first.ID, &SubmitOfferInput{Price: 1200, Message: "In stock"})
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusOffersReceived, updated.Status)
	require.Len(t, updated.Offers, 1)
	assert.Equal(t, first.Name, updated.Offers[0].ShopkeeperName)
	assert.Equal(t, first.ShopName, updated.Offers[0].ShopName)
	assert.Equal(t, 1200, updated.Offers[0].Price)

	// A second shopkeeper's offer keeps the status where it is
	updated, err = svc.SubmitOffer(request.ID, second.ID, &SubmitOfferInput{Price: 999})
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusOffersReceived, updated.Status)
	assert.Len(t, updated.Offers, 2)

	// The view log records both shopkeepers once each
	assert.Len(t, updated.Views, 2)
}

func TestSubmitOfferDuplicateRejected(t *testing.T) {
	svc, _ := newRequestService(t)
	customer := createTestCustomer(t, svc.db, "asha")
	shopkeeper := createTestShopkeeper(t, svc.db, "ramesh")

	request, err := svc.CreateRequest(customer.ID, validRequestInput())
	require.NoError(t, err)

	_, err = svc.SubmitOffer(request.ID, shopkeeper.ID, &SubmitOfferInput{Price: 1200})
	require.NoError(t, err)

	_, err = svc.SubmitOffer(request.ID, shopkeeper.ID, &SubmitOfferInput{Price: 1100})
	var duplicateErr *DuplicateOfferError
	require.ErrorAs(t, err, &duplicateErr)

	// The original offer is untouched
	reloaded, err := svc.GetRequest(request.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Offers, 1)
	assert.Equal(t, 1200, reloaded.Offers[0].Price)
	assert.Equal(t, models.RequestStatusOffersReceived, reloaded.Status)
}

func TestOfferUniqueIndexIsAuthoritative(t *testing.T) {
	svc, clock := newRequestService(t)
	customer := createTestCustomer(t, svc.db, "asha")
	shopkeeper := createTestShopkeeper(t, svc.db, "ramesh")

	request, err := svc.CreateRequest(customer.ID, validRequestInput())
	require.NoError(t, err)

	offer := func(price int) *models.Offer {
		return &models.Offer{
			RequestID:      request.ID,
			ShopkeeperID:   shopkeeper.ID,
			ShopkeeperName: shopkeeper.Name,
			ShopName:       shopkeeper.ShopName,
			Price:          price,
			RespondedAt:    clock.Now(),
		}
	}
	require.NoError(t, svc.db.Create(offer(1200)).Error)

	// The second row for the same request and shopkeeper must be
	// rejected by the index itself, not by application code.
	err = svc.db.Create(offer(1100)).Error
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	var count int64
	require.NoError(t, svc.db.Model(&models.Offer{}).
		Where("request_id = ?", request.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

// A rival offer that lands between the existence pre-check and the
// insert is caught by the unique index, and the service reports it as
// a duplicate rather than a store failure.
func TestSubmitOfferRacingDuplicateCaughtByIndex(t *testing.T) {
	svc, clock := newRequestService(t)
	customer := createTestCustomer(t, svc.db, "asha")
	first := createTestShopkeeper(t, svc.db, "ramesh")
	second := createTestShopkeeper(t, svc.db, "suresh")

	request, err := svc.CreateRequest(customer.ID, validRequestInput())
	require.NoError(t, err)

	_, err = svc.SubmitOffer(request.ID, first.ID, &SubmitOfferInput{Price: 1200})
	require.NoError(t, err)

	// Slip a conflicting row in after the pre-check has run, right
	// before the service writes its own offer.
	injected := false
	err = svc.db.Callback().Create().Before("gorm:create").Register("rival_offer", func(tx *gorm.DB) {
		offer, ok := tx.Statement.Dest.(*models.Offer)
		if !ok || injected || offer.ShopkeeperID != second.ID {
			return
		}
		injected = true
		rival := &models.Offer{
			RequestID:      request.ID,
			ShopkeeperID:   second.ID,
			ShopkeeperName: second.Name,
			ShopName:       second.ShopName,
			Price:          900,
			RespondedAt:    clock.Now(),
		}
		assert.NoError(t, tx.Session(&gorm.Session{NewDB: true}).Create(rival).Error)
	})
	require.NoError(t, err)

	_, err = svc.SubmitOffer(request.ID, second.ID, &SubmitOfferInput{Price: 1100})
	var duplicateErr *DuplicateOfferError
	require.ErrorAs(t, err, &duplicateErr)
	require.True(t, injected)

	reloaded, err := svc.GetRequest(request.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Offers, 1)
	assert.Equal(t, first.ID, reloaded.Offers[0].ShopkeeperID)
	assert.Equal(t, models.RequestStatusOffersReceived, reloaded.Status)
}

func TestSubmitOfferGuards(t *testing.T) {
	svc, _ := newRequestService(t)
	customer := createTestCustomer(t, svc.db, "asha")
	shopkeeper := createTestShopkeeper(t, svc.db, "ramesh")

	request, err := svc.CreateRequest(customer.ID, validRequestInput())
	require.NoError(t, err)

	t.Run("invalid price", func(t *testing.T) {
		_, err := svc.SubmitOffer(request.ID, shopkeeper.ID, &SubmitOfferInput{Price: 0})
		var validationErr *ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("customers cannot offer", func(t *testing.T) {
		_, err := svc.SubmitOffer(request.ID, customer.ID, &SubmitOfferInput{Price: 100})
		var forbiddenErr *ForbiddenError
		assert.ErrorAs(t, err, &forbiddenErr)
	})

	t.Run("unknown request", func(t *testing.T) {
		_, err := svc.SubmitOffer(uuid.New(), shopkeeper.ID, &SubmitOfferInput{Price: 100})
		var notFoundErr *NotFoundError
		assert.ErrorAs(t, err, &notFoundErr)
	})

	t.Run("closed request rejects offers", func(t *testing.T) {
		_, err := svc.UpdateStatus(request.ID, models.RequestStatusClosed,
			Actor{ID: customer.ID, Type: models.UserTypeCustomer})
		require.NoError(t, err)

		_, err = svc.SubmitOffer(request.ID, shopkeeper.ID, &SubmitOfferInput{Price: 100})
		var inactiveErr *InactiveRequestError
		require.ErrorAs(t, err, &inactiveErr)
		assert.Equal(t, models.RequestStatusClosed, inactiveErr.Status)
	})
}

func TestSubmitOfferOnExpiredRequest(t *testing.T) {
	svc, clock := newRequestService(t)
	customer := createTestCustomer(t, svc.db, "asha")
	shopkeeper := createTestShopkeeper(t, svc.db, "ramesh")

	request, err := svc.CreateRequest(customer.ID, validRequestInput())
	require.NoError(t, err)

	clock.Advance(169 * time.Hour)

	_, err = svc.SubmitOffer(request.ID, shopkeeper.ID, &SubmitOfferInput{Price: 1200})
	var inactiveErr *InactiveRequestError
	require.ErrorAs(t, err, &inactiveErr)
	assert.Equal(t, models.RequestStatusExpired, inactiveErr.Status)

	// The read-time sweep persisted the flip
	reloaded, err := svc.GetRequest(request.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusExpired, reloaded.Status)
	assert.Empty(t, reloaded.Offers)
}

func TestOffersOrderStableOnTiedTimestamps(t *testing.T) {
	svc, _ := newRequestService(t)
	customer := createTestCustomer(t, svc.db, "asha")
	first := createTestShopkeeper(t, svc.db, "ramesh")
	second := createTestShopkeeper(t, svc.db, "suresh")

	request, err := svc.CreateRequest(customer.ID, validRequestInput())
	require.NoError(t, err)

	// The pinned clock stamps both offers with the same responded_at.
	_, err = svc.SubmitOffer(request.ID, first.ID, &SubmitOfferInput{Price: 1200})
	require.NoError(t, err)
	_, err = svc.SubmitOffer(request.ID, second.ID, &SubmitOfferInput{Price: 1100})
	require.NoError(t, err)

	reloaded, err := svc.GetRequest(request.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Offers, 2)
	assert.Equal(t, reloaded.Offers[0].RespondedAt, reloaded.Offers[1].RespondedAt)
	assert.Equal(t, first.ID, reloaded.Offers[0].ShopkeeperID)

	// Repeated loads keep the tie broken the same way.
	for i := 0; i < 3; i++ {
		again, err := svc.GetRequest(request.ID)
		require.NoError(t, err)
		require.Len(t, again.Offers, 2)
		assert.Equal(t, reloaded.Offers[0].ID, again.Offers[0].ID)
		assert.Equal(t, reloaded.Offers[1].ID, again.Offers[1].ID)
	}
}

func TestManualSweepUsesServiceClock(t *testing.T) {
	svc, clock := newRequestService(t)
	customer := createTestCustomer(t, svc.db, "asha")

	request, err := svc.CreateRequest(customer.ID, validRequestInput())
	require.NoError(t, err)

	expired, err := svc.SweepExpired(svc.Now())
	require.NoError(t, err)
	assert.EqualValues(t, 0, expired)

	clock.Advance(169 * time.Hour)

	expired, err = svc.SweepExpired(svc.Now())
	require.NoError(t, err)
	assert.EqualValues(t, 1, expired)

	reloaded, err := svc.GetRequest(request.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusExpired, reloaded.Status)
}

func TestSweepExpired(t *testing.T) {
	svc, clock := newRequestService(t)
	customer := createTestCustomer(t, svc.db, "asha")
	shopkeeper := createTestShopkeeper(t, svc.db, "ramesh")

	overdue, err := svc.CreateRequest(customer.ID, validRequestInput())
	require.NoError(t, err)

	withOffers, err := svc.CreateRequest(customer.ID, validRequestInput())
	require.NoError(t, err)
	_, err = svc.SubmitOffer(withOffers.ID, shopkeeper.ID, &SubmitOfferInput{Price: 800})
	require.NoError(t, err)

	closed, err := svc.CreateRequest(customer.ID, validRequestInput())
	require.NoError(t, err)
	_, err = svc.UpdateStatus(closed.ID, models.RequestStatusClosed,
		Actor{ID: customer.ID, Type: models.UserTypeCustomer})
	require.NoError(t, err)

	clock.Advance(169 * time.Hour)

	fresh, err := svc.CreateRequest(customer.ID, validRequestInput())
	require.NoError(t, err)

	// Both overdue active requests flip, Closed and the fresh one do not
	expired, err := svc.SweepExpired(clock.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(2), expired)

	for id, want := range map[uuid.UUID]models.RequestStatus{
		overdue.ID:    models.RequestStatusExpired,
		withOffers.ID: models.RequestStatusExpired,
		closed.ID:     models.RequestStatusClosed,
		fresh.ID:      models.RequestStatusPending,
	} {
		got, err := svc.GetRequest(id)
		require.NoError(t, err)
		assert.Equal(t, want, got.Status)
	}

	// Offers survive expiry
	got, err := svc.GetRequest(withOffers.ID)
	require.NoError(t, err)
	assert.Len(t, got.Offers, 1)

	// Running the sweep again with the same time is a no-op
	expired, err = svc.SweepExpired(clock.Now())
	require.NoError(t, err)
	assert.Zero(t, expired)
}

func TestListCustomerRequests(t *testing.T) {
	svc, clock := newRequestService(t)
	customer := createTestCustomer(t, svc.db, "asha")
	other := createTestCustomer(t, svc.db, "meera")
	shopkeeper := createTestShopkeeper(t, svc.db, "ramesh")

	first, err := svc.CreateRequest(customer.ID, validRequestInput())
	require.NoError(t, err)
	_, err = svc.SubmitOffer(first.ID, shopkeeper.ID, &SubmitOfferInput{Price: 700})
	require.NoError(t, err)

	_, err = svc.CreateRequest(other.ID, validRequestInput())
	require.NoError(t, err)

	clock.Advance(169 * time.Hour)

	// The list reflects the sweep: the overdue request shows as Expired
	requests, err := svc.ListCustomerRequests(customer.ID)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, models.RequestStatusExpired, requests[0].Status)
	assert.Len(t, requests[0].Offers, 1)
}

func TestListMarketRequests(t *testing.T) {
	svc, _ := newRequestService(t)
	customer := createTestCustomer(t, svc.db, "asha")
	targeted := createTestShopkeeper(t, svc.db, "ramesh")
	bystander := createTestShopkeeper(t, svc.db, "suresh")

	// Broadcast to one shopkeeper only
	direct, err := svc.CreateRequest(customer.ID, validRequestInput(targeted.ID))
	require.NoError(t, err)

	// No targets: visible to every shopkeeper
	open, err := svc.CreateRequest(customer.ID, validRequestInput())
	require.NoError(t, err)

	// Closed requests never show up in the market feed
	closed, err := svc.CreateRequest(customer.ID, validRequestInput())
	require.NoError(t, err)
	_, err = svc.UpdateStatus(closed.ID, models.RequestStatusClosed,
		Actor{ID: customer.ID, Type: models.UserTypeCustomer})
	require.NoError(t, err)

	targetedFeed, err := svc.ListMarketRequests(targeted.ID)
	require.NoError(t, err)
	require.Len(t, targetedFeed, 2)

	bystanderFeed, err := svc.ListMarketRequests(bystander.ID)
	require.NoError(t, err)
	require.Len(t, bystanderFeed, 1)
	assert.Equal(t, open.ID, bystanderFeed[0].ID)

	_ = direct
}

func TestUpdateStatusTransitions(t *testing.T) {
	svc, _ := newRequestService(t)
	customer := createTestCustomer(t, svc.db, "asha")
	admin := createTestCustomer(t, svc.db, "admin")
	require.NoError(t, svc.db.Model(admin).Update("user_type", models.UserTypeAdmin).Error)
	adminActor := Actor{ID: admin.ID, Type: models.UserTypeAdmin}
	ownerActor := Actor{ID: customer.ID, Type: models.UserTypeCustomer}

	request, err := svc.CreateRequest(customer.ID, validRequestInput())
	require.NoError(t, err)

	t.Run("unknown status value", func(t *testing.T) {
		_, err := svc.UpdateStatus(request.ID, "Archived", adminActor)
		var validationErr *ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("non-owner cannot close", func(t *testing.T) {
		stranger := createTestCustomer(t, svc.db, "stranger")
		_, err := svc.UpdateStatus(request.ID, models.RequestStatusClosed,
			Actor{ID: stranger.ID, Type: models.UserTypeCustomer})
		var forbiddenErr *ForbiddenError
		assert.ErrorAs(t, err, &forbiddenErr)
	})

	t.Run("owner closes", func(t *testing.T) {
		updated, err := svc.UpdateStatus(request.ID, models.RequestStatusClosed, ownerActor)
		require.NoError(t, err)
		assert.Equal(t, models.RequestStatusClosed, updated.Status)
	})

	t.Run("terminal state rejects transitions in strict mode", func(t *testing.T) {
		_, err := svc.UpdateStatus(request.ID, models.RequestStatusPending, adminActor)
		var illegalErr *IllegalTransitionError
		require.ErrorAs(t, err, &illegalErr)
		assert.Equal(t, models.RequestStatusClosed, illegalErr.From)
	})
}

func TestUpdateStatusLaxMode(t *testing.T) {
	db := newTestDB(t)
	cfg := newTestConfig()
	cfg.Request.StrictTransitions = false
	svc := NewRequestService(db, CallerTargeting{}, cfg)

	customer := createTestCustomer(t, db, "asha")
	request, err := svc.CreateRequest(customer.ID, validRequestInput())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(request.ID, models.RequestStatusClosed,
		Actor{ID: customer.ID, Type: models.UserTypeCustomer})
	require.NoError(t, err)

	// Lax mode reopens a closed request when an admin asks for it
	updated, err := svc.UpdateStatus(request.ID, models.RequestStatusPending,
		Actor{ID: uuid.New(), Type: models.UserTypeAdmin})
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusPending, updated.Status)
}

func TestDeleteRequest(t *testing.T) {
	svc, _ := newRequestService(t)
	customer := createTestCustomer(t, svc.db, "asha")
	shopkeeper := createTestShopkeeper(t, svc.db, "ramesh")

	request, err := svc.CreateRequest(customer.ID, validRequestInput(shopkeeper.ID))
	require.NoError(t, err)
	_, err = svc.SubmitOffer(request.ID, shopkeeper.ID, &SubmitOfferInput{Price: 900})
	require.NoError(t, err)

	t.Run("stranger cannot delete", func(t *testing.T) {
		err := svc.DeleteRequest(request.ID, Actor{ID: uuid.New(), Type: models.UserTypeCustomer})
		var forbiddenErr *ForbiddenError
		assert.ErrorAs(t, err, &forbiddenErr)
	})

	t.Run("owner deletes with embedded rows", func(t *testing.T) {
		require.NoError(t, svc.DeleteRequest(request.ID, Actor{ID: customer.ID, Type: models.UserTypeCustomer}))

		_, err := svc.GetRequest(request.ID)
		var notFoundErr *NotFoundError
		require.ErrorAs(t, err, &notFoundErr)

		var offers int64
		svc.db.Model(&models.Offer{}).Where("request_id = ?", request.ID).Count(&offers)
		assert.Zero(t, offers)

		var targets int64
		svc.db.Model(&models.RequestTarget{}).Where("request_id = ?", request.ID).Count(&targets)
		assert.Zero(t, targets)
	})
}

func TestDistrictTargeting(t *testing.T) {
	db := newTestDB(t)
	svc := NewRequestService(db, &DistrictTargeting{DB: db}, newTestConfig())

	customer := createTestCustomer(t, db, "asha")
	local := createTestShopkeeper(t, db, "ramesh")
	remote := createTestShopkeeper(t, db, "suresh")
	require.NoError(t, db.Model(remote).Update("loc_district", "Nagpur").Error)

	request, err := svc.CreateRequest(customer.ID, validRequestInput())
	require.NoError(t, err)

	require.Len(t, request.Targets, 1)
	assert.Equal(t, local.ID, request.Targets[0].ShopkeeperID)
}
