// internal/services/request_service.go
package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/purzasetu/sparehub-backend/internal/config"
	"github.com/purzasetu/sparehub-backend/internal/models"
	"github.com/purzasetu/sparehub-backend/internal/utils"
)

// RequestService owns the part-request lifecycle: creation, offer
// collection, status transitions and time-based expiry.
type RequestService struct {
	db        *gorm.DB
	targeting TargetingStrategy
	ttl       time.Duration
	strict    bool
	now       func() time.Time
}

// Actor identifies who is performing a mutation.
type Actor struct {
	ID   uuid.UUID
	Type models.UserType
}

type LocationInput struct {
	State    string `json:"state" validate:"required,max=100"`
	District string `json:"district" validate:"required,max=100"`
	Area     string `json:"area" validate:"required,max=150"`
}

type CreateRequestInput struct {
	PartName    string               `json:"part_name" validate:"required,min=2,max=255"`
	Vehicle     string               `json:"vehicle" validate:"required,max=150"`
	Category    string               `json:"category" validate:"required,part_category"`
	Condition   models.PartCondition `json:"condition" validate:"required,oneof=New Used Any"`
	Description string               `json:"description,omitempty"`
	PhotoURL    string               `json:"photo_url,omitempty" validate:"omitempty,max=512"`
	BudgetMin   *int                 `json:"budget_min" validate:"required,min=0"`
	BudgetMax   *int                 `json:"budget_max" validate:"required,min=0"`
	Location    LocationInput        `json:"location" validate:"required"`
	// BroadcastTo is the caller-computed target list; empty means the
	// request is visible to every shopkeeper.
	BroadcastTo []uuid.UUID `json:"broadcast_to,omitempty"`
}

type SubmitOfferInput struct {
	Price    int    `json:"price" validate:"required,min=1"`
	PhotoURL string `json:"photo_url,omitempty" validate:"omitempty,max=512"`
	Message  string `json:"message,omitempty" validate:"omitempty,max=2000"`
}

// requestTransitions is the lifecycle state machine. Closed and Expired
// are terminal; OffersReceived -> OffersReceived keeps repeat offer
// submissions idempotent.
var requestTransitions = map[models.RequestStatus][]models.RequestStatus{
	models.RequestStatusPending: {
		models.RequestStatusOffersReceived,
		models.RequestStatusClosed,
		models.RequestStatusExpired,
	},
	models.RequestStatusOffersReceived: {
		models.RequestStatusOffersReceived,
		models.RequestStatusClosed,
		models.RequestStatusExpired,
	},
}

func NewRequestService(db *gorm.DB, targeting TargetingStrategy, cfg *config.Config) *RequestService {
	if targeting == nil {
		targeting = CallerTargeting{}
	}
	return &RequestService{
		db:        db,
		targeting: targeting,
		ttl:       time.Duration(cfg.Request.TTLHours) * time.Hour,
		strict:    cfg.Request.StrictTransitions,
		now:       time.Now,
	}
}

func (s *RequestService) CreateRequest(customerID uuid.UUID, req *CreateRequestInput) (*models.PartRequest, error) {
	// The frontend historically sent "Old" for used parts.
	if req.Condition == "Old" {
		req.Condition = models.PartConditionUsed
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, &ValidationError{Message: "invalid request fields", Details: utils.GetValidationErrors(err)}
	}

	if *req.BudgetMin > *req.BudgetMax {
		return nil, &ValidationError{Message: "budget_min must not exceed budget_max"}
	}

	// Verify customer exists and is active
	var customer models.User
	if err := s.db.First(&customer, "id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "customer", ID: customerID}
		}
		return nil, &StoreError{Op: "load customer", Err: err}
	}
	if customer.Status != models.UserStatusActive {
		return nil, &ForbiddenError{Message: "customer account is not active"}
	}

	now := s.now()
	request := &models.PartRequest{
		CustomerID:  customerID,
		PartName:    req.PartName,
		Vehicle:     req.Vehicle,
		Category:    req.Category,
		Condition:   req.Condition,
		Description: req.Description,
		PhotoURL:    req.PhotoURL,
		BudgetMin:   *req.BudgetMin,
		BudgetMax:   *req.BudgetMax,
		Location: models.Location{
			State:    req.Location.State,
			District: req.Location.District,
			Area:     req.Location.Area,
		},
		Status:    models.RequestStatusPending,
		ExpiresAt: now.Add(s.ttl),
	}

	targets, err := s.targeting.ComputeTargets(request, req.BroadcastTo)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(request).Error; err != nil {
			return &StoreError{Op: "create request", Err: err}
		}
		for _, shopkeeperID := range targets {
			target := &models.RequestTarget{RequestID: request.ID, ShopkeeperID: shopkeeperID}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(target).Error; err != nil {
				return &StoreError{Op: "create broadcast target", Err: err}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.loadRequest(request.ID)
}

// ListCustomerRequests returns a customer's requests, newest first. The
// expiry sweep runs first so an overdue request is never reported as
// still Pending.
func (s *RequestService) ListCustomerRequests(customerID uuid.UUID) ([]models.PartRequest, error) {
	s.sweepOnRead()

	var requests []models.PartRequest
	err := s.db.Where("customer_id = ?", customerID).
		Preload("Offers", func(db *gorm.DB) *gorm.DB {
			return db.Order("offers.responded_at ASC, offers.created_at ASC, offers.id ASC")
		}).
		Preload("Offers.Shopkeeper").
		Preload("Targets").
		Preload("Views").
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, &StoreError{Op: "list customer requests", Err: err}
	}
	return requests, nil
}

// ListMarketRequests returns the active requests a shopkeeper may offer
// on: those broadcast to them, plus untargeted requests, which are
// visible to everyone.
func (s *RequestService) ListMarketRequests(shopkeeperID uuid.UUID) ([]models.PartRequest, error) {
	s.sweepOnRead()

	targeted := s.db.Model(&models.RequestTarget{}).
		Select("request_id").
		Where("shopkeeper_id = ?", shopkeeperID)
	anyTarget := s.db.Model(&models.RequestTarget{}).Select("request_id")

	var requests []models.PartRequest
	err := s.db.Where("status IN ?", models.ActiveRequestStatuses).
		Where("expires_at > ?", s.now()).
		Where("id IN (?) OR id NOT IN (?)", targeted, anyTarget).
		Preload("Customer").
		Preload("Offers", func(db *gorm.DB) *gorm.DB {
			return db.Order("offers.responded_at ASC, offers.created_at ASC, offers.id ASC")
		}).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, &StoreError{Op: "list market requests", Err: err}
	}
	return requests, nil
}

func (s *RequestService) GetRequest(id uuid.UUID) (*models.PartRequest, error) {
	return s.loadRequest(id)
}

// SubmitOffer appends a shopkeeper's offer to a request. The offer row
// insert is atomic; the composite unique index on (request_id,
// shopkeeper_id) is the authoritative duplicate guard, so two racing
// submissions from the same shopkeeper cannot both land.
func (s *RequestService) SubmitOffer(requestID, shopkeeperID uuid.UUID, req *SubmitOfferInput) (*models.PartRequest, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, &ValidationError{Message: "invalid offer fields", Details: utils.GetValidationErrors(err)}
	}

	// Load the shopkeeper for the denormalized display fields.
	var shopkeeper models.User
	if err := s.db.First(&shopkeeper, "id = ?", shopkeeperID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "shopkeeper", ID: shopkeeperID}
		}
		return nil, &StoreError{Op: "load shopkeeper", Err: err}
	}
	if shopkeeper.UserType != models.UserTypeShopkeeper {
		return nil, &ForbiddenError{Message: "only shopkeepers can submit offers"}
	}
	if shopkeeper.Status != models.UserStatusActive {
		return nil, &ForbiddenError{Message: "shopkeeper account is not active"}
	}

	// Flip any overdue requests before taking the write path so the
	// guard below sees the persisted status.
	s.sweepOnRead()

	now := s.now()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var request models.PartRequest
		if err := tx.First(&request, "id = ?", requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Resource: "request", ID: requestID}
			}
			return &StoreError{Op: "load request", Err: err}
		}

		if request.Status.IsTerminal() {
			return &InactiveRequestError{Status: request.Status}
		}

		// Deadline guard independent of the persisted status, in case
		// the request went overdue between the sweep and this read.
		if now.After(request.ExpiresAt) {
			return &InactiveRequestError{Status: models.RequestStatusExpired}
		}

		// Best-effort pre-check; the unique index below is authoritative.
		var existing int64
		if err := tx.Model(&models.Offer{}).
			Where("request_id = ? AND shopkeeper_id = ?", requestID, shopkeeperID).
			Count(&existing).Error; err != nil {
			return &StoreError{Op: "check existing offer", Err: err}
		}
		if existing > 0 {
			return &DuplicateOfferError{RequestID: requestID, ShopkeeperID: shopkeeperID}
		}

		offer := &models.Offer{
			RequestID:      requestID,
			ShopkeeperID:   shopkeeperID,
			ShopkeeperName: shopkeeper.Name,
			ShopName:       shopkeeper.ShopName,
			Price:          req.Price,
			PhotoURL:       req.PhotoURL,
			Message:        req.Message,
			RespondedAt:    now,
		}
		if err := tx.Create(offer).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return &DuplicateOfferError{RequestID: requestID, ShopkeeperID: shopkeeperID}
			}
			return &StoreError{Op: "create offer", Err: err}
		}

		view := &models.RequestView{RequestID: requestID, ShopkeeperID: shopkeeperID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(view).Error; err != nil {
			return &StoreError{Op: "record view", Err: err}
		}

		// Idempotent flip: stays at OffersReceived on repeat offers.
		if err := tx.Model(&models.PartRequest{}).
			Where("id = ? AND status IN ?", requestID, models.ActiveRequestStatuses).
			Update("status", models.RequestStatusOffersReceived).Error; err != nil {
			return &StoreError{Op: "update request status", Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.loadRequest(requestID)
}

// UpdateStatus sets a request's status. In strict mode (the default) the
// transition table is enforced; lax mode reproduces the legacy direct
// overwrite for compatibility.
func (s *RequestService) UpdateStatus(requestID uuid.UUID, newStatus models.RequestStatus, actor Actor) (*models.PartRequest, error) {
	switch newStatus {
	case models.RequestStatusPending, models.RequestStatusOffersReceived,
		models.RequestStatusClosed, models.RequestStatusExpired:
	default:
		return nil, &ValidationError{Message: "unknown status value"}
	}

	var request models.PartRequest
	if err := s.db.First(&request, "id = ?", requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "request", ID: requestID}
		}
		return nil, &StoreError{Op: "load request", Err: err}
	}

	switch actor.Type {
	case models.UserTypeAdmin:
		// Admins may perform any legal transition.
	case models.UserTypeCustomer:
		if request.CustomerID != actor.ID {
			return nil, &ForbiddenError{Message: "not the owner of this request"}
		}
		if newStatus != models.RequestStatusClosed {
			return nil, &ForbiddenError{Message: "customers can only close their requests"}
		}
	default:
		return nil, &ForbiddenError{Message: "not allowed to change request status"}
	}

	if s.strict {
		allowed := false
		for _, to := range requestTransitions[request.Status] {
			if to == newStatus {
				allowed = true
				break
			}
		}
		if !allowed {
			return nil, &IllegalTransitionError{From: request.Status, To: newStatus}
		}
	}

	if err := s.db.Model(&request).Update("status", newStatus).Error; err != nil {
		return nil, &StoreError{Op: "update status", Err: err}
	}

	return s.loadRequest(requestID)
}

// DeleteRequest hard-deletes a request together with its embedded
// offers, targets and views. Expiry never deletes; this is the owner's
// (or an admin's) explicit removal.
func (s *RequestService) DeleteRequest(requestID uuid.UUID, actor Actor) error {
	var request models.PartRequest
	if err := s.db.First(&request, "id = ?", requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "request", ID: requestID}
		}
		return &StoreError{Op: "load request", Err: err}
	}

	if actor.Type != models.UserTypeAdmin && request.CustomerID != actor.ID {
		return &ForbiddenError{Message: "not allowed to delete this request"}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("request_id = ?", requestID).Delete(&models.Offer{}).Error; err != nil {
			return &StoreError{Op: "delete offers", Err: err}
		}
		if err := tx.Where("request_id = ?", requestID).Delete(&models.RequestTarget{}).Error; err != nil {
			return &StoreError{Op: "delete targets", Err: err}
		}
		if err := tx.Where("request_id = ?", requestID).Delete(&models.RequestView{}).Error; err != nil {
			return &StoreError{Op: "delete views", Err: err}
		}
		if err := tx.Delete(&request).Error; err != nil {
			return &StoreError{Op: "delete request", Err: err}
		}
		return nil
	})
	return err
}

// SweepExpired flips every overdue Pending/OffersReceived request to
// Expired in one guarded bulk update. Running it twice with the same
// time is a no-op the second time.
func (s *RequestService) SweepExpired(now time.Time) (int64, error) {
	result := s.db.Model(&models.PartRequest{}).
		Where("status IN ? AND expires_at < ?", models.ActiveRequestStatuses, now).
		Update("status", models.RequestStatusExpired)
	if result.Error != nil {
		return 0, &StoreError{Op: "sweep expired requests", Err: result.Error}
	}
	if result.RowsAffected > 0 {
		logrus.WithField("expired", result.RowsAffected).Info("Expired stale part requests")
	}
	return result.RowsAffected, nil
}

// Now reports the service clock so callers triggering a manual sweep
// stay consistent with read-time expiry checks.
func (s *RequestService) Now() time.Time {
	return s.now()
}

// sweepOnRead keeps list reads consistent without blocking them on a
// sweep failure.
func (s *RequestService) sweepOnRead() {
	if _, err := s.SweepExpired(s.now()); err != nil {
		logrus.WithError(err).Warn("Read-time expiry sweep failed")
	}
}

func (s *RequestService) loadRequest(id uuid.UUID) (*models.PartRequest, error) {
	var request models.PartRequest
	err := s.db.Preload("Customer").
		Preload("Offers", func(db *gorm.DB) *gorm.DB {
			return db.Order("offers.responded_at ASC, offers.created_at ASC, offers.id ASC")
		}).
		Preload("Offers.Shopkeeper").
		Preload("Targets").
		Preload("Views").
		First(&request, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "request", ID: id}
		}
		return nil, &StoreError{Op: "load request", Err: err}
	}
	return &request, nil
}
