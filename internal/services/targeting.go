// internal/services/targeting.go
package services

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/purzasetu/sparehub-backend/internal/models"
)

// TargetingStrategy decides which shopkeepers a new request is broadcast
// to. An empty result means the request is visible to every shopkeeper.
type TargetingStrategy interface {
	ComputeTargets(request *models.PartRequest, requested []uuid.UUID) ([]uuid.UUID, error)
}

// CallerTargeting keeps whatever target list the caller supplied,
// matching the observed behavior where the frontend owns targeting and
// often leaves the list empty.
type CallerTargeting struct{}

func (CallerTargeting) ComputeTargets(_ *models.PartRequest, requested []uuid.UUID) ([]uuid.UUID, error) {
	return requested, nil
}

// DistrictTargeting broadcasts to every active shopkeeper registered in
// the request's district, falling back to the caller's list when the
// district matches nobody.
type DistrictTargeting struct {
	DB *gorm.DB
}

func (t *DistrictTargeting) ComputeTargets(request *models.PartRequest, requested []uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := t.DB.Model(&models.User{}).
		Where("user_type = ? AND status = ?", models.UserTypeShopkeeper, models.UserStatusActive).
		Where("loc_state = ? AND loc_district = ?", request.Location.State, request.Location.District).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, &StoreError{Op: "compute district targets", Err: err}
	}

	if len(ids) == 0 {
		return requested, nil
	}
	return ids, nil
}
