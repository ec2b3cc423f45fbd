// internal/services/part_service.go
package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/purzasetu/sparehub-backend/internal/models"
	"github.com/purzasetu/sparehub-backend/internal/utils"
)

// PartService manages shopkeepers' spare-part listings, the catalog the
// favorite toggle points at.
type PartService struct {
	db *gorm.DB
}

type CreatePartInput struct {
	Name        string               `json:"name" validate:"required,min=2,max=255"`
	Vehicle     string               `json:"vehicle,omitempty" validate:"omitempty,max=150"`
	Category    string               `json:"category" validate:"required,part_category"`
	Condition   models.PartCondition `json:"condition" validate:"required,oneof=New Used"`
	Description string               `json:"description,omitempty"`
	Price       int                  `json:"price" validate:"required,min=1"`
	Stock       int                  `json:"stock" validate:"min=0"`
	Images      []string             `json:"images,omitempty"`
}

type UpdatePartInput struct {
	Name        string               `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Vehicle     string               `json:"vehicle,omitempty" validate:"omitempty,max=150"`
	Category    string               `json:"category,omitempty" validate:"omitempty,part_category"`
	Condition   models.PartCondition `json:"condition,omitempty" validate:"omitempty,oneof=New Used"`
	Description string               `json:"description,omitempty"`
	Price       int                  `json:"price,omitempty" validate:"omitempty,min=1"`
	Stock       *int                 `json:"stock,omitempty" validate:"omitempty,min=0"`
	Images      []string             `json:"images,omitempty"`
	Status      models.PartStatus    `json:"status,omitempty" validate:"omitempty,oneof=active out_of_stock suspended"`
}

type PartSearchParams struct {
	utils.PaginationParams
	ShopkeeperID *uuid.UUID            `json:"shopkeeper_id,omitempty"`
	Condition    *models.PartCondition `json:"condition,omitempty"`
	PriceMin     *int                  `json:"price_min,omitempty"`
	PriceMax     *int                  `json:"price_max,omitempty"`
	District     string                `json:"district,omitempty"`
}

func NewPartService(db *gorm.DB) *PartService {
	return &PartService{db: db}
}

func (s *PartService) CreatePart(shopkeeperID uuid.UUID, req *CreatePartInput) (*models.SparePart, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, &ValidationError{Message: "invalid part fields", Details: utils.GetValidationErrors(err)}
	}

	var shopkeeper models.User
	if err := s.db.First(&shopkeeper, "id = ?", shopkeeperID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "shopkeeper", ID: shopkeeperID}
		}
		return nil, &StoreError{Op: "load shopkeeper", Err: err}
	}
	if shopkeeper.UserType != models.UserTypeShopkeeper {
		return nil, &ForbiddenError{Message: "only shopkeepers can list parts"}
	}
	if shopkeeper.Status != models.UserStatusActive {
		return nil, &ForbiddenError{Message: "shopkeeper account is not active"}
	}

	part := &models.SparePart{
		ShopkeeperID: shopkeeperID,
		Name:         req.Name,
		Vehicle:      req.Vehicle,
		Category:     req.Category,
		Condition:    req.Condition,
		Description:  req.Description,
		Price:        req.Price,
		Stock:        req.Stock,
		Images:       pq.StringArray(req.Images),
		Status:       models.PartStatusActive,
	}
	if err := s.db.Create(part).Error; err != nil {
		return nil, &StoreError{Op: "create part", Err: err}
	}

	if err := s.db.Preload("Shopkeeper").First(part, "id = ?", part.ID).Error; err != nil {
		return nil, &StoreError{Op: "reload part", Err: err}
	}
	return part, nil
}

func (s *PartService) GetPart(id uuid.UUID) (*models.SparePart, error) {
	var part models.SparePart
	if err := s.db.Preload("Shopkeeper").First(&part, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "part", ID: id}
		}
		return nil, &StoreError{Op: "load part", Err: err}
	}

	go s.incrementViewCount(id)
	return &part, nil
}

func (s *PartService) UpdatePart(id, shopkeeperID uuid.UUID, req *UpdatePartInput) (*models.SparePart, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, &ValidationError{Message: "invalid part fields", Details: utils.GetValidationErrors(err)}
	}

	var part models.SparePart
	if err := s.db.First(&part, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "part", ID: id}
		}
		return nil, &StoreError{Op: "load part", Err: err}
	}
	if part.ShopkeeperID != shopkeeperID {
		return nil, &ForbiddenError{Message: "not the owner of this listing"}
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Vehicle != "" {
		updates["vehicle"] = req.Vehicle
	}
	if req.Category != "" {
		updates["category"] = req.Category
	}
	if req.Condition != "" {
		updates["condition"] = req.Condition
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Price > 0 {
		updates["price"] = req.Price
	}
	if req.Stock != nil {
		updates["stock"] = *req.Stock
	}
	if req.Images != nil {
		updates["images"] = pq.StringArray(req.Images)
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}

	if err := s.db.Model(&part).Updates(updates).Error; err != nil {
		return nil, &StoreError{Op: "update part", Err: err}
	}

	if err := s.db.Preload("Shopkeeper").First(&part, "id = ?", id).Error; err != nil {
		return nil, &StoreError{Op: "reload part", Err: err}
	}
	return &part, nil
}

func (s *PartService) DeletePart(id, shopkeeperID uuid.UUID) error {
	var part models.SparePart
	if err := s.db.First(&part, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "part", ID: id}
		}
		return &StoreError{Op: "load part", Err: err}
	}
	if part.ShopkeeperID != shopkeeperID {
		return &ForbiddenError{Message: "not the owner of this listing"}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("part_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return &StoreError{Op: "delete favorites", Err: err}
		}
		if err := tx.Delete(&part).Error; err != nil {
			return &StoreError{Op: "delete part", Err: err}
		}
		return nil
	})
	return err
}

func (s *PartService) SearchParts(params PartSearchParams) ([]models.SparePart, int64, error) {
	query := s.db.Model(&models.SparePart{}).Preload("Shopkeeper").
		Where("status = ?", models.PartStatusActive)

	if params.ShopkeeperID != nil {
		query = query.Where("shopkeeper_id = ?", *params.ShopkeeperID)
	}
	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}
	if params.Condition != nil {
		query = query.Where("condition = ?", *params.Condition)
	}
	if params.PriceMin != nil {
		query = query.Where("price >= ?", *params.PriceMin)
	}
	if params.PriceMax != nil {
		query = query.Where("price <= ?", *params.PriceMax)
	}
	if params.District != "" {
		query = query.Where("shopkeeper_id IN (?)",
			s.db.Model(&models.User{}).Select("id").Where("loc_district = ?", params.District))
	}
	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, &StoreError{Op: "count parts", Err: err}
	}

	allowedSortFields := []string{"created_at", "updated_at", "name", "price", "view_count"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var parts []models.SparePart
	if err := query.Find(&parts).Error; err != nil {
		return nil, 0, &StoreError{Op: "fetch parts", Err: err}
	}
	return parts, total, nil
}

func (s *PartService) incrementViewCount(id uuid.UUID) {
	s.db.Model(&models.SparePart{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1"))
}
