// internal/services/favorite_service.go
package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/purzasetu/sparehub-backend/internal/models"
)

type FavoriteService struct {
	db *gorm.DB
}

const (
	FavoriteAdded   = "added"
	FavoriteRemoved = "removed"
)

func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{db: db}
}

// Toggle adds the (user, part) pair if absent and removes it if present,
// reporting which of the two happened.
func (s *FavoriteService) Toggle(userID, partID uuid.UUID) (string, error) {
	var part models.SparePart
	if err := s.db.First(&part, "id = ?", partID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", &NotFoundError{Resource: "part", ID: partID}
		}
		return "", &StoreError{Op: "load part", Err: err}
	}

	var action string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND part_id = ?", userID, partID).
			Delete(&models.Favorite{})
		if result.Error != nil {
			return &StoreError{Op: "remove favorite", Err: result.Error}
		}
		if result.RowsAffected > 0 {
			action = FavoriteRemoved
			return nil
		}

		favorite := &models.Favorite{UserID: userID, PartID: partID}
		if err := tx.Create(favorite).Error; err != nil {
			// A concurrent toggle inserted first; the pair exists, which
			// is what "added" reports.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				action = FavoriteAdded
				return nil
			}
			return &StoreError{Op: "add favorite", Err: err}
		}
		action = FavoriteAdded
		return nil
	})
	if err != nil {
		return "", err
	}
	return action, nil
}

// List returns a user's favorites, newest first, with the part loaded
// for display.
func (s *FavoriteService) List(userID uuid.UUID) ([]models.Favorite, error) {
	var favorites []models.Favorite
	err := s.db.Where("user_id = ?", userID).
		Preload("Part").
		Order("created_at DESC").
		Find(&favorites).Error
	if err != nil {
		return nil, &StoreError{Op: "list favorites", Err: err}
	}
	return favorites, nil
}

// Remove deletes a specific favorite pair.
func (s *FavoriteService) Remove(userID, partID uuid.UUID) error {
	result := s.db.Where("user_id = ? AND part_id = ?", userID, partID).
		Delete(&models.Favorite{})
	if result.Error != nil {
		return &StoreError{Op: "remove favorite", Err: result.Error}
	}
	if result.RowsAffected == 0 {
		return &NotFoundError{Resource: "favorite", ID: partID}
	}
	return nil
}
