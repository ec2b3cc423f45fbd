// internal/models/favorite.go
package models

import (
	"github.com/google/uuid"
)

// Favorite links a user to a spare-part listing. The composite unique
// index prevents duplicate favorites regardless of races at the toggle
// endpoint.
type Favorite struct {
	BaseModel
	UserID uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_favorites_user_part"`
	PartID uuid.UUID `json:"part_id" gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_part"`

	Part *SparePart `json:"part,omitempty" gorm:"foreignKey:PartID"`
}
