// internal/models/part.go
package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type SparePart struct {
	BaseModel
	ShopkeeperID uuid.UUID      `json:"shopkeeper_id" gorm:"type:uuid;not null;index"`
	Name         string         `json:"name" gorm:"size:255;not null"`
	Vehicle      string         `json:"vehicle" gorm:"size:150"`
	Category     string         `json:"category" gorm:"size:50;index"`
	Condition    PartCondition  `json:"condition" gorm:"type:varchar(10);not null"`
	Description  string         `json:"description" gorm:"type:text"`
	Price        int            `json:"price" gorm:"not null"`
	Stock        int            `json:"stock" gorm:"default:0"`
	Images       pq.StringArray `json:"images" gorm:"type:text[]"`
	Status       PartStatus     `json:"status" gorm:"type:varchar(20);default:'active';index"`
	ViewCount    int64          `json:"view_count" gorm:"default:0"`

	// Relationships
	Shopkeeper *User `json:"shopkeeper,omitempty" gorm:"foreignKey:ShopkeeperID"`
}
