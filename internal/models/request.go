// internal/models/request.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// PartRequest is a customer's broadcast ask for a spare part. Offers,
// broadcast targets and views live in their own tables so concurrent
// writers append rows instead of rewriting the whole document.
type PartRequest struct {
	BaseModel
	CustomerID  uuid.UUID     `json:"customer_id" gorm:"type:uuid;not null;index"`
	PartName    string        `json:"part_name" gorm:"size:255;not null"`
	Vehicle     string        `json:"vehicle" gorm:"size:150;not null"`
	Category    string        `json:"category" gorm:"size:50;not null;index"`
	Condition   PartCondition `json:"condition" gorm:"type:varchar(10);not null"`
	Description string        `json:"description" gorm:"type:text"`
	PhotoURL    string        `json:"photo_url,omitempty" gorm:"size:512"`
	BudgetMin   int           `json:"budget_min" gorm:"not null"`
	BudgetMax   int           `json:"budget_max" gorm:"not null"`
	Location    Location      `json:"location" gorm:"embedded;embeddedPrefix:loc_"`
	Status      RequestStatus `json:"status" gorm:"type:varchar(20);default:'Pending';index"`
	// ExpiresAt is fixed at creation and never mutated afterwards.
	ExpiresAt time.Time `json:"expires_at" gorm:"not null;index"`

	// Relationships
	Customer *User           `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Offers   []Offer         `json:"offers" gorm:"foreignKey:RequestID"`
	Targets  []RequestTarget `json:"broadcasted_to,omitempty" gorm:"foreignKey:RequestID"`
	Views    []RequestView   `json:"viewed_by,omitempty" gorm:"foreignKey:RequestID"`
}

// Offer is one shopkeeper's priced response to a request. The composite
// unique index is the authoritative one-offer-per-shopkeeper guard; the
// service-level existence check is a best-effort pre-check only.
type Offer struct {
	BaseModel
	RequestID      uuid.UUID `json:"request_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_offers_request_shopkeeper"`
	ShopkeeperID   uuid.UUID `json:"shopkeeper_id" gorm:"type:uuid;not null;uniqueIndex:idx_offers_request_shopkeeper"`
	ShopkeeperName string    `json:"shopkeeper_name" gorm:"size:100;not null"`
	ShopName       string    `json:"shop_name" gorm:"size:150;not null"`
	Price          int       `json:"price" gorm:"not null"`
	PhotoURL       string    `json:"photo_url,omitempty" gorm:"size:512"`
	Message        string    `json:"message,omitempty" gorm:"type:text"`
	RespondedAt    time.Time `json:"responded_at" gorm:"not null"`

	Shopkeeper *User `json:"shopkeeper,omitempty" gorm:"foreignKey:ShopkeeperID"`
}

// RequestTarget records that a request was broadcast to a shopkeeper.
// No rows for a request means the request is visible to every shopkeeper.
type RequestTarget struct {
	BaseModel
	RequestID    uuid.UUID `json:"request_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_targets_request_shopkeeper"`
	ShopkeeperID uuid.UUID `json:"shopkeeper_id" gorm:"type:uuid;not null;uniqueIndex:idx_targets_request_shopkeeper"`
}

// RequestView records that a shopkeeper interacted with a request.
type RequestView struct {
	BaseModel
	RequestID    uuid.UUID `json:"request_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_views_request_shopkeeper"`
	ShopkeeperID uuid.UUID `json:"shopkeeper_id" gorm:"type:uuid;not null;uniqueIndex:idx_views_request_shopkeeper"`
}
