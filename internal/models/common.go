// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IDs are assigned in the application so the same models work on Postgres
// and on the SQLite databases the tests run against.
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// JSONB type for PostgreSQL (stored as plain JSON text elsewhere)
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// Enums
type UserType string

const (
	UserTypeCustomer   UserType = "customer"
	UserTypeShopkeeper UserType = "shopkeeper"
	UserTypeAdmin      UserType = "admin"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
)

type RequestStatus string

const (
	RequestStatusPending        RequestStatus = "Pending"
	RequestStatusOffersReceived RequestStatus = "OffersReceived"
	RequestStatusClosed         RequestStatus = "Closed"
	RequestStatusExpired        RequestStatus = "Expired"
)

// IsTerminal reports whether a request in this status accepts no further
// offers or transitions.
func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusClosed || s == RequestStatusExpired
}

// ActiveRequestStatuses are the statuses a request can still move out of.
var ActiveRequestStatuses = []RequestStatus{
	RequestStatusPending,
	RequestStatusOffersReceived,
}

type PartCondition string

const (
	PartConditionNew  PartCondition = "New"
	PartConditionUsed PartCondition = "Used"
	PartConditionAny  PartCondition = "Any"
)

type PartStatus string

const (
	PartStatusActive     PartStatus = "active"
	PartStatusOutOfStock PartStatus = "out_of_stock"
	PartStatusSuspended  PartStatus = "suspended"
)

// Location is the {state, district, area} triple used to decide which
// shopkeepers see a request.
type Location struct {
	State    string `json:"state" gorm:"size:100"`
	District string `json:"district" gorm:"size:100"`
	Area     string `json:"area" gorm:"size:150"`
}
