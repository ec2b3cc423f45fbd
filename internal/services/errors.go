// internal/services/errors.go
package services

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/purzasetu/sparehub-backend/internal/models"
)

// ValidationError is rejected input: a missing required field or an
// inverted budget range. Mapped to 400.
type ValidationError struct {
	Message string
	Details interface{}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError is a reference to a record that does not exist. Mapped
// to 404.
type NotFoundError struct {
	Resource string
	ID       uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// InactiveRequestError is an offer submitted to a request that is Closed
// or Expired. Mapped to 400.
type InactiveRequestError struct {
	Status models.RequestStatus
}

func (e *InactiveRequestError) Error() string {
	return fmt.Sprintf("request is no longer active (status %s)", e.Status)
}

// DuplicateOfferError is a shopkeeper offering twice on the same request.
// Mapped to 400.
type DuplicateOfferError struct {
	RequestID    uuid.UUID
	ShopkeeperID uuid.UUID
}

func (e *DuplicateOfferError) Error() string {
	return fmt.Sprintf("shopkeeper %s already has an offer on request %s", e.ShopkeeperID, e.RequestID)
}

// IllegalTransitionError is a status change the lifecycle state machine
// forbids, reported only in strict mode. Mapped to 400.
type IllegalTransitionError struct {
	From models.RequestStatus
	To   models.RequestStatus
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal status transition %s -> %s", e.From, e.To)
}

// ForbiddenError is an authorized caller acting outside its rights, such
// as a customer closing someone else's request. Mapped to 403.
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	return e.Message
}

// StoreError wraps a persistence failure. Mapped to 500. Callers may
// retry idempotent reads, but must not blindly retry submitOffer without
// re-checking duplicate state.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
