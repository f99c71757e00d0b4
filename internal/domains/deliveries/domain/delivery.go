package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Status enumerates shipping progression. Only the initial state is ever set
// by this service; later transitions belong to a fulfilment system.
type Status string

const (
	StatusToDeliver Status = "TO_DELIVER"
	StatusShipped   Status = "SHIPPED"
	StatusDelivered Status = "DELIVERED"
)

var ErrMissingTransaction = errors.New("delivery requires an originating transaction")

// Delivery is the shipping record created once a transaction is approved.
// At most one exists per transaction.
type Delivery struct {
	ID            uuid.UUID
	TransactionID uuid.UUID
	CustomerID    uuid.UUID
	Address       string
	City          string
	Region        string
	Country       string
	PostalCode    string
	Status        Status
	CreatedAt     time.Time
}
