package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status enumerates the payment transaction lifecycle. A transaction is
// created PENDING and moves exactly once into one of the terminal states.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusDeclined Status = "DECLINED"
	StatusError    Status = "ERROR"
)

// Terminal reports whether the status admits no further transitions.
func (s Status) Terminal() bool {
	switch s {
	case StatusApproved, StatusDeclined, StatusError:
		return true
	default:
		return false
	}
}

var (
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrEmptyAddress      = errors.New("delivery address is required")
	ErrEmptyCity         = errors.New("delivery city is required")
	ErrEmptyRegion       = errors.New("delivery region is required")
	ErrEmptyCountry      = errors.New("delivery country is required")
	ErrInvalidPostalCode = errors.New("postal code must be 3-10 characters")
)

// DeliveryInfo is the address snapshot captured verbatim at creation time.
// It is persisted as a document so its shape can evolve without migration.
type DeliveryInfo struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	Region     string `json:"region"`
	Country    string `json:"country"`
	PostalCode string `json:"postalCode"`
}

// Validate enforces the delivery snapshot shape at the engine boundary.
func (d DeliveryInfo) Validate() error {
	if d.Address == "" {
		return ErrEmptyAddress
	}
	if d.City == "" {
		return ErrEmptyCity
	}
	if d.Region == "" {
		return ErrEmptyRegion
	}
	if d.Country == "" {
		return ErrEmptyCountry
	}
	if len(d.PostalCode) < 3 || len(d.PostalCode) > 10 {
		return ErrInvalidPostalCode
	}
	return nil
}

// PaymentSummary is the only payment detail that ever reaches storage:
// the masked card number and the holder name.
type PaymentSummary struct {
	CardNumber string `json:"card_number"`
	CardHolder string `json:"card_holder"`
}

// Transaction records a purchase attempt and its linkage to product,
// customer, and gateway. Amount, product, and customer never change after
// creation; only status and the gateway id are mutated later.
type Transaction struct {
	ID             uuid.UUID
	ProductID      int64
	CustomerID     uuid.UUID
	Amount         decimal.Decimal
	Status         Status
	DeliveryInfo   DeliveryInfo
	PaymentSummary PaymentSummary
	GatewayID      string
	CreatedAt      time.Time
}

// NewTransaction validates and constructs a pending transaction.
func NewTransaction(productID int64, customerID uuid.UUID, amount decimal.Decimal, deliveryInfo DeliveryInfo, card CardDetails) (*Transaction, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if err := deliveryInfo.Validate(); err != nil {
		return nil, err
	}
	if err := card.Validate(); err != nil {
		return nil, err
	}
	return &Transaction{
		ID:             uuid.New(),
		ProductID:      productID,
		CustomerID:     customerID,
		Amount:         amount,
		Status:         StatusPending,
		DeliveryInfo:   deliveryInfo,
		PaymentSummary: card.MaskedSummary(),
		CreatedAt:      time.Now().UTC(),
	}, nil
}

// ParseStatus maps a stored or gateway-reported status string onto the
// four-state enum. VOIDED charges are treated as declined; anything else
// unknown collapses to ERROR.
func ParseStatus(raw string) Status {
	switch Status(raw) {
	case StatusPending, StatusApproved, StatusDeclined, StatusError:
		return Status(raw)
	case "VOIDED":
		return StatusDeclined
	default:
		return StatusError
	}
}
