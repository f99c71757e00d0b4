package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyFullName = errors.New("customer full name is required")
	ErrInvalidEmail  = errors.New("customer email is invalid")
	ErrInvalidPhone  = errors.New("customer phone number must be 7-20 characters")
)

// Customer identifies a buyer by their unique email. The profile is written
// once on first purchase and never mutated afterwards.
type Customer struct {
	ID          uuid.UUID
	FullName    string
	Email       string
	PhoneNumber string
}

// NewCustomer validates and constructs a customer with a fresh identity.
func NewCustomer(fullName, email, phoneNumber string) (*Customer, error) {
	customer := &Customer{
		ID:          uuid.New(),
		FullName:    strings.TrimSpace(fullName),
		Email:       strings.ToLower(strings.TrimSpace(email)),
		PhoneNumber: strings.TrimSpace(phoneNumber),
	}
	if err := customer.Validate(); err != nil {
		return nil, err
	}
	return customer, nil
}

// Validate enforces invariants on the aggregate.
func (c *Customer) Validate() error {
	if len(c.FullName) < 2 {
		return ErrEmptyFullName
	}
	at := strings.Index(c.Email, "@")
	if at < 1 || at == len(c.Email)-1 {
		return ErrInvalidEmail
	}
	if len(c.PhoneNumber) < 7 || len(c.PhoneNumber) > 20 {
		return ErrInvalidPhone
	}
	return nil
}
