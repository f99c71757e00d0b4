package mapper

import (
	"github.com/eshop-labs/checkout-api/internal/domains/customers/domain"
)

// Customer is the HTTP representation of a buyer profile.
type Customer struct {
	ID          string `json:"id"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

// FromDomainCustomer maps a domain customer into the transport representation.
func FromDomainCustomer(c *domain.Customer) Customer {
	return Customer{
		ID:          c.ID.String(),
		FullName:    c.FullName,
		Email:       c.Email,
		PhoneNumber: c.PhoneNumber,
	}
}
