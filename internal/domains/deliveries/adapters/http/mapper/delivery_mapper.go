package mapper

import (
	"time"

	"github.com/eshop-labs/checkout-api/internal/domains/deliveries/domain"
)

// Delivery is the HTTP representation of a shipping record.
type Delivery struct {
	ID            string    `json:"id"`
	TransactionID string    `json:"transactionId"`
	CustomerID    string    `json:"customerId"`
	Address       string    `json:"address"`
	City          string    `json:"city"`
	Region        string    `json:"region"`
	Country       string    `json:"country"`
	PostalCode    string    `json:"postalCode"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

// FromDomainDelivery maps a domain delivery into the transport representation.
func FromDomainDelivery(d *domain.Delivery) Delivery {
	return Delivery{
		ID:            d.ID.String(),
		TransactionID: d.TransactionID.String(),
		CustomerID:    d.CustomerID.String(),
		Address:       d.Address,
		City:          d.City,
		Region:        d.Region,
		Country:       d.Country,
		PostalCode:    d.PostalCode,
		Status:        string(d.Status),
		CreatedAt:     d.CreatedAt,
	}
}
