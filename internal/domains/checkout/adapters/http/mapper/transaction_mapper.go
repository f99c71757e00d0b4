package mapper

import (
	"github.com/shopspring/decimal"

	"github.com/eshop-labs/checkout-api/internal/domains/checkout/domain"
	"github.com/eshop-labs/checkout-api/internal/domains/checkout/ports"
)

// CardPayload carries the raw card data for a purchase. It lives only in the
// request lifecycle and is never echoed back.
type CardPayload struct {
	Number   string `json:"number" binding:"required"`
	CVC      string `json:"cvc" binding:"required"`
	ExpMonth string `json:"expMonth" binding:"required"`
	ExpYear  string `json:"expYear" binding:"required"`
	Holder   string `json:"cardHolder" binding:"required"`
}

// CustomerPayload identifies the purchasing customer.
type CustomerPayload struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
	Phone string `json:"phone" binding:"required"`
}

// DeliveryPayload is the shipping address supplied with the purchase.
type DeliveryPayload struct {
	Address    string `json:"address" binding:"required"`
	City       string `json:"city" binding:"required"`
	Region     string `json:"region" binding:"required"`
	Country    string `json:"country" binding:"required"`
	PostalCode string `json:"postalCode" binding:"required"`
}

// CreateTransactionRequest is the inbound purchase payload.
type CreateTransactionRequest struct {
	ProductID    int64           `json:"productId" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	Installments int             `json:"installments"`
	Customer     CustomerPayload `json:"customer" binding:"required"`
	Delivery     DeliveryPayload `json:"delivery" binding:"required"`
	Card         CardPayload     `json:"card" binding:"required"`
}

// TransactionResponse is the outbound transaction representation. Card data
// appears only as the persisted masked summary.
type TransactionResponse struct {
	ID         string          `json:"id"`
	ProductID  int64           `json:"productId"`
	CustomerID string          `json:"customerId"`
	Amount     decimal.Decimal `json:"amount"`
	Status     string          `json:"status"`
	GatewayID  string          `json:"gatewayId,omitempty"`
	CardNumber string          `json:"cardNumber"`
	CardHolder string          `json:"cardHolder"`
	Delivery   DeliveryPayload `json:"delivery"`
	CreatedAt  string          `json:"createdAt"`
}

// StatusResponse is the lightweight polling representation.
type StatusResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// ToCreateInput converts the inbound payload into the application input.
func ToCreateInput(request CreateTransactionRequest) ports.CreateTransactionInput {
	return ports.CreateTransactionInput{
		ProductID:     request.ProductID,
		Amount:        request.Amount,
		CustomerEmail: request.Customer.Email,
		CustomerName:  request.Customer.Name,
		CustomerPhone: request.Customer.Phone,
		DeliveryInfo: domain.DeliveryInfo{
			Address:    request.Delivery.Address,
			City:       request.Delivery.City,
			Region:     request.Delivery.Region,
			Country:    request.Delivery.Country,
			PostalCode: request.Delivery.PostalCode,
		},
		Card: domain.CardDetails{
			Number:   request.Card.Number,
			CVC:      request.Card.CVC,
			ExpMonth: request.Card.ExpMonth,
			ExpYear:  request.Card.ExpYear,
			Holder:   request.Card.Holder,
		},
		Installments: request.Installments,
	}
}

// FromTransaction maps a domain transaction into the transport representation.
func FromTransaction(transaction *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:         transaction.ID.String(),
		ProductID:  transaction.ProductID,
		CustomerID: transaction.CustomerID.String(),
		Amount:     transaction.Amount,
		Status:     string(transaction.Status),
		GatewayID:  transaction.GatewayID,
		CardNumber: transaction.PaymentSummary.CardNumber,
		CardHolder: transaction.PaymentSummary.CardHolder,
		Delivery: DeliveryPayload{
			Address:    transaction.DeliveryInfo.Address,
			City:       transaction.DeliveryInfo.City,
			Region:     transaction.DeliveryInfo.Region,
			Country:    transaction.DeliveryInfo.Country,
			PostalCode: transaction.DeliveryInfo.PostalCode,
		},
		CreatedAt: transaction.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// FromTransactionList maps a slice of transactions into transport responses.
func FromTransactionList(list []*domain.Transaction) []TransactionResponse {
	result := make([]TransactionResponse, 0, len(list))
	for _, transaction := range list {
		result = append(result, FromTransaction(transaction))
	}
	return result
}

// FromTransactionStatus maps the polling view of a transaction.
func FromTransactionStatus(transaction *domain.Transaction) StatusResponse {
	return StatusResponse{ID: transaction.ID.String(), Status: string(transaction.Status)}
}
