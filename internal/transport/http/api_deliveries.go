package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	deliverymapper "github.com/eshop-labs/checkout-api/internal/domains/deliveries/adapters/http/mapper"
	deliveryports "github.com/eshop-labs/checkout-api/internal/domains/deliveries/ports"
)

// DeliveriesAPI wires HTTP transport with the deliveries service.
type DeliveriesAPI struct {
	service deliveryports.Service
}

// NewDeliveriesAPI creates a DeliveriesAPI backed by the provided service.
func NewDeliveriesAPI(service deliveryports.Service) DeliveriesAPI {
	return DeliveriesAPI{service: service}
}

// Get /api/deliveries/:transactionId
// Find the delivery created for an approved transaction
func (api *DeliveriesAPI) GetDeliveryByTransactionId(c *gin.Context) {
	transactionID, ok := parseUUIDParam(c, "transactionId")
	if !ok {
		return
	}
	delivery, err := api.service.GetByTransactionID(c.Request.Context(), transactionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, deliverymapper.FromDomainDelivery(delivery))
}
