package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	customermapper "github.com/eshop-labs/checkout-api/internal/domains/customers/adapters/http/mapper"
	customerports "github.com/eshop-labs/checkout-api/internal/domains/customers/ports"
)

// CustomersAPI wires HTTP transport with the customers service.
type CustomersAPI struct {
	service customerports.Service
}

// NewCustomersAPI creates a CustomersAPI backed by the provided service.
func NewCustomersAPI(service customerports.Service) CustomersAPI {
	return CustomersAPI{service: service}
}

// Get /api/customers/:email
// Find the customer profile registered under an email
func (api *CustomersAPI) GetCustomerByEmail(c *gin.Context) {
	customer, err := api.service.GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, customermapper.FromDomainCustomer(customer))
}
