package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	productmapper "github.com/eshop-labs/checkout-api/internal/domains/products/adapters/http/mapper"
	productports "github.com/eshop-labs/checkout-api/internal/domains/products/ports"
)

// ProductsAPI wires HTTP transport with the catalog service.
type ProductsAPI struct {
	service productports.Service
}

// NewProductsAPI creates a ProductsAPI backed by the provided service.
func NewProductsAPI(service productports.Service) ProductsAPI {
	return ProductsAPI{service: service}
}

// Get /api/products
// List the catalog with current stock
func (api *ProductsAPI) ListProducts(c *gin.Context) {
	products, err := api.service.ListProducts(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, productmapper.FromDomainProductList(products))
}

// Get /api/products/:id
// Find product by ID
func (api *ProductsAPI) GetProductById(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	product, err := api.service.GetProductByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, productmapper.FromDomainProduct(product))
}
