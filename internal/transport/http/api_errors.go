package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	checkoutapp "github.com/eshop-labs/checkout-api/internal/domains/checkout/application"
	checkoutports "github.com/eshop-labs/checkout-api/internal/domains/checkout/ports"
	customerports "github.com/eshop-labs/checkout-api/internal/domains/customers/ports"
	deliveryports "github.com/eshop-labs/checkout-api/internal/domains/deliveries/ports"
	productports "github.com/eshop-labs/checkout-api/internal/domains/products/ports"
	apierrors "github.com/eshop-labs/checkout-api/internal/shared/errors"
)

// responder maps application errors onto RFC 7807 problems before falling
// back to the default internal-error shape.
var responder = apierrors.NewChainedResponder("", mapCheckoutError, mapCatalogError, mapCustomerError, mapDeliveryError)

func mapCheckoutError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, checkoutapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, checkoutapp.ErrProductNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, checkoutapp.ErrOutOfStock):
		return apierrors.ErrOutOfStock.WithDetail(err.Error()), true
	case errors.Is(err, checkoutapp.ErrTransactionNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, checkoutports.ErrGateway):
		return apierrors.ErrBadGateway.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapCatalogError(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, productports.ErrNotFound) {
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	}
	if errors.Is(err, productports.ErrOutOfStock) {
		return apierrors.ErrOutOfStock.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapCustomerError(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, customerports.ErrNotFound) {
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapDeliveryError(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, deliveryports.ErrNotFound) {
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

// respondServiceError routes an application error through the responder.
func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	responder.RespondError(c, err)
}

// respondError preserves plain status call sites while returning RFC 7807 responses.
func respondError(c *gin.Context, status int, err error) {
	if err == nil {
		return
	}
	var problem apierrors.ProblemDetail
	switch status {
	case http.StatusBadRequest:
		problem = apierrors.ErrBadRequest.WithDetail(err.Error())
	case http.StatusNotFound:
		problem = apierrors.ErrNotFound.WithDetail(err.Error())
	case http.StatusConflict:
		problem = apierrors.ErrConflict.WithDetail(err.Error())
	default:
		problem = apierrors.ErrInternal.WithDetail(err.Error())
	}
	apierrors.Respond(c, problem)
}
