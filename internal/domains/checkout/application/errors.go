package application

import (
	"errors"
	"fmt"

	"github.com/eshop-labs/checkout-api/internal/domains/checkout/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid transaction input")
	// ErrProductNotFound is surfaced before any transaction is persisted.
	ErrProductNotFound = errors.New("product not found")
	// ErrOutOfStock rejects a purchase against an empty shelf.
	ErrOutOfStock = errors.New("product out of stock")
	// ErrTransactionNotFound covers lookups and reconciliation of unknown ids.
	ErrTransactionNotFound = errors.New("transaction not found")
)

func mapValidationError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidAmount) ||
		errors.Is(err, domain.ErrEmptyAddress) ||
		errors.Is(err, domain.ErrEmptyCity) ||
		errors.Is(err, domain.ErrEmptyRegion) ||
		errors.Is(err, domain.ErrEmptyCountry) ||
		errors.Is(err, domain.ErrInvalidPostalCode) ||
		errors.Is(err, domain.ErrCardNumberChecksum) ||
		errors.Is(err, domain.ErrCardNumberLength) ||
		errors.Is(err, domain.ErrUnsupportedBrand) ||
		errors.Is(err, domain.ErrInvalidExpMonth) ||
		errors.Is(err, domain.ErrInvalidExpYear) ||
		errors.Is(err, domain.ErrInvalidCVC) ||
		errors.Is(err, domain.ErrShortCardHolder) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
