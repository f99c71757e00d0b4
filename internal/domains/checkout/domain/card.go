package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Brand identifies a supported card network.
type Brand string

const (
	BrandVisa       Brand = "VISA"
	BrandMastercard Brand = "MASTERCARD"
	BrandUnknown    Brand = "UNKNOWN"
)

var (
	ErrCardNumberChecksum = errors.New("card number fails Luhn checksum")
	ErrCardNumberLength   = errors.New("card number must be 13-19 digits")
	ErrUnsupportedBrand   = errors.New("card brand is not supported")
	ErrInvalidExpMonth    = errors.New("expiry month must be 01-12")
	ErrInvalidExpYear     = errors.New("expiry year must be 2 digits")
	ErrInvalidCVC         = errors.New("cvc must be 3-4 digits")
	ErrShortCardHolder    = errors.New("card holder name must be at least 5 characters")
)

var (
	visaPattern       = regexp.MustCompile(`^4[0-9]{12}(?:[0-9]{3})?$`)
	mastercardPattern = regexp.MustCompile(`^5[1-5][0-9]{14}$`)
	expMonthPattern   = regexp.MustCompile(`^(0[1-9]|1[0-2])$`)
	expYearPattern    = regexp.MustCompile(`^\d{2}$`)
	cvcPattern        = regexp.MustCompile(`^\d{3,4}$`)
)

// CardDetails holds the full card data in memory only. It must never reach
// persistent storage; MaskedSummary is the persisted projection.
type CardDetails struct {
	Number   string
	CVC      string
	ExpMonth string
	ExpYear  string
	Holder   string
}

// DetectBrand classifies the card number by leading-digit and length rules.
func DetectBrand(number string) Brand {
	switch {
	case visaPattern.MatchString(number):
		return BrandVisa
	case mastercardPattern.MatchString(number):
		return BrandMastercard
	default:
		return BrandUnknown
	}
}

// Validate applies the checkout card acceptance rules.
func (c CardDetails) Validate() error {
	number := strings.ReplaceAll(strings.TrimSpace(c.Number), " ", "")
	if len(number) < 13 || len(number) > 19 {
		return ErrCardNumberLength
	}
	if !luhnValid(number) {
		return ErrCardNumberChecksum
	}
	if DetectBrand(number) == BrandUnknown {
		return ErrUnsupportedBrand
	}
	if !expMonthPattern.MatchString(c.ExpMonth) {
		return ErrInvalidExpMonth
	}
	if !expYearPattern.MatchString(c.ExpYear) {
		return ErrInvalidExpYear
	}
	if !cvcPattern.MatchString(c.CVC) {
		return ErrInvalidCVC
	}
	if len(strings.TrimSpace(c.Holder)) < 5 {
		return ErrShortCardHolder
	}
	return nil
}

// MaskedSummary keeps only the last 4 digits and the holder name.
func (c CardDetails) MaskedSummary() PaymentSummary {
	number := strings.ReplaceAll(strings.TrimSpace(c.Number), " ", "")
	last4 := number
	if len(number) > 4 {
		last4 = number[len(number)-4:]
	}
	return PaymentSummary{
		CardNumber: fmt.Sprintf("**** **** **** %s", last4),
		CardHolder: strings.TrimSpace(c.Holder),
	}
}

func luhnValid(number string) bool {
	checksum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		d := number[i]
		if d < '0' || d > '9' {
			return false
		}
		digit := int(d - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		checksum += digit
		double = !double
	}
	return checksum%10 == 0
}
