package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func validCard() CardDetails {
	return CardDetails{
		Number:   "4111111111111111",
		CVC:      "123",
		ExpMonth: "12",
		ExpYear:  "29",
		Holder:   "JANE DOE",
	}
}

func TestDetectBrand(t *testing.T) {
	require.Equal(t, BrandVisa, DetectBrand("4111111111111111"))
	require.Equal(t, BrandVisa, DetectBrand("4222222222222"))
	require.Equal(t, BrandMastercard, DetectBrand("5555555555554444"))
	require.Equal(t, BrandUnknown, DetectBrand("371449635398431"))
	require.Equal(t, BrandUnknown, DetectBrand("6011111111111117"))
}

func TestCardValidate_AcceptsVisaAndMastercard(t *testing.T) {
	card := validCard()
	require.NoError(t, card.Validate())

	card.Number = "5555555555554444"
	require.NoError(t, card.Validate())
}

func TestCardValidate_SpacesInNumberTolerated(t *testing.T) {
	card := validCard()
	card.Number = "4111 1111 1111 1111"
	require.NoError(t, card.Validate())
}

func TestCardValidate_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CardDetails)
		want   error
	}{
		{"short number", func(c *CardDetails) { c.Number = "411111111111" }, ErrCardNumberLength},
		{"luhn failure", func(c *CardDetails) { c.Number = "4111111111111112" }, ErrCardNumberChecksum},
		{"amex not supported", func(c *CardDetails) { c.Number = "378282246310005" }, ErrUnsupportedBrand},
		{"bad month", func(c *CardDetails) { c.ExpMonth = "13" }, ErrInvalidExpMonth},
		{"bad year", func(c *CardDetails) { c.ExpYear = "2029" }, ErrInvalidExpYear},
		{"bad cvc", func(c *CardDetails) { c.CVC = "12" }, ErrInvalidCVC},
		{"short holder", func(c *CardDetails) { c.Holder = "JD" }, ErrShortCardHolder},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			card := validCard()
			tc.mutate(&card)
			require.ErrorIs(t, card.Validate(), tc.want)
		})
	}
}

func TestMaskedSummary(t *testing.T) {
	summary := validCard().MaskedSummary()
	require.Equal(t, "**** **** **** 1111", summary.CardNumber)
	require.Equal(t, "JANE DOE", summary.CardHolder)
}

func TestParseStatus(t *testing.T) {
	require.Equal(t, StatusPending, ParseStatus("PENDING"))
	require.Equal(t, StatusApproved, ParseStatus("APPROVED"))
	require.Equal(t, StatusDeclined, ParseStatus("DECLINED"))
	require.Equal(t, StatusDeclined, ParseStatus("VOIDED"))
	require.Equal(t, StatusError, ParseStatus("ERROR"))
	require.Equal(t, StatusError, ParseStatus("SOMETHING_NEW"))
}

func TestNewTransaction_Validation(t *testing.T) {
	info := DeliveryInfo{Address: "Cra 7 # 12-34", City: "Bogota", Region: "Cundinamarca", Country: "CO", PostalCode: "110111"}

	customerID := uuid.New()
	transaction, err := NewTransaction(1, customerID, decimal.NewFromInt(4500000), info, validCard())
	require.NoError(t, err)
	require.Equal(t, StatusPending, transaction.Status)
	require.NotZero(t, transaction.ID)
	require.False(t, transaction.CreatedAt.IsZero())
	require.Equal(t, "**** **** **** 1111", transaction.PaymentSummary.CardNumber)

	_, err = NewTransaction(1, customerID, decimal.NewFromInt(0), info, validCard())
	require.ErrorIs(t, err, ErrInvalidAmount)

	bad := info
	bad.PostalCode = "11"
	_, err = NewTransaction(1, customerID, decimal.NewFromInt(4500000), bad, validCard())
	require.ErrorIs(t, err, ErrInvalidPostalCode)
}
