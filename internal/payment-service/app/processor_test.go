package app_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jcmexdev/storefront/internal/payment-service/app"
	"github.com/jcmexdev/storefront/internal/payment-service/domain"
)

var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newProcessor() *app.Processor {
	return app.NewProcessor(
		app.WithClock(func() time.Time { return fixedNow }),
		app.WithHashCost(bcrypt.MinCost),
	)
}

func validCard() domain.Card {
	return domain.Card{Number: "4111111111111111", HolderName: "Jane Q Public", ExpirationDate: "09/27"}
}

func TestValidateCard(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Card)
		want   error
	}{
		{"valid", func(c *domain.Card) {}, nil},
		{"fifteen digits", func(c *domain.Card) { c.Number = "411111111111111" }, domain.ErrInvalidCardNumber},
		{"spaces in number", func(c *domain.Card) { c.Number = "4111 1111 1111 1111" }, domain.ErrInvalidCardNumber},
		{"letters in number", func(c *domain.Card) { c.Number = "411111111111111a" }, domain.ErrInvalidCardNumber},
		{"digits in name", func(c *domain.Card) { c.HolderName = "R2 D2" }, domain.ErrInvalidCardholderName},
		{"empty name", func(c *domain.Card) { c.HolderName = "" }, domain.ErrInvalidCardholderName},
		{"month 13", func(c *domain.Card) { c.ExpirationDate = "13/27" }, domain.ErrInvalidExpirationDate},
		{"four digit year", func(c *domain.Card) { c.ExpirationDate = "09/2027" }, domain.ErrInvalidExpirationDate},
		{"last month", func(c *domain.Card) { c.ExpirationDate = "05/25" }, domain.ErrExpiredCard},
		{"current month still valid", func(c *domain.Card) { c.ExpirationDate = "06/25" }, nil},
		{"exactly ten years", func(c *domain.Card) { c.ExpirationDate = "06/35" }, nil},
		{"beyond ten years", func(c *domain.Card) { c.ExpirationDate = "07/35" }, domain.ErrExpirationTooFarInFuture},
	}
	p := newProcessor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := validCard()
			tt.mutate(&card)

			err := p.ValidateCard(card)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			var payErr *domain.PaymentError
			require.ErrorAs(t, err, &payErr)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPrepare_CreditCard(t *testing.T) {
	card := validCard()
	pay, err := newProcessor().Prepare("order-1", domain.MethodCreditCard, &card, decimal.RequireFromString("30.00"))
	require.NoError(t, err)

	assert.Equal(t, domain.StatusProcessing, pay.Status)
	assert.Equal(t, "1111", pay.CardLastFour)
	assert.NotContains(t, pay.HashedCardNumber, card.Number)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(pay.HashedCardNumber), []byte(card.Number)))
	assert.Equal(t, fixedNow, pay.PaidAt)
	assert.NotEmpty(t, pay.ID)
}

func TestPrepare_CashOnDelivery(t *testing.T) {
	pay, err := newProcessor().Prepare("order-1", domain.MethodCashOnDelivery, nil, decimal.NewFromInt(9))
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, pay.Status)
	assert.Empty(t, pay.CardLastFour)
	assert.Empty(t, pay.HashedCardNumber)
}

func TestPrepare_UnknownMethod(t *testing.T) {
	_, err := newProcessor().Prepare("order-1", domain.Method("Barter"), nil, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidPaymentMethod)
}

func TestPrepare_CardMissing(t *testing.T) {
	_, err := newProcessor().Prepare("order-1", domain.MethodCreditCard, nil, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidCardNumber)
}
