package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type Method string

const (
	MethodCreditCard     Method = "Credit Card"
	MethodCashOnDelivery Method = "Cash on Delivery"
)

func (m Method) Valid() bool {
	return m == MethodCreditCard || m == MethodCashOnDelivery
}

type Status string

const (
	StatusPending    Status = "Pending"
	StatusProcessing Status = "Processing"
)

var ErrInvalidPaymentMethod = errors.New("invalid payment method")

// Card rejection reasons. They reach callers wrapped in *PaymentError.
var (
	ErrInvalidCardNumber        = errors.New("card number must be 16 digits")
	ErrInvalidCardholderName    = errors.New("cardholder name must contain only letters and spaces")
	ErrInvalidExpirationDate    = errors.New("expiration date must be MM/YY")
	ErrExpiredCard              = errors.New("card is expired")
	ErrExpirationTooFarInFuture = errors.New("expiration date is more than 10 years away")
)

// PaymentError is a rejected card. Reason is one of the Err* values above.
type PaymentError struct {
	Reason error
}

func (e *PaymentError) Error() string { return "invalid payment: " + e.Reason.Error() }
func (e *PaymentError) Unwrap() error { return e.Reason }

// Card is the card data submitted at checkout.
type Card struct {
	Number         string
	HolderName     string
	ExpirationDate string
}

// Payment is the row recorded for an order. Only the last four digits of
// the card number are kept in clear.
type Payment struct {
	ID               string
	OrderID          string
	Method           Method
	Status           Status
	Amount           decimal.Decimal
	PaidAt           time.Time
	CardLastFour     string
	CardholderName   string
	ExpirationDate   string
	HashedCardNumber string
}
