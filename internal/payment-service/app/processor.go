package app

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jcmexdev/storefront/internal/payment-service/domain"
	"github.com/jcmexdev/storefront/internal/store"
)

var (
	cardNumberRe = regexp.MustCompile(`^\d{16}$`)
	holderNameRe = regexp.MustCompile(`^[A-Za-z\s]+$`)
	expirationRe = regexp.MustCompile(`^(0[1-9]|1[0-2])/(\d{2})$`)
)

const maxCardLifetimeYears = 10

// Processor validates checkout payment data and records the payment row.
type Processor struct {
	now      func() time.Time
	hashCost int
}

type Option func(*Processor)

// WithClock replaces time.Now for expiration checks.
func WithClock(now func() time.Time) Option {
	return func(p *Processor) { p.now = now }
}

// WithHashCost sets the bcrypt cost; tests use bcrypt.MinCost.
func WithHashCost(cost int) Option {
	return func(p *Processor) { p.hashCost = cost }
}

func NewProcessor(opts ...Option) *Processor {
	p := &Processor{now: time.Now, hashCost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Prepare validates the payment for orderID and builds the row to store.
// Card payments start as Processing, cash on delivery as Pending.
func (p *Processor) Prepare(orderID string, method domain.Method, card *domain.Card, amount decimal.Decimal) (*domain.Payment, error) {
	pay := &domain.Payment{
		ID:      uuid.NewString(),
		OrderID: orderID,
		Method:  method,
		Status:  domain.StatusPending,
		Amount:  amount,
		PaidAt:  p.now(),
	}

	switch method {
	case domain.MethodCashOnDelivery:
		return pay, nil
	case domain.MethodCreditCard:
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidPaymentMethod, method)
	}

	if card == nil {
		return nil, &domain.PaymentError{Reason: domain.ErrInvalidCardNumber}
	}
	if err := p.ValidateCard(*card); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(card.Number), p.hashCost)
	if err != nil {
		return nil, fmt.Errorf("payment: hash card number: %w", err)
	}

	pay.Status = domain.StatusProcessing
	pay.CardLastFour = card.Number[len(card.Number)-4:]
	pay.CardholderName = card.HolderName
	pay.ExpirationDate = card.ExpirationDate
	pay.HashedCardNumber = string(hashed)
	return pay, nil
}

// ValidateCard checks the card fields in order and reports the first
// failure as a *domain.PaymentError.
func (p *Processor) ValidateCard(c domain.Card) error {
	if !cardNumberRe.MatchString(c.Number) {
		return &domain.PaymentError{Reason: domain.ErrInvalidCardNumber}
	}
	if !holderNameRe.MatchString(c.HolderName) {
		return &domain.PaymentError{Reason: domain.ErrInvalidCardholderName}
	}

	m := expirationRe.FindStringSubmatch(c.ExpirationDate)
	if m == nil {
		return &domain.PaymentError{Reason: domain.ErrInvalidExpirationDate}
	}
	month, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[2])
	year += 2000

	now := p.now()
	// valid through the end of its expiration month
	if year < now.Year() || (year == now.Year() && month < int(now.Month())) {
		return &domain.PaymentError{Reason: domain.ErrExpiredCard}
	}
	firstOfMonth := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, now.Location())
	if firstOfMonth.After(now.AddDate(maxCardLifetimeYears, 0, 0)) {
		return &domain.PaymentError{Reason: domain.ErrExpirationTooFarInFuture}
	}
	return nil
}

// Record inserts the payment through q, normally the checkout transaction.
func (p *Processor) Record(ctx context.Context, q store.Querier, pay *domain.Payment) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO payments (payment_id, order_id, payment_method, payment_status, amount, paid_at,
		                      card_last_four, cardholder_name, expiration_date, hashed_card_number)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		pay.ID, pay.OrderID, string(pay.Method), string(pay.Status), pay.Amount.StringFixed(2),
		store.FormatTimestamp(pay.PaidAt),
		nullable(pay.CardLastFour), nullable(pay.CardholderName), nullable(pay.ExpirationDate), nullable(pay.HashedCardNumber))
	if err != nil {
		return fmt.Errorf("payment: record for order %s: %w", pay.OrderID, err)
	}
	slog.InfoContext(ctx, "payment recorded",
		"order_id", pay.OrderID, "method", pay.Method, "status", pay.Status, "amount", pay.Amount.StringFixed(2))
	return nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
