package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrOrderNotFound = errors.New("order not found")

type OrderStatus string

const (
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether the progression engine leaves the status alone.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

const OrderTypeCustomer = "customer"

// Thresholds are day offsets from the order date at which an order becomes
// eligible for Shipped and Delivered.
type Thresholds struct {
	ShippedDay          int
	ExpectedDeliveryDay int
}

// DefaultThresholds apply when an order was stored without estimates.
var DefaultThresholds = Thresholds{ShippedDay: 2, ExpectedDeliveryDay: 4}

type Order struct {
	ID           string
	PersonID     string
	AddressID    string
	OrderDate    time.Time
	Status       OrderStatus
	OrderType    string
	ShippingCost decimal.Decimal
	// nil when the order predates delivery estimates
	ShippedDay          *int
	ExpectedDeliveryDay *int
	ShippedDate         *time.Time
	DeliveryDate        *time.Time
}

// Thresholds returns the frozen estimates, falling back to the defaults for
// whichever one is missing.
func (o *Order) Thresholds() Thresholds {
	t := DefaultThresholds
	if o.ShippedDay != nil {
		t.ShippedDay = *o.ShippedDay
	}
	if o.ExpectedDeliveryDay != nil {
		t.ExpectedDeliveryDay = *o.ExpectedDeliveryDay
	}
	return t
}

type OrderLine struct {
	OrderID     string
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Status      OrderStatus
}

func (l OrderLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// OrderSummary is a row of an order listing.
type OrderSummary struct {
	Order
	ItemCount int
	Total     decimal.Decimal
}

// OrderDetail is an order with its lines and payment.
type OrderDetail struct {
	Order
	Lines   []OrderLine
	Payment *PaymentSummary
	Total   decimal.Decimal
}

type PaymentSummary struct {
	Method       string
	Status       string
	Amount       decimal.Decimal
	CardLastFour string
}

// Role is the requester's role as asserted by the upstream auth proxy.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleStaff    Role = "staff"
	RoleAdmin    Role = "admin"
)

// Privileged roles see every order and may administer stock.
func (r Role) Privileged() bool {
	return r == RoleAdmin || r == RoleStaff
}
