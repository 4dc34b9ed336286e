package coordinator

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcmexdev/storefront/internal/cart"
	inventoryservice "github.com/jcmexdev/storefront/internal/inventory-service"
	inventorydomain "github.com/jcmexdev/storefront/internal/inventory-service/domain"
	orderapp "github.com/jcmexdev/storefront/internal/order-service/app"
	orderdomain "github.com/jcmexdev/storefront/internal/order-service/domain"
	"github.com/jcmexdev/storefront/internal/order-service/estimator"
	paymentapp "github.com/jcmexdev/storefront/internal/payment-service/app"
	paymentdomain "github.com/jcmexdev/storefront/internal/payment-service/domain"
	"github.com/jcmexdev/storefront/internal/store"
)

// checkoutRun is the state shared by the steps of one checkout.
type checkoutRun struct {
	req  PlaceOrderRequest
	cart cart.Cart
	now  time.Time

	tx          *sql.Tx
	reservation *inventoryservice.Reservation
	order       *orderdomain.Order
	lines       []orderdomain.OrderLine
}

// Steps after BeginTx only write through run.tx; their Compensate is a
// no-op because rolling the transaction back undoes them.

// --- ValidateStep ---

type ValidateStep struct{ run *checkoutRun }

func (s *ValidateStep) Name() string { return "Validate_Checkout_Step" }

func (s *ValidateStep) Execute(ctx context.Context) error {
	if s.run.cart.Empty() {
		return ErrEmptyCart
	}
	if s.run.req.AddressID == "" {
		return ErrNoAddressSelected
	}
	if !s.run.req.Method.Valid() {
		return fmt.Errorf("%w: %q", paymentdomain.ErrInvalidPaymentMethod, s.run.req.Method)
	}
	return nil
}

func (s *ValidateStep) Compensate(ctx context.Context) error { return nil }

// --- BeginTxStep ---

type BeginTxStep struct {
	run *checkoutRun
	db  *store.DB
}

func (s *BeginTxStep) Name() string { return "Begin_Transaction_Step" }

func (s *BeginTxStep) Execute(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin checkout transaction: %w", err)
	}
	s.run.tx = tx
	return nil
}

// Compensate rolls back everything written by the later steps.
func (s *BeginTxStep) Compensate(ctx context.Context) error {
	if err := s.run.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("rollback checkout transaction: %w", err)
	}
	return nil
}

// --- VerifyAddressStep ---

type VerifyAddressStep struct{ run *checkoutRun }

func (s *VerifyAddressStep) Name() string { return "Verify_Address_Step" }

func (s *VerifyAddressStep) Execute(ctx context.Context) error {
	var one int
	err := s.run.tx.QueryRowContext(ctx,
		"SELECT 1 FROM addresses WHERE address_id = ? AND person_id = ?",
		s.run.req.AddressID, s.run.req.PersonID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNoAddressSelected
	}
	if err != nil {
		return fmt.Errorf("verify address: %w", err)
	}
	return nil
}

func (s *VerifyAddressStep) Compensate(ctx context.Context) error { return nil }

// --- ReserveStockStep ---

type ReserveStockStep struct {
	run    *checkoutRun
	ledger *inventoryservice.Ledger
}

func (s *ReserveStockStep) Name() string { return "Reserve_Stock_Step" }

func (s *ReserveStockStep) Execute(ctx context.Context) error {
	lines := make([]inventorydomain.LineRequest, len(s.run.cart.Items))
	for i, item := range s.run.cart.Items {
		lines[i] = inventorydomain.LineRequest{ProductID: item.ProductID, Quantity: item.Quantity}
	}
	res, err := s.ledger.Reserve(ctx, s.run.tx, lines)
	if err != nil {
		return err
	}
	s.run.reservation = res
	return nil
}

func (s *ReserveStockStep) Compensate(ctx context.Context) error { return nil }

// --- CreateOrderStep ---

type CreateOrderStep struct {
	run          *checkoutRun
	orders       *orderapp.Repository
	shippingCost decimal.Decimal
}

func (s *CreateOrderStep) Name() string { return "Create_Order_Step" }

func (s *CreateOrderStep) OrderID() string {
	if s.run.order == nil {
		return ""
	}
	return s.run.order.ID
}

func (s *CreateOrderStep) Execute(ctx context.Context) error {
	o := &orderdomain.Order{
		ID:           uuid.NewString(),
		PersonID:     s.run.req.PersonID,
		AddressID:    s.run.req.AddressID,
		OrderDate:    s.run.now,
		Status:       orderdomain.StatusProcessing,
		OrderType:    orderdomain.OrderTypeCustomer,
		ShippingCost: s.shippingCost,
	}
	if err := s.orders.Create(ctx, s.run.tx, o); err != nil {
		return err
	}
	s.run.order = o
	return nil
}

func (s *CreateOrderStep) Compensate(ctx context.Context) error { return nil }

// --- EstimateDeliveryStep ---

type EstimateDeliveryStep struct {
	run    *checkoutRun
	orders *orderapp.Repository
	loads  *estimator.LoadReader
}

func (s *EstimateDeliveryStep) Name() string { return "Estimate_Delivery_Step" }

func (s *EstimateDeliveryStep) Execute(ctx context.Context) error {
	load, err := s.loads.Read(ctx, s.run.tx, s.run.order.ID)
	if err != nil {
		return err
	}
	t := estimator.Estimate(load)
	if err := s.orders.SetThresholds(ctx, s.run.tx, s.run.order.ID, t); err != nil {
		return err
	}
	s.run.order.ShippedDay = &t.ShippedDay
	s.run.order.ExpectedDeliveryDay = &t.ExpectedDeliveryDay
	return nil
}

func (s *EstimateDeliveryStep) Compensate(ctx context.Context) error { return nil }

// --- CreateLinesStep ---

type CreateLinesStep struct {
	run    *checkoutRun
	orders *orderapp.Repository
}

func (s *CreateLinesStep) Name() string { return "Create_Order_Lines_Step" }

func (s *CreateLinesStep) Execute(ctx context.Context) error {
	lines := make([]orderdomain.OrderLine, 0, len(s.run.cart.Items))
	for _, item := range s.run.cart.Items {
		var price decimal.Decimal
		err := s.run.tx.QueryRowContext(ctx,
			"SELECT price FROM products WHERE product_id = ? AND is_active = 1", item.ProductID).Scan(&price)
		if errors.Is(err, sql.ErrNoRows) {
			return &inventorydomain.InsufficientStockError{ProductID: item.ProductID, Needed: item.Quantity}
		}
		if err != nil {
			return fmt.Errorf("read price of %s: %w", item.ProductID, err)
		}
		lines = append(lines, orderdomain.OrderLine{
			OrderID:   s.run.order.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: price,
			Status:    orderdomain.StatusProcessing,
		})
	}
	if err := s.orders.CreateLines(ctx, s.run.tx, lines); err != nil {
		return err
	}
	s.run.lines = lines
	return nil
}

func (s *CreateLinesStep) Compensate(ctx context.Context) error { return nil }

// --- DeductStockStep ---

type DeductStockStep struct{ run *checkoutRun }

func (s *DeductStockStep) Name() string { return "Deduct_Stock_Step" }

func (s *DeductStockStep) Execute(ctx context.Context) error {
	return s.run.reservation.Deduct(ctx, s.run.tx)
}

func (s *DeductStockStep) Compensate(ctx context.Context) error { return nil }

// --- PaymentStep ---

type PaymentStep struct {
	run       *checkoutRun
	processor *paymentapp.Processor
}

func (s *PaymentStep) Name() string { return "Payment_Record_Step" }

func (s *PaymentStep) Execute(ctx context.Context) error {
	amount := orderapp.Total(*s.run.order, s.run.lines)
	pay, err := s.processor.Prepare(s.run.order.ID, s.run.req.Method, s.run.req.Card, amount)
	if err != nil {
		return err
	}
	return s.processor.Record(ctx, s.run.tx, pay)
}

func (s *PaymentStep) Compensate(ctx context.Context) error { return nil }

// --- CommitStep ---

type CommitStep struct{ run *checkoutRun }

func (s *CommitStep) Name() string { return "Commit_Step" }

func (s *CommitStep) Execute(ctx context.Context) error {
	if err := s.run.tx.Commit(); err != nil {
		return fmt.Errorf("commit checkout transaction: %w", err)
	}
	return nil
}

// Compensate is never reached: Commit is the last step.
func (s *CommitStep) Compensate(ctx context.Context) error { return nil }
