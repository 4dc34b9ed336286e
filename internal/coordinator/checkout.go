package coordinator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcmexdev/storefront/internal/cart"
	"github.com/jcmexdev/storefront/internal/coordinator/sagalog"
	inventoryservice "github.com/jcmexdev/storefront/internal/inventory-service"
	orderapp "github.com/jcmexdev/storefront/internal/order-service/app"
	orderdomain "github.com/jcmexdev/storefront/internal/order-service/domain"
	"github.com/jcmexdev/storefront/internal/order-service/estimator"
	paymentapp "github.com/jcmexdev/storefront/internal/payment-service/app"
	paymentdomain "github.com/jcmexdev/storefront/internal/payment-service/domain"
	"github.com/jcmexdev/storefront/internal/pkg/cache"
	"github.com/jcmexdev/storefront/internal/store"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrNoAddressSelected = errors.New("no valid address selected")
	// ErrCheckoutInProgress is returned to a retry that arrives while the
	// first request with the same idempotency key is still running.
	ErrCheckoutInProgress = errors.New("checkout with this idempotency key is in progress")
)

// An idempotency key holds pendingClaim while its checkout runs. The claim
// expires on its own if the process dies before settling it.
const (
	pendingClaim = "pending"
	claimTTL     = time.Minute
)

type PlaceOrderRequest struct {
	PersonID  string
	AddressID string
	Method    paymentdomain.Method
	Card      *paymentdomain.Card
	// IdempotencyKey, when set, makes retries return the first order id.
	IdempotencyKey string
}

// Config carries the checkout settings read from configuration.
type Config struct {
	ShippingRate   decimal.Decimal
	IdempotencyTTL time.Duration
}

// CheckoutService places orders. Every order is created, priced, paid and
// deducted from the ledger in one transaction, or not at all.
type CheckoutService struct {
	db       *store.DB
	ledger   *inventoryservice.Ledger
	orders   *orderapp.Repository
	loads    *estimator.LoadReader
	payments *paymentapp.Processor
	carts    cart.Store
	cache    cache.Cache
	log      sagalog.Repository
	cfg      Config
	now      func() time.Time
}

type Deps struct {
	DB       *store.DB
	Ledger   *inventoryservice.Ledger
	Orders   *orderapp.Repository
	Loads    *estimator.LoadReader
	Payments *paymentapp.Processor
	Carts    cart.Store
	// Cache holds idempotency keys; nil disables them.
	Cache cache.Cache
	// Log is the checkout audit log; nil disables it.
	Log sagalog.Repository
	Now func() time.Time
}

func NewCheckoutService(d Deps, cfg Config) *CheckoutService {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	return &CheckoutService{
		db:       d.DB,
		ledger:   d.Ledger,
		orders:   d.Orders,
		loads:    d.Loads,
		payments: d.Payments,
		carts:    d.Carts,
		cache:    d.Cache,
		log:      d.Log,
		cfg:      cfg,
		now:      now,
	}
}

// PlaceOrder checks out the person's cart and returns the new order id.
// The checked-out items leave the cart only after the transaction commits.
func (s *CheckoutService) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (string, error) {
	idemKey := ""
	if req.IdempotencyKey != "" && s.cache != nil {
		key := s.cache.GenerateKey("place", req.PersonID+":"+req.IdempotencyKey)
		orderID, claimed, err := s.claim(ctx, key)
		if err != nil {
			return "", err
		}
		if orderID != "" {
			slog.InfoContext(ctx, "replaying checkout", "order_id", orderID, "person_id", req.PersonID)
			return orderID, nil
		}
		if claimed {
			idemKey = key
		}
	}

	orderID, c, err := s.place(ctx, req)
	if err != nil {
		if idemKey != "" {
			// release the claim so the client can retry after fixing the request
			if err := s.cache.Delete(ctx, idemKey); err != nil {
				slog.WarnContext(ctx, "failed to release idempotency key", "error", err)
			}
		}
		return "", err
	}

	if idemKey != "" {
		if err := s.cache.Set(ctx, idemKey, orderID, s.cfg.IdempotencyTTL); err != nil {
			slog.WarnContext(ctx, "failed to store idempotency key", "order_id", orderID, "error", err)
		}
	}
	if err := s.carts.Subtract(ctx, req.PersonID, c.Items); err != nil {
		slog.WarnContext(ctx, "failed to remove checked-out items from cart", "order_id", orderID, "error", err)
	}

	slog.InfoContext(ctx, "order placed", "order_id", orderID, "person_id", req.PersonID, "lines", len(c.Items))
	return orderID, nil
}

// claim takes the idempotency key for this request. It returns the order id
// of a finished earlier attempt, or ErrCheckoutInProgress while one is
// running. When the cache is unreachable the checkout goes ahead unclaimed.
func (s *CheckoutService) claim(ctx context.Context, key string) (orderID string, claimed bool, err error) {
	claimed, err = s.cache.SetNX(ctx, key, pendingClaim, claimTTL)
	if err != nil {
		slog.WarnContext(ctx, "idempotency claim failed", "error", err)
		return "", false, nil
	}
	if claimed {
		return "", true, nil
	}

	orderID, err = s.cache.Get(ctx, key)
	if err != nil {
		slog.WarnContext(ctx, "idempotency lookup failed", "error", err)
		return "", false, nil
	}
	if orderID == "" || orderID == pendingClaim {
		return "", false, ErrCheckoutInProgress
	}
	return orderID, false, nil
}

func (s *CheckoutService) place(ctx context.Context, req PlaceOrderRequest) (string, cart.Cart, error) {
	c, err := s.carts.Get(ctx, req.PersonID)
	if err != nil {
		return "", cart.Cart{}, fmt.Errorf("checkout: load cart: %w", err)
	}

	run := &checkoutRun{req: req, cart: c, now: s.now()}
	create := &CreateOrderStep{run: run, orders: s.orders, shippingCost: s.cfg.ShippingRate}
	saga := NewOrchestrator(uuid.NewString(), s.log,
		&ValidateStep{run: run},
		&BeginTxStep{run: run, db: s.db},
		&VerifyAddressStep{run: run},
		&ReserveStockStep{run: run, ledger: s.ledger},
		create,
		&EstimateDeliveryStep{run: run, orders: s.orders, loads: s.loads},
		&CreateLinesStep{run: run, orders: s.orders},
		&DeductStockStep{run: run},
		&PaymentStep{run: run, processor: s.payments},
		&CommitStep{run: run},
	)

	if err := saga.Start(ctx, requestPayload(req, c)); err != nil {
		return "", cart.Cart{}, err
	}
	return create.OrderID(), c, nil
}

// EstimateDelivery previews the thresholds an order placed now would get.
func (s *CheckoutService) EstimateDelivery(ctx context.Context) (orderdomain.Thresholds, error) {
	return s.loads.Preview(ctx, s.db)
}

// requestPayload summarises the request for the audit log. Card data is
// left out.
func requestPayload(req PlaceOrderRequest, c cart.Cart) string {
	b, err := json.Marshal(struct {
		PersonID  string      `json:"person_id"`
		AddressID string      `json:"address_id"`
		Method    string      `json:"payment_method"`
		Items     []cart.Item `json:"items"`
	}{req.PersonID, req.AddressID, string(req.Method), c.Items})
	if err != nil {
		return ""
	}
	return string(b)
}
