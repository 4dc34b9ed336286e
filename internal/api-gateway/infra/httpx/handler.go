package httpx

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/jcmexdev/storefront/internal/api-gateway/core/domain/entity"
	"github.com/jcmexdev/storefront/internal/api-gateway/core/ports"
	"github.com/jcmexdev/storefront/internal/api-gateway/infra/httpx/middlewares"
	"github.com/jcmexdev/storefront/internal/coordinator"
	orderapp "github.com/jcmexdev/storefront/internal/order-service/app"
	paymentdomain "github.com/jcmexdev/storefront/internal/payment-service/domain"
)

// Handler serves the storefront HTTP API.
type Handler struct {
	orders   ports.OrderService
	checkout ports.Checkout
	stock    ports.StockAdmin
	carts    ports.CartStore
	validate *validator.Validate
}

func NewHandler(orders ports.OrderService, checkout ports.Checkout, stock ports.StockAdmin, carts ports.CartStore) *Handler {
	return &Handler{
		orders:   orders,
		checkout: checkout,
		stock:    stock,
		carts:    carts,
		validate: validator.New(),
	}
}

// PlaceOrder checks out the caller's cart.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req PlaceOrderRequest
	if !h.decode(w, r, &req) {
		return
	}
	id := identity(r)

	placement := coordinator.PlaceOrderRequest{
		PersonID:       id.PersonID,
		AddressID:      req.AddressID,
		Method:         paymentdomain.Method(req.PaymentMethod),
		IdempotencyKey: middlewares.IdempotencyKey(r.Context()),
	}
	if req.Card != nil {
		placement.Card = &paymentdomain.Card{
			Number:         req.Card.Number,
			HolderName:     req.Card.HolderName,
			ExpirationDate: req.Card.ExpirationDate,
		}
	}

	orderID, err := h.checkout.PlaceOrder(r.Context(), placement)
	if err != nil {
		writeDomainError(w, r, err, "checkout_failed")
		return
	}
	writeJSON(w, http.StatusCreated, PlaceOrderResponse{OrderID: orderID})
}

func (h *Handler) EstimateDelivery(w http.ResponseWriter, r *http.Request) {
	t, err := h.checkout.EstimateDelivery(r.Context())
	if err != nil {
		writeDomainError(w, r, err, "internal_error")
		return
	}
	writeJSON(w, http.StatusOK, EstimateResponse{ShippedDay: t.ShippedDay, ExpectedDeliveryDay: t.ExpectedDeliveryDay})
}

// ListOrders returns the caller's own orders, newest first.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListOrders(r.Context(), identity(r).PersonID)
	if err != nil {
		writeDomainError(w, r, err, "internal_error")
		return
	}
	writeJSON(w, http.StatusOK, mapSummaries(orders))
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id := identity(r)
	detail, err := h.orders.GetOrderDetails(r.Context(), chi.URLParam(r, "id"), id.PersonID, id.Role)
	if err != nil {
		writeDomainError(w, r, err, "internal_error")
		return
	}
	writeJSON(w, http.StatusOK, mapDetail(detail))
}

// ListAllOrders is the staff listing with an optional status filter and
// sort key.
func (h *Handler) ListAllOrders(w http.ResponseWriter, r *http.Request) {
	f, err := orderapp.ParseListFilter(r.URL.Query().Get("status"), r.URL.Query().Get("sort"))
	if err != nil {
		writeDomainError(w, r, err, "internal_error")
		return
	}
	orders, err := h.orders.ListAllOrders(r.Context(), f)
	if err != nil {
		writeDomainError(w, r, err, "internal_error")
		return
	}
	writeJSON(w, http.StatusOK, mapSummaries(orders))
}

func (h *Handler) AddStock(w http.ResponseWriter, r *http.Request) {
	var req AddStockRequest
	if !h.decode(w, r, &req) {
		return
	}
	warehouseID := chi.URLParam(r, "wid")
	entry, err := h.stock.AddStock(r.Context(), warehouseID, req.ProductID, req.Quantity)
	if err != nil {
		writeDomainError(w, r, err, "internal_error")
		return
	}
	slog.InfoContext(r.Context(), "stock added",
		"warehouse_id", warehouseID, "product_id", req.ProductID, "quantity", req.Quantity, "by", identity(r).PersonID)
	writeJSON(w, http.StatusOK, mapEntry(entry))
}

func (h *Handler) SetStock(w http.ResponseWriter, r *http.Request) {
	var req SetStockRequest
	if !h.decode(w, r, &req) {
		return
	}
	warehouseID, productID := chi.URLParam(r, "wid"), chi.URLParam(r, "pid")
	entry, err := h.stock.SetStock(r.Context(), warehouseID, productID, req.Quantity)
	if err != nil {
		writeDomainError(w, r, err, "internal_error")
		return
	}
	slog.InfoContext(r.Context(), "stock set",
		"warehouse_id", warehouseID, "product_id", productID, "quantity", req.Quantity, "by", identity(r).PersonID)
	writeJSON(w, http.StatusOK, mapEntry(entry))
}

func (h *Handler) RemoveStock(w http.ResponseWriter, r *http.Request) {
	if err := h.stock.RemoveStock(r.Context(), chi.URLParam(r, "wid"), chi.URLParam(r, "pid")); err != nil {
		writeDomainError(w, r, err, "internal_error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) TotalStock(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "pid")
	total, err := h.stock.TotalStock(r.Context(), productID)
	if err != nil {
		writeDomainError(w, r, err, "internal_error")
		return
	}
	writeJSON(w, http.StatusOK, TotalStockResponse{ProductID: productID, Total: total})
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.carts.Get(r.Context(), identity(r).PersonID)
	if err != nil {
		writeDomainError(w, r, err, "internal_error")
		return
	}
	writeJSON(w, http.StatusOK, CartResponse{Items: c.Items})
}

func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req CartItemRequest
	if !h.decode(w, r, &req) {
		return
	}
	personID := identity(r).PersonID
	if err := h.carts.Add(r.Context(), personID, req.ProductID, req.Quantity); err != nil {
		writeDomainError(w, r, err, "internal_error")
		return
	}
	h.GetCart(w, r)
}

func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	if err := h.carts.Remove(r.Context(), identity(r).PersonID, chi.URLParam(r, "pid")); err != nil {
		writeDomainError(w, r, err, "internal_error")
		return
	}
	h.GetCart(w, r)
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.carts.Clear(r.Context(), identity(r).PersonID); err != nil {
		writeDomainError(w, r, err, "internal_error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decode reads and validates a JSON body, writing the 400 itself.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeDomainError(w, r, fmt.Errorf("%w: %v", errInvalidJSON, err), "invalid_json")
		return false
	}
	if err := h.validate.Struct(v); err != nil {
		writeDomainError(w, r, err, "invalid_request")
		return false
	}
	return true
}

// identity is only called behind middlewares.Identity.
func identity(r *http.Request) entity.Identity {
	id, _ := entity.IdentityFrom(r.Context())
	return id
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: msg,
	})
}
