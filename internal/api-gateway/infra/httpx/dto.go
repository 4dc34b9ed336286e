package httpx

import (
	"time"

	"github.com/jcmexdev/storefront/internal/cart"
	inventorydomain "github.com/jcmexdev/storefront/internal/inventory-service/domain"
	orderdomain "github.com/jcmexdev/storefront/internal/order-service/domain"
)

// Payment method and card fields are checked by the payment processor, so
// its reasons reach the client unchanged.
type PlaceOrderRequest struct {
	AddressID     string   `json:"address_id" validate:"required"`
	PaymentMethod string   `json:"payment_method" validate:"required"`
	Card          *CardDTO `json:"card,omitempty"`
}

type CardDTO struct {
	Number         string `json:"number"`
	HolderName     string `json:"holder_name"`
	ExpirationDate string `json:"expiration_date"`
}

type PlaceOrderResponse struct {
	OrderID string `json:"order_id"`
}

// Ledger quantities are INT columns.
type AddStockRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1,max=2147483647"`
}

type SetStockRequest struct {
	Quantity int `json:"quantity" validate:"min=0,max=2147483647"`
}

type CartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1"`
}

type OrderResponse struct {
	ID                  string `json:"id"`
	PersonID            string `json:"person_id"`
	AddressID           string `json:"address_id"`
	OrderDate           string `json:"order_date"`
	Status              string `json:"status"`
	ShippingCost        string `json:"shipping_cost"`
	ShippedDay          *int   `json:"shipped_day,omitempty"`
	ExpectedDeliveryDay *int   `json:"expected_delivery_day,omitempty"`
	ShippedDate         string `json:"shipped_date,omitempty"`
	DeliveryDate        string `json:"delivery_date,omitempty"`
}

type OrderSummaryResponse struct {
	OrderResponse
	ItemCount int    `json:"item_count"`
	Total     string `json:"total"`
}

type OrderDetailResponse struct {
	OrderResponse
	Lines   []OrderLineResponse `json:"lines"`
	Payment *PaymentResponse    `json:"payment,omitempty"`
	Total   string              `json:"total"`
}

type OrderLineResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Subtotal    string `json:"subtotal"`
	Status      string `json:"status"`
}

type PaymentResponse struct {
	Method       string `json:"method"`
	Status       string `json:"status"`
	Amount       string `json:"amount"`
	CardLastFour string `json:"card_last_four,omitempty"`
}

type StockEntryResponse struct {
	WarehouseID string `json:"warehouse_id"`
	ProductID   string `json:"product_id"`
	Quantity    int    `json:"quantity"`
}

type TotalStockResponse struct {
	ProductID string `json:"product_id"`
	Total     int    `json:"total"`
}

type EstimateResponse struct {
	ShippedDay          int `json:"shipped_day"`
	ExpectedDeliveryDay int `json:"expected_delivery_day"`
}

type CartResponse struct {
	Items []cart.Item `json:"items"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	// set for insufficient_stock
	ProductID string `json:"product_id,omitempty"`
	Available *int   `json:"available,omitempty"`
}

func mapOrder(o orderdomain.Order) OrderResponse {
	return OrderResponse{
		ID:                  o.ID,
		PersonID:            o.PersonID,
		AddressID:           o.AddressID,
		OrderDate:           o.OrderDate.Format(time.RFC3339),
		Status:              string(o.Status),
		ShippingCost:        o.ShippingCost.StringFixed(2),
		ShippedDay:          o.ShippedDay,
		ExpectedDeliveryDay: o.ExpectedDeliveryDay,
		ShippedDate:         formatDate(o.ShippedDate),
		DeliveryDate:        formatDate(o.DeliveryDate),
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.DateOnly)
}

func mapSummaries(orders []orderdomain.OrderSummary) []OrderSummaryResponse {
	out := make([]OrderSummaryResponse, len(orders))
	for i, o := range orders {
		out[i] = OrderSummaryResponse{
			OrderResponse: mapOrder(o.Order),
			ItemCount:     o.ItemCount,
			Total:         o.Total.StringFixed(2),
		}
	}
	return out
}

func mapDetail(d *orderdomain.OrderDetail) OrderDetailResponse {
	res := OrderDetailResponse{
		OrderResponse: mapOrder(d.Order),
		Lines:         make([]OrderLineResponse, len(d.Lines)),
		Total:         d.Total.StringFixed(2),
	}
	for i, l := range d.Lines {
		res.Lines[i] = OrderLineResponse{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice.StringFixed(2),
			Subtotal:    l.Subtotal().StringFixed(2),
			Status:      string(l.Status),
		}
	}
	if p := d.Payment; p != nil {
		res.Payment = &PaymentResponse{
			Method:       p.Method,
			Status:       p.Status,
			Amount:       p.Amount.StringFixed(2),
			CardLastFour: p.CardLastFour,
		}
	}
	return res
}

func mapEntry(e inventorydomain.StockEntry) StockEntryResponse {
	return StockEntryResponse{WarehouseID: e.WarehouseID, ProductID: e.ProductID, Quantity: e.Quantity}
}
