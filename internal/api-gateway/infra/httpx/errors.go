package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jcmexdev/storefront/internal/cart"
	"github.com/jcmexdev/storefront/internal/coordinator"
	inventorydomain "github.com/jcmexdev/storefront/internal/inventory-service/domain"
	orderapp "github.com/jcmexdev/storefront/internal/order-service/app"
	orderdomain "github.com/jcmexdev/storefront/internal/order-service/domain"
	paymentdomain "github.com/jcmexdev/storefront/internal/payment-service/domain"
)

var errInvalidJSON = errors.New("request body is not valid JSON")

var badRequest = []error{
	errInvalidJSON,
	coordinator.ErrEmptyCart,
	coordinator.ErrNoAddressSelected,
	paymentdomain.ErrInvalidPaymentMethod,
	cart.ErrInvalidQuantity,
	inventorydomain.ErrInvalidQuantity,
	orderapp.ErrInvalidFilter,
}

var notFound = []error{
	orderdomain.ErrOrderNotFound,
	inventorydomain.ErrWarehouseNotFound,
	inventorydomain.ErrProductNotFound,
	inventorydomain.ErrEntryNotFound,
}

// writeDomainError maps err to a status code. Anything unrecognised is a
// 500 with fallback as its code and no details.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var (
		validation   validator.ValidationErrors
		insufficient *inventorydomain.InsufficientStockError
		payment      *paymentdomain.PaymentError
	)
	switch {
	case errors.As(err, &validation):
		writeError(w, http.StatusBadRequest, "invalid_request", validation.Error())
		return
	case errors.As(err, &insufficient):
		available := insufficient.Available
		writeJSON(w, http.StatusConflict, ErrorResponse{
			Error:     "insufficient_stock",
			Message:   insufficient.Error(),
			ProductID: insufficient.ProductID,
			Available: &available,
		})
		return
	case errors.As(err, &payment):
		writeError(w, http.StatusUnprocessableEntity, "payment_failed", payment.Reason.Error())
		return
	case errors.Is(err, coordinator.ErrCheckoutInProgress):
		writeError(w, http.StatusConflict, "checkout_in_progress", err.Error())
		return
	}
	for _, target := range badRequest {
		if errors.Is(err, target) {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
	}
	for _, target := range notFound {
		if errors.Is(err, target) {
			writeError(w, http.StatusNotFound, "not_found", target.Error())
			return
		}
	}

	slog.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	writeError(w, http.StatusInternalServerError, fallback, "")
}
