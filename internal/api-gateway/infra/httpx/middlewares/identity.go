package middlewares

import (
	"encoding/json"
	"net/http"

	"github.com/jcmexdev/storefront/internal/api-gateway/core/domain/entity"
	orderdomain "github.com/jcmexdev/storefront/internal/order-service/domain"
)

const (
	HeaderPersonID   = "X-Person-Id"
	HeaderPersonRole = "X-Person-Role"
)

// Identity requires the identity headers set by the auth proxy and stores
// them in the request context. A missing role means customer.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		personID := r.Header.Get(HeaderPersonID)
		if personID == "" {
			reject(w, http.StatusUnauthorized, "unauthenticated")
			return
		}
		role := orderdomain.Role(r.Header.Get(HeaderPersonRole))
		if role == "" {
			role = orderdomain.RoleCustomer
		}
		ctx := entity.WithIdentity(r.Context(), entity.Identity{PersonID: personID, Role: role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequirePrivileged lets only admin and staff through. It must run after
// Identity.
func RequirePrivileged(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := entity.IdentityFrom(r.Context())
		if !ok || !id.Privileged() {
			reject(w, http.StatusForbidden, "forbidden")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func reject(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}
