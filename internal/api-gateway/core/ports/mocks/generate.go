// Package mocks holds mocks of the gateway ports.
// Generated using mockgen from github.com/golang/mock.
package mocks

//go:generate mockgen -destination=mock_ports.go -package=mocks github.com/jcmexdev/storefront/internal/api-gateway/core/ports OrderService,Checkout,StockAdmin,CartStore
