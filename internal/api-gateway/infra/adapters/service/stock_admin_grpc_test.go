package service_test

import (
	"context"
	"net"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"github.com/jcmexdev/storefront/internal/api-gateway/core/ports"
	"github.com/jcmexdev/storefront/internal/api-gateway/infra/adapters/service"
	inventoryservice "github.com/jcmexdev/storefront/internal/inventory-service"
	"github.com/jcmexdev/storefront/internal/inventory-service/adapters/grpc/ledgerv1"
	"github.com/jcmexdev/storefront/internal/inventory-service/adapters/grpc/server"
	"github.com/jcmexdev/storefront/internal/inventory-service/domain"
	"github.com/jcmexdev/storefront/internal/pkg/interceptors"
	"github.com/jcmexdev/storefront/internal/store"
	"github.com/jcmexdev/storefront/internal/store/storetest"
)

func fixture() store.Fixture {
	return store.Fixture{
		Products:   []store.ProductRow{{ID: "p1", Name: "P1", Price: decimal.NewFromInt(3), Active: true}},
		Warehouses: []store.WarehouseRow{{ID: "w1", Name: "W1", Active: true}},
		Stock:      []store.StockRow{{WarehouseID: "w1", ProductID: "p1", Quantity: 4}},
	}
}

func remoteAdmin(t *testing.T, db *store.DB) ports.StockAdmin {
	t.Helper()
	lis := bufconn.Listen(1024 * 1024)
	srv := grpc.NewServer()
	ledgerv1.RegisterLedgerServer(srv, server.NewLedgerServer(inventoryservice.NewLedger(db)))
	go func() { _ = srv.Serve(lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(interceptors.UnaryClientInterceptor()),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		conn.Close()
		srv.GracefulStop()
		lis.Close()
	})
	return service.NewGRPCStockAdmin(ledgerv1.NewLedgerClient(conn))
}

// Both adapters must surface the same sentinel errors.
func TestStockAdmin_LocalAndRemoteAgree(t *testing.T) {
	for name, open := range map[string]func(t *testing.T, db *store.DB) ports.StockAdmin{
		"local": func(t *testing.T, db *store.DB) ports.StockAdmin {
			return service.NewLocalStockAdmin(inventoryservice.NewLedger(db))
		},
		"grpc": remoteAdmin,
	} {
		t.Run(name, func(t *testing.T) {
			ctx := interceptors.WithRequestID(context.Background(), "req-1")
			admin := open(t, storetest.NewSeeded(t, fixture()))

			entry, err := admin.AddStock(ctx, "w1", "p1", 2)
			require.NoError(t, err)
			assert.Equal(t, domain.StockEntry{WarehouseID: "w1", ProductID: "p1", Quantity: 6}, entry)

			total, err := admin.TotalStock(ctx, "p1")
			require.NoError(t, err)
			assert.Equal(t, 6, total)

			_, err = admin.AddStock(ctx, "w1", "p1", 0)
			assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

			_, err = admin.AddStock(ctx, "w1", "p1", 1<<32+1)
			assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
			_, err = admin.SetStock(ctx, "w1", "p1", 1<<32+1)
			assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
			total, err = admin.TotalStock(ctx, "p1")
			require.NoError(t, err)
			assert.Equal(t, 6, total, "oversized quantities leave the row untouched")

			_, err = admin.SetStock(ctx, "nope", "p1", 1)
			assert.ErrorIs(t, err, domain.ErrWarehouseNotFound)

			_, err = admin.SetStock(ctx, "w1", "nope", 1)
			assert.ErrorIs(t, err, domain.ErrProductNotFound)

			require.NoError(t, admin.RemoveStock(ctx, "w1", "p1"))
			assert.ErrorIs(t, admin.RemoveStock(ctx, "w1", "p1"), domain.ErrEntryNotFound)
		})
	}
}
