package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/jcmexdev/storefront/internal/api-gateway/core/ports"
	"github.com/jcmexdev/storefront/internal/inventory-service/adapters/grpc/ledgerv1"
	"github.com/jcmexdev/storefront/internal/inventory-service/adapters/grpc/mappers"
	"github.com/jcmexdev/storefront/internal/inventory-service/domain"
)

// GRPCStockAdmin talks to the inventory-service Ledger.
type GRPCStockAdmin struct {
	client ledgerv1.LedgerClient
}

func NewGRPCStockAdmin(client ledgerv1.LedgerClient) ports.StockAdmin {
	return &GRPCStockAdmin{client: client}
}

var _ ports.StockAdmin = (*GRPCStockAdmin)(nil)

func (s *GRPCStockAdmin) AddStock(ctx context.Context, warehouseID, productID string, quantity int) (domain.StockEntry, error) {
	req, err := mappers.AdjustmentToProto(warehouseID, productID, quantity)
	if err != nil {
		return domain.StockEntry{}, fmt.Errorf("grpc AddStock: %w", err)
	}
	res, err := s.client.AddStock(ctx, req)
	if err != nil {
		return domain.StockEntry{}, fromStatus("AddStock", err)
	}
	return mappers.EntryFromProto(res)
}

func (s *GRPCStockAdmin) SetStock(ctx context.Context, warehouseID, productID string, quantity int) (domain.StockEntry, error) {
	req, err := mappers.AdjustmentToProto(warehouseID, productID, quantity)
	if err != nil {
		return domain.StockEntry{}, fmt.Errorf("grpc SetStock: %w", err)
	}
	res, err := s.client.SetStock(ctx, req)
	if err != nil {
		return domain.StockEntry{}, fromStatus("SetStock", err)
	}
	return mappers.EntryFromProto(res)
}

func (s *GRPCStockAdmin) RemoveStock(ctx context.Context, warehouseID, productID string) error {
	req, err := mappers.RemovalToProto(warehouseID, productID)
	if err != nil {
		return fmt.Errorf("grpc RemoveStock: %w", err)
	}
	if _, err := s.client.RemoveStock(ctx, req); err != nil {
		return fromStatus("RemoveStock", err)
	}
	return nil
}

func (s *GRPCStockAdmin) TotalStock(ctx context.Context, productID string) (int, error) {
	res, err := s.client.TotalStock(ctx, wrapperspb.String(productID))
	if err != nil {
		return 0, fromStatus("TotalStock", err)
	}
	return int(res.GetValue()), nil
}

// fromStatus turns a gRPC status back into the ledger's sentinel errors so
// the HTTP layer maps local and remote failures the same way.
func fromStatus(method string, err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("grpc %s: %w", method, err)
	}
	switch st.Code() {
	case codes.InvalidArgument:
		if strings.Contains(st.Message(), domain.ErrInvalidQuantity.Error()) {
			return fmt.Errorf("grpc %s: %w", method, domain.ErrInvalidQuantity)
		}
	case codes.NotFound:
		for _, sentinel := range []error{domain.ErrWarehouseNotFound, domain.ErrProductNotFound, domain.ErrEntryNotFound} {
			if strings.Contains(st.Message(), sentinel.Error()) {
				return fmt.Errorf("grpc %s: %w", method, sentinel)
			}
		}
		return fmt.Errorf("grpc %s: %w", method, domain.ErrEntryNotFound)
	}
	return fmt.Errorf("grpc %s: %w", method, errors.New(st.Message()))
}
