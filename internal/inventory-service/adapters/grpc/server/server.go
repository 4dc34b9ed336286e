// Package server exposes the stock ledger's administrative operations over
// gRPC.
package server

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/jcmexdev/storefront/internal/inventory-service/adapters/grpc/ledgerv1"
	"github.com/jcmexdev/storefront/internal/inventory-service/adapters/grpc/mappers"
	"github.com/jcmexdev/storefront/internal/inventory-service/domain"
)

// StockLedger is the subset of the ledger the server needs.
type StockLedger interface {
	AddStock(ctx context.Context, warehouseID, productID string, quantity int) (domain.StockEntry, error)
	SetStock(ctx context.Context, warehouseID, productID string, quantity int) (domain.StockEntry, error)
	RemoveStock(ctx context.Context, warehouseID, productID string) error
	TotalStock(ctx context.Context, productID string) (int, error)
}

type ledgerServer struct {
	ledgerv1.UnimplementedLedgerServer
	ledger StockLedger
}

func NewLedgerServer(ledger StockLedger) ledgerv1.LedgerServer {
	return &ledgerServer{ledger: ledger}
}

func (s *ledgerServer) AddStock(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	adj, err := mappers.AdjustmentFromProto(ctx, req)
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	if err := validateRef(adj); err != nil {
		return nil, err
	}

	entry, err := s.ledger.AddStock(ctx, adj.WarehouseID, adj.ProductID, adj.Quantity)
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	slog.InfoContext(ctx, "stock added via grpc", "request_id", adj.RequestID, "warehouse_id", adj.WarehouseID, "product_id", adj.ProductID)
	return entryResponse(ctx, entry)
}

func (s *ledgerServer) SetStock(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	adj, err := mappers.AdjustmentFromProto(ctx, req)
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	if err := validateRef(adj); err != nil {
		return nil, err
	}

	entry, err := s.ledger.SetStock(ctx, adj.WarehouseID, adj.ProductID, adj.Quantity)
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	return entryResponse(ctx, entry)
}

func (s *ledgerServer) RemoveStock(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	adj := mappers.RemovalFromProto(ctx, req)
	if err := validateRef(adj); err != nil {
		return nil, err
	}

	if err := s.ledger.RemoveStock(ctx, adj.WarehouseID, adj.ProductID); err != nil {
		return nil, toStatus(ctx, err)
	}
	return &emptypb.Empty{}, nil
}

func (s *ledgerServer) TotalStock(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.Int64Value, error) {
	productID := req.GetValue()
	if productID == "" {
		return nil, status.Error(codes.InvalidArgument, "product_id is required")
	}

	total, err := s.ledger.TotalStock(ctx, productID)
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	return mappers.TotalToProto(total), nil
}

func entryResponse(ctx context.Context, entry domain.StockEntry) (*structpb.Struct, error) {
	res, err := mappers.EntryToProto(entry)
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	return res, nil
}

func validateRef(adj domain.StockAdjustment) error {
	if adj.WarehouseID == "" || adj.ProductID == "" {
		return status.Error(codes.InvalidArgument, "warehouse_id and product_id are required")
	}
	return nil
}

func toStatus(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, domain.ErrWarehouseNotFound),
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrEntryNotFound):
		return status.Error(codes.NotFound, err.Error())
	default:
		slog.ErrorContext(ctx, "ledger operation failed", "error", err)
		return status.Error(codes.Internal, "ledger operation failed")
	}
}
