package mappers

import (
	"context"
	"fmt"
	"math"

	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/jcmexdev/storefront/internal/inventory-service/adapters/grpc/ledgerv1"
	"github.com/jcmexdev/storefront/internal/inventory-service/domain"
	"github.com/jcmexdev/storefront/internal/pkg/interceptors"
	"github.com/jcmexdev/storefront/internal/pkg/interceptors/constants"
)

// AdjustmentToProto builds an AddStock/SetStock request. Quantities past
// domain.MaxQuantity are refused here instead of being sent.
func AdjustmentToProto(warehouseID, productID string, quantity int) (*structpb.Struct, error) {
	if quantity > domain.MaxQuantity || quantity < math.MinInt32 {
		return nil, fmt.Errorf("quantity %d: %w", quantity, domain.ErrInvalidQuantity)
	}
	return structpb.NewStruct(map[string]any{
		ledgerv1.FieldWarehouseID: warehouseID,
		ledgerv1.FieldProductID:   productID,
		ledgerv1.FieldQuantity:    quantity,
	})
}

func AdjustmentFromProto(ctx context.Context, req *structpb.Struct) (domain.StockAdjustment, error) {
	adj := RemovalFromProto(ctx, req)
	q, err := quantity(req)
	if err != nil {
		return domain.StockAdjustment{}, err
	}
	adj.Quantity = q
	return adj, nil
}

func RemovalToProto(warehouseID, productID string) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		ledgerv1.FieldWarehouseID: warehouseID,
		ledgerv1.FieldProductID:   productID,
	})
}

func RemovalFromProto(ctx context.Context, req *structpb.Struct) domain.StockAdjustment {
	fields := req.GetFields()
	return domain.StockAdjustment{
		WarehouseID: fields[ledgerv1.FieldWarehouseID].GetStringValue(),
		ProductID:   fields[ledgerv1.FieldProductID].GetStringValue(),
		RequestID:   interceptors.GetMetadataValue(ctx, constants.HeaderXRequestId),
	}
}

func EntryToProto(e domain.StockEntry) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		ledgerv1.FieldWarehouseID: e.WarehouseID,
		ledgerv1.FieldProductID:   e.ProductID,
		ledgerv1.FieldQuantity:    e.Quantity,
	})
}

func EntryFromProto(r *structpb.Struct) (domain.StockEntry, error) {
	q, err := quantity(r)
	if err != nil {
		return domain.StockEntry{}, err
	}
	fields := r.GetFields()
	return domain.StockEntry{
		WarehouseID: fields[ledgerv1.FieldWarehouseID].GetStringValue(),
		ProductID:   fields[ledgerv1.FieldProductID].GetStringValue(),
		Quantity:    q,
	}, nil
}

func TotalToProto(total int) *wrapperspb.Int64Value {
	return wrapperspb.Int64(int64(total))
}

// quantity reads the quantity field. Struct numbers are doubles, so a
// missing, fractional or out-of-range value is rejected rather than rounded.
func quantity(s *structpb.Struct) (int, error) {
	v, ok := s.GetFields()[ledgerv1.FieldQuantity]
	if !ok {
		return 0, fmt.Errorf("quantity missing: %w", domain.ErrInvalidQuantity)
	}
	if _, isNumber := v.GetKind().(*structpb.Value_NumberValue); !isNumber {
		return 0, fmt.Errorf("quantity is not a number: %w", domain.ErrInvalidQuantity)
	}
	n := v.GetNumberValue()
	if n != math.Trunc(n) || n > domain.MaxQuantity || n < math.MinInt32 {
		return 0, fmt.Errorf("quantity %v: %w", n, domain.ErrInvalidQuantity)
	}
	return int(n), nil
}
