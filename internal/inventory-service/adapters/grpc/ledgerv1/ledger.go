// Package ledgerv1 is the wire contract of the inventory-service Ledger API.
//
// Messages are protobuf well-known types carried by grpc's default proto
// codec. Stock adjustments and entries travel as a structpb.Struct keyed by
// the Field* names, product ids as a wrapperspb.StringValue and totals as a
// wrapperspb.Int64Value.
package ledgerv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	ServiceName = "storefront.ledger.v1.Ledger"

	Ledger_AddStock_FullMethodName    = "/" + ServiceName + "/AddStock"
	Ledger_SetStock_FullMethodName    = "/" + ServiceName + "/SetStock"
	Ledger_RemoveStock_FullMethodName = "/" + ServiceName + "/RemoveStock"
	Ledger_TotalStock_FullMethodName  = "/" + ServiceName + "/TotalStock"
)

// Struct field names of stock requests and responses.
const (
	FieldWarehouseID = "warehouse_id"
	FieldProductID   = "product_id"
	FieldQuantity    = "quantity"
)

// LedgerClient is the client API for the Ledger service.
type LedgerClient interface {
	AddStock(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	SetStock(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	RemoveStock(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
	TotalStock(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.Int64Value, error)
}

type ledgerClient struct {
	cc grpc.ClientConnInterface
}

func NewLedgerClient(cc grpc.ClientConnInterface) LedgerClient {
	return &ledgerClient{cc}
}

func (c *ledgerClient) AddStock(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, Ledger_AddStock_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerClient) SetStock(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, Ledger_SetStock_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerClient) RemoveStock(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, Ledger_RemoveStock_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerClient) TotalStock(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.Int64Value, error) {
	out := new(wrapperspb.Int64Value)
	if err := c.cc.Invoke(ctx, Ledger_TotalStock_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// LedgerServer is the server API for the Ledger service.
type LedgerServer interface {
	AddStock(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetStock(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RemoveStock(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	TotalStock(context.Context, *wrapperspb.StringValue) (*wrapperspb.Int64Value, error)
}

// UnimplementedLedgerServer can be embedded to keep implementations
// compiling when methods are added.
type UnimplementedLedgerServer struct{}

func (UnimplementedLedgerServer) AddStock(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method AddStock not implemented")
}
func (UnimplementedLedgerServer) SetStock(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method SetStock not implemented")
}
func (UnimplementedLedgerServer) RemoveStock(context.Context, *structpb.Struct) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method RemoveStock not implemented")
}
func (UnimplementedLedgerServer) TotalStock(context.Context, *wrapperspb.StringValue) (*wrapperspb.Int64Value, error) {
	return nil, status.Error(codes.Unimplemented, "method TotalStock not implemented")
}

func RegisterLedgerServer(s grpc.ServiceRegistrar, srv LedgerServer) {
	s.RegisterService(&Ledger_ServiceDesc, srv)
}

func unaryHandler[Req any, Resp any](
	method string,
	call func(LedgerServer, context.Context, *Req) (*Resp, error),
) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(LedgerServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(LedgerServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var Ledger_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LedgerServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "AddStock",
			Handler:    unaryHandler(Ledger_AddStock_FullMethodName, LedgerServer.AddStock),
		},
		{
			MethodName: "SetStock",
			Handler:    unaryHandler(Ledger_SetStock_FullMethodName, LedgerServer.SetStock),
		},
		{
			MethodName: "RemoveStock",
			Handler:    unaryHandler(Ledger_RemoveStock_FullMethodName, LedgerServer.RemoveStock),
		},
		{
			MethodName: "TotalStock",
			Handler:    unaryHandler(Ledger_TotalStock_FullMethodName, LedgerServer.TotalStock),
		},
	},
	Streams: []grpc.StreamDesc{},
}
