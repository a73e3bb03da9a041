// Package rpc exposes the simulator as the gRPC service kpl.v1.Innings.
// Messages are google.protobuf.Struct, so clients need no generated code.
package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServiceName        = "kpl.v1.Innings"
	SimulateMethodName = "/" + ServiceName + "/Simulate"
	OddsMethodName     = "/" + ServiceName + "/Odds"
)

// InningsServer is the server API for the Innings service.
type InningsServer interface {
	Simulate(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Odds(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

func RegisterInningsServer(s grpc.ServiceRegistrar, srv InningsServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func simulateHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(InningsServer).Simulate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: SimulateMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(InningsServer).Simulate(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func oddsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(InningsServer).Odds(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: OddsMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(InningsServer).Odds(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// ServiceDesc is written by hand in the shape protoc-gen-go-grpc emits.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*InningsServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Simulate", Handler: simulateHandler},
		{MethodName: "Odds", Handler: oddsHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "kpl/v1/innings.proto",
}

// Client calls the Innings service over cc.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client { return &Client{cc: cc} }

func (c *Client) Simulate(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, SimulateMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Odds(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, OddsMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
