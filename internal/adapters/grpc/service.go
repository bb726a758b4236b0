package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "leafit.v1.DiagnosisService"

const (
	diagnoseMethod       = "/" + ServiceName + "/Diagnose"
	listPlantsMethod     = "/" + ServiceName + "/ListPlants"
	getPlantMethod       = "/" + ServiceName + "/GetPlant"
	searchProductsMethod = "/" + ServiceName + "/SearchProducts"
)

// DiagnosisServer is the server API for the diagnosis service.
// Messages are well-known Struct values so no code generation is needed.
type DiagnosisServer interface {
	Diagnose(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListPlants(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	GetPlant(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SearchProducts(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterDiagnosisServer adds the service to a gRPC server
func RegisterDiagnosisServer(s grpc.ServiceRegistrar, srv DiagnosisServer) {
	s.RegisterService(&DiagnosisServiceDesc, srv)
}

// DiagnosisServiceDesc describes the service for grpc.Server
var DiagnosisServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DiagnosisServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Diagnose", Handler: diagnoseHandler},
		{MethodName: "ListPlants", Handler: listPlantsHandler},
		{MethodName: "GetPlant", Handler: getPlantHandler},
		{MethodName: "SearchProducts", Handler: searchProductsHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "leafit/v1/diagnosis.proto",
}

func diagnoseHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DiagnosisServer).Diagnose(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: diagnoseMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DiagnosisServer).Diagnose(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func listPlantsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DiagnosisServer).ListPlants(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: listPlantsMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DiagnosisServer).ListPlants(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func getPlantHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DiagnosisServer).GetPlant(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: getPlantMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DiagnosisServer).GetPlant(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func searchProductsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DiagnosisServer).SearchProducts(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: searchProductsMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DiagnosisServer).SearchProducts(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}
