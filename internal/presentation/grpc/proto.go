package grpc

// proto.go holds the server interface and service descriptor for
// bib.risk.v1.CreditRiskService. Messages are plain structs carried by the
// JSON codec registered in json_codec.go.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const serviceName = "bib.risk.v1.CreditRiskService"

// CreditRiskServiceServer is the server API for CreditRiskService.
type CreditRiskServiceServer interface {
	EvaluateCredit(context.Context, *EvaluateCreditRequest) (*EvaluateCreditResponse, error)
	QuoteCredit(context.Context, *QuoteCreditRequest) (*QuoteCreditResponse, error)
	GetAssessment(context.Context, *GetAssessmentRequest) (*GetAssessmentResponse, error)
	ListAssessments(context.Context, *ListAssessmentsRequest) (*ListAssessmentsResponse, error)
	mustEmbedUnimplementedCreditRiskServiceServer()
}

// UnimplementedCreditRiskServiceServer provides forward-compatible default implementations.
type UnimplementedCreditRiskServiceServer struct{}

func (UnimplementedCreditRiskServiceServer) EvaluateCredit(context.Context, *EvaluateCreditRequest) (*EvaluateCreditResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method EvaluateCredit not implemented")
}
func (UnimplementedCreditRiskServiceServer) QuoteCredit(context.Context, *QuoteCreditRequest) (*QuoteCreditResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method QuoteCredit not implemented")
}
func (UnimplementedCreditRiskServiceServer) GetAssessment(context.Context, *GetAssessmentRequest) (*GetAssessmentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetAssessment not implemented")
}
func (UnimplementedCreditRiskServiceServer) ListAssessments(context.Context, *ListAssessmentsRequest) (*ListAssessmentsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListAssessments not implemented")
}
func (UnimplementedCreditRiskServiceServer) mustEmbedUnimplementedCreditRiskServiceServer() {}

// RegisterCreditRiskServiceServer registers the CreditRiskServiceServer with the gRPC server.
func RegisterCreditRiskServiceServer(s grpclib.ServiceRegistrar, srv CreditRiskServiceServer) {
	s.RegisterService(&_CreditRiskService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

// FullMethod returns the fully-qualified gRPC method name.
func FullMethod(method string) string {
	return "/" + serviceName + "/" + method
}

//nolint:revive // gRPC handler registration
var _CreditRiskService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*CreditRiskServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "EvaluateCredit", Handler: _CreditRiskService_EvaluateCredit_Handler},   //nolint:revive // gRPC handler registration
		{MethodName: "QuoteCredit", Handler: _CreditRiskService_QuoteCredit_Handler},         //nolint:revive // gRPC handler registration
		{MethodName: "GetAssessment", Handler: _CreditRiskService_GetAssessment_Handler},     //nolint:revive // gRPC handler registration
		{MethodName: "ListAssessments", Handler: _CreditRiskService_ListAssessments_Handler}, //nolint:revive // gRPC handler registration
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "bib/risk/v1/credit_risk.proto",
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditRiskService_EvaluateCredit_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(EvaluateCreditRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditRiskServiceServer).EvaluateCredit(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: FullMethod("EvaluateCredit"),
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditRiskServiceServer).EvaluateCredit(ctx, req.(*EvaluateCreditRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditRiskService_QuoteCredit_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(QuoteCreditRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditRiskServiceServer).QuoteCredit(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: FullMethod("QuoteCredit"),
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditRiskServiceServer).QuoteCredit(ctx, req.(*QuoteCreditRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditRiskService_GetAssessment_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetAssessmentRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditRiskServiceServer).GetAssessment(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: FullMethod("GetAssessment"),
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditRiskServiceServer).GetAssessment(ctx, req.(*GetAssessmentRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditRiskService_ListAssessments_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListAssessmentsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditRiskServiceServer).ListAssessments(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: FullMethod("ListAssessments"),
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditRiskServiceServer).ListAssessments(ctx, req.(*ListAssessmentsRequest))
	}
	return interceptor(ctx, in, info, handler)
}
