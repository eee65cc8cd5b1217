package grpc

// proto.go defines the gRPC server interface derived from
// credigo/credit/v1/credit.proto. This file serves as a stand-in for
// buf-generated code. Once `buf generate` is run, replace this file with the
// import from github.com/credigo/credit-engine/api/gen/go/credigo/credit/v1.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ---------------------------------------------------------------------------
// Messages. Monetary amounts and rates travel as decimal strings.
// ---------------------------------------------------------------------------

type RegisterCustomerRequest struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Age           int32  `json:"age"`
	MonthlyIncome string `json:"monthly_income"`
	PhoneNumber   string `json:"phone_number"`
}

type RegisterCustomerResponse struct {
	CustomerId    int64  `json:"customer_id"`
	Name          string `json:"name"`
	Age           int32  `json:"age"`
	MonthlyIncome string `json:"monthly_income"`
	ApprovedLimit string `json:"approved_limit"`
	PhoneNumber   string `json:"phone_number"`
}

type CheckEligibilityRequest struct {
	CustomerId   int64  `json:"customer_id"`
	LoanAmount   string `json:"loan_amount"`
	InterestRate string `json:"interest_rate"`
	Tenure       int32  `json:"tenure"`
}

type CheckEligibilityResponse struct {
	CustomerId            int64  `json:"customer_id"`
	Approval              bool   `json:"approval"`
	InterestRate          string `json:"interest_rate"`
	CorrectedInterestRate string `json:"corrected_interest_rate"`
	Tenure                int32  `json:"tenure"`
	MonthlyInstallment    string `json:"monthly_installment"`
	Message               string `json:"message"`
}

type CreateLoanRequest struct {
	CustomerId   int64  `json:"customer_id"`
	LoanAmount   string `json:"loan_amount"`
	InterestRate string `json:"interest_rate"`
	Tenure       int32  `json:"tenure"`
}

// CreateLoanResponse carries LoanId=0 and an empty MonthlyInstallment when
// the loan was not approved.
type CreateLoanResponse struct {
	LoanId             int64  `json:"loan_id"`
	CustomerId         int64  `json:"customer_id"`
	LoanApproved       bool   `json:"loan_approved"`
	Message            string `json:"message"`
	MonthlyInstallment string `json:"monthly_installment"`
}

type GetCreditScoreRequest struct {
	CustomerId int64 `json:"customer_id"`
}

type GetCreditScoreResponse struct {
	CustomerId  int64 `json:"customer_id"`
	CreditScore int32 `json:"credit_score"`
}

type GetLoanRequest struct {
	LoanId int64 `json:"loan_id"`
}

type CustomerSummary struct {
	Id          int64  `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Age         int32  `json:"age"`
	PhoneNumber string `json:"phone_number"`
}

type GetLoanResponse struct {
	LoanId             int64            `json:"loan_id"`
	Customer           *CustomerSummary `json:"customer"`
	LoanAmount         string           `json:"loan_amount"`
	InterestRate       string           `json:"interest_rate"`
	MonthlyInstallment string           `json:"monthly_installment"`
	Tenure             int32            `json:"tenure"`
}

type ListCustomerLoansRequest struct {
	CustomerId int64 `json:"customer_id"`
}

type CustomerLoanView struct {
	LoanId             int64  `json:"loan_id"`
	LoanAmount         string `json:"loan_amount"`
	InterestRate       string `json:"interest_rate"`
	MonthlyInstallment string `json:"monthly_installment"`
	RepaymentsLeft     int32  `json:"repayments_left"`
}

type ListCustomerLoansResponse struct {
	Loans []*CustomerLoanView `json:"loans"`
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// CreditServiceServer is the server API for CreditService.
// It mirrors the proto-generated interface from credigo.credit.v1.CreditService.
type CreditServiceServer interface {
	RegisterCustomer(context.Context, *RegisterCustomerRequest) (*RegisterCustomerResponse, error)
	CheckEligibility(context.Context, *CheckEligibilityRequest) (*CheckEligibilityResponse, error)
	CreateLoan(context.Context, *CreateLoanRequest) (*CreateLoanResponse, error)
	GetCreditScore(context.Context, *GetCreditScoreRequest) (*GetCreditScoreResponse, error)
	GetLoan(context.Context, *GetLoanRequest) (*GetLoanResponse, error)
	ListCustomerLoans(context.Context, *ListCustomerLoansRequest) (*ListCustomerLoansResponse, error)
	mustEmbedUnimplementedCreditServiceServer()
}

// UnimplementedCreditServiceServer provides forward-compatible default implementations.
type UnimplementedCreditServiceServer struct{}

func (UnimplementedCreditServiceServer) RegisterCustomer(context.Context, *RegisterCustomerRequest) (*RegisterCustomerResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RegisterCustomer not implemented")
}
func (UnimplementedCreditServiceServer) CheckEligibility(context.Context, *CheckEligibilityRequest) (*CheckEligibilityResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CheckEligibility not implemented")
}
func (UnimplementedCreditServiceServer) CreateLoan(context.Context, *CreateLoanRequest) (*CreateLoanResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CreateLoan not implemented")
}
func (UnimplementedCreditServiceServer) GetCreditScore(context.Context, *GetCreditScoreRequest) (*GetCreditScoreResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetCreditScore not implemented")
}
func (UnimplementedCreditServiceServer) GetLoan(context.Context, *GetLoanRequest) (*GetLoanResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetLoan not implemented")
}
func (UnimplementedCreditServiceServer) ListCustomerLoans(context.Context, *ListCustomerLoansRequest) (*ListCustomerLoansResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListCustomerLoans not implemented")
}
func (UnimplementedCreditServiceServer) mustEmbedUnimplementedCreditServiceServer() {}

// RegisterCreditServiceServer registers the CreditServiceServer with the gRPC server.
func RegisterCreditServiceServer(s *grpclib.Server, srv CreditServiceServer) {
	s.RegisterService(&_CreditService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

//nolint:revive // gRPC handler registration
var _CreditService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "credigo.credit.v1.CreditService",
	HandlerType: (*CreditServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "RegisterCustomer", Handler: _CreditService_RegisterCustomer_Handler},   //nolint:revive // gRPC handler registration
		{MethodName: "CheckEligibility", Handler: _CreditService_CheckEligibility_Handler},   //nolint:revive // gRPC handler registration
		{MethodName: "CreateLoan", Handler: _CreditService_CreateLoan_Handler},               //nolint:revive // gRPC handler registration
		{MethodName: "GetCreditScore", Handler: _CreditService_GetCreditScore_Handler},       //nolint:revive // gRPC handler registration
		{MethodName: "GetLoan", Handler: _CreditService_GetLoan_Handler},                     //nolint:revive // gRPC handler registration
		{MethodName: "ListCustomerLoans", Handler: _CreditService_ListCustomerLoans_Handler}, //nolint:revive // gRPC handler registration
	},
	Streams: []grpclib.StreamDesc{},
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditService_RegisterCustomer_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(RegisterCustomerRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditServiceServer).RegisterCustomer(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/credigo.credit.v1.CreditService/RegisterCustomer",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditServiceServer).RegisterCustomer(ctx, req.(*RegisterCustomerRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditService_CheckEligibility_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(CheckEligibilityRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditServiceServer).CheckEligibility(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/credigo.credit.v1.CreditService/CheckEligibility",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditServiceServer).CheckEligibility(ctx, req.(*CheckEligibilityRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditService_CreateLoan_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(CreateLoanRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditServiceServer).CreateLoan(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/credigo.credit.v1.CreditService/CreateLoan",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditServiceServer).CreateLoan(ctx, req.(*CreateLoanRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditService_GetCreditScore_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetCreditScoreRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditServiceServer).GetCreditScore(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/credigo.credit.v1.CreditService/GetCreditScore",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditServiceServer).GetCreditScore(ctx, req.(*GetCreditScoreRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditService_GetLoan_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetLoanRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditServiceServer).GetLoan(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/credigo.credit.v1.CreditService/GetLoan",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditServiceServer).GetLoan(ctx, req.(*GetLoanRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditService_ListCustomerLoans_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListCustomerLoansRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditServiceServer).ListCustomerLoans(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/credigo.credit.v1.CreditService/ListCustomerLoans",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditServiceServer).ListCustomerLoans(ctx, req.(*ListCustomerLoansRequest))
	}
	return interceptor(ctx, in, info, handler)
}
