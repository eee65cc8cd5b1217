package grpc

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/credigo/credit-engine/internal/application/dto"
	"github.com/credigo/credit-engine/internal/application/usecase"
	"github.com/credigo/credit-engine/internal/domain/model"
)

// CreditHandler exposes the decision engine over gRPC.
type CreditHandler struct {
	UnimplementedCreditServiceServer

	register    *usecase.RegisterCustomerUseCase
	eligibility *usecase.CheckEligibilityUseCase
	createLoan  *usecase.CreateLoanUseCase
	creditScore *usecase.GetCreditScoreUseCase
	getLoan     *usecase.GetLoanUseCase
	listLoans   *usecase.ListCustomerLoansUseCase
}

// NewCreditHandler creates a new handler with all use-case dependencies.
func NewCreditHandler(
	register *usecase.RegisterCustomerUseCase,
	eligibility *usecase.CheckEligibilityUseCase,
	createLoan *usecase.CreateLoanUseCase,
	creditScore *usecase.GetCreditScoreUseCase,
	getLoan *usecase.GetLoanUseCase,
	listLoans *usecase.ListCustomerLoansUseCase,
) *CreditHandler {
	return &CreditHandler{
		register:    register,
		eligibility: eligibility,
		createLoan:  createLoan,
		creditScore: creditScore,
		getLoan:     getLoan,
		listLoans:   listLoans,
	}
}

// RegisterCustomer creates a new customer profile with a derived credit limit.
func (h *CreditHandler) RegisterCustomer(ctx context.Context, req *RegisterCustomerRequest) (*RegisterCustomerResponse, error) {
	income, err := decimal.NewFromString(req.MonthlyIncome)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid monthly_income: %v", err)
	}

	resp, err := h.register.Execute(ctx, dto.RegisterCustomerRequest{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Age:           int(req.Age),
		MonthlyIncome: income,
		PhoneNumber:   req.PhoneNumber,
	})
	if err != nil {
		return nil, statusFromError(err)
	}

	return &RegisterCustomerResponse{
		CustomerId:    resp.CustomerID,
		Name:          resp.Name,
		Age:           int32(resp.Age),
		MonthlyIncome: resp.MonthlyIncome.String(),
		ApprovedLimit: resp.ApprovedLimit.String(),
		PhoneNumber:   resp.PhoneNumber,
	}, nil
}

// CheckEligibility runs the read-only decision surface.
func (h *CreditHandler) CheckEligibility(ctx context.Context, req *CheckEligibilityRequest) (*CheckEligibilityResponse, error) {
	loanReq, err := parseLoanRequest(req.CustomerId, req.LoanAmount, req.InterestRate, req.Tenure)
	if err != nil {
		return nil, err
	}

	resp, err := h.eligibility.Execute(ctx, loanReq)
	if err != nil {
		return nil, statusFromError(err)
	}

	out := &CheckEligibilityResponse{
		CustomerId:         resp.CustomerID,
		Approval:           resp.Approval,
		InterestRate:       resp.InterestRate.String(),
		Tenure:             int32(resp.TermMonths),
		MonthlyInstallment: resp.MonthlyInstallment.String(),
		Message:            resp.Message,
	}
	if resp.CorrectedInterestRate != nil {
		out.CorrectedInterestRate = resp.CorrectedInterestRate.String()
	}
	return out, nil
}

// CreateLoan runs the persisting decision surface.
func (h *CreditHandler) CreateLoan(ctx context.Context, req *CreateLoanRequest) (*CreateLoanResponse, error) {
	loanReq, err := parseLoanRequest(req.CustomerId, req.LoanAmount, req.InterestRate, req.Tenure)
	if err != nil {
		return nil, err
	}

	resp, err := h.createLoan.Execute(ctx, loanReq)
	if err != nil {
		return nil, statusFromError(err)
	}

	out := &CreateLoanResponse{
		CustomerId:   resp.CustomerID,
		LoanApproved: resp.LoanApproved,
		Message:      resp.Message,
	}
	if resp.LoanID != nil {
		out.LoanId = *resp.LoanID
	}
	if resp.MonthlyInstallment != nil {
		out.MonthlyInstallment = resp.MonthlyInstallment.String()
	}
	return out, nil
}

// GetCreditScore computes the diagnostic credit score for a customer.
func (h *CreditHandler) GetCreditScore(ctx context.Context, req *GetCreditScoreRequest) (*GetCreditScoreResponse, error) {
	resp, err := h.creditScore.Execute(ctx, req.CustomerId)
	if err != nil {
		return nil, statusFromError(err)
	}
	return &GetCreditScoreResponse{
		CustomerId:  resp.CustomerID,
		CreditScore: int32(resp.CreditScore),
	}, nil
}

// GetLoan retrieves a loan with its owning customer summary.
func (h *CreditHandler) GetLoan(ctx context.Context, req *GetLoanRequest) (*GetLoanResponse, error) {
	resp, err := h.getLoan.Execute(ctx, req.LoanId)
	if err != nil {
		return nil, statusFromError(err)
	}
	return &GetLoanResponse{
		LoanId: resp.LoanID,
		Customer: &CustomerSummary{
			Id:          resp.Customer.CustomerID,
			FirstName:   resp.Customer.FirstName,
			LastName:    resp.Customer.LastName,
			Age:         int32(resp.Customer.Age),
			PhoneNumber: resp.Customer.PhoneNumber,
		},
		LoanAmount:         resp.LoanAmount.String(),
		InterestRate:       resp.InterestRate.String(),
		MonthlyInstallment: resp.MonthlyInstallment.String(),
		Tenure:             int32(resp.TermMonths),
	}, nil
}

// ListCustomerLoans returns all loans belonging to a customer.
func (h *CreditHandler) ListCustomerLoans(ctx context.Context, req *ListCustomerLoansRequest) (*ListCustomerLoansResponse, error) {
	items, err := h.listLoans.Execute(ctx, req.CustomerId)
	if err != nil {
		return nil, statusFromError(err)
	}

	loans := make([]*CustomerLoanView, 0, len(items))
	for _, item := range items {
		loans = append(loans, &CustomerLoanView{
			LoanId:             item.LoanID,
			LoanAmount:         item.LoanAmount.String(),
			InterestRate:       item.InterestRate.String(),
			MonthlyInstallment: item.MonthlyInstallment.String(),
			RepaymentsLeft:     int32(item.RepaymentsLeft),
		})
	}
	return &ListCustomerLoansResponse{Loans: loans}, nil
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func parseLoanRequest(customerID int64, amount, rate string, tenure int32) (dto.LoanRequest, error) {
	loanAmount, err := decimal.NewFromString(amount)
	if err != nil {
		return dto.LoanRequest{}, status.Errorf(codes.InvalidArgument, "invalid loan_amount: %v", err)
	}
	interestRate, err := decimal.NewFromString(rate)
	if err != nil {
		return dto.LoanRequest{}, status.Errorf(codes.InvalidArgument, "invalid interest_rate: %v", err)
	}
	return dto.LoanRequest{
		CustomerID:   customerID,
		LoanAmount:   loanAmount,
		InterestRate: interestRate,
		TermMonths:   int(tenure),
	}, nil
}

func statusFromError(err error) error {
	switch {
	case errors.Is(err, model.ErrCustomerNotFound), errors.Is(err, model.ErrLoanNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, model.ErrValidation), errors.Is(err, model.ErrInvalidTerm):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
