package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/prasetya/loan-tracker/internal/domain"
	"github.com/prasetya/loan-tracker/internal/repository"
	customError "github.com/prasetya/loan-tracker/pkg/errors"
	"github.com/prasetya/loan-tracker/pkg/money"

	"github.com/shopspring/decimal"
)

const (
	loanCacheTTL = 24 * time.Hour
	loanDateFmt  = "2006-01-02"
)

type LoanService struct {
	loanRepo    repository.LoanRepository
	paymentRepo repository.PaymentRepository
	cache       repository.Cache
}

func NewLoanService(
	loanRepo repository.LoanRepository,
	paymentRepo repository.PaymentRepository,
	cache repository.Cache,
) *LoanService {
	return &LoanService{
		loanRepo:    loanRepo,
		paymentRepo: paymentRepo,
		cache:       cache,
	}
}

// CreateLoan creates a new loan with its fixed installment. Two identical
// requests produce two distinct loans; the loan ID is generated, never
// derived from content.
func (s *LoanService) CreateLoan(ctx context.Context, request *domain.CreateLoanRequest) (*domain.Loan, error) {
	loan := &domain.Loan{
		ID:          uuid.New(),
		LoanID:      domain.NewLoanID(),
		Amount:      request.Amount,
		Term:        request.Term,
		Rate:        request.Rate,
		Date:        request.Date,
		Installment: money.Installment(request.Amount, request.Term, request.Rate),
		CreatedAt:   time.Now(),
	}

	if err := s.loanRepo.Create(ctx, loan); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return loan, nil
}

// AddPayment validates and records a payment against a loan. Checks run in
// order and the first failure wins: loan existence, date ordering, amount
// equality, then the one-payment-per-calendar-month rule. Both made and
// missed payments occupy their month.
func (s *LoanService) AddPayment(ctx context.Context, loanID string, request *domain.CreatePaymentRequest) (*domain.Payment, error) {
	loan, err := s.getLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}

	if money.BeforeCalendarDate(request.Date, loan.Date) {
		return nil, customError.WrapInvalidPaymentDate(loan.Date.Format(loanDateFmt))
	}

	if !request.Amount.Equal(loan.Installment) {
		return nil, customError.WrapInvalidAmount(loan.Installment)
	}

	exists, err := s.paymentRepo.ExistsForMonth(ctx, loan.ID, request.Date)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if exists {
		return nil, customError.WrapDuplicatedPayment()
	}

	payment := &domain.Payment{
		ID:      uuid.New(),
		LoanID:  loan.ID,
		Status:  request.Status,
		Date:    request.Date,
		Amount:  request.Amount,
		Created: time.Now(),
	}

	err = s.paymentRepo.Create(ctx, payment)
	if errors.Is(err, customError.ErrDuplicatedPayment) {
		// Lost a race with a concurrent request for the same month; the
		// unique index is the final authority.
		return nil, customError.WrapDuplicatedPayment()
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return payment, nil
}

// GetBalance computes the outstanding balance as of a date: the full
// scheduled value minus one installment per "made" payment dated on or
// before asOf. Missed payments are audit records and never reduce the
// balance.
func (s *LoanService) GetBalance(ctx context.Context, loanID string, asOf time.Time) (decimal.Decimal, error) {
	loan, err := s.getLoan(ctx, loanID)
	if err != nil {
		return decimal.Zero, err
	}

	if money.BeforeCalendarDate(asOf, loan.Date) {
		return decimal.Zero, customError.WrapInvalidDate(loan.Date.Format(loanDateFmt))
	}

	madeCount, err := s.paymentRepo.CountMade(ctx, loan.ID, asOf)
	if err != nil {
		return decimal.Zero, customError.WrapDatabaseError(err)
	}

	return money.OutstandingBalance(loan.Installment, loan.Term, madeCount), nil
}

// DeleteLoan removes a loan and, through the cascade, all of its payments.
func (s *LoanService) DeleteLoan(ctx context.Context, loanID string) error {
	err := s.loanRepo.Delete(ctx, loanID)
	if errors.Is(err, sql.ErrNoRows) {
		return customError.WrapLoanNotFound(loanID)
	}
	if err != nil {
		return customError.WrapDatabaseError(err)
	}

	if err := s.cache.Del(ctx, loanCacheKey(loanID)); err != nil {
		log.Printf("Failed to evict loan %s from cache: %v", loanID, err)
	}

	return nil
}

// getLoan resolves a loan by public ID through the cache. Cache failures
// fall through to the database and never fail the request.
func (s *LoanService) getLoan(ctx context.Context, loanID string) (*domain.Loan, error) {
	key := loanCacheKey(loanID)

	if cached, ok := s.cache.Get(ctx, key); ok {
		var loan domain.Loan
		if err := json.Unmarshal([]byte(cached), &loan); err == nil {
			return &loan, nil
		}
	}

	loan, err := s.loanRepo.GetByLoanID(ctx, loanID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapLoanNotFound(loanID)
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	if encoded, err := json.Marshal(loan); err == nil {
		if err := s.cache.Set(ctx, key, string(encoded), loanCacheTTL); err != nil {
			log.Printf("Failed to cache loan %s: %v", loanID, err)
		}
	}

	return loan, nil
}

func loanCacheKey(loanID string) string {
	return "loan:" + loanID
}
