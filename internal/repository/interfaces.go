package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/prasetya/loan-tracker/internal/domain"
)

// LoanRepository defines the interface for loan data operations
type LoanRepository interface {
	// Create creates a new loan
	Create(ctx context.Context, loan *domain.Loan) error

	// GetByLoanID retrieves a loan by its public loan ID
	GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error)

	// Delete removes a loan by its public loan ID; payments cascade
	Delete(ctx context.Context, loanID string) error

	// List retrieves all loans
	List(ctx context.Context) ([]*domain.Loan, error)
}

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	// Create creates a new payment record. Returns ErrDuplicatedPayment if a
	// payment already exists for the loan in the same calendar month.
	Create(ctx context.Context, payment *domain.Payment) error

	// ExistsForMonth reports whether any payment (made or missed) exists for
	// the loan in the calendar month of date
	ExistsForMonth(ctx context.Context, loanID uuid.UUID, date time.Time) (bool, error)

	// CountMade counts payments with status "made" dated on or before asOf
	CountMade(ctx context.Context, loanID uuid.UUID, asOf time.Time) (int, error)

	// CountByLoan counts all payments recorded for the loan
	CountByLoan(ctx context.Context, loanID uuid.UUID) (int, error)
}

// Cache is a narrow key/value interface over Redis so services stay mockable
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}
