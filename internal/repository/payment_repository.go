package repository

import (
	"context"
	"errors"
	"time"

	"github.com/prasetya/loan-tracker/internal/domain"
	customError "github.com/prasetya/loan-tracker/pkg/errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const pqUniqueViolation = "23505"

type paymentRepository struct {
	db *sqlx.DB
}

func NewPaymentRepository(db *sqlx.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

// Create inserts the payment. The unique index on (loan_id, month of date)
// is the authority for the one-payment-per-month rule under concurrency; a
// unique violation here is reported as ErrDuplicatedPayment so two racing
// requests for the same month cannot both succeed.
func (r *paymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (id, loan_id, status, date, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		payment.ID,
		payment.LoanID,
		payment.Status,
		payment.Date,
		payment.Amount,
		payment.Created,
	)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return customError.ErrDuplicatedPayment
	}

	return err
}

func (r *paymentRepository) ExistsForMonth(ctx context.Context, loanID uuid.UUID, date time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM payments
			WHERE loan_id = $1
			  AND EXTRACT(YEAR FROM date) = $2
			  AND EXTRACT(MONTH FROM date) = $3
		)
	`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, loanID, date.Year(), int(date.Month()))
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *paymentRepository) CountMade(ctx context.Context, loanID uuid.UUID, asOf time.Time) (int, error) {
	query := `
		SELECT COUNT(*) FROM payments
		WHERE loan_id = $1
		  AND status = $2
		  AND date::date <= $3::date
	`

	var count int
	err := r.db.GetContext(ctx, &count, query, loanID, domain.PaymentStatusMade, asOf)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *paymentRepository) CountByLoan(ctx context.Context, loanID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM payments WHERE loan_id = $1`

	var count int
	err := r.db.GetContext(ctx, &count, query, loanID)
	if err != nil {
		return 0, err
	}

	return count, nil
}
