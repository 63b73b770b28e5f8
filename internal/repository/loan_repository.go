package repository

import (
	"context"
	"database/sql"

	"github.com/prasetya/loan-tracker/internal/domain"

	"github.com/jmoiron/sqlx"
)

type loanRepository struct {
	db *sqlx.DB
}

func NewLoanRepository(db *sqlx.DB) LoanRepository {
	return &loanRepository{db: db}
}

func (r *loanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	query := `
		INSERT INTO loans (id, loan_id, amount, term, rate, date, installment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		loan.ID,
		loan.LoanID,
		loan.Amount,
		loan.Term,
		loan.Rate,
		loan.Date,
		loan.Installment,
		loan.CreatedAt,
	)

	return err
}

func (r *loanRepository) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	query := `
		SELECT id, loan_id, amount, term, rate, date, installment, created_at
		FROM loans
		WHERE loan_id = $1
	`

	var loan domain.Loan
	err := r.db.GetContext(ctx, &loan, query, loanID)
	if err != nil {
		return nil, err
	}

	return &loan, nil
}

func (r *loanRepository) Delete(ctx context.Context, loanID string) error {
	query := `DELETE FROM loans WHERE loan_id = $1`

	result, err := r.db.ExecContext(ctx, query, loanID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *loanRepository) List(ctx context.Context) ([]*domain.Loan, error) {
	query := `
		SELECT id, loan_id, amount, term, rate, date, installment, created_at
		FROM loans
		ORDER BY created_at
	`

	var loans []*domain.Loan
	err := r.db.SelectContext(ctx, &loans, query)
	if err != nil {
		return nil, err
	}

	return loans, nil
}
