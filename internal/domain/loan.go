package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Loan represents an installment loan. All fields are immutable after
// creation; Installment is computed once from Amount, Term and Rate and is
// never recomputed.
type Loan struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	LoanID      string          `json:"loan_id" db:"loan_id"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	Term        int             `json:"term" db:"term"`
	Rate        decimal.Decimal `json:"rate" db:"rate"`
	Date        time.Time       `json:"date" db:"date"`
	Installment decimal.Decimal `json:"installment" db:"installment"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

// NewLoanID generates the externally visible loan token: a UUID rendered as
// 32 hex characters.
func NewLoanID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// DTOs for requests and responses

type CreateLoanRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
	Term   int             `json:"term" validate:"required,gt=0"`
	Rate   decimal.Decimal `json:"rate" validate:"required"`
	Date   time.Time       `json:"date" validate:"required"`
}

type CreateLoanResponse struct {
	LoanID      string          `json:"loan_id"`
	Installment decimal.Decimal `json:"installment"`
}

type BalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}
