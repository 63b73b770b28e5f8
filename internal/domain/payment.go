package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PaymentStatusMade   = "made"
	PaymentStatusMissed = "missed"
)

// Payment is a single installment record against a loan. At most one payment
// exists per loan per calendar month, whether made or missed. Payments are
// never updated or deleted individually; they go away only when the owning
// loan is deleted.
type Payment struct {
	ID      uuid.UUID       `json:"id" db:"id"`
	LoanID  uuid.UUID       `json:"loan_id" db:"loan_id"`
	Status  string          `json:"payment" db:"status"`
	Date    time.Time       `json:"date" db:"date"`
	Amount  decimal.Decimal `json:"amount" db:"amount"`
	Created time.Time       `json:"created_at" db:"created_at"`
}

type CreatePaymentRequest struct {
	Status string          `json:"payment" validate:"required,oneof=made missed"`
	Date   time.Time       `json:"date" validate:"required"`
	Amount decimal.Decimal `json:"amount" validate:"required"`
}
