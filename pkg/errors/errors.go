package errors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Domain errors
var (
	ErrLoanNotFound       = errors.New("loan not found")
	ErrInvalidPaymentDate = errors.New("payment date precedes loan origination")
	ErrInvalidAmount      = errors.New("payment amount does not match installment")
	ErrDuplicatedPayment  = errors.New("payment already recorded for this month")
	ErrInvalidDate        = errors.New("balance date precedes loan origination")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeLoanNotFound       = "LOAN_NOT_FOUND"
	ErrCodeInvalidPaymentDate = "INVALID_PAYMENT_DATE"
	ErrCodeInvalidAmount      = "INVALID_AMOUNT"
	ErrCodeDuplicatedPayment  = "DUPLICATED_PAYMENT"
	ErrCodeInvalidDate        = "INVALID_DATE"
	ErrCodeDatabaseError      = "DATABASE_ERROR"
	ErrCodeCacheError         = "CACHE_ERROR"
)

// Wrap common errors with business context. The messages are the exact bodies
// the API returns, so formatting lives here rather than in the handlers.

func WrapLoanNotFound(loanID string) *BusinessError {
	return NewBusinessError(
		ErrCodeLoanNotFound,
		fmt.Sprintf("Loan with ID %s not found", loanID),
		ErrLoanNotFound,
	)
}

func WrapInvalidPaymentDate(loanDate string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidPaymentDate,
		fmt.Sprintf("Invalid payment date, must be later than or equal to %s.", loanDate),
		ErrInvalidPaymentDate,
	)
}

func WrapInvalidAmount(installment decimal.Decimal) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidAmount,
		fmt.Sprintf("Invalid amount, must be $%s.", installment.String()),
		ErrInvalidAmount,
	)
}

func WrapDuplicatedPayment() *BusinessError {
	return NewBusinessError(
		ErrCodeDuplicatedPayment,
		"Duplicated payment.",
		ErrDuplicatedPayment,
	)
}

func WrapInvalidDate(loanDate string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidDate,
		fmt.Sprintf("Invalid date, must be later than or equal to %s.", loanDate),
		ErrInvalidDate,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"cache operation failed",
		err,
	)
}
