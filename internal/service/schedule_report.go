package service

import (
	"context"
	"time"

	customError "github.com/prasetya/loan-tracker/pkg/errors"
	"github.com/prasetya/loan-tracker/pkg/money"
)

// ScheduleReport describes a loan with fewer payment records than calendar
// months elapsed since origination.
type ScheduleReport struct {
	LoanID   string
	Expected int
	Recorded int
}

// BehindSchedule returns every loan whose recorded payment count (made or
// missed) is lower than the number of months elapsed since origination,
// capped at the loan term. Read-only; the scheduler logs the result.
func (s *LoanService) BehindSchedule(ctx context.Context, now time.Time) ([]ScheduleReport, error) {
	loans, err := s.loanRepo.List(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	var reports []ScheduleReport
	for _, loan := range loans {
		expected := money.MonthsElapsed(loan.Date, now)
		if expected > loan.Term {
			expected = loan.Term
		}

		recorded, err := s.paymentRepo.CountByLoan(ctx, loan.ID)
		if err != nil {
			return nil, customError.WrapDatabaseError(err)
		}

		if recorded < expected {
			reports = append(reports, ScheduleReport{
				LoanID:   loan.LoanID,
				Expected: expected,
				Recorded: recorded,
			})
		}
	}

	return reports, nil
}
