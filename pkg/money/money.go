package money

import (
	"time"

	"github.com/shopspring/decimal"
)

// Installment calculates the fixed periodic payment for a loan. The rate is
// the rate for the whole term, not an annualized rate:
//
//	r = rate / term
//	installment = (r + r / ((1+r)^term - 1)) * amount
//
// The result is truncated to 2 decimal places, never rounded up, so the
// lender never collects a fractional cent above the exact amount. Inputs are
// assumed positive; the caller validates them.
func Installment(amount decimal.Decimal, term int, rate decimal.Decimal) decimal.Decimal {
	termDec := decimal.NewFromInt(int64(term))
	r := rate.Div(termDec)

	compound := decimal.NewFromInt(1).Add(r).Pow(termDec).Sub(decimal.NewFromInt(1))
	installment := r.Add(r.Div(compound)).Mul(amount)

	return installment.Truncate(2)
}

// TotalScheduled returns the undiscounted value of the full schedule:
// installment * term.
func TotalScheduled(installment decimal.Decimal, term int) decimal.Decimal {
	return installment.Mul(decimal.NewFromInt(int64(term)))
}

// OutstandingBalance returns the balance after madeCount installments have
// been paid, rounded half-up to 2 decimal places. Only payments with status
// "made" count; the caller filters them.
func OutstandingBalance(installment decimal.Decimal, term int, madeCount int) decimal.Decimal {
	total := TotalScheduled(installment, term)
	paid := installment.Mul(decimal.NewFromInt(int64(madeCount)))
	return total.Sub(paid).Round(2)
}

// CalendarDate strips the time-of-day component, leaving midnight UTC of the
// same year/month/day. Payment and balance date rules compare calendar dates
// only.
func CalendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// BeforeCalendarDate reports whether a falls on an earlier calendar day
// than b, ignoring time of day.
func BeforeCalendarDate(a, b time.Time) bool {
	return CalendarDate(a).Before(CalendarDate(b))
}

// SameCalendarMonth reports whether two dates fall in the same calendar
// year and month.
func SameCalendarMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// MonthsElapsed counts the number of calendar months from start to now,
// inclusive of the origination month. Used by the scheduler to estimate how
// many payments a loan should have by now.
func MonthsElapsed(start, now time.Time) int {
	if now.Before(start) {
		return 0
	}
	return (now.Year()-start.Year())*12 + int(now.Month()) - int(start.Month()) + 1
}
