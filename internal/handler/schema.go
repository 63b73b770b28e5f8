package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/prasetya/loan-tracker/internal/domain"

	"github.com/shopspring/decimal"
)

// Field-level validation messages. Every offending field gets its own entry
// in the response map; checks do not short-circuit across fields.
const (
	msgRequired    = "Required"
	msgNotANumber  = "%q is not a number"
	msgNotPositive = "Value must be greater than zero"
	msgInvalidDate = "Invalid date"
)

// Accepted datetime layouts: ISO-8601 with either separator, with or
// without seconds, plus a bare date.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04Z07:00",
	"2006-01-02",
}

type rawLoanPayload struct {
	Amount json.RawMessage `json:"amount"`
	Term   json.RawMessage `json:"term"`
	Rate   json.RawMessage `json:"rate"`
	Date   json.RawMessage `json:"date"`
}

type rawPaymentPayload struct {
	Payment json.RawMessage `json:"payment"`
	Date    json.RawMessage `json:"date"`
	Amount  json.RawMessage `json:"amount"`
}

type rawBalancePayload struct {
	Date json.RawMessage `json:"date"`
}

// decodeCreateLoan parses and validates a loan creation body. A non-nil
// error means the body was not valid JSON at all; a non-empty map collects
// one message per offending field.
func decodeCreateLoan(body io.Reader) (*domain.CreateLoanRequest, map[string]string, error) {
	var raw rawLoanPayload
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return nil, nil, err
	}

	fields := make(map[string]string)
	request := &domain.CreateLoanRequest{}

	if amount, ok := positiveDecimalField(raw.Amount, "amount", fields); ok {
		request.Amount = amount
	}
	if term, ok := positiveIntField(raw.Term, "term", fields); ok {
		request.Term = term
	}
	if rate, ok := positiveDecimalField(raw.Rate, "rate", fields); ok {
		request.Rate = rate
	}
	if date, ok := dateField(raw.Date, "date", fields); ok {
		request.Date = date
	}

	return request, fields, nil
}

// decodeCreatePayment parses and validates a payment body.
func decodeCreatePayment(body io.Reader) (*domain.CreatePaymentRequest, map[string]string, error) {
	var raw rawPaymentPayload
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return nil, nil, err
	}

	fields := make(map[string]string)
	request := &domain.CreatePaymentRequest{}

	if status, ok := statusField(raw.Payment, "payment", fields); ok {
		request.Status = status
	}
	if date, ok := dateField(raw.Date, "date", fields); ok {
		request.Date = date
	}
	if amount, ok := positiveDecimalField(raw.Amount, "amount", fields); ok {
		request.Amount = amount
	}

	return request, fields, nil
}

// decodeBalance parses and validates a balance query body.
func decodeBalance(body io.Reader) (time.Time, map[string]string, error) {
	var raw rawBalancePayload
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return time.Time{}, nil, err
	}

	fields := make(map[string]string)
	date, _ := dateField(raw.Date, "date", fields)

	return date, fields, nil
}

func positiveDecimalField(raw json.RawMessage, name string, fields map[string]string) (decimal.Decimal, bool) {
	if raw == nil {
		fields[name] = msgRequired
		return decimal.Zero, false
	}

	// Numeric strings coerce like numbers; anything else is rejected with
	// the literal value in the message.
	token := strings.Trim(string(raw), `"`)
	value, err := decimal.NewFromString(token)
	if err != nil {
		fields[name] = fmt.Sprintf(msgNotANumber, token)
		return decimal.Zero, false
	}

	if value.LessThanOrEqual(decimal.Zero) {
		fields[name] = msgNotPositive
		return decimal.Zero, false
	}

	return value, true
}

func positiveIntField(raw json.RawMessage, name string, fields map[string]string) (int, bool) {
	value, ok := positiveDecimalField(raw, name, fields)
	if !ok {
		return 0, false
	}

	if !value.IsInteger() {
		fields[name] = fmt.Sprintf(msgNotANumber, strings.Trim(string(raw), `"`))
		return 0, false
	}

	return int(value.IntPart()), true
}

func dateField(raw json.RawMessage, name string, fields map[string]string) (time.Time, bool) {
	if raw == nil {
		fields[name] = msgRequired
		return time.Time{}, false
	}

	var token string
	if err := json.Unmarshal(raw, &token); err != nil {
		fields[name] = msgInvalidDate
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if date, err := time.Parse(layout, token); err == nil {
			return date, true
		}
	}

	fields[name] = msgInvalidDate
	return time.Time{}, false
}

func statusField(raw json.RawMessage, name string, fields map[string]string) (string, bool) {
	if raw == nil {
		fields[name] = msgRequired
		return "", false
	}

	var token string
	if err := json.Unmarshal(raw, &token); err != nil {
		token = strings.Trim(string(raw), `"`)
	}

	if token != domain.PaymentStatusMade && token != domain.PaymentStatusMissed {
		fields[name] = fmt.Sprintf("%q is not one of made, missed", token)
		return "", false
	}

	return token, true
}
