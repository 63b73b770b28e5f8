package handler

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/prasetya/loan-tracker/internal/domain"
	"github.com/prasetya/loan-tracker/internal/service"
	customError "github.com/prasetya/loan-tracker/pkg/errors"
	"github.com/prasetya/loan-tracker/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

type LoanHandler struct {
	service   *service.LoanService
	validator *validator.Validate
}

func NewLoanHandler(service *service.LoanService) *LoanHandler {
	v := validator.New()

	// Report fields under their wire names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &LoanHandler{
		service:   service,
		validator: v,
	}
}

// CreateLoan handles POST /loans
func (h *LoanHandler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	request, fields, err := decodeCreateLoan(r.Body)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON.")
		return
	}
	if len(fields) > 0 {
		response.Fields(w, fields)
		return
	}

	if err := h.validator.Struct(request); err != nil {
		response.Fields(w, validationFields(err))
		return
	}

	loan, err := h.service.CreateLoan(r.Context(), request)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, domain.CreateLoanResponse{
		LoanID:      loan.LoanID,
		Installment: loan.Installment,
	})
}

// AddPayment handles POST /loans/{loan_id}/payments
func (h *LoanHandler) AddPayment(w http.ResponseWriter, r *http.Request) {
	loanID := mux.Vars(r)["loan_id"]

	request, fields, err := decodeCreatePayment(r.Body)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON.")
		return
	}
	if len(fields) > 0 {
		response.Fields(w, fields)
		return
	}

	if err := h.validator.Struct(request); err != nil {
		response.Fields(w, validationFields(err))
		return
	}

	if _, err := h.service.AddPayment(r.Context(), loanID, request); err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, map[string]string{"success": "Payment added."})
}

// GetBalance handles POST /loans/{loan_id}/balance
func (h *LoanHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	loanID := mux.Vars(r)["loan_id"]

	asOf, fields, err := decodeBalance(r.Body)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON.")
		return
	}
	if len(fields) > 0 {
		response.Fields(w, fields)
		return
	}

	balance, err := h.service.GetBalance(r.Context(), loanID, asOf)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, domain.BalanceResponse{Balance: balance})
}

// DeleteLoan handles DELETE /loans/{loan_id}
func (h *LoanHandler) DeleteLoan(w http.ResponseWriter, r *http.Request) {
	loanID := mux.Vars(r)["loan_id"]

	if err := h.service.DeleteLoan(r.Context(), loanID); err != nil {
		writeBusinessError(w, err)
		return
	}

	response.NoContent(w)
}

// validationFields converts struct-level validation failures to the same
// field-keyed map the schema decoder produces. The decoder catches these
// first in practice; this is the backstop for drift between the two.
func validationFields(err error) map[string]string {
	fields := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fields
	}

	for _, fieldError := range validationErrors {
		switch fieldError.Tag() {
		case "oneof":
			fields[fieldError.Field()] = fmt.Sprintf("%q is not one of made, missed", fieldError.Value())
		case "gt":
			fields[fieldError.Field()] = "Value must be greater than zero"
		default:
			fields[fieldError.Field()] = "Required"
		}
	}

	return fields
}

// writeBusinessError maps domain error codes to HTTP responses. Nothing
// below the handler layer writes to the response.
func writeBusinessError(w http.ResponseWriter, err error) {
	var bizErr *customError.BusinessError
	if !errors.As(err, &bizErr) {
		response.InternalServerError(w, "Internal server error.")
		return
	}

	switch bizErr.Code {
	case customError.ErrCodeLoanNotFound:
		response.NotFound(w)
	case customError.ErrCodeInvalidPaymentDate,
		customError.ErrCodeInvalidAmount,
		customError.ErrCodeInvalidDate:
		response.Error(w, http.StatusBadRequest, bizErr.Message)
	case customError.ErrCodeDuplicatedPayment:
		response.Error(w, http.StatusConflict, bizErr.Message)
	default:
		response.InternalServerError(w, "Internal server error.")
	}
}
