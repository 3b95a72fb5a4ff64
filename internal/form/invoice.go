// Package form validates raw form submissions into typed inputs. Validation
// is pure: it never touches the store and never panics on expected input.
package form

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ledgerline/ledgerline/internal/domain"
)

// Field names as they appear in the submitted form.
const (
	FieldCustomerID = "customerId"
	FieldAmount     = "amount"
	FieldStatus     = "status"
)

// FieldErrors maps a form field to the validation messages raised against it.
type FieldErrors map[string][]string

func (fe FieldErrors) add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

// InvoiceInput is a validated invoice submission. Amount is in major
// currency units; conversion to cents happens at the mutation boundary.
type InvoiceInput struct {
	CustomerID string
	Amount     decimal.Decimal
	Status     string
}

// ParseInvoice validates raw string form fields for invoice create/update.
// It returns either a typed input or the per-field errors, never both.
func ParseInvoice(fields map[string]string) (*InvoiceInput, FieldErrors) {
	errs := FieldErrors{}

	customerID := strings.TrimSpace(fields[FieldCustomerID])
	if customerID == "" {
		errs.add(FieldCustomerID, "Please select a customer")
	}

	var amount decimal.Decimal
	rawAmount := strings.TrimSpace(fields[FieldAmount])
	if rawAmount == "" {
		errs.add(FieldAmount, "Amount must be greater than $0")
	} else {
		parsed, err := decimal.NewFromString(rawAmount)
		if err != nil || parsed.LessThanOrEqual(decimal.Zero) {
			errs.add(FieldAmount, "Amount must be greater than $0")
		} else {
			amount = parsed
		}
	}

	status := fields[FieldStatus]
	if !domain.ValidStatus(status) {
		errs.add(FieldStatus, "Please select a status")
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return &InvoiceInput{
		CustomerID: customerID,
		Amount:     amount,
		Status:     status,
	}, nil
}

// Cents converts the validated amount to integer minor units, rounding to
// the nearest cent. Monetary values are stored as cents to avoid
// floating-point drift.
func (in *InvoiceInput) Cents() int64 {
	return in.Amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
