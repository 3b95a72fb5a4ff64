package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
)

// ValidStatus reports whether s is one of the two accepted invoice states.
func ValidStatus(s string) bool {
	switch InvoiceStatus(s) {
	case InvoiceStatusPending, InvoiceStatusPaid:
		return true
	}
	return false
}

// Invoice is a persisted invoice row. AmountCents is the stored
// representation; decimal amounts are converted at the mutation boundary.
type Invoice struct {
	ID          string
	CustomerID  string
	AmountCents int64
	Status      InvoiceStatus
	Date        string // YYYY-MM-DD, immutable after creation
	CreatedAt   time.Time
}

// Amount returns the invoice amount in major currency units.
func (i *Invoice) Amount() decimal.Decimal {
	return decimal.NewFromInt(i.AmountCents).Div(decimal.NewFromInt(100))
}

// InvoiceListItem is an invoice joined with its customer for list views.
type InvoiceListItem struct {
	ID            string
	CustomerID    string
	CustomerName  string
	CustomerEmail string
	AmountCents   int64
	Status        InvoiceStatus
	Date          string
}
