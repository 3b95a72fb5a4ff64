package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ledgerline/ledgerline/internal/config"
	"github.com/ledgerline/ledgerline/internal/domain"
	"github.com/ledgerline/ledgerline/internal/form"
)

// InvoiceStore is the slice of the persistence layer the mutation pipeline
// needs. *repository.InvoiceRepo satisfies it.
type InvoiceStore interface {
	Insert(ctx context.Context, customerID string, amountCents int64, status domain.InvoiceStatus, date string) error
	UpdateByID(ctx context.Context, id, customerID string, amountCents int64, status domain.InvoiceStatus) error
	DeleteByID(ctx context.Context, id string) error
}

// ViewInvalidator signals that a cached read-view is stale.
// *cache.ViewCache satisfies it.
type ViewInvalidator interface {
	Invalidate(ctx context.Context, path string) error
}

type MutationStatus string

const (
	StatusOK                MutationStatus = "ok"
	StatusValidationFailed  MutationStatus = "validation_failed"
	StatusPersistenceFailed MutationStatus = "persistence_failed"
	StatusNotFound          MutationStatus = "not_found"
)

// MutationResult is the structured outcome of an invoice mutation. Expected
// failures never surface as errors; they are folded into the result.
type MutationResult struct {
	Status      MutationStatus
	FieldErrors form.FieldErrors
	Message     string
	RedirectTo  string
}

func (r MutationResult) OK() bool {
	return r.Status == StatusOK
}

// InvoiceService orchestrates validation, persistence and post-mutation
// signaling. It holds no per-request state.
type InvoiceService struct {
	store InvoiceStore
	views ViewInvalidator
	now   func() time.Time
}

func NewInvoiceService(store InvoiceStore, views ViewInvalidator) *InvoiceService {
	return &InvoiceService{store: store, views: views, now: time.Now}
}

// Create validates raw form fields and inserts a new invoice. The issue date
// is stamped at submission time; the amount is stored in cents.
func (s *InvoiceService) Create(ctx context.Context, fields map[string]string) MutationResult {
	input, fieldErrs := form.ParseInvoice(fields)
	if fieldErrs != nil {
		return MutationResult{
			Status:      StatusValidationFailed,
			FieldErrors: fieldErrs,
			Message:     "Failed to create invoice due to fields with errors",
		}
	}

	date := s.now().Format(config.InvoiceDateFormat)
	if err := s.store.Insert(ctx, input.CustomerID, input.Cents(), domain.InvoiceStatus(input.Status), date); err != nil {
		slog.Error("insert invoice", "error", err)
		return MutationResult{
			Status:  StatusPersistenceFailed,
			Message: "Database error: failed to create invoice",
		}
	}

	s.invalidateList(ctx)
	return MutationResult{
		Status:     StatusOK,
		RedirectTo: config.InvoiceListPath,
	}
}

// Update validates raw form fields and rewrites customer, amount and status
// for an existing invoice. The date column is immutable after creation and
// is excluded from the payload.
func (s *InvoiceService) Update(ctx context.Context, id string, fields map[string]string) MutationResult {
	input, fieldErrs := form.ParseInvoice(fields)
	if fieldErrs != nil {
		return MutationResult{
			Status:      StatusValidationFailed,
			FieldErrors: fieldErrs,
			Message:     "Failed to update invoice due to fields with errors",
		}
	}

	err := s.store.UpdateByID(ctx, id, input.CustomerID, input.Cents(), domain.InvoiceStatus(input.Status))
	if errors.Is(err, domain.ErrInvoiceNotFound) {
		return MutationResult{
			Status:  StatusNotFound,
			Message: "Invoice not found",
		}
	}
	if err != nil {
		slog.Error("update invoice", "error", err, "invoice_id", id)
		return MutationResult{
			Status:  StatusPersistenceFailed,
			Message: "Database error: failed to update invoice",
		}
	}

	s.invalidateList(ctx)
	return MutationResult{
		Status:     StatusOK,
		RedirectTo: config.InvoiceListPath,
	}
}

// Delete removes an invoice by id. Deleting an id that does not exist is a
// harmless no-op, not a failure.
func (s *InvoiceService) Delete(ctx context.Context, id string) MutationResult {
	if err := s.store.DeleteByID(ctx, id); err != nil {
		slog.Error("delete invoice", "error", err, "invoice_id", id)
		return MutationResult{
			Status:  StatusPersistenceFailed,
			Message: "Database error: failed to delete invoice",
		}
	}

	s.invalidateList(ctx)
	return MutationResult{
		Status:  StatusOK,
		Message: "Invoice deleted",
	}
}

// invalidateList signals staleness of the cached invoice list. It runs
// before any redirect target is returned so a read after redirect never
// sees stale data. A failed signal is logged, not fatal: the cached view
// expires on its own TTL.
func (s *InvoiceService) invalidateList(ctx context.Context) {
	if err := s.views.Invalidate(ctx, config.InvoiceListPath); err != nil {
		slog.Warn("invalidate invoice list view", "error", err)
	}
}
