package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ledgerline/ledgerline/internal/config"
	"github.com/ledgerline/ledgerline/internal/domain"
)

// InvoiceReader is the read side of the invoice store.
type InvoiceReader interface {
	GetByID(ctx context.Context, id string) (*domain.Invoice, error)
	List(ctx context.Context) ([]domain.InvoiceListItem, error)
}

type CustomerReader interface {
	List(ctx context.Context) ([]domain.Customer, error)
}

// ViewCacheStore is the full cached-view surface: reads fill it, mutations
// invalidate it through ViewInvalidator.
type ViewCacheStore interface {
	Get(ctx context.Context, path string) ([]byte, bool, error)
	Set(ctx context.Context, path string, body []byte) error
}

// QueryService serves the dashboard read-views, backed by the cached view
// of the invoice list.
type QueryService struct {
	invoices  InvoiceReader
	customers CustomerReader
	views     ViewCacheStore
}

func NewQueryService(invoices InvoiceReader, customers CustomerReader, views ViewCacheStore) *QueryService {
	return &QueryService{invoices: invoices, customers: customers, views: views}
}

// ListInvoices returns the invoice list view as JSON, recomputing and
// refilling the cache on a miss.
func (s *QueryService) ListInvoices(ctx context.Context) ([]byte, error) {
	if body, ok, err := s.views.Get(ctx, config.InvoiceListPath); err == nil && ok {
		return body, nil
	} else if err != nil {
		slog.Warn("read cached invoice list", "error", err)
	}

	items, err := s.invoices.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	if items == nil {
		items = []domain.InvoiceListItem{}
	}

	body, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode invoice list: %w", err)
	}

	if err := s.views.Set(ctx, config.InvoiceListPath, body); err != nil {
		slog.Warn("fill cached invoice list", "error", err)
	}
	return body, nil
}

func (s *QueryService) GetInvoice(ctx context.Context, id string) (*domain.Invoice, error) {
	return s.invoices.GetByID(ctx, id)
}

func (s *QueryService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return s.customers.List(ctx)
}
