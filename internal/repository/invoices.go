package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerline/ledgerline/internal/domain"
)

// InvoiceRepo issues the parameterized invoice statements. Each method is a
// single round trip; there is no cross-statement transaction to compose.
type InvoiceRepo struct {
	db *pgxpool.Pool
}

func NewInvoiceRepo(db *pgxpool.Pool) *InvoiceRepo {
	return &InvoiceRepo{db: db}
}

func (r *InvoiceRepo) Insert(ctx context.Context, customerID string, amountCents int64, status domain.InvoiceStatus, date string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO invoices (customer_id, amount, status, date) VALUES ($1, $2, $3, $4)`,
		customerID, amountCents, string(status), date,
	)
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// UpdateByID sets customer, amount and status for one invoice. The date
// column is never part of the update payload. Returns ErrInvoiceNotFound
// when no row matched the id.
func (r *InvoiceRepo) UpdateByID(ctx context.Context, id, customerID string, amountCents int64, status domain.InvoiceStatus) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE invoices SET customer_id = $2, amount = $3, status = $4 WHERE id = $1`,
		id, customerID, amountCents, string(status),
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

// DeleteByID removes one invoice. Deleting an id that no longer exists is a
// harmless no-op.
func (r *InvoiceRepo) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := r.db.QueryRow(ctx,
		`SELECT id, customer_id, amount, status, date, created_at FROM invoices WHERE id = $1`,
		id,
	).Scan(&inv.ID, &inv.CustomerID, &inv.AmountCents, &inv.Status, &inv.Date, &inv.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrInvoiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}

func (r *InvoiceRepo) List(ctx context.Context) ([]domain.InvoiceListItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT i.id, i.customer_id, c.name, c.email, i.amount, i.status, i.date
		 FROM invoices i
		 JOIN customers c ON c.id = i.customer_id
		 ORDER BY i.date DESC, i.created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var items []domain.InvoiceListItem
	for rows.Next() {
		var it domain.InvoiceListItem
		if err := rows.Scan(&it.ID, &it.CustomerID, &it.CustomerName, &it.CustomerEmail, &it.AmountCents, &it.Status, &it.Date); err != nil {
			return nil, fmt.Errorf("scan invoice row: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invoices: %w", err)
	}
	return items, nil
}
