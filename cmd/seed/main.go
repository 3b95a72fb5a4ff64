// Command seed fills the database with demo users, customers and invoices
// for local development. Users and customers upsert by email; invoices are
// appended on every run.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/shopspring/decimal"

	"github.com/ledgerline/ledgerline/internal/config"
	"github.com/ledgerline/ledgerline/internal/domain"
	"github.com/ledgerline/ledgerline/internal/repository"
	"github.com/ledgerline/ledgerline/internal/service"
)

type seedCustomer struct {
	name  string
	email string
}

type seedInvoice struct {
	customerEmail string
	amount        string
	status        domain.InvoiceStatus
	date          string
}

var (
	seedCustomers = []seedCustomer{
		{name: "Evil Rabbit", email: "evil@rabbit.com"},
		{name: "Delba de Oliveira", email: "delba@oliveira.com"},
		{name: "Lee Robinson", email: "lee@robinson.com"},
		{name: "Michael Novotny", email: "michael@novotny.com"},
	}

	seedInvoices = []seedInvoice{
		{customerEmail: "evil@rabbit.com", amount: "157.95", status: domain.InvoiceStatusPending, date: "2024-12-06"},
		{customerEmail: "delba@oliveira.com", amount: "203.48", status: domain.InvoiceStatusPaid, date: "2024-11-14"},
		{customerEmail: "lee@robinson.com", amount: "30.40", status: domain.InvoiceStatusPaid, date: "2024-10-29"},
		{customerEmail: "michael@novotny.com", amount: "448.00", status: domain.InvoiceStatusPending, date: "2024-10-10"},
		{customerEmail: "evil@rabbit.com", amount: "542.46", status: domain.InvoiceStatusPaid, date: "2024-09-10"},
	}
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Demo login: user@nextmail.com / 123456
	hash, err := service.HashPassword("123456", cfg.BcryptCost)
	if err != nil {
		slog.Error("failed to hash demo password", "error", err)
		os.Exit(1)
	}

	users := repository.NewUserRepo(pool)
	userID, err := users.Create(ctx, "User", "user@nextmail.com", hash)
	if err != nil {
		slog.Error("failed to seed user", "error", err)
		os.Exit(1)
	}
	slog.Info("seeded user", "user_id", userID)

	customerIDs := make(map[string]string, len(seedCustomers))
	for _, c := range seedCustomers {
		var id string
		err := pool.QueryRow(ctx,
			`INSERT INTO customers (name, email) VALUES ($1, $2)
			 ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
			 RETURNING id`,
			c.name, c.email,
		).Scan(&id)
		if err != nil {
			slog.Error("failed to seed customer", "error", err, "email", c.email)
			os.Exit(1)
		}
		customerIDs[c.email] = id
	}
	slog.Info("seeded customers", "count", len(seedCustomers))

	invoices := repository.NewInvoiceRepo(pool)
	for _, inv := range seedInvoices {
		amount, err := decimal.NewFromString(inv.amount)
		if err != nil {
			slog.Error("invalid seed amount", "error", err, "amount", inv.amount)
			os.Exit(1)
		}
		cents := amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
		if err := invoices.Insert(ctx, customerIDs[inv.customerEmail], cents, inv.status, inv.date); err != nil {
			slog.Error("failed to seed invoice", "error", err)
			os.Exit(1)
		}
	}
	slog.Info("seeded invoices", "count", len(seedInvoices))
}
