package config

import "time"

const (
	// Routes
	LoginPath       = "/login"
	DashboardPath   = "/dashboard"
	InvoiceListPath = "/dashboard/invoices"

	// Credential policy
	MinPasswordLength = 6

	// Cached view freshness
	ViewCacheTTL = 5 * time.Minute

	// HTTP server timeouts
	ReadTimeout     = 10 * time.Second
	WriteTimeout    = 15 * time.Second
	ShutdownTimeout = 10 * time.Second

	// Invoice date format (calendar date, no time component)
	InvoiceDateFormat = "2006-01-02"
)
