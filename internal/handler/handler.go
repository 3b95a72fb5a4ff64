// Package handler wires the HTTP surface: form decoding in, structured
// results out. Handlers stay thin; decisions live in the services.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ledgerline/ledgerline/internal/config"
	"github.com/ledgerline/ledgerline/internal/domain"
	"github.com/ledgerline/ledgerline/internal/middleware"
	"github.com/ledgerline/ledgerline/internal/service"
)

// SessionManager issues, resolves and revokes session tokens.
// *cache.SessionStore satisfies it.
type SessionManager interface {
	Create(ctx context.Context, identity domain.Identity) (string, error)
	Get(ctx context.Context, token string) (*domain.Identity, error)
	Destroy(ctx context.Context, token string) error
}

type Handler struct {
	cfg      *config.Config
	invoices *service.InvoiceService
	queries  *service.QueryService
	auth     *service.AuthService
	sessions SessionManager
}

type Deps struct {
	Cfg      *config.Config
	Invoices *service.InvoiceService
	Queries  *service.QueryService
	Auth     *service.AuthService
	Sessions SessionManager
}

func New(deps Deps) *Handler {
	return &Handler{
		cfg:      deps.Cfg,
		invoices: deps.Invoices,
		queries:  deps.Queries,
		auth:     deps.Auth,
		sessions: deps.Sessions,
	}
}

// NewRouter registers all routes and the middleware chain. The session gate
// wraps everything except health checks; mutation handlers trust it and do
// not re-check authentication.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recover)
	r.Use(middleware.Logging)

	r.Get("/healthz", h.healthz)

	r.Group(func(r chi.Router) {
		r.Use(middleware.IdentityLoader(h.sessions, h.cfg.CookieName))
		r.Use(middleware.SessionGate)

		r.Post("/login", h.login)
		r.Post("/logout", h.logout)

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/invoices", h.listInvoices)
			r.Post("/invoices", h.createInvoice)
			r.Get("/invoices/{id}/edit", h.editInvoice)
			r.Post("/invoices/{id}", h.updateInvoice)
			r.Post("/invoices/{id}/delete", h.deleteInvoice)
			r.Get("/customers", h.listCustomers)
		})
	})

	return r
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// formFields flattens a submitted form into the single-valued map the
// validator consumes.
func formFields(r *http.Request) map[string]string {
	fields := make(map[string]string, len(r.PostForm))
	for key, values := range r.PostForm {
		if len(values) > 0 {
			fields[key] = values[0]
		}
	}
	return fields
}
