package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ledgerline/ledgerline/internal/domain"
	"github.com/ledgerline/ledgerline/internal/service"
)

type mutationResponse struct {
	Errors  map[string][]string `json:"errors,omitempty"`
	Message string              `json:"message,omitempty"`
}

// writeMutationResult maps a structured mutation outcome onto the HTTP
// surface. Success with a redirect target becomes a 303 so the browser
// re-reads the invoice list after the invalidation signal has fired.
func writeMutationResult(w http.ResponseWriter, r *http.Request, result service.MutationResult) {
	switch result.Status {
	case service.StatusOK:
		if result.RedirectTo != "" {
			http.Redirect(w, r, result.RedirectTo, http.StatusSeeOther)
			return
		}
		respondJSON(w, http.StatusOK, mutationResponse{Message: result.Message})
	case service.StatusValidationFailed:
		respondJSON(w, http.StatusUnprocessableEntity, mutationResponse{
			Errors:  result.FieldErrors,
			Message: result.Message,
		})
	case service.StatusNotFound:
		respondJSON(w, http.StatusNotFound, mutationResponse{Message: result.Message})
	default:
		respondJSON(w, http.StatusInternalServerError, mutationResponse{Message: result.Message})
	}
}

func (h *Handler) createInvoice(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondJSON(w, http.StatusBadRequest, mutationResponse{Message: "Malformed form submission"})
		return
	}
	writeMutationResult(w, r, h.invoices.Create(r.Context(), formFields(r)))
}

func (h *Handler) updateInvoice(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondJSON(w, http.StatusBadRequest, mutationResponse{Message: "Malformed form submission"})
		return
	}
	id := chi.URLParam(r, "id")
	writeMutationResult(w, r, h.invoices.Update(r.Context(), id, formFields(r)))
}

func (h *Handler) deleteInvoice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	writeMutationResult(w, r, h.invoices.Delete(r.Context(), id))
}

func (h *Handler) listInvoices(w http.ResponseWriter, r *http.Request) {
	body, err := h.queries.ListInvoices(r.Context())
	if err != nil {
		slog.Error("list invoices", "error", err)
		respondJSON(w, http.StatusInternalServerError, mutationResponse{Message: "Database error: failed to load invoices"})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		slog.Error("write invoice list", "error", err)
	}
}

type invoiceResponse struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_id"`
	Amount     string `json:"amount"`
	Status     string `json:"status"`
	Date       string `json:"date"`
}

// editInvoice returns the prefill data for the edit form.
func (h *Handler) editInvoice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	inv, err := h.queries.GetInvoice(r.Context(), id)
	if errors.Is(err, domain.ErrInvoiceNotFound) {
		respondJSON(w, http.StatusNotFound, mutationResponse{Message: "Invoice not found"})
		return
	}
	if err != nil {
		slog.Error("get invoice", "error", err, "invoice_id", id)
		respondJSON(w, http.StatusInternalServerError, mutationResponse{Message: "Database error: failed to load invoice"})
		return
	}
	respondJSON(w, http.StatusOK, invoiceResponse{
		ID:         inv.ID,
		CustomerID: inv.CustomerID,
		Amount:     inv.Amount().StringFixed(2),
		Status:     string(inv.Status),
		Date:       inv.Date,
	})
}
