package handler

import (
	"log/slog"
	"net/http"
)

type customerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// listCustomers feeds the customer select on the invoice forms.
func (h *Handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.queries.ListCustomers(r.Context())
	if err != nil {
		slog.Error("list customers", "error", err)
		respondJSON(w, http.StatusInternalServerError, mutationResponse{Message: "Database error: failed to load customers"})
		return
	}

	out := make([]customerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, customerResponse{ID: c.ID, Name: c.Name, Email: c.Email})
	}
	respondJSON(w, http.StatusOK, out)
}
