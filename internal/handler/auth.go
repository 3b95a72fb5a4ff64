package handler

import (
	"log/slog"
	"net/http"

	"github.com/ledgerline/ledgerline/internal/config"
)

// login verifies the submitted credentials exactly once and, on a match,
// turns the returned identity into a durable session cookie. Unknown email
// and wrong password produce the same response.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondJSON(w, http.StatusBadRequest, mutationResponse{Message: "Malformed form submission"})
		return
	}

	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	identity, err := h.auth.Verify(r.Context(), email, password)
	if err != nil {
		slog.Error("verify credentials", "error", err)
		respondJSON(w, http.StatusInternalServerError, mutationResponse{Message: "Something went wrong"})
		return
	}
	if identity == nil {
		respondJSON(w, http.StatusUnauthorized, mutationResponse{Message: "Invalid email or password"})
		return
	}

	token, err := h.sessions.Create(r.Context(), *identity)
	if err != nil {
		slog.Error("create session", "error", err)
		respondJSON(w, http.StatusInternalServerError, mutationResponse{Message: "Something went wrong"})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, config.DashboardPath, http.StatusSeeOther)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(h.cfg.CookieName); err == nil && cookie.Value != "" {
		if err := h.sessions.Destroy(r.Context(), cookie.Value); err != nil {
			slog.Warn("destroy session", "error", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, config.LoginPath, http.StatusSeeOther)
}
