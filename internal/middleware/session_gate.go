package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/ledgerline/ledgerline/internal/config"
	"github.com/ledgerline/ledgerline/internal/domain"
)

type ctxKey string

const (
	identityKey  ctxKey = "identity"
	requestIDKey ctxKey = "request_id"
)

// SessionResolver turns a session token back into the identity it was
// issued for. *cache.SessionStore satisfies it.
type SessionResolver interface {
	Get(ctx context.Context, token string) (*domain.Identity, error)
}

// GetIdentity extracts the authenticated identity from context, or nil when
// the request is anonymous.
func GetIdentity(ctx context.Context) *domain.Identity {
	id, ok := ctx.Value(identityKey).(*domain.Identity)
	if !ok {
		return nil
	}
	return id
}

// IdentityLoader resolves the session cookie into an identity and stores it
// in the request context. It does not gate anything by itself.
func IdentityLoader(sessions SessionResolver, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err == nil && cookie.Value != "" {
				if identity, err := sessions.Get(r.Context(), cookie.Value); err == nil && identity != nil {
					ctx := context.WithValue(r.Context(), identityKey, identity)
					r = r.WithContext(ctx)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SessionGate admits or redirects per request. Dashboard routes require an
// authenticated caller; authenticated callers landing on public pages are
// sent to the dashboard. Handlers behind the gate do not re-check.
func SessionGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		loggedIn := GetIdentity(r.Context()) != nil
		onDashboard := strings.HasPrefix(r.URL.Path, config.DashboardPath)

		if onDashboard && !loggedIn {
			http.Redirect(w, r, config.LoginPath, http.StatusSeeOther)
			return
		}
		if !onDashboard && loggedIn && r.Method == http.MethodGet {
			http.Redirect(w, r, config.DashboardPath, http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}
