package policy

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/rentdesk/rentdesk/internal/identity"
	"github.com/rentdesk/rentdesk/internal/platform/httpx"
	"github.com/rentdesk/rentdesk/internal/shared"
)

// Resolver turns a session principal id into a resolved principal.
type Resolver interface {
	Resolve(ctx context.Context, principalID int64) (identity.Principal, error)
}

// Middleware gates routes on the resolved principal and injects it into the
// request context so handlers pass it down explicitly.
type Middleware struct {
	Resolver Resolver
	Logger   *slog.Logger
}

// RequireAuthenticated resolves the session to a principal or rejects with 401.
func (m Middleware) RequireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := m.resolve(r)
		if !ok {
			httpx.RespondError(w, shared.ErrUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(identity.ContextWithPrincipal(r.Context(), principal)))
	})
}

// RequireAdmin additionally demands the admin role.
func (m Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := m.resolve(r)
		if !ok {
			httpx.RespondError(w, shared.ErrUnauthorized)
			return
		}
		if !principal.IsAdmin() {
			httpx.RespondError(w, shared.ErrForbidden)
			return
		}
		next.ServeHTTP(w, r.WithContext(identity.ContextWithPrincipal(r.Context(), principal)))
	})
}

func (m Middleware) resolve(r *http.Request) (identity.Principal, bool) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		return identity.Principal{}, false
	}
	raw := strings.TrimSpace(sess.User())
	if raw == "" {
		return identity.Principal{}, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		if m.Logger != nil {
			m.Logger.Error("policy parse principal id", slog.String("value", raw))
		}
		return identity.Principal{}, false
	}
	principal, err := m.Resolver.Resolve(r.Context(), id)
	if err != nil {
		return identity.Principal{}, false
	}
	return principal, true
}
