package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/coopera/savings-backend/internal/api/httpx"
	"github.com/coopera/savings-backend/internal/identity"
)

type ctxKey string

const ctxIdentityKey ctxKey = "identity"

// IdentityFrom returns the verified external identity stored by Authenticate.
func IdentityFrom(ctx context.Context) (identity.Identity, bool) {
	v, ok := ctx.Value(ctxIdentityKey).(identity.Identity)
	return v, ok
}

// WithIdentity is exposed for handler tests.
func WithIdentity(ctx context.Context, ident identity.Identity) context.Context {
	return context.WithValue(ctx, ctxIdentityKey, ident)
}

type AuthMiddleware struct {
	verifier *identity.Verifier
}

func NewAuthMiddleware(v *identity.Verifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: v}
}

// Authenticate requires a provider-issued bearer token and stores the
// verified identity in the request context. Handlers resolve it to an
// internal user explicitly; no ambient session state exists.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ah := r.Header.Get("Authorization")
		if ah == "" || !strings.HasPrefix(strings.ToLower(ah), "bearer ") {
			httpx.WriteError(w, http.StatusUnauthorized, "authentication_required", "missing bearer token", nil)
			return
		}
		token := strings.TrimSpace(ah[len("Bearer "):])

		ident, err := m.verifier.Verify(token)
		if err != nil {
			httpx.WriteError(w, http.StatusUnauthorized, "authentication_required", "invalid identity token", nil)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), ident)))
	})
}
