package middleware

import (
	"context"
	"net/http"
	"strings"

	"carebook/internal/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

const AccessCookie = "access_token"

// Claims extracts the authenticated claims from a request context, or
// nil for an anonymous request.
func Claims(ctx context.Context) *auth.Claims {
	c, _ := ctx.Value(claimsKey).(*auth.Claims)
	return c
}

// tokenFrom reads the access token from the session cookie, falling
// back to an Authorization: Bearer header.
func tokenFrom(r *http.Request) string {
	if c, err := r.Cookie(AccessCookie); err == nil && c.Value != "" {
		return c.Value
	}
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// Identify parses the access token when present and stores its claims
// in the request context. It never rejects; RequireAuth does that.
func Identify(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if raw := tokenFrom(r); raw != "" {
				if claims, err := auth.ParseToken(raw, secret); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), claimsKey, claims))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth redirects anonymous requests to /login.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if Claims(r.Context()) == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
