package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/crucial707/tagwatch/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

type key string

const identityKey key = "identity"

// DefaultActor is used when a request carries no actor identifier.
const DefaultActor = "anonymous"

// Identity is the per-request caller context: who is acting and with which
// role. It is declared by the caller, not authenticated; real identity is
// out of scope for the console.
type Identity struct {
	Role  models.Role
	Actor string
}

// WithIdentity extracts the caller identity from a Bearer JWT ("role" and
// "sub" claims, HS256 with the shared secret) or, failing that, from the
// X-Role and X-Actor headers. Requests with no identity at all still proceed
// as operator/anonymous; a present-but-invalid token is rejected with 401.
func WithIdentity(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident := Identity{Role: models.RoleOperator, Actor: DefaultActor}

			if auth := r.Header.Get("Authorization"); auth != "" {
				tokenStr := strings.TrimPrefix(auth, "Bearer ")
				token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
					return secret, nil
				})
				if err != nil || !token.Valid {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusUnauthorized)
					w.Write([]byte(`{"error":"invalid token"}`))
					return
				}
				if claims, ok := token.Claims.(jwt.MapClaims); ok {
					if role, ok := claims["role"].(string); ok {
						ident.Role = models.ParseRole(role)
					}
					if sub, ok := claims["sub"].(string); ok && sub != "" {
						ident.Actor = sub
					}
				}
			} else {
				ident.Role = models.ParseRole(r.Header.Get("X-Role"))
				if actor := strings.TrimSpace(r.Header.Get("X-Actor")); actor != "" {
					ident.Actor = actor
				}
			}

			next.ServeHTTP(w, r.WithContext(ContextWithIdentity(r.Context(), ident)))
		})
	}
}

// ContextWithIdentity returns ctx carrying the given identity. Exported for
// handler tests that bypass the middleware.
func ContextWithIdentity(ctx context.Context, ident Identity) context.Context {
	return context.WithValue(ctx, identityKey, ident)
}

// IdentityFrom returns the identity placed by WithIdentity. Without the
// middleware it returns the operator/anonymous default.
func IdentityFrom(ctx context.Context) Identity {
	if ident, ok := ctx.Value(identityKey).(Identity); ok {
		return ident
	}
	return Identity{Role: models.RoleOperator, Actor: DefaultActor}
}
