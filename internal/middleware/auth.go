package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/tsirdo8/mini-social/internal/crypto"
)

// Identity is the verified caller identity the auth gate exposes to handlers.
type Identity struct {
	UserID int64
	Role   string
}

type contextKey string

const identityKey contextKey = "identity"

// unauthorizedMessage is the single body for every auth failure. Missing,
// malformed and expired tokens must be indistinguishable to the caller.
const unauthorizedMessage = "you dont have permition"

// JWTAuth returns middleware that verifies the bearer assertion in the
// Authorization header. The header form is "<scheme> <token>"; the scheme is
// deliberately not validated, only the token part is used.
func JWTAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
			if !found || token == "" {
				writeUnauthorized(w)
				return
			}

			claims, err := crypto.ValidateToken(token, secret)
			if err != nil {
				writeUnauthorized(w)
				return
			}

			identity := Identity{UserID: claims.UserID, Role: claims.Role}
			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext extracts the authenticated caller from the request
// context.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": unauthorizedMessage})
}
