package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
)

type contextKey string

const userContextKey contextKey = "user"

const (
	jwtClaimUserID = "user_id"
	jwtClaimRole   = "role"
)

const roleAdmin = "admin"

var ErrNoUserInContext = errors.New("user claims not found in context")

// Authenticate verifies the Bearer token on every request and stores its
// claims in the request context. Token issuance lives outside this service;
// only HS256 tokens signed with the shared secret are accepted.
func Authenticate(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				http.Error(w, "missing or malformed authorization header", http.StatusUnauthorized)
				return
			}
			tokenString := strings.TrimPrefix(header, "Bearer ")

			token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				http.Error(w, "invalid token claims", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin gates admin-only routes on the role claim. Must run after
// Authenticate.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(userContextKey).(jwt.MapClaims)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		role, _ := claims[jwtClaimRole].(string)
		if role != roleAdmin {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func GetUserIDFromContext(ctx context.Context) (int, error) {
	claims, ok := ctx.Value(userContextKey).(jwt.MapClaims)
	if !ok {
		return 0, ErrNoUserInContext
	}

	userIDClaim, ok := claims[jwtClaimUserID]
	if !ok {
		return 0, fmt.Errorf("missing %q claim in token", jwtClaimUserID)
	}

	// JSON numbers decode as float64.
	userIDFloat, ok := userIDClaim.(float64)
	if !ok {
		return 0, fmt.Errorf("invalid type for %q claim: %T", jwtClaimUserID, userIDClaim)
	}
	userID := int(userIDFloat)
	if userID <= 0 || userIDFloat != float64(userID) {
		return 0, fmt.Errorf("invalid user ID value in %q claim", jwtClaimUserID)
	}
	return userID, nil
}
