package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"supershopcart/backend/internal/security"
)

// RequireAccessToken authenticates requests with a Bearer access token and
// puts the token's shopper and device ids on the request context.
func RequireAccessToken(tokens *security.TokenCodec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := BearerToken(r)
			if !ok {
				unauthorized(w, "Missing or invalid Authorization header")
				return
			}
			claims, err := tokens.ExtractClaims(raw)
			if err != nil || claims.Subject == "" {
				unauthorized(w, "Invalid token")
				return
			}
			ctx := WithShopperID(r.Context(), claims.Subject)
			if claims.DeviceID != "" {
				ctx = WithDeviceID(ctx, claims.DeviceID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from an "Authorization: Bearer ..." header.
func BearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", false
	}
	const prefix = "Bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(h[len(prefix):])
	return token, token != ""
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
