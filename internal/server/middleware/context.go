package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
)

type contextKey string

const (
	shopperIDKey contextKey = "shopper_id"
	deviceIDKey  contextKey = "device_id"
	clientIPKey  contextKey = "client_ip"
)

// WithShopperID returns ctx carrying the authenticated shopper id.
func WithShopperID(ctx context.Context, shopperID string) context.Context {
	return context.WithValue(ctx, shopperIDKey, shopperID)
}

// GetShopperID returns the authenticated shopper id, if any.
func GetShopperID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(shopperIDKey).(string)
	return v, ok && v != ""
}

// WithDeviceID returns ctx carrying the device id from the access token.
func WithDeviceID(ctx context.Context, deviceID string) context.Context {
	return context.WithValue(ctx, deviceIDKey, deviceID)
}

// GetDeviceID returns the device id from the access token, if any.
func GetDeviceID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(deviceIDKey).(string)
	return v, ok && v != ""
}

// WithClientIP returns ctx carrying the request's client IP.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey, ip)
}

// GetClientIP returns the client IP recorded for the request, or "unknown".
func GetClientIP(ctx context.Context) string {
	if v, ok := ctx.Value(clientIPKey).(string); ok && v != "" {
		return v
	}
	return "unknown"
}

// ClientIP resolves the client IP from proxy headers (X-Forwarded-For,
// X-Real-Ip) or the remote address, or "unknown".
func ClientIP(r *http.Request) string {
	if s := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); s != "" {
		if i := strings.Index(s, ","); i > 0 {
			s = strings.TrimSpace(s[:i])
		}
		if s != "" {
			return s
		}
	}
	if s := strings.TrimSpace(r.Header.Get("X-Real-Ip")); s != "" {
		return s
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}

// RecordClientIP stores the resolved client IP on the request context so
// code further down (e.g. audit logging) can read it without the request.
func RecordClientIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := WithClientIP(r.Context(), ClientIP(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
