// Package handler exposes the auth service over REST.
package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"supershopcart/backend/internal/auth/service"
	"supershopcart/backend/internal/server/middleware"
)

// Handler serves the auth endpoints.
type Handler struct {
	svc *service.AuthService
}

// NewHandler returns a Handler backed by svc.
func NewHandler(svc *service.AuthService) *Handler {
	return &Handler{svc: svc}
}

type loginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ShopperID    string `json:"shopperId"`
	Email        string `json:"email"`
	Name         string `json:"name"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
	DeviceID     string `json:"deviceId"`
}

type logoutRequest struct {
	RefreshToken string `json:"refreshToken"`
	DeviceID     string `json:"deviceId"`
}

type logoutAllRequest struct {
	ShopperID string `json:"shopperId"`
}

type devLoginRequest struct {
	Email    string `json:"email"`
	DeviceID string `json:"deviceId"`
}

type meResponse struct {
	ShopperID string `json:"shopperId"`
	Email     string `json:"email"`
	Name      string `json:"name"`
}

// GoogleLogin handles POST /api/v1/auth/google. The Google ID token arrives
// as a Bearer credential and the device id in X-Device-Id.
func (h *Handler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	credential, ok := middleware.BearerToken(r)
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Missing or invalid Authorization header")
		return
	}
	deviceID := strings.TrimSpace(r.Header.Get("X-Device-Id"))
	if deviceID == "" {
		writeJSONError(w, http.StatusBadRequest, "Missing X-Device-Id header")
		return
	}

	res, err := h.svc.LoginWithGoogle(r.Context(), credential, deviceID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResult(res))
}

// Refresh handles POST /api/v1/auth/refresh.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := h.svc.Refresh(r.Context(), req.RefreshToken, req.DeviceID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResult(res))
}

// Logout handles POST /api/v1/auth/logout.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	var req logoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.RefreshToken) == "" || strings.TrimSpace(req.DeviceID) == "" {
		writeJSONError(w, http.StatusBadRequest, "Missing refreshToken or deviceId")
		return
	}

	if err := h.svc.Logout(r.Context(), req.RefreshToken, req.DeviceID); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out from device"})
}

// LogoutAll handles POST /api/v1/auth/logout-all.
func (h *Handler) LogoutAll(w http.ResponseWriter, r *http.Request) {
	var req logoutAllRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.ShopperID) == "" {
		writeJSONError(w, http.StatusBadRequest, "Missing shopperId")
		return
	}

	if err := h.svc.LogoutAll(r.Context(), req.ShopperID); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out from all devices"})
}

// Me handles GET /api/v1/auth/me. Requires the access-token middleware.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	shopperID, ok := middleware.GetShopperID(r.Context())
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "Invalid token")
		return
	}
	shopper, err := h.svc.GetShopper(r.Context(), shopperID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, meResponse{
		ShopperID: shopper.ID,
		Email:     shopper.Email,
		Name:      shopper.Name,
	})
}

// DevLogin handles POST /api/v1/dev/auth/login. Only routed when dev login
// is enabled; never in production.
func (h *Handler) DevLogin(w http.ResponseWriter, r *http.Request) {
	var req devLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	deviceID := req.DeviceID
	if strings.TrimSpace(deviceID) == "" {
		deviceID = strings.TrimSpace(r.Header.Get("X-Device-Id"))
	}

	res, err := h.svc.DevLogin(r.Context(), req.Email, deviceID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResult(res))
}

func loginResult(res *service.AuthResult) loginResponse {
	return loginResponse{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		ShopperID:    res.ShopperID,
		Email:        res.Email,
		Name:         res.Name,
	}
}

// writeError maps service sentinel errors to HTTP statuses.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrMissingCredential):
		writeJSONError(w, http.StatusBadRequest, "Missing or invalid Authorization header")
	case errors.Is(err, service.ErrMissingDeviceID):
		writeJSONError(w, http.StatusBadRequest, "Missing X-Device-Id header")
	case errors.Is(err, service.ErrMissingEmail):
		writeJSONError(w, http.StatusBadRequest, "Missing email")
	case errors.Is(err, service.ErrMissingShopperID):
		writeJSONError(w, http.StatusBadRequest, "Missing shopperId")
	case errors.Is(err, service.ErrInvalidGoogleToken):
		writeJSONError(w, http.StatusUnauthorized, "Invalid Google token")
	case errors.Is(err, service.ErrInvalidRefreshToken):
		writeJSONError(w, http.StatusUnauthorized, "Invalid refresh token")
	case errors.Is(err, service.ErrRefreshExpiredOrMismatch):
		writeJSONError(w, http.StatusUnauthorized, "Refresh token expired or device mismatch")
	case errors.Is(err, service.ErrInvalidLogoutRequest):
		writeJSONError(w, http.StatusUnauthorized, "Invalid logout request")
	case errors.Is(err, service.ErrShopperNotFound):
		writeJSONError(w, http.StatusNotFound, "Shopper not found")
	case errors.Is(err, service.ErrLoginFailed):
		log.Printf("auth: login failed: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to complete login")
	default:
		log.Printf("auth: internal error: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
