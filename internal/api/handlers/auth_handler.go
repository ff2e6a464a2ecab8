package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/staffdesk/api/internal/api/middleware"
	"github.com/staffdesk/api/internal/api/types"
	"github.com/staffdesk/api/internal/auth"
	"github.com/staffdesk/api/internal/services"
)

type AuthHandler struct {
	svc    services.AuthService
	issuer *auth.Issuer
}

func NewAuthHandler(svc services.AuthService, issuer *auth.Issuer) *AuthHandler {
	return &AuthHandler{svc: svc, issuer: issuer}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Request body must be valid JSON")
		return
	}
	if req.UsernameOrEmail == "" || req.Password == "" {
		writeBadRequest(w, "Username/email and password are required")
		return
	}

	admin, pair, err := h.svc.Login(r.Context(), req.UsernameOrEmail, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, types.LoginResponse{
		Message:      "Login successful",
		Admin:        admin,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Refresh expects a Bearer refresh token and returns a fresh access token.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	tokenStr, ok := middleware.BearerToken(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, types.ErrorResponse{Error: "Unauthorized", Message: "Missing or invalid authorization header"})
		return
	}
	claims, err := h.issuer.ParseRefresh(tokenStr)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, types.ErrorResponse{Error: "Unauthorized", Message: "Refresh token is invalid or has been revoked"})
		return
	}

	access, err := h.svc.Refresh(r.Context(), claims)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.RefreshResponse{AccessToken: access})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims != nil {
		h.svc.Logout(claims)
	}
	writeJSON(w, http.StatusOK, types.MessageResponse{Message: "Logout successful"})
}

func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	admin := middleware.GetAdmin(r.Context())
	writeJSON(w, http.StatusOK, types.ProfileResponse{Admin: admin})
}
