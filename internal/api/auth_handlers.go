package api

import (
	"net/http"

	"github.com/vinifranco48/arithimancia-api/internal/auth"
	"github.com/vinifranco48/arithimancia-api/internal/models"
	"github.com/vinifranco48/arithimancia-api/internal/services"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

type authPayload struct {
	Player *models.Player  `json:"player"`
	Tokens *auth.TokenPair `json:"tokens"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !decode(w, r, &req) {
		return
	}

	player, tokens, err := h.auth.Register(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, "account created", authPayload{Player: player, Tokens: tokens})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decode(w, r, &req) {
		return
	}

	player, tokens, err := h.auth.Login(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "login successful", authPayload{Player: player, Tokens: tokens})
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshRequest
	if !decode(w, r, &req) {
		return
	}
	if req.RefreshToken == "" {
		respondBadRequest(w, "MISSING_REFRESH_TOKEN", "refresh_token is required")
		return
	}

	tokens, err := h.auth.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "tokens refreshed", tokens)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshRequest
	// Body is optional; the access token alone still gets revoked.
	_ = decodeOptional(r, &req)

	if err := h.auth.Logout(r.Context(), auth.BearerToken(r), req.RefreshToken); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "logged out", nil)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	player, err := h.auth.Me(r.Context(), claims.PlayerID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "", player)
}
