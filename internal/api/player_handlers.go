package api

import (
	"net/http"

	"github.com/vinifranco48/arithimancia-api/internal/auth"
	"github.com/vinifranco48/arithimancia-api/internal/models"
	"github.com/vinifranco48/arithimancia-api/internal/services"
)

type PlayerHandler struct {
	players    *services.PlayerService
	characters *services.CharacterService
}

func NewPlayerHandler(players *services.PlayerService, characters *services.CharacterService) *PlayerHandler {
	return &PlayerHandler{players: players, characters: characters}
}

func playerID(r *http.Request) int64 {
	return auth.ClaimsFromContext(r.Context()).PlayerID
}

func (h *PlayerHandler) Profile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.players.Profile(r.Context(), playerID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "", profile)
}

func (h *PlayerHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.ProfileUpdateRequest
	if !decode(w, r, &req) {
		return
	}

	player, err := h.players.UpdateProfile(r.Context(), playerID(r), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "profile updated", player)
}

func (h *PlayerHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req models.PasswordChangeRequest
	if !decode(w, r, &req) {
		return
	}

	if err := h.players.ChangePassword(r.Context(), playerID(r), &req); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "password changed", nil)
}

func (h *PlayerHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := h.players.DeleteAccount(r.Context(), playerID(r)); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "account deleted", nil)
}

func (h *PlayerHandler) Characters(w http.ResponseWriter, r *http.Request) {
	characters, err := h.characters.List(r.Context(), playerID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "", characters)
}
