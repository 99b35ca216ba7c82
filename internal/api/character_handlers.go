package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/vinifranco48/arithimancia-api/internal/models"
	"github.com/vinifranco48/arithimancia-api/internal/services"
)

type CharacterHandler struct {
	characters *services.CharacterService
}

func NewCharacterHandler(characters *services.CharacterService) *CharacterHandler {
	return &CharacterHandler{characters: characters}
}

// pathID parses a numeric path variable; a false return means the error
// response has already been written.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		respondBadRequest(w, "INVALID_ID", "path parameter "+name+" must be a number")
		return 0, false
	}
	return id, true
}

func (h *CharacterHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCharacterRequest
	if !decode(w, r, &req) {
		return
	}

	character, err := h.characters.Create(r.Context(), playerID(r), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, "character created", character)
}

func (h *CharacterHandler) List(w http.ResponseWriter, r *http.Request) {
	characters, err := h.characters.List(r.Context(), playerID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "", characters)
}

func (h *CharacterHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	character, err := h.characters.Owned(r.Context(), playerID(r), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "", character)
}

func (h *CharacterHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req models.UpdateCharacterRequest
	if !decode(w, r, &req) {
		return
	}

	character, err := h.characters.Update(r.Context(), playerID(r), id, &req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "character updated", character)
}

func (h *CharacterHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.characters.Delete(r.Context(), playerID(r), id); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "character deleted", nil)
}

func (h *CharacterHandler) Stats(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	stats, err := h.characters.Stats(r.Context(), playerID(r), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "", stats)
}
