package api

import (
	"net/http"
	"strconv"

	"github.com/vinifranco48/arithimancia-api/internal/game"
	"github.com/vinifranco48/arithimancia-api/internal/models"
	"github.com/vinifranco48/arithimancia-api/internal/services"
)

type GameHandler struct {
	game       *services.GameService
	characters *services.CharacterService
}

func NewGameHandler(gameService *services.GameService, characters *services.CharacterService) *GameHandler {
	return &GameHandler{game: gameService, characters: characters}
}

func (h *GameHandler) StartEncounter(w http.ResponseWriter, r *http.Request) {
	characterID, ok := pathID(w, r, "characterId")
	if !ok {
		return
	}
	var req models.StartEncounterRequest
	_ = decodeOptional(r, &req)

	detail, err := h.game.StartEncounter(r.Context(), playerID(r), characterID, req.MonsterID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, "encounter started", detail)
}

func (h *GameHandler) SolveProblem(w http.ResponseWriter, r *http.Request) {
	encounterID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req models.SolveProblemRequest
	if !decode(w, r, &req) {
		return
	}

	result, err := h.game.SolveProblem(r.Context(), playerID(r), encounterID, &req)
	if err != nil {
		respondError(w, err)
		return
	}
	message := "incorrect answer"
	if result.Success {
		message = "correct answer"
	}
	respondOK(w, message, result)
}

func (h *GameHandler) FleeEncounter(w http.ResponseWriter, r *http.Request) {
	encounterID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	detail, err := h.game.FleeEncounter(r.Context(), playerID(r), encounterID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "fled from encounter", detail)
}

func (h *GameHandler) ActiveEncounters(w http.ResponseWriter, r *http.Request) {
	characterID, ok := pathID(w, r, "characterId")
	if !ok {
		return
	}

	encounters, err := h.game.ActiveEncounters(r.Context(), playerID(r), characterID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "", encounters)
}

func (h *GameHandler) Quests(w http.ResponseWriter, r *http.Request) {
	characterID, ok := pathID(w, r, "characterId")
	if !ok {
		return
	}

	var (
		quests []models.QuestDetail
		err    error
	)
	if r.URL.Query().Get("repeatable") == "true" {
		quests, err = h.game.RepeatableQuests(r.Context(), playerID(r), characterID)
	} else {
		quests, err = h.game.AvailableQuests(r.Context(), playerID(r), characterID)
	}
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "", quests)
}

func (h *GameHandler) ActiveQuests(w http.ResponseWriter, r *http.Request) {
	characterID, ok := pathID(w, r, "characterId")
	if !ok {
		return
	}

	quests, err := h.game.ActiveQuests(r.Context(), playerID(r), characterID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "", quests)
}

func (h *GameHandler) AcceptQuest(w http.ResponseWriter, r *http.Request) {
	characterID, ok := pathID(w, r, "characterId")
	if !ok {
		return
	}
	questID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	detail, err := h.game.AcceptQuest(r.Context(), playerID(r), characterID, questID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, "quest accepted", detail)
}

func (h *GameHandler) CompleteObjective(w http.ResponseWriter, r *http.Request) {
	characterID, ok := pathID(w, r, "characterId")
	if !ok {
		return
	}
	questID, ok := pathID(w, r, "questId")
	if !ok {
		return
	}
	objectiveID, ok := pathID(w, r, "objectiveId")
	if !ok {
		return
	}

	progress, err := h.game.CompleteObjective(r.Context(), playerID(r), characterID, questID, objectiveID)
	if err != nil {
		respondError(w, err)
		return
	}
	message := "objective completed"
	if progress.QuestCompleted {
		message = "quest completed"
	}
	respondOK(w, message, progress)
}

func (h *GameHandler) AbandonQuest(w http.ResponseWriter, r *http.Request) {
	characterID, ok := pathID(w, r, "characterId")
	if !ok {
		return
	}
	questID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.game.AbandonQuest(r.Context(), playerID(r), characterID, questID); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "quest abandoned", nil)
}

func (h *GameHandler) Inventory(w http.ResponseWriter, r *http.Request) {
	characterID, ok := pathID(w, r, "characterId")
	if !ok {
		return
	}

	entries, err := h.game.Inventory(r.Context(), playerID(r), characterID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "", entries)
}

func (h *GameHandler) UseItem(w http.ResponseWriter, r *http.Request) {
	characterID, ok := pathID(w, r, "characterId")
	if !ok {
		return
	}
	var req models.UseItemRequest
	if !decode(w, r, &req) {
		return
	}

	result, err := h.game.UseItem(r.Context(), playerID(r), characterID, req.ItemID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "item used", result)
}

func (h *GameHandler) ToggleEquip(w http.ResponseWriter, r *http.Request) {
	characterID, ok := pathID(w, r, "characterId")
	if !ok {
		return
	}
	var req models.EquipItemRequest
	if !decode(w, r, &req) {
		return
	}

	entry, err := h.game.ToggleEquip(r.Context(), playerID(r), characterID, req.ItemID)
	if err != nil {
		respondError(w, err)
		return
	}
	message := "item unequipped"
	if entry.IsEquipped {
		message = "item equipped"
	}
	respondOK(w, message, entry)
}

func (h *GameHandler) SuitableMonsters(w http.ResponseWriter, r *http.Request) {
	characterID, ok := pathID(w, r, "characterId")
	if !ok {
		return
	}

	monsters, err := h.game.SuitableMonsters(r.Context(), playerID(r), characterID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "", monsters)
}

func (h *GameHandler) SuitableProblems(w http.ResponseWriter, r *http.Request) {
	characterID, ok := pathID(w, r, "characterId")
	if !ok {
		return
	}

	problems, err := h.game.SuitableProblems(r.Context(), playerID(r), characterID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "", problems)
}

func (h *GameHandler) AttemptHistory(w http.ResponseWriter, r *http.Request) {
	characterID, ok := pathID(w, r, "characterId")
	if !ok {
		return
	}

	attempts, err := h.game.AttemptHistory(r.Context(), playerID(r), characterID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "", attempts)
}

func (h *GameHandler) Schools(w http.ResponseWriter, r *http.Request) {
	schools, err := h.characters.Schools(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "", schools)
}

func (h *GameHandler) Items(w http.ResponseWriter, r *http.Request) {
	items, err := h.game.Items(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "", items)
}

func (h *GameHandler) Monsters(w http.ResponseWriter, r *http.Request) {
	monsters, err := h.game.Monsters(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "", monsters)
}

func (h *GameHandler) CalculateExperience(w http.ResponseWriter, r *http.Request) {
	level, err := strconv.Atoi(r.URL.Query().Get("level"))
	if err != nil || level < 1 {
		respondBadRequest(w, "INVALID_LEVEL", "level must be a positive number")
		return
	}

	respondOK(w, "", map[string]int{
		"level":               level,
		"experience_required": game.ExperienceForLevel(level),
		"next_level_required": game.ExperienceForLevel(level + 1),
	})
}

func (h *GameHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := h.characters.Leaderboard(r.Context(), limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "", entries)
}
