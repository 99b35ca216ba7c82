package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vinifranco48/arithimancia-api/internal/auth"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth       *AuthHandler
	Players    *PlayerHandler
	Characters *CharacterHandler
	Game       *GameHandler

	TokenManager *auth.Manager
	Blacklist    auth.Blacklist
}

// NewRouter wires all routes under /api/v1. Auth endpoints other than logout
// and me are public; everything else requires a valid access token.
func NewRouter(h Handlers) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/health", healthCheck).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()
	requireAuth := auth.Middleware(h.TokenManager, h.Blacklist, respondUnauthorized)

	public := api.PathPrefix("/auth").Subrouter()
	public.HandleFunc("/register", h.Auth.Register).Methods("POST")
	public.HandleFunc("/login", h.Auth.Login).Methods("POST")
	public.HandleFunc("/refresh", h.Auth.Refresh).Methods("POST")

	account := api.PathPrefix("/auth").Subrouter()
	account.Use(requireAuth)
	account.HandleFunc("/logout", h.Auth.Logout).Methods("POST")
	account.HandleFunc("/me", h.Auth.Me).Methods("GET")

	players := api.PathPrefix("/players").Subrouter()
	players.Use(requireAuth)
	players.HandleFunc("/profile", h.Players.Profile).Methods("GET")
	players.HandleFunc("/profile", h.Players.UpdateProfile).Methods("PUT")
	players.HandleFunc("/password", h.Players.ChangePassword).Methods("PUT")
	players.HandleFunc("/account", h.Players.DeleteAccount).Methods("DELETE")
	players.HandleFunc("/characters", h.Players.Characters).Methods("GET")

	characters := api.PathPrefix("/characters").Subrouter()
	characters.Use(requireAuth)
	characters.HandleFunc("", h.Characters.Create).Methods("POST")
	characters.HandleFunc("", h.Characters.List).Methods("GET")
	characters.HandleFunc("/{id:[0-9]+}", h.Characters.Get).Methods("GET")
	characters.HandleFunc("/{id:[0-9]+}", h.Characters.Update).Methods("PUT")
	characters.HandleFunc("/{id:[0-9]+}", h.Characters.Delete).Methods("DELETE")
	characters.HandleFunc("/{id:[0-9]+}/stats", h.Characters.Stats).Methods("GET")

	game := api.PathPrefix("/game").Subrouter()
	game.Use(requireAuth)
	game.HandleFunc("/characters/{characterId:[0-9]+}/encounters", h.Game.StartEncounter).Methods("POST")
	game.HandleFunc("/characters/{characterId:[0-9]+}/encounters/active", h.Game.ActiveEncounters).Methods("GET")
	game.HandleFunc("/encounters/{id:[0-9]+}/solve", h.Game.SolveProblem).Methods("POST")
	game.HandleFunc("/encounters/{id:[0-9]+}/flee", h.Game.FleeEncounter).Methods("POST")

	game.HandleFunc("/characters/{characterId:[0-9]+}/quests", h.Game.Quests).Methods("GET")
	game.HandleFunc("/characters/{characterId:[0-9]+}/quests/active", h.Game.ActiveQuests).Methods("GET")
	game.HandleFunc("/characters/{characterId:[0-9]+}/quests/{id:[0-9]+}/accept", h.Game.AcceptQuest).Methods("POST")
	game.HandleFunc("/characters/{characterId:[0-9]+}/quests/{questId:[0-9]+}/objectives/{objectiveId:[0-9]+}/complete", h.Game.CompleteObjective).Methods("POST")
	game.HandleFunc("/characters/{characterId:[0-9]+}/quests/{id:[0-9]+}/abandon", h.Game.AbandonQuest).Methods("POST")

	game.HandleFunc("/characters/{characterId:[0-9]+}/inventory", h.Game.Inventory).Methods("GET")
	game.HandleFunc("/characters/{characterId:[0-9]+}/inventory/use", h.Game.UseItem).Methods("POST")
	game.HandleFunc("/characters/{characterId:[0-9]+}/inventory/equip", h.Game.ToggleEquip).Methods("POST")

	game.HandleFunc("/characters/{characterId:[0-9]+}/monsters", h.Game.SuitableMonsters).Methods("GET")
	game.HandleFunc("/characters/{characterId:[0-9]+}/problems", h.Game.SuitableProblems).Methods("GET")
	game.HandleFunc("/characters/{characterId:[0-9]+}/attempts", h.Game.AttemptHistory).Methods("GET")

	game.HandleFunc("/schools", h.Game.Schools).Methods("GET")
	game.HandleFunc("/items", h.Game.Items).Methods("GET")
	game.HandleFunc("/monsters", h.Game.Monsters).Methods("GET")
	game.HandleFunc("/experience/calculate", h.Game.CalculateExperience).Methods("GET")
	game.HandleFunc("/leaderboard", h.Game.Leaderboard).Methods("GET")

	return router
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	respondOK(w, "ok", nil)
}
