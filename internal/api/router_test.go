package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/vinifranco48/arithimancia-api/internal/auth"
	"github.com/vinifranco48/arithimancia-api/internal/database"
	"github.com/vinifranco48/arithimancia-api/internal/game"
	"github.com/vinifranco48/arithimancia-api/internal/services"
	"github.com/vinifranco48/arithimancia-api/internal/storage"
)

// APISuite exercises the HTTP surface end to end against an in-memory
// database.
type APISuite struct {
	suite.Suite

	db        *database.DB
	blacklist *auth.MemoryBlacklist
	server    *httptest.Server
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	db, err := database.NewDB(":memory:")
	s.Require().NoError(err)
	db.SetMaxOpenConns(1)
	s.db = db

	s.blacklist = auth.NewMemoryBlacklist()
	tokens := auth.NewManager("test-secret", 15*time.Minute, 7*24*time.Hour)

	store := storage.New(db)
	engine := game.NewService(store)

	players := storage.NewPlayerRepo(db.DB)
	characters := storage.NewCharacterRepo(db.DB)
	schools := storage.NewSchoolRepo(db.DB)
	inventory := storage.NewInventoryRepo(db.DB)
	quests := storage.NewQuestRepo(db.DB)
	encounters := storage.NewEncounterRepo(db.DB)
	attempts := storage.NewAttemptRepo(db.DB)
	monsters := storage.NewMonsterRepo(db.DB)
	items := storage.NewItemRepo(db.DB)

	authService := services.NewAuthService(players, tokens, s.blacklist)
	playerService := services.NewPlayerService(players, characters)
	characterService := services.NewCharacterService(characters, schools, inventory, quests, encounters, attempts)
	gameService := services.NewGameService(engine, characterService, encounters, inventory, attempts, monsters, items)

	router := NewRouter(Handlers{
		Auth:         NewAuthHandler(authService),
		Players:      NewPlayerHandler(playerService, characterService),
		Characters:   NewCharacterHandler(characterService),
		Game:         NewGameHandler(gameService, characterService),
		TokenManager: tokens,
		Blacklist:    s.blacklist,
	})
	s.server = httptest.NewServer(router)
}

func (s *APISuite) TearDownTest() {
	s.server.Close()
	s.blacklist.Close()
	s.Require().NoError(s.db.Close())
}

func (s *APISuite) request(method, path, token string, body interface{}) (*http.Response, Response) {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, s.server.URL+path, reader)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	var envelope Response
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&envelope))
	return resp, envelope
}

func (s *APISuite) registerPlayer() string {
	resp, envelope := s.request(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": "merlin",
		"email":    "merlin@example.com",
		"password": "secret123",
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	s.Require().True(envelope.Success)

	payload := envelope.Data.(map[string]interface{})
	tokens := payload["tokens"].(map[string]interface{})
	return tokens["access_token"].(string)
}

func (s *APISuite) TestHealth() {
	resp, envelope := s.request(http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.True(envelope.Success)
}

func (s *APISuite) TestProtectedRouteRequiresToken() {
	resp, envelope := s.request(http.MethodGet, "/api/v1/characters", "", nil)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	s.False(envelope.Success)
	s.Require().NotNil(envelope.Error)
	s.Equal("MISSING_TOKEN", envelope.Error.Code)
}

func (s *APISuite) TestCharacterLifecycleOverHTTP() {
	token := s.registerPlayer()

	resp, envelope := s.request(http.MethodPost, "/api/v1/characters", token, map[string]string{
		"name": "Pythagoras",
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	s.Require().True(envelope.Success)
	created := envelope.Data.(map[string]interface{})
	s.Equal("Pythagoras", created["name"])
	s.EqualValues(1, created["level"])

	resp, envelope = s.request(http.MethodGet, "/api/v1/characters", token, nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Len(envelope.Data.([]interface{}), 1)

	// Duplicate names come back as a conflict in the error envelope.
	resp, envelope = s.request(http.MethodPost, "/api/v1/characters", token, map[string]string{
		"name": "Pythagoras",
	})
	s.Equal(http.StatusConflict, resp.StatusCode)
	s.Require().NotNil(envelope.Error)
	s.Equal("CHARACTER_NAME_TAKEN", envelope.Error.Code)
}

func (s *APISuite) TestLogoutRevokesAccessToken() {
	token := s.registerPlayer()

	resp, _ := s.request(http.MethodPost, "/api/v1/auth/logout", token, map[string]string{})
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	resp, envelope := s.request(http.MethodGet, "/api/v1/auth/me", token, nil)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	s.Require().NotNil(envelope.Error)
	s.Equal("TOKEN_REVOKED", envelope.Error.Code)
}

func (s *APISuite) TestExperienceCalculator() {
	token := s.registerPlayer()

	resp, envelope := s.request(http.MethodGet, "/api/v1/game/experience/calculate?level=10", token, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	data := envelope.Data.(map[string]interface{})
	s.EqualValues(3162, data["experience_required"])
	s.EqualValues(3648, data["next_level_required"])
}
