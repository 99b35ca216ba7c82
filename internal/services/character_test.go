package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/vinifranco48/arithimancia-api/internal/apperrors"
	"github.com/vinifranco48/arithimancia-api/internal/database"
	"github.com/vinifranco48/arithimancia-api/internal/models"
	"github.com/vinifranco48/arithimancia-api/internal/storage"
)

type CharacterServiceSuite struct {
	suite.Suite

	ctx      context.Context
	db       *database.DB
	svc      *CharacterService
	playerID int64
	otherID  int64
}

func TestCharacterServiceSuite(t *testing.T) {
	suite.Run(t, new(CharacterServiceSuite))
}

func (s *CharacterServiceSuite) SetupTest() {
	db, err := database.NewDB(":memory:")
	s.Require().NoError(err)
	db.SetMaxOpenConns(1)

	s.ctx = context.Background()
	s.db = db
	s.svc = NewCharacterService(
		storage.NewCharacterRepo(db.DB),
		storage.NewSchoolRepo(db.DB),
		storage.NewInventoryRepo(db.DB),
		storage.NewQuestRepo(db.DB),
		storage.NewEncounterRepo(db.DB),
		storage.NewAttemptRepo(db.DB),
	)
	s.playerID = s.insertPlayer("owner")
	s.otherID = s.insertPlayer("rival")
}

func (s *CharacterServiceSuite) TearDownTest() {
	s.Require().NoError(s.db.Close())
}

func (s *CharacterServiceSuite) insertPlayer(username string) int64 {
	result, err := s.db.Exec(
		`INSERT INTO players (username, email, password_hash) VALUES (?, ?, 'hash')`,
		username, username+"@example.com")
	s.Require().NoError(err)
	id, err := result.LastInsertId()
	s.Require().NoError(err)
	return id
}

func (s *CharacterServiceSuite) insertSchool(healthBonus, startingGold int) int64 {
	result, err := s.db.Exec(
		`INSERT INTO schools (name, health_bonus, starting_gold) VALUES (?, ?, ?)`,
		fmt.Sprintf("School%d-%d", healthBonus, startingGold), healthBonus, startingGold)
	s.Require().NoError(err)
	id, err := result.LastInsertId()
	s.Require().NoError(err)
	return id
}

func (s *CharacterServiceSuite) TestCreateStartsWithBaseStats() {
	character, err := s.svc.Create(s.ctx, s.playerID, &models.CreateCharacterRequest{Name: "  Pythagoras  "})
	s.Require().NoError(err)

	s.Equal("Pythagoras", character.Name)
	s.Equal(1, character.Level)
	s.Equal(0, character.ExperiencePoints)
	s.Equal(100, character.MaxHealth)
	s.Equal(100, character.CurrentHealth)
	s.Equal(100, character.Gold)
}

func (s *CharacterServiceSuite) TestCreateAppliesSchoolBonuses() {
	schoolID := s.insertSchool(25, 50)

	character, err := s.svc.Create(s.ctx, s.playerID, &models.CreateCharacterRequest{
		Name:     "Euclid",
		SchoolID: &schoolID,
	})
	s.Require().NoError(err)
	s.Equal(125, character.MaxHealth)
	s.Equal(125, character.CurrentHealth)
	s.Equal(150, character.Gold)
}

func (s *CharacterServiceSuite) TestCreateValidatesName() {
	_, err := s.svc.Create(s.ctx, s.playerID, &models.CreateCharacterRequest{Name: "ab"})
	s.Require().Error(err)
	s.Equal("INVALID_CHARACTER_NAME", apperrors.CodeOf(err))
}

func (s *CharacterServiceSuite) TestCreateEnforcesLimit() {
	for i := 0; i < models.MaxCharactersPerPlayer; i++ {
		_, err := s.svc.Create(s.ctx, s.playerID, &models.CreateCharacterRequest{
			Name: fmt.Sprintf("Hero%d", i),
		})
		s.Require().NoError(err)
	}

	_, err := s.svc.Create(s.ctx, s.playerID, &models.CreateCharacterRequest{Name: "OneTooMany"})
	s.Require().Error(err)
	s.Equal("CHARACTER_LIMIT_REACHED", apperrors.CodeOf(err))

	// A different account is unaffected.
	_, err = s.svc.Create(s.ctx, s.otherID, &models.CreateCharacterRequest{Name: "OneTooMany"})
	s.Require().NoError(err)
}

func (s *CharacterServiceSuite) TestCreateRejectsDuplicateNamePerPlayer() {
	_, err := s.svc.Create(s.ctx, s.playerID, &models.CreateCharacterRequest{Name: "Hypatia"})
	s.Require().NoError(err)

	_, err = s.svc.Create(s.ctx, s.playerID, &models.CreateCharacterRequest{Name: "hypatia"})
	s.Require().Error(err)
	s.Equal("CHARACTER_NAME_TAKEN", apperrors.CodeOf(err))

	// Same name under another account is fine.
	_, err = s.svc.Create(s.ctx, s.otherID, &models.CreateCharacterRequest{Name: "Hypatia"})
	s.Require().NoError(err)
}

func (s *CharacterServiceSuite) TestOwnershipHidesForeignCharacters() {
	character, err := s.svc.Create(s.ctx, s.playerID, &models.CreateCharacterRequest{Name: "Hypatia"})
	s.Require().NoError(err)

	_, err = s.svc.Owned(s.ctx, s.otherID, character.ID)
	s.Require().Error(err)
	s.Equal("CHARACTER_NOT_FOUND", apperrors.CodeOf(err))
}

func (s *CharacterServiceSuite) TestStats() {
	character, err := s.svc.Create(s.ctx, s.playerID, &models.CreateCharacterRequest{Name: "Hypatia"})
	s.Require().NoError(err)

	stats, err := s.svc.Stats(s.ctx, s.playerID, character.ID)
	s.Require().NoError(err)

	s.Equal(100, stats.HealthPercentage)
	s.Equal(282, stats.NextLevelXP) // level 2 threshold
	s.Equal(282, stats.XPToNextLevel)
	s.Zero(stats.TotalItems)
	s.Zero(stats.WonEncounters)
}

func (s *CharacterServiceSuite) TestDeleteCascades() {
	character, err := s.svc.Create(s.ctx, s.playerID, &models.CreateCharacterRequest{Name: "Hypatia"})
	s.Require().NoError(err)

	s.Require().NoError(s.svc.Delete(s.ctx, s.playerID, character.ID))

	_, err = s.svc.Owned(s.ctx, s.playerID, character.ID)
	s.Require().Error(err)
	s.Equal("CHARACTER_NOT_FOUND", apperrors.CodeOf(err))
}
