package game_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/vinifranco48/arithimancia-api/internal/apperrors"
	"github.com/vinifranco48/arithimancia-api/internal/models"
)

type EncounterSuite struct {
	EngineSuite
}

func TestEncounterSuite(t *testing.T) {
	suite.Run(t, new(EncounterSuite))
}

func (s *EncounterSuite) TestStartPicksFromDifficultyWindow() {
	characterID := s.createCharacter(3, 0, 100, 100, 100)
	monsterID := s.createMonster(4, 50, 30, 10) // within [2, 5]
	s.createMonster(9, 200, 100, 50)            // outside the window
	problemID := s.createProblem(3, "42", 15) // within [2, 4]
	s.createProblem(8, "99", 40)              // outside the window

	detail, err := s.svc.StartEncounter(s.ctx, characterID, nil)
	s.Require().NoError(err)

	s.Equal(models.EncounterInProgress, detail.Status)
	s.Equal(monsterID, detail.MonsterID)
	s.Equal(problemID, detail.ProblemID)
	s.Equal(50, detail.MonsterCurrentHealth)
	s.Equal(100, detail.CharacterHealthAtStart)
	s.Require().NotNil(detail.Problem)
	s.Require().NotNil(detail.Monster)
}

func (s *EncounterSuite) TestStartFailsWithoutSuitableMonster() {
	characterID := s.createCharacter(1, 0, 100, 100, 100)
	s.createProblem(1, "7", 10)

	_, err := s.svc.StartEncounter(s.ctx, characterID, nil)
	s.Require().Error(err)
	s.Equal("NO_SUITABLE_MONSTER", apperrors.CodeOf(err))
}

func (s *EncounterSuite) TestStartFailsWithoutSuitableProblem() {
	characterID := s.createCharacter(1, 0, 100, 100, 100)
	s.createMonster(1, 30, 20, 5)

	_, err := s.svc.StartEncounter(s.ctx, characterID, nil)
	s.Require().Error(err)
	s.Equal("NO_SUITABLE_PROBLEM", apperrors.CodeOf(err))
}

func (s *EncounterSuite) TestStartAcceptsExplicitMonsterAboveWindow() {
	characterID := s.createCharacter(1, 0, 100, 100, 100)
	monsterID := s.createMonster(9, 300, 150, 80)
	s.createProblem(1, "7", 10)

	detail, err := s.svc.StartEncounter(s.ctx, characterID, &monsterID)
	s.Require().NoError(err)
	s.Equal(monsterID, detail.MonsterID)
}

func (s *EncounterSuite) startEncounter(characterID int64) int64 {
	detail, err := s.svc.StartEncounter(s.ctx, characterID, nil)
	s.Require().NoError(err)
	return detail.ID
}

func (s *EncounterSuite) TestSolveCorrectAnswerWins() {
	characterID := s.createCharacter(3, 0, 100, 100, 100)
	s.createMonster(3, 50, 30, 12)
	s.createProblem(3, "42", 15)
	encounterID := s.startEncounter(characterID)

	result, err := s.svc.SolveProblem(s.ctx, encounterID, " 42 ", nil)
	s.Require().NoError(err)

	s.True(result.Success)
	s.Equal(45, result.ExperienceGained) // monster 30 + problem 15
	s.Equal(12, result.GoldGained)
	s.Equal(models.EncounterWon, result.Encounter.Status)
	s.Require().NotNil(result.Encounter.CompletedAt)

	s.Equal(112, result.Encounter.Character.Gold)
	s.Equal(1, s.attemptCount(characterID))
}

func (s *EncounterSuite) TestSolveIsCaseAndSpaceInsensitive() {
	characterID := s.createCharacter(3, 0, 100, 100, 100)
	s.createMonster(3, 50, 30, 12)
	s.createProblem(3, "x=3,y=1", 15)
	encounterID := s.startEncounter(characterID)

	result, err := s.svc.SolveProblem(s.ctx, encounterID, "  X=3,Y=1  ", nil)
	s.Require().NoError(err)
	s.True(result.Success)
}

func (s *EncounterSuite) TestSolveWrongAnswerLosesAndHurts() {
	characterID := s.createCharacter(3, 0, 100, 100, 100)
	s.createMonster(3, 50, 30, 12)
	s.createProblem(3, "42", 15)
	encounterID := s.startEncounter(characterID)

	result, err := s.svc.SolveProblem(s.ctx, encounterID, "41", nil)
	s.Require().NoError(err)

	s.False(result.Success)
	s.Equal(0, result.ExperienceGained)
	s.Equal(models.EncounterLost, result.Encounter.Status)

	current, _ := s.characterHealth(characterID)
	s.Equal(75, current) // quarter of max health lost
	s.Equal(1, s.attemptCount(characterID))
}

func (s *EncounterSuite) TestSolveWrongAnswerNeverKills() {
	characterID := s.createCharacter(3, 0, 100, 10, 100)
	s.createMonster(3, 50, 30, 12)
	s.createProblem(3, "42", 15)
	encounterID := s.startEncounter(characterID)

	_, err := s.svc.SolveProblem(s.ctx, encounterID, "wrong", nil)
	s.Require().NoError(err)

	current, _ := s.characterHealth(characterID)
	s.Equal(1, current)
}

func (s *EncounterSuite) TestSolveFinishedEncounterConflicts() {
	characterID := s.createCharacter(3, 0, 100, 100, 100)
	s.createMonster(3, 50, 30, 12)
	s.createProblem(3, "42", 15)
	encounterID := s.startEncounter(characterID)

	_, err := s.svc.SolveProblem(s.ctx, encounterID, "42", nil)
	s.Require().NoError(err)

	_, err = s.svc.SolveProblem(s.ctx, encounterID, "42", nil)
	s.Require().Error(err)
	s.Equal("ENCOUNTER_ALREADY_FINISHED", apperrors.CodeOf(err))
	s.Equal(apperrors.KindConflict, apperrors.KindOf(err))
	s.Equal(1, s.attemptCount(characterID)) // no attempt logged for the replay
}

func (s *EncounterSuite) TestSolveWinCanLevelUp() {
	characterID := s.createCharacter(1, 90, 100, 100, 100)
	s.createMonster(1, 30, 200, 5)
	s.createProblem(1, "7", 10)
	encounterID := s.startEncounter(characterID)

	result, err := s.svc.SolveProblem(s.ctx, encounterID, "7", nil)
	s.Require().NoError(err)

	s.Require().NotNil(result.LevelUp)
	s.True(result.LevelUp.LeveledUp)
	s.Equal(2, *result.LevelUp.NewLevel) // 90 + 210 = 300, past the 282 threshold
	s.Equal(2, result.Encounter.Character.Level)
	s.Equal(120, result.Encounter.Character.MaxHealth)
}

func (s *EncounterSuite) TestFleeCostsTenthOfMaxHealth() {
	characterID := s.createCharacter(3, 0, 100, 50, 100)
	s.createMonster(3, 50, 30, 12)
	s.createProblem(3, "42", 15)
	encounterID := s.startEncounter(characterID)

	detail, err := s.svc.FleeEncounter(s.ctx, encounterID)
	s.Require().NoError(err)

	s.Equal(models.EncounterFled, detail.Status)
	current, _ := s.characterHealth(characterID)
	s.Equal(40, current)
	s.Equal(0, s.attemptCount(characterID)) // fleeing logs nothing
}

func (s *EncounterSuite) TestFleeFinishedEncounterConflicts() {
	characterID := s.createCharacter(3, 0, 100, 100, 100)
	s.createMonster(3, 50, 30, 12)
	s.createProblem(3, "42", 15)
	encounterID := s.startEncounter(characterID)

	_, err := s.svc.FleeEncounter(s.ctx, encounterID)
	s.Require().NoError(err)

	_, err = s.svc.FleeEncounter(s.ctx, encounterID)
	s.Require().Error(err)
	s.Equal("ENCOUNTER_ALREADY_FINISHED", apperrors.CodeOf(err))
}

func (s *EncounterSuite) TestActiveEncountersOnlyInProgress() {
	characterID := s.createCharacter(3, 0, 100, 100, 100)
	s.createMonster(3, 50, 30, 12)
	s.createProblem(3, "42", 15)

	first := s.startEncounter(characterID)
	_, err := s.svc.FleeEncounter(s.ctx, first)
	s.Require().NoError(err)
	second := s.startEncounter(characterID)

	active, err := s.svc.ActiveEncounters(s.ctx, characterID)
	s.Require().NoError(err)
	s.Require().Len(active, 1)
	s.Equal(second, active[0].ID)
}
