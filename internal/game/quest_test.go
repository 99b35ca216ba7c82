package game_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/vinifranco48/arithimancia-api/internal/apperrors"
	"github.com/vinifranco48/arithimancia-api/internal/models"
)

type QuestSuite struct {
	EngineSuite
}

func TestQuestSuite(t *testing.T) {
	suite.Run(t, new(QuestSuite))
}

func (s *QuestSuite) TestAcceptQuest() {
	characterID := s.createCharacter(3, 0, 100, 100, 100)
	questID, _ := s.createQuest(questSpec{minLevel: 2, objectives: 2})

	detail, err := s.svc.AcceptQuest(s.ctx, characterID, questID)
	s.Require().NoError(err)

	s.Equal(models.QuestActive, detail.Status)
	s.Equal(0, detail.CurrentObjectiveIndex)
	s.Require().NotNil(detail.Quest)
	s.Len(detail.Quest.Objectives, 2)
}

func (s *QuestSuite) TestAcceptRequiresLevel() {
	characterID := s.createCharacter(1, 0, 100, 100, 100)
	questID, _ := s.createQuest(questSpec{minLevel: 5, objectives: 1})

	_, err := s.svc.AcceptQuest(s.ctx, characterID, questID)
	s.Require().Error(err)
	s.Equal("LEVEL_TOO_LOW", apperrors.CodeOf(err))
}

func (s *QuestSuite) TestAcceptTwiceConflicts() {
	characterID := s.createCharacter(3, 0, 100, 100, 100)
	questID, _ := s.createQuest(questSpec{minLevel: 1, objectives: 1})

	_, err := s.svc.AcceptQuest(s.ctx, characterID, questID)
	s.Require().NoError(err)

	_, err = s.svc.AcceptQuest(s.ctx, characterID, questID)
	s.Require().Error(err)
	s.Equal("QUEST_ALREADY_ACTIVE", apperrors.CodeOf(err))
}

func (s *QuestSuite) completeQuest(characterID, questID int64, objectiveIDs []int64) {
	for _, objectiveID := range objectiveIDs {
		_, err := s.svc.CompleteObjective(s.ctx, characterID, questID, objectiveID)
		s.Require().NoError(err)
	}
}

func (s *QuestSuite) TestAcceptCompletedNonRepeatableConflicts() {
	characterID := s.createCharacter(3, 0, 100, 100, 100)
	questID, objectives := s.createQuest(questSpec{minLevel: 1, experienceReward: 10, objectives: 1})

	_, err := s.svc.AcceptQuest(s.ctx, characterID, questID)
	s.Require().NoError(err)
	s.completeQuest(characterID, questID, objectives)

	_, err = s.svc.AcceptQuest(s.ctx, characterID, questID)
	s.Require().Error(err)
	s.Equal("QUEST_ALREADY_COMPLETED", apperrors.CodeOf(err))
}

func (s *QuestSuite) TestAcceptCompletedRepeatableRestarts() {
	characterID := s.createCharacter(3, 0, 100, 100, 100)
	questID, objectives := s.createQuest(questSpec{minLevel: 1, experienceReward: 10, repeatable: true, objectives: 2})

	_, err := s.svc.AcceptQuest(s.ctx, characterID, questID)
	s.Require().NoError(err)
	s.completeQuest(characterID, questID, objectives)

	detail, err := s.svc.AcceptQuest(s.ctx, characterID, questID)
	s.Require().NoError(err)
	s.Equal(models.QuestActive, detail.Status)
	s.Equal(0, detail.CurrentObjectiveIndex)
	s.Nil(detail.CompletedAt)
}

func (s *QuestSuite) TestObjectivesMustBeCompletedInOrder() {
	characterID := s.createCharacter(3, 0, 100, 100, 100)
	questID, objectives := s.createQuest(questSpec{minLevel: 1, objectives: 3})

	_, err := s.svc.AcceptQuest(s.ctx, characterID, questID)
	s.Require().NoError(err)

	_, err = s.svc.CompleteObjective(s.ctx, characterID, questID, objectives[1])
	s.Require().Error(err)
	s.Equal("OBJECTIVE_OUT_OF_ORDER", apperrors.CodeOf(err))

	progress, err := s.svc.CompleteObjective(s.ctx, characterID, questID, objectives[0])
	s.Require().NoError(err)
	s.True(progress.ObjectiveCompleted)
	s.False(progress.QuestCompleted)
	s.Equal(1, progress.CurrentObjectiveIndex)
	s.Zero(progress.ExperienceGained) // rewards only land at the end
	s.Zero(progress.GoldGained)
}

func (s *QuestSuite) TestLastObjectivePaysEverythingOut() {
	characterID := s.createCharacter(3, 0, 100, 100, 100)
	itemID := s.createItem(models.ItemTypeEquipment, 0, false)
	questID, objectives := s.createQuest(questSpec{
		minLevel:         1,
		experienceReward: 120,
		goldReward:       40,
		itemRewardID:     &itemID,
		objectives:       2,
	})

	_, err := s.svc.AcceptQuest(s.ctx, characterID, questID)
	s.Require().NoError(err)

	_, err = s.svc.CompleteObjective(s.ctx, characterID, questID, objectives[0])
	s.Require().NoError(err)

	progress, err := s.svc.CompleteObjective(s.ctx, characterID, questID, objectives[1])
	s.Require().NoError(err)

	s.True(progress.ObjectiveCompleted)
	s.True(progress.QuestCompleted)
	s.Equal(120, progress.ExperienceGained)
	s.Equal(40, progress.GoldGained)
	s.Require().NotNil(progress.ItemRewarded)
	s.Equal(itemID, progress.ItemRewarded.ID)

	character, err := s.store.Characters().Find(s.ctx, characterID)
	s.Require().NoError(err)
	s.Equal(140, character.Gold)
	s.Equal(120, character.ExperiencePoints)

	entry, err := s.store.Inventory().Entry(s.ctx, characterID, itemID)
	s.Require().NoError(err)
	s.Require().NotNil(entry)
	s.Equal(1, entry.Quantity)
}

func (s *QuestSuite) TestCompleteObjectiveWithoutProgressRow() {
	characterID := s.createCharacter(3, 0, 100, 100, 100)
	questID, objectives := s.createQuest(questSpec{minLevel: 1, objectives: 1})

	_, err := s.svc.CompleteObjective(s.ctx, characterID, questID, objectives[0])
	s.Require().Error(err)
	s.Equal("QUEST_NOT_STARTED", apperrors.CodeOf(err))
	s.Equal(apperrors.KindNotFound, apperrors.KindOf(err))
}

func (s *QuestSuite) TestCompleteObjectiveOnInactiveQuest() {
	characterID := s.createCharacter(3, 0, 100, 100, 100)
	questID, objectives := s.createQuest(questSpec{minLevel: 1, objectives: 2})

	_, err := s.svc.AcceptQuest(s.ctx, characterID, questID)
	s.Require().NoError(err)
	s.Require().NoError(s.svc.AbandonQuest(s.ctx, characterID, questID))

	// The row still exists, it just is not ACTIVE: that is a bad request,
	// not a missing resource.
	_, err = s.svc.CompleteObjective(s.ctx, characterID, questID, objectives[0])
	s.Require().Error(err)
	s.Equal("QUEST_NOT_ACTIVE", apperrors.CodeOf(err))
	s.Equal(apperrors.KindInvalid, apperrors.KindOf(err))

	err = s.svc.AbandonQuest(s.ctx, characterID, questID)
	s.Require().Error(err)
	s.Equal("QUEST_NOT_ACTIVE", apperrors.CodeOf(err))
	s.Equal(apperrors.KindInvalid, apperrors.KindOf(err))
}

func (s *QuestSuite) TestAbandonAndReaccept() {
	characterID := s.createCharacter(3, 0, 100, 100, 100)
	questID, objectives := s.createQuest(questSpec{minLevel: 1, objectives: 2})

	_, err := s.svc.AcceptQuest(s.ctx, characterID, questID)
	s.Require().NoError(err)
	_, err = s.svc.CompleteObjective(s.ctx, characterID, questID, objectives[0])
	s.Require().NoError(err)

	s.Require().NoError(s.svc.AbandonQuest(s.ctx, characterID, questID))

	active, err := s.svc.ActiveQuests(s.ctx, characterID)
	s.Require().NoError(err)
	s.Empty(active)

	// Re-accepting starts over from the first objective.
	detail, err := s.svc.AcceptQuest(s.ctx, characterID, questID)
	s.Require().NoError(err)
	s.Equal(0, detail.CurrentObjectiveIndex)
}

func (s *QuestSuite) TestAvailableQuestsFilter() {
	characterID := s.createCharacter(3, 0, 100, 100, 100)
	lowID, _ := s.createQuest(questSpec{minLevel: 1, objectives: 1})
	s.createQuest(questSpec{minLevel: 8, objectives: 1}) // above level
	activeID, _ := s.createQuest(questSpec{minLevel: 1, objectives: 1})

	_, err := s.svc.AcceptQuest(s.ctx, characterID, activeID)
	s.Require().NoError(err)

	available, err := s.svc.AvailableQuests(s.ctx, characterID)
	s.Require().NoError(err)
	s.Require().Len(available, 1)
	s.Equal(lowID, available[0].ID)
}

func (s *QuestSuite) TestRepeatableQuestsListsCompletedOnes() {
	characterID := s.createCharacter(3, 0, 100, 100, 100)
	questID, objectives := s.createQuest(questSpec{minLevel: 1, experienceReward: 10, repeatable: true, objectives: 1})

	repeatable, err := s.svc.RepeatableQuests(s.ctx, characterID)
	s.Require().NoError(err)
	s.Empty(repeatable)

	_, err = s.svc.AcceptQuest(s.ctx, characterID, questID)
	s.Require().NoError(err)
	s.completeQuest(characterID, questID, objectives)

	repeatable, err = s.svc.RepeatableQuests(s.ctx, characterID)
	s.Require().NoError(err)
	s.Require().Len(repeatable, 1)
	s.Equal(questID, repeatable[0].ID)
}
