package game

import (
	"context"

	"github.com/vinifranco48/arithimancia-api/internal/apperrors"
	"github.com/vinifranco48/arithimancia-api/internal/models"
)

// QuestProgress is the outcome of completing an objective. Rewards are only
// set when the final objective was just completed.
type QuestProgress struct {
	ObjectiveCompleted    bool           `json:"objective_completed"`
	QuestCompleted        bool           `json:"quest_completed"`
	CurrentObjectiveIndex int            `json:"current_objective_index"`
	ExperienceGained      int            `json:"experience_gained"`
	GoldGained            int            `json:"gold_gained"`
	ItemRewarded          *models.Item   `json:"item_rewarded,omitempty"`
	LevelUp               *LevelUpResult `json:"level_up,omitempty"`
}

// AvailableQuests lists quests the character can accept right now: level
// requirement met and no ACTIVE or blocking COMPLETED progress.
func (s *Service) AvailableQuests(ctx context.Context, characterID int64) ([]models.QuestDetail, error) {
	character, err := s.store.Characters().Find(ctx, characterID)
	if err != nil {
		return nil, err
	}
	if character == nil {
		return nil, apperrors.NotFound("CHARACTER_NOT_FOUND", "character not found")
	}
	return s.store.Quests().AvailableForCharacter(ctx, characterID, character.Level)
}

// RepeatableQuests lists repeatable quests the character has already
// completed and can take again.
func (s *Service) RepeatableQuests(ctx context.Context, characterID int64) ([]models.QuestDetail, error) {
	character, err := s.store.Characters().Find(ctx, characterID)
	if err != nil {
		return nil, err
	}
	if character == nil {
		return nil, apperrors.NotFound("CHARACTER_NOT_FOUND", "character not found")
	}
	return s.store.Quests().RepeatableForCharacter(ctx, characterID, character.Level)
}

// AcceptQuest starts the quest for the character. A completed repeatable
// quest is reset to ACTIVE from objective zero rather than duplicated.
func (s *Service) AcceptQuest(ctx context.Context, characterID, questID int64) (*models.CharacterQuestDetail, error) {
	var detail *models.CharacterQuestDetail
	err := s.store.Transact(ctx, func(st Store) error {
		character, err := st.Characters().Find(ctx, characterID)
		if err != nil {
			return err
		}
		if character == nil {
			return apperrors.NotFound("CHARACTER_NOT_FOUND", "character not found")
		}

		quest, err := st.Quests().Find(ctx, questID)
		if err != nil {
			return err
		}
		if quest == nil {
			return apperrors.NotFound("QUEST_NOT_FOUND", "quest not found")
		}
		if character.Level < quest.MinLevel {
			return apperrors.Invalid("LEVEL_TOO_LOW", "character level is too low for this quest")
		}

		progress, err := st.Quests().Progress(ctx, characterID, questID)
		if err != nil {
			return err
		}
		switch {
		case progress == nil:
			progress, err = st.Quests().CreateProgress(ctx, characterID, questID)
		case progress.Status == models.QuestActive:
			return apperrors.Conflict("QUEST_ALREADY_ACTIVE", "quest is already active")
		case progress.Status == models.QuestCompleted && !quest.IsRepeatable:
			return apperrors.Conflict("QUEST_ALREADY_COMPLETED", "quest has already been completed")
		default:
			// COMPLETED repeatable, or a previously abandoned run.
			progress, err = st.Quests().ReactivateProgress(ctx, characterID, questID)
		}
		if err != nil {
			return err
		}

		detail = &models.CharacterQuestDetail{CharacterQuest: *progress, Quest: quest}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

// CompleteObjective advances the quest by one objective. Objectives must be
// completed strictly in order; completing the last one finishes the quest
// and pays out gold, the optional item and experience together.
func (s *Service) CompleteObjective(ctx context.Context, characterID, questID, objectiveID int64) (*QuestProgress, error) {
	var result *QuestProgress
	err := s.store.Transact(ctx, func(st Store) error {
		progress, err := st.Quests().Progress(ctx, characterID, questID)
		if err != nil {
			return err
		}
		if progress == nil {
			return apperrors.NotFound("QUEST_NOT_STARTED", "quest has not been accepted by this character")
		}
		if progress.Status != models.QuestActive {
			return apperrors.Invalid("QUEST_NOT_ACTIVE", "quest is not active for this character")
		}

		quest, err := st.Quests().Find(ctx, questID)
		if err != nil {
			return err
		}
		if quest == nil {
			return apperrors.NotFound("QUEST_NOT_FOUND", "quest not found")
		}
		if progress.CurrentObjectiveIndex >= len(quest.Objectives) {
			return apperrors.Conflict("QUEST_ALREADY_COMPLETED", "all objectives are already complete")
		}

		expected := quest.Objectives[progress.CurrentObjectiveIndex]
		if expected.ID != objectiveID {
			return apperrors.Invalid("OBJECTIVE_OUT_OF_ORDER", "objectives must be completed in order")
		}

		isLast := progress.CurrentObjectiveIndex == len(quest.Objectives)-1
		nextIndex := progress.CurrentObjectiveIndex + 1

		if !isLast {
			if err := st.Quests().UpdateProgress(ctx, characterID, questID, models.CharacterQuestPatch{
				CurrentObjectiveIndex: &nextIndex,
			}); err != nil {
				return err
			}
			result = &QuestProgress{
				ObjectiveCompleted:    true,
				CurrentObjectiveIndex: nextIndex,
			}
			return nil
		}

		completed := models.QuestCompleted
		completedAt := s.now()
		if err := st.Quests().UpdateProgress(ctx, characterID, questID, models.CharacterQuestPatch{
			Status:                &completed,
			CurrentObjectiveIndex: &nextIndex,
			CompletedAt:           &completedAt,
		}); err != nil {
			return err
		}

		character, err := st.Characters().Find(ctx, characterID)
		if err != nil {
			return err
		}
		if character == nil {
			return apperrors.NotFound("CHARACTER_NOT_FOUND", "character not found")
		}

		if quest.GoldReward > 0 {
			gold := character.Gold + quest.GoldReward
			if err := st.Characters().Update(ctx, characterID, models.CharacterPatch{Gold: &gold}); err != nil {
				return err
			}
		}

		var itemRewarded *models.Item
		if quest.ItemRewardID != nil {
			itemRewarded, err = st.Items().Find(ctx, *quest.ItemRewardID)
			if err != nil {
				return err
			}
			if itemRewarded != nil {
				if err := st.Inventory().Add(ctx, characterID, itemRewarded.ID, 1); err != nil {
					return err
				}
			}
		}

		var levelUp *LevelUpResult
		if quest.ExperienceReward > 0 {
			levelUp, err = s.gainExperience(ctx, st, characterID, quest.ExperienceReward)
			if err != nil {
				return err
			}
		}

		result = &QuestProgress{
			ObjectiveCompleted:    true,
			QuestCompleted:        true,
			CurrentObjectiveIndex: nextIndex,
			ExperienceGained:      quest.ExperienceReward,
			GoldGained:            quest.GoldReward,
			ItemRewarded:          itemRewarded,
			LevelUp:               levelUp,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ActiveQuests lists the character's in-progress quests with their quest
// data attached.
func (s *Service) ActiveQuests(ctx context.Context, characterID int64) ([]models.CharacterQuestDetail, error) {
	character, err := s.store.Characters().Find(ctx, characterID)
	if err != nil {
		return nil, err
	}
	if character == nil {
		return nil, apperrors.NotFound("CHARACTER_NOT_FOUND", "character not found")
	}
	return s.store.Quests().ActiveByCharacter(ctx, characterID)
}

// AbandonQuest marks an active quest ABANDONED. Progress is kept so a later
// re-accept restarts from objective zero.
func (s *Service) AbandonQuest(ctx context.Context, characterID, questID int64) error {
	return s.store.Transact(ctx, func(st Store) error {
		progress, err := st.Quests().Progress(ctx, characterID, questID)
		if err != nil {
			return err
		}
		if progress == nil {
			return apperrors.NotFound("QUEST_NOT_STARTED", "quest has not been accepted by this character")
		}
		if progress.Status != models.QuestActive {
			return apperrors.Invalid("QUEST_NOT_ACTIVE", "quest is not active for this character")
		}

		abandoned := models.QuestAbandoned
		return st.Quests().UpdateProgress(ctx, characterID, questID, models.CharacterQuestPatch{
			Status: &abandoned,
		})
	})
}
