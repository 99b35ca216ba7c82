package game

import (
	"context"
	"strings"

	"github.com/vinifranco48/arithimancia-api/internal/apperrors"
	"github.com/vinifranco48/arithimancia-api/internal/models"
)

// Damage taken as a fraction of max health. Both penalties floor the
// character at 1 HP; an encounter can never kill outright.
const (
	lossHealthPenalty = 0.25
	fleeHealthPenalty = 0.1
)

// EncounterResult is the outcome of a solve attempt.
type EncounterResult struct {
	Success          bool                    `json:"success"`
	ExperienceGained int                     `json:"experience_gained"`
	GoldGained       int                     `json:"gold_gained"`
	LevelUp          *LevelUpResult          `json:"level_up,omitempty"`
	Encounter        *models.EncounterDetail `json:"encounter"`
}

// monsterLevelRange is the difficulty window for automatic monster
// selection: [level-1, level+2], floored at 1.
func monsterLevelRange(level int) (int, int) {
	return max(1, level-1), level + 2
}

// problemLevelRange is the difficulty window for problem selection:
// [level-1, level+1], floored at 1.
func problemLevelRange(level int) (int, int) {
	return max(1, level-1), level + 1
}

// StartEncounter creates an IN_PROGRESS encounter for the character. When
// monsterID is nil a monster is picked uniformly at random from the
// character's difficulty window; an explicit monster is accepted without a
// suitability re-check. The problem is always picked at random.
func (s *Service) StartEncounter(ctx context.Context, characterID int64, monsterID *int64) (*models.EncounterDetail, error) {
	var detail *models.EncounterDetail
	err := s.store.Transact(ctx, func(st Store) error {
		character, err := st.Characters().Find(ctx, characterID)
		if err != nil {
			return err
		}
		if character == nil {
			return apperrors.NotFound("CHARACTER_NOT_FOUND", "character not found")
		}

		var monster *models.Monster
		if monsterID != nil {
			monster, err = st.Monsters().Find(ctx, *monsterID)
			if err != nil {
				return err
			}
			if monster == nil {
				return apperrors.NotFound("MONSTER_NOT_FOUND", "monster not found")
			}
		} else {
			minLevel, maxLevel := monsterLevelRange(character.Level)
			monsters, err := st.Monsters().SuitableForLevel(ctx, minLevel, maxLevel)
			if err != nil {
				return err
			}
			if len(monsters) == 0 {
				return apperrors.Invalid("NO_SUITABLE_MONSTER", "no suitable monster found for your level")
			}
			monster = &monsters[s.rng.Intn(len(monsters))]
		}

		minLevel, maxLevel := problemLevelRange(character.Level)
		problems, err := st.Problems().SuitableForLevel(ctx, minLevel, maxLevel)
		if err != nil {
			return err
		}
		if len(problems) == 0 {
			return apperrors.Invalid("NO_SUITABLE_PROBLEM", "no suitable problem found for your level")
		}
		problem := &problems[s.rng.Intn(len(problems))]

		encounter := &models.Encounter{
			CharacterID:            character.ID,
			MonsterID:              monster.ID,
			ProblemID:              problem.ID,
			Status:                 models.EncounterInProgress,
			MonsterCurrentHealth:   monster.BaseHealth,
			CharacterHealthAtStart: character.CurrentHealth,
			StartedAt:              s.now(),
		}
		id, err := st.Encounters().Create(ctx, encounter)
		if err != nil {
			return err
		}
		encounter.ID = id

		detail = &models.EncounterDetail{
			Encounter: *encounter,
			Monster:   monster,
			Problem:   problem,
			Character: character,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

// NormalizeAnswer trims whitespace and lowercases; correctness is exact
// string equality after this, never numeric equivalence.
func NormalizeAnswer(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}

// SolveProblem resolves an in-progress encounter with the submitted answer.
// The attempt is logged whatever the outcome. A correct answer wins the
// encounter and pays out monster gold plus monster and problem experience; a
// wrong answer loses it and costs a quarter of max health, floored at 1 HP.
func (s *Service) SolveProblem(ctx context.Context, encounterID int64, answer string, timeTaken *int) (*EncounterResult, error) {
	var result *EncounterResult
	err := s.store.Transact(ctx, func(st Store) error {
		encounter, err := st.Encounters().Find(ctx, encounterID)
		if err != nil {
			return err
		}
		if encounter == nil {
			return apperrors.NotFound("ENCOUNTER_NOT_FOUND", "encounter not found")
		}
		if encounter.Status != models.EncounterInProgress {
			return apperrors.Conflict("ENCOUNTER_ALREADY_FINISHED", "this encounter has already finished")
		}

		character, err := st.Characters().Find(ctx, encounter.CharacterID)
		if err != nil {
			return err
		}
		monster, err := st.Monsters().Find(ctx, encounter.MonsterID)
		if err != nil {
			return err
		}
		problem, err := st.Problems().Find(ctx, encounter.ProblemID)
		if err != nil {
			return err
		}
		if character == nil || monster == nil || problem == nil {
			return apperrors.NotFound("ENCOUNTER_NOT_FOUND", "encounter references missing data")
		}

		isCorrect := NormalizeAnswer(answer) == NormalizeAnswer(problem.Answer)

		attempt := &models.ProblemAttempt{
			CharacterID:      character.ID,
			ProblemID:        problem.ID,
			UserAnswer:       answer,
			IsCorrect:        isCorrect,
			TimeTakenSeconds: timeTaken,
			AttemptedAt:      s.now(),
		}
		if _, err := st.Attempts().Create(ctx, attempt); err != nil {
			return err
		}

		experienceGained := 0
		goldGained := 0
		status := models.EncounterLost

		if isCorrect {
			status = models.EncounterWon
			experienceGained = monster.ExperienceReward + problem.ExperienceReward
			goldGained = monster.GoldReward

			gold := character.Gold + goldGained
			if err := st.Characters().Update(ctx, character.ID, models.CharacterPatch{Gold: &gold}); err != nil {
				return err
			}
		} else {
			health := max(1, character.CurrentHealth-int(float64(character.MaxHealth)*lossHealthPenalty))
			if err := st.Characters().Update(ctx, character.ID, models.CharacterPatch{CurrentHealth: &health}); err != nil {
				return err
			}
		}

		completedAt := s.now()
		if err := st.Encounters().Finish(ctx, encounter.ID, status, completedAt); err != nil {
			return err
		}
		encounter.Status = status
		encounter.CompletedAt = &completedAt

		var levelUp *LevelUpResult
		if experienceGained > 0 {
			levelUp, err = s.gainExperience(ctx, st, character.ID, experienceGained)
			if err != nil {
				return err
			}
		}

		updated, err := st.Characters().Find(ctx, character.ID)
		if err != nil {
			return err
		}

		result = &EncounterResult{
			Success:          isCorrect,
			ExperienceGained: experienceGained,
			GoldGained:       goldGained,
			LevelUp:          levelUp,
			Encounter: &models.EncounterDetail{
				Encounter: *encounter,
				Monster:   monster,
				Problem:   problem,
				Character: updated,
			},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// FleeEncounter abandons an in-progress encounter at the cost of a tenth of
// max health, floored at 1 HP. No attempt is recorded and nothing is paid
// out.
func (s *Service) FleeEncounter(ctx context.Context, encounterID int64) (*models.EncounterDetail, error) {
	var detail *models.EncounterDetail
	err := s.store.Transact(ctx, func(st Store) error {
		encounter, err := st.Encounters().Find(ctx, encounterID)
		if err != nil {
			return err
		}
		if encounter == nil {
			return apperrors.NotFound("ENCOUNTER_NOT_FOUND", "encounter not found")
		}
		if encounter.Status != models.EncounterInProgress {
			return apperrors.Conflict("ENCOUNTER_ALREADY_FINISHED", "this encounter has already finished")
		}

		character, err := st.Characters().Find(ctx, encounter.CharacterID)
		if err != nil {
			return err
		}
		if character == nil {
			return apperrors.NotFound("CHARACTER_NOT_FOUND", "character not found")
		}

		health := max(1, character.CurrentHealth-int(float64(character.MaxHealth)*fleeHealthPenalty))
		if err := st.Characters().Update(ctx, character.ID, models.CharacterPatch{CurrentHealth: &health}); err != nil {
			return err
		}

		completedAt := s.now()
		if err := st.Encounters().Finish(ctx, encounter.ID, models.EncounterFled, completedAt); err != nil {
			return err
		}
		encounter.Status = models.EncounterFled
		encounter.CompletedAt = &completedAt

		character.CurrentHealth = health
		detail = &models.EncounterDetail{Encounter: *encounter, Character: character}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

// ActiveEncounters lists the character's IN_PROGRESS encounters, newest
// first.
func (s *Service) ActiveEncounters(ctx context.Context, characterID int64) ([]models.Encounter, error) {
	character, err := s.store.Characters().Find(ctx, characterID)
	if err != nil {
		return nil, err
	}
	if character == nil {
		return nil, apperrors.NotFound("CHARACTER_NOT_FOUND", "character not found")
	}
	return s.store.Encounters().ActiveByCharacter(ctx, characterID)
}

// SuitableMonsters lists the monsters in the character's difficulty window.
func (s *Service) SuitableMonsters(ctx context.Context, characterID int64) ([]models.Monster, error) {
	character, err := s.store.Characters().Find(ctx, characterID)
	if err != nil {
		return nil, err
	}
	if character == nil {
		return nil, apperrors.NotFound("CHARACTER_NOT_FOUND", "character not found")
	}
	minLevel, maxLevel := monsterLevelRange(character.Level)
	return s.store.Monsters().SuitableForLevel(ctx, minLevel, maxLevel)
}

// SuitableProblems lists the problems in the character's difficulty window.
func (s *Service) SuitableProblems(ctx context.Context, characterID int64) ([]models.Problem, error) {
	character, err := s.store.Characters().Find(ctx, characterID)
	if err != nil {
		return nil, err
	}
	if character == nil {
		return nil, apperrors.NotFound("CHARACTER_NOT_FOUND", "character not found")
	}
	minLevel, maxLevel := problemLevelRange(character.Level)
	return s.store.Problems().SuitableForLevel(ctx, minLevel, maxLevel)
}
