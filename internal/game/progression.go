package game

import (
	"context"
	"math"

	"github.com/vinifranco48/arithimancia-api/internal/apperrors"
	"github.com/vinifranco48/arithimancia-api/internal/models"
)

// HealthPerLevel is the max-health gain per level; a level-up also heals the
// character by the same amount.
const HealthPerLevel = 20

// LevelUpResult describes the outcome of an experience gain. NewLevel and
// HealthIncrease are only set when at least one level was gained.
type LevelUpResult struct {
	LeveledUp        bool `json:"leveled_up"`
	OldLevel         int  `json:"old_level"`
	NewLevel         *int `json:"new_level,omitempty"`
	ExperienceGained int  `json:"experience_gained"`
	TotalExperience  int  `json:"total_experience"`
	HealthIncrease   *int `json:"health_increase,omitempty"`
}

// ExperienceForLevel returns the cumulative experience required to be at
// level. Quest and monster reward balancing depends on this exact formula.
func ExperienceForLevel(level int) int {
	return int(math.Floor(100 * math.Pow(float64(level), 1.5)))
}

// GainExperience adds amount to the character's experience and processes any
// level-ups in a single transaction.
func (s *Service) GainExperience(ctx context.Context, characterID int64, amount int) (*LevelUpResult, error) {
	var result *LevelUpResult
	err := s.store.Transact(ctx, func(st Store) error {
		var err error
		result, err = s.gainExperience(ctx, st, characterID, amount)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// gainExperience runs inside the caller's transaction. A single call can
// cross several thresholds; the loop accumulates the whole gain before one
// persist.
func (s *Service) gainExperience(ctx context.Context, st Store, characterID int64, amount int) (*LevelUpResult, error) {
	if amount <= 0 {
		return nil, apperrors.Invalid("INVALID_EXPERIENCE_AMOUNT", "experience amount must be positive")
	}

	character, err := st.Characters().Find(ctx, characterID)
	if err != nil {
		return nil, err
	}
	if character == nil {
		return nil, apperrors.NotFound("CHARACTER_NOT_FOUND", "character not found")
	}

	oldLevel := character.Level
	newExp := character.ExperiencePoints + amount

	newLevel := oldLevel
	totalHealthIncrease := 0
	for newExp >= ExperienceForLevel(newLevel+1) {
		newLevel++
		totalHealthIncrease += HealthPerLevel
	}

	leveledUp := newLevel > oldLevel

	patch := models.CharacterPatch{ExperiencePoints: &newExp}
	if leveledUp {
		maxHealth := character.MaxHealth + totalHealthIncrease
		currentHealth := character.CurrentHealth + totalHealthIncrease
		patch.Level = &newLevel
		patch.MaxHealth = &maxHealth
		patch.CurrentHealth = &currentHealth
	}

	if err := st.Characters().Update(ctx, characterID, patch); err != nil {
		return nil, err
	}

	result := &LevelUpResult{
		LeveledUp:        leveledUp,
		OldLevel:         oldLevel,
		ExperienceGained: amount,
		TotalExperience:  newExp,
	}
	if leveledUp {
		result.NewLevel = &newLevel
		result.HealthIncrease = &totalHealthIncrease
	}
	return result, nil
}
