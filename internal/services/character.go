package services

import (
	"context"
	"strings"

	"github.com/vinifranco48/arithimancia-api/internal/apperrors"
	"github.com/vinifranco48/arithimancia-api/internal/game"
	"github.com/vinifranco48/arithimancia-api/internal/models"
	"github.com/vinifranco48/arithimancia-api/internal/storage"
)

const (
	defaultLeaderboardLimit = 20
	maxLeaderboardLimit     = 100
)

type CharacterService struct {
	characters *storage.CharacterRepo
	schools    *storage.SchoolRepo
	inventory  *storage.InventoryRepo
	quests     *storage.QuestRepo
	encounters *storage.EncounterRepo
	attempts   *storage.AttemptRepo
}

func NewCharacterService(
	characters *storage.CharacterRepo,
	schools *storage.SchoolRepo,
	inventory *storage.InventoryRepo,
	quests *storage.QuestRepo,
	encounters *storage.EncounterRepo,
	attempts *storage.AttemptRepo,
) *CharacterService {
	return &CharacterService{
		characters: characters,
		schools:    schools,
		inventory:  inventory,
		quests:     quests,
		encounters: encounters,
		attempts:   attempts,
	}
}

func validateCharacterName(name string) error {
	if len(name) < models.MinCharacterNameLength || len(name) > models.MaxCharacterNameLength {
		return apperrors.Invalid("INVALID_CHARACTER_NAME", "character name must be between 3 and 30 characters")
	}
	return nil
}

// Create makes a new character for the player. The chosen school's bonuses
// are applied on top of the base stats.
func (s *CharacterService) Create(ctx context.Context, playerID int64, req *models.CreateCharacterRequest) (*models.Character, error) {
	name := strings.TrimSpace(req.Name)
	if err := validateCharacterName(name); err != nil {
		return nil, err
	}

	count, err := s.characters.CountByPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if count >= models.MaxCharactersPerPlayer {
		return nil, apperrors.Conflict("CHARACTER_LIMIT_REACHED", "character limit reached for this account")
	}

	taken, err := s.characters.NameExists(ctx, playerID, name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.Conflict("CHARACTER_NAME_TAKEN", "you already have a character with this name")
	}

	maxHealth := models.StartingMaxHealth
	gold := models.StartingGold
	if req.SchoolID != nil {
		school, err := s.schools.Find(ctx, *req.SchoolID)
		if err != nil {
			return nil, err
		}
		if school == nil {
			return nil, apperrors.NotFound("SCHOOL_NOT_FOUND", "school not found")
		}
		maxHealth += school.HealthBonus
		gold += school.StartingGold
	}

	character := &models.Character{
		PlayerID:         playerID,
		SchoolID:         req.SchoolID,
		Name:             name,
		Level:            1,
		ExperiencePoints: 0,
		MaxHealth:        maxHealth,
		CurrentHealth:    maxHealth,
		Gold:             gold,
	}
	id, err := s.characters.Create(ctx, character)
	if err != nil {
		return nil, err
	}
	return s.characters.Find(ctx, id)
}

func (s *CharacterService) List(ctx context.Context, playerID int64) ([]models.Character, error) {
	return s.characters.ByPlayer(ctx, playerID)
}

// Owned returns the character only when it belongs to the player. Other
// players' characters look like they do not exist.
func (s *CharacterService) Owned(ctx context.Context, playerID, characterID int64) (*models.Character, error) {
	character, err := s.characters.Find(ctx, characterID)
	if err != nil {
		return nil, err
	}
	if character == nil || character.PlayerID != playerID {
		return nil, apperrors.NotFound("CHARACTER_NOT_FOUND", "character not found")
	}
	return character, nil
}

// Update renames the character and/or changes its school. Stats never change
// here; the game engine owns those.
func (s *CharacterService) Update(ctx context.Context, playerID, characterID int64, req *models.UpdateCharacterRequest) (*models.Character, error) {
	character, err := s.Owned(ctx, playerID, characterID)
	if err != nil {
		return nil, err
	}

	patch := models.CharacterPatch{}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if err := validateCharacterName(name); err != nil {
			return nil, err
		}
		if !strings.EqualFold(name, character.Name) {
			taken, err := s.characters.NameExists(ctx, playerID, name)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, apperrors.Conflict("CHARACTER_NAME_TAKEN", "you already have a character with this name")
			}
		}
		patch.Name = &name
	}

	if req.SchoolID != nil {
		school, err := s.schools.Find(ctx, *req.SchoolID)
		if err != nil {
			return nil, err
		}
		if school == nil {
			return nil, apperrors.NotFound("SCHOOL_NOT_FOUND", "school not found")
		}
		patch.SchoolID = req.SchoolID
	}

	if err := s.characters.Update(ctx, characterID, patch); err != nil {
		return nil, err
	}
	return s.characters.Find(ctx, characterID)
}

func (s *CharacterService) Delete(ctx context.Context, playerID, characterID int64) error {
	if _, err := s.Owned(ctx, playerID, characterID); err != nil {
		return err
	}
	return s.characters.Delete(ctx, characterID)
}

// Stats aggregates the character's progress counters.
func (s *CharacterService) Stats(ctx context.Context, playerID, characterID int64) (*models.CharacterStats, error) {
	character, err := s.Owned(ctx, playerID, characterID)
	if err != nil {
		return nil, err
	}

	totalItems, err := s.inventory.CountByCharacter(ctx, characterID)
	if err != nil {
		return nil, err
	}
	completedQuests, err := s.quests.CountCompletedByCharacter(ctx, characterID)
	if err != nil {
		return nil, err
	}
	correctProblems, err := s.attempts.CountCorrectByCharacter(ctx, characterID)
	if err != nil {
		return nil, err
	}
	wonEncounters, err := s.encounters.CountWonByCharacter(ctx, characterID)
	if err != nil {
		return nil, err
	}

	nextLevelXP := game.ExperienceForLevel(character.Level + 1)
	return &models.CharacterStats{
		Character:        character,
		TotalItems:       totalItems,
		CompletedQuests:  completedQuests,
		CorrectProblems:  correctProblems,
		WonEncounters:    wonEncounters,
		HealthPercentage: character.CurrentHealth * 100 / character.MaxHealth,
		NextLevelXP:      nextLevelXP,
		XPToNextLevel:    max(0, nextLevelXP-character.ExperiencePoints),
	}, nil
}

func (s *CharacterService) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}
	if limit > maxLeaderboardLimit {
		limit = maxLeaderboardLimit
	}
	return s.characters.Leaderboard(ctx, limit)
}

func (s *CharacterService) Schools(ctx context.Context) ([]models.School, error) {
	return s.schools.All(ctx)
}
