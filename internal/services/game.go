package services

import (
	"context"

	"github.com/vinifranco48/arithimancia-api/internal/apperrors"
	"github.com/vinifranco48/arithimancia-api/internal/game"
	"github.com/vinifranco48/arithimancia-api/internal/models"
	"github.com/vinifranco48/arithimancia-api/internal/storage"
)

const attemptHistoryLimit = 50

// GameService scopes the game engine to the authenticated player: every
// operation first checks that the character or encounter belongs to them.
type GameService struct {
	engine     *game.Service
	characters *CharacterService
	encounters *storage.EncounterRepo
	inventory  *storage.InventoryRepo
	attempts   *storage.AttemptRepo
	monsters   *storage.MonsterRepo
	items      *storage.ItemRepo
}

func NewGameService(
	engine *game.Service,
	characters *CharacterService,
	encounters *storage.EncounterRepo,
	inventory *storage.InventoryRepo,
	attempts *storage.AttemptRepo,
	monsters *storage.MonsterRepo,
	items *storage.ItemRepo,
) *GameService {
	return &GameService{
		engine:     engine,
		characters: characters,
		encounters: encounters,
		inventory:  inventory,
		attempts:   attempts,
		monsters:   monsters,
		items:      items,
	}
}

// ownedEncounter resolves the encounter and checks the owning character
// belongs to the player.
func (s *GameService) ownedEncounter(ctx context.Context, playerID, encounterID int64) (*models.Encounter, error) {
	encounter, err := s.encounters.Find(ctx, encounterID)
	if err != nil {
		return nil, err
	}
	if encounter == nil {
		return nil, apperrors.NotFound("ENCOUNTER_NOT_FOUND", "encounter not found")
	}
	if _, err := s.characters.Owned(ctx, playerID, encounter.CharacterID); err != nil {
		return nil, apperrors.NotFound("ENCOUNTER_NOT_FOUND", "encounter not found")
	}
	return encounter, nil
}

func (s *GameService) StartEncounter(ctx context.Context, playerID, characterID int64, monsterID *int64) (*models.EncounterDetail, error) {
	if _, err := s.characters.Owned(ctx, playerID, characterID); err != nil {
		return nil, err
	}
	return s.engine.StartEncounter(ctx, characterID, monsterID)
}

func (s *GameService) SolveProblem(ctx context.Context, playerID, encounterID int64, req *models.SolveProblemRequest) (*game.EncounterResult, error) {
	if _, err := s.ownedEncounter(ctx, playerID, encounterID); err != nil {
		return nil, err
	}
	return s.engine.SolveProblem(ctx, encounterID, req.Answer, req.TimeTaken)
}

func (s *GameService) FleeEncounter(ctx context.Context, playerID, encounterID int64) (*models.EncounterDetail, error) {
	if _, err := s.ownedEncounter(ctx, playerID, encounterID); err != nil {
		return nil, err
	}
	return s.engine.FleeEncounter(ctx, encounterID)
}

func (s *GameService) ActiveEncounters(ctx context.Context, playerID, characterID int64) ([]models.Encounter, error) {
	if _, err := s.characters.Owned(ctx, playerID, characterID); err != nil {
		return nil, err
	}
	return s.engine.ActiveEncounters(ctx, characterID)
}

func (s *GameService) SuitableMonsters(ctx context.Context, playerID, characterID int64) ([]models.Monster, error) {
	if _, err := s.characters.Owned(ctx, playerID, characterID); err != nil {
		return nil, err
	}
	return s.engine.SuitableMonsters(ctx, characterID)
}

func (s *GameService) Monsters(ctx context.Context) ([]models.Monster, error) {
	return s.monsters.All(ctx)
}

func (s *GameService) SuitableProblems(ctx context.Context, playerID, characterID int64) ([]models.Problem, error) {
	if _, err := s.characters.Owned(ctx, playerID, characterID); err != nil {
		return nil, err
	}
	return s.engine.SuitableProblems(ctx, characterID)
}

func (s *GameService) Items(ctx context.Context) ([]models.Item, error) {
	return s.items.All(ctx)
}

func (s *GameService) AvailableQuests(ctx context.Context, playerID, characterID int64) ([]models.QuestDetail, error) {
	if _, err := s.characters.Owned(ctx, playerID, characterID); err != nil {
		return nil, err
	}
	return s.engine.AvailableQuests(ctx, characterID)
}

func (s *GameService) RepeatableQuests(ctx context.Context, playerID, characterID int64) ([]models.QuestDetail, error) {
	if _, err := s.characters.Owned(ctx, playerID, characterID); err != nil {
		return nil, err
	}
	return s.engine.RepeatableQuests(ctx, characterID)
}

func (s *GameService) ActiveQuests(ctx context.Context, playerID, characterID int64) ([]models.CharacterQuestDetail, error) {
	if _, err := s.characters.Owned(ctx, playerID, characterID); err != nil {
		return nil, err
	}
	return s.engine.ActiveQuests(ctx, characterID)
}

func (s *GameService) AcceptQuest(ctx context.Context, playerID, characterID, questID int64) (*models.CharacterQuestDetail, error) {
	if _, err := s.characters.Owned(ctx, playerID, characterID); err != nil {
		return nil, err
	}
	return s.engine.AcceptQuest(ctx, characterID, questID)
}

func (s *GameService) CompleteObjective(ctx context.Context, playerID, characterID, questID, objectiveID int64) (*game.QuestProgress, error) {
	if _, err := s.characters.Owned(ctx, playerID, characterID); err != nil {
		return nil, err
	}
	return s.engine.CompleteObjective(ctx, characterID, questID, objectiveID)
}

func (s *GameService) AbandonQuest(ctx context.Context, playerID, characterID, questID int64) error {
	if _, err := s.characters.Owned(ctx, playerID, characterID); err != nil {
		return err
	}
	return s.engine.AbandonQuest(ctx, characterID, questID)
}

func (s *GameService) Inventory(ctx context.Context, playerID, characterID int64) ([]models.InventoryEntryDetail, error) {
	if _, err := s.characters.Owned(ctx, playerID, characterID); err != nil {
		return nil, err
	}
	return s.inventory.ByCharacter(ctx, characterID)
}

func (s *GameService) UseItem(ctx context.Context, playerID, characterID, itemID int64) (*game.ItemUseResult, error) {
	if _, err := s.characters.Owned(ctx, playerID, characterID); err != nil {
		return nil, err
	}
	return s.engine.UseItem(ctx, characterID, itemID)
}

func (s *GameService) ToggleEquip(ctx context.Context, playerID, characterID, itemID int64) (*models.InventoryEntryDetail, error) {
	if _, err := s.characters.Owned(ctx, playerID, characterID); err != nil {
		return nil, err
	}
	return s.engine.ToggleEquip(ctx, characterID, itemID)
}

// AttemptHistory lists the character's recent problem attempts.
func (s *GameService) AttemptHistory(ctx context.Context, playerID, characterID int64) ([]models.ProblemAttempt, error) {
	if _, err := s.characters.Owned(ctx, playerID, characterID); err != nil {
		return nil, err
	}
	return s.attempts.RecentByCharacter(ctx, characterID, attemptHistoryLimit)
}
