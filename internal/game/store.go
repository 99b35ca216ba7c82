// Package game implements the progression, encounter, quest and inventory
// engines. It reads and writes through the Store interfaces so the rules stay
// independent of the SQL layer.
package game

import (
	"context"
	"time"

	"github.com/vinifranco48/arithimancia-api/internal/models"
)

// Store bundles the per-entity stores the engine needs. Transact runs fn
// against a store bound to a single transaction; every mutating engine
// operation goes through it so a failure never leaves partial writes.
type Store interface {
	Characters() CharacterStore
	Monsters() MonsterStore
	Problems() ProblemStore
	Encounters() EncounterStore
	Attempts() AttemptStore
	Quests() QuestStore
	Items() ItemStore
	Inventory() InventoryStore

	Transact(ctx context.Context, fn func(Store) error) error
}

// Stores return (nil, nil) when the requested row does not exist; the engine
// owns the not-found errors.

type CharacterStore interface {
	Find(ctx context.Context, id int64) (*models.Character, error)
	Update(ctx context.Context, id int64, patch models.CharacterPatch) error
}

type MonsterStore interface {
	Find(ctx context.Context, id int64) (*models.Monster, error)
	SuitableForLevel(ctx context.Context, minLevel, maxLevel int) ([]models.Monster, error)
}

type ProblemStore interface {
	Find(ctx context.Context, id int64) (*models.Problem, error)
	SuitableForLevel(ctx context.Context, minLevel, maxLevel int) ([]models.Problem, error)
}

type EncounterStore interface {
	Find(ctx context.Context, id int64) (*models.Encounter, error)
	Create(ctx context.Context, encounter *models.Encounter) (int64, error)
	Finish(ctx context.Context, id int64, status string, completedAt time.Time) error
	ActiveByCharacter(ctx context.Context, characterID int64) ([]models.Encounter, error)
}

type AttemptStore interface {
	Create(ctx context.Context, attempt *models.ProblemAttempt) (int64, error)
	CountCorrectByCharacter(ctx context.Context, characterID int64) (int, error)
}

type QuestStore interface {
	Find(ctx context.Context, id int64) (*models.QuestDetail, error)
	AvailableForCharacter(ctx context.Context, characterID int64, level int) ([]models.QuestDetail, error)
	RepeatableForCharacter(ctx context.Context, characterID int64, level int) ([]models.QuestDetail, error)
	Progress(ctx context.Context, characterID, questID int64) (*models.CharacterQuest, error)
	CreateProgress(ctx context.Context, characterID, questID int64) (*models.CharacterQuest, error)
	// ReactivateProgress resets a completed repeatable quest back to ACTIVE
	// with a fresh start time and objective index 0.
	ReactivateProgress(ctx context.Context, characterID, questID int64) (*models.CharacterQuest, error)
	UpdateProgress(ctx context.Context, characterID, questID int64, patch models.CharacterQuestPatch) error
	ActiveByCharacter(ctx context.Context, characterID int64) ([]models.CharacterQuestDetail, error)
}

type ItemStore interface {
	Find(ctx context.Context, id int64) (*models.Item, error)
}

type InventoryStore interface {
	Entry(ctx context.Context, characterID, itemID int64) (*models.InventoryEntryDetail, error)
	// Add increments an existing entry's quantity or creates the row.
	Add(ctx context.Context, characterID, itemID int64, quantity int) error
	SetQuantity(ctx context.Context, characterID, itemID int64, quantity int) error
	SetEquipped(ctx context.Context, characterID, itemID int64, equipped bool) error
	Delete(ctx context.Context, characterID, itemID int64) error
}
