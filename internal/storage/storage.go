// Package storage holds the sqlx-backed repositories. Each repo is bound to
// an sqlx.ExtContext so the same query code runs against the database or an
// open transaction.
package storage

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/vinifranco48/arithimancia-api/internal/database"
	"github.com/vinifranco48/arithimancia-api/internal/game"
)

// Store aggregates the repositories behind the game engine's Store
// interface.
type Store struct {
	db  *database.DB // nil when bound to a transaction
	ext sqlx.ExtContext
}

func New(db *database.DB) *Store {
	return &Store{db: db, ext: db.DB}
}

func (s *Store) Characters() game.CharacterStore { return &CharacterRepo{ext: s.ext} }
func (s *Store) Monsters() game.MonsterStore     { return &MonsterRepo{ext: s.ext} }
func (s *Store) Problems() game.ProblemStore     { return &ProblemRepo{ext: s.ext} }
func (s *Store) Encounters() game.EncounterStore { return &EncounterRepo{ext: s.ext} }
func (s *Store) Attempts() game.AttemptStore     { return &AttemptRepo{ext: s.ext} }
func (s *Store) Quests() game.QuestStore         { return &QuestRepo{ext: s.ext} }
func (s *Store) Items() game.ItemStore           { return &ItemRepo{ext: s.ext} }
func (s *Store) Inventory() game.InventoryStore  { return &InventoryRepo{ext: s.ext} }

// Transact opens a transaction and hands fn a store bound to it. Nested
// calls reuse the surrounding transaction.
func (s *Store) Transact(ctx context.Context, fn func(game.Store) error) error {
	if s.db == nil {
		return fn(s)
	}
	return s.db.Transact(ctx, func(tx *sqlx.Tx) error {
		return fn(&Store{ext: tx})
	})
}
