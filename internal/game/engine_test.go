package game_test

import (
	"context"
	"fmt"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/vinifranco48/arithimancia-api/internal/database"
	"github.com/vinifranco48/arithimancia-api/internal/game"
	"github.com/vinifranco48/arithimancia-api/internal/storage"
)

// rngFunc adapts a function to the engine's RNG interface.
type rngFunc func(n int) int

func (f rngFunc) Intn(n int) int { return f(n) }

var testClock = time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

// EngineSuite runs the engine against a fresh in-memory database per test,
// with pinned randomness and clock.
type EngineSuite struct {
	suite.Suite

	ctx   context.Context
	db    *database.DB
	store *storage.Store
	svc   *game.Service

	nextSeq int
}

func (s *EngineSuite) SetupTest() {
	db, err := database.NewDB(":memory:")
	s.Require().NoError(err)
	// A second pool connection would see a different empty memory database.
	db.SetMaxOpenConns(1)

	s.ctx = context.Background()
	s.db = db
	s.store = storage.New(db)
	s.svc = game.NewService(s.store)
	s.svc.SetRNG(rngFunc(func(int) int { return 0 }))
	s.svc.SetClock(func() time.Time { return testClock })
	s.nextSeq = 0
}

func (s *EngineSuite) TearDownTest() {
	s.Require().NoError(s.db.Close())
}

func (s *EngineSuite) seq() int {
	s.nextSeq++
	return s.nextSeq
}

func (s *EngineSuite) createPlayer() int64 {
	n := s.seq()
	result, err := s.db.Exec(
		`INSERT INTO players (username, email, password_hash) VALUES (?, ?, ?)`,
		fmt.Sprintf("player%d", n), fmt.Sprintf("player%d@example.com", n), "hash")
	s.Require().NoError(err)
	id, err := result.LastInsertId()
	s.Require().NoError(err)
	return id
}

func (s *EngineSuite) createCharacter(level, experience, maxHealth, currentHealth, gold int) int64 {
	playerID := s.createPlayer()
	result, err := s.db.Exec(
		`INSERT INTO characters (player_id, name, level, experience_points, max_health, current_health, gold)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		playerID, fmt.Sprintf("Hero%d", s.seq()), level, experience, maxHealth, currentHealth, gold)
	s.Require().NoError(err)
	id, err := result.LastInsertId()
	s.Require().NoError(err)
	return id
}

func (s *EngineSuite) createMonster(difficulty, baseHealth, experienceReward, goldReward int) int64 {
	result, err := s.db.Exec(
		`INSERT INTO monsters (name, base_health, difficulty_level, experience_reward, gold_reward)
		 VALUES (?, ?, ?, ?, ?)`,
		fmt.Sprintf("Monster%d", s.seq()), baseHealth, difficulty, experienceReward, goldReward)
	s.Require().NoError(err)
	id, err := result.LastInsertId()
	s.Require().NoError(err)
	return id
}

func (s *EngineSuite) createProblem(difficulty int, answer string, experienceReward int) int64 {
	result, err := s.db.Exec(
		`INSERT INTO problems (description, answer, difficulty_level, experience_reward)
		 VALUES (?, ?, ?, ?)`,
		fmt.Sprintf("Problem %d", s.seq()), answer, difficulty, experienceReward)
	s.Require().NoError(err)
	id, err := result.LastInsertId()
	s.Require().NoError(err)
	return id
}

func (s *EngineSuite) createItem(itemType string, healthBonus int, consumable bool) int64 {
	result, err := s.db.Exec(
		`INSERT INTO items (name, type, health_bonus, is_consumable) VALUES (?, ?, ?, ?)`,
		fmt.Sprintf("Item%d", s.seq()), itemType, healthBonus, consumable)
	s.Require().NoError(err)
	id, err := result.LastInsertId()
	s.Require().NoError(err)
	return id
}

func (s *EngineSuite) giveItem(characterID, itemID int64, quantity int) {
	_, err := s.db.Exec(
		`INSERT INTO inventory (character_id, item_id, quantity) VALUES (?, ?, ?)`,
		characterID, itemID, quantity)
	s.Require().NoError(err)
}

type questSpec struct {
	minLevel         int
	experienceReward int
	goldReward       int
	itemRewardID     *int64
	repeatable       bool
	objectives       int
}

// createQuest returns the quest id and its objective ids in order.
func (s *EngineSuite) createQuest(spec questSpec) (int64, []int64) {
	result, err := s.db.Exec(
		`INSERT INTO quests (title, experience_reward, gold_reward, item_reward_id, min_level, is_repeatable)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		fmt.Sprintf("Quest%d", s.seq()), spec.experienceReward, spec.goldReward,
		spec.itemRewardID, spec.minLevel, spec.repeatable)
	s.Require().NoError(err)
	questID, err := result.LastInsertId()
	s.Require().NoError(err)

	objectiveIDs := make([]int64, 0, spec.objectives)
	for i := 0; i < spec.objectives; i++ {
		result, err := s.db.Exec(
			`INSERT INTO quest_objectives (quest_id, description, order_index) VALUES (?, ?, ?)`,
			questID, fmt.Sprintf("Step %d", i+1), i)
		s.Require().NoError(err)
		id, err := result.LastInsertId()
		s.Require().NoError(err)
		objectiveIDs = append(objectiveIDs, id)
	}
	return questID, objectiveIDs
}

func (s *EngineSuite) characterHealth(characterID int64) (current, maximum int) {
	row := s.db.QueryRow(`SELECT current_health, max_health FROM characters WHERE id = ?`, characterID)
	s.Require().NoError(row.Scan(&current, &maximum))
	return current, maximum
}

func (s *EngineSuite) attemptCount(characterID int64) int {
	var count int
	row := s.db.QueryRow(`SELECT COUNT(*) FROM problem_attempts WHERE character_id = ?`, characterID)
	s.Require().NoError(row.Scan(&count))
	return count
}
