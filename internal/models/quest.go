package models

import "time"

// Character quest statuses.
const (
	QuestActive    = "ACTIVE"
	QuestCompleted = "COMPLETED"
	QuestFailed    = "FAILED"
	QuestAbandoned = "ABANDONED"
)

// Objective types; semantic labels only, progression is driven purely by
// objective identity and order.
const (
	ObjectiveSolve  = "SOLVE"
	ObjectiveDefeat = "DEFEAT"
	ObjectiveFetch  = "FETCH"
	ObjectiveTalk   = "TALK"
)

// Quest is immutable reference data with an ordered list of objectives.
type Quest struct {
	ID               int64  `json:"id" db:"id"`
	Title            string `json:"title" db:"title"`
	Description      string `json:"description" db:"description"`
	ExperienceReward int    `json:"experience_reward" db:"experience_reward"`
	GoldReward       int    `json:"gold_reward" db:"gold_reward"`
	ItemRewardID     *int64 `json:"item_reward_id" db:"item_reward_id"`
	MinLevel         int    `json:"min_level" db:"min_level"`
	IsRepeatable     bool   `json:"is_repeatable" db:"is_repeatable"`
}

// QuestObjective belongs to exactly one quest; OrderIndex establishes the
// total order objectives must be completed in.
type QuestObjective struct {
	ID             int64  `json:"id" db:"id"`
	QuestID        int64  `json:"quest_id" db:"quest_id"`
	Description    string `json:"description" db:"description"`
	Type           string `json:"type" db:"type"`
	TargetQuantity int    `json:"target_quantity" db:"target_quantity"`
	OrderIndex     int    `json:"order_index" db:"order_index"`
}

// QuestDetail is a quest with its objectives attached, ordered by OrderIndex.
type QuestDetail struct {
	Quest
	Objectives []QuestObjective `json:"objectives"`
}

// CharacterQuest is one character's progress on one quest.
type CharacterQuest struct {
	CharacterID           int64      `json:"character_id" db:"character_id"`
	QuestID               int64      `json:"quest_id" db:"quest_id"`
	Status                string     `json:"status" db:"status"`
	CurrentObjectiveIndex int        `json:"current_objective_index" db:"current_objective_index"`
	StartedAt             time.Time  `json:"started_at" db:"started_at"`
	CompletedAt           *time.Time `json:"completed_at" db:"completed_at"`
}

// CharacterQuestDetail is progress with the quest and objectives attached.
type CharacterQuestDetail struct {
	CharacterQuest
	Quest *QuestDetail `json:"quest"`
}

// CharacterQuestPatch carries only the fields an update wants to change.
type CharacterQuestPatch struct {
	Status                *string
	CurrentObjectiveIndex *int
	CompletedAt           *time.Time
}
