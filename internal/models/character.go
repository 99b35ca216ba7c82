package models

import "time"

const (
	MaxCharactersPerPlayer = 3
	MinCharacterNameLength = 3
	MaxCharacterNameLength = 30

	StartingMaxHealth = 100
	StartingGold      = 100
)

// Character is the player's avatar. Level, experience, health and gold are
// mutated by the game engine; everything else is bookkeeping.
type Character struct {
	ID               int64      `json:"id" db:"id"`
	PlayerID         int64      `json:"player_id" db:"player_id"`
	SchoolID         *int64     `json:"school_id,omitempty" db:"school_id"`
	Name             string     `json:"name" db:"name"`
	Level            int        `json:"level" db:"level"`
	ExperiencePoints int        `json:"experience_points" db:"experience_points"`
	MaxHealth        int        `json:"max_health" db:"max_health"`
	CurrentHealth    int        `json:"current_health" db:"current_health"`
	Gold             int        `json:"gold" db:"gold"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	LastLogin        *time.Time `json:"last_login" db:"last_login"`
}

// School is reference data chosen at character creation.
type School struct {
	ID           int64  `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	Description  string `json:"description" db:"description"`
	Axiom        string `json:"axiom" db:"axiom"`
	HealthBonus  int    `json:"health_bonus" db:"health_bonus"`
	StartingGold int    `json:"starting_gold" db:"starting_gold"`
}

// CharacterPatch carries only the fields an update wants to change.
type CharacterPatch struct {
	Name             *string
	SchoolID         *int64
	Level            *int
	ExperiencePoints *int
	MaxHealth        *int
	CurrentHealth    *int
	Gold             *int
}

// CreateCharacterRequest represents the request to create a character
type CreateCharacterRequest struct {
	Name     string `json:"name"`
	SchoolID *int64 `json:"school_id"`
}

// UpdateCharacterRequest represents a character update
type UpdateCharacterRequest struct {
	Name     *string `json:"name"`
	SchoolID *int64  `json:"school_id"`
}

// CharacterStats summarizes a character's progress for the stats endpoint.
type CharacterStats struct {
	Character        *Character `json:"character"`
	TotalItems       int        `json:"total_items"`
	CompletedQuests  int        `json:"completed_quests"`
	CorrectProblems  int        `json:"correct_problems"`
	WonEncounters    int        `json:"won_encounters"`
	HealthPercentage int        `json:"health_percentage"`
	NextLevelXP      int        `json:"next_level_xp"`
	XPToNextLevel    int        `json:"xp_to_next_level"`
}

// LeaderboardEntry is one row of the character ranking.
type LeaderboardEntry struct {
	CharacterID      int64  `json:"character_id" db:"id"`
	Name             string `json:"name" db:"name"`
	Level            int    `json:"level" db:"level"`
	ExperiencePoints int    `json:"experience_points" db:"experience_points"`
	Username         string `json:"username" db:"username"`
}
