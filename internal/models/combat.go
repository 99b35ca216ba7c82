package models

import "time"

// Encounter statuses. IN_PROGRESS is the only non-terminal state.
const (
	EncounterInProgress = "IN_PROGRESS"
	EncounterWon        = "WON"
	EncounterLost       = "LOST"
	EncounterFled       = "FLED"
)

// Monster is immutable reference data.
type Monster struct {
	ID                  int64  `json:"id" db:"id"`
	Name                string `json:"name" db:"name"`
	Description         string `json:"description" db:"description"`
	BaseHealth          int    `json:"base_health" db:"base_health"`
	MathematicalConcept string `json:"mathematical_concept" db:"mathematical_concept"`
	DifficultyLevel     int    `json:"difficulty_level" db:"difficulty_level"`
	ExperienceReward    int    `json:"experience_reward" db:"experience_reward"`
	GoldReward          int    `json:"gold_reward" db:"gold_reward"`
}

// Problem is immutable reference data. Answer is never serialized to clients.
type Problem struct {
	ID               int64  `json:"id" db:"id"`
	Description      string `json:"description" db:"description"`
	ProblemType      string `json:"problem_type" db:"problem_type"`
	Answer           string `json:"-" db:"answer"`
	DifficultyLevel  int    `json:"difficulty_level" db:"difficulty_level"`
	HintText         string `json:"hint_text" db:"hint_text"`
	TimeLimitSeconds *int   `json:"time_limit_seconds" db:"time_limit_seconds"`
	ExperienceReward int    `json:"experience_reward" db:"experience_reward"`
}

// Encounter is one combat instance: a character facing a monster with a
// single problem to solve.
type Encounter struct {
	ID                     int64      `json:"id" db:"id"`
	CharacterID            int64      `json:"character_id" db:"character_id"`
	MonsterID              int64      `json:"monster_id" db:"monster_id"`
	ProblemID              int64      `json:"problem_id" db:"problem_id"`
	Status                 string     `json:"status" db:"status"`
	MonsterCurrentHealth   int        `json:"monster_current_health" db:"monster_current_health"`
	CharacterHealthAtStart int        `json:"character_health_at_start" db:"character_health_at_start"`
	StartedAt              time.Time  `json:"started_at" db:"started_at"`
	CompletedAt            *time.Time `json:"completed_at" db:"completed_at"`
}

// EncounterDetail is an encounter with its reference rows attached.
type EncounterDetail struct {
	Encounter
	Monster   *Monster   `json:"monster,omitempty"`
	Problem   *Problem   `json:"problem,omitempty"`
	Character *Character `json:"character,omitempty"`
}

// ProblemAttempt is an append-only log entry; one row per solve attempt.
type ProblemAttempt struct {
	ID               int64     `json:"id" db:"id"`
	CharacterID      int64     `json:"character_id" db:"character_id"`
	ProblemID        int64     `json:"problem_id" db:"problem_id"`
	UserAnswer       string    `json:"user_answer" db:"user_answer"`
	IsCorrect        bool      `json:"is_correct" db:"is_correct"`
	TimeTakenSeconds *int      `json:"time_taken_seconds" db:"time_taken_seconds"`
	AttemptedAt      time.Time `json:"attempted_at" db:"attempted_at"`
}

// StartEncounterRequest optionally pins a monster; selection is random
// otherwise.
type StartEncounterRequest struct {
	MonsterID *int64 `json:"monster_id"`
}

// SolveProblemRequest submits an answer for an in-progress encounter.
type SolveProblemRequest struct {
	Answer    string `json:"answer"`
	TimeTaken *int   `json:"time_taken"`
}
