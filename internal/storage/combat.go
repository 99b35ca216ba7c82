package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/vinifranco48/arithimancia-api/internal/models"
)

type MonsterRepo struct {
	ext sqlx.ExtContext
}

func NewMonsterRepo(ext sqlx.ExtContext) *MonsterRepo {
	return &MonsterRepo{ext: ext}
}

func (r *MonsterRepo) Find(ctx context.Context, id int64) (*models.Monster, error) {
	var monster models.Monster
	if err := sqlx.GetContext(ctx, r.ext, &monster, `SELECT * FROM monsters WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get monster: %w", err)
	}
	return &monster, nil
}

func (r *MonsterRepo) SuitableForLevel(ctx context.Context, minLevel, maxLevel int) ([]models.Monster, error) {
	monsters := []models.Monster{}
	query := `SELECT * FROM monsters WHERE difficulty_level BETWEEN ? AND ? ORDER BY difficulty_level, id`
	if err := sqlx.SelectContext(ctx, r.ext, &monsters, query, minLevel, maxLevel); err != nil {
		return nil, fmt.Errorf("failed to list monsters: %w", err)
	}
	return monsters, nil
}

func (r *MonsterRepo) All(ctx context.Context) ([]models.Monster, error) {
	monsters := []models.Monster{}
	if err := sqlx.SelectContext(ctx, r.ext, &monsters, `SELECT * FROM monsters ORDER BY difficulty_level, id`); err != nil {
		return nil, fmt.Errorf("failed to list monsters: %w", err)
	}
	return monsters, nil
}

type ProblemRepo struct {
	ext sqlx.ExtContext
}

func NewProblemRepo(ext sqlx.ExtContext) *ProblemRepo {
	return &ProblemRepo{ext: ext}
}

func (r *ProblemRepo) Find(ctx context.Context, id int64) (*models.Problem, error) {
	var problem models.Problem
	if err := sqlx.GetContext(ctx, r.ext, &problem, `SELECT * FROM problems WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get problem: %w", err)
	}
	return &problem, nil
}

func (r *ProblemRepo) SuitableForLevel(ctx context.Context, minLevel, maxLevel int) ([]models.Problem, error) {
	problems := []models.Problem{}
	query := `SELECT * FROM problems WHERE difficulty_level BETWEEN ? AND ? ORDER BY difficulty_level, id`
	if err := sqlx.SelectContext(ctx, r.ext, &problems, query, minLevel, maxLevel); err != nil {
		return nil, fmt.Errorf("failed to list problems: %w", err)
	}
	return problems, nil
}

type EncounterRepo struct {
	ext sqlx.ExtContext
}

func NewEncounterRepo(ext sqlx.ExtContext) *EncounterRepo {
	return &EncounterRepo{ext: ext}
}

func (r *EncounterRepo) Find(ctx context.Context, id int64) (*models.Encounter, error) {
	var encounter models.Encounter
	if err := sqlx.GetContext(ctx, r.ext, &encounter, `SELECT * FROM encounters WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get encounter: %w", err)
	}
	return &encounter, nil
}

func (r *EncounterRepo) Create(ctx context.Context, encounter *models.Encounter) (int64, error) {
	query := `
		INSERT INTO encounters (character_id, monster_id, problem_id, status,
			monster_current_health, character_health_at_start, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	result, err := r.ext.ExecContext(ctx, query,
		encounter.CharacterID, encounter.MonsterID, encounter.ProblemID,
		encounter.Status, encounter.MonsterCurrentHealth,
		encounter.CharacterHealthAtStart, encounter.StartedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to create encounter: %w", err)
	}
	return result.LastInsertId()
}

func (r *EncounterRepo) Finish(ctx context.Context, id int64, status string, completedAt time.Time) error {
	query := `UPDATE encounters SET status = ?, completed_at = ? WHERE id = ?`
	if _, err := r.ext.ExecContext(ctx, query, status, completedAt, id); err != nil {
		return fmt.Errorf("failed to finish encounter: %w", err)
	}
	return nil
}

func (r *EncounterRepo) ActiveByCharacter(ctx context.Context, characterID int64) ([]models.Encounter, error) {
	encounters := []models.Encounter{}
	query := `
		SELECT * FROM encounters
		WHERE character_id = ? AND status = ?
		ORDER BY started_at DESC`
	if err := sqlx.SelectContext(ctx, r.ext, &encounters, query, characterID, models.EncounterInProgress); err != nil {
		return nil, fmt.Errorf("failed to list active encounters: %w", err)
	}
	return encounters, nil
}

func (r *EncounterRepo) CountWonByCharacter(ctx context.Context, characterID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM encounters WHERE character_id = ? AND status = ?`
	if err := sqlx.GetContext(ctx, r.ext, &count, query, characterID, models.EncounterWon); err != nil {
		return 0, fmt.Errorf("failed to count won encounters: %w", err)
	}
	return count, nil
}

type AttemptRepo struct {
	ext sqlx.ExtContext
}

func NewAttemptRepo(ext sqlx.ExtContext) *AttemptRepo {
	return &AttemptRepo{ext: ext}
}

func (r *AttemptRepo) Create(ctx context.Context, attempt *models.ProblemAttempt) (int64, error) {
	query := `
		INSERT INTO problem_attempts (character_id, problem_id, user_answer,
			is_correct, time_taken_seconds, attempted_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	result, err := r.ext.ExecContext(ctx, query,
		attempt.CharacterID, attempt.ProblemID, attempt.UserAnswer,
		attempt.IsCorrect, attempt.TimeTakenSeconds, attempt.AttemptedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to record attempt: %w", err)
	}
	return result.LastInsertId()
}

func (r *AttemptRepo) CountCorrectByCharacter(ctx context.Context, characterID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM problem_attempts WHERE character_id = ? AND is_correct`
	if err := sqlx.GetContext(ctx, r.ext, &count, query, characterID); err != nil {
		return 0, fmt.Errorf("failed to count correct attempts: %w", err)
	}
	return count, nil
}

// RecentByCharacter returns the newest attempts first, capped at limit.
func (r *AttemptRepo) RecentByCharacter(ctx context.Context, characterID int64, limit int) ([]models.ProblemAttempt, error) {
	attempts := []models.ProblemAttempt{}
	query := `
		SELECT * FROM problem_attempts
		WHERE character_id = ?
		ORDER BY attempted_at DESC, id DESC
		LIMIT ?`
	if err := sqlx.SelectContext(ctx, r.ext, &attempts, query, characterID, limit); err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}
	return attempts, nil
}
