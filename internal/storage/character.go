package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/vinifranco48/arithimancia-api/internal/models"
)

type CharacterRepo struct {
	ext sqlx.ExtContext
}

func NewCharacterRepo(ext sqlx.ExtContext) *CharacterRepo {
	return &CharacterRepo{ext: ext}
}

const characterColumns = `id, player_id, school_id, name, level, experience_points,
	max_health, current_health, gold, created_at, last_login`

func (r *CharacterRepo) Find(ctx context.Context, id int64) (*models.Character, error) {
	var character models.Character
	query := `SELECT ` + characterColumns + ` FROM characters WHERE id = ?`
	if err := sqlx.GetContext(ctx, r.ext, &character, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get character: %w", err)
	}
	return &character, nil
}

func (r *CharacterRepo) Create(ctx context.Context, character *models.Character) (int64, error) {
	query := `
		INSERT INTO characters (player_id, school_id, name, level, experience_points,
			max_health, current_health, gold)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := r.ext.ExecContext(ctx, query,
		character.PlayerID, character.SchoolID, character.Name,
		character.Level, character.ExperiencePoints,
		character.MaxHealth, character.CurrentHealth, character.Gold)
	if err != nil {
		return 0, fmt.Errorf("failed to create character: %w", err)
	}
	return result.LastInsertId()
}

// Update applies only the fields set on the patch.
func (r *CharacterRepo) Update(ctx context.Context, id int64, patch models.CharacterPatch) error {
	sets := []string{}
	args := []interface{}{}

	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.SchoolID != nil {
		sets = append(sets, "school_id = ?")
		args = append(args, *patch.SchoolID)
	}
	if patch.Level != nil {
		sets = append(sets, "level = ?")
		args = append(args, *patch.Level)
	}
	if patch.ExperiencePoints != nil {
		sets = append(sets, "experience_points = ?")
		args = append(args, *patch.ExperiencePoints)
	}
	if patch.MaxHealth != nil {
		sets = append(sets, "max_health = ?")
		args = append(args, *patch.MaxHealth)
	}
	if patch.CurrentHealth != nil {
		sets = append(sets, "current_health = ?")
		args = append(args, *patch.CurrentHealth)
	}
	if patch.Gold != nil {
		sets = append(sets, "gold = ?")
		args = append(args, *patch.Gold)
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	query := "UPDATE characters SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	if _, err := r.ext.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update character: %w", err)
	}
	return nil
}

func (r *CharacterRepo) ByPlayer(ctx context.Context, playerID int64) ([]models.Character, error) {
	characters := []models.Character{}
	query := `SELECT ` + characterColumns + ` FROM characters WHERE player_id = ? ORDER BY created_at`
	if err := sqlx.SelectContext(ctx, r.ext, &characters, query, playerID); err != nil {
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}
	return characters, nil
}

func (r *CharacterRepo) CountByPlayer(ctx context.Context, playerID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM characters WHERE player_id = ?`
	if err := sqlx.GetContext(ctx, r.ext, &count, query, playerID); err != nil {
		return 0, fmt.Errorf("failed to count characters: %w", err)
	}
	return count, nil
}

// NameExists reports whether the player already has a character with the
// name, case-insensitively.
func (r *CharacterRepo) NameExists(ctx context.Context, playerID int64, name string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM characters WHERE player_id = ? AND LOWER(name) = LOWER(?)`
	if err := sqlx.GetContext(ctx, r.ext, &count, query, playerID, name); err != nil {
		return false, fmt.Errorf("failed to check character name: %w", err)
	}
	return count > 0, nil
}

func (r *CharacterRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.ext.ExecContext(ctx, `DELETE FROM characters WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete character: %w", err)
	}
	return nil
}

func (r *CharacterRepo) TouchLastLogin(ctx context.Context, id int64) error {
	query := `UPDATE characters SET last_login = CURRENT_TIMESTAMP WHERE id = ?`
	if _, err := r.ext.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to touch character login: %w", err)
	}
	return nil
}

// Leaderboard ranks characters by level then experience.
func (r *CharacterRepo) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	entries := []models.LeaderboardEntry{}
	query := `
		SELECT c.id, c.name, c.level, c.experience_points, p.username
		FROM characters c
		JOIN players p ON p.id = c.player_id
		ORDER BY c.level DESC, c.experience_points DESC
		LIMIT ?`
	if err := sqlx.SelectContext(ctx, r.ext, &entries, query, limit); err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}
	return entries, nil
}
