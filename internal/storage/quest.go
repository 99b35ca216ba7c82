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

type QuestRepo struct {
	ext sqlx.ExtContext
}

func NewQuestRepo(ext sqlx.ExtContext) *QuestRepo {
	return &QuestRepo{ext: ext}
}

func (r *QuestRepo) Find(ctx context.Context, id int64) (*models.QuestDetail, error) {
	var quest models.Quest
	if err := sqlx.GetContext(ctx, r.ext, &quest, `SELECT * FROM quests WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quest: %w", err)
	}

	objectives, err := r.objectives(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.QuestDetail{Quest: quest, Objectives: objectives}, nil
}

func (r *QuestRepo) objectives(ctx context.Context, questID int64) ([]models.QuestObjective, error) {
	objectives := []models.QuestObjective{}
	query := `SELECT * FROM quest_objectives WHERE quest_id = ? ORDER BY order_index`
	if err := sqlx.SelectContext(ctx, r.ext, &objectives, query, questID); err != nil {
		return nil, fmt.Errorf("failed to list objectives: %w", err)
	}
	return objectives, nil
}

func (r *QuestRepo) attachObjectives(ctx context.Context, quests []models.Quest) ([]models.QuestDetail, error) {
	details := make([]models.QuestDetail, 0, len(quests))
	for _, quest := range quests {
		objectives, err := r.objectives(ctx, quest.ID)
		if err != nil {
			return nil, err
		}
		details = append(details, models.QuestDetail{Quest: quest, Objectives: objectives})
	}
	return details, nil
}

// AvailableForCharacter lists quests at or below the character's level that
// are neither active nor completed for them. Abandoned quests become
// available again.
func (r *QuestRepo) AvailableForCharacter(ctx context.Context, characterID int64, level int) ([]models.QuestDetail, error) {
	quests := []models.Quest{}
	query := `
		SELECT q.* FROM quests q
		WHERE q.min_level <= ?
		AND NOT EXISTS (
			SELECT 1 FROM character_quests cq
			WHERE cq.quest_id = q.id AND cq.character_id = ?
			AND cq.status IN (?, ?)
		)
		ORDER BY q.min_level, q.id`
	if err := sqlx.SelectContext(ctx, r.ext, &quests, query,
		level, characterID, models.QuestActive, models.QuestCompleted); err != nil {
		return nil, fmt.Errorf("failed to list available quests: %w", err)
	}
	return r.attachObjectives(ctx, quests)
}

// RepeatableForCharacter lists repeatable quests the character has completed
// before.
func (r *QuestRepo) RepeatableForCharacter(ctx context.Context, characterID int64, level int) ([]models.QuestDetail, error) {
	quests := []models.Quest{}
	query := `
		SELECT q.* FROM quests q
		JOIN character_quests cq ON cq.quest_id = q.id
		WHERE cq.character_id = ? AND cq.status = ?
		AND q.is_repeatable AND q.min_level <= ?
		ORDER BY q.min_level, q.id`
	if err := sqlx.SelectContext(ctx, r.ext, &quests, query,
		characterID, models.QuestCompleted, level); err != nil {
		return nil, fmt.Errorf("failed to list repeatable quests: %w", err)
	}
	return r.attachObjectives(ctx, quests)
}

func (r *QuestRepo) Progress(ctx context.Context, characterID, questID int64) (*models.CharacterQuest, error) {
	var progress models.CharacterQuest
	query := `SELECT * FROM character_quests WHERE character_id = ? AND quest_id = ?`
	if err := sqlx.GetContext(ctx, r.ext, &progress, query, characterID, questID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quest progress: %w", err)
	}
	return &progress, nil
}

func (r *QuestRepo) CreateProgress(ctx context.Context, characterID, questID int64) (*models.CharacterQuest, error) {
	query := `INSERT INTO character_quests (character_id, quest_id) VALUES (?, ?)`
	if _, err := r.ext.ExecContext(ctx, query, characterID, questID); err != nil {
		return nil, fmt.Errorf("failed to accept quest: %w", err)
	}
	return r.Progress(ctx, characterID, questID)
}

// ReactivateProgress resets an existing row back to the start of the quest.
func (r *QuestRepo) ReactivateProgress(ctx context.Context, characterID, questID int64) (*models.CharacterQuest, error) {
	query := `
		UPDATE character_quests
		SET status = ?, current_objective_index = 0,
			started_at = CURRENT_TIMESTAMP, completed_at = NULL
		WHERE character_id = ? AND quest_id = ?`
	if _, err := r.ext.ExecContext(ctx, query, models.QuestActive, characterID, questID); err != nil {
		return nil, fmt.Errorf("failed to reactivate quest: %w", err)
	}
	return r.Progress(ctx, characterID, questID)
}

func (r *QuestRepo) UpdateProgress(ctx context.Context, characterID, questID int64, patch models.CharacterQuestPatch) error {
	sets := []string{}
	args := []interface{}{}

	if patch.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *patch.Status)
	}
	if patch.CurrentObjectiveIndex != nil {
		sets = append(sets, "current_objective_index = ?")
		args = append(args, *patch.CurrentObjectiveIndex)
	}
	if patch.CompletedAt != nil {
		sets = append(sets, "completed_at = ?")
		args = append(args, *patch.CompletedAt)
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, characterID, questID)
	query := "UPDATE character_quests SET " + strings.Join(sets, ", ") +
		" WHERE character_id = ? AND quest_id = ?"
	if _, err := r.ext.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update quest progress: %w", err)
	}
	return nil
}

func (r *QuestRepo) ActiveByCharacter(ctx context.Context, characterID int64) ([]models.CharacterQuestDetail, error) {
	rows := []models.CharacterQuest{}
	query := `
		SELECT * FROM character_quests
		WHERE character_id = ? AND status = ?
		ORDER BY started_at`
	if err := sqlx.SelectContext(ctx, r.ext, &rows, query, characterID, models.QuestActive); err != nil {
		return nil, fmt.Errorf("failed to list active quests: %w", err)
	}

	details := make([]models.CharacterQuestDetail, 0, len(rows))
	for _, row := range rows {
		quest, err := r.Find(ctx, row.QuestID)
		if err != nil {
			return nil, err
		}
		details = append(details, models.CharacterQuestDetail{CharacterQuest: row, Quest: quest})
	}
	return details, nil
}

func (r *QuestRepo) CountCompletedByCharacter(ctx context.Context, characterID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM character_quests WHERE character_id = ? AND status = ?`
	if err := sqlx.GetContext(ctx, r.ext, &count, query, characterID, models.QuestCompleted); err != nil {
		return 0, fmt.Errorf("failed to count completed quests: %w", err)
	}
	return count, nil
}
