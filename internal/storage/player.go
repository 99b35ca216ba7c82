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

type PlayerRepo struct {
	ext sqlx.ExtContext
}

func NewPlayerRepo(ext sqlx.ExtContext) *PlayerRepo {
	return &PlayerRepo{ext: ext}
}

const playerColumns = `id, username, email, password_hash, created_at, updated_at, last_login_at`

func (r *PlayerRepo) Create(ctx context.Context, player *models.Player) (int64, error) {
	query := `INSERT INTO players (username, email, password_hash) VALUES (?, ?, ?)`
	result, err := r.ext.ExecContext(ctx, query, player.Username, player.Email, player.Password)
	if err != nil {
		return 0, fmt.Errorf("failed to create player: %w", err)
	}
	return result.LastInsertId()
}

func (r *PlayerRepo) ByID(ctx context.Context, id int64) (*models.Player, error) {
	return r.one(ctx, `SELECT `+playerColumns+` FROM players WHERE id = ?`, id)
}

func (r *PlayerRepo) ByUsername(ctx context.Context, username string) (*models.Player, error) {
	return r.one(ctx, `SELECT `+playerColumns+` FROM players WHERE username = ?`, username)
}

func (r *PlayerRepo) ByEmail(ctx context.Context, email string) (*models.Player, error) {
	return r.one(ctx, `SELECT `+playerColumns+` FROM players WHERE email = ?`, email)
}

func (r *PlayerRepo) one(ctx context.Context, query string, arg interface{}) (*models.Player, error) {
	var player models.Player
	if err := sqlx.GetContext(ctx, r.ext, &player, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return &player, nil
}

// Update applies only the non-nil fields; updated_at always advances.
func (r *PlayerRepo) Update(ctx context.Context, id int64, username, email, passwordHash *string) error {
	sets := []string{"updated_at = CURRENT_TIMESTAMP"}
	args := []interface{}{}

	if username != nil {
		sets = append(sets, "username = ?")
		args = append(args, *username)
	}
	if email != nil {
		sets = append(sets, "email = ?")
		args = append(args, *email)
	}
	if passwordHash != nil {
		sets = append(sets, "password_hash = ?")
		args = append(args, *passwordHash)
	}

	args = append(args, id)
	query := "UPDATE players SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	if _, err := r.ext.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}
	return nil
}

func (r *PlayerRepo) TouchLastLogin(ctx context.Context, id int64) error {
	query := `UPDATE players SET last_login_at = CURRENT_TIMESTAMP WHERE id = ?`
	if _, err := r.ext.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to touch player login: %w", err)
	}
	return nil
}

// Delete removes the player; characters and their dependent rows cascade.
func (r *PlayerRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.ext.ExecContext(ctx, `DELETE FROM players WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete player: %w", err)
	}
	return nil
}
