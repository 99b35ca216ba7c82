package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/vinifranco48/arithimancia-api/internal/models"
)

type SchoolRepo struct {
	ext sqlx.ExtContext
}

func NewSchoolRepo(ext sqlx.ExtContext) *SchoolRepo {
	return &SchoolRepo{ext: ext}
}

func (r *SchoolRepo) Find(ctx context.Context, id int64) (*models.School, error) {
	var school models.School
	if err := sqlx.GetContext(ctx, r.ext, &school, `SELECT * FROM schools WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get school: %w", err)
	}
	return &school, nil
}

func (r *SchoolRepo) All(ctx context.Context) ([]models.School, error) {
	schools := []models.School{}
	if err := sqlx.SelectContext(ctx, r.ext, &schools, `SELECT * FROM schools ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to list schools: %w", err)
	}
	return schools, nil
}
