package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/vinifranco48/arithimancia-api/internal/models"
)

type ItemRepo struct {
	ext sqlx.ExtContext
}

func NewItemRepo(ext sqlx.ExtContext) *ItemRepo {
	return &ItemRepo{ext: ext}
}

func (r *ItemRepo) Find(ctx context.Context, id int64) (*models.Item, error) {
	var item models.Item
	if err := sqlx.GetContext(ctx, r.ext, &item, `SELECT * FROM items WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return &item, nil
}

func (r *ItemRepo) All(ctx context.Context) ([]models.Item, error) {
	items := []models.Item{}
	if err := sqlx.SelectContext(ctx, r.ext, &items, `SELECT * FROM items ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

type InventoryRepo struct {
	ext sqlx.ExtContext
}

func NewInventoryRepo(ext sqlx.ExtContext) *InventoryRepo {
	return &InventoryRepo{ext: ext}
}

func (r *InventoryRepo) Entry(ctx context.Context, characterID, itemID int64) (*models.InventoryEntryDetail, error) {
	var entry models.InventoryEntry
	query := `SELECT * FROM inventory WHERE character_id = ? AND item_id = ?`
	if err := sqlx.GetContext(ctx, r.ext, &entry, query, characterID, itemID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get inventory entry: %w", err)
	}

	itemRepo := ItemRepo{ext: r.ext}
	item, err := itemRepo.Find(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return &models.InventoryEntryDetail{InventoryEntry: entry, Item: item}, nil
}

// Add upserts: an existing row gains quantity, a missing row is created.
func (r *InventoryRepo) Add(ctx context.Context, characterID, itemID int64, quantity int) error {
	query := `
		INSERT INTO inventory (character_id, item_id, quantity)
		VALUES (?, ?, ?)
		ON CONFLICT (character_id, item_id)
		DO UPDATE SET quantity = quantity + excluded.quantity`
	if _, err := r.ext.ExecContext(ctx, query, characterID, itemID, quantity); err != nil {
		return fmt.Errorf("failed to add inventory item: %w", err)
	}
	return nil
}

func (r *InventoryRepo) SetQuantity(ctx context.Context, characterID, itemID int64, quantity int) error {
	query := `UPDATE inventory SET quantity = ? WHERE character_id = ? AND item_id = ?`
	if _, err := r.ext.ExecContext(ctx, query, quantity, characterID, itemID); err != nil {
		return fmt.Errorf("failed to set inventory quantity: %w", err)
	}
	return nil
}

func (r *InventoryRepo) SetEquipped(ctx context.Context, characterID, itemID int64, equipped bool) error {
	query := `UPDATE inventory SET is_equipped = ? WHERE character_id = ? AND item_id = ?`
	if _, err := r.ext.ExecContext(ctx, query, equipped, characterID, itemID); err != nil {
		return fmt.Errorf("failed to set equipped flag: %w", err)
	}
	return nil
}

func (r *InventoryRepo) Delete(ctx context.Context, characterID, itemID int64) error {
	query := `DELETE FROM inventory WHERE character_id = ? AND item_id = ?`
	if _, err := r.ext.ExecContext(ctx, query, characterID, itemID); err != nil {
		return fmt.Errorf("failed to delete inventory entry: %w", err)
	}
	return nil
}

func (r *InventoryRepo) ByCharacter(ctx context.Context, characterID int64) ([]models.InventoryEntryDetail, error) {
	entries := []models.InventoryEntry{}
	query := `SELECT * FROM inventory WHERE character_id = ? ORDER BY acquired_at`
	if err := sqlx.SelectContext(ctx, r.ext, &entries, query, characterID); err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}

	itemRepo := ItemRepo{ext: r.ext}
	details := make([]models.InventoryEntryDetail, 0, len(entries))
	for _, entry := range entries {
		item, err := itemRepo.Find(ctx, entry.ItemID)
		if err != nil {
			return nil, err
		}
		details = append(details, models.InventoryEntryDetail{InventoryEntry: entry, Item: item})
	}
	return details, nil
}

// CountByCharacter totals the units held across all stacks.
func (r *InventoryRepo) CountByCharacter(ctx context.Context, characterID int64) (int, error) {
	var count int
	query := `SELECT COALESCE(SUM(quantity), 0) FROM inventory WHERE character_id = ?`
	if err := sqlx.GetContext(ctx, r.ext, &count, query, characterID); err != nil {
		return 0, fmt.Errorf("failed to count inventory: %w", err)
	}
	return count, nil
}
