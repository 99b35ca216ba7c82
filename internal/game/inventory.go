package game

import (
	"context"

	"github.com/vinifranco48/arithimancia-api/internal/apperrors"
	"github.com/vinifranco48/arithimancia-api/internal/models"
)

// ItemUseResult describes what consuming one item unit did. ItemConsumed
// reports that the last unit was spent and the inventory row removed.
type ItemUseResult struct {
	Success           bool   `json:"success"`
	HealthRestored    int    `json:"health_restored"`
	EffectApplied     string `json:"effect_applied,omitempty"`
	ItemConsumed      bool   `json:"item_consumed"`
	RemainingQuantity int    `json:"remaining_quantity"`
}

// UseItem consumes one unit of a consumable from the character's inventory.
// A health bonus heals up to max health; the unit is spent even when the
// character is already at full health. The row is removed once quantity hits
// zero.
func (s *Service) UseItem(ctx context.Context, characterID, itemID int64) (*ItemUseResult, error) {
	var result *ItemUseResult
	err := s.store.Transact(ctx, func(st Store) error {
		character, err := st.Characters().Find(ctx, characterID)
		if err != nil {
			return err
		}
		if character == nil {
			return apperrors.NotFound("CHARACTER_NOT_FOUND", "character not found")
		}

		entry, err := st.Inventory().Entry(ctx, characterID, itemID)
		if err != nil {
			return err
		}
		if entry == nil || entry.Item == nil {
			return apperrors.NotFound("ITEM_NOT_IN_INVENTORY", "item is not in this character's inventory")
		}
		if !entry.Item.IsConsumable {
			return apperrors.Invalid("ITEM_NOT_CONSUMABLE", "this item cannot be consumed")
		}

		healthRestored := 0
		effect := ""
		if entry.Item.Type == models.ItemTypeConsumable && entry.Item.HealthBonus > 0 {
			healthRestored = min(entry.Item.HealthBonus, character.MaxHealth-character.CurrentHealth)
			if healthRestored > 0 {
				health := character.CurrentHealth + healthRestored
				if err := st.Characters().Update(ctx, characterID, models.CharacterPatch{CurrentHealth: &health}); err != nil {
					return err
				}
				effect = "heal"
			}
		}

		remaining := entry.Quantity - 1
		consumed := remaining <= 0
		if consumed {
			if err := st.Inventory().Delete(ctx, characterID, itemID); err != nil {
				return err
			}
			remaining = 0
		} else {
			if err := st.Inventory().SetQuantity(ctx, characterID, itemID, remaining); err != nil {
				return err
			}
		}

		result = &ItemUseResult{
			Success:           true,
			HealthRestored:    healthRestored,
			EffectApplied:     effect,
			ItemConsumed:      consumed,
			RemainingQuantity: remaining,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ToggleEquip flips the equipped flag on an equipment item. There is no slot
// exclusivity; any number of pieces can be equipped at once.
func (s *Service) ToggleEquip(ctx context.Context, characterID, itemID int64) (*models.InventoryEntryDetail, error) {
	var detail *models.InventoryEntryDetail
	err := s.store.Transact(ctx, func(st Store) error {
		entry, err := st.Inventory().Entry(ctx, characterID, itemID)
		if err != nil {
			return err
		}
		if entry == nil || entry.Item == nil {
			return apperrors.NotFound("ITEM_NOT_IN_INVENTORY", "item is not in this character's inventory")
		}
		if entry.Item.Type != models.ItemTypeEquipment {
			return apperrors.Invalid("ITEM_NOT_EQUIPMENT", "only equipment can be equipped")
		}

		equipped := !entry.IsEquipped
		if err := st.Inventory().SetEquipped(ctx, characterID, itemID, equipped); err != nil {
			return err
		}
		entry.IsEquipped = equipped
		detail = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

// GrantItem adds quantity units of an item to the character's inventory.
// Quest rewards and future shop purchases both land here.
func (s *Service) GrantItem(ctx context.Context, characterID, itemID int64, quantity int) error {
	if quantity <= 0 {
		return apperrors.Invalid("INVALID_QUANTITY", "quantity must be positive")
	}
	return s.store.Transact(ctx, func(st Store) error {
		character, err := st.Characters().Find(ctx, characterID)
		if err != nil {
			return err
		}
		if character == nil {
			return apperrors.NotFound("CHARACTER_NOT_FOUND", "character not found")
		}
		item, err := st.Items().Find(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return apperrors.NotFound("ITEM_NOT_FOUND", "item not found")
		}
		return st.Inventory().Add(ctx, characterID, itemID, quantity)
	})
}
