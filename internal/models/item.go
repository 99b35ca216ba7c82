package models

import "time"

// Item categories that drive engine behavior. The seed data keeps the
// original Portuguese names; anything else is inert.
const (
	ItemTypeConsumable = "Consumível"
	ItemTypeEquipment  = "Equipamento"
	ItemTypeArtifact   = "Artefato"
)

// Item is immutable reference data.
type Item struct {
	ID           int64  `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	Description  string `json:"description" db:"description"`
	Type         string `json:"type" db:"type"`
	HealthBonus  int    `json:"health_bonus" db:"health_bonus"`
	Price        int    `json:"price" db:"price"`
	IsTradeable  bool   `json:"is_tradeable" db:"is_tradeable"`
	IsConsumable bool   `json:"is_consumable" db:"is_consumable"`
}

// InventoryEntry joins a character and an item. The row only exists while
// quantity is at least 1.
type InventoryEntry struct {
	CharacterID int64     `json:"character_id" db:"character_id"`
	ItemID      int64     `json:"item_id" db:"item_id"`
	Quantity    int       `json:"quantity" db:"quantity"`
	IsEquipped  bool      `json:"is_equipped" db:"is_equipped"`
	AcquiredAt  time.Time `json:"acquired_at" db:"acquired_at"`
}

// InventoryEntryDetail is an inventory row with the item attached.
type InventoryEntryDetail struct {
	InventoryEntry
	Item *Item `json:"item"`
}

// UseItemRequest identifies the inventory item to consume.
type UseItemRequest struct {
	ItemID int64 `json:"item_id"`
}

// EquipItemRequest identifies the inventory item to toggle.
type EquipItemRequest struct {
	ItemID int64 `json:"item_id"`
}
