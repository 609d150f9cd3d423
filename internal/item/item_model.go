package item

import "gorm.io/gorm"

const (
	CategoryWeapon = "weapon"
	CategoryBuff   = "buff"
)

const (
	OwnerDictator = "dictator"
	OwnerSponsor  = "sponsor"
)

// InventoryItem is a stack of identical items held by a dictator or sponsor.
type InventoryItem struct {
	gorm.Model
	OwnerType string `gorm:"not null;uniqueIndex:idx_inventory_owner_item" json:"owner_type"`
	OwnerID   uint   `gorm:"not null;uniqueIndex:idx_inventory_owner_item" json:"owner_id"`
	ItemName  string `gorm:"not null;uniqueIndex:idx_inventory_owner_item" json:"item_name"`
	Quantity  int    `gorm:"not null;default:0" json:"quantity"`
	Category  string `gorm:"not null" json:"category"` // weapon | buff
}
