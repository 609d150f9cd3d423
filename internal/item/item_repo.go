package item

import (
	"errors"

	"gorm.io/gorm"

	"github.com/jfcordova/dictator-arena/internal/battle"
	"github.com/jfcordova/dictator-arena/internal/contestant"
)

var (
	ErrAlreadyGifted    = errors.New("contestant already holds a gifted item")
	ErrInsufficientItem = errors.New("not enough of this item in the inventory")
	ErrNotWeapon        = errors.New("only weapons can be gifted")
	ErrNotBuff          = errors.New("only buffs can be applied")
	ErrNotOwner         = errors.New("contestant does not belong to this dictator")
	ErrBattleNotActive  = errors.New("battle is not active")
)

// BuffApplication describes one buff consumption from an inventory.
type BuffApplication struct {
	SourceType    string
	SourceID      uint
	ContestantID  uint
	ItemName      string
	StrengthBoost int
	AgilityBoost  int
	Duration      int
	// BattleID, when set, requires the named battle to be in progress.
	BattleID *uint
}

type ItemRepository interface {
	AddItem(ownerType string, ownerID uint, itemName string, quantity int, category string) (*InventoryItem, error)
	Inventory(ownerType string, ownerID uint) ([]InventoryItem, error)
	GiveItem(source string, giverID, contestantID uint, itemName string) error
	ApplyBuff(app BuffApplication) (*contestant.Buff, error)
}

type itemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

// AddItem upserts quantity into the owner's stack of the named item.
func (r *itemRepository) AddItem(ownerType string, ownerID uint, itemName string, quantity int, category string) (*InventoryItem, error) {
	var stack InventoryItem
	err := r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("owner_type = ? AND owner_id = ? AND item_name = ?", ownerType, ownerID, itemName).
			First(&stack).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			stack = InventoryItem{
				OwnerType: ownerType,
				OwnerID:   ownerID,
				ItemName:  itemName,
				Quantity:  quantity,
				Category:  category,
			}
			return tx.Create(&stack).Error
		}
		if err != nil {
			return err
		}

		stack.Quantity += quantity
		return tx.Model(&stack).Update("quantity", stack.Quantity).Error
	})
	if err != nil {
		return nil, err
	}
	return &stack, nil
}

func (r *itemRepository) Inventory(ownerType string, ownerID uint) ([]InventoryItem, error) {
	var items []InventoryItem
	if err := r.db.Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GiveItem transfers one weapon from the giver's inventory to a contestant.
// A contestant holds at most one gift, ever; dictators may only gift their
// own contestants.
func (r *itemRepository) GiveItem(source string, giverID, contestantID uint, itemName string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if source == OwnerDictator {
			var owned int64
			if err := tx.Model(&contestant.Contestant{}).
				Where("id = ? AND dictator_id = ?", contestantID, giverID).
				Count(&owned).Error; err != nil {
				return err
			}
			if owned == 0 {
				return ErrNotOwner
			}
		}

		var existing int64
		if err := tx.Model(&contestant.Gift{}).
			Where("contestant_id = ?", contestantID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyGifted
		}

		var stack InventoryItem
		err := tx.Where("owner_type = ? AND owner_id = ? AND item_name = ?", source, giverID, itemName).
			First(&stack).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInsufficientItem
		}
		if err != nil {
			return err
		}
		if stack.Quantity <= 0 {
			return ErrInsufficientItem
		}
		if stack.Category != CategoryWeapon {
			return ErrNotWeapon
		}

		gift := contestant.Gift{
			ContestantID: contestantID,
			ItemName:     itemName,
			Source:       source,
			GiverID:      giverID,
		}
		if err := tx.Create(&gift).Error; err != nil {
			return err
		}
		return tx.Model(&stack).Update("quantity", stack.Quantity-1).Error
	})
}

// ApplyBuff consumes one buff item and records the additive stat boost.
// Dictators may only buff their own contestants; sponsors may buff anyone.
// There is no cap on stacked buffs.
func (r *itemRepository) ApplyBuff(app BuffApplication) (*contestant.Buff, error) {
	var buff contestant.Buff
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if app.BattleID != nil {
			var b battle.Battle
			if err := tx.First(&b, *app.BattleID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return battle.ErrBattleNotFound
				}
				return err
			}
			if b.Status != battle.StatusStart {
				return ErrBattleNotActive
			}
		}

		if app.SourceType == OwnerDictator {
			var owned int64
			if err := tx.Model(&contestant.Contestant{}).
				Where("id = ? AND dictator_id = ?", app.ContestantID, app.SourceID).
				Count(&owned).Error; err != nil {
				return err
			}
			if owned == 0 {
				return ErrNotOwner
			}
		}

		var stack InventoryItem
		err := tx.Where("owner_type = ? AND owner_id = ? AND item_name = ?", app.SourceType, app.SourceID, app.ItemName).
			First(&stack).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInsufficientItem
		}
		if err != nil {
			return err
		}
		if stack.Quantity <= 0 {
			return ErrInsufficientItem
		}
		if stack.Category != CategoryBuff {
			return ErrNotBuff
		}

		buff = contestant.Buff{
			Name:          app.ItemName,
			StrengthBoost: app.StrengthBoost,
			AgilityBoost:  app.AgilityBoost,
			Duration:      app.Duration,
			SourceType:    app.SourceType,
			SourceID:      app.SourceID,
			ContestantID:  app.ContestantID,
		}
		if err := tx.Create(&buff).Error; err != nil {
			return err
		}
		return tx.Model(&stack).Update("quantity", stack.Quantity-1).Error
	})
	if err != nil {
		return nil, err
	}
	return &buff, nil
}
