package market

import (
	"errors"

	"gorm.io/gorm"

	"github.com/jfcordova/dictator-arena/internal/item"
)

var (
	ErrListingUnavailable = errors.New("listing is not available")
	ErrInsufficientItem   = errors.New("not enough of this item to sell")
)

type MarketRepository interface {
	Sell(sponsorID uint, itemName string, price int) (*Transaction, error)
	Buy(dictatorID, transactionID uint) error
	Listings() ([]Transaction, error)
	SellerListings(sponsorID uint) ([]Transaction, error)
	RemoveListing(sponsorID, transactionID uint) error
}

type marketRepository struct {
	db *gorm.DB
}

func NewMarketRepository(db *gorm.DB) MarketRepository {
	return &marketRepository{db: db}
}

// Sell creates a Discovered listing and takes one unit out of the sponsor's
// inventory.
func (r *marketRepository) Sell(sponsorID uint, itemName string, price int) (*Transaction, error) {
	var listing Transaction
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var stack item.InventoryItem
		err := tx.Where("owner_type = ? AND owner_id = ? AND item_name = ?", item.OwnerSponsor, sponsorID, itemName).
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

		listing = Transaction{
			Item:     itemName,
			Amount:   price,
			Status:   StatusDiscovered,
			SellerID: sponsorID,
		}
		if err := tx.Create(&listing).Error; err != nil {
			return err
		}
		return tx.Model(&stack).Update("quantity", stack.Quantity-1).Error
	})
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

// Buy completes a listing: the transaction gains a buyer and the item lands in
// the dictator's inventory with the category it had on the seller's side.
func (r *marketRepository) Buy(dictatorID, transactionID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var listing Transaction
		err := tx.Where("id = ? AND buyer_id IS NULL AND status = ?", transactionID, StatusDiscovered).
			First(&listing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrListingUnavailable
		}
		if err != nil {
			return err
		}

		// The seller's stack still records the category even at quantity zero.
		var sellerStack item.InventoryItem
		category := item.CategoryWeapon
		err = tx.Where("owner_type = ? AND owner_id = ? AND item_name = ?", item.OwnerSponsor, listing.SellerID, listing.Item).
			First(&sellerStack).Error
		if err == nil {
			category = sellerStack.Category
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Model(&listing).Updates(map[string]interface{}{
			"buyer_id": dictatorID,
			"status":   StatusCompleted,
		}).Error; err != nil {
			return err
		}

		var buyerStack item.InventoryItem
		err = tx.Where("owner_type = ? AND owner_id = ? AND item_name = ?", item.OwnerDictator, dictatorID, listing.Item).
			First(&buyerStack).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(&item.InventoryItem{
				OwnerType: item.OwnerDictator,
				OwnerID:   dictatorID,
				ItemName:  listing.Item,
				Quantity:  1,
				Category:  category,
			}).Error
		}
		if err != nil {
			return err
		}
		return tx.Model(&buyerStack).Update("quantity", buyerStack.Quantity+1).Error
	})
}

func (r *marketRepository) Listings() ([]Transaction, error) {
	var listings []Transaction
	if err := r.db.Where("status = ?", StatusDiscovered).Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

func (r *marketRepository) SellerListings(sponsorID uint) ([]Transaction, error) {
	var listings []Transaction
	if err := r.db.Where("seller_id = ? AND status = ?", sponsorID, StatusDiscovered).Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

// RemoveListing withdraws an unsold listing and returns the unit to the
// sponsor's inventory.
func (r *marketRepository) RemoveListing(sponsorID, transactionID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var listing Transaction
		err := tx.Where("id = ? AND seller_id = ? AND status = ?", transactionID, sponsorID, StatusDiscovered).
			First(&listing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrListingUnavailable
		}
		if err != nil {
			return err
		}

		if err := tx.Delete(&listing).Error; err != nil {
			return err
		}

		var stack item.InventoryItem
		err = tx.Where("owner_type = ? AND owner_id = ? AND item_name = ?", item.OwnerSponsor, sponsorID, listing.Item).
			First(&stack).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(&item.InventoryItem{
				OwnerType: item.OwnerSponsor,
				OwnerID:   sponsorID,
				ItemName:  listing.Item,
				Quantity:  1,
				Category:  item.CategoryWeapon,
			}).Error
		}
		if err != nil {
			return err
		}
		return tx.Model(&stack).Update("quantity", stack.Quantity+1).Error
	})
}
