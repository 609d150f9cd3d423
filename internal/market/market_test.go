package market_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jfcordova/dictator-arena/internal/item"
	"github.com/jfcordova/dictator-arena/internal/market"
	"github.com/jfcordova/dictator-arena/internal/testutil"
	"github.com/jfcordova/dictator-arena/internal/user"
)

func seedTraders(t *testing.T, db *gorm.DB) (user.Sponsor, user.Dictator) {
	t.Helper()
	su := user.User{Username: "acme", Password: "x", Role: user.RoleSponsor}
	require.NoError(t, db.Create(&su).Error)
	s := user.Sponsor{UserID: su.ID, CompanyName: "Acme", LoyaltyScore: 75}
	require.NoError(t, db.Create(&s).Error)

	du := user.User{Username: "khan", Password: "x", Role: user.RoleDictator}
	require.NoError(t, db.Create(&du).Error)
	d := user.Dictator{UserID: du.ID, Name: "Khan", Territory: "East", LoyaltyScore: 75}
	require.NoError(t, db.Create(&d).Error)
	return s, d
}

func stock(t *testing.T, db *gorm.DB, sponsorID uint, name string, qty int, category string) {
	t.Helper()
	require.NoError(t, db.Create(&item.InventoryItem{
		OwnerType: item.OwnerSponsor, OwnerID: sponsorID, ItemName: name, Quantity: qty, Category: category,
	}).Error)
}

func TestSellRequiresStock(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := market.NewMarketRepository(db)
	s, _ := seedTraders(t, db)

	_, err := repo.Sell(s.ID, "Axe", 100)
	assert.ErrorIs(t, err, market.ErrInsufficientItem)

	stock(t, db, s.ID, "Axe", 1, item.CategoryWeapon)
	listing, err := repo.Sell(s.ID, "Axe", 100)
	require.NoError(t, err)
	assert.Equal(t, market.StatusDiscovered, listing.Status)
	assert.Equal(t, 100, listing.Amount)

	// The listed unit left the inventory; a second sale has nothing left.
	_, err = repo.Sell(s.ID, "Axe", 100)
	assert.ErrorIs(t, err, market.ErrInsufficientItem)
}

func TestBuyCompletesListingAndTransfersItem(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := market.NewMarketRepository(db)
	s, d := seedTraders(t, db)
	stock(t, db, s.ID, "Rage", 1, item.CategoryBuff)

	listing, err := repo.Sell(s.ID, "Rage", 50)
	require.NoError(t, err)

	require.NoError(t, repo.Buy(d.ID, listing.ID))

	var completed market.Transaction
	require.NoError(t, db.First(&completed, listing.ID).Error)
	assert.Equal(t, market.StatusCompleted, completed.Status)
	require.NotNil(t, completed.BuyerID)
	assert.Equal(t, d.ID, *completed.BuyerID)

	// The item shows up in the buyer's inventory with the seller's category.
	var bought item.InventoryItem
	require.NoError(t, db.Where("owner_type = ? AND owner_id = ? AND item_name = ?",
		item.OwnerDictator, d.ID, "Rage").First(&bought).Error)
	assert.Equal(t, 1, bought.Quantity)
	assert.Equal(t, item.CategoryBuff, bought.Category)

	// A sold listing cannot be bought twice.
	err = repo.Buy(d.ID, listing.ID)
	assert.ErrorIs(t, err, market.ErrListingUnavailable)
}

func TestListingsShowOnlyDiscovered(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := market.NewMarketRepository(db)
	s, d := seedTraders(t, db)
	stock(t, db, s.ID, "Axe", 2, item.CategoryWeapon)

	l1, err := repo.Sell(s.ID, "Axe", 100)
	require.NoError(t, err)
	_, err = repo.Sell(s.ID, "Axe", 120)
	require.NoError(t, err)

	require.NoError(t, repo.Buy(d.ID, l1.ID))

	open, err := repo.Listings()
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, 120, open[0].Amount)

	mine, err := repo.SellerListings(s.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestRemoveListingReturnsItem(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := market.NewMarketRepository(db)
	s, d := seedTraders(t, db)
	stock(t, db, s.ID, "Axe", 1, item.CategoryWeapon)

	listing, err := repo.Sell(s.ID, "Axe", 100)
	require.NoError(t, err)

	// Only the seller can withdraw, and only while unsold.
	err = repo.RemoveListing(s.ID+1, listing.ID)
	assert.ErrorIs(t, err, market.ErrListingUnavailable)

	require.NoError(t, repo.RemoveListing(s.ID, listing.ID))

	var stack item.InventoryItem
	require.NoError(t, db.Where("owner_type = ? AND owner_id = ? AND item_name = ?",
		item.OwnerSponsor, s.ID, "Axe").First(&stack).Error)
	assert.Equal(t, 1, stack.Quantity)

	open, err := repo.Listings()
	require.NoError(t, err)
	assert.Empty(t, open)

	// Completed listings cannot be withdrawn.
	stock2, err := repo.Sell(s.ID, "Axe", 100)
	require.NoError(t, err)
	require.NoError(t, repo.Buy(d.ID, stock2.ID))
	err = repo.RemoveListing(s.ID, stock2.ID)
	assert.ErrorIs(t, err, market.ErrListingUnavailable)
}
