package bet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jfcordova/dictator-arena/internal/battle"
	"github.com/jfcordova/dictator-arena/internal/bet"
	"github.com/jfcordova/dictator-arena/internal/contestant"
	"github.com/jfcordova/dictator-arena/internal/testutil"
	"github.com/jfcordova/dictator-arena/internal/user"
)

// seedApprovedBattle returns an Approved battle between two dictators'
// contestants plus a third dictator with no stake in it.
func seedApprovedBattle(t *testing.T, db *gorm.DB) (b battle.Battle, owner, neutral user.Dictator, sponsor user.Sponsor) {
	t.Helper()

	var rival user.Dictator
	for i, name := range []string{"khan", "vlad", "rex"} {
		u := user.User{Username: name, Password: "x", Role: user.RoleDictator}
		require.NoError(t, db.Create(&u).Error)
		d := user.Dictator{UserID: u.ID, Name: name, Territory: name, LoyaltyScore: 75}
		require.NoError(t, db.Create(&d).Error)
		switch i {
		case 0:
			owner = d
		case 1:
			rival = d
		case 2:
			neutral = d
		}
	}

	su := user.User{Username: "acme", Password: "x", Role: user.RoleSponsor}
	require.NoError(t, db.Create(&su).Error)
	sponsor = user.Sponsor{UserID: su.ID, CompanyName: "Acme", LoyaltyScore: 75}
	require.NoError(t, db.Create(&sponsor).Error)

	c1 := contestant.Contestant{Name: "Brick", Health: 100, Status: contestant.StatusAlive, DictatorID: &owner.ID}
	c2 := contestant.Contestant{Name: "Shade", Health: 100, Status: contestant.StatusAlive, DictatorID: &rival.ID}
	require.NoError(t, db.Create(&c1).Error)
	require.NoError(t, db.Create(&c2).Error)

	b = battle.Battle{Contestant1: c1.ID, Contestant2: c2.ID, DictatorID: owner.ID, Status: battle.StatusApproved}
	require.NoError(t, db.Create(&b).Error)
	return b, owner, neutral, sponsor
}

func TestPlaceBetOnlyOnApprovedBattles(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := bet.NewBetRepository(db)
	b, _, neutral, _ := seedApprovedBattle(t, db)

	for _, status := range []string{battle.StatusPending, battle.StatusStart, battle.StatusClosed} {
		require.NoError(t, db.Model(&b).Update("status", status).Error)
		_, err := repo.PlaceBet(neutral.ID, battle.BettorDictator, b.ID, b.Contestant1, 10)
		assert.ErrorIs(t, err, bet.ErrBattleNotOpen, "status %s", status)
	}

	require.NoError(t, db.Model(&b).Update("status", battle.StatusApproved).Error)
	placed, err := repo.PlaceBet(neutral.ID, battle.BettorDictator, b.ID, b.Contestant1, 10)
	require.NoError(t, err)
	assert.Equal(t, battle.BetOpen, placed.Status)
}

func TestPlaceBetRejectsOwners(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := bet.NewBetRepository(db)
	b, owner, _, sponsor := seedApprovedBattle(t, db)

	_, err := repo.PlaceBet(owner.ID, battle.BettorDictator, b.ID, b.Contestant1, 10)
	assert.ErrorIs(t, err, bet.ErrConflictOfInterest)

	// Sponsors have no ownership conflict.
	_, err = repo.PlaceBet(sponsor.ID, battle.BettorSponsor, b.ID, b.Contestant1, 10)
	assert.NoError(t, err)
}

func TestPlaceBetCapPerBattle(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := bet.NewBetRepository(db)
	b, _, neutral, sponsor := seedApprovedBattle(t, db)

	for i := 0; i < battle.MaxBetsPerBattle; i++ {
		_, err := repo.PlaceBet(neutral.ID, battle.BettorDictator, b.ID, b.Contestant1, 10)
		require.NoError(t, err)
	}
	_, err := repo.PlaceBet(neutral.ID, battle.BettorDictator, b.ID, b.Contestant2, 10)
	assert.ErrorIs(t, err, bet.ErrBetCapReached)

	// The cap is per bettor; another bettor still gets in.
	_, err = repo.PlaceBet(sponsor.ID, battle.BettorSponsor, b.ID, b.Contestant1, 10)
	assert.NoError(t, err)
}

func TestPlaceBetUnknownBattle(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := bet.NewBetRepository(db)
	_, _, neutral, _ := seedApprovedBattle(t, db)

	_, err := repo.PlaceBet(neutral.ID, battle.BettorDictator, 9999, 1, 10)
	assert.ErrorIs(t, err, battle.ErrBattleNotFound)
}
