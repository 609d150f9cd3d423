package contestant_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jfcordova/dictator-arena/internal/contestant"
	"github.com/jfcordova/dictator-arena/internal/testutil"
	"github.com/jfcordova/dictator-arena/internal/user"
)

func seedDictator(t *testing.T, db *gorm.DB, name string) user.Dictator {
	t.Helper()
	u := user.User{Username: name, Password: "x", Role: user.RoleDictator}
	require.NoError(t, db.Create(&u).Error)
	d := user.Dictator{UserID: u.ID, Name: name, Territory: name + "land", LoyaltyScore: 75}
	require.NoError(t, db.Create(&d).Error)
	return d
}

func TestExistsDuplicate(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := contestant.NewContestantRepository(db)
	d := seedDictator(t, db, "khan")

	ct := contestant.Contestant{Name: "Brick", Nickname: "Wall", Strength: 80, Agility: 40, Health: 100, Status: contestant.StatusAlive, DictatorID: &d.ID}
	require.NoError(t, repo.Create(&ct))

	dup, err := repo.ExistsDuplicate("Brick", "Wall", 80, 40)
	require.NoError(t, err)
	assert.True(t, dup)

	// Any differing attribute makes it a new contestant.
	dup, err = repo.ExistsDuplicate("Brick", "Wall", 81, 40)
	require.NoError(t, err)
	assert.False(t, dup)
}

func TestListByDictatorFilters(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := contestant.NewContestantRepository(db)
	d := seedDictator(t, db, "khan")

	fighters := []contestant.Contestant{
		{Name: "Brick", Strength: 80, Agility: 40, Health: 100, Status: contestant.StatusAlive, DictatorID: &d.ID},
		{Name: "Shade", Strength: 50, Agility: 90, Health: 100, Status: contestant.StatusAlive, DictatorID: &d.ID},
		{Name: "Husk", Strength: 70, Agility: 30, Health: 0, Status: contestant.StatusDead, DictatorID: &d.ID},
	}
	for i := range fighters {
		require.NoError(t, repo.Create(&fighters[i]))
	}

	all, err := repo.ListByDictator(d.ID, contestant.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	alive := contestant.StatusAlive
	minStr := 60
	got, err := repo.ListByDictator(d.ID, contestant.Filter{Status: &alive, MinStrength: &minStr})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Brick", got[0].Name)

	minAgi := 85
	got, err = repo.ListByDictator(d.ID, contestant.Filter{MinAgility: &minAgi})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Shade", got[0].Name)
}

func TestListOpponentsExcludesOwnAndDead(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := contestant.NewContestantRepository(db)
	d1 := seedDictator(t, db, "khan")
	d2 := seedDictator(t, db, "vlad")

	mine := contestant.Contestant{Name: "Brick", Health: 100, Status: contestant.StatusAlive, DictatorID: &d1.ID}
	theirs := contestant.Contestant{Name: "Shade", Health: 100, Status: contestant.StatusAlive, DictatorID: &d2.ID}
	dead := contestant.Contestant{Name: "Husk", Health: 0, Status: contestant.StatusDead, DictatorID: &d2.ID}
	for _, ct := range []*contestant.Contestant{&mine, &theirs, &dead} {
		require.NoError(t, repo.Create(ct))
	}

	opponents, err := repo.ListOpponents(d1.ID)
	require.NoError(t, err)
	require.Len(t, opponents, 1)
	assert.Equal(t, "Shade", opponents[0].ContestantName)
	assert.Equal(t, "vlad", opponents[0].DictatorName)
}

func TestReleaseIsPermanent(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := contestant.NewContestantRepository(db)
	d1 := seedDictator(t, db, "khan")
	d2 := seedDictator(t, db, "vlad")

	ct := contestant.Contestant{Name: "Brick", Health: 100, Status: contestant.StatusAlive, DictatorID: &d1.ID}
	require.NoError(t, repo.Create(&ct))

	// Only the owner can release.
	err := repo.Release(ct.ID, d2.ID)
	assert.ErrorIs(t, err, contestant.ErrNotOwned)

	require.NoError(t, repo.Release(ct.ID, d1.ID))

	freed, err := repo.GetByID(ct.ID)
	require.NoError(t, err)
	assert.Equal(t, contestant.StatusFree, freed.Status)
	assert.True(t, freed.Released)
	assert.Nil(t, freed.DictatorID)

	// Ownership is gone, so even the former owner cannot release again.
	err = repo.Release(ct.ID, d1.ID)
	assert.ErrorIs(t, err, contestant.ErrNotOwned)
}

func TestGetDetailJoinsOwner(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := contestant.NewContestantRepository(db)
	d := seedDictator(t, db, "khan")

	ct := contestant.Contestant{Name: "Brick", Nickname: "Wall", Strength: 80, Health: 100, Status: contestant.StatusAlive, DictatorID: &d.ID}
	require.NoError(t, repo.Create(&ct))

	detail, err := repo.GetDetail(ct.ID)
	require.NoError(t, err)
	assert.Equal(t, "Brick", detail.ContestantName)
	assert.Equal(t, "khan", detail.DictatorName)
	assert.Equal(t, "khanland", detail.Territory)

	_, err = repo.GetDetail(9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
