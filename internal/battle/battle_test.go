package battle_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jfcordova/dictator-arena/internal/battle"
	"github.com/jfcordova/dictator-arena/internal/contestant"
	"github.com/jfcordova/dictator-arena/internal/testutil"
	"github.com/jfcordova/dictator-arena/internal/user"
)

type fixture struct {
	db        *gorm.DB
	repo      battle.BattleRepository
	dictator1 user.Dictator
	dictator2 user.Dictator
	fighter1  contestant.Contestant
	fighter2  contestant.Contestant
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.OpenTestDB(t)

	f := &fixture{db: db, repo: battle.NewBattleRepository(db)}

	u1 := user.User{Username: "khan", Password: "x", Role: user.RoleDictator}
	u2 := user.User{Username: "vlad", Password: "x", Role: user.RoleDictator}
	require.NoError(t, db.Create(&u1).Error)
	require.NoError(t, db.Create(&u2).Error)

	f.dictator1 = user.Dictator{UserID: u1.ID, Name: "Khan", Territory: "East", LoyaltyScore: 75}
	f.dictator2 = user.Dictator{UserID: u2.ID, Name: "Vlad", Territory: "West", LoyaltyScore: 75}
	require.NoError(t, db.Create(&f.dictator1).Error)
	require.NoError(t, db.Create(&f.dictator2).Error)

	f.fighter1 = contestant.Contestant{Name: "Brick", Strength: 80, Agility: 40, Health: 100, Status: contestant.StatusAlive, DictatorID: &f.dictator1.ID}
	f.fighter2 = contestant.Contestant{Name: "Shade", Strength: 60, Agility: 70, Health: 100, Status: contestant.StatusAlive, DictatorID: &f.dictator2.ID}
	require.NoError(t, db.Create(&f.fighter1).Error)
	require.NoError(t, db.Create(&f.fighter2).Error)

	return f
}

// started drives a fresh battle through Pending, Approved and Start.
func (f *fixture) started(t *testing.T) *battle.Battle {
	t.Helper()
	b, err := f.repo.Propose(f.dictator1.ID, f.fighter1.ID, f.fighter2.ID)
	require.NoError(t, err)
	_, err = f.repo.Approve(b.ID, "Arena1")
	require.NoError(t, err)
	b, _, err = f.repo.Start(b.ID)
	require.NoError(t, err)
	return b
}

func TestProposeValidations(t *testing.T) {
	f := newFixture(t)

	_, err := f.repo.Propose(f.dictator1.ID, f.fighter1.ID, 9999)
	assert.ErrorIs(t, err, battle.ErrContestantMissing)

	third := contestant.Contestant{Name: "Twin", Health: 100, Status: contestant.StatusAlive, DictatorID: &f.dictator1.ID}
	require.NoError(t, f.db.Create(&third).Error)
	_, err = f.repo.Propose(f.dictator1.ID, f.fighter1.ID, third.ID)
	assert.ErrorIs(t, err, battle.ErrSameOwner)

	stranger := contestant.Contestant{Name: "Ghost", Health: 100, Status: contestant.StatusAlive}
	require.NoError(t, f.db.Create(&stranger).Error)
	_, err = f.repo.Propose(f.dictator1.ID, stranger.ID, f.fighter2.ID)
	assert.ErrorIs(t, err, battle.ErrNotProposer)

	b, err := f.repo.Propose(f.dictator1.ID, f.fighter1.ID, f.fighter2.ID)
	require.NoError(t, err)
	assert.Equal(t, battle.StatusPending, b.Status)
}

func TestLifecycleRejectsOutOfOrderTransitions(t *testing.T) {
	f := newFixture(t)

	b, err := f.repo.Propose(f.dictator1.ID, f.fighter1.ID, f.fighter2.ID)
	require.NoError(t, err)

	// Pending battles cannot start or close.
	_, _, err = f.repo.Start(b.ID)
	assert.ErrorIs(t, err, battle.ErrStateConflict)
	err = f.repo.Close(b.ID, f.fighter1.ID, false, nil)
	assert.ErrorIs(t, err, battle.ErrStateConflict)

	_, err = f.repo.Approve(b.ID, "Arena1")
	require.NoError(t, err)

	// A second approval must fail.
	_, err = f.repo.Approve(b.ID, "Arena1")
	assert.ErrorIs(t, err, battle.ErrStateConflict)

	_, _, err = f.repo.Start(b.ID)
	require.NoError(t, err)
	_, _, err = f.repo.Start(b.ID)
	assert.ErrorIs(t, err, battle.ErrStateConflict)

	require.NoError(t, f.repo.Close(b.ID, f.fighter1.ID, false, nil))
	err = f.repo.Close(b.ID, f.fighter1.ID, false, nil)
	assert.ErrorIs(t, err, battle.ErrStateConflict)

	_, _, err = f.repo.Start(9999)
	assert.ErrorIs(t, err, battle.ErrBattleNotFound)
}

func TestApproveCreatesEventWithDefaultRules(t *testing.T) {
	f := newFixture(t)

	b, err := f.repo.Propose(f.dictator1.ID, f.fighter1.ID, f.fighter2.ID)
	require.NoError(t, err)

	event, err := f.repo.Approve(b.ID, "Arena1")
	require.NoError(t, err)
	assert.Equal(t, "Arena1", event.Name)
	assert.Equal(t, battle.DefaultEventRules, event.Rules)
	assert.Equal(t, f.dictator1.ID, event.OrganizerID)

	var link battle.EventBattle
	require.NoError(t, f.db.Where("event_id = ? AND battle_id = ?", event.ID, b.ID).First(&link).Error)
}

func TestApproveRecomputesEventWindow(t *testing.T) {
	f := newFixture(t)

	early := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	late := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)

	b1, err := f.repo.Propose(f.dictator1.ID, f.fighter1.ID, f.fighter2.ID)
	require.NoError(t, err)
	b2, err := f.repo.Propose(f.dictator2.ID, f.fighter2.ID, f.fighter1.ID)
	require.NoError(t, err)
	require.NoError(t, f.db.Model(b1).Update("date", early).Error)
	require.NoError(t, f.db.Model(b2).Update("date", late).Error)

	_, err = f.repo.Approve(b1.ID, "Arena1")
	require.NoError(t, err)
	event, err := f.repo.Approve(b2.ID, "Arena1")
	require.NoError(t, err)

	assert.True(t, event.StartDate.Equal(early), "start should be the earliest battle date")
	assert.True(t, event.EndDate.Equal(late), "end should be the latest battle date")
}

func TestStartAggregatesBuffsWithoutConsumingThem(t *testing.T) {
	f := newFixture(t)

	b, err := f.repo.Propose(f.dictator1.ID, f.fighter1.ID, f.fighter2.ID)
	require.NoError(t, err)
	_, err = f.repo.Approve(b.ID, "Arena1")
	require.NoError(t, err)

	require.NoError(t, f.db.Create(&contestant.Buff{
		Name: "Rage", StrengthBoost: 5, AgilityBoost: 1,
		SourceType: contestant.SourceDictator, SourceID: f.dictator1.ID, ContestantID: f.fighter1.ID,
	}).Error)
	require.NoError(t, f.db.Create(&contestant.Buff{
		Name: "Focus", StrengthBoost: 2, AgilityBoost: 4,
		SourceType: contestant.SourceSponsor, SourceID: 1, ContestantID: f.fighter1.ID,
	}).Error)

	_, preview, err := f.repo.Start(b.ID)
	require.NoError(t, err)

	assert.Equal(t, battle.BuffPreview{Strength: 7, Agility: 5}, preview[f.fighter1.ID])
	_, ok := preview[f.fighter2.ID]
	assert.False(t, ok)

	var count int64
	require.NoError(t, f.db.Model(&contestant.Buff{}).Where("contestant_id = ?", f.fighter1.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestCloseSettlesEverything(t *testing.T) {
	f := newFixture(t)
	b := f.started(t)

	// Two sponsors gifted an item, one to each side.
	su1 := user.User{Username: "acme", Password: "x", Role: user.RoleSponsor}
	su2 := user.User{Username: "omni", Password: "x", Role: user.RoleSponsor}
	require.NoError(t, f.db.Create(&su1).Error)
	require.NoError(t, f.db.Create(&su2).Error)
	winnerFan := user.Sponsor{UserID: su1.ID, CompanyName: "Acme", LoyaltyScore: 75}
	loserFan := user.Sponsor{UserID: su2.ID, CompanyName: "Omni", LoyaltyScore: 75}
	require.NoError(t, f.db.Create(&winnerFan).Error)
	require.NoError(t, f.db.Create(&loserFan).Error)
	require.NoError(t, f.db.Create(&contestant.Gift{ContestantID: f.fighter1.ID, ItemName: "Axe", Source: contestant.SourceSponsor, GiverID: winnerFan.ID}).Error)
	require.NoError(t, f.db.Create(&contestant.Gift{ContestantID: f.fighter2.ID, ItemName: "Club", Source: contestant.SourceSponsor, GiverID: loserFan.ID}).Error)

	// Open bets on both sides.
	winBet := battle.Bet{BattleID: b.ID, BettorID: winnerFan.ID, BettorType: battle.BettorSponsor, Amount: 50, PredictedWinner: f.fighter1.ID, Status: battle.BetOpen}
	loseBet := battle.Bet{BattleID: b.ID, BettorID: loserFan.ID, BettorType: battle.BettorSponsor, Amount: 30, PredictedWinner: f.fighter2.ID, Status: battle.BetOpen}
	require.NoError(t, f.db.Create(&winBet).Error)
	require.NoError(t, f.db.Create(&loseBet).Error)

	require.NoError(t, f.repo.Close(b.ID, f.fighter1.ID, false, nil))

	var closed battle.Battle
	require.NoError(t, f.db.First(&closed, b.ID).Error)
	assert.Equal(t, battle.StatusClosed, closed.Status)
	require.NotNil(t, closed.WinnerID)
	assert.Equal(t, f.fighter1.ID, *closed.WinnerID)

	// Winner gains a win, health stays capped. Loser takes damage.
	var winner, loser contestant.Contestant
	require.NoError(t, f.db.First(&winner, f.fighter1.ID).Error)
	require.NoError(t, f.db.First(&loser, f.fighter2.ID).Error)
	assert.Equal(t, 1, winner.Wins)
	assert.Equal(t, 100, winner.Health)
	assert.Equal(t, 1, loser.Losses)
	assert.Equal(t, 90, loser.Health)

	// Losing wipes the owner's loyalty and locks the account.
	var d1, d2 user.Dictator
	require.NoError(t, f.db.First(&d1, f.dictator1.ID).Error)
	require.NoError(t, f.db.First(&d2, f.dictator2.ID).Error)
	assert.Equal(t, 80, d1.LoyaltyScore)
	assert.Equal(t, 0, d2.LoyaltyScore)
	assert.True(t, d2.Blocked)
	assert.False(t, d1.Blocked)

	// Sponsor loyalty follows the gifted contestant's fate.
	var s1, s2 user.Sponsor
	require.NoError(t, f.db.First(&s1, winnerFan.ID).Error)
	require.NoError(t, f.db.First(&s2, loserFan.ID).Error)
	assert.Equal(t, 80, s1.LoyaltyScore)
	assert.Equal(t, 65, s2.LoyaltyScore)

	// Correct prediction doubles the stake, the rest pay nothing.
	var wb, lb battle.Bet
	require.NoError(t, f.db.First(&wb, winBet.ID).Error)
	require.NoError(t, f.db.First(&lb, loseBet.ID).Error)
	assert.Equal(t, battle.BetWon, wb.Status)
	assert.Equal(t, 100, wb.Payout)
	assert.Equal(t, battle.BetLost, lb.Status)
	assert.Equal(t, 0, lb.Payout)
}

func TestCloseRejectsBadWinnerAndCasualty(t *testing.T) {
	f := newFixture(t)
	b := f.started(t)

	err := f.repo.Close(b.ID, 9999, false, nil)
	assert.ErrorIs(t, err, battle.ErrInvalidWinner)

	err = f.repo.Close(b.ID, f.fighter1.ID, true, nil)
	assert.ErrorIs(t, err, battle.ErrInvalidCasualty)

	outsider := uint(9999)
	err = f.repo.Close(b.ID, f.fighter1.ID, true, &outsider)
	assert.ErrorIs(t, err, battle.ErrInvalidCasualty)

	// A failed close leaves the battle untouched.
	current, err := f.repo.GetByID(b.ID)
	require.NoError(t, err)
	assert.Equal(t, battle.StatusStart, current.Status)
}

func TestCloseWithDeathMarksCasualtyDead(t *testing.T) {
	f := newFixture(t)
	b := f.started(t)

	require.NoError(t, f.repo.Close(b.ID, f.fighter1.ID, true, &f.fighter2.ID))

	var casualty contestant.Contestant
	require.NoError(t, f.db.First(&casualty, f.fighter2.ID).Error)
	assert.Equal(t, contestant.StatusDead, casualty.Status)
	assert.Equal(t, 0, casualty.Health)
	assert.Equal(t, 1, casualty.Losses)
}

func TestCloseSkipsLoyaltyForReleasedContestant(t *testing.T) {
	f := newFixture(t)
	b := f.started(t)

	// The loser's owner released it mid-battle; nobody takes the hit.
	require.NoError(t, f.db.Model(&contestant.Contestant{}).Where("id = ?", f.fighter2.ID).
		Updates(map[string]interface{}{"dictator_id": nil, "released": true, "status": contestant.StatusFree}).Error)

	require.NoError(t, f.repo.Close(b.ID, f.fighter1.ID, false, nil))

	var d2 user.Dictator
	require.NoError(t, f.db.First(&d2, f.dictator2.ID).Error)
	assert.Equal(t, 75, d2.LoyaltyScore)
	assert.False(t, d2.Blocked)
}

func TestListActiveEvents(t *testing.T) {
	f := newFixture(t)

	b, err := f.repo.Propose(f.dictator1.ID, f.fighter1.ID, f.fighter2.ID)
	require.NoError(t, err)
	_, err = f.repo.Approve(b.ID, "Arena1")
	require.NoError(t, err)

	events, err := f.repo.ListActiveEvents()
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Arena1", events[0].Name)
	assert.EqualValues(t, 1, events[0].BattlesCount)

	// Once the battle is over the event drops off the active list.
	_, _, err = f.repo.Start(b.ID)
	require.NoError(t, err)
	require.NoError(t, f.repo.Close(b.ID, f.fighter1.ID, false, nil))

	events, err = f.repo.ListActiveEvents()
	require.NoError(t, err)
	assert.Empty(t, events)
}
