package battle

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/jfcordova/dictator-arena/internal/contestant"
	"github.com/jfcordova/dictator-arena/internal/user"
	"github.com/jfcordova/dictator-arena/pkg/utils"
)

var (
	ErrBattleNotFound    = errors.New("battle does not exist")
	ErrStateConflict     = errors.New("battle is not in the required state")
	ErrContestantMissing = errors.New("one or both contestants do not exist")
	ErrSameOwner         = errors.New("both contestants belong to the same dictator")
	ErrNotProposer       = errors.New("at least one contestant must belong to the proposer")
	ErrInvalidWinner     = errors.New("winner is not part of this battle")
	ErrInvalidCasualty   = errors.New("casualty is not part of this battle")
)

type BattleRepository interface {
	GetByID(id uint) (*Battle, error)
	ListByStatus(status string) ([]Battle, error)
	Propose(dictatorID, contestant1, contestant2 uint) (*Battle, error)
	Approve(battleID uint, eventName string) (*Event, error)
	Start(battleID uint) (*Battle, map[uint]BuffPreview, error)
	Close(battleID, winnerID uint, deathOccurred bool, casualtyID *uint) error
	ListActiveEvents() ([]EventSummary, error)
}

type battleRepository struct {
	db *gorm.DB
}

func NewBattleRepository(db *gorm.DB) BattleRepository {
	return &battleRepository{db: db}
}

// EventSummary lists an event with the number of battles fought under it.
type EventSummary struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	Rules        string    `json:"rules"`
	BattlesCount int64     `json:"battles_count"`
}

func (r *battleRepository) GetByID(id uint) (*Battle, error) {
	var b Battle
	if err := r.db.First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBattleNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *battleRepository) ListByStatus(status string) ([]Battle, error) {
	var battles []Battle
	if err := r.db.Where("status = ?", status).Order("date ASC").Find(&battles).Error; err != nil {
		return nil, err
	}
	return battles, nil
}

// Propose creates a Pending battle after validating ownership rules: both
// contestants must exist, must not share an owner, and at least one must
// belong to the proposing dictator.
func (r *battleRepository) Propose(dictatorID, contestant1, contestant2 uint) (*Battle, error) {
	var c1, c2 contestant.Contestant
	if err := r.db.First(&c1, contestant1).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContestantMissing
		}
		return nil, err
	}
	if err := r.db.First(&c2, contestant2).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContestantMissing
		}
		return nil, err
	}

	if c1.DictatorID != nil && c2.DictatorID != nil && *c1.DictatorID == *c2.DictatorID {
		return nil, ErrSameOwner
	}
	ownsFirst := c1.DictatorID != nil && *c1.DictatorID == dictatorID
	ownsSecond := c2.DictatorID != nil && *c2.DictatorID == dictatorID
	if !ownsFirst && !ownsSecond {
		return nil, ErrNotProposer
	}

	b := Battle{
		Contestant1: contestant1,
		Contestant2: contestant2,
		DictatorID:  dictatorID,
		Status:      StatusPending,
		Date:        time.Now(),
	}
	if err := r.db.Create(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// Approve moves a Pending battle to Approved and associates it with the named
// event, creating the event with default rules when it does not exist. The
// event's start/end dates are recomputed from all of its battles.
func (r *battleRepository) Approve(battleID uint, eventName string) (*Event, error) {
	var event Event
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var b Battle
		if err := tx.First(&b, battleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBattleNotFound
			}
			return err
		}
		if b.Status != StatusPending {
			return ErrStateConflict
		}

		if err := tx.Model(&b).Update("status", StatusApproved).Error; err != nil {
			return err
		}

		if err := tx.Where("name = ?", eventName).First(&event).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			event = Event{
				Name:        eventName,
				OrganizerID: b.DictatorID,
				StartDate:   time.Now(),
				Rules:       DefaultEventRules,
			}
			if err := tx.Create(&event).Error; err != nil {
				return err
			}
		}

		if err := tx.Create(&EventBattle{EventID: event.ID, BattleID: b.ID}).Error; err != nil {
			return err
		}

		// Recompute the event window as min/max date over its battles.
		var dates []time.Time
		if err := tx.Model(&Battle{}).
			Joins("JOIN event_battles ON event_battles.battle_id = battles.id").
			Where("event_battles.event_id = ?", event.ID).
			Order("battles.date ASC").
			Pluck("battles.date", &dates).Error; err != nil {
			return err
		}
		if len(dates) > 0 {
			event.StartDate = dates[0]
			event.EndDate = dates[len(dates)-1]
			if err := tx.Model(&event).Updates(map[string]interface{}{
				"start_date": event.StartDate,
				"end_date":   event.EndDate,
			}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// Start moves an Approved battle to Start and returns the aggregated buff
// deltas per contestant. Buffs stay in place; the preview does not consume them.
func (r *battleRepository) Start(battleID uint) (*Battle, map[uint]BuffPreview, error) {
	var b Battle
	preview := make(map[uint]BuffPreview)

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&b, battleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBattleNotFound
			}
			return err
		}
		if b.Status != StatusApproved {
			return ErrStateConflict
		}

		if err := tx.Model(&b).Update("status", StatusStart).Error; err != nil {
			return err
		}

		var buffs []contestant.Buff
		if err := tx.Where("contestant_id IN ?", []uint{b.Contestant1, b.Contestant2}).Find(&buffs).Error; err != nil {
			return err
		}
		for _, buff := range buffs {
			stats := preview[buff.ContestantID]
			stats.Strength += buff.StrengthBoost
			stats.Agility += buff.AgilityBoost
			preview[buff.ContestantID] = stats
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &b, preview, nil
}

// Close settles a started battle: contestant stats, dictator and sponsor
// loyalty, the system-wide lockout sweep, and bet payouts, all in one
// transaction. Any failure rolls the whole transition back.
func (r *battleRepository) Close(battleID, winnerID uint, deathOccurred bool, casualtyID *uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var b Battle
		if err := tx.First(&b, battleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBattleNotFound
			}
			return err
		}
		if b.Status != StatusStart {
			return ErrStateConflict
		}

		if winnerID != b.Contestant1 && winnerID != b.Contestant2 {
			return ErrInvalidWinner
		}
		loserID := b.Contestant1
		if winnerID == b.Contestant1 {
			loserID = b.Contestant2
		}

		if deathOccurred {
			if casualtyID == nil || (*casualtyID != b.Contestant1 && *casualtyID != b.Contestant2) {
				return ErrInvalidCasualty
			}
		}

		if err := tx.Model(&b).Updates(map[string]interface{}{
			"status":         StatusClosed,
			"winner_id":      winnerID,
			"death_occurred": deathOccurred,
			"casualty_id":    casualtyID,
		}).Error; err != nil {
			return err
		}

		if err := settleContestants(tx, winnerID, loserID, deathOccurred, casualtyID); err != nil {
			return err
		}
		if err := settleDictatorLoyalty(tx, winnerID, loserID); err != nil {
			return err
		}
		if err := settleSponsorLoyalty(tx, winnerID, loserID); err != nil {
			return err
		}
		return settleBets(tx, b.ID, winnerID)
	})
}

func settleContestants(tx *gorm.DB, winnerID, loserID uint, deathOccurred bool, casualtyID *uint) error {
	var winner, loser contestant.Contestant
	if err := tx.First(&winner, winnerID).Error; err != nil {
		return err
	}
	if err := tx.First(&loser, loserID).Error; err != nil {
		return err
	}

	if err := tx.Model(&winner).Updates(map[string]interface{}{
		"wins":   winner.Wins + 1,
		"health": utils.Clamp(winner.Health+10, contestant.MinHealth, contestant.MaxHealth),
	}).Error; err != nil {
		return err
	}
	if err := tx.Model(&loser).Updates(map[string]interface{}{
		"losses": loser.Losses + 1,
		"health": utils.Clamp(loser.Health-10, contestant.MinHealth, contestant.MaxHealth),
	}).Error; err != nil {
		return err
	}

	if deathOccurred {
		return tx.Model(&contestant.Contestant{}).
			Where("id = ?", *casualtyID).
			Updates(map[string]interface{}{"status": contestant.StatusDead, "health": 0}).Error
	}
	return nil
}

// settleDictatorLoyalty rewards the winner's owner and punishes the loser's.
// Losing costs far more than winning gains. Afterwards every dictator at zero
// loyalty, participant or not, is locked out.
func settleDictatorLoyalty(tx *gorm.DB, winnerID, loserID uint) error {
	if err := adjustOwnerLoyalty(tx, winnerID, 5); err != nil {
		return err
	}
	if err := adjustOwnerLoyalty(tx, loserID, -100); err != nil {
		return err
	}

	return tx.Model(&user.Dictator{}).
		Where("loyalty_score = 0").
		Update("blocked", true).Error
}

func adjustOwnerLoyalty(tx *gorm.DB, contestantID uint, delta int) error {
	var ct contestant.Contestant
	if err := tx.First(&ct, contestantID).Error; err != nil {
		return err
	}
	if ct.DictatorID == nil {
		// Released contestants have no owner to credit or punish.
		return nil
	}

	var d user.Dictator
	if err := tx.First(&d, *ct.DictatorID).Error; err != nil {
		return err
	}
	return tx.Model(&d).
		Update("loyalty_score", utils.Clamp(d.LoyaltyScore+delta, user.MinLoyalty, user.MaxLoyalty)).Error
}

// settleSponsorLoyalty adjusts every sponsor who gifted an item to either
// contestant: +5 when their contestant won, -10 when it lost.
func settleSponsorLoyalty(tx *gorm.DB, winnerID, loserID uint) error {
	var gifts []contestant.Gift
	if err := tx.Where("contestant_id IN ? AND source = ?", []uint{winnerID, loserID}, contestant.SourceSponsor).
		Find(&gifts).Error; err != nil {
		return err
	}

	for _, gift := range gifts {
		var s user.Sponsor
		if err := tx.First(&s, gift.GiverID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return err
		}

		delta := -10
		if gift.ContestantID == winnerID {
			delta = 5
		}
		if err := tx.Model(&s).
			Update("loyalty_score", utils.Clamp(s.LoyaltyScore+delta, user.MinLoyalty, user.MaxLoyalty)).Error; err != nil {
			return err
		}
	}
	return nil
}

// settleBets pays winning bets double and zeroes the rest. Only Open bets are
// touched, so a payout can never be computed twice.
func settleBets(tx *gorm.DB, battleID, winnerID uint) error {
	if err := tx.Model(&Bet{}).
		Where("battle_id = ? AND status = ? AND predicted_winner = ?", battleID, BetOpen, winnerID).
		Updates(map[string]interface{}{"status": BetWon, "payout": gorm.Expr("amount * 2")}).Error; err != nil {
		return err
	}
	return tx.Model(&Bet{}).
		Where("battle_id = ? AND status = ?", battleID, BetOpen).
		Updates(map[string]interface{}{"status": BetLost, "payout": 0}).Error
}

// ListActiveEvents returns events that still have approved battles scheduled.
func (r *battleRepository) ListActiveEvents() ([]EventSummary, error) {
	var summaries []EventSummary
	err := r.db.Model(&Event{}).
		Select("events.id, events.name, events.start_date, events.end_date, events.rules, COUNT(battles.id) AS battles_count").
		Joins("JOIN event_battles ON events.id = event_battles.event_id").
		Joins("JOIN battles ON event_battles.battle_id = battles.id").
		Where("battles.status = ?", StatusApproved).
		Group("events.id, events.name, events.start_date, events.end_date, events.rules").
		Order("events.start_date ASC").
		Scan(&summaries).Error
	return summaries, err
}
