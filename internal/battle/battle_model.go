package battle

import (
	"time"

	"gorm.io/gorm"
)

// Battle lifecycle states. Transitions only ever move forward:
// Pending -> Approved -> Start -> Closed.
const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusStart    = "Start"
	StatusClosed   = "Closed"
)

// Bet states.
const (
	BetOpen   = "Open"
	BetWon    = "Won"
	BetLost   = "Lost"
	BetClosed = "Closed"
)

const (
	BettorDictator = "Dictator"
	BettorSponsor  = "Sponsor"

	// MaxBetsPerBattle caps bets per (battle, bettor) pair.
	MaxBetsPerBattle = 2

	// DefaultEventRules is assigned to events created on battle approval.
	DefaultEventRules = "Death Duel"
)

type Battle struct {
	gorm.Model
	Contestant1   uint      `gorm:"not null" json:"contestant_1"`
	Contestant2   uint      `gorm:"not null" json:"contestant_2"`
	DictatorID    uint      `gorm:"not null;index" json:"dictator_id"`
	Status        string    `gorm:"default:Pending;index" json:"status"`
	WinnerID      *uint     `json:"winner_id"`
	DeathOccurred bool      `gorm:"default:false" json:"death_occurred"`
	CasualtyID    *uint     `json:"casualty_id"`
	Date          time.Time `gorm:"autoCreateTime" json:"date"`
}

type Event struct {
	gorm.Model
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	OrganizerID uint      `gorm:"not null" json:"organizer_id"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Rules       string    `json:"rules"`
}

// EventBattle links battles to the event they were approved under.
type EventBattle struct {
	gorm.Model
	EventID  uint `gorm:"index;not null" json:"event_id"`
	BattleID uint `gorm:"index;not null" json:"battle_id"`
}

type Bet struct {
	gorm.Model
	BattleID        uint      `gorm:"not null;index:idx_bets_battle_bettor" json:"battle_id"`
	BettorID        uint      `gorm:"not null;index:idx_bets_battle_bettor" json:"bettor_id"`
	BettorType      string    `gorm:"not null;index:idx_bets_battle_bettor" json:"bettor_type"`
	Amount          int       `gorm:"not null" json:"amount"`
	PredictedWinner uint      `gorm:"not null" json:"predicted_winner"`
	Status          string    `gorm:"default:Open" json:"status"`
	Payout          int       `gorm:"default:0" json:"payout"`
	BetDate         time.Time `gorm:"autoCreateTime" json:"bet_date"`
}

// BuffPreview is the aggregated stat delta returned when a battle starts.
type BuffPreview struct {
	Strength int `json:"strength"`
	Agility  int `json:"agility"`
}
