package bet

import (
	"errors"

	"gorm.io/gorm"

	"github.com/jfcordova/dictator-arena/internal/battle"
	"github.com/jfcordova/dictator-arena/internal/contestant"
)

var (
	ErrBattleNotOpen      = errors.New("battle is not open for betting")
	ErrConflictOfInterest = errors.New("dictators cannot bet on battles involving their own contestants")
	ErrBetCapReached      = errors.New("bet cap reached for this battle")
)

type BetRepository interface {
	PlaceBet(bettorID uint, bettorType string, battleID, predictedWinner uint, amount int) (*battle.Bet, error)
	GetByBattle(battleID uint) ([]battle.Bet, error)
	GetByID(id uint) (*battle.Bet, error)
}

type betRepository struct {
	db *gorm.DB
}

func NewBetRepository(db *gorm.DB) BetRepository {
	return &betRepository{db: db}
}

// PlaceBet inserts an Open bet after validating the battle state, the
// conflict-of-interest rule, and the per-battle cap. All checks share one
// transaction with the insert so the cap recount happens on the write path.
func (r *betRepository) PlaceBet(bettorID uint, bettorType string, battleID, predictedWinner uint, amount int) (*battle.Bet, error) {
	var placed battle.Bet
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var b battle.Battle
		if err := tx.First(&b, battleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return battle.ErrBattleNotFound
			}
			return err
		}
		if b.Status != battle.StatusApproved {
			return ErrBattleNotOpen
		}

		if bettorType == battle.BettorDictator {
			var owned int64
			if err := tx.Model(&contestant.Contestant{}).
				Where("id IN ? AND dictator_id = ?", []uint{b.Contestant1, b.Contestant2}, bettorID).
				Count(&owned).Error; err != nil {
				return err
			}
			if owned > 0 {
				return ErrConflictOfInterest
			}
		}

		var existing int64
		if err := tx.Model(&battle.Bet{}).
			Where("battle_id = ? AND bettor_id = ? AND bettor_type = ?", battleID, bettorID, bettorType).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing >= battle.MaxBetsPerBattle {
			return ErrBetCapReached
		}

		placed = battle.Bet{
			BattleID:        battleID,
			BettorID:        bettorID,
			BettorType:      bettorType,
			Amount:          amount,
			PredictedWinner: predictedWinner,
			Status:          battle.BetOpen,
		}
		return tx.Create(&placed).Error
	})
	if err != nil {
		return nil, err
	}
	return &placed, nil
}

func (r *betRepository) GetByBattle(battleID uint) ([]battle.Bet, error) {
	var bets []battle.Bet
	if err := r.db.Where("battle_id = ?", battleID).Find(&bets).Error; err != nil {
		return nil, err
	}
	return bets, nil
}

func (r *betRepository) GetByID(id uint) (*battle.Bet, error) {
	var b battle.Bet
	if err := r.db.First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}
