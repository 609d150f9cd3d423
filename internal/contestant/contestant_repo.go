package contestant

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrDuplicate   = errors.New("contestant with identical attributes already exists")
	ErrNotOwned    = errors.New("contestant does not belong to this dictator")
	ErrAlreadyFree = errors.New("contestant has already been released")
)

type ContestantRepository interface {
	Create(ct *Contestant) error
	GetByID(id uint) (*Contestant, error)
	ListByDictator(dictatorID uint, filter Filter) ([]Contestant, error)
	ListUnreleased() ([]Detail, error)
	GetDetail(id uint) (*Detail, error)
	ListOpponents(dictatorID uint) ([]Detail, error)
	Update(ct *Contestant, updates map[string]interface{}) (*Contestant, error)
	Release(id, dictatorID uint) error
	ExistsDuplicate(name, nickname string, strength, agility int) (bool, error)
}

type contestantRepository struct {
	db *gorm.DB
}

func NewContestantRepository(db *gorm.DB) ContestantRepository {
	return &contestantRepository{db: db}
}

// Detail joins a contestant with its owning dictator for read endpoints.
type Detail struct {
	ContestantID   uint   `json:"contestant_id"`
	ContestantName string `json:"contestant_name"`
	Nickname       string `json:"nickname"`
	Strength       int    `json:"strength"`
	Agility        int    `json:"agility"`
	Health         int    `json:"health"`
	Wins           int    `json:"wins"`
	Losses         int    `json:"losses"`
	Status         string `json:"status"`
	Released       bool   `json:"released"`
	DictatorID     uint   `json:"dictator_id"`
	DictatorName   string `json:"dictator_name"`
	Territory      string `json:"territory"`
}

const detailSelect = `contestants.id AS contestant_id, contestants.name AS contestant_name,
contestants.nickname, contestants.strength, contestants.agility, contestants.health,
contestants.wins, contestants.losses, contestants.status, contestants.released,
dictators.id AS dictator_id, dictators.name AS dictator_name, dictators.territory`

func (r *contestantRepository) Create(ct *Contestant) error {
	return r.db.Create(ct).Error
}

func (r *contestantRepository) GetByID(id uint) (*Contestant, error) {
	var ct Contestant
	if err := r.db.First(&ct, id).Error; err != nil {
		return nil, err
	}
	return &ct, nil
}

func (r *contestantRepository) ExistsDuplicate(name, nickname string, strength, agility int) (bool, error) {
	var count int64
	err := r.db.Model(&Contestant{}).
		Where("name = ? AND nickname = ? AND strength = ? AND agility = ?", name, nickname, strength, agility).
		Count(&count).Error
	return count > 0, err
}

func (r *contestantRepository) ListByDictator(dictatorID uint, filter Filter) ([]Contestant, error) {
	query := r.db.Where("dictator_id = ?", dictatorID)
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.MinStrength != nil {
		query = query.Where("strength >= ?", *filter.MinStrength)
	}
	if filter.MinAgility != nil {
		query = query.Where("agility >= ?", *filter.MinAgility)
	}

	var contestants []Contestant
	if err := query.Find(&contestants).Error; err != nil {
		return nil, err
	}
	return contestants, nil
}

func (r *contestantRepository) ListUnreleased() ([]Detail, error) {
	var details []Detail
	err := r.db.Model(&Contestant{}).
		Select(detailSelect).
		Joins("JOIN dictators ON contestants.dictator_id = dictators.id").
		Where("contestants.released = ?", false).
		Scan(&details).Error
	return details, err
}

func (r *contestantRepository) GetDetail(id uint) (*Detail, error) {
	var detail Detail
	err := r.db.Model(&Contestant{}).
		Select(detailSelect).
		Joins("JOIN dictators ON contestants.dictator_id = dictators.id").
		Where("contestants.id = ?", id).
		Scan(&detail).Error
	if err != nil {
		return nil, err
	}
	if detail.ContestantID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &detail, nil
}

// ListOpponents returns alive contestants belonging to other dictators.
func (r *contestantRepository) ListOpponents(dictatorID uint) ([]Detail, error) {
	var details []Detail
	err := r.db.Model(&Contestant{}).
		Select(detailSelect).
		Joins("JOIN dictators ON contestants.dictator_id = dictators.id").
		Where("contestants.dictator_id <> ? AND contestants.status = ?", dictatorID, StatusAlive).
		Scan(&details).Error
	return details, err
}

func (r *contestantRepository) Update(ct *Contestant, updates map[string]interface{}) (*Contestant, error) {
	if err := r.db.Model(ct).Updates(updates).Error; err != nil {
		return nil, err
	}
	return ct, nil
}

// Release frees a contestant permanently: status Free, ownership cleared.
func (r *contestantRepository) Release(id, dictatorID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var ct Contestant
		if err := tx.Where("id = ? AND dictator_id = ?", id, dictatorID).First(&ct).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotOwned
			}
			return err
		}
		if ct.Released {
			return ErrAlreadyFree
		}

		return tx.Model(&ct).Updates(map[string]interface{}{
			"status":      StatusFree,
			"released":    true,
			"dictator_id": nil,
		}).Error
	})
}
