package contestant

import "gorm.io/gorm"

const (
	StatusAlive = "Alive"
	StatusDead  = "Dead"
	StatusFree  = "Free"
)

const (
	SourceDictator = "dictator"
	SourceSponsor  = "sponsor"
)

const (
	MinHealth = 0
	MaxHealth = 100
)

// Contestant is a combatant owned by a dictator until released. Once released
// the ownership is permanently relinquished.
type Contestant struct {
	gorm.Model
	Name       string `gorm:"not null" json:"name"`
	Nickname   string `json:"nickname"`
	Strength   int    `json:"strength"`
	Agility    int    `json:"agility"`
	Health     int    `gorm:"default:100" json:"health"`
	Wins       int    `gorm:"default:0" json:"wins"`
	Losses     int    `gorm:"default:0" json:"losses"`
	Status     string `gorm:"default:Alive" json:"status"`
	Released   bool   `gorm:"default:false" json:"released"`
	DictatorID *uint  `gorm:"index" json:"dictator_id"`
}

// Gift is a one-shot weapon donation. A contestant holds at most one.
type Gift struct {
	gorm.Model
	ContestantID uint   `gorm:"uniqueIndex;not null" json:"contestant_id"`
	ItemName     string `gorm:"not null" json:"item_name"`
	Source       string `gorm:"not null" json:"source"` // dictator | sponsor
	GiverID      uint   `gorm:"not null" json:"giver_id"`
}

// Buff is an additive stat modifier. Duration is recorded but no timer ever
// expires it.
type Buff struct {
	gorm.Model
	Name          string `gorm:"not null" json:"name"`
	StrengthBoost int    `json:"strength_boost"`
	AgilityBoost  int    `json:"agility_boost"`
	Duration      int    `json:"duration"`
	SourceType    string `gorm:"not null" json:"source_type"` // dictator | sponsor
	SourceID      uint   `gorm:"not null" json:"source_id"`
	ContestantID  uint   `gorm:"index;not null" json:"contestant_id"`
}

// Filter restricts contestant listings; only supplied fields apply.
type Filter struct {
	Status      *string
	MinStrength *int
	MinAgility  *int
}
