package user

import (
	"strings"

	"gorm.io/gorm"
)

const (
	RoleAdmin    = "Admin"
	RoleDictator = "Dictator"
	RoleSponsor  = "Sponsor"
)

const (
	// PlaceholderPrefix marks profile fields that have not been activated yet.
	PlaceholderPrefix = "TEMP_"

	MinLoyalty = 0
	MaxLoyalty = 100
)

type User struct {
	gorm.Model
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Password string `gorm:"not null" json:"-"`
	Role     string `gorm:"not null;index" json:"role"`
}

// Dictator is the role profile owning contestants. Name and Territory start as
// placeholders until the account is activated.
type Dictator struct {
	gorm.Model
	UserID         uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	Name           string `gorm:"not null" json:"name"`
	Territory      string `gorm:"not null" json:"territory"`
	LoyaltyScore   int    `gorm:"default:75" json:"loyalty_score"`
	FailedAttempts int    `gorm:"default:0" json:"failed_attempts"`
	Blocked        bool   `gorm:"default:false" json:"blocked"`
}

// Sponsor is the role profile gifting items and trading in the black market.
type Sponsor struct {
	gorm.Model
	UserID           uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	CompanyName      string `gorm:"not null" json:"company_name"`
	PreferredFighter *uint  `json:"preferred_fighter,omitempty"`
	LoyaltyScore     int    `gorm:"default:75" json:"loyalty_score"`
	FailedAttempts   int    `gorm:"default:0" json:"failed_attempts"`
	Blocked          bool   `gorm:"default:false" json:"blocked"`
}

// Activated reports whether the dictator has replaced the placeholder profile.
func (d *Dictator) Activated() bool {
	return !strings.HasPrefix(d.Name, PlaceholderPrefix) && !strings.HasPrefix(d.Territory, PlaceholderPrefix)
}

// Activated reports whether the sponsor has replaced the placeholder profile.
func (s *Sponsor) Activated() bool {
	return !strings.HasPrefix(s.CompanyName, PlaceholderPrefix)
}
