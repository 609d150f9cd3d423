package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jfcordova/dictator-arena/internal/user"
)

// Actor bundles the authenticated user with its role profile so handlers can
// ask capability questions instead of re-querying role tables.
type Actor struct {
	UserID   uint
	Role     string
	Dictator *user.Dictator
	Sponsor  *user.Sponsor

	db *gorm.DB
}

var ErrNoProfile = errors.New("user has no role profile")

// ResolveActor loads the actor for the authenticated user, including the
// dictator or sponsor profile when one exists.
func ResolveActor(c *gin.Context, db *gorm.DB) (*Actor, error) {
	userID, err := GetUserIDFromContext(c)
	if err != nil {
		return nil, err
	}

	actor := &Actor{
		UserID: userID,
		Role:   c.GetString(AuthRoleKey),
		db:     db,
	}

	switch actor.Role {
	case user.RoleDictator:
		var d user.Dictator
		if err := db.Where("user_id = ?", userID).First(&d).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNoProfile
			}
			return nil, err
		}
		actor.Dictator = &d
	case user.RoleSponsor:
		var s user.Sponsor
		if err := db.Where("user_id = ?", userID).First(&s).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNoProfile
			}
			return nil, err
		}
		actor.Sponsor = &s
	}

	return actor, nil
}

func (a *Actor) IsAdmin() bool    { return a.Role == user.RoleAdmin }
func (a *Actor) IsDictator() bool { return a.Dictator != nil }
func (a *Actor) IsSponsor() bool  { return a.Sponsor != nil }

// ProfileID returns the role-profile id backing the actor, or 0 for admins.
func (a *Actor) ProfileID() uint {
	if a.Dictator != nil {
		return a.Dictator.ID
	}
	if a.Sponsor != nil {
		return a.Sponsor.ID
	}
	return 0
}

// OwnsContestant reports whether the actor's dictator profile owns the
// contestant. Always false for sponsors and admins.
func (a *Actor) OwnsContestant(contestantID uint) bool {
	if a.Dictator == nil {
		return false
	}
	var count int64
	a.db.Table("contestants").
		Where("id = ? AND dictator_id = ? AND deleted_at IS NULL", contestantID, a.Dictator.ID).
		Count(&count)
	return count > 0
}

// ActiveDictatorMiddleware rejects dictators who are blocked or have bled
// their loyalty score down to zero.
func ActiveDictatorMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := GetUserIDFromContext(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var d user.Dictator
		if err := db.Where("user_id = ? AND loyalty_score > 0 AND blocked = ?", userID, false).First(&d).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You have lost access to the system due to lack of loyalty."})
			return
		}

		c.Next()
	}
}
