package admin

import (
	"errors"

	"gorm.io/gorm"

	"github.com/jfcordova/dictator-arena/internal/user"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrSelfDelete   = errors.New("cannot delete your own account")
)

// UserSummary is the admin's view of an account, joined with its profile
// state where one exists.
type UserSummary struct {
	ID             uint   `json:"id"`
	Username       string `json:"username"`
	Role           string `json:"role"`
	Blocked        bool   `json:"blocked"`
	FailedAttempts int    `json:"failedAttempts"`
}

type AdminRepository interface {
	ListUsers(excludeID uint) ([]UserSummary, error)
	DeleteUser(id, callerID uint) error
	UnlockUser(id uint) error
}

type adminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) ListUsers(excludeID uint) ([]UserSummary, error) {
	var users []user.User
	if err := r.db.Where("id <> ?", excludeID).Order("role asc, username asc").Find(&users).Error; err != nil {
		return nil, err
	}

	summaries := make([]UserSummary, 0, len(users))
	for _, u := range users {
		s := UserSummary{ID: u.ID, Username: u.Username, Role: u.Role}
		switch u.Role {
		case user.RoleDictator:
			var d user.Dictator
			if err := r.db.Where("user_id = ?", u.ID).First(&d).Error; err == nil {
				s.Blocked = d.Blocked
				s.FailedAttempts = d.FailedAttempts
			}
		case user.RoleSponsor:
			var sp user.Sponsor
			if err := r.db.Where("user_id = ?", u.ID).First(&sp).Error; err == nil {
				s.Blocked = sp.Blocked
				s.FailedAttempts = sp.FailedAttempts
			}
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

// DeleteUser removes an account and its role profile. The admin cannot
// remove themselves.
func (r *adminRepository) DeleteUser(id, callerID uint) error {
	if id == callerID {
		return ErrSelfDelete
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		var u user.User
		err := tx.First(&u, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		if err != nil {
			return err
		}

		switch u.Role {
		case user.RoleDictator:
			if err := tx.Where("user_id = ?", u.ID).Delete(&user.Dictator{}).Error; err != nil {
				return err
			}
		case user.RoleSponsor:
			if err := tx.Where("user_id = ?", u.ID).Delete(&user.Sponsor{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&u).Error
	})
}

// UnlockUser clears the lockout state on the account's role profile.
func (r *adminRepository) UnlockUser(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var u user.User
		err := tx.First(&u, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		if err != nil {
			return err
		}

		reset := map[string]interface{}{"failed_attempts": 0, "blocked": false}
		switch u.Role {
		case user.RoleDictator:
			return tx.Model(&user.Dictator{}).Where("user_id = ?", u.ID).Updates(reset).Error
		case user.RoleSponsor:
			return tx.Model(&user.Sponsor{}).Where("user_id = ?", u.ID).Updates(reset).Error
		}
		return nil
	})
}
