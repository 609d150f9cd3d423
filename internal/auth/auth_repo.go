package auth

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jfcordova/dictator-arena/internal/user"
	"github.com/jfcordova/dictator-arena/pkg/utils"
)

var (
	ErrUsernameTaken  = errors.New("username already taken")
	ErrAdminExists    = errors.New("an admin account already exists")
	ErrUserNotFound   = errors.New("user not found")
	ErrNameTaken      = errors.New("that name is already in use")
	ErrTerritoryTaken = errors.New("that territory is already claimed")
	ErrCompanyTaken   = errors.New("that company name is already in use")
	ErrNoProfile        = errors.New("no profile for this user")
	ErrAlreadyActivated = errors.New("profile is already activated")
	ErrAccountLocked    = errors.New("account is locked")
)

type AuthRepository interface {
	GetUserByUsername(username string) (*user.User, error)
	GetUserByID(id uint) (*user.User, error)
	CreateAdmin(username, hashedPassword string) (*user.User, error)
	CreateDictatorAccount(username, hashedPassword string) (*user.User, error)
	CreateSponsorAccount(username, hashedPassword string) (*user.User, error)
	GetDictatorByUserID(userID uint) (*user.Dictator, error)
	GetSponsorByUserID(userID uint) (*user.Sponsor, error)
	RecordFailedAttempt(u *user.User, maxAttempts int) (blocked bool, err error)
	ResetFailedAttempts(u *user.User) error
	ActivateDictator(userID uint, name, territory string) error
	ActivateSponsor(userID uint, companyName string) error
}

type authRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) AuthRepository {
	return &authRepository{db: db}
}

func (r *authRepository) GetUserByUsername(username string) (*user.User, error) {
	var u user.User
	err := r.db.Where("username = ?", username).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *authRepository) GetUserByID(id uint) (*user.User, error) {
	var u user.User
	err := r.db.First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateAdmin creates the single administrator account. A second admin is
// refused.
func (r *authRepository) CreateAdmin(username, hashedPassword string) (*user.User, error) {
	u := user.User{Username: username, Password: hashedPassword, Role: user.RoleAdmin}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&user.User{}).Where("role = ?", user.RoleAdmin).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAdminExists
		}
		if err := checkUsernameFree(tx, username); err != nil {
			return err
		}
		return tx.Create(&u).Error
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateDictatorAccount creates the login plus a placeholder profile. The
// profile keeps placeholder values until the dictator activates it.
func (r *authRepository) CreateDictatorAccount(username, hashedPassword string) (*user.User, error) {
	u := user.User{Username: username, Password: hashedPassword, Role: user.RoleDictator}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := checkUsernameFree(tx, username); err != nil {
			return err
		}
		if err := tx.Create(&u).Error; err != nil {
			return err
		}
		profile := user.Dictator{
			UserID:       u.ID,
			Name:         placeholder(),
			Territory:    placeholder(),
			LoyaltyScore: 75,
		}
		return tx.Create(&profile).Error
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *authRepository) CreateSponsorAccount(username, hashedPassword string) (*user.User, error) {
	u := user.User{Username: username, Password: hashedPassword, Role: user.RoleSponsor}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := checkUsernameFree(tx, username); err != nil {
			return err
		}
		if err := tx.Create(&u).Error; err != nil {
			return err
		}
		profile := user.Sponsor{
			UserID:       u.ID,
			CompanyName:  placeholder(),
			LoyaltyScore: 75,
		}
		return tx.Create(&profile).Error
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *authRepository) GetDictatorByUserID(userID uint) (*user.Dictator, error) {
	var d user.Dictator
	err := r.db.Where("user_id = ?", userID).First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoProfile
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *authRepository) GetSponsorByUserID(userID uint) (*user.Sponsor, error) {
	var s user.Sponsor
	err := r.db.Where("user_id = ?", userID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoProfile
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// RecordFailedAttempt bumps the failure counter on the user's role profile
// and blocks the profile once the limit is hit. Admins carry no profile and
// are never locked out.
func (r *authRepository) RecordFailedAttempt(u *user.User, maxAttempts int) (bool, error) {
	blocked := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		switch u.Role {
		case user.RoleDictator:
			var d user.Dictator
			if err := tx.Where("user_id = ?", u.ID).First(&d).Error; err != nil {
				return err
			}
			d.FailedAttempts++
			if d.FailedAttempts >= maxAttempts {
				d.Blocked = true
				blocked = true
			}
			return tx.Model(&d).Updates(map[string]interface{}{
				"failed_attempts": d.FailedAttempts,
				"blocked":         d.Blocked,
			}).Error
		case user.RoleSponsor:
			var s user.Sponsor
			if err := tx.Where("user_id = ?", u.ID).First(&s).Error; err != nil {
				return err
			}
			s.FailedAttempts++
			if s.FailedAttempts >= maxAttempts {
				s.Blocked = true
				blocked = true
			}
			return tx.Model(&s).Updates(map[string]interface{}{
				"failed_attempts": s.FailedAttempts,
				"blocked":         s.Blocked,
			}).Error
		}
		return nil
	})
	return blocked, err
}

func (r *authRepository) ResetFailedAttempts(u *user.User) error {
	switch u.Role {
	case user.RoleDictator:
		return r.db.Model(&user.Dictator{}).Where("user_id = ?", u.ID).
			Update("failed_attempts", 0).Error
	case user.RoleSponsor:
		return r.db.Model(&user.Sponsor{}).Where("user_id = ?", u.ID).
			Update("failed_attempts", 0).Error
	}
	return nil
}

// ActivateDictator replaces the placeholder profile fields. Name and
// territory must not collide with any other dictator.
func (r *authRepository) ActivateDictator(userID uint, name, territory string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var d user.Dictator
		if err := tx.Where("user_id = ?", userID).First(&d).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoProfile
			}
			return err
		}
		if d.Activated() {
			return ErrAlreadyActivated
		}
		if d.Blocked {
			return ErrAccountLocked
		}

		var count int64
		if err := tx.Model(&user.Dictator{}).
			Where("name = ? AND user_id <> ?", name, userID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrNameTaken
		}
		if err := tx.Model(&user.Dictator{}).
			Where("territory = ? AND user_id <> ?", territory, userID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrTerritoryTaken
		}

		return tx.Model(&d).Updates(map[string]interface{}{
			"name":      name,
			"territory": territory,
		}).Error
	})
}

func (r *authRepository) ActivateSponsor(userID uint, companyName string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var s user.Sponsor
		if err := tx.Where("user_id = ?", userID).First(&s).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoProfile
			}
			return err
		}
		if s.Activated() {
			return ErrAlreadyActivated
		}
		if s.Blocked {
			return ErrAccountLocked
		}

		var count int64
		if err := tx.Model(&user.Sponsor{}).
			Where("company_name = ? AND user_id <> ?", companyName, userID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrCompanyTaken
		}

		return tx.Model(&s).Update("company_name", companyName).Error
	})
}

func checkUsernameFree(tx *gorm.DB, username string) error {
	var count int64
	if err := tx.Model(&user.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrUsernameTaken
	}
	return nil
}

func placeholder() string {
	return fmt.Sprintf("%s%s", user.PlaceholderPrefix, utils.GenerateRandomToken(8))
}
