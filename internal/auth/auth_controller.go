package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jfcordova/dictator-arena/config"
	"github.com/jfcordova/dictator-arena/internal/middleware"
	"github.com/jfcordova/dictator-arena/internal/user"
	"github.com/jfcordova/dictator-arena/pkg/responses"
	"github.com/jfcordova/dictator-arena/pkg/token"
	"github.com/jfcordova/dictator-arena/pkg/validator"
	"github.com/jfcordova/dictator-arena/utils"
)

type AuthController struct {
	repo AuthRepository
	cfg  *config.Config
}

func NewAuthController(repo AuthRepository, cfg *config.Config) *AuthController {
	return &AuthController{repo: repo, cfg: cfg}
}

// Register creates a new account for the requested role. Only one admin can
// ever exist; dictator and sponsor accounts start with placeholder profiles.
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        account  body  RegisterRequest  true  "Account details"
// @Success      201  {object}  responses.SuccessResponse
// @Failure      400  {object}  responses.ErrorResponse
// @Router       /auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		responses.InternalServerError(c, "Failed to process password")
		return
	}

	var created *user.User
	switch req.Role {
	case user.RoleAdmin:
		created, err = ac.repo.CreateAdmin(req.Username, hashed)
	case user.RoleDictator:
		created, err = ac.repo.CreateDictatorAccount(req.Username, hashed)
	case user.RoleSponsor:
		created, err = ac.repo.CreateSponsorAccount(req.Username, hashed)
	}
	if err != nil {
		switch {
		case errors.Is(err, ErrUsernameTaken):
			responses.BadRequest(c, "Username already taken")
		case errors.Is(err, ErrAdminExists):
			responses.BadRequest(c, "An admin account already exists")
		default:
			responses.InternalServerError(c, "Failed to create account")
		}
		return
	}

	logrus.WithFields(logrus.Fields{"user_id": created.ID, "role": created.Role}).
		Info("account registered")
	responses.SendSuccess(c, http.StatusCreated, "Account created", gin.H{
		"id":       created.ID,
		"username": created.Username,
		"role":     created.Role,
	})
}

// ProvisionRequest creates a dictator or sponsor account on behalf of the
// admin. The profile starts with placeholder values.
type ProvisionRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6"`
}

// RegisterDictator is the admin-only path for creating dictator accounts.
func (ac *AuthController) RegisterDictator(c *gin.Context) {
	ac.provision(c, user.RoleDictator)
}

// RegisterSponsor is the admin-only path for creating sponsor accounts.
func (ac *AuthController) RegisterSponsor(c *gin.Context) {
	ac.provision(c, user.RoleSponsor)
}

func (ac *AuthController) provision(c *gin.Context, role string) {
	var req ProvisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		responses.InternalServerError(c, "Failed to process password")
		return
	}

	var created *user.User
	if role == user.RoleDictator {
		created, err = ac.repo.CreateDictatorAccount(req.Username, hashed)
	} else {
		created, err = ac.repo.CreateSponsorAccount(req.Username, hashed)
	}
	if err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			responses.BadRequest(c, "Username already taken")
			return
		}
		responses.InternalServerError(c, "Failed to create account")
		return
	}

	logrus.WithFields(logrus.Fields{"user_id": created.ID, "role": role}).
		Info("account provisioned by admin")
	responses.SendSuccess(c, http.StatusCreated, role+" registered", gin.H{"userId": created.ID})
}

// Login checks the password and issues a JWT. Failed attempts accumulate on
// the role profile and lock the account once the limit is reached. A blocked
// account is refused even with the right password.
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials  body  LoginRequest  true  "Credentials"
// @Success      200  {object}  responses.SuccessResponse
// @Failure      401  {object}  responses.ErrorResponse
// @Failure      403  {object}  responses.ErrorResponse
// @Router       /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	u, err := ac.repo.GetUserByUsername(req.Username)
	if err != nil {
		responses.Unauthorized(c, "Invalid credentials")
		return
	}

	blocked, needsActivation, checkErr := ac.profileState(u)
	if checkErr != nil {
		responses.InternalServerError(c, "Failed to load profile")
		return
	}
	if blocked {
		responses.Forbidden(c, "Account is locked")
		return
	}

	if !utils.CheckPassword(u.Password, req.Password) {
		nowBlocked, recErr := ac.repo.RecordFailedAttempt(u, ac.cfg.JWT.MaxFailedAttempts)
		if recErr != nil {
			logrus.WithError(recErr).Error("failed to record login attempt")
		}
		if nowBlocked {
			responses.Forbidden(c, "Account locked after too many failed attempts")
			return
		}
		responses.Unauthorized(c, "Invalid credentials")
		return
	}

	if err := ac.repo.ResetFailedAttempts(u); err != nil {
		logrus.WithError(err).Error("failed to reset login attempts")
	}

	jwt, err := token.GenerateJWT(u.ID, u.Role, ac.cfg.JWT.Secret, ac.cfg.JWT.TokenExpiryHours)
	if err != nil {
		responses.InternalServerError(c, "Failed to issue token")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Login successful", AuthResponse{
		Token:           jwt,
		Role:            u.Role,
		NeedsActivation: needsActivation,
	})
}

// Activate replaces the placeholder profile fields set at registration.
func (ac *AuthController) Activate(c *gin.Context) {
	var req ActivateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "Authentication required")
		return
	}
	u, err := ac.repo.GetUserByID(userID)
	if err != nil {
		responses.Unauthorized(c, "Authentication required")
		return
	}

	switch u.Role {
	case user.RoleDictator:
		if req.Name == "" || req.Territory == "" {
			responses.BadRequest(c, "Name and territory are required")
			return
		}
		err = ac.repo.ActivateDictator(u.ID, req.Name, req.Territory)
	case user.RoleSponsor:
		if req.CompanyName == "" {
			responses.BadRequest(c, "Company name is required")
			return
		}
		err = ac.repo.ActivateSponsor(u.ID, req.CompanyName)
	default:
		responses.BadRequest(c, "This account has no profile to activate")
		return
	}
	if err != nil {
		switch {
		case errors.Is(err, ErrNameTaken), errors.Is(err, ErrTerritoryTaken), errors.Is(err, ErrCompanyTaken):
			if _, recErr := ac.repo.RecordFailedAttempt(u, ac.cfg.JWT.MaxFailedAttempts); recErr != nil {
				logrus.WithError(recErr).Error("failed to record activation attempt")
			}
			responses.BadRequest(c, err.Error())
		case errors.Is(err, ErrAlreadyActivated):
			responses.Forbidden(c, "Profile is already activated")
		case errors.Is(err, ErrAccountLocked):
			responses.Forbidden(c, "Account is locked")
		case errors.Is(err, ErrNoProfile):
			responses.NotFound(c, "Profile")
		default:
			responses.InternalServerError(c, "Failed to activate profile")
		}
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Profile activated", nil)
}

// profileState reports lockout and placeholder status for the user's role
// profile.
func (ac *AuthController) profileState(u *user.User) (blocked, needsActivation bool, err error) {
	switch u.Role {
	case user.RoleDictator:
		d, derr := ac.repo.GetDictatorByUserID(u.ID)
		if derr != nil {
			return false, false, derr
		}
		return d.Blocked, !d.Activated(), nil
	case user.RoleSponsor:
		s, serr := ac.repo.GetSponsorByUserID(u.ID)
		if serr != nil {
			return false, false, serr
		}
		return s.Blocked, !s.Activated(), nil
	}
	return false, false, nil
}
