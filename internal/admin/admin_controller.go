package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jfcordova/dictator-arena/internal/middleware"
	"github.com/jfcordova/dictator-arena/pkg/responses"
)

type AdminController struct {
	repo AdminRepository
}

func NewAdminController(repo AdminRepository) *AdminController {
	return &AdminController{repo: repo}
}

type UnlockUserRequest struct {
	UserID uint `json:"userId" binding:"required"`
}

// GetUsers lists every account except the caller's own.
// @Summary      List all accounts
// @Tags         admin
// @Produce      json
// @Success      200  {object}  responses.SuccessResponse
// @Security     BearerAuth
// @Router       /admin/users [get]
func (ac *AdminController) GetUsers(c *gin.Context) {
	callerID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "Authentication required")
		return
	}

	users, err := ac.repo.ListUsers(callerID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch users")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Users fetched", users)
}

// DeleteUser removes an account and its profile.
func (ac *AdminController) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid user id")
		return
	}
	callerID, cerr := middleware.GetUserIDFromContext(c)
	if cerr != nil {
		responses.Unauthorized(c, "Authentication required")
		return
	}

	if err := ac.repo.DeleteUser(uint(id), callerID); err != nil {
		switch {
		case errors.Is(err, ErrSelfDelete):
			responses.Forbidden(c, "You cannot delete your own account")
		case errors.Is(err, ErrUserNotFound):
			responses.NotFound(c, "User")
		default:
			responses.InternalServerError(c, "Failed to delete user")
		}
		return
	}

	logrus.WithField("user_id", id).Info("account deleted")
	responses.SendSuccess(c, http.StatusOK, "User deleted", nil)
}

// UnlockUser clears a locked account so it can log in again.
func (ac *AdminController) UnlockUser(c *gin.Context) {
	var req UnlockUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request body")
		return
	}

	if err := ac.repo.UnlockUser(req.UserID); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			responses.NotFound(c, "User")
			return
		}
		responses.InternalServerError(c, "Failed to unlock user")
		return
	}

	logrus.WithField("user_id", req.UserID).Info("account unlocked")
	responses.SendSuccess(c, http.StatusOK, "User unlocked", nil)
}
