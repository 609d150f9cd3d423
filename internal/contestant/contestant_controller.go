package contestant

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jfcordova/dictator-arena/config"
	"github.com/jfcordova/dictator-arena/internal/middleware"
	"github.com/jfcordova/dictator-arena/pkg/responses"
	"github.com/jfcordova/dictator-arena/pkg/validator"
)

// ContestantController handles API requests related to contestants.
type ContestantController struct {
	repo   ContestantRepository
	db     *gorm.DB
	config *config.Config
}

func NewContestantController(repo ContestantRepository, db *gorm.DB, cfg *config.Config) *ContestantController {
	return &ContestantController{repo: repo, db: db, config: cfg}
}

type CreateContestantRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Nickname string `json:"nickname" binding:"omitempty,max=100"`
	Strength int    `json:"strength" binding:"required,min=1,max=100"`
	Agility  int    `json:"agility" binding:"required,min=1,max=100"`
}

type UpdateContestantRequest struct {
	Name     *string `json:"name,omitempty" binding:"omitempty,min=2,max=100"`
	Nickname *string `json:"nickname,omitempty" binding:"omitempty,max=100"`
	Status   *string `json:"status,omitempty" binding:"omitempty,oneof=Alive Dead Free"`
	Strength *int    `json:"strength,omitempty" binding:"omitempty,min=1,max=100"`
	Agility  *int    `json:"agility,omitempty" binding:"omitempty,min=1,max=100"`
}

// CreateContestant godoc
// @Summary Create a contestant
// @Description A dictator adds a new contestant to their roster
// @Tags Contestants
// @Accept json
// @Produce json
// @Param contestant body CreateContestantRequest true "Contestant"
// @Success 201 {object} responses.SuccessResponse{data=Contestant}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 403 {object} responses.ErrorResponse
// @Router /dictator/add-contestants [post]
// @Security BearerAuth
func (cc *ContestantController) CreateContestant(c *gin.Context) {
	var req CreateContestantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	actor, err := middleware.ResolveActor(c, cc.db)
	if err != nil || !actor.IsDictator() {
		responses.Forbidden(c, "You don't have permission to create contestants")
		return
	}

	duplicate, err := cc.repo.ExistsDuplicate(req.Name, req.Nickname, req.Strength, req.Agility)
	if err != nil {
		responses.InternalServerError(c, "Failed to create contestant")
		return
	}
	if duplicate {
		responses.BadRequest(c, "A contestant with these exact attributes already exists")
		return
	}

	dictatorID := actor.Dictator.ID
	ct := Contestant{
		Name:       req.Name,
		Nickname:   req.Nickname,
		Strength:   req.Strength,
		Agility:    req.Agility,
		Health:     MaxHealth,
		Status:     StatusAlive,
		DictatorID: &dictatorID,
	}
	if err := cc.repo.Create(&ct); err != nil {
		responses.InternalServerError(c, "Failed to create contestant")
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Contestant created successfully", ct)
}

// GetContestants returns the caller's contestants, optionally filtered by
// status and minimum stats. Only supplied filters apply.
func (cc *ContestantController) GetContestants(c *gin.Context) {
	actor, err := middleware.ResolveActor(c, cc.db)
	if err != nil || !actor.IsDictator() {
		responses.Forbidden(c, "You don't have permission to view these contestants")
		return
	}

	var filter Filter
	if status := c.Query("status"); status != "" {
		filter.Status = &status
	}
	if s := c.Query("strength"); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			filter.MinStrength = &v
		}
	}
	if a := c.Query("agility"); a != "" {
		if v, err := strconv.Atoi(a); err == nil {
			filter.MinAgility = &v
		}
	}

	contestants, err := cc.repo.ListByDictator(actor.Dictator.ID, filter)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch contestants")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "", contestants)
}

// GetAllContestants returns every unreleased contestant with owner details.
func (cc *ContestantController) GetAllContestants(c *gin.Context) {
	details, err := cc.repo.ListUnreleased()
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch contestants")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", details)
}

// GetContestantDetails returns one contestant joined with its dictator.
func (cc *ContestantController) GetContestantDetails(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("contestantId"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid contestant id")
		return
	}

	detail, err := cc.repo.GetDetail(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "Contestant")
			return
		}
		responses.InternalServerError(c, "Failed to fetch contestant")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "", detail)
}

// GetAvailableOpponents lists alive contestants owned by other dictators.
func (cc *ContestantController) GetAvailableOpponents(c *gin.Context) {
	actor, err := middleware.ResolveActor(c, cc.db)
	if err != nil || !actor.IsDictator() {
		responses.Forbidden(c, "You don't have permission to view this information")
		return
	}

	opponents, err := cc.repo.ListOpponents(actor.Dictator.ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch opponents")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "", opponents)
}

// UpdateContestant applies a partial update to an owned contestant.
func (cc *ContestantController) UpdateContestant(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("contestantId"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid contestant id")
		return
	}

	var req UpdateContestantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	actor, err := middleware.ResolveActor(c, cc.db)
	if err != nil || !actor.IsDictator() {
		responses.Forbidden(c, "You don't have permission to modify contestants")
		return
	}
	if !actor.OwnsContestant(uint(id)) {
		responses.Forbidden(c, "You don't have permission to modify this contestant")
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Nickname != nil {
		updates["nickname"] = *req.Nickname
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Strength != nil {
		updates["strength"] = *req.Strength
	}
	if req.Agility != nil {
		updates["agility"] = *req.Agility
	}
	if len(updates) == 0 {
		responses.BadRequest(c, "No fields provided to update")
		return
	}

	ct, err := cc.repo.GetByID(uint(id))
	if err != nil {
		responses.NotFound(c, "Contestant")
		return
	}

	updated, err := cc.repo.Update(ct, updates)
	if err != nil {
		responses.InternalServerError(c, "Failed to update contestant")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Contestant updated successfully", updated)
}

// ReleaseContestant frees a contestant for good.
func (cc *ContestantController) ReleaseContestant(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("contestantId"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid contestant id")
		return
	}

	actor, err := middleware.ResolveActor(c, cc.db)
	if err != nil || !actor.IsDictator() {
		responses.Forbidden(c, "You don't have permission to release contestants")
		return
	}

	switch err := cc.repo.Release(uint(id), actor.Dictator.ID); {
	case err == nil:
		responses.SendSuccess(c, http.StatusOK, "Contestant released. They are free now and can never be reclaimed.", nil)
	case errors.Is(err, ErrNotOwned):
		responses.Forbidden(c, "You don't have permission to release this contestant")
	case errors.Is(err, ErrAlreadyFree):
		responses.BadRequest(c, "Contestant has already been released")
	default:
		responses.InternalServerError(c, "Failed to release contestant")
	}
}
