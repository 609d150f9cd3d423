package battle

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/jfcordova/dictator-arena/config"
	"github.com/jfcordova/dictator-arena/internal/middleware"
	"github.com/jfcordova/dictator-arena/pkg/responses"
	"github.com/jfcordova/dictator-arena/pkg/validator"
)

// BattleController drives the battle lifecycle: propose, approve, start, close.
type BattleController struct {
	repo   BattleRepository
	db     *gorm.DB
	config *config.Config
}

func NewBattleController(repo BattleRepository, db *gorm.DB, cfg *config.Config) *BattleController {
	return &BattleController{repo: repo, db: db, config: cfg}
}

type ProposeBattleRequest struct {
	Contestant1 uint `json:"contestant1" binding:"required"`
	Contestant2 uint `json:"contestant2" binding:"required"`
}

type ApproveBattleRequest struct {
	BattleID  uint   `json:"battleId" binding:"required"`
	EventName string `json:"eventName" binding:"required,min=1,max=100"`
}

type CloseBattleRequest struct {
	WinnerID      uint  `json:"winnerId" binding:"required"`
	DeathOccurred bool  `json:"deathOccurred"`
	CasualtyID    *uint `json:"casualtyId"`
}

// ProposeBattle godoc
// @Summary Propose a battle
// @Description A dictator proposes a battle between two contestants, at least one of their own
// @Tags Battles
// @Accept json
// @Produce json
// @Param battle body ProposeBattleRequest true "Contestant pair"
// @Success 201 {object} responses.SuccessResponse{data=Battle}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 403 {object} responses.ErrorResponse
// @Router /dictator/propose-battle [post]
// @Security BearerAuth
func (bc *BattleController) ProposeBattle(c *gin.Context) {
	var req ProposeBattleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	actor, err := middleware.ResolveActor(c, bc.db)
	if err != nil || !actor.IsDictator() {
		responses.Forbidden(c, "You don't have permission to propose battles")
		return
	}

	b, err := bc.repo.Propose(actor.Dictator.ID, req.Contestant1, req.Contestant2)
	if err != nil {
		switch {
		case errors.Is(err, ErrContestantMissing):
			responses.BadRequest(c, "One or both contestants do not exist")
		case errors.Is(err, ErrSameOwner):
			responses.BadRequest(c, "You cannot propose a battle between contestants of the same dictator")
		case errors.Is(err, ErrNotProposer):
			responses.BadRequest(c, "You must select at least one of your own contestants")
		default:
			responses.InternalServerError(c, "Failed to propose battle")
		}
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Battle proposed. Awaiting admin approval.", b)
}

// ApproveBattle godoc
// @Summary Approve a pending battle
// @Description Admin approves a battle and associates it with a named event
// @Tags Battles
// @Accept json
// @Produce json
// @Param approval body ApproveBattleRequest true "Battle and event"
// @Success 200 {object} responses.SuccessResponse{data=Event}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /admin/Aprove-Battles [post]
// @Security BearerAuth
func (bc *BattleController) ApproveBattle(c *gin.Context) {
	var req ApproveBattleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	event, err := bc.repo.Approve(req.BattleID, req.EventName)
	if err != nil {
		switch {
		case errors.Is(err, ErrBattleNotFound):
			responses.NotFound(c, "Battle")
		case errors.Is(err, ErrStateConflict):
			responses.BadRequest(c, "Battle is not pending approval")
		default:
			logrus.WithError(err).WithField("battle_id", req.BattleID).Error("battle approval failed")
			responses.InternalServerError(c, "Failed to approve battle")
		}
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Battle approved and associated with the event", event)
}

// StartBattle godoc
// @Summary Start an approved battle
// @Description Admin starts a battle; returns the aggregated buff preview per contestant
// @Tags Battles
// @Produce json
// @Param battleId path int true "Battle ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /admin/start/{battleId} [post]
// @Security BearerAuth
func (bc *BattleController) StartBattle(c *gin.Context) {
	battleID, err := strconv.ParseUint(c.Param("battleId"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid battle id")
		return
	}

	b, preview, err := bc.repo.Start(uint(battleID))
	if err != nil {
		switch {
		case errors.Is(err, ErrBattleNotFound):
			responses.NotFound(c, "Battle")
		case errors.Is(err, ErrStateConflict):
			responses.BadRequest(c, "Battle is not approved")
		default:
			logrus.WithError(err).WithField("battle_id", battleID).Error("battle start failed")
			responses.InternalServerError(c, "Failed to start battle")
		}
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Battle started. Buff totals computed before combat.", gin.H{
		"battle":        b,
		"buffs_applied": preview,
	})
}

// CloseBattle godoc
// @Summary Close a started battle
// @Description Admin closes a battle with a winner; settles stats, loyalty and bets atomically
// @Tags Battles
// @Accept json
// @Produce json
// @Param battleId path int true "Battle ID"
// @Param outcome body CloseBattleRequest true "Winner and optional casualty"
// @Success 200 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /admin/Close/{battleId} [post]
// @Security BearerAuth
func (bc *BattleController) CloseBattle(c *gin.Context) {
	battleID, err := strconv.ParseUint(c.Param("battleId"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid battle id")
		return
	}

	var req CloseBattleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	err = bc.repo.Close(uint(battleID), req.WinnerID, req.DeathOccurred, req.CasualtyID)
	if err != nil {
		switch {
		case errors.Is(err, ErrBattleNotFound):
			responses.NotFound(c, "Battle")
		case errors.Is(err, ErrStateConflict):
			responses.BadRequest(c, "Battle is not active")
		case errors.Is(err, ErrInvalidWinner):
			responses.BadRequest(c, "Winner must be one of the battle's contestants")
		case errors.Is(err, ErrInvalidCasualty):
			responses.BadRequest(c, "Casualty must be one of the battle's contestants")
		default:
			logrus.WithError(err).WithFields(logrus.Fields{
				"battle_id": battleID,
				"winner_id": req.WinnerID,
			}).Error("battle settlement failed, transaction rolled back")
			responses.InternalServerError(c, "Failed to close battle")
		}
		return
	}

	logrus.WithFields(logrus.Fields{
		"battle_id": battleID,
		"winner_id": req.WinnerID,
	}).Info("battle closed and settled")
	responses.SendSuccess(c, http.StatusOK, "Battle closed, bets settled and payouts applied", nil)
}

// GetProposedBattles lists battles pending admin approval.
func (bc *BattleController) GetProposedBattles(c *gin.Context) {
	battles, err := bc.repo.ListByStatus(StatusPending)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch proposed battles")
		return
	}
	if len(battles) == 0 {
		responses.NotFound(c, "Pending battles")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", battles)
}

// ListActiveBattles lists approved battles open for betting.
func (bc *BattleController) ListActiveBattles(c *gin.Context) {
	battles, err := bc.repo.ListByStatus(StatusApproved)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch active battles")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", battles)
}

// ListActiveEvents lists events that still have approved battles.
func (bc *BattleController) ListActiveEvents(c *gin.Context) {
	events, err := bc.repo.ListActiveEvents()
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch active events")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", events)
}
