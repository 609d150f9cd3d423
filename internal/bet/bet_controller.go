package bet

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jfcordova/dictator-arena/config"
	"github.com/jfcordova/dictator-arena/internal/battle"
	"github.com/jfcordova/dictator-arena/internal/middleware"
	"github.com/jfcordova/dictator-arena/pkg/responses"
	"github.com/jfcordova/dictator-arena/pkg/validator"
)

type BetController struct {
	repo   BetRepository
	db     *gorm.DB
	config *config.Config
}

func NewBetController(repo BetRepository, db *gorm.DB, cfg *config.Config) *BetController {
	return &BetController{repo: repo, db: db, config: cfg}
}

type PlaceBetRequest struct {
	BattleID        uint `json:"battleId" binding:"required"`
	PredictedWinner uint `json:"predictedWinner" binding:"required"`
	Amount          int  `json:"amount" binding:"required,min=1"`
}

// PlaceBet godoc
// @Summary Place a bet on an approved battle
// @Description Dictators and sponsors bet on a battle outcome; at most two bets per battle
// @Tags Bets
// @Accept json
// @Produce json
// @Param bet body PlaceBetRequest true "Bet"
// @Success 201 {object} responses.SuccessResponse{data=battle.Bet}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 403 {object} responses.ErrorResponse
// @Router /dictator/place-bet [post]
// @Security BearerAuth
func (bc *BetController) PlaceBet(c *gin.Context) {
	var req PlaceBetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	actor, err := middleware.ResolveActor(c, bc.db)
	if err != nil || (!actor.IsDictator() && !actor.IsSponsor()) {
		responses.Forbidden(c, "Only dictators and sponsors can place bets")
		return
	}

	bettorType := battle.BettorSponsor
	if actor.IsDictator() {
		bettorType = battle.BettorDictator
	}

	placed, err := bc.repo.PlaceBet(actor.ProfileID(), bettorType, req.BattleID, req.PredictedWinner, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, battle.ErrBattleNotFound):
			responses.NotFound(c, "Battle")
		case errors.Is(err, ErrBattleNotOpen):
			responses.BadRequest(c, "Battle is not open for betting")
		case errors.Is(err, ErrConflictOfInterest):
			responses.Forbidden(c, "You cannot bet on battles involving your own contestants")
		case errors.Is(err, ErrBetCapReached):
			responses.Forbidden(c, "You cannot bet more than twice on the same battle")
		default:
			responses.InternalServerError(c, "Failed to place bet")
		}
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Bet placed successfully", placed)
}

// GetBetsByBattle lists every bet registered on a battle.
func (bc *BetController) GetBetsByBattle(c *gin.Context) {
	battleID, err := strconv.ParseUint(c.Param("battleId"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid battle id")
		return
	}

	bets, err := bc.repo.GetByBattle(uint(battleID))
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch bets")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", bets)
}

// GetBetStatus returns a single bet, including its payout once settled.
func (bc *BetController) GetBetStatus(c *gin.Context) {
	betID, err := strconv.ParseUint(c.Param("betId"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid bet id")
		return
	}

	b, err := bc.repo.GetByID(uint(betID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "Bet")
			return
		}
		responses.InternalServerError(c, "Failed to fetch bet")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", b)
}
