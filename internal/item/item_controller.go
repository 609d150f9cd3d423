package item

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jfcordova/dictator-arena/config"
	"github.com/jfcordova/dictator-arena/internal/battle"
	"github.com/jfcordova/dictator-arena/internal/middleware"
	"github.com/jfcordova/dictator-arena/pkg/responses"
	"github.com/jfcordova/dictator-arena/pkg/validator"
)

type ItemController struct {
	repo   ItemRepository
	db     *gorm.DB
	config *config.Config
}

func NewItemController(repo ItemRepository, db *gorm.DB, cfg *config.Config) *ItemController {
	return &ItemController{repo: repo, db: db, config: cfg}
}

type AddItemRequest struct {
	ItemName string `json:"itemName" binding:"required,min=1,max=100"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
	Category string `json:"category" binding:"required,oneof=weapon buff"`
}

type GiveItemRequest struct {
	ContestantID uint   `json:"contestantId" binding:"required"`
	ItemName     string `json:"itemName" binding:"required"`
}

type ApplyBuffRequest struct {
	ContestantID  uint   `json:"contestantId" binding:"required"`
	ItemName      string `json:"item_name" binding:"required"`
	StrengthBoost int    `json:"strength_boost" binding:"omitempty,min=0"`
	AgilityBoost  int    `json:"agility_boost" binding:"omitempty,min=0"`
	Duration      int    `json:"duration" binding:"omitempty,min=0"`
}

type ApplyBuffDuringBattleRequest struct {
	BattleID      uint   `json:"battleId" binding:"required"`
	ContestantID  uint   `json:"contestantId" binding:"required"`
	ItemName      string `json:"item_name" binding:"required"`
	StrengthBoost int    `json:"strength_boost" binding:"omitempty,min=0"`
	AgilityBoost  int    `json:"agility_boost" binding:"omitempty,min=0"`
	Duration      int    `json:"duration" binding:"omitempty,min=0"`
}

func (ic *ItemController) resolveOwner(c *gin.Context) (string, uint, bool) {
	actor, err := middleware.ResolveActor(c, ic.db)
	if err != nil {
		responses.Forbidden(c, "You don't have permission to manage items")
		return "", 0, false
	}
	switch {
	case actor.IsDictator():
		return OwnerDictator, actor.Dictator.ID, true
	case actor.IsSponsor():
		return OwnerSponsor, actor.Sponsor.ID, true
	default:
		responses.Forbidden(c, "You don't have permission to manage items")
		return "", 0, false
	}
}

// AddItem godoc
// @Summary Add items to the caller's inventory
// @Tags Items
// @Accept json
// @Produce json
// @Param item body AddItemRequest true "Item"
// @Success 200 {object} responses.SuccessResponse{data=InventoryItem}
// @Failure 400 {object} responses.ErrorResponse
// @Router /sponsor/add-item [post]
// @Security BearerAuth
func (ic *ItemController) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	ownerType, ownerID, ok := ic.resolveOwner(c)
	if !ok {
		return
	}

	stack, err := ic.repo.AddItem(ownerType, ownerID, req.ItemName, req.Quantity, req.Category)
	if err != nil {
		responses.InternalServerError(c, "Failed to add item to inventory")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Item added to inventory", stack)
}

// GetInventory lists the caller's inventory.
func (ic *ItemController) GetInventory(c *gin.Context) {
	ownerType, ownerID, ok := ic.resolveOwner(c)
	if !ok {
		return
	}

	items, err := ic.repo.Inventory(ownerType, ownerID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch inventory")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", items)
}

// GiveItem donates a weapon to a contestant. One gift per contestant, ever.
func (ic *ItemController) GiveItem(c *gin.Context) {
	var req GiveItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	ownerType, ownerID, ok := ic.resolveOwner(c)
	if !ok {
		return
	}

	switch err := ic.repo.GiveItem(ownerType, ownerID, req.ContestantID, req.ItemName); {
	case err == nil:
		responses.SendSuccess(c, http.StatusOK, "Item donated successfully", nil)
	case errors.Is(err, ErrNotOwner):
		responses.Forbidden(c, "You cannot give items to a contestant that is not yours")
	case errors.Is(err, ErrAlreadyGifted):
		responses.BadRequest(c, "Contestant already holds a gifted item")
	case errors.Is(err, ErrInsufficientItem):
		responses.BadRequest(c, "You don't have enough of this item")
	case errors.Is(err, ErrNotWeapon):
		responses.BadRequest(c, "Only weapons can be donated, not buffs")
	default:
		responses.InternalServerError(c, "Failed to donate item")
	}
}

// ApplyBuff consumes a buff item and applies it to a contestant.
func (ic *ItemController) ApplyBuff(c *gin.Context) {
	var req ApplyBuffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	ownerType, ownerID, ok := ic.resolveOwner(c)
	if !ok {
		return
	}

	ic.applyBuff(c, BuffApplication{
		SourceType:    ownerType,
		SourceID:      ownerID,
		ContestantID:  req.ContestantID,
		ItemName:      req.ItemName,
		StrengthBoost: req.StrengthBoost,
		AgilityBoost:  req.AgilityBoost,
		Duration:      req.Duration,
	})
}

// ApplyBuffDuringBattle is ApplyBuff restricted to battles in progress.
func (ic *ItemController) ApplyBuffDuringBattle(c *gin.Context) {
	var req ApplyBuffDuringBattleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	ownerType, ownerID, ok := ic.resolveOwner(c)
	if !ok {
		return
	}

	ic.applyBuff(c, BuffApplication{
		SourceType:    ownerType,
		SourceID:      ownerID,
		ContestantID:  req.ContestantID,
		ItemName:      req.ItemName,
		StrengthBoost: req.StrengthBoost,
		AgilityBoost:  req.AgilityBoost,
		Duration:      req.Duration,
		BattleID:      &req.BattleID,
	})
}

func (ic *ItemController) applyBuff(c *gin.Context, app BuffApplication) {
	buff, err := ic.repo.ApplyBuff(app)
	if err != nil {
		switch {
		case errors.Is(err, battle.ErrBattleNotFound):
			responses.NotFound(c, "Battle")
		case errors.Is(err, ErrBattleNotActive):
			responses.BadRequest(c, "Battle is not active")
		case errors.Is(err, ErrNotOwner):
			responses.Forbidden(c, "You cannot apply buffs to a contestant that is not yours")
		case errors.Is(err, ErrInsufficientItem):
			responses.BadRequest(c, "You don't have this buff in your inventory")
		case errors.Is(err, ErrNotBuff):
			responses.BadRequest(c, "Only buffs can be applied, not weapons")
		default:
			responses.InternalServerError(c, "Failed to apply buff")
		}
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Buff applied successfully", buff)
}
