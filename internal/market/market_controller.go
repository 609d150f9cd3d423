package market

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jfcordova/dictator-arena/internal/middleware"
	"github.com/jfcordova/dictator-arena/pkg/responses"
	"github.com/jfcordova/dictator-arena/pkg/validator"
)

type MarketController struct {
	repo MarketRepository
	db   *gorm.DB
}

func NewMarketController(repo MarketRepository, db *gorm.DB) *MarketController {
	return &MarketController{repo: repo, db: db}
}

type OfferItemRequest struct {
	ItemName string `json:"itemName" binding:"required"`
	Price    int    `json:"price" binding:"required,min=1"`
}

type BuyItemRequest struct {
	TransactionID uint `json:"transactionId" binding:"required"`
}

// OfferItem puts one unit of a sponsor's item up for sale on the black market.
// @Summary      Offer an item on the black market
// @Tags         blackmarket
// @Accept       json
// @Produce      json
// @Param        offer  body  OfferItemRequest  true  "Listing details"
// @Success      201  {object}  responses.SuccessResponse
// @Failure      400  {object}  responses.ErrorResponse
// @Security     BearerAuth
// @Router       /sponsor/blackmarket/offer-item [post]
func (mc *MarketController) OfferItem(c *gin.Context) {
	var req OfferItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	actor, err := middleware.ResolveActor(c, mc.db)
	if err != nil || !actor.IsSponsor() {
		responses.Forbidden(c, "Only sponsors can offer items")
		return
	}

	listing, err := mc.repo.Sell(actor.ProfileID(), req.ItemName, req.Price)
	if err != nil {
		if errors.Is(err, ErrInsufficientItem) {
			responses.BadRequest(c, "You do not have this item to sell")
			return
		}
		responses.InternalServerError(c, "Failed to create listing")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Item listed on the black market", listing)
}

// GetListings returns all open listings for browsing dictators.
func (mc *MarketController) GetListings(c *gin.Context) {
	listings, err := mc.repo.Listings()
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch listings")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Black market activity", listings)
}

// GetMyListings returns the calling sponsor's open listings.
func (mc *MarketController) GetMyListings(c *gin.Context) {
	actor, err := middleware.ResolveActor(c, mc.db)
	if err != nil || !actor.IsSponsor() {
		responses.Forbidden(c, "Only sponsors can view their listings")
		return
	}

	listings, err := mc.repo.SellerListings(actor.ProfileID())
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch listings")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Your listings", listings)
}

// BuyItem completes a listing on behalf of the calling dictator.
func (mc *MarketController) BuyItem(c *gin.Context) {
	var req BuyItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	actor, err := middleware.ResolveActor(c, mc.db)
	if err != nil || !actor.IsDictator() {
		responses.Forbidden(c, "Only dictators can buy items")
		return
	}

	if err := mc.repo.Buy(actor.ProfileID(), req.TransactionID); err != nil {
		if errors.Is(err, ErrListingUnavailable) {
			responses.NotFound(c, "Listing")
			return
		}
		responses.InternalServerError(c, "Failed to complete purchase")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Purchase completed", nil)
}

// RemoveListing withdraws one of the sponsor's own unsold listings.
func (mc *MarketController) RemoveListing(c *gin.Context) {
	idParam := c.Query("transactionId")
	if idParam == "" {
		idParam = c.Param("transactionId")
	}
	id, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid transaction id")
		return
	}

	actor, err := middleware.ResolveActor(c, mc.db)
	if err != nil || !actor.IsSponsor() {
		responses.Forbidden(c, "Only sponsors can remove their listings")
		return
	}

	if err := mc.repo.RemoveListing(actor.ProfileID(), uint(id)); err != nil {
		if errors.Is(err, ErrListingUnavailable) {
			responses.NotFound(c, "Listing")
			return
		}
		responses.InternalServerError(c, "Failed to remove listing")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Listing removed", nil)
}
