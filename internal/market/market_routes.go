package market

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jfcordova/dictator-arena/config"
	"github.com/jfcordova/dictator-arena/internal/middleware"
)

func RegisterMarketRoutes(dictator, sponsor *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	repo := NewMarketRepository(db)
	ctrl := NewMarketController(repo, db)

	sponsor.POST("/blackmarket/offer-item", ctrl.OfferItem)
	sponsor.GET("/blackmarket/listings", ctrl.GetMyListings)
	sponsor.DELETE("/blackmarket/remove-listing", ctrl.RemoveListing)

	active := middleware.ActiveDictatorMiddleware(db)
	dictator.GET("/blackmarket/Activity", active, ctrl.GetListings)
	dictator.POST("/blackmarket/buy-item", active, ctrl.BuyItem)
}
