package bet

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jfcordova/dictator-arena/config"
	"github.com/jfcordova/dictator-arena/internal/middleware"
)

// RegisterBetRoutes wires betting endpoints into the role groups.
func RegisterBetRoutes(dictator, sponsor *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	repo := NewBetRepository(db)
	controller := NewBetController(repo, db, cfg)

	dictator.POST("/place-bet", middleware.ActiveDictatorMiddleware(db), controller.PlaceBet)

	sponsor.POST("/place-bet", controller.PlaceBet)
	sponsor.GET("/bets/battle/:battleId", controller.GetBetsByBattle)
	sponsor.GET("/bets/:betId", controller.GetBetStatus)
}
