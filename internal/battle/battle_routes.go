package battle

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jfcordova/dictator-arena/config"
	"github.com/jfcordova/dictator-arena/internal/middleware"
)

// RegisterBattleRoutes wires lifecycle endpoints into the role groups.
func RegisterBattleRoutes(admin, dictator, sponsor *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	repo := NewBattleRepository(db)
	controller := NewBattleController(repo, db, cfg)

	admin.GET("/get-Pending-Battles", controller.GetProposedBattles)
	admin.POST("/Aprove-Battles", controller.ApproveBattle)
	admin.POST("/start/:battleId", controller.StartBattle)
	admin.POST("/Close/:battleId", controller.CloseBattle)
	admin.GET("/events/active", controller.ListActiveEvents)

	dictator.POST("/propose-battle", middleware.ActiveDictatorMiddleware(db), controller.ProposeBattle)

	sponsor.GET("/battles/active", controller.ListActiveBattles)
}
