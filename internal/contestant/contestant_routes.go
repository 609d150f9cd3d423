package contestant

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jfcordova/dictator-arena/config"
	"github.com/jfcordova/dictator-arena/internal/middleware"
)

// RegisterContestantRoutes wires contestant endpoints into the role groups.
func RegisterContestantRoutes(dictator, sponsor *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	repo := NewContestantRepository(db)
	controller := NewContestantController(repo, db, cfg)

	active := middleware.ActiveDictatorMiddleware(db)

	dictator.GET("/contestants", controller.GetContestants)
	dictator.POST("/add-contestants", active, controller.CreateContestant)
	dictator.PUT("/contestants/:contestantId", active, controller.UpdateContestant)
	dictator.DELETE("/Release-contestants/:contestantId", active, controller.ReleaseContestant)
	dictator.GET("/available-opponents", active, controller.GetAvailableOpponents)

	sponsor.GET("/contestants", controller.GetAllContestants)
	sponsor.GET("/contestants/:contestantId", controller.GetContestantDetails)
}
