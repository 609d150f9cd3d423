package admin

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jfcordova/dictator-arena/config"
)

func RegisterAdminRoutes(admin *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	repo := NewAdminRepository(db)
	ctrl := NewAdminController(repo)

	admin.GET("/users", ctrl.GetUsers)
	admin.DELETE("/users/:id", ctrl.DeleteUser)
	admin.POST("/unlock-user", ctrl.UnlockUser)
}
