package item

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jfcordova/dictator-arena/config"
)

// RegisterItemRoutes wires inventory, gift, and buff endpoints into the role
// groups. Dictators and sponsors share the controller; ownership rules differ
// inside the repository.
func RegisterItemRoutes(dictator, sponsor *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	repo := NewItemRepository(db)
	controller := NewItemController(repo, db, cfg)

	dictator.POST("/give-item", controller.GiveItem)
	dictator.POST("/apply-buff", controller.ApplyBuff)
	dictator.POST("/apply-buff/battle", controller.ApplyBuffDuringBattle)
	dictator.GET("/inventory", controller.GetInventory)

	sponsor.POST("/give-item", controller.GiveItem)
	sponsor.POST("/add-item", controller.AddItem)
	sponsor.POST("/apply-buff", controller.ApplyBuff)
	sponsor.POST("/apply-buff/battle", controller.ApplyBuffDuringBattle)
	sponsor.GET("/inventory", controller.GetInventory)
}
