package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/jfcordova/dictator-arena/config"
	"github.com/jfcordova/dictator-arena/internal/admin"
	"github.com/jfcordova/dictator-arena/internal/auth"
	"github.com/jfcordova/dictator-arena/internal/battle"
	"github.com/jfcordova/dictator-arena/internal/bet"
	"github.com/jfcordova/dictator-arena/internal/contestant"
	"github.com/jfcordova/dictator-arena/internal/item"
	"github.com/jfcordova/dictator-arena/internal/market"
	"github.com/jfcordova/dictator-arena/internal/middleware"
	"github.com/jfcordova/dictator-arena/internal/user"
)

// SetupRoutes wires every domain's routes under its role group. The three
// role groups share the auth middleware and differ only in the role gate.
func SetupRoutes(db *gorm.DB, cfg *config.Config) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authGroup := r.Group("/auth")
	auth.RegisterAuthRoutes(authGroup, db, cfg)

	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.AuthMiddleware(cfg.JWT.Secret, db))
	adminGroup.Use(middleware.RoleMiddleware(user.RoleAdmin))

	dictatorGroup := r.Group("/dictator")
	dictatorGroup.Use(middleware.AuthMiddleware(cfg.JWT.Secret, db))
	dictatorGroup.Use(middleware.RoleMiddleware(user.RoleDictator))

	sponsorGroup := r.Group("/sponsor")
	sponsorGroup.Use(middleware.AuthMiddleware(cfg.JWT.Secret, db))
	sponsorGroup.Use(middleware.RoleMiddleware(user.RoleSponsor))

	admin.RegisterAdminRoutes(adminGroup, db, cfg)
	auth.RegisterProvisioningRoutes(adminGroup, db, cfg)
	contestant.RegisterContestantRoutes(dictatorGroup, sponsorGroup, db, cfg)
	battle.RegisterBattleRoutes(adminGroup, dictatorGroup, sponsorGroup, db, cfg)
	bet.RegisterBetRoutes(dictatorGroup, sponsorGroup, db, cfg)
	item.RegisterItemRoutes(dictatorGroup, sponsorGroup, db, cfg)
	market.RegisterMarketRoutes(dictatorGroup, sponsorGroup, db, cfg)

	return r
}
