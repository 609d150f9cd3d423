package auth

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jfcordova/dictator-arena/config"
	"github.com/jfcordova/dictator-arena/internal/middleware"
)

func RegisterAuthRoutes(public *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	repo := NewAuthRepository(db)
	ctrl := NewAuthController(repo, cfg)

	public.POST("/register", ctrl.Register)
	public.POST("/login", ctrl.Login)

	authed := public.Group("")
	authed.Use(middleware.AuthMiddleware(cfg.JWT.Secret, db))
	authed.POST("/activate", ctrl.Activate)
}

// RegisterProvisioningRoutes mounts the admin-only account creation
// endpoints.
func RegisterProvisioningRoutes(admin *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	repo := NewAuthRepository(db)
	ctrl := NewAuthController(repo, cfg)

	admin.POST("/register-dictator", ctrl.RegisterDictator)
	admin.POST("/register-sponsor", ctrl.RegisterSponsor)
}
