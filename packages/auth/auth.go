package auth

import (
	"auth/handlers"
	"auth/middleware"
	"core/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type Module struct {
	Handler *handlers.AuthHandler
}

func NewModule(db *gorm.DB, logger zerolog.Logger) *Module {
	playerService := services.NewPlayerService(db, logger)
	return &Module{
		Handler: handlers.NewAuthHandler(db, playerService),
	}
}

func (m *Module) SetupRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", m.Handler.Register)
		auth.POST("/login", m.Handler.Login)
	}

	r.GET("/users/me", middleware.JWTMiddleware(), m.Handler.Profile)
}

func JWTMiddleware() gin.HandlerFunc {
	return middleware.JWTMiddleware()
}

func OptionalJWTMiddleware() gin.HandlerFunc {
	return middleware.OptionalJWTMiddleware()
}

func GetUserID(c *gin.Context) (uint, bool) {
	return middleware.GetUserID(c)
}

func GetUserEmail(c *gin.Context) (string, bool) {
	return middleware.GetUserEmail(c)
}

func RequireRole(db *gorm.DB, role string) gin.HandlerFunc {
	return middleware.RequireRole(db, role)
}
