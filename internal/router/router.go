package router

import (
	"time"

	"github.com/duopot/duopot/internal/handlers"
	"github.com/duopot/duopot/internal/middleware"
	"github.com/duopot/duopot/internal/types"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.RegisterUser)
			auth.POST("/login", handlers.LoginUser)
			auth.POST("/logout", handlers.LogoutUser)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
			auth.DELETE("/me", middleware.AuthMiddleware(), handlers.DeleteUser)
		}

		// The ledger view tolerates anonymous callers: they get the empty
		// snapshot rather than a 401.
		api.GET("/ledger", middleware.OptionalAuthMiddleware(), handlers.GetLedger)

		profiles := api.Group("/profiles", middleware.AuthMiddleware())
		{
			profiles.POST("", handlers.CreateProfile)
			profiles.PATCH("/me", handlers.UpdateProfile)
		}

		savings := api.Group("/savings", middleware.AuthMiddleware())
		{
			savings.POST("", handlers.CreateSaving)
			savings.DELETE("/:saving_id", handlers.DeleteSaving)
		}
	}

	return r
}
