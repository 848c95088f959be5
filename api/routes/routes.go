package routes

import (
	"github.com/pumppot-labs/pumppot-verifier/internal/config"
	"github.com/pumppot-labs/pumppot-verifier/internal/handlers"
	"github.com/pumppot-labs/pumppot-verifier/internal/middleware"
	"github.com/gin-gonic/gin"
)

// HandlerDependencies collects the handlers the router wires up
type HandlerDependencies struct {
	AuthHandler         *handlers.AuthHandler
	VerificationHandler *handlers.VerificationHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
			})
		})

		auth := public.Group("/auth")
		{
			auth.POST("/login", deps.AuthHandler.Login)
		}
	}

	// Protected routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		protected.POST("/auth/register", deps.AuthHandler.Register)

		verifications := protected.Group("/verifications")
		{
			verifications.GET("", deps.VerificationHandler.GetRecentRuns)
			verifications.GET("/count", deps.VerificationHandler.GetRunCount)
			verifications.GET("/:id", deps.VerificationHandler.GetRunByID)
			verifications.GET("/cycle/:cycleId", deps.VerificationHandler.GetRunsByCycleID)
			verifications.POST("", deps.VerificationHandler.VerifyPackage)
		}
	}

	return router
}
