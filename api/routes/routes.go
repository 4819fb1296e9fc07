package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/lottopantera/draw-engine/internal/broadcast"
	"github.com/lottopantera/draw-engine/internal/config"
	"github.com/lottopantera/draw-engine/internal/handlers"
	"github.com/lottopantera/draw-engine/internal/middleware"
)

// Handlers bundles the HTTP handlers wired by the composition root
type Handlers struct {
	Auth     *handlers.AuthHandler
	Template *handlers.TemplateHandler
	Draw     *handlers.DrawHandler
	Audit    *handlers.AuditHandler
	Pause    *handlers.PauseHandler
	System   *handlers.SystemHandler
	Hub      *broadcast.Hub
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, h *Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	// Add middleware
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		// Health check
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
			})
		})

		// Auth routes
		auth := public.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
		}

		// Live event stream
		public.GET("/ws", gin.WrapH(h.Hub))
	}

	// Protected routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		// Game template routes
		templates := protected.Group("/templates")
		{
			templates.GET("", h.Template.GetAllTemplates)
			templates.GET("/:id", h.Template.GetTemplateByID)
			templates.POST("", h.Template.CreateTemplate)
			templates.PUT("/:id", h.Template.UpdateTemplate)
			templates.POST("/:id/deactivate", h.Template.DeactivateTemplate)
		}

		// Draw lifecycle routes
		draws := protected.Group("/draws")
		{
			draws.GET("", h.Draw.GetDraws)
			draws.GET("/:id", h.Draw.GetDrawByID)
			draws.POST("/generate", h.Draw.GenerateDraws)
			draws.POST("/:id/preselect", h.Draw.PreselectWinner)
			draws.PUT("/:id/winner", h.Draw.ChangeWinner)
			draws.POST("/:id/close", h.Draw.CloseDraw)
			draws.POST("/:id/publish", h.Draw.PublishDraw)
		}

		// Audit log routes
		protected.GET("/audit", h.Audit.GetAuditEntries)

		// Pause routes
		pauses := protected.Group("/pauses")
		{
			pauses.GET("", h.Pause.GetAllPauses)
			pauses.POST("", h.Pause.CreatePause)
			pauses.DELETE("/:id", h.Pause.DeletePause)
		}

		// System routes
		system := protected.Group("/system")
		{
			system.GET("/emergency-stop", h.System.GetEmergencyStop)
			system.PUT("/emergency-stop", h.System.SetEmergencyStop)
		}
	}

	return router
}
