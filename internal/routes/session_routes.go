package routes

import (
	"github.com/gin-gonic/gin"

	"yultimate_hub/internal/controllers"
)

// SessionRoutes: reads for any signed-in person, writes for admins.
func SessionRoutes(api *gin.RouterGroup, h *controllers.Handler, g gates) {
	sessions := api.Group("/sessions")
	sessions.Use(g.authed)
	{
		sessions.GET("", h.ListSessions)
		sessions.GET("/:id", h.GetSession)
		sessions.GET("/coach/:coachId", h.SessionsByCoach)
		sessions.GET("/coaches/list", h.ListCoaches)
		sessions.GET("/cohorts/list", h.ListCohorts)
		sessions.GET("/players/list", h.ListPlayers)

		sessions.POST("", g.admin, h.CreateSession)
		sessions.PUT("/:id", g.admin, h.UpdateSession)
		sessions.DELETE("/:id", g.admin, h.DeleteSession)
		sessions.PUT("/:id/players", g.admin, h.AddSessionPlayers)
	}
}
