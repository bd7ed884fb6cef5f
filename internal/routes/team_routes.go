package routes

import (
	"github.com/gin-gonic/gin"

	"yultimate_hub/internal/controllers"
)

func TeamRoutes(api *gin.RouterGroup, h *controllers.Handler, g gates) {
	teams := api.Group("/teams")
	{
		teams.GET("/all", g.authed, h.AllTeams)

		teams.POST("", g.coach, h.CreateTeam)
		teams.GET("/mine", g.coach, h.MyTeams)
		teams.POST("/:id/roster", g.coach, h.AddRosterEntry)
	}
}
