package routes

import (
	"github.com/gin-gonic/gin"

	"yultimate_hub/internal/controllers"
)

func TournamentRoutes(api *gin.RouterGroup, h *controllers.Handler, g gates) {
	tournaments := api.Group("/tournaments")
	{
		tournaments.GET("", g.authed, h.ListTournaments)

		tournaments.POST("", g.admin, h.CreateTournament)
		tournaments.POST("/:id/volunteers", g.admin, h.AssignVolunteer)
		tournaments.POST("/:id/matches", g.admin, h.RecordMatch)
		tournaments.POST("/:id/announce", g.admin, h.Announce)
	}
}
