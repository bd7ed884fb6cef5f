package routes

import (
	"github.com/gin-gonic/gin"

	"yultimate_hub/internal/controllers"
)

func AuthRoutes(api *gin.RouterGroup, h *controllers.Handler, g gates) {
	auth := api.Group("/auth")
	{
		auth.POST("/signup/player", h.Signup)
		auth.POST("/login", h.Login)
		auth.GET("/coaches/active", h.ActiveCoaches)

		auth.GET("/coach/:coachId/students", g.authed, h.CoachStudents)
		auth.GET("/me", g.authed, h.Me)
	}

	review := auth.Group("")
	review.Use(g.admin)
	{
		review.POST("/approve/player", h.ApproveRequest)
		review.POST("/reject/player", h.RejectRequest)
		review.POST("/reject", h.RejectRequest)
		review.GET("/requests", h.PendingRequests)

		review.GET("/transfers/pending", h.PendingTransfers)
		review.POST("/transfers/approve", h.ApproveTransfer)
		review.POST("/transfers/reject", h.RejectTransfer)
	}
}

func PlayerRoutes(api *gin.RouterGroup, h *controllers.Handler, g gates) {
	players := api.Group("/players")
	players.Use(g.player)
	{
		players.POST("/transfer-request", h.RequestTransfer)
	}
}
