package routes

import (
	"github.com/gin-gonic/gin"

	"yultimate_hub/internal/controllers"
)

func InstitutionRoutes(api *gin.RouterGroup, h *controllers.Handler, g gates) {
	institutions := api.Group("/institutions")
	{
		institutions.GET("", h.ListInstitutions)
		institutions.POST("", g.admin, h.CreateInstitution)
	}
}

func AdminRoutes(api *gin.RouterGroup, h *controllers.Handler, g gates) {
	admin := api.Group("/admin")
	admin.Use(g.admin)
	{
		admin.POST("/test/email", h.TestEmail)
		admin.POST("/test/sms", h.TestSMS)
	}
}
