package routes

import (
	"io"

	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"

	"yultimate_hub/internal/controllers"
	"yultimate_hub/internal/middleware"
	"yultimate_hub/internal/models"
)

// gates bundles the auth middleware so each route file picks what it needs.
type gates struct {
	authed gin.HandlerFunc
	admin  gin.HandlerFunc
	coach  gin.HandlerFunc
	player gin.HandlerFunc
}

// SetupRouter builds the engine. Request logs go to logWriter.
func SetupRouter(h *controllers.Handler, logWriter io.Writer) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(ginlog.SetLogger(
		ginlog.WithUTC(true),
		ginlog.WithSkipPath([]string{"/healthz"}),
		ginlog.WithWriter(logWriter),
	))

	g := gates{
		authed: middleware.RequireAuth(h.Tokens),
		admin:  middleware.RequireAuthWithRole(h.Tokens, models.RoleAdmin),
		coach:  middleware.RequireAuthWithRole(h.Tokens, models.RoleCoach),
		player: middleware.RequireAuthWithRole(h.Tokens, models.RolePlayer),
	}

	r.GET("/healthz", controllers.Healthz)

	api := r.Group("/api")
	AuthRoutes(api, h, g)
	PlayerRoutes(api, h, g)
	SessionRoutes(api, h, g)
	TeamRoutes(api, h, g)
	NotificationRoutes(api, h, g)
	TournamentRoutes(api, h, g)
	InstitutionRoutes(api, h, g)
	AdminRoutes(api, h, g)
	WebSocketRoutes(r, h)

	return r
}
