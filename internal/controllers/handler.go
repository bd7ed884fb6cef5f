package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"yultimate_hub/internal/apperr"
	"yultimate_hub/internal/auth"
	"yultimate_hub/internal/messaging"
	"yultimate_hub/internal/realtime"
	"yultimate_hub/internal/services"
)

// Handler holds the services every controller talks to.
type Handler struct {
	Accounts     *services.AccountService
	Auth         *services.AuthService
	Transfers    *services.TransferService
	Notifier     *services.Notifier
	Sessions     *services.SessionService
	Teams        *services.TeamService
	Tournaments  *services.TournamentService
	Institutions *services.InstitutionService

	Mailer messaging.Mailer
	SMS    messaging.SMSSender

	Hub    *realtime.Hub
	Tokens *auth.TokenManager
}

// respondError writes err as {"error": msg} with the status its type maps to.
func respondError(c *gin.Context, err error, context string) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		logrus.WithError(err).WithFields(logrus.Fields{
			"path":   c.FullPath(),
			"method": c.Request.Method,
		}).Error(context + ".")
		c.JSON(status, gin.H{"error": context + ": " + err.Error()})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// idParam reads a positive integer path parameter, answering 400 when it is not one.
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

func intQuery(c *gin.Context, name string) int {
	n, err := strconv.Atoi(c.Query(name))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Healthz answers liveness probes.
func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
