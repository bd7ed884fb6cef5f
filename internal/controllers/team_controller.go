package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yultimate_hub/internal/middleware"
	"yultimate_hub/internal/services"
)

type rosterInput struct {
	PlayerID     uint `json:"playerId" binding:"required"`
	JerseyNumber int  `json:"jerseyNumber"`
}

// CreateTeam registers a team for the calling coach.
func (h *Handler) CreateTeam(c *gin.Context) {
	var input services.TeamInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid team input: " + err.Error()})
		return
	}
	team, err := h.Teams.Create(c.Request.Context(), middleware.CurrentUserID(c), input)
	if err != nil {
		respondError(c, err, "could not create team")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Team registered successfully", "team": team})
}

func (h *Handler) MyTeams(c *gin.Context) {
	teams, err := h.Teams.Mine(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err, "could not fetch teams")
		return
	}
	c.JSON(http.StatusOK, teams)
}

func (h *Handler) AllTeams(c *gin.Context) {
	teams, err := h.Teams.All(c.Request.Context())
	if err != nil {
		respondError(c, err, "could not fetch teams")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"teams": teams, "count": len(teams)},
	})
}

func (h *Handler) AddRosterEntry(c *gin.Context) {
	teamID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var input rosterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid roster input: " + err.Error()})
		return
	}
	entry, err := h.Teams.AddRosterEntry(c.Request.Context(), middleware.CurrentUserID(c), teamID, input.PlayerID, input.JerseyNumber)
	if err != nil {
		respondError(c, err, "could not update roster")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"roster": entry})
}
