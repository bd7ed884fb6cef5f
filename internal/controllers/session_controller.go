package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"yultimate_hub/internal/services"
)

type addPlayersInput struct {
	PlayerIDs []uint `json:"playerIds"`
}

func (h *Handler) ListSessions(c *gin.Context) {
	sessions, err := h.Sessions.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "could not fetch sessions")
		return
	}
	c.JSON(http.StatusOK, sessions)
}

func (h *Handler) GetSession(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	session, err := h.Sessions.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "could not fetch session")
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *Handler) CreateSession(c *gin.Context) {
	var input services.SessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session input: " + err.Error()})
		return
	}
	session, err := h.Sessions.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err, "could not create session")
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (h *Handler) UpdateSession(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var input services.SessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session input: " + err.Error()})
		return
	}
	session, err := h.Sessions.Update(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err, "could not update session")
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *Handler) DeleteSession(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.Sessions.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "could not delete session")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session deleted successfully"})
}

func (h *Handler) AddSessionPlayers(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var input addPlayersInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid players input: " + err.Error()})
		return
	}
	session, added, err := h.Sessions.AddPlayers(c.Request.Context(), id, input.PlayerIDs)
	if err != nil {
		respondError(c, err, "could not add players")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("%d player(s) added successfully", added),
		"session": session,
	})
}

func (h *Handler) SessionsByCoach(c *gin.Context) {
	coachID, ok := idParam(c, "coachId")
	if !ok {
		return
	}
	sessions, err := h.Sessions.ByCoach(c.Request.Context(), coachID)
	if err != nil {
		respondError(c, err, "could not fetch sessions")
		return
	}
	c.JSON(http.StatusOK, sessions)
}

func (h *Handler) ListCohorts(c *gin.Context) {
	cohorts, err := h.Sessions.Cohorts(c.Request.Context())
	if err != nil {
		respondError(c, err, "could not fetch cohorts")
		return
	}
	c.JSON(http.StatusOK, cohorts)
}

func (h *Handler) ListCoaches(c *gin.Context) {
	coaches, err := h.Accounts.Coaches(c.Request.Context())
	if err != nil {
		respondError(c, err, "could not fetch coaches")
		return
	}
	c.JSON(http.StatusOK, coaches)
}

func (h *Handler) ListPlayers(c *gin.Context) {
	players, err := h.Accounts.Players(c.Request.Context())
	if err != nil {
		respondError(c, err, "could not fetch players")
		return
	}
	c.JSON(http.StatusOK, players)
}
