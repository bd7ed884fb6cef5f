package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yultimate_hub/internal/services"
)

type volunteerInput struct {
	VolunteerID uint   `json:"volunteerId" binding:"required"`
	Duty        string `json:"duty"`
}

func (h *Handler) ListTournaments(c *gin.Context) {
	tournaments, err := h.Tournaments.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "could not fetch tournaments")
		return
	}
	c.JSON(http.StatusOK, tournaments)
}

func (h *Handler) CreateTournament(c *gin.Context) {
	var input services.TournamentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tournament input: " + err.Error()})
		return
	}
	t, err := h.Tournaments.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err, "could not create tournament")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"tournament": t})
}

func (h *Handler) AssignVolunteer(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var input volunteerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid volunteer input: " + err.Error()})
		return
	}
	a, err := h.Tournaments.AssignVolunteer(c.Request.Context(), id, input.VolunteerID, input.Duty)
	if err != nil {
		respondError(c, err, "could not assign volunteer")
		return
	}
	c.JSON(http.StatusOK, gin.H{"assignment": a})
}

func (h *Handler) RecordMatch(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var input services.MatchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid match input: " + err.Error()})
		return
	}
	m, err := h.Tournaments.RecordMatch(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err, "could not record match")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"match": m})
}

// Announce fans a message out to the tournament's stakeholders.
func (h *Handler) Announce(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var input services.AnnounceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid announcement input: " + err.Error()})
		return
	}
	sent, err := h.Tournaments.Announce(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err, "could not send announcement")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Announcement sent", "recipients": len(sent)})
}
