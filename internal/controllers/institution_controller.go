package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yultimate_hub/internal/services"
)

// ListInstitutions returns institutions, optionally filtered by ?type=school|community.
func (h *Handler) ListInstitutions(c *gin.Context) {
	list, err := h.Institutions.List(c.Request.Context(), c.Query("type"))
	if err != nil {
		respondError(c, err, "could not fetch institutions")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) CreateInstitution(c *gin.Context) {
	var input services.InstitutionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid institution input: " + err.Error()})
		return
	}
	inst, err := h.Institutions.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err, "could not create institution")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"institution": inst})
}
