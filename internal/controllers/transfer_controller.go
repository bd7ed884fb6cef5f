package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yultimate_hub/internal/middleware"
)

type transferDecisionInput struct {
	PlayerID uint   `json:"playerId" binding:"required"`
	Reason   string `json:"reason"`
}

type transferRequestInput struct {
	InstitutionID uint   `json:"institutionId" binding:"required"`
	Reason        string `json:"reason"`
}

// RequestTransfer lets the calling player ask to move to another institution.
func (h *Handler) RequestTransfer(c *gin.Context) {
	var input transferRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transfer input: " + err.Error()})
		return
	}

	profile, err := h.Transfers.Request(c.Request.Context(), middleware.CurrentUserID(c), input.InstitutionID, input.Reason)
	if err != nil {
		respondError(c, err, "could not request transfer")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":         "Transfer request submitted successfully.",
		"transferRequest": profile.TransferRequest,
	})
}

func (h *Handler) PendingTransfers(c *gin.Context) {
	pending, err := h.Transfers.Pending(c.Request.Context())
	if err != nil {
		respondError(c, err, "could not fetch transfers")
		return
	}
	c.JSON(http.StatusOK, pending)
}

func (h *Handler) ApproveTransfer(c *gin.Context) {
	var input transferDecisionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transfer input: " + err.Error()})
		return
	}

	tr, err := h.Transfers.Approve(c.Request.Context(), input.PlayerID)
	if err != nil {
		respondError(c, err, "could not approve transfer")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Transfer approved successfully.", "transferRequest": tr})
}

func (h *Handler) RejectTransfer(c *gin.Context) {
	var input transferDecisionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transfer input: " + err.Error()})
		return
	}

	tr, err := h.Transfers.Reject(c.Request.Context(), input.PlayerID, input.Reason)
	if err != nil {
		respondError(c, err, "could not reject transfer")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Transfer rejected.", "transferRequest": tr})
}
