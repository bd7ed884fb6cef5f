package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yultimate_hub/internal/messaging"
)

type testEmailInput struct {
	To string `json:"to" binding:"required,email"`
}

type testSMSInput struct {
	Phone string `json:"phone" binding:"required"`
}

// TestEmail sends a fixed message through the configured mailer.
func (h *Handler) TestEmail(c *gin.Context) {
	var input testEmailInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email input: " + err.Error()})
		return
	}

	err := h.Mailer.Send(c.Request.Context(), input.To,
		"Test Email - YUltimate Hub",
		"This is a test email from YUltimate Hub.",
		"<p>This is a test email from <strong>YUltimate Hub</strong>.</p>")
	if err != nil {
		respondError(c, err, "failed to send test email")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Test email sent successfully"})
}

// TestSMS sends a fixed message through the configured SMS gateway.
func (h *Handler) TestSMS(c *gin.Context) {
	var input testSMSInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid SMS input: " + err.Error()})
		return
	}

	phone := messaging.FormatPhoneNumber(input.Phone)
	if phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid phone number"})
		return
	}
	if err := h.SMS.Send(c.Request.Context(), phone, "YUltimate Hub: This is a test SMS."); err != nil {
		respondError(c, err, "failed to send test SMS")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Test SMS sent successfully", "phone": phone})
}
