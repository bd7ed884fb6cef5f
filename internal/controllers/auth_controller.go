package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yultimate_hub/internal/middleware"
	"yultimate_hub/internal/models"
	"yultimate_hub/internal/services"
)

type approveInput struct {
	RequestID uint `json:"requestId" binding:"required"`
	CoachID   uint `json:"coachId"`
}

type rejectInput struct {
	RequestID uint   `json:"requestId" binding:"required"`
	Remarks   string `json:"remarks"`
}

// Signup files a role request for admin review.
func (h *Handler) Signup(c *gin.Context) {
	var input services.SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signup input: " + err.Error()})
		return
	}

	if _, err := h.Accounts.Signup(c.Request.Context(), input); err != nil {
		respondError(c, err, "could not submit signup request")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Signup request submitted successfully. Wait for admin approval."})
}

// Login authenticates by unique user id and returns a bearer token.
func (h *Handler) Login(c *gin.Context) {
	var input services.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid login input: " + err.Error()})
		return
	}

	res, err := h.Auth.Login(c.Request.Context(), input)
	if err != nil {
		respondError(c, err, "could not log in")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": res.Message,
		"user": gin.H{
			"id":           res.Person.ID,
			"name":         res.Person.FullName(),
			"roles":        res.Person.RoleNames(),
			"uniqueUserId": res.Person.UniqueUserID,
		},
		"token": res.Token,
	})
}

func (h *Handler) ApproveRequest(c *gin.Context) {
	var input approveInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid approval input: " + err.Error()})
		return
	}

	res, err := h.Accounts.Approve(c.Request.Context(), input.RequestID, input.CoachID, middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err, "could not approve request")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Account approved successfully. User credentials created.",
		"uniqueUserId": res.UniqueUserID,
		"personId":     res.PersonID,
		"coachId":      res.CoachID,
		"emailSent":    res.Delivery.EmailSent,
		"smsSent":      res.Delivery.SMSSent,
	})
}

func (h *Handler) RejectRequest(c *gin.Context) {
	var input rejectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rejection input: " + err.Error()})
		return
	}

	if err := h.Accounts.Reject(c.Request.Context(), input.RequestID, middleware.CurrentUserID(c), input.Remarks); err != nil {
		respondError(c, err, "could not reject request")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Request rejected successfully."})
}

func (h *Handler) PendingRequests(c *gin.Context) {
	requests, err := h.Accounts.PendingRequests(c.Request.Context())
	if err != nil {
		respondError(c, err, "could not fetch requests")
		return
	}
	c.JSON(http.StatusOK, requests)
}

func (h *Handler) ActiveCoaches(c *gin.Context) {
	coaches, err := h.Accounts.ActiveCoaches(c.Request.Context())
	if err != nil {
		respondError(c, err, "could not fetch coaches")
		return
	}
	c.JSON(http.StatusOK, coaches)
}

// CoachStudents lists a coach's assigned players. Coaches only see their own.
func (h *Handler) CoachStudents(c *gin.Context) {
	coachID, ok := idParam(c, "coachId")
	if !ok {
		return
	}
	if !middleware.HasRole(c, models.RoleAdmin) && middleware.CurrentUserID(c) != coachID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}

	students, err := h.Accounts.CoachStudents(c.Request.Context(), coachID)
	if err != nil {
		respondError(c, err, "could not fetch students")
		return
	}
	c.JSON(http.StatusOK, students)
}

func (h *Handler) Me(c *gin.Context) {
	person, err := h.Accounts.Me(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err, "could not load account")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": person, "roles": person.RoleNames()})
}
