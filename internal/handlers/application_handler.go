package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard/internal/auth"
	"jobboard/internal/dtos"
	"jobboard/internal/models"
	"jobboard/internal/services"
)

type ApplicationHandler struct {
	Applications *services.ApplicationService
}

func NewApplicationHandler(applications *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{Applications: applications}
}

// Submit is POST /job-listings/:id/applications.
func (h *ApplicationHandler) Submit(c *gin.Context) {
	var req dtos.ApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "There was an error submitting your application"})
		return
	}

	sess := auth.SessionFrom(c)
	userID := ""
	if sess != nil {
		userID = sess.UserID
	}

	app, err := h.Applications.Submit(c.Request.Context(), userID, c.Param("id"), req.CoverLetter)
	if err != nil {
		respondError(c, err, "You don't have permission to submit an application")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":     "Your application was successfully submitted",
		"application": app,
	})
}

// List is GET /employer/job-listings/:id/applications.
func (h *ApplicationHandler) List(c *gin.Context) {
	apps, err := h.Applications.ListForListing(c.Request.Context(), auth.SessionFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err, "You don't have permission to view these applications")
		return
	}
	c.JSON(http.StatusOK, apps)
}

// ChangeStage is PUT /job-listings/:id/applications/:userId/stage.
func (h *ApplicationHandler) ChangeStage(c *gin.Context) {
	var req dtos.StageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "There was an error updating the application stage"})
		return
	}

	err := h.Applications.ChangeStage(
		c.Request.Context(), auth.SessionFrom(c),
		c.Param("id"), c.Param("userId"),
		models.ApplicationStage(req.Stage),
	)
	if err != nil {
		respondError(c, err, "You don't have permission to update this application's stage")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ChangeRating is PUT /job-listings/:id/applications/:userId/rating.
func (h *ApplicationHandler) ChangeRating(c *gin.Context) {
	var req dtos.RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "There was an error updating the application rating"})
		return
	}

	err := h.Applications.ChangeRating(
		c.Request.Context(), auth.SessionFrom(c),
		c.Param("id"), c.Param("userId"),
		req.Rating,
	)
	if err != nil {
		respondError(c, err, "You don't have permission to update this application's rating")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
