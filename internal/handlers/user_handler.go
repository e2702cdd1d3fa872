package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard/internal/auth"
	"jobboard/internal/dtos"
	"jobboard/internal/services"
)

type UserHandler struct {
	Users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{Users: users}
}

// SetResume is PUT /user/resume. Summarization runs in the background.
func (h *UserHandler) SetResume(c *gin.Context) {
	var req dtos.ResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "There was an error saving your resume"})
		return
	}

	sess := auth.SessionFrom(c)
	userID := ""
	if sess != nil {
		userID = sess.UserID
	}

	if err := h.Users.SetResume(c.Request.Context(), userID, req.FileURL, req.Text); err != nil {
		respondError(c, err, "You don't have permission to update this resume")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// SetNotificationSettings is PUT /user/notification-settings.
func (h *UserHandler) SetNotificationSettings(c *gin.Context) {
	var req dtos.NotificationSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "There was an error saving your notification settings"})
		return
	}

	sess := auth.SessionFrom(c)
	userID := ""
	if sess != nil {
		userID = sess.UserID
	}

	err := h.Users.UpdateNotificationSettings(c.Request.Context(), userID, req.NewJobEmailNotifications, req.AIPrompt)
	if err != nil {
		respondError(c, err, "You don't have permission to update these settings")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// SetOrgNotificationSettings is PUT /employer/notification-settings.
func (h *UserHandler) SetOrgNotificationSettings(c *gin.Context) {
	var req dtos.OrgNotificationSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "There was an error saving your notification settings"})
		return
	}

	err := h.Users.UpdateOrgNotificationSettings(
		c.Request.Context(), auth.SessionFrom(c),
		req.NewApplicationEmailNotifications, req.MinimumRating,
	)
	if err != nil {
		respondError(c, err, "You don't have permission to update these settings")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
