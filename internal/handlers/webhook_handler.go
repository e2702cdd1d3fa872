package handlers

import (
	"crypto/subtle"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"jobboard/internal/dtos"
	"jobboard/internal/models"
	"jobboard/internal/store"
)

// WebhookHandler mirrors auth-provider events into local rows. Endpoints
// are idempotent; the provider retries delivery.
type WebhookHandler struct {
	Store *store.Store
}

func NewWebhookHandler(st *store.Store) *WebhookHandler {
	return &WebhookHandler{Store: st}
}

// RequireWebhookSecret gates the webhook routes on a shared secret header.
func RequireWebhookSecret() gin.HandlerFunc {
	secret := os.Getenv("WEBHOOK_SECRET")
	return func(c *gin.Context) {
		if secret == "" ||
			subtle.ConstantTimeCompare([]byte(c.GetHeader("X-Webhook-Secret")), []byte(secret)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

func (h *WebhookHandler) UserUpserted(c *gin.Context) {
	var req dtos.UserWebhook
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	err := h.Store.UpsertUser(c.Request.Context(), &models.User{
		ID:       req.ID,
		Name:     req.Name,
		Email:    req.Email,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *WebhookHandler) UserDeleted(c *gin.Context) {
	if err := h.Store.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *WebhookHandler) OrganizationUpserted(c *gin.Context) {
	var req dtos.OrganizationWebhook
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	err := h.Store.UpsertOrganization(c.Request.Context(), &models.Organization{
		ID:           req.ID,
		Name:         req.Name,
		ImageURL:     req.ImageURL,
		PlanFeatures: req.PlanFeatures,
	})
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *WebhookHandler) OrganizationDeleted(c *gin.Context) {
	if err := h.Store.DeleteOrganization(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// MembershipDeleted drops the member's notification settings when they
// leave the organization.
func (h *WebhookHandler) MembershipDeleted(c *gin.Context) {
	var req dtos.MembershipWebhook
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	err := h.Store.DeleteOrganizationUserSettings(c.Request.Context(), req.UserID, req.OrganizationID)
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
