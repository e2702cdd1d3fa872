package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard/internal/services"
)

// respondError maps a service failure onto a static, non-leaking response.
// Not-found and permission failures deliberately share the same denial
// message so callers cannot tell a foreign listing from a missing one.
func respondError(c *gin.Context, err error, denial string) {
	switch {
	case errors.Is(err, services.ErrNotFound), errors.Is(err, services.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": denial})
	case errors.Is(err, services.ErrQuotaExceeded):
		c.JSON(http.StatusForbidden, gin.H{
			"error": "You have reached your plan's limit. Upgrade your plan to continue.",
		})
	case errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only published job listings can be featured"})
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "There was an error processing your request"})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}

// HealthCheck reports liveness.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
