package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard/internal/auth"
	"jobboard/internal/dtos"
	"jobboard/internal/services"
)

const maxSearchResults = 10

type SearchHandler struct {
	Listings *services.ListingService
	AI       *services.AIService
}

func NewSearchHandler(listings *services.ListingService, ai *services.AIService) *SearchHandler {
	return &SearchHandler{Listings: listings, AI: ai}
}

// AISearch is POST /ai-search: rank published listings against a natural
// language query and return the matching ids.
func (h *SearchHandler) AISearch(c *gin.Context) {
	var req dtos.AISearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "There was an error processing your search query"})
		return
	}

	sess := auth.SessionFrom(c)
	if sess == nil || sess.UserID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "You need an account to use AI Job Search"})
		return
	}

	if h.AI == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI Job Search is currently unavailable"})
		return
	}

	listings, err := h.Listings.ListPublic(c.Request.Context())
	if err != nil {
		respondError(c, err, "")
		return
	}

	jobIDs, err := h.AI.MatchJobListings(c.Request.Context(), req.Query, listings, maxSearchResults)
	if err != nil {
		respondError(c, err, "")
		return
	}
	if len(jobIDs) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No jobs match your search criteria"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"job_ids": jobIDs})
}
