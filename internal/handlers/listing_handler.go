package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard/internal/auth"
	"jobboard/internal/dtos"
	"jobboard/internal/models"
	"jobboard/internal/services"
)

type ListingHandler struct {
	Listings *services.ListingService
}

func NewListingHandler(listings *services.ListingService) *ListingHandler {
	return &ListingHandler{Listings: listings}
}

// Create is POST /job-listings. New listings always start as drafts.
func (h *ListingHandler) Create(c *gin.Context) {
	var req dtos.JobListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "There was an error creating your job listing"})
		return
	}

	listing, err := h.Listings.Create(c.Request.Context(), auth.SessionFrom(c), listingFields(req))
	if err != nil {
		respondError(c, err, "You don't have permission to create a job listing")
		return
	}
	c.JSON(http.StatusCreated, listing)
}

// Update is PUT /job-listings/:id.
func (h *ListingHandler) Update(c *gin.Context) {
	var req dtos.JobListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "There was an error updating your job listing"})
		return
	}

	listing, err := h.Listings.Update(c.Request.Context(), auth.SessionFrom(c), c.Param("id"), listingFields(req))
	if err != nil {
		respondError(c, err, "You don't have permission to update this job listing")
		return
	}
	c.JSON(http.StatusOK, listing)
}

// ToggleStatus is POST /job-listings/:id/status. It flips the listing along
// its single outgoing edge; there is no "set status" endpoint.
func (h *ListingHandler) ToggleStatus(c *gin.Context) {
	listing, err := h.Listings.ToggleStatus(c.Request.Context(), auth.SessionFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err, "You don't have permission to update this job listing's status")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": listing.ID, "status": listing.Status})
}

// ToggleFeatured is POST /job-listings/:id/featured.
func (h *ListingHandler) ToggleFeatured(c *gin.Context) {
	listing, err := h.Listings.ToggleFeatured(c.Request.Context(), auth.SessionFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err, "You don't have permission to update this job listing's featured status")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": listing.ID, "is_featured": listing.IsFeatured})
}

// Delete is DELETE /job-listings/:id. Hard delete, applications cascade.
func (h *ListingHandler) Delete(c *gin.Context) {
	err := h.Listings.Delete(c.Request.Context(), auth.SessionFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err, "You don't have permission to delete this job listing")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// EmployerIndex is GET /employer/job-listings: the org's listings grouped
// published first, then draft, then delisted.
func (h *ListingHandler) EmployerIndex(c *gin.Context) {
	listings, err := h.Listings.ListForOrg(c.Request.Context(), auth.SessionFrom(c))
	if err != nil {
		respondError(c, err, "You don't have permission to view these job listings")
		return
	}
	c.JSON(http.StatusOK, listings)
}

// PublicIndex is GET /job-listings: published listings, featured first.
func (h *ListingHandler) PublicIndex(c *gin.Context) {
	listings, err := h.Listings.ListPublic(c.Request.Context())
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, listings)
}

// PublicGet is GET /job-listings/:id, published listings only.
func (h *ListingHandler) PublicGet(c *gin.Context) {
	listing, err := h.Listings.GetPublic(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "This job listing is not available")
		return
	}
	c.JSON(http.StatusOK, listing)
}

func listingFields(req dtos.JobListingRequest) services.ListingFields {
	fields := services.ListingFields{
		Title:               req.Title,
		Description:         req.Description,
		Wage:                req.Wage,
		StateAbbreviation:   req.StateAbbreviation,
		City:                req.City,
		LocationRequirement: models.LocationRequirement(req.LocationRequirement),
		ExperienceLevel:     models.ExperienceLevel(req.ExperienceLevel),
		Type:                models.JobListingType(req.Type),
	}
	if req.WageInterval != nil {
		interval := models.WageInterval(*req.WageInterval)
		fields.WageInterval = &interval
	}
	return fields
}
