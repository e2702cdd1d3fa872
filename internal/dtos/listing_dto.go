package dtos

// JobListingRequest is the create/update payload for a listing. Status,
// featured flag and postedAt are never accepted from clients; they only
// move through the toggle endpoints.
type JobListingRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`

	Wage              *int    `json:"wage" binding:"omitempty,min=0"`
	WageInterval      *string `json:"wage_interval" binding:"omitempty,oneof=hourly yearly"`
	StateAbbreviation *string `json:"state_abbreviation" binding:"omitempty,len=2"`
	City              *string `json:"city"`

	LocationRequirement string `json:"location_requirement" binding:"required,oneof=remote in-office hybrid"`
	ExperienceLevel     string `json:"experience_level" binding:"required,oneof=junior mid-level senior"`
	Type                string `json:"type" binding:"required,oneof=full-time part-time internship"`
}

// AISearchRequest is the seeker's natural-language search query.
type AISearchRequest struct {
	Query string `json:"query" binding:"required,min=3"`
}
