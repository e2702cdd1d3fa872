package models

import (
	"time"
)

// Organization mirrors the employer tenant from the auth provider.
// Rows are created/updated by provider webhooks, never by application forms.
type Organization struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name     string  `gorm:"not null" json:"name"`
	ImageURL *string `json:"image_url,omitempty"`

	// Plan entitlements from the billing plan, e.g. "post_3_job_listings".
	PlanFeatures []string `gorm:"serializer:json" json:"plan_features"`

	JobListings []JobListing `json:"job_listings,omitempty"`
}

// User mirrors the job-seeker account from the auth provider.
type User struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	ImageURL string `gorm:"not null" json:"image_url"`
}

// UserResume holds the uploaded resume pointer plus the AI-generated summary.
type UserResume struct {
	UserID    string    `gorm:"primaryKey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ResumeFileURL string  `gorm:"not null" json:"resume_file_url"`
	AISummary     *string `gorm:"type:text" json:"ai_summary,omitempty"`
}

// UserNotificationSettings controls the daily new-listings digest per seeker.
type UserNotificationSettings struct {
	UserID    string    `gorm:"primaryKey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	NewJobEmailNotifications bool    `gorm:"not null;default:false" json:"new_job_email_notifications"`
	AIPrompt                 *string `gorm:"type:text" json:"ai_prompt,omitempty"`
}

// OrganizationUserSettings controls the new-application digest per employer member.
type OrganizationUserSettings struct {
	UserID         string    `gorm:"primaryKey" json:"user_id"`
	OrganizationID string    `gorm:"primaryKey" json:"organization_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	NewApplicationEmailNotifications bool `gorm:"not null;default:false" json:"new_application_email_notifications"`
	MinimumRating                    *int `json:"minimum_rating,omitempty"`
}

// JobListing is the central entity of the board.
//
// Status and IsFeatured only change through the lifecycle service; PostedAt
// is set the first time the listing goes published and never touched again.
type JobListing struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	OrganizationID string       `gorm:"not null;index" json:"organization_id"`
	Organization   Organization `json:"organization,omitempty"`

	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`

	Wage                *int                `json:"wage,omitempty"`
	WageInterval        *WageInterval       `json:"wage_interval,omitempty"`
	StateAbbreviation   *string             `json:"state_abbreviation,omitempty"`
	City                *string             `json:"city,omitempty"`
	LocationRequirement LocationRequirement `gorm:"not null" json:"location_requirement"`
	ExperienceLevel     ExperienceLevel     `gorm:"not null" json:"experience_level"`
	Type                JobListingType      `gorm:"not null" json:"type"`

	Status     JobListingStatus `gorm:"not null;default:'draft';index" json:"status"`
	IsFeatured bool             `gorm:"not null;default:false;index" json:"is_featured"`
	PostedAt   *time.Time       `json:"posted_at,omitempty"`

	Applications []JobListingApplication `gorm:"foreignKey:JobListingID;constraint:OnDelete:CASCADE" json:"applications,omitempty"`
}

// JobListingApplication links a seeker to a listing. One per user+listing.
type JobListingApplication struct {
	JobListingID string    `gorm:"primaryKey" json:"job_listing_id"`
	UserID       string    `gorm:"primaryKey" json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	CoverLetter *string          `gorm:"type:text" json:"cover_letter,omitempty"`
	Rating      *int             `json:"rating,omitempty"`
	Stage       ApplicationStage `gorm:"not null;default:'applied'" json:"stage"`

	User User `json:"user,omitempty"`
}
