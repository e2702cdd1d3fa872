package dtos

// Auth-provider webhook payloads. The provider is the source of truth for
// users and organizations; these endpoints just mirror its rows.

type UserWebhook struct {
	ID       string `json:"id" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	ImageURL string `json:"image_url"`
}

type OrganizationWebhook struct {
	ID           string   `json:"id" binding:"required"`
	Name         string   `json:"name" binding:"required"`
	ImageURL     *string  `json:"image_url"`
	PlanFeatures []string `json:"plan_features"`
}

type MembershipWebhook struct {
	UserID         string `json:"user_id" binding:"required"`
	OrganizationID string `json:"organization_id" binding:"required"`
}
