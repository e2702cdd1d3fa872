package dtos

type ApplicationRequest struct {
	CoverLetter *string `json:"cover_letter"`
}

type StageRequest struct {
	Stage string `json:"stage" binding:"required"`
}

type RatingRequest struct {
	Rating int `json:"rating" binding:"required,min=1,max=5"`
}

type ResumeRequest struct {
	FileURL string `json:"file_url" binding:"required,url"`
	// Extracted plain text; feeds the AI summary when present.
	Text string `json:"text"`
}

type NotificationSettingsRequest struct {
	NewJobEmailNotifications bool    `json:"new_job_email_notifications"`
	AIPrompt                 *string `json:"ai_prompt"`
}

type OrgNotificationSettingsRequest struct {
	NewApplicationEmailNotifications bool `json:"new_application_email_notifications"`
	MinimumRating                    *int `json:"minimum_rating" binding:"omitempty,min=1,max=5"`
}
