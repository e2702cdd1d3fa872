package services

import (
	"context"
	"fmt"
	"log"

	"jobboard/internal/auth"
	"jobboard/internal/models"
)

// UserStore covers the seeker-side rows: resume and notification settings.
type UserStore interface {
	UpsertUserResume(ctx context.Context, resume *models.UserResume) error
	SetResumeSummary(ctx context.Context, userID, summary string) error
	UpsertUserNotificationSettings(ctx context.Context, settings *models.UserNotificationSettings) error
	UpsertOrganizationUserSettings(ctx context.Context, settings *models.OrganizationUserSettings) error
}

// Summarizer produces the employer-facing resume summary. Implemented by
// AIService; nil skips summarization.
type Summarizer interface {
	SummarizeResume(ctx context.Context, resumeText string) (string, error)
}

type UserService struct {
	Store UserStore
	AI    Summarizer
}

func NewUserService(store UserStore, ai Summarizer) *UserService {
	return &UserService{Store: store, AI: ai}
}

// SetResume records the uploaded resume and kicks off summarization in the
// background. The upload itself never waits on the model.
func (s *UserService) SetResume(ctx context.Context, userID, fileURL, resumeText string) error {
	if userID == "" {
		return ErrPermissionDenied
	}

	err := s.Store.UpsertUserResume(ctx, &models.UserResume{
		UserID:        userID,
		ResumeFileURL: fileURL,
	})
	if err != nil {
		return fmt.Errorf("save resume: %w", err)
	}

	if s.AI != nil && resumeText != "" {
		go s.summarize(userID, resumeText)
	}
	return nil
}

func (s *UserService) summarize(userID, resumeText string) {
	ctx := context.Background()

	summary, err := s.AI.SummarizeResume(ctx, resumeText)
	if err != nil {
		log.Printf("[resume] summarize for %s: %v", userID, err)
		return
	}
	if err := s.Store.SetResumeSummary(ctx, userID, summary); err != nil {
		log.Printf("[resume] save summary for %s: %v", userID, err)
	}
}

// UpdateNotificationSettings saves the seeker's digest preferences.
func (s *UserService) UpdateNotificationSettings(ctx context.Context, userID string, newJobEmails bool, aiPrompt *string) error {
	if userID == "" {
		return ErrPermissionDenied
	}
	return s.Store.UpsertUserNotificationSettings(ctx, &models.UserNotificationSettings{
		UserID:                   userID,
		NewJobEmailNotifications: newJobEmails,
		AIPrompt:                 aiPrompt,
	})
}

// UpdateOrgNotificationSettings saves an employer member's application
// digest preferences for the current organization.
func (s *UserService) UpdateOrgNotificationSettings(ctx context.Context, sess *auth.Session, newAppEmails bool, minimumRating *int) error {
	if sess == nil || sess.UserID == "" || sess.OrgID == "" {
		return ErrPermissionDenied
	}
	if minimumRating != nil && (*minimumRating < 1 || *minimumRating > 5) {
		return ErrValidation
	}
	return s.Store.UpsertOrganizationUserSettings(ctx, &models.OrganizationUserSettings{
		UserID:                           sess.UserID,
		OrganizationID:                   sess.OrgID,
		NewApplicationEmailNotifications: newAppEmails,
		MinimumRating:                    minimumRating,
	})
}
