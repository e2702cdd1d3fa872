package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"jobboard/internal/models"
)

// Webhook-driven sync: inserts ignore conflicts so replayed provider events
// stay idempotent, matching the provider's at-least-once delivery.

func (s *Store) UpsertUser(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "email", "image_url", "updated_at"}),
		}).
		Create(user).Error
}

func (s *Store) DeleteUser(ctx context.Context, userID string) error {
	return s.db.WithContext(ctx).Delete(&models.User{}, "id = ?", userID).Error
}

func (s *Store) UpsertOrganization(ctx context.Context, org *models.Organization) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "image_url", "plan_features", "updated_at"}),
		}).
		Create(org).Error
}

func (s *Store) DeleteOrganization(ctx context.Context, orgID string) error {
	return s.db.WithContext(ctx).Delete(&models.Organization{}, "id = ?", orgID).Error
}

func (s *Store) UpsertOrganizationUserSettings(ctx context.Context, settings *models.OrganizationUserSettings) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "organization_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"new_application_email_notifications", "minimum_rating", "updated_at"}),
		}).
		Create(settings).Error
}

func (s *Store) DeleteOrganizationUserSettings(ctx context.Context, userID, orgID string) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND organization_id = ?", userID, orgID).
		Delete(&models.OrganizationUserSettings{}).Error
}

func (s *Store) UpsertUserNotificationSettings(ctx context.Context, settings *models.UserNotificationSettings) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"new_job_email_notifications", "ai_prompt", "updated_at"}),
		}).
		Create(settings).Error
}

func (s *Store) GetUserResume(ctx context.Context, userID string) (*models.UserResume, error) {
	var resume models.UserResume
	err := s.db.WithContext(ctx).First(&resume, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &resume, nil
}

func (s *Store) UpsertUserResume(ctx context.Context, resume *models.UserResume) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"resume_file_url", "updated_at"}),
		}).
		Create(resume).Error
}

func (s *Store) SetResumeSummary(ctx context.Context, userID, summary string) error {
	return s.db.WithContext(ctx).
		Model(&models.UserResume{}).
		Where("user_id = ?", userID).
		Update("ai_summary", summary).Error
}

// ListDigestSubscribers returns users who opted into the new-job email,
// joined with their notification settings for the optional AI prompt.
func (s *Store) ListDigestSubscribers(ctx context.Context) ([]DigestSubscriber, error) {
	var subs []DigestSubscriber
	err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Select("users.id AS user_id, users.name, users.email, user_notification_settings.ai_prompt").
		Joins("JOIN user_notification_settings ON user_notification_settings.user_id = users.id").
		Where("user_notification_settings.new_job_email_notifications = ?", true).
		Scan(&subs).Error
	return subs, err
}

type DigestSubscriber struct {
	UserID   string
	Name     string
	Email    string
	AIPrompt *string
}
