package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"jobboard/internal/models"
)

func (s *Store) CreateApplication(ctx context.Context, app *models.JobListingApplication) (created bool, err error) {
	// One application per user+listing; replays are silently ignored.
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(app)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *Store) FindApplication(ctx context.Context, listingID, userID string) (*models.JobListingApplication, error) {
	var app models.JobListingApplication
	err := s.db.WithContext(ctx).
		Where("job_listing_id = ? AND user_id = ?", listingID, userID).
		First(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (s *Store) UpdateApplication(ctx context.Context, listingID, userID string, fields map[string]any) error {
	return s.db.WithContext(ctx).
		Model(&models.JobListingApplication{}).
		Where("job_listing_id = ? AND user_id = ?", listingID, userID).
		Updates(fields).Error
}

func (s *Store) ListApplicationsForListing(ctx context.Context, listingID string) ([]models.JobListingApplication, error) {
	var apps []models.JobListingApplication
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("job_listing_id = ?", listingID).
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}

// NewApplicationCount groups fresh applications per listing for the
// employer digest.
type NewApplicationCount struct {
	JobListingID string
	Title        string
	Count        int64
}

// NewApplication is one fresh application with the fields the employer
// digest needs to count it against a recipient's rating floor.
type NewApplication struct {
	JobListingID string
	Title        string
	Rating       *int
}

func (s *Store) ListApplicationsCreatedSince(ctx context.Context, orgID string, since time.Time) ([]NewApplication, error) {
	var apps []NewApplication
	err := s.db.WithContext(ctx).
		Model(&models.JobListingApplication{}).
		Select("job_listing_applications.job_listing_id, job_listings.title, job_listing_applications.rating").
		Joins("JOIN job_listings ON job_listings.id = job_listing_applications.job_listing_id").
		Where("job_listings.organization_id = ? AND job_listing_applications.created_at > ?", orgID, since).
		Order("job_listings.title").
		Scan(&apps).Error
	return apps, err
}

// ListOrgDigestRecipients returns employer members who opted into
// application notifications, with their rating floor.
func (s *Store) ListOrgDigestRecipients(ctx context.Context, orgID string) ([]OrgDigestRecipient, error) {
	var recipients []OrgDigestRecipient
	err := s.db.WithContext(ctx).
		Model(&models.OrganizationUserSettings{}).
		Select("organization_user_settings.user_id, users.name, users.email, organization_user_settings.minimum_rating").
		Joins("JOIN users ON users.id = organization_user_settings.user_id").
		Where("organization_user_settings.organization_id = ? AND organization_user_settings.new_application_email_notifications = ?", orgID, true).
		Scan(&recipients).Error
	return recipients, err
}

type OrgDigestRecipient struct {
	UserID        string
	Name          string
	Email         string
	MinimumRating *int
}

func (s *Store) ListOrganizationIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).
		Model(&models.Organization{}).
		Pluck("id", &ids).Error
	return ids, err
}
