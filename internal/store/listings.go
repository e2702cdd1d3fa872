package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"jobboard/internal/models"
)

// FindListingByIDAndOrg looks a listing up by id AND owning organization.
// Returns (nil, nil) when no such row exists; a listing owned by another
// organization is indistinguishable from a missing one.
func (s *Store) FindListingByIDAndOrg(ctx context.Context, id, orgID string) (*models.JobListing, error) {
	if id == "" || orgID == "" {
		return nil, nil
	}

	var listing models.JobListing
	err := s.db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", id, orgID).
		First(&listing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func (s *Store) CountListingsByOrgAndStatus(ctx context.Context, orgID string, status models.JobListingStatus) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.JobListing{}).
		Where("organization_id = ? AND status = ?", orgID, status).
		Count(&count).Error
	return count, err
}

func (s *Store) CountFeaturedListingsByOrg(ctx context.Context, orgID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.JobListing{}).
		Where("organization_id = ? AND is_featured = ?", orgID, true).
		Count(&count).Error
	return count, err
}

// UpdateListing applies a partial update in a single statement and returns
// the fresh row. The write is the last step of every lifecycle operation,
// all-or-nothing.
func (s *Store) UpdateListing(ctx context.Context, id string, fields map[string]any) (*models.JobListing, error) {
	err := s.db.WithContext(ctx).
		Model(&models.JobListing{}).
		Where("id = ?", id).
		Updates(fields).Error
	if err != nil {
		return nil, err
	}

	var listing models.JobListing
	if err := s.db.WithContext(ctx).First(&listing, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

func (s *Store) CreateListing(ctx context.Context, listing *models.JobListing) error {
	return s.db.WithContext(ctx).Create(listing).Error
}

// DeleteListing hard-deletes the row; applications cascade via FK.
func (s *Store) DeleteListing(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&models.JobListing{}, "id = ?", id).Error
}

func (s *Store) ListListingsByOrg(ctx context.Context, orgID string) ([]models.JobListing, error) {
	var listings []models.JobListing
	err := s.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("created_at DESC").
		Find(&listings).Error
	return listings, err
}

func (s *Store) ListPublishedListings(ctx context.Context) ([]models.JobListing, error) {
	var listings []models.JobListing
	err := s.db.WithContext(ctx).
		Preload("Organization").
		Where("status = ?", models.JobListingStatusPublished).
		Order("is_featured DESC, posted_at DESC").
		Find(&listings).Error
	return listings, err
}

// FindPublishedListing returns a listing only when it is publicly visible.
func (s *Store) FindPublishedListing(ctx context.Context, id string) (*models.JobListing, error) {
	var listing models.JobListing
	err := s.db.WithContext(ctx).
		Preload("Organization").
		Where("id = ? AND status = ?", id, models.JobListingStatusPublished).
		First(&listing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

// ListListingsPostedSince feeds the seeker digest: everything that went
// live after the given time.
func (s *Store) ListListingsPostedSince(ctx context.Context, since time.Time) ([]models.JobListing, error) {
	var listings []models.JobListing
	err := s.db.WithContext(ctx).
		Preload("Organization").
		Where("status = ? AND posted_at > ?", models.JobListingStatusPublished, since).
		Order("posted_at DESC").
		Find(&listings).Error
	return listings, err
}
