package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"jobboard/internal/auth"
	"jobboard/internal/models"
)

// ListingStore is the persistence surface the lifecycle service needs.
// Lookups return (nil, nil) when no row matches.
type ListingStore interface {
	FindListingByIDAndOrg(ctx context.Context, id, orgID string) (*models.JobListing, error)
	CountListingsByOrgAndStatus(ctx context.Context, orgID string, status models.JobListingStatus) (int64, error)
	CountFeaturedListingsByOrg(ctx context.Context, orgID string) (int64, error)
	UpdateListing(ctx context.Context, id string, fields map[string]any) (*models.JobListing, error)
	CreateListing(ctx context.Context, listing *models.JobListing) error
	DeleteListing(ctx context.Context, id string) error
	ListListingsByOrg(ctx context.Context, orgID string) ([]models.JobListing, error)
	ListPublishedListings(ctx context.Context) ([]models.JobListing, error)
	FindPublishedListing(ctx context.Context, id string) (*models.JobListing, error)
}

// PlanOracle answers whether an organization's billing plan grants a
// named capability.
type PlanOracle interface {
	HasPlanFeature(ctx context.Context, orgID, feature string) (bool, error)
}

// ListingService owns the listing status/feature lifecycle and the plan
// quotas gating it. Handlers resolve the session once and pass it in; the
// service never reaches into ambient request state.
type ListingService struct {
	Store ListingStore
	Plans PlanOracle

	// now is swapped out in tests.
	now func() time.Time
}

func NewListingService(store ListingStore, plans PlanOracle) *ListingService {
	return &ListingService{
		Store: store,
		Plans: plans,
		now:   time.Now,
	}
}

// ListingFields carries the employer-editable descriptive fields.
type ListingFields struct {
	Title               string
	Description         string
	Wage                *int
	WageInterval        *models.WageInterval
	StateAbbreviation   *string
	City                *string
	LocationRequirement models.LocationRequirement
	ExperienceLevel     models.ExperienceLevel
	Type                models.JobListingType
}

// Create inserts a new listing for the session's organization. New listings
// always start as drafts; quota is not checked until publish time.
func (s *ListingService) Create(ctx context.Context, sess *auth.Session, fields ListingFields) (*models.JobListing, error) {
	if sess == nil || sess.OrgID == "" || !sess.HasPermission(auth.PermissionJobListingsCreate) {
		return nil, ErrPermissionDenied
	}

	listing := &models.JobListing{
		ID:                  uuid.NewString(),
		OrganizationID:      sess.OrgID,
		Title:               fields.Title,
		Description:         fields.Description,
		Wage:                fields.Wage,
		WageInterval:        fields.WageInterval,
		StateAbbreviation:   fields.StateAbbreviation,
		City:                fields.City,
		LocationRequirement: fields.LocationRequirement,
		ExperienceLevel:     fields.ExperienceLevel,
		Type:                fields.Type,
		Status:              models.JobListingStatusDraft,
	}

	if err := s.Store.CreateListing(ctx, listing); err != nil {
		return nil, fmt.Errorf("create listing: %w", err)
	}
	return listing, nil
}

// Update replaces the descriptive fields. Status, featured flag and
// postedAt are untouchable here; they only move through the toggles.
func (s *ListingService) Update(ctx context.Context, sess *auth.Session, id string, fields ListingFields) (*models.JobListing, error) {
	if sess == nil || !sess.HasPermission(auth.PermissionJobListingsUpdate) {
		return nil, ErrPermissionDenied
	}

	listing, err := s.ownedListing(ctx, sess, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.Store.UpdateListing(ctx, listing.ID, map[string]any{
		"title":                fields.Title,
		"description":          fields.Description,
		"wage":                 fields.Wage,
		"wage_interval":        fields.WageInterval,
		"state_abbreviation":   fields.StateAbbreviation,
		"city":                 fields.City,
		"location_requirement": fields.LocationRequirement,
		"experience_level":     fields.ExperienceLevel,
		"type":                 fields.Type,
	})
	if err != nil {
		return nil, fmt.Errorf("update listing: %w", err)
	}
	return updated, nil
}

// ToggleStatus flips the listing along its single outgoing edge:
// draft→published, delisted→published, published→delisted.
//
// Checks short-circuit in order: ownership, capability, quota. The final
// write is one partial update; leaving published force-clears the featured
// flag, and the first arrival in published stamps postedAt exactly once.
// Note this is a flip, not "set published": two racing calls can pass the
// read before either write lands and net out to a double toggle. Accepted.
func (s *ListingService) ToggleStatus(ctx context.Context, sess *auth.Session, id string) (*models.JobListing, error) {
	listing, err := s.ownedListing(ctx, sess, id)
	if err != nil {
		return nil, err
	}

	if !sess.HasPermission(auth.PermissionJobListingsChangeStatus) {
		return nil, ErrPermissionDenied
	}

	next := listing.Status.Next()
	if next == models.JobListingStatusPublished {
		reached, err := s.HasReachedMaxPublishedListings(ctx, sess.OrgID)
		if err != nil {
			return nil, err
		}
		if reached {
			return nil, ErrQuotaExceeded
		}
	}

	fields := map[string]any{"status": next}
	if next != models.JobListingStatusPublished {
		fields["is_featured"] = false
	} else if listing.PostedAt == nil {
		fields["posted_at"] = s.now()
	}

	updated, err := s.Store.UpdateListing(ctx, listing.ID, fields)
	if err != nil {
		return nil, fmt.Errorf("toggle status: %w", err)
	}
	return updated, nil
}

// ToggleFeatured flips the featured flag. Featuring shares the
// change_status capability; there is no separate grant for it. Turning the
// flag on requires a published listing and an available featured-slot,
// turning it off needs neither.
func (s *ListingService) ToggleFeatured(ctx context.Context, sess *auth.Session, id string) (*models.JobListing, error) {
	listing, err := s.ownedListing(ctx, sess, id)
	if err != nil {
		return nil, err
	}

	if !sess.HasPermission(auth.PermissionJobListingsChangeStatus) {
		return nil, ErrPermissionDenied
	}

	next := !listing.IsFeatured
	if next {
		if listing.Status != models.JobListingStatusPublished {
			return nil, ErrInvalidTransition
		}
		reached, err := s.HasReachedMaxFeaturedListings(ctx, sess.OrgID)
		if err != nil {
			return nil, err
		}
		if reached {
			return nil, ErrQuotaExceeded
		}
	}

	updated, err := s.Store.UpdateListing(ctx, listing.ID, map[string]any{"is_featured": next})
	if err != nil {
		return nil, fmt.Errorf("toggle featured: %w", err)
	}
	return updated, nil
}

// Delete hard-deletes the listing; dependent applications cascade.
func (s *ListingService) Delete(ctx context.Context, sess *auth.Session, id string) error {
	listing, err := s.ownedListing(ctx, sess, id)
	if err != nil {
		return err
	}

	if !sess.HasPermission(auth.PermissionJobListingsDelete) {
		return ErrPermissionDenied
	}

	if err := s.Store.DeleteListing(ctx, listing.ID); err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}
	return nil
}

// ListForOrg returns the organization's listings ordered for the management
// view: published group first, then drafts, then delisted; featured rows
// lead their group, newest first after that.
func (s *ListingService) ListForOrg(ctx context.Context, sess *auth.Session) ([]models.JobListing, error) {
	if sess == nil || sess.OrgID == "" {
		return nil, ErrPermissionDenied
	}

	listings, err := s.Store.ListListingsByOrg(ctx, sess.OrgID)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}

	sort.SliceStable(listings, func(i, j int) bool {
		if c := models.CompareStatusForDisplay(listings[i].Status, listings[j].Status); c != 0 {
			return c < 0
		}
		if listings[i].IsFeatured != listings[j].IsFeatured {
			return listings[i].IsFeatured
		}
		return listings[i].CreatedAt.After(listings[j].CreatedAt)
	})
	return listings, nil
}

// ListPublic returns the seeker-facing published listings.
func (s *ListingService) ListPublic(ctx context.Context) ([]models.JobListing, error) {
	return s.Store.ListPublishedListings(ctx)
}

// GetPublic returns one listing only when it is published.
func (s *ListingService) GetPublic(ctx context.Context, id string) (*models.JobListing, error) {
	listing, err := s.Store.FindPublishedListing(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get listing: %w", err)
	}
	if listing == nil {
		return nil, ErrNotFound
	}
	return listing, nil
}

// ownedListing is the shared ownership precondition: lookup by id AND org,
// collapsing "wrong org" and "no such listing" into the same ErrNotFound.
func (s *ListingService) ownedListing(ctx context.Context, sess *auth.Session, id string) (*models.JobListing, error) {
	if sess == nil || sess.OrgID == "" {
		return nil, ErrNotFound
	}

	listing, err := s.Store.FindListingByIDAndOrg(ctx, id, sess.OrgID)
	if err != nil {
		return nil, fmt.Errorf("find listing: %w", err)
	}
	if listing == nil {
		return nil, ErrNotFound
	}
	return listing, nil
}
