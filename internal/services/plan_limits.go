package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"jobboard/internal/models"
)

// Plan feature keys, stable strings from the billing plan.
const (
	FeaturePost1JobListing   = "post_1_job_listing"
	FeaturePost3JobListings  = "post_3_job_listings"
	FeaturePost15JobListings = "post_15_job_listings"

	Feature1FeaturedJobListing       = "1_featured_job_listing"
	FeatureUnlimitedFeaturedListings = "unlimited_featured_jobs_listings"
)

// planTier pairs a plan feature with its ceiling. limit < 0 means unlimited.
type planTier struct {
	feature string
	limit   int64
}

var publishedTiers = []planTier{
	{FeaturePost1JobListing, 1},
	{FeaturePost3JobListings, 3},
	{FeaturePost15JobListings, 15},
}

var featuredTiers = []planTier{
	{Feature1FeaturedJobListing, 1},
	{FeatureUnlimitedFeaturedListings, -1},
}

// HasReachedMaxPublishedListings reports whether the organization may NOT
// add another published listing. Tiers are independent ceilings: the org
// may publish if ANY held tier still has room. No resolvable org or no held
// tier means always exhausted.
func (s *ListingService) HasReachedMaxPublishedListings(ctx context.Context, orgID string) (bool, error) {
	if orgID == "" {
		return true, nil
	}

	count, err := s.Store.CountListingsByOrgAndStatus(ctx, orgID, models.JobListingStatusPublished)
	if err != nil {
		return true, fmt.Errorf("count published listings: %w", err)
	}

	return s.allTiersExhausted(ctx, orgID, publishedTiers, count)
}

// HasReachedMaxFeaturedListings is the featured-slot analogue, with its own
// tier set and its own counter.
func (s *ListingService) HasReachedMaxFeaturedListings(ctx context.Context, orgID string) (bool, error) {
	if orgID == "" {
		return true, nil
	}

	count, err := s.Store.CountFeaturedListingsByOrg(ctx, orgID)
	if err != nil {
		return true, fmt.Errorf("count featured listings: %w", err)
	}

	return s.allTiersExhausted(ctx, orgID, featuredTiers, count)
}

// allTiersExhausted checks every tier against the oracle concurrently; the
// checks are independent, so they fan out and OR together.
func (s *ListingService) allTiersExhausted(ctx context.Context, orgID string, tiers []planTier, count int64) (bool, error) {
	canAdd := make([]bool, len(tiers))

	g, gctx := errgroup.WithContext(ctx)
	for i, tier := range tiers {
		g.Go(func() error {
			has, err := s.Plans.HasPlanFeature(gctx, orgID, tier.feature)
			if err != nil {
				return err
			}
			canAdd[i] = has && (tier.limit < 0 || count < tier.limit)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return true, fmt.Errorf("plan feature check: %w", err)
	}

	for _, ok := range canAdd {
		if ok {
			return false, nil
		}
	}
	return true, nil
}
