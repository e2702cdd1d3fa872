package services

import (
	"context"
	"fmt"
	"log"

	"jobboard/internal/auth"
	"jobboard/internal/models"
)

// ApplicationStore is the persistence surface for applications and the
// resume rows the submit precondition reads.
type ApplicationStore interface {
	FindListingByIDAndOrg(ctx context.Context, id, orgID string) (*models.JobListing, error)
	FindPublishedListing(ctx context.Context, id string) (*models.JobListing, error)
	GetUserResume(ctx context.Context, userID string) (*models.UserResume, error)
	CreateApplication(ctx context.Context, app *models.JobListingApplication) (bool, error)
	FindApplication(ctx context.Context, listingID, userID string) (*models.JobListingApplication, error)
	UpdateApplication(ctx context.Context, listingID, userID string, fields map[string]any) error
	ListApplicationsForListing(ctx context.Context, listingID string) ([]models.JobListingApplication, error)
}

// ApplicationRanker rates an application against its listing. Implemented
// by AIService; nil disables ranking.
type ApplicationRanker interface {
	RankApplication(ctx context.Context, listing *models.JobListing, resumeSummary, coverLetter string) (int, error)
}

type ApplicationService struct {
	Store  ApplicationStore
	Ranker ApplicationRanker
}

func NewApplicationService(store ApplicationStore, ranker ApplicationRanker) *ApplicationService {
	return &ApplicationService{Store: store, Ranker: ranker}
}

// Submit files an application. The caller needs an account, a resume on
// file, and a published target listing; each missing piece collapses into
// the same permission denial so nothing leaks about why.
func (s *ApplicationService) Submit(ctx context.Context, userID, listingID string, coverLetter *string) (*models.JobListingApplication, error) {
	if userID == "" {
		return nil, ErrPermissionDenied
	}

	resume, err := s.Store.GetUserResume(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get resume: %w", err)
	}
	listing, err := s.Store.FindPublishedListing(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("get listing: %w", err)
	}
	if resume == nil || listing == nil {
		return nil, ErrPermissionDenied
	}

	app := &models.JobListingApplication{
		JobListingID: listingID,
		UserID:       userID,
		CoverLetter:  coverLetter,
		Stage:        models.ApplicationStageApplied,
	}

	created, err := s.Store.CreateApplication(ctx, app)
	if err != nil {
		return nil, fmt.Errorf("create application: %w", err)
	}
	if !created {
		return nil, ErrValidation
	}

	// Ranking is best-effort background work; the submission already
	// succeeded.
	if s.Ranker != nil {
		go s.rank(listing, app, resume)
	}

	return app, nil
}

func (s *ApplicationService) rank(listing *models.JobListing, app *models.JobListingApplication, resume *models.UserResume) {
	ctx := context.Background()

	summary := ""
	if resume.AISummary != nil {
		summary = *resume.AISummary
	}
	cover := ""
	if app.CoverLetter != nil {
		cover = *app.CoverLetter
	}

	rating, err := s.Ranker.RankApplication(ctx, listing, summary, cover)
	if err != nil {
		log.Printf("[rank] listing %s user %s: %v", listing.ID, app.UserID, err)
		return
	}
	if rating < 1 || rating > 5 {
		return
	}
	if err := s.Store.UpdateApplication(ctx, listing.ID, app.UserID, map[string]any{"rating": rating}); err != nil {
		log.Printf("[rank] save rating: %v", err)
	}
}

// ChangeStage moves an application through the employer's review pipeline.
func (s *ApplicationService) ChangeStage(ctx context.Context, sess *auth.Session, listingID, userID string, stage models.ApplicationStage) error {
	if !stage.Valid() {
		return ErrValidation
	}
	if err := s.ownedApplication(ctx, sess, listingID, userID); err != nil {
		return err
	}
	if !sess.HasPermission(auth.PermissionApplicationsChangeStage) {
		return ErrPermissionDenied
	}

	if err := s.Store.UpdateApplication(ctx, listingID, userID, map[string]any{"stage": stage}); err != nil {
		return fmt.Errorf("update stage: %w", err)
	}
	return nil
}

// ChangeRating sets the employer's manual 1-5 rating.
func (s *ApplicationService) ChangeRating(ctx context.Context, sess *auth.Session, listingID, userID string, rating int) error {
	if rating < 1 || rating > 5 {
		return ErrValidation
	}
	if err := s.ownedApplication(ctx, sess, listingID, userID); err != nil {
		return err
	}
	if !sess.HasPermission(auth.PermissionApplicationsChangeRating) {
		return ErrPermissionDenied
	}

	if err := s.Store.UpdateApplication(ctx, listingID, userID, map[string]any{"rating": rating}); err != nil {
		return fmt.Errorf("update rating: %w", err)
	}
	return nil
}

// ListForListing returns a listing's applications for the employer view.
func (s *ApplicationService) ListForListing(ctx context.Context, sess *auth.Session, listingID string) ([]models.JobListingApplication, error) {
	if sess == nil || sess.OrgID == "" {
		return nil, ErrNotFound
	}
	listing, err := s.Store.FindListingByIDAndOrg(ctx, listingID, sess.OrgID)
	if err != nil {
		return nil, fmt.Errorf("find listing: %w", err)
	}
	if listing == nil {
		return nil, ErrNotFound
	}
	return s.Store.ListApplicationsForListing(ctx, listingID)
}

// ownedApplication verifies the application's listing belongs to the
// session's organization and the application exists. Missing either way is
// the same ErrNotFound.
func (s *ApplicationService) ownedApplication(ctx context.Context, sess *auth.Session, listingID, userID string) error {
	if sess == nil || sess.OrgID == "" {
		return ErrNotFound
	}

	listing, err := s.Store.FindListingByIDAndOrg(ctx, listingID, sess.OrgID)
	if err != nil {
		return fmt.Errorf("find listing: %w", err)
	}
	if listing == nil {
		return ErrNotFound
	}

	app, err := s.Store.FindApplication(ctx, listingID, userID)
	if err != nil {
		return fmt.Errorf("find application: %w", err)
	}
	if app == nil {
		return ErrNotFound
	}
	return nil
}
