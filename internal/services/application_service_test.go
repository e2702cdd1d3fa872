package services

import (
	"context"
	"errors"
	"testing"

	"jobboard/internal/auth"
	"jobboard/internal/models"
)

type fakeApplicationStore struct {
	*fakeListingStore
	resumes      map[string]*models.UserResume
	applications map[string]*models.JobListingApplication // key listingID+"/"+userID
}

func newFakeApplicationStore(listings ...*models.JobListing) *fakeApplicationStore {
	return &fakeApplicationStore{
		fakeListingStore: newFakeListingStore(listings...),
		resumes:          make(map[string]*models.UserResume),
		applications:     make(map[string]*models.JobListingApplication),
	}
}

func (f *fakeApplicationStore) GetUserResume(_ context.Context, userID string) (*models.UserResume, error) {
	return f.resumes[userID], nil
}

func (f *fakeApplicationStore) CreateApplication(_ context.Context, app *models.JobListingApplication) (bool, error) {
	key := app.JobListingID + "/" + app.UserID
	if _, exists := f.applications[key]; exists {
		return false, nil
	}
	f.applications[key] = app
	return true, nil
}

func (f *fakeApplicationStore) FindApplication(_ context.Context, listingID, userID string) (*models.JobListingApplication, error) {
	return f.applications[listingID+"/"+userID], nil
}

func (f *fakeApplicationStore) UpdateApplication(_ context.Context, listingID, userID string, fields map[string]any) error {
	app, ok := f.applications[listingID+"/"+userID]
	if !ok {
		return errors.New("no such row")
	}
	if v, ok := fields["stage"]; ok {
		app.Stage = v.(models.ApplicationStage)
	}
	if v, ok := fields["rating"]; ok {
		r := v.(int)
		app.Rating = &r
	}
	return nil
}

func (f *fakeApplicationStore) ListApplicationsForListing(_ context.Context, listingID string) ([]models.JobListingApplication, error) {
	var out []models.JobListingApplication
	for _, app := range f.applications {
		if app.JobListingID == listingID {
			out = append(out, *app)
		}
	}
	return out, nil
}

func publishedListing(id, orgID string) *models.JobListing {
	return &models.JobListing{ID: id, OrganizationID: orgID, Status: models.JobListingStatusPublished}
}

func reviewerSession(orgID string) *auth.Session {
	return &auth.Session{
		UserID: "reviewer-1",
		OrgID:  orgID,
		Permissions: []string{
			auth.PermissionApplicationsChangeStage,
			auth.PermissionApplicationsChangeRating,
		},
	}
}

func TestSubmitRequiresResumeAndPublishedListing(t *testing.T) {
	st := newFakeApplicationStore(
		publishedListing("pub", "org-1"),
		draftListing("draft", "org-1"),
	)
	st.resumes["has-resume"] = &models.UserResume{UserID: "has-resume", ResumeFileURL: "https://files/resume.pdf"}
	svc := NewApplicationService(st, nil)

	tests := []struct {
		name      string
		userID    string
		listingID string
		wantErr   error
	}{
		{name: "anonymous", userID: "", listingID: "pub", wantErr: ErrPermissionDenied},
		{name: "no resume on file", userID: "no-resume", listingID: "pub", wantErr: ErrPermissionDenied},
		{name: "unpublished listing", userID: "has-resume", listingID: "draft", wantErr: ErrPermissionDenied},
		{name: "ok", userID: "has-resume", listingID: "pub"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Submit(context.Background(), tt.userID, tt.listingID, nil)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSubmitRejectsDuplicate(t *testing.T) {
	st := newFakeApplicationStore(publishedListing("pub", "org-1"))
	st.resumes["u1"] = &models.UserResume{UserID: "u1", ResumeFileURL: "https://files/resume.pdf"}
	svc := NewApplicationService(st, nil)

	if _, err := svc.Submit(context.Background(), "u1", "pub", nil); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if _, err := svc.Submit(context.Background(), "u1", "pub", nil); !errors.Is(err, ErrValidation) {
		t.Errorf("duplicate submit: got %v, want ErrValidation", err)
	}
}

func TestChangeStage(t *testing.T) {
	st := newFakeApplicationStore(publishedListing("pub", "org-1"))
	st.applications["pub/u1"] = &models.JobListingApplication{
		JobListingID: "pub", UserID: "u1", Stage: models.ApplicationStageApplied,
	}
	svc := NewApplicationService(st, nil)

	if err := svc.ChangeStage(context.Background(), reviewerSession("org-1"), "pub", "u1", "promoted"); !errors.Is(err, ErrValidation) {
		t.Errorf("bogus stage: got %v, want ErrValidation", err)
	}

	if err := svc.ChangeStage(context.Background(), reviewerSession("org-2"), "pub", "u1", models.ApplicationStageInterviewed); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign org: got %v, want ErrNotFound", err)
	}

	noPerm := &auth.Session{UserID: "reviewer-1", OrgID: "org-1"}
	if err := svc.ChangeStage(context.Background(), noPerm, "pub", "u1", models.ApplicationStageInterviewed); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("no permission: got %v, want ErrPermissionDenied", err)
	}

	if err := svc.ChangeStage(context.Background(), reviewerSession("org-1"), "pub", "u1", models.ApplicationStageInterviewed); err != nil {
		t.Fatalf("change stage: %v", err)
	}
	if got := st.applications["pub/u1"].Stage; got != models.ApplicationStageInterviewed {
		t.Errorf("stage = %q, want interviewed", got)
	}
}

func TestChangeRatingBounds(t *testing.T) {
	st := newFakeApplicationStore(publishedListing("pub", "org-1"))
	st.applications["pub/u1"] = &models.JobListingApplication{JobListingID: "pub", UserID: "u1"}
	svc := NewApplicationService(st, nil)

	for _, bad := range []int{0, -1, 6} {
		if err := svc.ChangeRating(context.Background(), reviewerSession("org-1"), "pub", "u1", bad); !errors.Is(err, ErrValidation) {
			t.Errorf("rating %d: got %v, want ErrValidation", bad, err)
		}
	}

	if err := svc.ChangeRating(context.Background(), reviewerSession("org-1"), "pub", "u1", 4); err != nil {
		t.Fatalf("change rating: %v", err)
	}
	if got := st.applications["pub/u1"].Rating; got == nil || *got != 4 {
		t.Errorf("rating = %v, want 4", got)
	}
}
