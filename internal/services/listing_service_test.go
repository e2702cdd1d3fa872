package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobboard/internal/auth"
	"jobboard/internal/models"
)

// fakeListingStore keeps listings in a map and applies partial updates the
// way the gorm store would.
type fakeListingStore struct {
	listings map[string]*models.JobListing
}

func newFakeListingStore(listings ...*models.JobListing) *fakeListingStore {
	f := &fakeListingStore{listings: make(map[string]*models.JobListing)}
	for _, l := range listings {
		f.listings[l.ID] = l
	}
	return f
}

func (f *fakeListingStore) FindListingByIDAndOrg(_ context.Context, id, orgID string) (*models.JobListing, error) {
	l, ok := f.listings[id]
	if !ok || orgID == "" || l.OrganizationID != orgID {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (f *fakeListingStore) CountListingsByOrgAndStatus(_ context.Context, orgID string, status models.JobListingStatus) (int64, error) {
	var n int64
	for _, l := range f.listings {
		if l.OrganizationID == orgID && l.Status == status {
			n++
		}
	}
	return n, nil
}

func (f *fakeListingStore) CountFeaturedListingsByOrg(_ context.Context, orgID string) (int64, error) {
	var n int64
	for _, l := range f.listings {
		if l.OrganizationID == orgID && l.IsFeatured {
			n++
		}
	}
	return n, nil
}

func (f *fakeListingStore) UpdateListing(_ context.Context, id string, fields map[string]any) (*models.JobListing, error) {
	l, ok := f.listings[id]
	if !ok {
		return nil, errors.New("no such row")
	}
	if v, ok := fields["status"]; ok {
		l.Status = v.(models.JobListingStatus)
	}
	if v, ok := fields["is_featured"]; ok {
		l.IsFeatured = v.(bool)
	}
	if v, ok := fields["posted_at"]; ok {
		t := v.(time.Time)
		l.PostedAt = &t
	}
	cp := *l
	return &cp, nil
}

func (f *fakeListingStore) CreateListing(_ context.Context, listing *models.JobListing) error {
	f.listings[listing.ID] = listing
	return nil
}

func (f *fakeListingStore) DeleteListing(_ context.Context, id string) error {
	delete(f.listings, id)
	return nil
}

func (f *fakeListingStore) ListListingsByOrg(_ context.Context, orgID string) ([]models.JobListing, error) {
	var out []models.JobListing
	for _, l := range f.listings {
		if l.OrganizationID == orgID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeListingStore) ListPublishedListings(_ context.Context) ([]models.JobListing, error) {
	var out []models.JobListing
	for _, l := range f.listings {
		if l.Status == models.JobListingStatusPublished {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeListingStore) FindPublishedListing(_ context.Context, id string) (*models.JobListing, error) {
	l, ok := f.listings[id]
	if !ok || l.Status != models.JobListingStatusPublished {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

// fakePlanOracle grants a fixed feature set to a single organization.
type fakePlanOracle struct {
	orgID    string
	features map[string]bool
}

func (f *fakePlanOracle) HasPlanFeature(_ context.Context, orgID, feature string) (bool, error) {
	if orgID != f.orgID {
		return false, nil
	}
	return f.features[feature], nil
}

func newService(store *fakeListingStore, oracle *fakePlanOracle) *ListingService {
	svc := NewListingService(store, oracle)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func employerSession(orgID string) *auth.Session {
	return &auth.Session{
		UserID: "user-1",
		OrgID:  orgID,
		Permissions: []string{
			auth.PermissionJobListingsCreate,
			auth.PermissionJobListingsUpdate,
			auth.PermissionJobListingsDelete,
			auth.PermissionJobListingsChangeStatus,
		},
	}
}

func draftListing(id, orgID string) *models.JobListing {
	return &models.JobListing{ID: id, OrganizationID: orgID, Status: models.JobListingStatusDraft}
}

func TestToggleStatusPublishSetsPostedAtOnce(t *testing.T) {
	store := newFakeListingStore(draftListing("l1", "org-1"))
	oracle := &fakePlanOracle{orgID: "org-1", features: map[string]bool{FeaturePost3JobListings: true}}
	svc := newService(store, oracle)
	sess := employerSession("org-1")

	updated, err := svc.ToggleStatus(context.Background(), sess, "l1")
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if updated.Status != models.JobListingStatusPublished {
		t.Errorf("status = %q, want published", updated.Status)
	}
	if updated.PostedAt == nil {
		t.Fatal("postedAt not set on first publish")
	}
	firstPostedAt := *updated.PostedAt

	// delist, then republish later; postedAt must not move
	if _, err := svc.ToggleStatus(context.Background(), sess, "l1"); err != nil {
		t.Fatalf("delist: %v", err)
	}
	svc.now = func() time.Time { return firstPostedAt.Add(48 * time.Hour) }
	updated, err = svc.ToggleStatus(context.Background(), sess, "l1")
	if err != nil {
		t.Fatalf("republish: %v", err)
	}
	if updated.PostedAt == nil || !updated.PostedAt.Equal(firstPostedAt) {
		t.Errorf("postedAt moved on republish: %v, want %v", updated.PostedAt, firstPostedAt)
	}
}

func TestToggleStatusDelistClearsFeatured(t *testing.T) {
	listing := &models.JobListing{
		ID:             "l1",
		OrganizationID: "org-1",
		Status:         models.JobListingStatusPublished,
		IsFeatured:     true,
	}
	store := newFakeListingStore(listing)
	svc := newService(store, &fakePlanOracle{orgID: "org-1", features: map[string]bool{}})

	updated, err := svc.ToggleStatus(context.Background(), employerSession("org-1"), "l1")
	if err != nil {
		t.Fatalf("delist: %v", err)
	}
	if updated.Status != models.JobListingStatusDelisted {
		t.Errorf("status = %q, want delisted", updated.Status)
	}
	if updated.IsFeatured {
		t.Error("featured flag survived delisting")
	}
}

func TestToggleStatusDelistNeverQuotaChecked(t *testing.T) {
	// Org far over quota (no plan features at all) can still delist.
	listings := []*models.JobListing{
		{ID: "l1", OrganizationID: "org-1", Status: models.JobListingStatusPublished},
		{ID: "l2", OrganizationID: "org-1", Status: models.JobListingStatusPublished},
		{ID: "l3", OrganizationID: "org-1", Status: models.JobListingStatusPublished},
	}
	store := newFakeListingStore(listings...)
	svc := newService(store, &fakePlanOracle{orgID: "org-1", features: map[string]bool{}})

	if _, err := svc.ToggleStatus(context.Background(), employerSession("org-1"), "l2"); err != nil {
		t.Fatalf("delist over quota: %v", err)
	}
}

func TestToggleStatusNotFoundHidesForeignListings(t *testing.T) {
	store := newFakeListingStore(draftListing("owned-by-other", "org-2"))
	svc := newService(store, &fakePlanOracle{orgID: "org-1", features: map[string]bool{FeaturePost1JobListing: true}})
	sess := employerSession("org-1")

	missingErr := func(id string) error {
		_, err := svc.ToggleStatus(context.Background(), sess, id)
		return err
	}

	errMissing := missingErr("does-not-exist")
	errForeign := missingErr("owned-by-other")

	if !errors.Is(errMissing, ErrNotFound) {
		t.Errorf("missing listing: got %v, want ErrNotFound", errMissing)
	}
	if !errors.Is(errForeign, ErrNotFound) {
		t.Errorf("foreign listing: got %v, want ErrNotFound", errForeign)
	}
	if errMissing.Error() != errForeign.Error() {
		t.Errorf("missing and foreign listings are distinguishable: %q vs %q", errMissing, errForeign)
	}
}

func TestToggleStatusPermissionDenied(t *testing.T) {
	store := newFakeListingStore(draftListing("l1", "org-1"))
	svc := newService(store, &fakePlanOracle{orgID: "org-1", features: map[string]bool{FeaturePost1JobListing: true}})

	sess := &auth.Session{UserID: "user-1", OrgID: "org-1", Permissions: []string{auth.PermissionJobListingsUpdate}}
	_, err := svc.ToggleStatus(context.Background(), sess, "l1")
	if !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("got %v, want ErrPermissionDenied", err)
	}
}

func TestToggleStatusPublishQuota(t *testing.T) {
	tests := []struct {
		name           string
		publishedCount int
		features       map[string]bool
		wantErr        error
	}{
		{
			name:           "post_3 with room",
			publishedCount: 2,
			features:       map[string]bool{FeaturePost3JobListings: true},
		},
		{
			name:           "post_3 exhausted",
			publishedCount: 3,
			features:       map[string]bool{FeaturePost3JobListings: true},
			wantErr:        ErrQuotaExceeded,
		},
		{
			name:           "no plan features",
			publishedCount: 0,
			features:       map[string]bool{},
			wantErr:        ErrQuotaExceeded,
		},
		{
			name:           "most permissive tier wins",
			publishedCount: 10,
			features:       map[string]bool{FeaturePost1JobListing: true, FeaturePost15JobListings: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listings := []*models.JobListing{draftListing("target", "org-1")}
			for i := 0; i < tt.publishedCount; i++ {
				listings = append(listings, &models.JobListing{
					ID:             "pub-" + string(rune('a'+i)),
					OrganizationID: "org-1",
					Status:         models.JobListingStatusPublished,
				})
			}
			store := newFakeListingStore(listings...)
			svc := newService(store, &fakePlanOracle{orgID: "org-1", features: tt.features})

			_, err := svc.ToggleStatus(context.Background(), employerSession("org-1"), "target")
			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestToggleFeatured(t *testing.T) {
	tests := []struct {
		name         string
		listing      models.JobListing
		others       []*models.JobListing
		features     map[string]bool
		wantErr      error
		wantFeatured bool
	}{
		{
			name:         "feature published listing within quota",
			listing:      models.JobListing{ID: "l1", OrganizationID: "org-1", Status: models.JobListingStatusPublished},
			features:     map[string]bool{Feature1FeaturedJobListing: true},
			wantFeatured: true,
		},
		{
			name:    "feature quota exhausted",
			listing: models.JobListing{ID: "l1", OrganizationID: "org-1", Status: models.JobListingStatusPublished},
			others: []*models.JobListing{
				{ID: "l2", OrganizationID: "org-1", Status: models.JobListingStatusPublished, IsFeatured: true},
			},
			features: map[string]bool{Feature1FeaturedJobListing: true},
			wantErr:  ErrQuotaExceeded,
		},
		{
			name:    "unlimited tier ignores count",
			listing: models.JobListing{ID: "l1", OrganizationID: "org-1", Status: models.JobListingStatusPublished},
			others: []*models.JobListing{
				{ID: "l2", OrganizationID: "org-1", Status: models.JobListingStatusPublished, IsFeatured: true},
				{ID: "l3", OrganizationID: "org-1", Status: models.JobListingStatusPublished, IsFeatured: true},
			},
			features:     map[string]bool{FeatureUnlimitedFeaturedListings: true},
			wantFeatured: true,
		},
		{
			name:         "unfeature needs no quota",
			listing:      models.JobListing{ID: "l1", OrganizationID: "org-1", Status: models.JobListingStatusPublished, IsFeatured: true},
			features:     map[string]bool{},
			wantFeatured: false,
		},
		{
			name:    "feature-on rejected for draft",
			listing: models.JobListing{ID: "l1", OrganizationID: "org-1", Status: models.JobListingStatusDraft},
			features: map[string]bool{
				Feature1FeaturedJobListing: true,
			},
			wantErr: ErrInvalidTransition,
		},
		{
			name:     "feature-on rejected for delisted",
			listing:  models.JobListing{ID: "l1", OrganizationID: "org-1", Status: models.JobListingStatusDelisted},
			features: map[string]bool{FeatureUnlimitedFeaturedListings: true},
			wantErr:  ErrInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listing := tt.listing
			store := newFakeListingStore(append(tt.others, &listing)...)
			svc := newService(store, &fakePlanOracle{orgID: "org-1", features: tt.features})

			updated, err := svc.ToggleFeatured(context.Background(), employerSession("org-1"), "l1")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("got %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if updated.IsFeatured != tt.wantFeatured {
				t.Errorf("is_featured = %v, want %v", updated.IsFeatured, tt.wantFeatured)
			}
			if updated.Status != tt.listing.Status {
				t.Errorf("status changed by featured toggle: %q -> %q", tt.listing.Status, updated.Status)
			}
		})
	}
}

func TestCreateStartsAsDraft(t *testing.T) {
	store := newFakeListingStore()
	svc := newService(store, &fakePlanOracle{orgID: "org-1", features: map[string]bool{}})

	listing, err := svc.Create(context.Background(), employerSession("org-1"), ListingFields{
		Title:               "Backend Engineer",
		Description:         "Go services",
		LocationRequirement: models.LocationRequirementRemote,
		ExperienceLevel:     models.ExperienceLevelSenior,
		Type:                models.JobListingTypeFullTime,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if listing.Status != models.JobListingStatusDraft {
		t.Errorf("new listing status = %q, want draft", listing.Status)
	}
	if listing.PostedAt != nil {
		t.Error("new listing has postedAt set")
	}
	if listing.ID == "" {
		t.Error("new listing missing id")
	}
}

func TestCreateRequiresOrgAndPermission(t *testing.T) {
	store := newFakeListingStore()
	svc := newService(store, &fakePlanOracle{})

	noOrg := &auth.Session{UserID: "user-1", Permissions: []string{auth.PermissionJobListingsCreate}}
	if _, err := svc.Create(context.Background(), noOrg, ListingFields{}); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("no org: got %v, want ErrPermissionDenied", err)
	}

	noPerm := &auth.Session{UserID: "user-1", OrgID: "org-1"}
	if _, err := svc.Create(context.Background(), noPerm, ListingFields{}); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("no permission: got %v, want ErrPermissionDenied", err)
	}
}

func TestListForOrgGroupsByStatus(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store := newFakeListingStore(
		&models.JobListing{ID: "draft-old", OrganizationID: "org-1", Status: models.JobListingStatusDraft, CreatedAt: base},
		&models.JobListing{ID: "delisted", OrganizationID: "org-1", Status: models.JobListingStatusDelisted, CreatedAt: base.Add(5 * time.Hour)},
		&models.JobListing{ID: "pub", OrganizationID: "org-1", Status: models.JobListingStatusPublished, CreatedAt: base.Add(time.Hour)},
		&models.JobListing{ID: "pub-featured", OrganizationID: "org-1", Status: models.JobListingStatusPublished, IsFeatured: true, CreatedAt: base},
		&models.JobListing{ID: "draft-new", OrganizationID: "org-1", Status: models.JobListingStatusDraft, CreatedAt: base.Add(2 * time.Hour)},
		&models.JobListing{ID: "foreign", OrganizationID: "org-2", Status: models.JobListingStatusPublished, CreatedAt: base},
	)
	svc := newService(store, &fakePlanOracle{})

	listings, err := svc.ListForOrg(context.Background(), employerSession("org-1"))
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	var got []string
	for _, l := range listings {
		got = append(got, l.ID)
	}
	want := []string{"pub-featured", "pub", "draft-new", "draft-old", "delisted"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order mismatch at %d: got %v, want %v", i, got, want)
		}
	}
}

func TestQuotaHelpersAbsentOrg(t *testing.T) {
	svc := newService(newFakeListingStore(), &fakePlanOracle{orgID: "org-1", features: map[string]bool{
		FeaturePost15JobListings:         true,
		FeatureUnlimitedFeaturedListings: true,
	}})

	reached, err := svc.HasReachedMaxPublishedListings(context.Background(), "")
	if err != nil || !reached {
		t.Errorf("published quota for absent org: reached=%v err=%v, want true nil", reached, err)
	}
	reached, err = svc.HasReachedMaxFeaturedListings(context.Background(), "")
	if err != nil || !reached {
		t.Errorf("featured quota for absent org: reached=%v err=%v, want true nil", reached, err)
	}
}
