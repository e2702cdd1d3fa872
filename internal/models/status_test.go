package models

import "testing"

func TestJobListingStatusNext(t *testing.T) {
	tests := []struct {
		name string
		from JobListingStatus
		want JobListingStatus
	}{
		{name: "draft publishes", from: JobListingStatusDraft, want: JobListingStatusPublished},
		{name: "delisted republishes", from: JobListingStatusDelisted, want: JobListingStatusPublished},
		{name: "published delists", from: JobListingStatusPublished, want: JobListingStatusDelisted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.Next(); got != tt.want {
				t.Errorf("Next(%q) = %q, want %q", tt.from, got, tt.want)
			}
		})
	}
}

func TestJobListingStatusNextCycles(t *testing.T) {
	// After the first toggle every listing lives on the published<->delisted
	// cycle, whatever the starting state.
	for _, s := range JobListingStatuses {
		first := s.Next()
		if first != JobListingStatusPublished && first != JobListingStatusDelisted {
			t.Fatalf("Next(%q) left the cycle: %q", s, first)
		}
		if got := first.Next().Next(); got != first {
			t.Errorf("status %q: double toggle from %q returned %q, want %q", s, first, got, first)
		}
	}
}

func TestCompareStatusForDisplay(t *testing.T) {
	tests := []struct {
		a, b JobListingStatus
		sign int
	}{
		{JobListingStatusPublished, JobListingStatusDraft, -1},
		{JobListingStatusDraft, JobListingStatusDelisted, -1},
		{JobListingStatusPublished, JobListingStatusDelisted, -1},
		{JobListingStatusDraft, JobListingStatusPublished, 1},
		{JobListingStatusDelisted, JobListingStatusDraft, 1},
		{JobListingStatusDelisted, JobListingStatusPublished, 1},
		{JobListingStatusDraft, JobListingStatusDraft, 0},
		{JobListingStatusPublished, JobListingStatusPublished, 0},
		{JobListingStatusDelisted, JobListingStatusDelisted, 0},
	}

	for _, tt := range tests {
		got := CompareStatusForDisplay(tt.a, tt.b)
		switch {
		case tt.sign < 0 && got >= 0:
			t.Errorf("CompareStatusForDisplay(%q, %q) = %d, want negative", tt.a, tt.b, got)
		case tt.sign > 0 && got <= 0:
			t.Errorf("CompareStatusForDisplay(%q, %q) = %d, want positive", tt.a, tt.b, got)
		case tt.sign == 0 && got != 0:
			t.Errorf("CompareStatusForDisplay(%q, %q) = %d, want 0", tt.a, tt.b, got)
		}
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range JobListingStatuses {
		if !s.Valid() {
			t.Errorf("expected %q to be valid", s)
		}
	}
	if JobListingStatus("archived").Valid() {
		t.Error("unknown status reported valid")
	}
	if JobListingStatus("").Valid() {
		t.Error("empty status reported valid")
	}
}
