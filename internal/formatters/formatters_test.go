package formatters

import (
	"testing"

	"jobboard/internal/models"
)

func TestFormatJobListingStatus(t *testing.T) {
	tests := []struct {
		status models.JobListingStatus
		want   string
	}{
		{models.JobListingStatusDraft, "Draft"},
		{models.JobListingStatusPublished, "Published"},
		{models.JobListingStatusDelisted, "Delisted"},
	}
	for _, tt := range tests {
		if got := FormatJobListingStatus(tt.status); got != tt.want {
			t.Errorf("FormatJobListingStatus(%q) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestFormatWage(t *testing.T) {
	tests := []struct {
		wage     int
		interval models.WageInterval
		want     string
	}{
		{45, models.WageIntervalHourly, "$45 / hr"},
		{85000, models.WageIntervalYearly, "$85,000"},
		{1250000, models.WageIntervalYearly, "$1,250,000"},
		{999, models.WageIntervalYearly, "$999"},
	}
	for _, tt := range tests {
		if got := FormatWage(tt.wage, tt.interval); got != tt.want {
			t.Errorf("FormatWage(%d, %q) = %q, want %q", tt.wage, tt.interval, got, tt.want)
		}
	}
}

func TestFormatJobListingLocation(t *testing.T) {
	state := "ca"
	city := "Oakland"

	tests := []struct {
		name  string
		state *string
		city  *string
		want  string
	}{
		{name: "both absent", want: "None"},
		{name: "city only", city: &city, want: "Oakland"},
		{name: "state only", state: &state, want: "CA"},
		{name: "both", state: &state, city: &city, want: "Oakland, CA"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatJobListingLocation(tt.state, tt.city); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
