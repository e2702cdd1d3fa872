// Package formatters turns enum values and wages into the strings the UI
// shows. Pure functions, no locale machinery: the board renders en-US USD.
package formatters

import (
	"fmt"
	"strings"

	"jobboard/internal/models"
)

func FormatJobListingStatus(status models.JobListingStatus) string {
	switch status {
	case models.JobListingStatusDraft:
		return "Draft"
	case models.JobListingStatusPublished:
		return "Published"
	case models.JobListingStatusDelisted:
		return "Delisted"
	}
	return string(status)
}

func FormatWageInterval(interval models.WageInterval) string {
	switch interval {
	case models.WageIntervalHourly:
		return "Hour"
	case models.WageIntervalYearly:
		return "Year"
	}
	return string(interval)
}

func FormatLocationRequirement(requirement models.LocationRequirement) string {
	switch requirement {
	case models.LocationRequirementRemote:
		return "Remote"
	case models.LocationRequirementInOffice:
		return "In-office"
	case models.LocationRequirementHybrid:
		return "Hybrid"
	}
	return string(requirement)
}

func FormatJobType(t models.JobListingType) string {
	switch t {
	case models.JobListingTypeFullTime:
		return "Full-time"
	case models.JobListingTypePartTime:
		return "Part-time"
	case models.JobListingTypeInternship:
		return "Internship"
	}
	return string(t)
}

func FormatExperienceLevel(level models.ExperienceLevel) string {
	switch level {
	case models.ExperienceLevelJunior:
		return "Junior"
	case models.ExperienceLevelMidLevel:
		return "Mid-level"
	case models.ExperienceLevelSenior:
		return "Senior"
	}
	return string(level)
}

// FormatWage renders "$85,000" or "$45 / hr" depending on the interval.
func FormatWage(wage int, interval models.WageInterval) string {
	amount := "$" + groupThousands(wage)
	if interval == models.WageIntervalHourly {
		return amount + " / hr"
	}
	return amount
}

// FormatJobListingLocation joins city and state, "None" when both absent.
func FormatJobListingLocation(stateAbbreviation, city *string) string {
	if stateAbbreviation == nil && city == nil {
		return "None"
	}

	var parts []string
	if city != nil {
		parts = append(parts, *city)
	}
	if stateAbbreviation != nil {
		parts = append(parts, strings.ToUpper(*stateAbbreviation))
	}
	return strings.Join(parts, ", ")
}

func groupThousands(n int) string {
	if n < 0 {
		return "-" + groupThousands(-n)
	}
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
