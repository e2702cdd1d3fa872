package models

// JobListingStatus is the lifecycle state of a listing.
// Stable values, stored as-is in the DB.
type JobListingStatus string

const (
	JobListingStatusDraft     JobListingStatus = "draft"
	JobListingStatusPublished JobListingStatus = "published"
	JobListingStatusDelisted  JobListingStatus = "delisted"
)

// JobListingStatuses lists every valid status, in display order.
var JobListingStatuses = []JobListingStatus{
	JobListingStatusPublished,
	JobListingStatusDraft,
	JobListingStatusDelisted,
}

func (s JobListingStatus) Valid() bool {
	switch s {
	case JobListingStatusDraft, JobListingStatusPublished, JobListingStatusDelisted:
		return true
	}
	return false
}

// Next returns the status a toggle moves to. Every state has exactly one
// outgoing edge: draft and delisted both go to published, published goes to
// delisted. A published listing never returns to draft.
func (s JobListingStatus) Next() JobListingStatus {
	switch s {
	case JobListingStatusDraft, JobListingStatusDelisted:
		return JobListingStatusPublished
	case JobListingStatusPublished:
		return JobListingStatusDelisted
	}
	return s
}

// SortOrder positions a status for grouped management views:
// published before draft before delisted.
func (s JobListingStatus) SortOrder() int {
	switch s {
	case JobListingStatusPublished:
		return 0
	case JobListingStatusDraft:
		return 1
	case JobListingStatusDelisted:
		return 2
	}
	return 3
}

// CompareStatusForDisplay is a comparator over the display order: negative
// when a sorts before b, zero for equal inputs, positive otherwise.
func CompareStatusForDisplay(a, b JobListingStatus) int {
	return a.SortOrder() - b.SortOrder()
}

// ApplicationStage tracks an application through the employer's review.
type ApplicationStage string

const (
	ApplicationStageApplied     ApplicationStage = "applied"
	ApplicationStageInterested  ApplicationStage = "interested"
	ApplicationStageDenied      ApplicationStage = "denied"
	ApplicationStageInterviewed ApplicationStage = "interviewed"
	ApplicationStageHired       ApplicationStage = "hired"
)

func (s ApplicationStage) Valid() bool {
	switch s {
	case ApplicationStageApplied, ApplicationStageInterested, ApplicationStageDenied,
		ApplicationStageInterviewed, ApplicationStageHired:
		return true
	}
	return false
}

type WageInterval string

const (
	WageIntervalHourly WageInterval = "hourly"
	WageIntervalYearly WageInterval = "yearly"
)

func (w WageInterval) Valid() bool {
	return w == WageIntervalHourly || w == WageIntervalYearly
}

type LocationRequirement string

const (
	LocationRequirementRemote   LocationRequirement = "remote"
	LocationRequirementInOffice LocationRequirement = "in-office"
	LocationRequirementHybrid   LocationRequirement = "hybrid"
)

func (l LocationRequirement) Valid() bool {
	switch l {
	case LocationRequirementRemote, LocationRequirementInOffice, LocationRequirementHybrid:
		return true
	}
	return false
}

type JobListingType string

const (
	JobListingTypeFullTime   JobListingType = "full-time"
	JobListingTypePartTime   JobListingType = "part-time"
	JobListingTypeInternship JobListingType = "internship"
)

func (t JobListingType) Valid() bool {
	switch t {
	case JobListingTypeFullTime, JobListingTypePartTime, JobListingTypeInternship:
		return true
	}
	return false
}

type ExperienceLevel string

const (
	ExperienceLevelJunior   ExperienceLevel = "junior"
	ExperienceLevelMidLevel ExperienceLevel = "mid-level"
	ExperienceLevelSenior   ExperienceLevel = "senior"
)

func (e ExperienceLevel) Valid() bool {
	switch e {
	case ExperienceLevelJunior, ExperienceLevelMidLevel, ExperienceLevelSenior:
		return true
	}
	return false
}
