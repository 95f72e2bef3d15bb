package constants

import "time"

// Plan-group limits and scheduling defaults.
const (
	// MaxContentPlanGroups is the ceiling of concurrent non-terminal
	// plan groups a student may own.
	MaxContentPlanGroups = 9

	// DefaultMaxPreviewPlans caps the preview sample size.
	DefaultMaxPreviewPlans = 10

	// StudyMinutesPerUnit is the estimated duration of one content unit
	// (page, episode, ...) on a study day.
	StudyMinutesPerUnit = 5

	// ReviewMinutesPerUnit is the estimated duration of one unit on a
	// review day (recap is faster than first-pass study).
	ReviewMinutesPerUnit = 2

	// BatchSize bounds multi-student plan generation batches.
	BatchSize = 10

	// BatchDelay is the pause between generation batches.
	BatchDelay = 500 * time.Millisecond
)

// Default study window when a template defines none (camp study hours).
const (
	DefaultStudyWindowStart = "10:00"
	DefaultStudyWindowEnd   = "19:00"
)
