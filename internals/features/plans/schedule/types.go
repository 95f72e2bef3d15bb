// file: internals/features/plans/schedule/types.go
package schedule

import (
	"time"
)

/* =========================
   Day / cadence enums
   ========================= */

// DayType distinguishes study slots (new content) from review slots (recap).
type DayType string

const (
	DayStudy  DayType = "study"
	DayReview DayType = "review"
)

type CadenceKind string

const (
	// CadenceDaily: every eligible weekday is a study day.
	CadenceDaily CadenceKind = "daily"
	// CadenceCyclic: repeating block of S study days + R review days.
	CadenceCyclic CadenceKind = "cyclic"
	// CadencePeriodicReview: every Kth study slot becomes a review slot.
	CadencePeriodicReview CadenceKind = "periodic-review"
)

// CadenceRule governs how study and review slots alternate.
type CadenceRule struct {
	Kind       CadenceKind `json:"kind"`
	StudyDays  int         `json:"study_days,omitempty"`   // cyclic
	ReviewDays int         `json:"review_days,omitempty"`  // cyclic
	EveryNDays int         `json:"every_n_days,omitempty"` // periodic-review
}

/* =========================
   Content range
   ========================= */

type ContentUnit string

const (
	UnitPage    ContentUnit = "page"
	UnitEpisode ContentUnit = "episode"
	UnitDay     ContentUnit = "day"
	UnitChapter ContentUnit = "chapter"
	UnitUnit    ContentUnit = "unit"
)

// ContentRange is an inclusive [Start, End] span of content units.
type ContentRange struct {
	Unit  ContentUnit `json:"unit"`
	Start int         `json:"start"`
	End   int         `json:"end"`
}

func (r ContentRange) Total() int { return r.End - r.Start + 1 }

func (r ContentRange) Validate() error {
	if r.Start > r.End || r.Total() <= 0 {
		return ErrInvalidRange
	}
	return nil
}

/* =========================
   Calendar inputs
   ========================= */

type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type ExclusionKind string

const (
	ExclusionHoliday      ExclusionKind = "holiday"
	ExclusionPersonal     ExclusionKind = "personal"
	ExclusionAcademyBlock ExclusionKind = "academy_block"
)

// Exclusion is one non-study date. Exclusions belong to the student, not
// to a plan group; the caller merges template and student entries before
// the engine runs.
type Exclusion struct {
	Date   time.Time
	Kind   ExclusionKind
	Reason string
}

type StudyType string

const (
	// StudyWeakness: study on every eligible weekday.
	StudyWeakness StudyType = "weakness"
	// StudyStrategy: study N days per week (2..4), picked per ISO week.
	StudyStrategy StudyType = "strategy"
)

/* =========================
   External commitments
   ========================= */

// TimeRange is an HH:mm clock interval within one day.
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// AcademySchedule is a fixed weekly academy commitment.
type AcademySchedule struct {
	DayOfWeek     time.Weekday `json:"day_of_week"`
	Start         string       `json:"start_time"`
	End           string       `json:"end_time"`
	AcademyName   string       `json:"academy_name,omitempty"`
	Subject       string       `json:"subject,omitempty"`
	TravelMinutes int          `json:"travel_minutes,omitempty"`
}

// TimeBlock is a weekly non-study block (meals, commute, fixed routines).
type TimeBlock struct {
	DayOfWeek time.Weekday `json:"day_of_week"`
	Start     string       `json:"start_time"`
	End       string       `json:"end_time"`
	Label     string       `json:"label,omitempty"`
}

/* =========================
   Engine output
   ========================= */

// Slot is one scheduled calendar day. Study slots carry a fresh content
// sub-range; review slots carry the cumulative range studied since the
// previous review (display only, cursor does not advance).
type Slot struct {
	Date       time.Time
	Role       DayType
	RangeStart int
	RangeEnd   int
	Units      int // allocated quantity; 0 for reviews and sparse trailing days
	CycleNo    int // 1-based cycle number (cyclic cadence), 0 otherwise
}

// EffectiveConfig is the fully-resolved scheduling configuration. All
// template/override/individual-schedule merging happens before this struct
// is built; the engine never sees an optional field.
type EffectiveConfig struct {
	Period        Period
	Weekdays      []time.Weekday
	Exclusions    []Exclusion
	StudyType     StudyType
	DaysPerWeek   int // strategy only, 2..4
	PreferredDays []time.Weekday
	Cadence       CadenceRule

	Academies      []AcademySchedule
	NonStudyBlocks []TimeBlock
	StudyWindow    TimeRange

	MinutesPerUnit       int
	ReviewMinutesPerUnit int

	// AllowSparse: when there are more study days than units, allocate one
	// unit per day and flag trailing empty days instead of failing.
	AllowSparse bool

	MaxPreviewPlans int
}

// Distribution summarizes how content is spread over the period.
type Distribution struct {
	StudyDays   int `json:"study_days"`
	ReviewDays  int `json:"review_days"`
	DailyAmount int `json:"daily_amount"`
	TotalDays   int `json:"total_days"`
}

// PlanPreviewItem is one row of the preview sample.
type PlanPreviewItem struct {
	Date              string  `json:"date"` // YYYY-MM-DD
	DayOfWeek         int     `json:"day_of_week"`
	DayType           DayType `json:"day_type"`
	RangeStart        int     `json:"range_start"`
	RangeEnd          int     `json:"range_end"`
	EstimatedDuration int     `json:"estimated_duration"` // minutes
}

// PreviewResult is the capped, display-ready preview payload.
type PreviewResult struct {
	Distribution Distribution      `json:"distribution"`
	PlanPreviews []PlanPreviewItem `json:"plan_previews"`
	Warnings     []string          `json:"warnings"`
	Info         []string          `json:"info"`
}

// Schedule is the full engine output: every slot, uncapped.
type Schedule struct {
	Slots      []Slot
	StudyDays  int
	ReviewDays int
	Warnings   []string
	Info       []string
}

const dateLayout = "2006-01-02"

// FormatDate renders a date the way the API exposes it.
func FormatDate(t time.Time) string { return t.Format(dateLayout) }

// DateOnly truncates t to midnight UTC so dates compare cleanly.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
