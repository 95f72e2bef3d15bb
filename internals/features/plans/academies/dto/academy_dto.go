// internals/features/plans/academies/dto/academy_dto.go
package dto

type CreateAcademyScheduleRequest struct {
	Name          string `json:"name"           validate:"required,max=120"`
	Subject       string `json:"subject"        validate:"omitempty,max=120"`
	DayOfWeek     int    `json:"day_of_week"    validate:"min=0,max=6"`
	StartTime     string `json:"start_time"     validate:"required,datetime=15:04"`
	EndTime       string `json:"end_time"       validate:"required,datetime=15:04"`
	TravelMinutes int    `json:"travel_minutes" validate:"omitempty,min=0,max=180"`
}

type UpdateAcademyScheduleRequest struct {
	Name          *string `json:"name,omitempty"           validate:"omitempty,max=120"`
	Subject       *string `json:"subject,omitempty"        validate:"omitempty,max=120"`
	DayOfWeek     *int    `json:"day_of_week,omitempty"    validate:"omitempty,min=0,max=6"`
	StartTime     *string `json:"start_time,omitempty"     validate:"omitempty,datetime=15:04"`
	EndTime       *string `json:"end_time,omitempty"       validate:"omitempty,datetime=15:04"`
	TravelMinutes *int    `json:"travel_minutes,omitempty" validate:"omitempty,min=0,max=180"`
}

type CreateNonStudyBlockRequest struct {
	Label     string `json:"label"       validate:"omitempty,max=120"`
	DayOfWeek int    `json:"day_of_week" validate:"min=0,max=6"`
	StartTime string `json:"start_time"  validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time"    validate:"required,datetime=15:04"`
}
