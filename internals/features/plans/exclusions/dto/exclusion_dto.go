// internals/features/plans/exclusions/dto/exclusion_dto.go
package dto

import "github.com/google/uuid"

type CreateExclusionRequest struct {
	Date    string     `json:"date"     validate:"required,datetime=2006-01-02"`
	Kind    string     `json:"kind"     validate:"required,oneof=holiday personal academy_block"`
	Reason  string     `json:"reason"   validate:"omitempty,max=200"`
	GroupID *uuid.UUID `json:"group_id,omitempty"`
}

type UpdateExclusionRequest struct {
	Date   *string `json:"date,omitempty"   validate:"omitempty,datetime=2006-01-02"`
	Kind   *string `json:"kind,omitempty"   validate:"omitempty,oneof=holiday personal academy_block"`
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=200"`
}
