package types

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// AddEmployeeRequest proposes an employee on an offer
type AddEmployeeRequest struct {
	EmployeeID uuid.UUID `json:"employee_id" validate:"required"`
}

// ShownEmployeeUpdate edits a snapshot. Nil fields are left unchanged.
// Discount is range-checked here, at the API boundary, not on the entity.
type ShownEmployeeUpdate struct {
	SelectedExperienceIDs []uuid.UUID `json:"selected_experience_ids,omitempty"`
	ProjectIDs            []uuid.UUID `json:"project_ids,omitempty"`
	ProjectActivityIDs    []uuid.UUID `json:"project_activity_ids,omitempty"`
	PlannedWeeklyHours    *float64    `json:"planned_weekly_hours,omitempty" validate:"omitempty,gt=0,lte=168"`
	ClearPlannedHours     bool        `json:"clear_planned_weekly_hours,omitempty"`
	Discount              *float64    `json:"discount,omitempty" validate:"omitempty,gte=0,lte=1"`
}

// DocumentConfigurationRequest creates a document configuration on an offer
type DocumentConfigurationRequest struct {
	Title                    string      `json:"title" validate:"required,min=1,max=200"`
	ShowCoverSheet           bool        `json:"show_cover_sheet"`
	ShowRequiredExperience   bool        `json:"show_required_experience"`
	IncludePriceCalculation  bool        `json:"include_price_calculation"`
	ShownEmployeePropertyIDs []uuid.UUID `json:"shown_employee_property_ids" validate:"required,min=1"`
}

// Options returns the export toggles of the request
func (r *DocumentConfigurationRequest) Options() DocumentConfigurationOptions {
	return DocumentConfigurationOptions{
		ShowCoverSheet:          r.ShowCoverSheet,
		ShowRequiredExperience:  r.ShowRequiredExperience,
		IncludePriceCalculation: r.IncludePriceCalculation,
	}
}

// Validate validates the AddEmployeeRequest using the validator.
func (r *AddEmployeeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ShownEmployeeUpdate using the validator.
func (r *ShownEmployeeUpdate) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the DocumentConfigurationRequest using the validator.
func (r *DocumentConfigurationRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
