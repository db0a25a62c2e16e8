package dto

// InstructorInput is the create/update payload for instructors.
type InstructorInput struct {
	Name            string   `json:"name" validate:"required"`
	Rank            *string  `json:"rank"`
	Category        string   `json:"category" validate:"required"`
	Specialty       *string  `json:"specialty"`
	Phone           *string  `json:"phone"`
	Email           *string  `json:"email" validate:"omitempty,email"`
	Affiliation     *string  `json:"affiliation"`
	AvailableRegion *string  `json:"availableRegion"`
	Rating          *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
	Notes           *string  `json:"notes"`
	PhotoURL        *string  `json:"photoUrl"`
}

// ScheduleInput is the create payload for a manual instructor schedule entry.
type ScheduleInput struct {
	ScheduleDate string  `json:"scheduleDate" validate:"required"`
	EndDate      *string `json:"endDate"`
	Description  *string `json:"description"`
}
