package models

import "time"

// Instructor is a reference entity describing a camp instructor.
type Instructor struct {
	ID              int64              `db:"id" json:"id"`
	Name            string             `db:"name" json:"name"`
	Rank            *string            `db:"rank" json:"rank,omitempty"`
	Category        InstructorCategory `db:"category" json:"category"`
	Specialty       *string            `db:"specialty" json:"specialty,omitempty"`
	Phone           *string            `db:"phone" json:"phone,omitempty"`
	Email           *string            `db:"email" json:"email,omitempty"`
	Affiliation     *string            `db:"affiliation" json:"affiliation,omitempty"`
	AvailableRegion *string            `db:"available_region" json:"availableRegion,omitempty"`
	Rating          *float64           `db:"rating" json:"rating,omitempty"`
	Notes           *string            `db:"notes" json:"notes,omitempty"`
	PhotoURL        *string            `db:"photo_url" json:"photoUrl,omitempty"`
	CreatedAt       time.Time          `db:"created_at" json:"createdAt"`
}

// Schedule sources.
const (
	ScheduleSourceManual  = "MANUAL"
	ScheduleSourceRequest = "REQUEST"
)

// InstructorSchedule marks an instructor as committed for a date range. Rows
// with source REQUEST are maintained automatically when a request is confirmed;
// MANUAL rows are entered by admins for outside engagements.
type InstructorSchedule struct {
	ID           int64      `db:"id" json:"id"`
	InstructorID int64      `db:"instructor_id" json:"instructorId"`
	ScheduleDate time.Time  `db:"schedule_date" json:"scheduleDate"`
	EndDate      *time.Time `db:"end_date" json:"endDate,omitempty"`
	Description  *string    `db:"description" json:"description,omitempty"`
	Source       string     `db:"source" json:"source"`
	RequestID    *int64     `db:"request_id" json:"requestId,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
}
