package dto

import (
	"time"

	"github.com/parancompany/navycamp-api/internal/models"
)

const dateLayout = "2006-01-02"

// CreateRequestInput is the POST /requests payload. Dates use YYYY-MM-DD.
type CreateRequestInput struct {
	UserID                    int64   `json:"userId" validate:"required"`
	VenueID                   int64   `json:"venueId" validate:"required"`
	SecondVenueID             *int64  `json:"secondVenueId"`
	IdentityInstructorID      *int64  `json:"identityInstructorId"`
	SecurityInstructorID      *int64  `json:"securityInstructorId"`
	CommunicationInstructorID *int64  `json:"communicationInstructorId"`
	TrainingType              string  `json:"trainingType" validate:"required"`
	Fleet                     string  `json:"fleet" validate:"required"`
	Ship                      *string `json:"ship"`
	ParticipantCount          *int    `json:"participantCount" validate:"omitempty,gt=0"`
	RequestDate               string  `json:"requestDate" validate:"required"`
	RequestEndDate            *string `json:"requestEndDate"`
	StartTime                 *string `json:"startTime" validate:"omitempty,len=5"`
	Notes                     *string `json:"notes"`
}

// UpdateStatusInput is the PATCH /requests/:id/status payload.
type UpdateStatusInput struct {
	Status string `json:"status" validate:"required"`
	Reason string `json:"reason"`
}

// AssignInstructorsInput carries the three category slots. A null (or omitted)
// slot clears the corresponding assignment.
type AssignInstructorsInput struct {
	IdentityInstructorID      *int64 `json:"identityInstructorId"`
	SecurityInstructorID      *int64 `json:"securityInstructorId"`
	CommunicationInstructorID *int64 `json:"communicationInstructorId"`
}

// UpdatePlanInput is the PATCH /requests/:id/plan payload.
type UpdatePlanInput struct {
	Plan string `json:"plan"`
}

// AvailabilityResponse lists resources already committed on a date range.
type AvailabilityResponse struct {
	BookedVenueIDs      []int64 `json:"bookedVenueIds"`
	BookedInstructorIDs []int64 `json:"bookedInstructorIds"`
}

// RequestResponse is the outward shape of a training request with joined
// display names and whole-day date formatting.
type RequestResponse struct {
	ID                          int64                `json:"id"`
	UserID                      int64                `json:"userId"`
	UserName                    string               `json:"userName"`
	UserEmail                   string               `json:"userEmail"`
	VenueID                     int64                `json:"venueId"`
	VenueName                   string               `json:"venueName"`
	SecondVenueID               *int64               `json:"secondVenueId,omitempty"`
	SecondVenueName             *string              `json:"secondVenueName,omitempty"`
	IdentityInstructorID        *int64               `json:"identityInstructorId,omitempty"`
	IdentityInstructorName      *string              `json:"identityInstructorName,omitempty"`
	SecurityInstructorID        *int64               `json:"securityInstructorId,omitempty"`
	SecurityInstructorName      *string              `json:"securityInstructorName,omitempty"`
	CommunicationInstructorID   *int64               `json:"communicationInstructorId,omitempty"`
	CommunicationInstructorName *string              `json:"communicationInstructorName,omitempty"`
	TrainingType                models.TrainingType  `json:"trainingType"`
	Fleet                       string               `json:"fleet"`
	Ship                        *string              `json:"ship,omitempty"`
	ParticipantCount            *int                 `json:"participantCount,omitempty"`
	RequestDate                 string               `json:"requestDate"`
	RequestEndDate              *string              `json:"requestEndDate,omitempty"`
	StartTime                   *string              `json:"startTime,omitempty"`
	Status                      models.RequestStatus `json:"status"`
	Notes                       *string              `json:"notes,omitempty"`
	Plan                        *string              `json:"plan,omitempty"`
	RejectionReason             *string              `json:"rejectionReason,omitempty"`
	CreatedAt                   time.Time            `json:"createdAt"`
}

// NewRequestResponse converts a joined detail row into the response shape.
func NewRequestResponse(d *models.TrainingRequestDetail) *RequestResponse {
	resp := &RequestResponse{
		ID:                          d.ID,
		UserID:                      d.UserID,
		UserName:                    d.UserName,
		UserEmail:                   d.UserEmail,
		VenueID:                     d.VenueID,
		VenueName:                   d.VenueName,
		SecondVenueID:               d.SecondVenueID,
		SecondVenueName:             d.SecondVenueName,
		IdentityInstructorID:        d.IdentityInstructorID,
		IdentityInstructorName:      d.IdentityInstructorName,
		SecurityInstructorID:        d.SecurityInstructorID,
		SecurityInstructorName:      d.SecurityInstructorName,
		CommunicationInstructorID:   d.CommunicationInstructorID,
		CommunicationInstructorName: d.CommunicationInstructorName,
		TrainingType:                d.TrainingType,
		Fleet:                       d.Fleet,
		Ship:                        d.Ship,
		ParticipantCount:            d.ParticipantCount,
		RequestDate:                 d.RequestDate.Format(dateLayout),
		StartTime:                   d.StartTime,
		Status:                      d.Status,
		Notes:                       d.Notes,
		Plan:                        d.Plan,
		RejectionReason:             d.RejectionReason,
		CreatedAt:                   d.CreatedAt,
	}
	if d.RequestEndDate != nil {
		formatted := d.RequestEndDate.Format(dateLayout)
		resp.RequestEndDate = &formatted
	}
	return resp
}

// NewRequestResponses maps a slice of detail rows.
func NewRequestResponses(details []models.TrainingRequestDetail) []RequestResponse {
	out := make([]RequestResponse, 0, len(details))
	for i := range details {
		out = append(out, *NewRequestResponse(&details[i]))
	}
	return out
}
