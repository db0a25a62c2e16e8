package models

import "time"

// TrainingType distinguishes the two camp program formats.
type TrainingType string

const (
	TrainingTypeOneDay TrainingType = "ONE_DAY"
	TrainingTypeTwoDay TrainingType = "TWO_DAY"
)

// Valid reports whether the value is a known training type.
func (t TrainingType) Valid() bool {
	return t == TrainingTypeOneDay || t == TrainingTypeTwoDay
}

// RequestStatus captures the approval pipeline states of a training request.
type RequestStatus string

const (
	RequestStatusPending         RequestStatus = "PENDING"
	RequestStatusVenueCheck      RequestStatus = "VENUE_CHECK"
	RequestStatusInstructorCheck RequestStatus = "INSTRUCTOR_CHECK"
	RequestStatusConfirmed       RequestStatus = "CONFIRMED"
	RequestStatusRejected        RequestStatus = "REJECTED"
	RequestStatusCancelled       RequestStatus = "CANCELLED"
)

// requestTransitions enumerates every permitted status edge. Forward movement is
// one stage at a time, "revert" moves exactly one stage back, and the two
// terminal states have no outgoing edges.
var requestTransitions = map[RequestStatus][]RequestStatus{
	RequestStatusPending:         {RequestStatusVenueCheck, RequestStatusRejected},
	RequestStatusVenueCheck:      {RequestStatusInstructorCheck, RequestStatusPending, RequestStatusRejected, RequestStatusCancelled},
	RequestStatusInstructorCheck: {RequestStatusConfirmed, RequestStatusVenueCheck, RequestStatusRejected, RequestStatusCancelled},
	RequestStatusConfirmed:       {RequestStatusInstructorCheck, RequestStatusCancelled},
	RequestStatusRejected:        {},
	RequestStatusCancelled:       {},
}

// Valid reports whether the value is a known status.
func (s RequestStatus) Valid() bool {
	_, ok := requestTransitions[s]
	return ok
}

// Terminal reports whether the status absorbs all further transitions.
func (s RequestStatus) Terminal() bool {
	return s == RequestStatusRejected || s == RequestStatusCancelled
}

// CanTransitionTo reports whether the edge (s -> next) is permitted.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	for _, allowed := range requestTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// RequiresReason reports whether entering the status demands a recorded reason.
func (s RequestStatus) RequiresReason() bool {
	return s.Terminal()
}

// InstructorCategory is one of the three fixed specialty slots on a request.
type InstructorCategory string

const (
	CategoryIdentity      InstructorCategory = "IDENTITY"
	CategorySecurity      InstructorCategory = "SECURITY"
	CategoryCommunication InstructorCategory = "COMMUNICATION"
)

// TrainingRequest is the central scheduling entity. It is created by a unit
// account, advanced through the approval pipeline by admins, and never deleted.
type TrainingRequest struct {
	ID                        int64         `db:"id" json:"id"`
	UserID                    int64         `db:"user_id" json:"userId"`
	VenueID                   int64         `db:"venue_id" json:"venueId"`
	SecondVenueID             *int64        `db:"second_venue_id" json:"secondVenueId,omitempty"`
	IdentityInstructorID      *int64        `db:"identity_instructor_id" json:"identityInstructorId,omitempty"`
	SecurityInstructorID      *int64        `db:"security_instructor_id" json:"securityInstructorId,omitempty"`
	CommunicationInstructorID *int64        `db:"communication_instructor_id" json:"communicationInstructorId,omitempty"`
	TrainingType              TrainingType  `db:"training_type" json:"trainingType"`
	Fleet                     string        `db:"fleet" json:"fleet"`
	Ship                      *string       `db:"ship" json:"ship,omitempty"`
	ParticipantCount          *int          `db:"participant_count" json:"participantCount,omitempty"`
	RequestDate               time.Time     `db:"request_date" json:"requestDate"`
	RequestEndDate            *time.Time    `db:"request_end_date" json:"requestEndDate,omitempty"`
	StartTime                 *string       `db:"start_time" json:"startTime,omitempty"`
	Status                    RequestStatus `db:"status" json:"status"`
	Notes                     *string       `db:"notes" json:"notes,omitempty"`
	Plan                      *string       `db:"plan" json:"plan,omitempty"`
	RejectionReason           *string       `db:"rejection_reason" json:"rejectionReason,omitempty"`
	CreatedAt                 time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt                 time.Time     `db:"updated_at" json:"updatedAt"`
}

// EndOrStart returns the inclusive last day of the request's range.
func (r *TrainingRequest) EndOrStart() time.Time {
	if r.RequestEndDate != nil {
		return *r.RequestEndDate
	}
	return r.RequestDate
}

// AssignedInstructorIDs returns the distinct non-nil instructor slot ids.
func (r *TrainingRequest) AssignedInstructorIDs() []int64 {
	seen := make(map[int64]struct{}, 3)
	ids := make([]int64, 0, 3)
	for _, slot := range []*int64{r.IdentityInstructorID, r.SecurityInstructorID, r.CommunicationInstructorID} {
		if slot == nil {
			continue
		}
		if _, dup := seen[*slot]; dup {
			continue
		}
		seen[*slot] = struct{}{}
		ids = append(ids, *slot)
	}
	return ids
}

// TrainingRequestDetail joins display names for list/detail responses.
type TrainingRequestDetail struct {
	TrainingRequest
	UserName                    string  `db:"user_name" json:"userName"`
	UserEmail                   string  `db:"user_email" json:"userEmail"`
	VenueName                   string  `db:"venue_name" json:"venueName"`
	SecondVenueName             *string `db:"second_venue_name" json:"secondVenueName,omitempty"`
	IdentityInstructorName      *string `db:"identity_instructor_name" json:"identityInstructorName,omitempty"`
	SecurityInstructorName      *string `db:"security_instructor_name" json:"securityInstructorName,omitempty"`
	CommunicationInstructorName *string `db:"communication_instructor_name" json:"communicationInstructorName,omitempty"`
}

// RequestFilter constrains request listing.
type RequestFilter struct {
	UserID *int64
	Fleet  string
}
