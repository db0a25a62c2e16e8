package models

import "time"

// Venue is a reference entity describing a training location.
type Venue struct {
	ID                    int64     `db:"id" json:"id"`
	Name                  string    `db:"name" json:"name"`
	Address               *string   `db:"address" json:"address,omitempty"`
	Building              *string   `db:"building" json:"building,omitempty"`
	RoomNumber            *string   `db:"room_number" json:"roomNumber,omitempty"`
	Capacity              *int      `db:"capacity" json:"capacity,omitempty"`
	LectureCapacity       *int      `db:"lecture_capacity" json:"lectureCapacity,omitempty"`
	AccommodationCapacity *int      `db:"accommodation_capacity" json:"accommodationCapacity,omitempty"`
	Region                *string   `db:"region" json:"region,omitempty"`
	Website               *string   `db:"website" json:"website,omitempty"`
	ReservationContact    *string   `db:"reservation_contact" json:"reservationContact,omitempty"`
	Summary               *string   `db:"summary" json:"summary,omitempty"`
	Notes                 *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt             time.Time `db:"created_at" json:"createdAt"`
}

// VenueRoom is a lecture room belonging to a venue.
type VenueRoom struct {
	ID            int64     `db:"id" json:"id"`
	VenueID       int64     `db:"venue_id" json:"venueId"`
	Name          string    `db:"name" json:"name"`
	Capacity      *int      `db:"capacity" json:"capacity,omitempty"`
	HasProjector  bool      `db:"has_projector" json:"hasProjector"`
	HasMicrophone bool      `db:"has_microphone" json:"hasMicrophone"`
	HasWhiteboard bool      `db:"has_whiteboard" json:"hasWhiteboard"`
	DeskLayout    *string   `db:"desk_layout" json:"deskLayout,omitempty"`
	Notes         *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}

// VenueContact is a named contact person for a venue.
type VenueContact struct {
	ID               int64     `db:"id" json:"id"`
	VenueID          int64     `db:"venue_id" json:"venueId"`
	Name             string    `db:"name" json:"name"`
	Role             *string   `db:"role" json:"role,omitempty"`
	Phone            *string   `db:"phone" json:"phone,omitempty"`
	Email            *string   `db:"email" json:"email,omitempty"`
	PreferredContact *string   `db:"preferred_contact" json:"preferredContact,omitempty"`
	Notes            *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
}
