package dto

// VenueInput is the create/update payload for venues.
type VenueInput struct {
	Name                  string  `json:"name" validate:"required"`
	Address               *string `json:"address"`
	Building              *string `json:"building"`
	RoomNumber            *string `json:"roomNumber"`
	Capacity              *int    `json:"capacity" validate:"omitempty,gt=0"`
	LectureCapacity       *int    `json:"lectureCapacity" validate:"omitempty,gt=0"`
	AccommodationCapacity *int    `json:"accommodationCapacity" validate:"omitempty,gt=0"`
	Region                *string `json:"region"`
	Website               *string `json:"website"`
	ReservationContact    *string `json:"reservationContact"`
	Summary               *string `json:"summary"`
	Notes                 *string `json:"notes"`
}

// VenueRoomInput is the create payload for a venue lecture room.
type VenueRoomInput struct {
	Name          string  `json:"name" validate:"required"`
	Capacity      *int    `json:"capacity" validate:"omitempty,gt=0"`
	HasProjector  bool    `json:"hasProjector"`
	HasMicrophone bool    `json:"hasMicrophone"`
	HasWhiteboard bool    `json:"hasWhiteboard"`
	DeskLayout    *string `json:"deskLayout"`
	Notes         *string `json:"notes"`
}

// VenueContactInput is the create payload for a venue contact person.
type VenueContactInput struct {
	Name             string  `json:"name" validate:"required"`
	Role             *string `json:"role"`
	Phone            *string `json:"phone"`
	Email            *string `json:"email" validate:"omitempty,email"`
	PreferredContact *string `json:"preferredContact"`
	Notes            *string `json:"notes"`
}
