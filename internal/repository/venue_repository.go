package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/parancompany/navycamp-api/internal/models"
)

const venueColumns = `id, name, address, building, room_number, capacity,
       lecture_capacity, accommodation_capacity, region, website,
       reservation_contact, summary, notes, created_at`

// VenueRepository persists the venue directory.
type VenueRepository struct {
	db *sqlx.DB
}

// NewVenueRepository constructs the repository.
func NewVenueRepository(db *sqlx.DB) *VenueRepository {
	return &VenueRepository{db: db}
}

// Create inserts a new venue.
func (r *VenueRepository) Create(ctx context.Context, v *models.Venue) error {
	const query = `INSERT INTO venues
	(name, address, building, room_number, capacity, lecture_capacity, accommodation_capacity,
	 region, website, reservation_contact, summary, notes)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	RETURNING id, created_at`
	row := r.db.QueryRowContext(ctx, query,
		v.Name, v.Address, v.Building, v.RoomNumber, v.Capacity, v.LectureCapacity,
		v.AccommodationCapacity, v.Region, v.Website, v.ReservationContact, v.Summary, v.Notes)
	if err := row.Scan(&v.ID, &v.CreatedAt); err != nil {
		return fmt.Errorf("insert venue: %w", err)
	}
	return nil
}

// GetByID fetches a venue by identifier.
func (r *VenueRepository) GetByID(ctx context.Context, id int64) (*models.Venue, error) {
	query := "SELECT " + venueColumns + " FROM venues WHERE id = $1"
	var v models.Venue
	if err := r.db.GetContext(ctx, &v, query, id); err != nil {
		return nil, err
	}
	return &v, nil
}

// List returns all venues ordered by name.
func (r *VenueRepository) List(ctx context.Context) ([]models.Venue, error) {
	query := "SELECT " + venueColumns + " FROM venues ORDER BY name"
	venues := []models.Venue{}
	if err := r.db.SelectContext(ctx, &venues, query); err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	return venues, nil
}

// Update overwrites a venue record.
func (r *VenueRepository) Update(ctx context.Context, v *models.Venue) error {
	const query = `UPDATE venues
	SET name = $1, address = $2, building = $3, room_number = $4, capacity = $5,
	    lecture_capacity = $6, accommodation_capacity = $7, region = $8, website = $9,
	    reservation_contact = $10, summary = $11, notes = $12
	WHERE id = $13`
	result, err := r.db.ExecContext(ctx, query,
		v.Name, v.Address, v.Building, v.RoomNumber, v.Capacity, v.LectureCapacity,
		v.AccommodationCapacity, v.Region, v.Website, v.ReservationContact, v.Summary, v.Notes, v.ID)
	if err != nil {
		return fmt.Errorf("update venue: %w", err)
	}
	return requireRowAffected(result)
}

// Delete removes a venue and its child rooms/contacts.
func (r *VenueRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM venues WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete venue: %w", err)
	}
	return requireRowAffected(result)
}

// CreateRoom inserts a lecture room under a venue.
func (r *VenueRepository) CreateRoom(ctx context.Context, room *models.VenueRoom) error {
	const query = `INSERT INTO venue_rooms
	(venue_id, name, capacity, has_projector, has_microphone, has_whiteboard, desk_layout, notes)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING id, created_at`
	row := r.db.QueryRowContext(ctx, query,
		room.VenueID, room.Name, room.Capacity, room.HasProjector, room.HasMicrophone,
		room.HasWhiteboard, room.DeskLayout, room.Notes)
	if err := row.Scan(&room.ID, &room.CreatedAt); err != nil {
		return fmt.Errorf("insert venue room: %w", err)
	}
	return nil
}

// ListRooms returns a venue's lecture rooms.
func (r *VenueRepository) ListRooms(ctx context.Context, venueID int64) ([]models.VenueRoom, error) {
	const query = `SELECT id, venue_id, name, capacity, has_projector, has_microphone, has_whiteboard, desk_layout, notes, created_at
	FROM venue_rooms WHERE venue_id = $1 ORDER BY name`
	rooms := []models.VenueRoom{}
	if err := r.db.SelectContext(ctx, &rooms, query, venueID); err != nil {
		return nil, fmt.Errorf("list venue rooms: %w", err)
	}
	return rooms, nil
}

// CreateContact inserts a contact person under a venue.
func (r *VenueRepository) CreateContact(ctx context.Context, contact *models.VenueContact) error {
	const query = `INSERT INTO venue_contacts
	(venue_id, name, role, phone, email, preferred_contact, notes)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING id, created_at`
	row := r.db.QueryRowContext(ctx, query,
		contact.VenueID, contact.Name, contact.Role, contact.Phone, contact.Email,
		contact.PreferredContact, contact.Notes)
	if err := row.Scan(&contact.ID, &contact.CreatedAt); err != nil {
		return fmt.Errorf("insert venue contact: %w", err)
	}
	return nil
}

// ListContacts returns a venue's contact people.
func (r *VenueRepository) ListContacts(ctx context.Context, venueID int64) ([]models.VenueContact, error) {
	const query = `SELECT id, venue_id, name, role, phone, email, preferred_contact, notes, created_at
	FROM venue_contacts WHERE venue_id = $1 ORDER BY name`
	contacts := []models.VenueContact{}
	if err := r.db.SelectContext(ctx, &contacts, query, venueID); err != nil {
		return nil, fmt.Errorf("list venue contacts: %w", err)
	}
	return contacts, nil
}
