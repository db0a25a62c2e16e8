package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/parancompany/navycamp-api/internal/dto"
	"github.com/parancompany/navycamp-api/internal/models"
	appErrors "github.com/parancompany/navycamp-api/pkg/errors"
)

type venueStore interface {
	Create(ctx context.Context, v *models.Venue) error
	GetByID(ctx context.Context, id int64) (*models.Venue, error)
	List(ctx context.Context) ([]models.Venue, error)
	Update(ctx context.Context, v *models.Venue) error
	Delete(ctx context.Context, id int64) error
	CreateRoom(ctx context.Context, room *models.VenueRoom) error
	ListRooms(ctx context.Context, venueID int64) ([]models.VenueRoom, error)
	CreateContact(ctx context.Context, contact *models.VenueContact) error
	ListContacts(ctx context.Context, venueID int64) ([]models.VenueContact, error)
}

// VenueService manages the venue directory.
type VenueService struct {
	repo      venueStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewVenueService constructs a VenueService.
func NewVenueService(repo venueStore, validate *validator.Validate, logger *zap.Logger) *VenueService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VenueService{repo: repo, validator: validate, logger: logger}
}

// Create registers a new venue.
func (s *VenueService) Create(ctx context.Context, input dto.VenueInput) (*models.Venue, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid venue payload")
	}
	venue := venueFromInput(input)
	if err := s.repo.Create(ctx, venue); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create venue")
	}
	return venue, nil
}

// Get returns a single venue.
func (s *VenueService) Get(ctx context.Context, id int64) (*models.Venue, error) {
	venue, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "venue not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load venue")
	}
	return venue, nil
}

// List returns all venues.
func (s *VenueService) List(ctx context.Context) ([]models.Venue, error) {
	venues, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list venues")
	}
	return venues, nil
}

// Update overwrites a venue record.
func (s *VenueService) Update(ctx context.Context, id int64, input dto.VenueInput) (*models.Venue, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid venue payload")
	}
	venue := venueFromInput(input)
	venue.ID = id
	if err := s.repo.Update(ctx, venue); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "venue not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update venue")
	}
	return s.Get(ctx, id)
}

// Delete removes a venue.
func (s *VenueService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "venue not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete venue")
	}
	return nil
}

// AddRoom attaches a lecture room to a venue.
func (s *VenueService) AddRoom(ctx context.Context, venueID int64, input dto.VenueRoomInput) (*models.VenueRoom, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid room payload")
	}
	if _, err := s.Get(ctx, venueID); err != nil {
		return nil, err
	}
	room := &models.VenueRoom{
		VenueID:       venueID,
		Name:          input.Name,
		Capacity:      input.Capacity,
		HasProjector:  input.HasProjector,
		HasMicrophone: input.HasMicrophone,
		HasWhiteboard: input.HasWhiteboard,
		DeskLayout:    input.DeskLayout,
		Notes:         input.Notes,
	}
	if err := s.repo.CreateRoom(ctx, room); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create room")
	}
	return room, nil
}

// ListRooms returns a venue's lecture rooms.
func (s *VenueService) ListRooms(ctx context.Context, venueID int64) ([]models.VenueRoom, error) {
	rooms, err := s.repo.ListRooms(ctx, venueID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list rooms")
	}
	return rooms, nil
}

// AddContact attaches a contact person to a venue.
func (s *VenueService) AddContact(ctx context.Context, venueID int64, input dto.VenueContactInput) (*models.VenueContact, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid contact payload")
	}
	if _, err := s.Get(ctx, venueID); err != nil {
		return nil, err
	}
	contact := &models.VenueContact{
		VenueID:          venueID,
		Name:             input.Name,
		Role:             input.Role,
		Phone:            input.Phone,
		Email:            input.Email,
		PreferredContact: input.PreferredContact,
		Notes:            input.Notes,
	}
	if err := s.repo.CreateContact(ctx, contact); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create contact")
	}
	return contact, nil
}

// ListContacts returns a venue's contact people.
func (s *VenueService) ListContacts(ctx context.Context, venueID int64) ([]models.VenueContact, error) {
	contacts, err := s.repo.ListContacts(ctx, venueID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list contacts")
	}
	return contacts, nil
}

func venueFromInput(input dto.VenueInput) *models.Venue {
	return &models.Venue{
		Name:                  input.Name,
		Address:               input.Address,
		Building:              input.Building,
		RoomNumber:            input.RoomNumber,
		Capacity:              input.Capacity,
		LectureCapacity:       input.LectureCapacity,
		AccommodationCapacity: input.AccommodationCapacity,
		Region:                input.Region,
		Website:               input.Website,
		ReservationContact:    input.ReservationContact,
		Summary:               input.Summary,
		Notes:                 input.Notes,
	}
}
