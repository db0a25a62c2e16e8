package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parancompany/navycamp-api/internal/dto"
	"github.com/parancompany/navycamp-api/internal/models"
	appErrors "github.com/parancompany/navycamp-api/pkg/errors"
	"github.com/parancompany/navycamp-api/pkg/response"
)

type venueService interface {
	Create(ctx context.Context, input dto.VenueInput) (*models.Venue, error)
	Get(ctx context.Context, id int64) (*models.Venue, error)
	List(ctx context.Context) ([]models.Venue, error)
	Update(ctx context.Context, id int64, input dto.VenueInput) (*models.Venue, error)
	Delete(ctx context.Context, id int64) error
	AddRoom(ctx context.Context, venueID int64, input dto.VenueRoomInput) (*models.VenueRoom, error)
	ListRooms(ctx context.Context, venueID int64) ([]models.VenueRoom, error)
	AddContact(ctx context.Context, venueID int64, input dto.VenueContactInput) (*models.VenueContact, error)
	ListContacts(ctx context.Context, venueID int64) ([]models.VenueContact, error)
}

// VenueHandler exposes venue directory endpoints.
type VenueHandler struct {
	venues venueService
}

// NewVenueHandler constructs VenueHandler.
func NewVenueHandler(venues venueService) *VenueHandler {
	return &VenueHandler{venues: venues}
}

// List returns all venues.
func (h *VenueHandler) List(c *gin.Context) {
	venues, err := h.venues.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, venues, nil)
}

// Get returns a single venue.
func (h *VenueHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	venue, err := h.venues.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, venue, nil)
}

// Create registers a venue.
func (h *VenueHandler) Create(c *gin.Context) {
	var input dto.VenueInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	venue, err := h.venues.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, venue)
}

// Update overwrites a venue.
func (h *VenueHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var input dto.VenueInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	venue, err := h.venues.Update(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, venue, nil)
}

// Delete removes a venue.
func (h *VenueHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.venues.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListRooms returns a venue's lecture rooms.
func (h *VenueHandler) ListRooms(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	rooms, err := h.venues.ListRooms(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rooms, nil)
}

// AddRoom attaches a lecture room.
func (h *VenueHandler) AddRoom(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var input dto.VenueRoomInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	room, err := h.venues.AddRoom(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, room)
}

// ListContacts returns a venue's contact people.
func (h *VenueHandler) ListContacts(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	contacts, err := h.venues.ListContacts(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, contacts, nil)
}

// AddContact attaches a contact person.
func (h *VenueHandler) AddContact(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var input dto.VenueContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	contact, err := h.venues.AddContact(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, contact)
}
