package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/parancompany/navycamp-api/internal/dto"
	"github.com/parancompany/navycamp-api/internal/models"
	"github.com/parancompany/navycamp-api/internal/repository"
	appErrors "github.com/parancompany/navycamp-api/pkg/errors"
)

const (
	dateLayout           = "2006-01-02"
	availabilityKeyScope = "availability:*"
)

type requestStore interface {
	Create(ctx context.Context, req *models.TrainingRequest) error
	GetByID(ctx context.Context, id int64) (*models.TrainingRequest, error)
	GetDetailByID(ctx context.Context, id int64) (*models.TrainingRequestDetail, error)
	List(ctx context.Context, filter models.RequestFilter) ([]models.TrainingRequestDetail, error)
	ListActiveOverlapping(ctx context.Context, start, end time.Time) ([]models.TrainingRequest, error)
	UpdateStatusFrom(ctx context.Context, id int64, from, to models.RequestStatus, reason *string) error
	UpdateInstructors(ctx context.Context, id int64, identity, security, communication *int64) error
	UpdatePlan(ctx context.Context, id int64, plan string) error
}

type instructorStore interface {
	GetByID(ctx context.Context, id int64) (*models.Instructor, error)
	CreateSchedule(ctx context.Context, s *models.InstructorSchedule) error
	DeleteSchedulesByRequest(ctx context.Context, requestID int64) error
	ListBookedInstructorIDs(ctx context.Context, start, end time.Time) ([]int64, error)
}

type requestNotifier interface {
	RequestCreated(detail *models.TrainingRequestDetail)
	StatusChanged(detail *models.TrainingRequestDetail, reason string)
}

// RequestService drives the training-request lifecycle: creation with venue
// conflict checking, the staged approval pipeline, instructor assignment and
// the availability index.
type RequestService struct {
	repo        requestStore
	instructors instructorStore
	notifier    requestNotifier
	cache       *CacheService
	metrics     *MetricsService
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewRequestService constructs a RequestService. The notifier, cache and
// metrics collaborators may be nil.
func NewRequestService(repo requestStore, instructors instructorStore, notifier requestNotifier, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *RequestService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RequestService{
		repo:        repo,
		instructors: instructors,
		notifier:    notifier,
		cache:       cache,
		metrics:     metrics,
		validator:   validate,
		logger:      logger,
	}
}

// Create validates and stores a new request in status PENDING. Overlapping
// active bookings on either venue reject the creation.
func (s *RequestService) Create(ctx context.Context, input dto.CreateRequestInput) (*dto.RequestResponse, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request payload")
	}

	trainingType := models.TrainingType(input.TrainingType)
	if !trainingType.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown training type %q", input.TrainingType))
	}

	startDate, err := time.Parse(dateLayout, input.RequestDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "requestDate must be YYYY-MM-DD")
	}
	var endDate *time.Time
	if input.RequestEndDate != nil && *input.RequestEndDate != "" {
		parsed, err := time.Parse(dateLayout, *input.RequestEndDate)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "requestEndDate must be YYYY-MM-DD")
		}
		if parsed.Before(startDate) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "requestEndDate precedes requestDate")
		}
		endDate = &parsed
	}
	// trainingType is authoritative for the date-range shape: TWO_DAY carries
	// an end date, ONE_DAY never does.
	if trainingType == models.TrainingTypeTwoDay && endDate == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "requestEndDate is required for TWO_DAY training")
	}
	if trainingType == models.TrainingTypeOneDay && endDate != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "requestEndDate is not allowed for ONE_DAY training")
	}
	if input.SecondVenueID != nil && *input.SecondVenueID == input.VenueID {
		return nil, appErrors.Clone(appErrors.ErrValidation, "second venue duplicates the primary venue")
	}

	slots := map[models.InstructorCategory]*int64{
		models.CategoryIdentity:      input.IdentityInstructorID,
		models.CategorySecurity:      input.SecurityInstructorID,
		models.CategoryCommunication: input.CommunicationInstructorID,
	}
	if err := s.verifySlotCategories(ctx, slots); err != nil {
		return nil, err
	}

	req := &models.TrainingRequest{
		UserID:                    input.UserID,
		VenueID:                   input.VenueID,
		SecondVenueID:             input.SecondVenueID,
		IdentityInstructorID:      input.IdentityInstructorID,
		SecurityInstructorID:      input.SecurityInstructorID,
		CommunicationInstructorID: input.CommunicationInstructorID,
		TrainingType:              trainingType,
		Fleet:                     input.Fleet,
		Ship:                      input.Ship,
		ParticipantCount:          input.ParticipantCount,
		RequestDate:               startDate,
		RequestEndDate:            endDate,
		StartTime:                 input.StartTime,
		Status:                    models.RequestStatusPending,
		Notes:                     input.Notes,
	}
	if err := s.repo.Create(ctx, req); err != nil {
		if errors.Is(err, repository.ErrVenueBooked) {
			return nil, appErrors.Clone(appErrors.ErrVenueConflict, "")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create request")
	}

	s.invalidateAvailability(ctx)

	detail, err := s.repo.GetDetailByID(ctx, req.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load created request")
	}
	if s.notifier != nil {
		s.notifier.RequestCreated(detail)
	}
	return dto.NewRequestResponse(detail), nil
}

// Get returns a single request with joined display names.
func (s *RequestService) Get(ctx context.Context, id int64) (*dto.RequestResponse, error) {
	detail, err := s.repo.GetDetailByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "request not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load request")
	}
	return dto.NewRequestResponse(detail), nil
}

// List returns requests newest first. Unit accounts see only their own rows;
// the handler narrows the filter before calling.
func (s *RequestService) List(ctx context.Context, filter models.RequestFilter) ([]dto.RequestResponse, error) {
	details, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list requests")
	}
	return dto.NewRequestResponses(details), nil
}

// UpdateStatus moves a request along the approval pipeline. Transitions are
// restricted to adjacent stages, terminal states absorb everything, and
// REJECTED/CANCELLED demand a reason. Entering CONFIRMED books the assigned
// instructors' schedules; leaving it releases them.
func (s *RequestService) UpdateStatus(ctx context.Context, id int64, input dto.UpdateStatusInput) (*dto.RequestResponse, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid status payload")
	}
	target := models.RequestStatus(input.Status)
	if !target.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown status %q", input.Status))
	}

	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "request not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load request")
	}

	if req.Status.Terminal() {
		return nil, appErrors.Clone(appErrors.ErrInvalidState, fmt.Sprintf("request already %s", req.Status))
	}
	if !req.Status.CanTransitionTo(target) {
		return nil, appErrors.Clone(appErrors.ErrInvalidTransition,
			fmt.Sprintf("cannot move from %s to %s", req.Status, target))
	}

	reason := strings.TrimSpace(input.Reason)
	var reasonArg *string
	if target.RequiresReason() {
		if reason == "" {
			return nil, appErrors.Clone(appErrors.ErrMissingReason, "")
		}
		reasonArg = &reason
	}

	if err := s.repo.UpdateStatusFrom(ctx, id, req.Status, target, reasonArg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "request status changed concurrently")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update status")
	}
	s.metrics.RecordStatusChange(string(target))

	// Instructor schedules mirror the CONFIRMED state only.
	if target == models.RequestStatusConfirmed {
		s.bookInstructorSchedules(ctx, req)
	} else if req.Status == models.RequestStatusConfirmed {
		if err := s.instructors.DeleteSchedulesByRequest(ctx, id); err != nil {
			s.logger.Error("failed to release instructor schedules", zap.Int64("request_id", id), zap.Error(err))
		}
	}

	s.invalidateAvailability(ctx)

	detail, err := s.repo.GetDetailByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load updated request")
	}
	if s.notifier != nil && (target == models.RequestStatusConfirmed || target.Terminal()) {
		s.notifier.StatusChanged(detail, reason)
	}
	return dto.NewRequestResponse(detail), nil
}

// AssignInstructors overwrites the three category slots. A null slot clears
// the assignment. Each provided instructor must carry the matching category.
func (s *RequestService) AssignInstructors(ctx context.Context, id int64, input dto.AssignInstructorsInput) (*dto.RequestResponse, error) {
	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "request not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load request")
	}
	if req.Status.Terminal() {
		return nil, appErrors.Clone(appErrors.ErrInvalidState, fmt.Sprintf("request already %s", req.Status))
	}

	slots := map[models.InstructorCategory]*int64{
		models.CategoryIdentity:      input.IdentityInstructorID,
		models.CategorySecurity:      input.SecurityInstructorID,
		models.CategoryCommunication: input.CommunicationInstructorID,
	}
	if err := s.verifySlotCategories(ctx, slots); err != nil {
		return nil, err
	}
	s.warnDoubleBookings(ctx, req, slots)

	if err := s.repo.UpdateInstructors(ctx, id,
		input.IdentityInstructorID, input.SecurityInstructorID, input.CommunicationInstructorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "request not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to assign instructors")
	}

	// A confirmed request keeps its schedule rows in sync with the slots.
	if req.Status == models.RequestStatusConfirmed {
		if err := s.instructors.DeleteSchedulesByRequest(ctx, id); err != nil {
			s.logger.Error("failed to release instructor schedules", zap.Int64("request_id", id), zap.Error(err))
		}
		updated := *req
		updated.IdentityInstructorID = input.IdentityInstructorID
		updated.SecurityInstructorID = input.SecurityInstructorID
		updated.CommunicationInstructorID = input.CommunicationInstructorID
		s.bookInstructorSchedules(ctx, &updated)
	}

	s.invalidateAvailability(ctx)

	detail, err := s.repo.GetDetailByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load updated request")
	}
	return dto.NewRequestResponse(detail), nil
}

// UpdatePlan stores the operational plan text for a non-terminal request.
func (s *RequestService) UpdatePlan(ctx context.Context, id int64, input dto.UpdatePlanInput) (*dto.RequestResponse, error) {
	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "request not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load request")
	}
	if req.Status.Terminal() {
		return nil, appErrors.Clone(appErrors.ErrInvalidState, fmt.Sprintf("request already %s", req.Status))
	}
	if err := s.repo.UpdatePlan(ctx, id, input.Plan); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update plan")
	}
	detail, err := s.repo.GetDetailByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load updated request")
	}
	return dto.NewRequestResponse(detail), nil
}

// CheckAvailability returns the venues and instructors already committed on
// the inclusive date range. The end date defaults to the start date.
func (s *RequestService) CheckAvailability(ctx context.Context, startStr, endStr string) (*dto.AvailabilityResponse, error) {
	start, err := time.Parse(dateLayout, startStr)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must be YYYY-MM-DD")
	}
	end := start
	if endStr != "" {
		end, err = time.Parse(dateLayout, endStr)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "endDate must be YYYY-MM-DD")
		}
		if end.Before(start) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "endDate precedes date")
		}
	}

	key := fmt.Sprintf("availability:%s:%s", start.Format(dateLayout), end.Format(dateLayout))
	var cached dto.AvailabilityResponse
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, nil
	}

	requests, err := s.repo.ListActiveOverlapping(ctx, start, end)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check availability")
	}

	venueSet := make(map[int64]struct{})
	instructorSet := make(map[int64]struct{})
	for i := range requests {
		venueSet[requests[i].VenueID] = struct{}{}
		if requests[i].SecondVenueID != nil {
			venueSet[*requests[i].SecondVenueID] = struct{}{}
		}
		for _, instructorID := range requests[i].AssignedInstructorIDs() {
			instructorSet[instructorID] = struct{}{}
		}
	}

	booked, err := s.instructors.ListBookedInstructorIDs(ctx, start, end)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check instructor availability")
	}
	for _, instructorID := range booked {
		instructorSet[instructorID] = struct{}{}
	}

	resp := &dto.AvailabilityResponse{
		BookedVenueIDs:      sortedIDs(venueSet),
		BookedInstructorIDs: sortedIDs(instructorSet),
	}
	_ = s.cache.Set(ctx, key, resp, 0)
	return resp, nil
}

func (s *RequestService) verifySlotCategories(ctx context.Context, slots map[models.InstructorCategory]*int64) error {
	for _, category := range []models.InstructorCategory{models.CategoryIdentity, models.CategorySecurity, models.CategoryCommunication} {
		slot := slots[category]
		if slot == nil {
			continue
		}
		instructor, err := s.instructors.GetByID(ctx, *slot)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("instructor %d not found", *slot))
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load instructor")
		}
		if instructor.Category != category {
			return appErrors.Clone(appErrors.ErrCategoryMismatch,
				fmt.Sprintf("instructor %d is %s, slot expects %s", instructor.ID, instructor.Category, category))
		}
	}
	return nil
}

// warnDoubleBookings flags instructors already committed on the request's date
// range. Assignment still proceeds; admins resolve the overlap manually.
func (s *RequestService) warnDoubleBookings(ctx context.Context, req *models.TrainingRequest, slots map[models.InstructorCategory]*int64) {
	booked, err := s.instructors.ListBookedInstructorIDs(ctx, req.RequestDate, req.EndOrStart())
	if err != nil {
		s.logger.Warn("double-booking check failed", zap.Int64("request_id", req.ID), zap.Error(err))
		return
	}
	bookedSet := make(map[int64]struct{}, len(booked))
	for _, id := range booked {
		bookedSet[id] = struct{}{}
	}
	for category, slot := range slots {
		if slot == nil {
			continue
		}
		if _, busy := bookedSet[*slot]; busy {
			s.logger.Warn("instructor already booked on requested dates",
				zap.Int64("request_id", req.ID),
				zap.Int64("instructor_id", *slot),
				zap.String("category", string(category)))
		}
	}
}

func (s *RequestService) bookInstructorSchedules(ctx context.Context, req *models.TrainingRequest) {
	description := fmt.Sprintf("필승해군캠프 교육 (%s)", req.Fleet)
	for _, instructorID := range req.AssignedInstructorIDs() {
		schedule := &models.InstructorSchedule{
			InstructorID: instructorID,
			ScheduleDate: req.RequestDate,
			EndDate:      req.RequestEndDate,
			Description:  &description,
			Source:       models.ScheduleSourceRequest,
			RequestID:    &req.ID,
		}
		if err := s.instructors.CreateSchedule(ctx, schedule); err != nil {
			s.logger.Error("failed to book instructor schedule",
				zap.Int64("request_id", req.ID),
				zap.Int64("instructor_id", instructorID),
				zap.Error(err))
		}
	}
}

func (s *RequestService) invalidateAvailability(ctx context.Context) {
	_ = s.cache.Invalidate(ctx, availabilityKeyScope)
}

func sortedIDs(set map[int64]struct{}) []int64 {
	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
