package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parancompany/navycamp-api/internal/dto"
	"github.com/parancompany/navycamp-api/internal/models"
	"github.com/parancompany/navycamp-api/internal/repository"
	appErrors "github.com/parancompany/navycamp-api/pkg/errors"
)

type mockRequestStore struct {
	requests     map[int64]models.TrainingRequest
	nextID       int64
	bookedVenues map[int64]bool
	statusLog    []models.RequestStatus
}

func newMockRequestStore() *mockRequestStore {
	return &mockRequestStore{requests: make(map[int64]models.TrainingRequest), nextID: 1}
}

func (m *mockRequestStore) Create(ctx context.Context, req *models.TrainingRequest) error {
	if m.bookedVenues[req.VenueID] {
		return repository.ErrVenueBooked
	}
	if req.SecondVenueID != nil && m.bookedVenues[*req.SecondVenueID] {
		return repository.ErrVenueBooked
	}
	req.ID = m.nextID
	m.nextID++
	req.CreatedAt = time.Now()
	req.UpdatedAt = req.CreatedAt
	m.requests[req.ID] = *req
	return nil
}

func (m *mockRequestStore) GetByID(ctx context.Context, id int64) (*models.TrainingRequest, error) {
	if r, ok := m.requests[id]; ok {
		return &r, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockRequestStore) GetDetailByID(ctx context.Context, id int64) (*models.TrainingRequestDetail, error) {
	if r, ok := m.requests[id]; ok {
		return &models.TrainingRequestDetail{
			TrainingRequest: r,
			UserName:        "김철수",
			UserEmail:       "unit@navy.mil.kr",
			VenueName:       "해군회관",
		}, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockRequestStore) List(ctx context.Context, filter models.RequestFilter) ([]models.TrainingRequestDetail, error) {
	out := []models.TrainingRequestDetail{}
	for _, r := range m.requests {
		if filter.UserID != nil && r.UserID != *filter.UserID {
			continue
		}
		if filter.Fleet != "" && r.Fleet != filter.Fleet {
			continue
		}
		out = append(out, models.TrainingRequestDetail{TrainingRequest: r, UserName: "김철수", UserEmail: "unit@navy.mil.kr", VenueName: "해군회관"})
	}
	return out, nil
}

func (m *mockRequestStore) ListActiveOverlapping(ctx context.Context, start, end time.Time) ([]models.TrainingRequest, error) {
	out := []models.TrainingRequest{}
	for _, r := range m.requests {
		if r.Status.Terminal() {
			continue
		}
		if r.RequestDate.After(end) || r.EndOrStart().Before(start) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *mockRequestStore) UpdateStatusFrom(ctx context.Context, id int64, from, to models.RequestStatus, reason *string) error {
	r, ok := m.requests[id]
	if !ok || r.Status != from {
		return sql.ErrNoRows
	}
	r.Status = to
	r.RejectionReason = reason
	m.requests[id] = r
	m.statusLog = append(m.statusLog, to)
	return nil
}

func (m *mockRequestStore) UpdateInstructors(ctx context.Context, id int64, identity, security, communication *int64) error {
	r, ok := m.requests[id]
	if !ok {
		return sql.ErrNoRows
	}
	r.IdentityInstructorID = identity
	r.SecurityInstructorID = security
	r.CommunicationInstructorID = communication
	m.requests[id] = r
	return nil
}

func (m *mockRequestStore) UpdatePlan(ctx context.Context, id int64, plan string) error {
	r, ok := m.requests[id]
	if !ok {
		return sql.ErrNoRows
	}
	r.Plan = &plan
	m.requests[id] = r
	return nil
}

type mockInstructorStore struct {
	instructors map[int64]models.Instructor
	schedules   []models.InstructorSchedule
	booked      []int64
	bookedOn    time.Time
}

func (m *mockInstructorStore) GetByID(ctx context.Context, id int64) (*models.Instructor, error) {
	if inst, ok := m.instructors[id]; ok {
		return &inst, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockInstructorStore) CreateSchedule(ctx context.Context, s *models.InstructorSchedule) error {
	s.ID = int64(len(m.schedules) + 1)
	m.schedules = append(m.schedules, *s)
	return nil
}

func (m *mockInstructorStore) DeleteSchedulesByRequest(ctx context.Context, requestID int64) error {
	kept := m.schedules[:0]
	for _, s := range m.schedules {
		if s.RequestID == nil || *s.RequestID != requestID {
			kept = append(kept, s)
		}
	}
	m.schedules = kept
	return nil
}

func (m *mockInstructorStore) ListBookedInstructorIDs(ctx context.Context, start, end time.Time) ([]int64, error) {
	if !m.bookedOn.IsZero() && (m.bookedOn.Before(start) || m.bookedOn.After(end)) {
		return nil, nil
	}
	return m.booked, nil
}

type mockNotifier struct {
	created []int64
	changed []models.RequestStatus
}

func (m *mockNotifier) RequestCreated(detail *models.TrainingRequestDetail) {
	m.created = append(m.created, detail.ID)
}

func (m *mockNotifier) StatusChanged(detail *models.TrainingRequestDetail, reason string) {
	m.changed = append(m.changed, detail.Status)
}

func newTestRequestService(repo *mockRequestStore, instructors *mockInstructorStore, notifier *mockNotifier) *RequestService {
	if instructors == nil {
		instructors = &mockInstructorStore{}
	}
	// A typed nil pointer inside the interface would defeat the service's
	// notifier guard, so only a live mock is handed over.
	var n requestNotifier
	if notifier != nil {
		n = notifier
	}
	return NewRequestService(repo, instructors, n, nil, nil, nil, nil)
}

func validCreateInput() dto.CreateRequestInput {
	return dto.CreateRequestInput{
		UserID:       3,
		VenueID:      11,
		TrainingType: "ONE_DAY",
		Fleet:        "1함대",
		RequestDate:  "2026-09-10",
	}
}

func TestRequestServiceCreateStartsPending(t *testing.T) {
	repo := newMockRequestStore()
	notifier := &mockNotifier{}
	svc := newTestRequestService(repo, nil, notifier)

	resp, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusPending, resp.Status)
	assert.Equal(t, "2026-09-10", resp.RequestDate)
	assert.Equal(t, []int64{resp.ID}, notifier.created)
}

func TestRequestServiceCreateRejectsBadDates(t *testing.T) {
	svc := newTestRequestService(newMockRequestStore(), nil, nil)

	input := validCreateInput()
	input.RequestDate = "10-09-2026"
	_, err := svc.Create(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	input = validCreateInput()
	end := "2026-09-09"
	input.RequestEndDate = &end
	_, err = svc.Create(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestRequestServiceCreateEnforcesEndDatePairing(t *testing.T) {
	repo := newMockRequestStore()
	svc := newTestRequestService(repo, nil, nil)

	// TWO_DAY without an end date is rejected, never defaulted.
	input := validCreateInput()
	input.TrainingType = "TWO_DAY"
	_, err := svc.Create(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	// ONE_DAY with an end date is rejected as well.
	input = validCreateInput()
	end := "2026-09-20"
	input.RequestEndDate = &end
	_, err = svc.Create(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	// The matching TWO_DAY pairing goes through and keeps the supplied end.
	input = validCreateInput()
	input.TrainingType = "TWO_DAY"
	end = "2026-09-11"
	input.RequestEndDate = &end
	resp, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
	require.NotNil(t, resp.RequestEndDate)
	assert.Equal(t, "2026-09-11", *resp.RequestEndDate)
}

func TestRequestServiceCreateRejectsDuplicateSecondVenue(t *testing.T) {
	svc := newTestRequestService(newMockRequestStore(), nil, nil)

	input := validCreateInput()
	second := input.VenueID
	input.SecondVenueID = &second
	_, err := svc.Create(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestRequestServiceCreateVenueConflict(t *testing.T) {
	repo := newMockRequestStore()
	repo.bookedVenues = map[int64]bool{11: true}
	svc := newTestRequestService(repo, nil, nil)

	_, err := svc.Create(context.Background(), validCreateInput())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrVenueConflict.Code, appErrors.FromError(err).Code)
}

func TestRequestServiceCreateChecksSlotCategories(t *testing.T) {
	repo := newMockRequestStore()
	instructors := &mockInstructorStore{instructors: map[int64]models.Instructor{
		21: {ID: 21, Name: "박교관", Category: models.CategorySecurity},
	}}
	svc := newTestRequestService(repo, instructors, nil)

	input := validCreateInput()
	slot := int64(21)
	input.IdentityInstructorID = &slot
	_, err := svc.Create(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrCategoryMismatch.Code, appErrors.FromError(err).Code)
}

func seedRequest(repo *mockRequestStore, status models.RequestStatus) int64 {
	id := repo.nextID
	repo.nextID++
	repo.requests[id] = models.TrainingRequest{
		ID:           id,
		UserID:       3,
		VenueID:      11,
		TrainingType: models.TrainingTypeOneDay,
		Fleet:        "1함대",
		RequestDate:  time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		Status:       status,
	}
	return id
}

func TestRequestServiceStatusHappyPath(t *testing.T) {
	repo := newMockRequestStore()
	notifier := &mockNotifier{}
	svc := newTestRequestService(repo, nil, notifier)
	id := seedRequest(repo, models.RequestStatusPending)

	for _, next := range []models.RequestStatus{
		models.RequestStatusVenueCheck,
		models.RequestStatusInstructorCheck,
		models.RequestStatusConfirmed,
	} {
		resp, err := svc.UpdateStatus(context.Background(), id, dto.UpdateStatusInput{Status: string(next)})
		require.NoError(t, err)
		assert.Equal(t, next, resp.Status)
	}
	assert.Equal(t, []models.RequestStatus{models.RequestStatusConfirmed}, notifier.changed)
}

func TestRequestServiceStatusRejectsSkippedStage(t *testing.T) {
	repo := newMockRequestStore()
	svc := newTestRequestService(repo, nil, nil)
	id := seedRequest(repo, models.RequestStatusPending)

	_, err := svc.UpdateStatus(context.Background(), id, dto.UpdateStatusInput{Status: "CONFIRMED"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidTransition.Code, appErrors.FromError(err).Code)
}

func TestRequestServiceStatusTerminalAbsorbs(t *testing.T) {
	repo := newMockRequestStore()
	svc := newTestRequestService(repo, nil, nil)
	id := seedRequest(repo, models.RequestStatusRejected)

	_, err := svc.UpdateStatus(context.Background(), id, dto.UpdateStatusInput{Status: "PENDING"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidState.Code, appErrors.FromError(err).Code)
}

func TestRequestServiceStatusRequiresReason(t *testing.T) {
	repo := newMockRequestStore()
	svc := newTestRequestService(repo, nil, nil)
	id := seedRequest(repo, models.RequestStatusVenueCheck)

	_, err := svc.UpdateStatus(context.Background(), id, dto.UpdateStatusInput{Status: "REJECTED", Reason: "   "})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrMissingReason.Code, appErrors.FromError(err).Code)

	resp, err := svc.UpdateStatus(context.Background(), id, dto.UpdateStatusInput{Status: "REJECTED", Reason: "장소 섭외 불가"})
	require.NoError(t, err)
	require.NotNil(t, resp.RejectionReason)
	assert.Equal(t, "장소 섭외 불가", *resp.RejectionReason)
}

func TestRequestServicePendingCannotCancel(t *testing.T) {
	repo := newMockRequestStore()
	svc := newTestRequestService(repo, nil, nil)
	id := seedRequest(repo, models.RequestStatusPending)

	_, err := svc.UpdateStatus(context.Background(), id, dto.UpdateStatusInput{Status: "CANCELLED", Reason: "부대 사정"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidTransition.Code, appErrors.FromError(err).Code)
}

func TestRequestServiceConfirmBooksSchedules(t *testing.T) {
	repo := newMockRequestStore()
	instructors := &mockInstructorStore{instructors: map[int64]models.Instructor{
		21: {ID: 21, Category: models.CategoryIdentity},
	}}
	svc := newTestRequestService(repo, instructors, nil)
	id := seedRequest(repo, models.RequestStatusInstructorCheck)

	slot := int64(21)
	r := repo.requests[id]
	r.IdentityInstructorID = &slot
	repo.requests[id] = r

	_, err := svc.UpdateStatus(context.Background(), id, dto.UpdateStatusInput{Status: "CONFIRMED"})
	require.NoError(t, err)
	require.Len(t, instructors.schedules, 1)
	assert.Equal(t, slot, instructors.schedules[0].InstructorID)
	assert.Equal(t, models.ScheduleSourceRequest, instructors.schedules[0].Source)

	// Reverting out of CONFIRMED releases the booking.
	_, err = svc.UpdateStatus(context.Background(), id, dto.UpdateStatusInput{Status: "INSTRUCTOR_CHECK"})
	require.NoError(t, err)
	assert.Empty(t, instructors.schedules)
}

func TestRequestServiceRevertKeepsPlanAndInstructors(t *testing.T) {
	repo := newMockRequestStore()
	instructors := &mockInstructorStore{instructors: map[int64]models.Instructor{
		21: {ID: 21, Category: models.CategoryIdentity},
	}}
	svc := newTestRequestService(repo, instructors, nil)
	id := seedRequest(repo, models.RequestStatusInstructorCheck)

	slot := int64(21)
	_, err := svc.AssignInstructors(context.Background(), id, dto.AssignInstructorsInput{IdentityInstructorID: &slot})
	require.NoError(t, err)
	_, err = svc.UpdatePlan(context.Background(), id, dto.UpdatePlanInput{Plan: "1일차 정훈교육"})
	require.NoError(t, err)

	resp, err := svc.UpdateStatus(context.Background(), id, dto.UpdateStatusInput{Status: "VENUE_CHECK"})
	require.NoError(t, err)
	require.NotNil(t, resp.IdentityInstructorID)
	assert.Equal(t, slot, *resp.IdentityInstructorID)
	require.NotNil(t, resp.Plan)
	assert.Equal(t, "1일차 정훈교육", *resp.Plan)
}

func TestRequestServiceAssignNullClearsSlot(t *testing.T) {
	repo := newMockRequestStore()
	instructors := &mockInstructorStore{instructors: map[int64]models.Instructor{
		21: {ID: 21, Category: models.CategoryIdentity},
		22: {ID: 22, Category: models.CategorySecurity},
	}}
	svc := newTestRequestService(repo, instructors, nil)
	id := seedRequest(repo, models.RequestStatusInstructorCheck)

	identity, security := int64(21), int64(22)
	_, err := svc.AssignInstructors(context.Background(), id, dto.AssignInstructorsInput{
		IdentityInstructorID: &identity,
		SecurityInstructorID: &security,
	})
	require.NoError(t, err)

	resp, err := svc.AssignInstructors(context.Background(), id, dto.AssignInstructorsInput{
		SecurityInstructorID: &security,
	})
	require.NoError(t, err)
	assert.Nil(t, resp.IdentityInstructorID)
	require.NotNil(t, resp.SecurityInstructorID)
}

func TestRequestServiceAssignTerminalRejected(t *testing.T) {
	repo := newMockRequestStore()
	svc := newTestRequestService(repo, nil, nil)
	id := seedRequest(repo, models.RequestStatusCancelled)

	_, err := svc.AssignInstructors(context.Background(), id, dto.AssignInstructorsInput{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidState.Code, appErrors.FromError(err).Code)
}

func TestRequestServiceAvailability(t *testing.T) {
	repo := newMockRequestStore()
	instructors := &mockInstructorStore{booked: []int64{7}, bookedOn: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)}
	svc := newTestRequestService(repo, instructors, nil)

	second := int64(12)
	slot := int64(21)
	repo.requests[1] = models.TrainingRequest{
		ID:                   1,
		VenueID:              11,
		SecondVenueID:        &second,
		IdentityInstructorID: &slot,
		RequestDate:          time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		Status:               models.RequestStatusVenueCheck,
	}
	repo.requests[2] = models.TrainingRequest{
		ID:          2,
		VenueID:     30,
		RequestDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		Status:      models.RequestStatusRejected,
	}

	resp, err := svc.CheckAvailability(context.Background(), "2026-09-10", "")
	require.NoError(t, err)
	assert.Equal(t, []int64{11, 12}, resp.BookedVenueIDs)
	assert.Equal(t, []int64{7, 21}, resp.BookedInstructorIDs)

	// Disjoint range sees nothing.
	resp, err = svc.CheckAvailability(context.Background(), "2026-10-01", "2026-10-02")
	require.NoError(t, err)
	assert.Empty(t, resp.BookedVenueIDs)
	assert.Empty(t, resp.BookedInstructorIDs)
}

func TestRequestServiceListFiltersByUser(t *testing.T) {
	repo := newMockRequestStore()
	svc := newTestRequestService(repo, nil, nil)
	seedRequest(repo, models.RequestStatusPending)

	other := repo.requests[1]
	other.ID = 2
	other.UserID = 9
	repo.requests[2] = other
	repo.nextID = 3

	userID := int64(3)
	out, err := svc.List(context.Background(), models.RequestFilter{UserID: &userID})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, int64(1), out[0].ID)
}
