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
	appErrors "github.com/parancompany/navycamp-api/pkg/errors"
)

type mockInstructorDirectory struct {
	instructors map[int64]*models.Instructor
	schedules   map[int64]*models.InstructorSchedule
	nextID      int64
}

func newMockInstructorDirectory() *mockInstructorDirectory {
	return &mockInstructorDirectory{
		instructors: make(map[int64]*models.Instructor),
		schedules:   make(map[int64]*models.InstructorSchedule),
		nextID:      1,
	}
}

func (m *mockInstructorDirectory) Create(ctx context.Context, inst *models.Instructor) error {
	inst.ID = m.nextID
	m.nextID++
	copied := *inst
	m.instructors[inst.ID] = &copied
	return nil
}

func (m *mockInstructorDirectory) GetByID(ctx context.Context, id int64) (*models.Instructor, error) {
	inst, ok := m.instructors[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *inst
	return &copied, nil
}

func (m *mockInstructorDirectory) List(ctx context.Context, category models.InstructorCategory) ([]models.Instructor, error) {
	out := make([]models.Instructor, 0, len(m.instructors))
	for _, inst := range m.instructors {
		if category != "" && inst.Category != category {
			continue
		}
		out = append(out, *inst)
	}
	return out, nil
}

func (m *mockInstructorDirectory) Update(ctx context.Context, inst *models.Instructor) error {
	if _, ok := m.instructors[inst.ID]; !ok {
		return sql.ErrNoRows
	}
	copied := *inst
	m.instructors[inst.ID] = &copied
	return nil
}

func (m *mockInstructorDirectory) Delete(ctx context.Context, id int64) error {
	if _, ok := m.instructors[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.instructors, id)
	return nil
}

func (m *mockInstructorDirectory) CreateSchedule(ctx context.Context, s *models.InstructorSchedule) error {
	s.ID = m.nextID
	m.nextID++
	copied := *s
	m.schedules[s.ID] = &copied
	return nil
}

func (m *mockInstructorDirectory) ListSchedules(ctx context.Context, instructorID int64) ([]models.InstructorSchedule, error) {
	out := make([]models.InstructorSchedule, 0)
	for _, s := range m.schedules {
		if s.InstructorID == instructorID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *mockInstructorDirectory) DeleteSchedule(ctx context.Context, instructorID, scheduleID int64) error {
	s, ok := m.schedules[scheduleID]
	if !ok || s.InstructorID != instructorID {
		return sql.ErrNoRows
	}
	delete(m.schedules, scheduleID)
	return nil
}

func TestInstructorServiceCreateValidatesCategory(t *testing.T) {
	svc := NewInstructorService(newMockInstructorDirectory(), nil, nil)

	_, err := svc.Create(context.Background(), dto.InstructorInput{Name: "김교관", Category: "LOGISTICS"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	inst, err := svc.Create(context.Background(), dto.InstructorInput{Name: "김교관", Category: "SECURITY"})
	require.NoError(t, err)
	assert.Equal(t, models.CategorySecurity, inst.Category)
	assert.NotZero(t, inst.ID)
}

func TestInstructorServiceListFiltersByCategory(t *testing.T) {
	repo := newMockInstructorDirectory()
	svc := NewInstructorService(repo, nil, nil)

	_, err := svc.Create(context.Background(), dto.InstructorInput{Name: "김교관", Category: "IDENTITY"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), dto.InstructorInput{Name: "박교관", Category: "COMMUNICATION"})
	require.NoError(t, err)

	all, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	comms, err := svc.List(context.Background(), "COMMUNICATION")
	require.NoError(t, err)
	require.Len(t, comms, 1)
	assert.Equal(t, "박교관", comms[0].Name)

	_, err = svc.List(context.Background(), "PILOT")
	require.Error(t, err)
}

func TestInstructorServiceAddScheduleParsesRange(t *testing.T) {
	repo := newMockInstructorDirectory()
	svc := NewInstructorService(repo, nil, nil)

	inst, err := svc.Create(context.Background(), dto.InstructorInput{Name: "김교관", Category: "IDENTITY"})
	require.NoError(t, err)

	end := "2026-09-12"
	schedule, err := svc.AddSchedule(context.Background(), inst.ID, dto.ScheduleInput{
		ScheduleDate: "2026-09-10",
		EndDate:      &end,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ScheduleSourceManual, schedule.Source)
	assert.Equal(t, time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), schedule.ScheduleDate)
	require.NotNil(t, schedule.EndDate)
	assert.Equal(t, time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC), *schedule.EndDate)

	badEnd := "2026-09-01"
	_, err = svc.AddSchedule(context.Background(), inst.ID, dto.ScheduleInput{
		ScheduleDate: "2026-09-10",
		EndDate:      &badEnd,
	})
	require.Error(t, err)
}

func TestInstructorServiceAddScheduleUnknownInstructor(t *testing.T) {
	svc := NewInstructorService(newMockInstructorDirectory(), nil, nil)

	_, err := svc.AddSchedule(context.Background(), 42, dto.ScheduleInput{ScheduleDate: "2026-09-10"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestInstructorServiceRemoveScheduleScopedToOwner(t *testing.T) {
	repo := newMockInstructorDirectory()
	svc := NewInstructorService(repo, nil, nil)

	inst, err := svc.Create(context.Background(), dto.InstructorInput{Name: "김교관", Category: "IDENTITY"})
	require.NoError(t, err)
	schedule, err := svc.AddSchedule(context.Background(), inst.ID, dto.ScheduleInput{ScheduleDate: "2026-09-10"})
	require.NoError(t, err)

	err = svc.RemoveSchedule(context.Background(), inst.ID+1, schedule.ID)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	require.NoError(t, svc.RemoveSchedule(context.Background(), inst.ID, schedule.ID))
}
