package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/parancompany/navycamp-api/internal/models"
)

func newInstructorRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestInstructorRepositoryCreateAndList(t *testing.T) {
	db, mock, cleanup := newInstructorRepoMock(t)
	defer cleanup()

	repo := NewInstructorRepository(db)
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO instructors")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(4), now))

	inst := &models.Instructor{Name: "박교관", Category: models.CategorySecurity}
	require.NoError(t, repo.Create(context.Background(), inst))
	require.Equal(t, int64(4), inst.ID)

	cols := []string{"id", "name", "rank", "category", "specialty", "phone", "email",
		"affiliation", "available_region", "rating", "notes", "photo_url", "created_at"}
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name")).
		WithArgs("SECURITY").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(int64(4), "박교관", nil, "SECURITY", nil, nil, nil, nil, nil, nil, nil, nil, now))

	instructors, err := repo.List(context.Background(), models.CategorySecurity)
	require.NoError(t, err)
	require.Len(t, instructors, 1)
	require.Equal(t, models.CategorySecurity, instructors[0].Category)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInstructorRepositoryScheduleLifecycle(t *testing.T) {
	db, mock, cleanup := newInstructorRepoMock(t)
	defer cleanup()

	repo := NewInstructorRepository(db)
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO instructor_schedules")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(9), now))

	requestID := int64(5)
	sched := &models.InstructorSchedule{
		InstructorID: 4,
		ScheduleDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		Source:       models.ScheduleSourceRequest,
		RequestID:    &requestID,
	}
	require.NoError(t, repo.CreateSchedule(context.Background(), sched))
	require.Equal(t, int64(9), sched.ID)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM instructor_schedules WHERE request_id")).
		WithArgs(requestID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.DeleteSchedulesByRequest(context.Background(), requestID))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInstructorRepositoryListBookedIDs(t *testing.T) {
	db, mock, cleanup := newInstructorRepoMock(t)
	defer cleanup()

	repo := NewInstructorRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT instructor_id")).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"instructor_id"}).AddRow(int64(2)).AddRow(int64(7)))

	ids, err := repo.ListBookedInstructorIDs(context.Background(),
		time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, []int64{2, 7}, ids)
	require.NoError(t, mock.ExpectationsWereMet())
}
