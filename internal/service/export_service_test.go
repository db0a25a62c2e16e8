package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parancompany/navycamp-api/internal/models"
	appErrors "github.com/parancompany/navycamp-api/pkg/errors"
	"github.com/parancompany/navycamp-api/pkg/storage"
)

type confirmedListerStub struct {
	details []models.TrainingRequestDetail
	err     error
}

func (s *confirmedListerStub) ListConfirmedInRange(ctx context.Context, start, end time.Time) ([]models.TrainingRequestDetail, error) {
	return s.details, s.err
}

func newTestExportService(t *testing.T, lister confirmedLister) *ExportService {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("test_secret", time.Hour)
	return NewExportService(lister, store, signer, nil)
}

func confirmedDetailFixture() models.TrainingRequestDetail {
	ship := "이순신함"
	identity := "김교관"
	detail := models.TrainingRequestDetail{}
	detail.ID = 7
	detail.Fleet = "1함대"
	detail.Ship = &ship
	detail.RequestDate = time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	detail.VenueName = "해군회관 대강당"
	detail.IdentityInstructorName = &identity
	return detail
}

func TestExportScheduleCSVRoundTrip(t *testing.T) {
	lister := &confirmedListerStub{details: []models.TrainingRequestDetail{confirmedDetailFixture()}}
	svc := newTestExportService(t, lister)

	result, err := svc.ExportSchedule(context.Background(), "2026-09-01", "2026-09-30", ExportFormatCSV)
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	assert.Equal(t, ExportFormatCSV, result.Format)
	assert.Contains(t, result.FileName, "schedule_2026-09-01_2026-09-30_")

	file, relPath, err := svc.OpenDownload(result.Token)
	require.NoError(t, err)
	defer file.Close()
	assert.Equal(t, result.FileName, relPath)

	raw, err := io.ReadAll(file)
	require.NoError(t, err)
	content := string(raw)
	assert.Contains(t, content, "1함대")
	assert.Contains(t, content, "해군회관 대강당")
	assert.Contains(t, content, "김교관")
}

func TestExportSchedulePDF(t *testing.T) {
	lister := &confirmedListerStub{details: []models.TrainingRequestDetail{confirmedDetailFixture()}}
	svc := newTestExportService(t, lister)

	result, err := svc.ExportSchedule(context.Background(), "2026-09-01", "2026-09-30", ExportFormatPDF)
	require.NoError(t, err)

	file, _, err := svc.OpenDownload(result.Token)
	require.NoError(t, err)
	defer file.Close()

	raw, err := io.ReadAll(file)
	require.NoError(t, err)
	require.NotEmpty(t, raw)
	assert.Equal(t, "%PDF", string(raw[:4]))
}

func TestExportScheduleRejectsBadInput(t *testing.T) {
	svc := newTestExportService(t, &confirmedListerStub{})

	_, err := svc.ExportSchedule(context.Background(), "2026-9-1", "2026-09-30", ExportFormatCSV)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.ExportSchedule(context.Background(), "2026-09-30", "2026-09-01", ExportFormatCSV)
	require.Error(t, err)

	_, err = svc.ExportSchedule(context.Background(), "2026-09-01", "2026-09-30", "xlsx")
	require.Error(t, err)
}

func TestOpenDownloadRejectsForgedToken(t *testing.T) {
	svc := newTestExportService(t, &confirmedListerStub{})

	_, _, err := svc.OpenDownload("forged.token.payload.signature")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}
