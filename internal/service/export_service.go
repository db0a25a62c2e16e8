package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/parancompany/navycamp-api/internal/dto"
	"github.com/parancompany/navycamp-api/internal/models"
	"github.com/parancompany/navycamp-api/pkg/export"
	appErrors "github.com/parancompany/navycamp-api/pkg/errors"
	"github.com/parancompany/navycamp-api/pkg/storage"
)

// Export formats.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

var scheduleExportHeaders = []string{
	"Request ID", "Fleet", "Ship", "Venue", "Second Venue",
	"Start Date", "End Date", "Start Time", "Participants",
	"Identity Instructor", "Security Instructor", "Communication Instructor",
}

type confirmedLister interface {
	ListConfirmedInRange(ctx context.Context, start, end time.Time) ([]models.TrainingRequestDetail, error)
}

// ExportService renders the confirmed training schedule to CSV or PDF files
// and hands out time-limited signed download tokens.
type ExportService struct {
	requests confirmedLister
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	store    *storage.LocalStorage
	signer   *storage.SignedURLSigner
	logger   *zap.Logger
}

// NewExportService constructs the service.
func NewExportService(requests confirmedLister, store *storage.LocalStorage, signer *storage.SignedURLSigner, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		requests: requests,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		store:    store,
		signer:   signer,
		logger:   logger,
	}
}

// ExportSchedule renders confirmed requests overlapping the inclusive range.
func (s *ExportService) ExportSchedule(ctx context.Context, startStr, endStr, format string) (*dto.ScheduleExportResponse, error) {
	start, err := time.Parse(dateLayout, startStr)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "startDate must be YYYY-MM-DD")
	}
	end, err := time.Parse(dateLayout, endStr)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "endDate must be YYYY-MM-DD")
	}
	if end.Before(start) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "endDate precedes startDate")
	}
	if format != ExportFormatCSV && format != ExportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}

	details, err := s.requests.ListConfirmedInRange(ctx, start, end)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load confirmed schedule")
	}

	dataset := buildScheduleDataset(details)
	var payload []byte
	switch format {
	case ExportFormatCSV:
		payload, err = s.csv.Render(dataset)
	case ExportFormatPDF:
		title := fmt.Sprintf("Training schedule %s - %s", startStr, endStr)
		payload, err = s.pdf.Render(dataset, title)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	exportID := uuid.NewString()
	fileName := fmt.Sprintf("schedule_%s_%s_%s.%s", startStr, endStr, exportID[:8], format)
	relPath, err := s.store.Save(fileName, payload)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store export")
	}

	token, expiresAt, err := s.signer.Generate(exportID, relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign download link")
	}

	s.logger.Info("schedule exported",
		zap.String("export_id", exportID),
		zap.String("format", format),
		zap.Int("rows", len(details)))

	return &dto.ScheduleExportResponse{
		ExportID:  exportID,
		Format:    format,
		FileName:  fileName,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// OpenDownload validates the signed token and opens the exported file.
func (s *ExportService) OpenDownload(token string) (*os.File, string, error) {
	_, relPath, _, err := s.signer.Parse(token)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired download token")
	}
	file, err := s.store.Open(relPath)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "export file not found")
	}
	return file, relPath, nil
}

func buildScheduleDataset(details []models.TrainingRequestDetail) export.Dataset {
	rows := make([]map[string]string, 0, len(details))
	for i := range details {
		d := &details[i]
		row := map[string]string{
			"Request ID": fmt.Sprintf("%d", d.ID),
			"Fleet":      d.Fleet,
			"Venue":      d.VenueName,
			"Start Date": d.RequestDate.Format(dateLayout),
		}
		if d.Ship != nil {
			row["Ship"] = *d.Ship
		}
		if d.SecondVenueName != nil {
			row["Second Venue"] = *d.SecondVenueName
		}
		if d.RequestEndDate != nil {
			row["End Date"] = d.RequestEndDate.Format(dateLayout)
		}
		if d.StartTime != nil {
			row["Start Time"] = *d.StartTime
		}
		if d.ParticipantCount != nil {
			row["Participants"] = fmt.Sprintf("%d", *d.ParticipantCount)
		}
		if d.IdentityInstructorName != nil {
			row["Identity Instructor"] = *d.IdentityInstructorName
		}
		if d.SecurityInstructorName != nil {
			row["Security Instructor"] = *d.SecurityInstructorName
		}
		if d.CommunicationInstructorName != nil {
			row["Communication Instructor"] = *d.CommunicationInstructorName
		}
		rows = append(rows, row)
	}
	return export.Dataset{Headers: scheduleExportHeaders, Rows: rows}
}
