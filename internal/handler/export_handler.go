package handler

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/parancompany/navycamp-api/internal/dto"
	appErrors "github.com/parancompany/navycamp-api/pkg/errors"
	"github.com/parancompany/navycamp-api/pkg/response"
)

type exportService interface {
	ExportSchedule(ctx context.Context, startStr, endStr, format string) (*dto.ScheduleExportResponse, error)
	OpenDownload(token string) (*os.File, string, error)
}

// ExportHandler exposes confirmed-schedule exports.
type ExportHandler struct {
	exports exportService
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(exports exportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Export godoc
// @Summary Export the confirmed schedule as CSV or PDF
// @Tags Exports
// @Produce json
// @Param startDate query string true "Range start (YYYY-MM-DD)"
// @Param endDate query string true "Range end (YYYY-MM-DD)"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {object} response.Envelope
// @Router /exports/schedule [get]
func (h *ExportHandler) Export(c *gin.Context) {
	format := strings.ToLower(c.DefaultQuery("format", "csv"))
	result, err := h.exports.ExportSchedule(c.Request.Context(), c.Query("startDate"), c.Query("endDate"), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Download streams an exported file referenced by a signed token.
func (h *ExportHandler) Download(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token is required"))
		return
	}
	file, relPath, err := h.exports.OpenDownload(token)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	c.FileAttachment(file.Name(), filepath.Base(relPath))
}
