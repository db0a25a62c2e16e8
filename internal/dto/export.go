package dto

import "time"

// ScheduleExportResponse returns a signed download token for a generated file.
type ScheduleExportResponse struct {
	ExportID  string    `json:"exportId"`
	Format    string    `json:"format"`
	FileName  string    `json:"fileName"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
