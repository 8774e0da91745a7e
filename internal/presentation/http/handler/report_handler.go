package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clinicore/clinicore-api/internal/application/service"
	"github.com/clinicore/clinicore-api/internal/domain/report"
	"github.com/clinicore/clinicore-api/internal/presentation/http/dto/response"
)

// ReportHandler handles appointment report HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// filterFromQuery builds the report filter from query parameters.
// An invalid date silently falls back to an unbounded side.
func filterFromQuery(c *gin.Context) report.Filter {
	filter := report.Filter{
		Preset:   report.RangePreset(c.DefaultQuery("range", string(report.RangeThisMonth))),
		DoctorID: c.Query("doctor_id"),
		Query:    c.Query("q"),
	}

	if from, err := parseDate(c.Query("from")); err == nil {
		filter.From = from
	}
	if to, err := parseDate(c.Query("to")); err == nil {
		filter.To = to
	}

	if statusStr := c.Query("status"); statusStr != "" {
		if status, ok := parseAppointmentStatus(statusStr); ok {
			filter.Status = &status
		}
	}

	return filter
}

// Get handles building the filtered report with its aggregations
func (h *ReportHandler) Get(c *gin.Context) {
	result, err := h.reportService.BuildReport(c.Request.Context(), filterFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Report generated successfully", result)
}

// ExportCSV handles downloading the filtered report as CSV
func (h *ReportHandler) ExportCSV(c *gin.Context) {
	filename := fmt.Sprintf("appointments-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.reportService.ExportCSV(c.Request.Context(), filterFromQuery(c), c.Writer); err != nil {
		response.Error(c, err)
		return
	}
}

// ExportXLSX handles downloading the filtered report as an XLSX workbook
func (h *ReportHandler) ExportXLSX(c *gin.Context) {
	filename := fmt.Sprintf("appointments-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.reportService.ExportXLSX(c.Request.Context(), filterFromQuery(c), c.Writer); err != nil {
		response.Error(c, err)
		return
	}
}
