package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/busfleet/internal/service"
)

func reportQuery(c *gin.Context) service.ReportQuery {
	return service.ReportQuery{
		Period: c.Query("period"),
		Anchor: c.Query("anchor"),
		Depot:  c.Query("depot"),
		Status: c.Query("status"),
	}
}

// respondReport renders a report or the single report failure response.
func (h *Handler) respondReport(c *gin.Context, report any, err error) {
	if err != nil {
		h.handleReportError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) handleReportError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrInvalidInput) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.log.Error().Err(err).Str("path", c.FullPath()).Msg("generate report failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate report"})
}

func (h *Handler) busUsageReport(c *gin.Context) {
	report, err := h.svc.Reports.BusUsage(c.Request.Context(), reportQuery(c))
	h.respondReport(c, report, err)
}

func (h *Handler) complaintsReport(c *gin.Context) {
	report, err := h.svc.Reports.Complaints(c.Request.Context(), reportQuery(c))
	h.respondReport(c, report, err)
}

func (h *Handler) shiftComplianceReport(c *gin.Context) {
	report, err := h.svc.Reports.ShiftCompliance(c.Request.Context(), reportQuery(c))
	h.respondReport(c, report, err)
}

func (h *Handler) summaryReport(c *gin.Context) {
	report, err := h.svc.Reports.Summary(c.Request.Context(), reportQuery(c))
	h.respondReport(c, report, err)
}

func (h *Handler) accidentsReport(c *gin.Context) {
	report, err := h.svc.Reports.Accidents(c.Request.Context(), reportQuery(c))
	h.respondReport(c, report, err)
}

func (h *Handler) exportReport(c *gin.Context) {
	result, err := h.svc.Reports.Export(c.Request.Context(), reportQuery(c), c.Query("format"))
	if err != nil {
		h.handleReportError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
