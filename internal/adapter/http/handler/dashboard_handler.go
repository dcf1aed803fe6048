package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/iho/moneymanager/internal/adapter/http/dto"
	"github.com/iho/moneymanager/internal/domain"
)

// ReportService defines the behavior needed by DashboardHandler.
type ReportService interface {
	MonthlyReport(ctx context.Context, ownerID string, month time.Month, year int) (*domain.PeriodReport, error)
	WeeklyReport(ctx context.Context, ownerID string, week, year int) (*domain.PeriodReport, error)
	YearlyReport(ctx context.Context, ownerID string, year int) (*domain.PeriodReport, error)
	CategoryReport(ctx context.Context, ownerID string) (*domain.CategoryReport, error)
}

// DashboardHandler serves the report endpoints.
type DashboardHandler struct {
	reportUC ReportService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(reportUC ReportService) *DashboardHandler {
	return &DashboardHandler{reportUC: reportUC}
}

// Monthly summarizes one calendar month.
func (h *DashboardHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	month, okMonth := parseIntQuery(r, "month")
	year, okYear := parseIntQuery(r, "year")
	if !okMonth || !okYear || month < 1 || month > 12 {
		writeBadRequest(w, "month (1-12) and year are required")
		return
	}

	report, err := h.reportUC.MonthlyReport(r.Context(), callerID(r), time.Month(month), year)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Monthly report generated successfully", dto.PeriodReportFromDomain(report))
}

// Weekly summarizes one seven-day window of the year.
func (h *DashboardHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	week, okWeek := parseIntQuery(r, "week")
	year, okYear := parseIntQuery(r, "year")
	if !okWeek || !okYear || week < 1 || week > 53 {
		writeBadRequest(w, "week (1-53) and year are required")
		return
	}

	report, err := h.reportUC.WeeklyReport(r.Context(), callerID(r), week, year)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Weekly report generated successfully", dto.PeriodReportFromDomain(report))
}

// Yearly summarizes a full calendar year.
func (h *DashboardHandler) Yearly(w http.ResponseWriter, r *http.Request) {
	year, ok := parseIntQuery(r, "year")
	if !ok {
		writeBadRequest(w, "year is required")
		return
	}

	report, err := h.reportUC.YearlyReport(r.Context(), callerID(r), year)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Yearly report generated successfully", dto.PeriodReportFromDomain(report))
}

// Category breaks down the full history by category.
func (h *DashboardHandler) Category(w http.ResponseWriter, r *http.Request) {
	report, err := h.reportUC.CategoryReport(r.Context(), callerID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Category report generated successfully", dto.CategoryReportFromDomain(report))
}

func parseIntQuery(r *http.Request, key string) (int, bool) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return 0, false
	}

	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}

	return n, true
}
