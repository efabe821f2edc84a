package http

import (
	"net/http"

	"github.com/sdgtech/payroll-backend-go/internal/domain/dashboard"
	"github.com/sdgtech/payroll-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	// GetDashboard returns combined dashboard data
	GetDashboard(w http.ResponseWriter, r *http.Request)
	// GetMonthlyTotal returns the reporting-currency total of a month
	GetMonthlyTotal(w http.ResponseWriter, r *http.Request)
	// GetYearSeries returns paid totals for every month of a year
	GetYearSeries(w http.ResponseWriter, r *http.Request)
	// GetHeadcount returns paid records against active employees
	GetHeadcount(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// GetDashboard handles GET /dashboard?month=&year=
func (h *dashboardHandlerImpl) GetDashboard(w http.ResponseWriter, r *http.Request) {
	month, year, err := monthYearFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.dashboardService.GetDashboard(r.Context(), month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMonthlyTotal handles GET /dashboard/monthly-total?month=&year=&only_paid=
func (h *dashboardHandlerImpl) GetMonthlyTotal(w http.ResponseWriter, r *http.Request) {
	month, year, err := monthYearFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.dashboardService.MonthlyTotal(r.Context(), month, year, boolQuery(r, "only_paid"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetYearSeries handles GET /dashboard/year-series?year=
func (h *dashboardHandlerImpl) GetYearSeries(w http.ResponseWriter, r *http.Request) {
	year, err := yearFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.dashboardService.YearSeries(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetHeadcount handles GET /dashboard/headcount?month=&year=
func (h *dashboardHandlerImpl) GetHeadcount(w http.ResponseWriter, r *http.Request) {
	month, year, err := monthYearFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.dashboardService.HeadcountSummary(r.Context(), month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
