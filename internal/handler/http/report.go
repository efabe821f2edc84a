package http

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/sdgtech/payroll-backend-go/internal/domain/report"
	"github.com/sdgtech/payroll-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	// GetPayrollRegister returns the register of a period as JSON
	GetPayrollRegister(w http.ResponseWriter, r *http.Request)
	// ExportPayrollRegister downloads the register of a period as CSV
	ExportPayrollRegister(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

func registerRequest(r *http.Request) report.PayrollRegisterRequest {
	req := report.PayrollRegisterRequest{
		Month:    r.URL.Query().Get("month"),
		OnlyPaid: boolQuery(r, "only_paid"),
	}
	req.Year, _ = parseYear(r.URL.Query().Get("year"))
	return req
}

// GetPayrollRegister handles GET /reports/payroll-register?month=&year=&only_paid=
func (h *reportHandlerImpl) GetPayrollRegister(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.PayrollRegister(r.Context(), registerRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{TotalItems: len(result.Rows)})
}

// ExportPayrollRegister handles GET /reports/payroll-register/export?month=&year=&only_paid=
func (h *reportHandlerImpl) ExportPayrollRegister(w http.ResponseWriter, r *http.Request) {
	req := registerRequest(r)

	// Buffer so a failed export can still be answered with a JSON error.
	var buf bytes.Buffer
	if err := h.reportService.ExportPayrollRegisterCSV(r.Context(), req, &buf); err != nil {
		response.HandleError(w, err)
		return
	}

	period := req.Period()
	fileName := fmt.Sprintf("payroll_register_%s_%d.csv", period.Label(), period.Year)
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
