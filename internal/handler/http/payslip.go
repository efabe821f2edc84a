package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sdgtech/payroll-backend-go/internal/domain/payslip"
	"github.com/sdgtech/payroll-backend-go/internal/handler/http/response"
)

type PayslipHandler interface {
	// DownloadPayslip renders the payslip of a record
	DownloadPayslip(w http.ResponseWriter, r *http.Request)
}

type payslipHandlerImpl struct {
	payslipService payslip.PayslipService
}

func NewPayslipHandler(payslipService payslip.PayslipService) PayslipHandler {
	return &payslipHandlerImpl{payslipService: payslipService}
}

// DownloadPayslip handles GET /payroll/records/{id}/payslip
func (h *payslipHandlerImpl) DownloadPayslip(w http.ResponseWriter, r *http.Request) {
	file, err := h.payslipService.Generate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", file.FileName))
	if file.URL != "" {
		w.Header().Set("X-Archive-URL", file.URL)
	}
	if len(file.Diagnostics) > 0 {
		w.Header().Set("X-Payslip-Diagnostics", strings.Join(file.Diagnostics, "; "))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Content)
}
