package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sdgtech/payroll-backend-go/internal/domain/leave"
	"github.com/sdgtech/payroll-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	// ListEmployeeLeaves returns the leave records of one employee
	ListEmployeeLeaves(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &leaveHandlerImpl{leaveService: leaveService}
}

// ListEmployeeLeaves handles GET /employees/{name}/leaves
func (h *leaveHandlerImpl) ListEmployeeLeaves(w http.ResponseWriter, r *http.Request) {
	result, err := h.leaveService.ListByEmployee(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{TotalItems: len(result.Records)})
}
