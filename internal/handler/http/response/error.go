package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/sdgtech/payroll-backend-go/internal/domain/employee"
	"github.com/sdgtech/payroll-backend-go/internal/domain/payroll"
	"github.com/sdgtech/payroll-backend-go/internal/pkg/docstore"
	"github.com/sdgtech/payroll-backend-go/internal/pkg/storage"
	"github.com/sdgtech/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeExists):
		Conflict(w, "Employee already exists")
	case errors.Is(err, employee.ErrInvalidStatus):
		BadRequest(w, err.Error(), nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrollRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrPayrollRecordAlreadyExists):
		Conflict(w, "Payroll record already exists for this period")
	case errors.Is(err, payroll.ErrInvalidRecordID):
		BadRequest(w, "Invalid payroll record id", nil)
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)

	// Archive errors
	case errors.Is(err, storage.ErrFileNotFound):
		NotFound(w, "File not found")
	case errors.Is(err, storage.ErrInvalidPath):
		BadRequest(w, "Invalid file path", nil)

	// Store errors
	case errors.Is(err, docstore.ErrStoreUnavailable):
		slog.Error("document store unavailable", "error", err)
		ServiceUnavailable(w, "Payroll workbook is unavailable, try again later")

	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
