package report

import (
	"context"
	"io"
)

// ReportService defines the interface for report generation
type ReportService interface {
	// PayrollRegister lists every record of a period with reporting-currency net pay
	PayrollRegister(ctx context.Context, req PayrollRegisterRequest) (PayrollRegister, error)

	// ExportPayrollRegisterCSV writes the register as CSV
	ExportPayrollRegisterCSV(ctx context.Context, req PayrollRegisterRequest, w io.Writer) error
}
