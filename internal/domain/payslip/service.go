package payslip

import "context"

type PayslipService interface {
	// Generate renders the payslip of a record and archives a copy
	Generate(ctx context.Context, recordID string) (PayslipFile, error)
}
