package payroll

import "context"

// PayrollService is the record lifecycle engine.
type PayrollService interface {
	// Settings
	GetSettings(ctx context.Context) (SettingsResponse, error)
	UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error)

	// Generate creates an Unpaid record for every eligible employee that has none
	// for the period and returns how many were created.
	Generate(ctx context.Context, req GeneratePayrollRequest) (GeneratePayrollResponse, error)

	// Lookup returns the record for the exact (employee, period) key.
	Lookup(ctx context.Context, key RecordKey) (PayrollRecordResponse, error)

	// GetByID resolves a serialized record id.
	GetByID(ctx context.Context, id string) (PayrollRecordResponse, error)

	// LastRecord returns the chronologically latest record of the employee.
	LastRecord(ctx context.Context, employeeID string) (PayrollRecordResponse, error)

	// ListRecords returns records matching the filter.
	ListRecords(ctx context.Context, filter PayrollFilter) ([]PayrollRecordResponse, error)

	// Save replaces the record at the key and resets it to Unpaid.
	Save(ctx context.Context, req SavePayrollRecordRequest) (PayrollRecordResponse, error)

	// SetStatus sets the payment status; setting the current status is a no-op.
	SetStatus(ctx context.Context, req UpdateStatusRequest) (PayrollRecordResponse, error)

	// Toggle flips Paid and Unpaid.
	Toggle(ctx context.Context, id string) (PayrollRecordResponse, error)
}
