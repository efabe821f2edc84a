package employee

import (
	"context"
	"iter"
)

// EmployeeService defines the employee directory operations
type EmployeeService interface {
	// Add inserts a new Active employee with no increment or bonus history
	Add(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// Get returns a single employee by name
	Get(ctx context.Context, name string) (EmployeeResponse, error)

	// Update merges the provided fields into an existing employee
	Update(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// Remove deletes the employee. Payroll records referencing the name are kept.
	Remove(ctx context.Context, name string) error

	// List yields employees matching filter. Each range over the sequence reads a fresh snapshot.
	List(ctx context.Context, filter Filter) iter.Seq[Employee]

	// ApplyIncrement raises the basic salary by a percentage and records it as the last increment
	ApplyIncrement(ctx context.Context, req ApplyIncrementRequest) (EmployeeResponse, error)

	// RecordBonus records the employee's last bonus
	RecordBonus(ctx context.Context, req RecordBonusRequest) (EmployeeResponse, error)
}
