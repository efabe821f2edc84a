package leave

import "context"

type LeaveService interface {
	// ListByEmployee returns the employee's leave records, oldest first
	ListByEmployee(ctx context.Context, employeeID string) (ListLeaveRecordResponse, error)
}
