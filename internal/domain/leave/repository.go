package leave

// LeaveRepository reads leave records of a loaded workbook session.
type LeaveRepository interface {
	ListByEmployee(employeeID string) []LeaveRecord
}
