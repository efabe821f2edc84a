package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

// LeaveRecord is read-only context shown next to payroll. It takes no part in pay computation.
type LeaveRecord struct {
	EmployeeID string
	Date       time.Time
	Reason     string
	Days       decimal.Decimal
}
