package leave

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/sdgtech/payroll-backend-go/internal/domain/leave"
	"github.com/sdgtech/payroll-backend-go/internal/repository/workbook"
)

type LeaveServiceImpl struct {
	workbook *workbook.Workbook
}

func NewLeaveService(wb *workbook.Workbook) leave.LeaveService {
	return &LeaveServiceImpl{workbook: wb}
}

func (l *LeaveServiceImpl) ListByEmployee(ctx context.Context, employeeID string) (leave.ListLeaveRecordResponse, error) {
	var records []leave.LeaveRecord
	err := l.workbook.WithSnapshot(ctx, func(sess *workbook.Session) error {
		records = sess.Leaves().ListByEmployee(employeeID)
		return nil
	})
	if err != nil {
		return leave.ListLeaveRecordResponse{}, err
	}

	resp := leave.ListLeaveRecordResponse{
		EmployeeID: employeeID,
		TotalDays:  decimal.Zero,
		Records:    make([]leave.LeaveRecordResponse, 0, len(records)),
	}
	for _, r := range records {
		resp.TotalDays = resp.TotalDays.Add(r.Days)
		resp.Records = append(resp.Records, leave.NewLeaveRecordResponse(r))
	}
	return resp, nil
}
