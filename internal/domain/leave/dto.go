package leave

import "github.com/shopspring/decimal"

type LeaveRecordResponse struct {
	EmployeeID string          `json:"employee_id"`
	Date       string          `json:"date"`
	Reason     string          `json:"reason"`
	Days       decimal.Decimal `json:"days"`
}

type ListLeaveRecordResponse struct {
	EmployeeID string                `json:"employee_id"`
	TotalDays  decimal.Decimal       `json:"total_days"`
	Records    []LeaveRecordResponse `json:"records"`
}

func NewLeaveRecordResponse(r LeaveRecord) LeaveRecordResponse {
	resp := LeaveRecordResponse{
		EmployeeID: r.EmployeeID,
		Reason:     r.Reason,
		Days:       r.Days,
	}
	if !r.Date.IsZero() {
		resp.Date = r.Date.Format("2006-01-02")
	}
	return resp
}
