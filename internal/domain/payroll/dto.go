package payroll

import (
	"time"

	"github.com/sdgtech/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// ========== SETTINGS DTOs ==========

type SettingsResponse struct {
	DefaultExchangeRate decimal.Decimal `json:"default_exchange_rate"`
}

type UpdateSettingsRequest struct {
	DefaultExchangeRate *decimal.Decimal `json:"default_exchange_rate,omitempty"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.DefaultExchangeRate != nil && !r.DefaultExchangeRate.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "default_exchange_rate", Message: "must be greater than zero"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== PAYROLL RECORD DTOs ==========

type GeneratePayrollRequest struct {
	Month           string `json:"month"`
	Year            int    `json:"year"`
	IncludeInactive bool   `json:"include_inactive,omitempty"`
}

func (r *GeneratePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, err := ParseMonth(r.Month); err != nil {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be a month name or 1-12"})
	}
	if r.Year < 1900 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be 1900 or later"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Period assumes Validate has passed.
func (r *GeneratePayrollRequest) Period() Period {
	month, _ := ParseMonth(r.Month)
	return NewPeriod(month, r.Year)
}

type GeneratePayrollResponse struct {
	Period  string `json:"period"`
	Created int    `json:"created"`
}

type LineItemRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// SavePayrollRecordRequest replaces the whole record for (employee, period).
type SavePayrollRecordRequest struct {
	EmployeeID   string            `json:"employee_id"`
	Month        string            `json:"month"`
	Year         int               `json:"year"`
	Earnings     []LineItemRequest `json:"earnings"`
	Deductions   []LineItemRequest `json:"deductions"`
	Remarks      string            `json:"remarks"`
	PaymentDate  string            `json:"payment_date"`
	ExchangeRate *decimal.Decimal  `json:"exchange_rate,omitempty"`
}

func (r *SavePayrollRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if _, err := ParseMonth(r.Month); err != nil {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be a month name or 1-12"})
	}
	if r.Year < 1900 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be 1900 or later"})
	}
	errs = append(errs, validateLineItems("earnings", r.Earnings)...)
	errs = append(errs, validateLineItems("deductions", r.Deductions)...)
	if validator.IsEmpty(r.PaymentDate) {
		errs = append(errs, validator.ValidationError{Field: "payment_date", Message: "is required"})
	} else if _, ok := validator.IsValidDate(r.PaymentDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "payment_date", Message: "must be in YYYY-MM-DD format"})
	}
	if r.ExchangeRate != nil && r.ExchangeRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "exchange_rate", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateLineItems(field string, items []LineItemRequest) validator.ValidationErrors {
	var errs validator.ValidationErrors
	for i, item := range items {
		prefix := field + "[" + validator.Itoa(i) + "]"
		if validator.IsEmpty(item.Description) {
			errs = append(errs, validator.ValidationError{Field: prefix + ".description", Message: "is required"})
		}
		if item.Amount.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: prefix + ".amount", Message: "must be non-negative"})
		}
	}
	return errs
}

// Key assumes Validate has passed.
func (r *SavePayrollRecordRequest) Key() RecordKey {
	month, _ := ParseMonth(r.Month)
	return RecordKey{EmployeeID: r.EmployeeID, Period: NewPeriod(month, r.Year)}
}

func (r *SavePayrollRecordRequest) ParsedPaymentDate() time.Time {
	t, _ := time.Parse(dateLayout, r.PaymentDate)
	return t
}

func ToLineItems(reqs []LineItemRequest) []LineItem {
	items := make([]LineItem, 0, len(reqs))
	for _, r := range reqs {
		items = append(items, LineItem{Description: r.Description, Amount: r.Amount})
	}
	return items
}

type UpdateStatusRequest struct {
	RecordID string `json:"-"`
	Status   string `json:"status"`
}

func (r *UpdateStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RecordID) {
		errs = append(errs, validator.ValidationError{Field: "record_id", Message: "is required"})
	}
	if !PayrollStatus(r.Status).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be Paid or Unpaid"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LineItemResponse struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

type PayrollRecordResponse struct {
	ID              string             `json:"id"`
	EmployeeID      string             `json:"employee_id"`
	Month           string             `json:"month"`
	Year            int                `json:"year"`
	Earnings        []LineItemResponse `json:"earnings"`
	Deductions      []LineItemResponse `json:"deductions"`
	TotalEarnings   decimal.Decimal    `json:"total_earnings"`
	TotalDeductions decimal.Decimal    `json:"total_deductions"`
	NetSalary       decimal.Decimal    `json:"net_salary"`
	Currency        string             `json:"currency"`
	PaymentDate     string             `json:"payment_date"`
	Remarks         string             `json:"remarks"`
	Status          string             `json:"status"`
	ExchangeRate    decimal.Decimal    `json:"exchange_rate"`
}

func NewPayrollRecordResponse(r PayrollRecord) PayrollRecordResponse {
	resp := PayrollRecordResponse{
		ID:              r.ID(),
		EmployeeID:      r.Key.EmployeeID,
		Month:           r.Key.Period.Label(),
		Year:            r.Key.Period.Year,
		Earnings:        toLineItemResponses(r.Earnings),
		Deductions:      toLineItemResponses(r.Deductions),
		TotalEarnings:   r.TotalEarnings(),
		TotalDeductions: r.TotalDeductions(),
		NetSalary:       r.NetSalary,
		Currency:        string(r.Currency),
		Remarks:         r.Remarks,
		Status:          string(r.Status),
		ExchangeRate:    r.ExchangeRate,
	}
	if !r.PaymentDate.IsZero() {
		resp.PaymentDate = r.PaymentDate.Format(dateLayout)
	}
	return resp
}

func NewPayrollRecordResponses(records []PayrollRecord) []PayrollRecordResponse {
	result := make([]PayrollRecordResponse, 0, len(records))
	for _, r := range records {
		result = append(result, NewPayrollRecordResponse(r))
	}
	return result
}

func toLineItemResponses(items []LineItem) []LineItemResponse {
	result := make([]LineItemResponse, 0, len(items))
	for _, item := range items {
		result = append(result, LineItemResponse{Description: item.Description, Amount: item.Amount})
	}
	return result
}

type PayrollFilter struct {
	EmployeeID string `json:"employee_id,omitempty"`
	Month      string `json:"month,omitempty"`
	Year       int    `json:"year,omitempty"`
	Status     string `json:"status,omitempty"`
}

func (f *PayrollFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Month != "" {
		if _, err := ParseMonth(f.Month); err != nil {
			errs = append(errs, validator.ValidationError{Field: "month", Message: "must be a month name or 1-12"})
		}
		if f.Year == 0 {
			errs = append(errs, validator.ValidationError{Field: "year", Message: "is required when month is set"})
		}
	}
	if f.Status != "" && !PayrollStatus(f.Status).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be Paid or Unpaid"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RecordFilter assumes Validate has passed.
func (f *PayrollFilter) RecordFilter() RecordFilter {
	rf := RecordFilter{EmployeeID: f.EmployeeID}
	if f.Month != "" {
		month, _ := ParseMonth(f.Month)
		p := NewPeriod(month, f.Year)
		rf.Period = &p
	}
	if f.Status != "" {
		s := PayrollStatus(f.Status)
		rf.Status = &s
	}
	return rf
}
