package payroll

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sdgtech/payroll-backend-go/internal/domain/currency"
	"github.com/shopspring/decimal"
)

// Settings - process-wide payroll configuration
type Settings struct {
	// DefaultExchangeRate converts USD records to the reporting currency
	// whenever a record carries no rate of its own.
	DefaultExchangeRate decimal.Decimal
}

// Period is a calendar month of a year.
type Period struct {
	Month time.Month
	Year  int
}

func NewPeriod(month time.Month, year int) Period {
	return Period{Month: month, Year: year}
}

// Label is the month name used in record identifiers and payslips, e.g. "January".
func (p Period) Label() string {
	return p.Month.String()
}

func (p Period) String() string {
	return fmt.Sprintf("%s %d", p.Month, p.Year)
}

// Compare orders periods chronologically by (year, month).
func (p Period) Compare(o Period) int {
	switch {
	case p.Year != o.Year:
		if p.Year < o.Year {
			return -1
		}
		return 1
	case p.Month != o.Month:
		if p.Month < o.Month {
			return -1
		}
		return 1
	}
	return 0
}

func (p Period) Before(o Period) bool {
	return p.Compare(o) < 0
}

// LastDay returns the last calendar day of the period.
func (p Period) LastDay() time.Time {
	return time.Date(p.Year, p.Month+1, 0, 0, 0, 0, 0, time.UTC)
}

func (p Period) IsValid() bool {
	return p.Month >= time.January && p.Month <= time.December && p.Year > 0
}

// ParseMonth accepts a full English month name ("January") or its number ("1").
func ParseMonth(s string) (time.Month, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 12 {
			return 0, ErrInvalidPeriod
		}
		return time.Month(n), nil
	}
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(m.String(), s) {
			return m, nil
		}
	}
	return 0, ErrInvalidPeriod
}

// RecordKey identifies the single payroll record of an employee for a period.
type RecordKey struct {
	EmployeeID string
	Period     Period
}

// String renders the key as stored in the Records relation: {employee}_{Month}_{year}.
func (k RecordKey) String() string {
	return fmt.Sprintf("%s_%s_%d", k.EmployeeID, k.Period.Label(), k.Period.Year)
}

// ParseRecordKey is the inverse of RecordKey.String. Employee ids may contain
// underscores; month and year are always the last two segments.
func ParseRecordKey(id string) (RecordKey, error) {
	yearSep := strings.LastIndex(id, "_")
	if yearSep <= 0 {
		return RecordKey{}, fmt.Errorf("%w: %q", ErrInvalidRecordID, id)
	}
	monthSep := strings.LastIndex(id[:yearSep], "_")
	if monthSep <= 0 {
		return RecordKey{}, fmt.Errorf("%w: %q", ErrInvalidRecordID, id)
	}

	year, err := strconv.Atoi(id[yearSep+1:])
	if err != nil {
		return RecordKey{}, fmt.Errorf("%w: %q", ErrInvalidRecordID, id)
	}
	month, err := ParseMonth(id[monthSep+1 : yearSep])
	if err != nil {
		return RecordKey{}, fmt.Errorf("%w: %q", ErrInvalidRecordID, id)
	}

	return RecordKey{EmployeeID: id[:monthSep], Period: NewPeriod(month, year)}, nil
}

// LineItem is one earning or deduction row on a payslip.
type LineItem struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// Sum adds up the amounts of items.
func Sum(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount)
	}
	return total
}

// PayrollStatus enum
type PayrollStatus string

const (
	PayrollStatusUnpaid PayrollStatus = "Unpaid"
	PayrollStatusPaid   PayrollStatus = "Paid"
)

func (s PayrollStatus) IsValid() bool {
	return s == PayrollStatusUnpaid || s == PayrollStatusPaid
}

// Toggle is the only transition between the two states.
func (s PayrollStatus) Toggle() PayrollStatus {
	if s == PayrollStatusPaid {
		return PayrollStatusUnpaid
	}
	return PayrollStatusPaid
}

// PayrollRecord - one employee's pay for one period
type PayrollRecord struct {
	Key          RecordKey
	Earnings     []LineItem
	Deductions   []LineItem
	NetSalary    decimal.Decimal
	Currency     currency.Code
	PaymentDate  time.Time
	Remarks      string
	Status       PayrollStatus
	ExchangeRate decimal.Decimal
}

func (r PayrollRecord) ID() string {
	return r.Key.String()
}

func (r PayrollRecord) TotalEarnings() decimal.Decimal {
	return Sum(r.Earnings)
}

func (r PayrollRecord) TotalDeductions() decimal.Decimal {
	return Sum(r.Deductions)
}

// Recalculate sets NetSalary from the line items.
func (r *PayrollRecord) Recalculate() {
	r.NetSalary = r.TotalEarnings().Sub(r.TotalDeductions())
}

// RecordFilter narrows record listings. Zero-valued fields match everything.
type RecordFilter struct {
	EmployeeID string
	Period     *Period
	Status     *PayrollStatus
}

func (f RecordFilter) Match(r PayrollRecord) bool {
	if f.EmployeeID != "" && r.Key.EmployeeID != f.EmployeeID {
		return false
	}
	if f.Period != nil && r.Key.Period != *f.Period {
		return false
	}
	if f.Status != nil && r.Status != *f.Status {
		return false
	}
	return true
}
