package workbook

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/sdgtech/payroll-backend-go/internal/domain/currency"
	"github.com/sdgtech/payroll-backend-go/internal/domain/employee"
	"github.com/sdgtech/payroll-backend-go/internal/domain/leave"
	"github.com/sdgtech/payroll-backend-go/internal/domain/payroll"
	"github.com/sdgtech/payroll-backend-go/internal/pkg/docstore"
)

const dateLayout = "2006-01-02"

var (
	employeeColumns = []string{
		"Name", "Designation", "JoinDate", "DateOfBirth", "Currency", "BankName",
		"AccountNumber", "BasicSalary", "Status", "Remark", "LastIncrement", "LastBonus",
	}
	recordColumns = []string{
		"ID", "EmployeeID", "Month", "Year", "Earnings", "Deductions", "NetSalary",
		"Currency", "PaymentDate", "Remarks", "Status", "ExchangeRate",
	}
	settingsColumns = []string{"Key", "Value"}
)

const settingDefaultExchangeRate = "DefaultExchangeRate"

// ========== EMPLOYEES ==========

func encodeEmployees(employees []employee.Employee) docstore.Table {
	t := docstore.NewTable(employeeColumns...)
	for _, e := range employees {
		t.Append(
			e.Name,
			e.Designation,
			formatDate(e.JoinDate),
			formatDate(e.DateOfBirth),
			string(e.Currency),
			e.BankName,
			e.AccountNumber,
			e.BasicSalary.String(),
			string(e.Status),
			e.Remark,
			encodeBlob(e.LastIncrement),
			encodeBlob(e.LastBonus),
		)
	}
	return t
}

func decodeEmployees(t docstore.Table) []employee.Employee {
	employees := make([]employee.Employee, 0, len(t.Rows))
	for _, row := range t.Rows {
		name := strings.TrimSpace(row["Name"])
		if name == "" {
			slog.Warn("skipping employee row without name")
			continue
		}

		e := employee.Employee{
			Name:          name,
			Designation:   row["Designation"],
			JoinDate:      parseDate(row["JoinDate"], "JoinDate"),
			DateOfBirth:   parseDate(row["DateOfBirth"], "DateOfBirth"),
			Currency:      currency.Code(strings.ToUpper(strings.TrimSpace(row["Currency"]))),
			BankName:      row["BankName"],
			AccountNumber: row["AccountNumber"],
			BasicSalary:   parseDecimal(row["BasicSalary"], "BasicSalary"),
			Status:        employee.Status(row["Status"]),
			Remark:        row["Remark"],
		}
		if e.Status == "" {
			e.Status = employee.StatusActive
		}
		if !e.Status.IsValid() {
			slog.Warn("employee has unknown status", "employee", name, "status", e.Status)
		}

		var inc employee.Increment
		if decodeBlob(row["LastIncrement"], &inc, "LastIncrement") {
			e.LastIncrement = &inc
		}
		var bonus employee.Bonus
		if decodeBlob(row["LastBonus"], &bonus, "LastBonus") {
			e.LastBonus = &bonus
		}

		employees = append(employees, e)
	}
	return employees
}

// ========== RECORDS ==========

func encodeRecords(records []payroll.PayrollRecord) docstore.Table {
	t := docstore.NewTable(recordColumns...)
	for _, r := range records {
		rate := ""
		if !r.ExchangeRate.IsZero() {
			rate = r.ExchangeRate.String()
		}
		t.Append(
			r.ID(),
			r.Key.EmployeeID,
			r.Key.Period.Label(),
			strconv.Itoa(r.Key.Period.Year),
			encodeBlob(nonNil(r.Earnings)),
			encodeBlob(nonNil(r.Deductions)),
			r.NetSalary.StringFixed(2),
			string(r.Currency),
			formatDate(r.PaymentDate),
			r.Remarks,
			string(r.Status),
			rate,
		)
	}
	return t
}

func decodeRecords(t docstore.Table) []payroll.PayrollRecord {
	records := make([]payroll.PayrollRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		key, ok := decodeRecordKey(row)
		if !ok {
			slog.Warn("skipping payroll record with unreadable key", "id", row["ID"])
			continue
		}

		r := payroll.PayrollRecord{
			Key:          key,
			NetSalary:    parseDecimal(row["NetSalary"], "NetSalary"),
			Currency:     currency.Code(strings.ToUpper(strings.TrimSpace(row["Currency"]))),
			PaymentDate:  parseDate(row["PaymentDate"], "PaymentDate"),
			Remarks:      row["Remarks"],
			Status:       payroll.PayrollStatus(row["Status"]),
			ExchangeRate: parseDecimal(row["ExchangeRate"], "ExchangeRate"),
		}
		decodeBlob(row["Earnings"], &r.Earnings, "Earnings")
		decodeBlob(row["Deductions"], &r.Deductions, "Deductions")
		if !r.Status.IsValid() {
			slog.Warn("payroll record has unknown status, treating as Unpaid", "id", key.String(), "status", r.Status)
			r.Status = payroll.PayrollStatusUnpaid
		}

		records = append(records, r)
	}
	return records
}

// decodeRecordKey prefers the typed columns and falls back to the ID cell.
func decodeRecordKey(row docstore.Row) (payroll.RecordKey, bool) {
	if emp := strings.TrimSpace(row["EmployeeID"]); emp != "" {
		month, err := payroll.ParseMonth(row["Month"])
		year, yerr := strconv.Atoi(strings.TrimSpace(row["Year"]))
		if err == nil && yerr == nil {
			return payroll.RecordKey{EmployeeID: emp, Period: payroll.NewPeriod(month, year)}, true
		}
	}
	key, err := payroll.ParseRecordKey(strings.TrimSpace(row["ID"]))
	if err != nil {
		return payroll.RecordKey{}, false
	}
	return key, true
}

// ========== SETTINGS ==========

func encodeSettings(s payroll.Settings) docstore.Table {
	t := docstore.NewTable(settingsColumns...)
	t.Append(settingDefaultExchangeRate, s.DefaultExchangeRate.String())
	return t
}

// decodeSettings overlays stored values on defaults.
func decodeSettings(t docstore.Table, defaults payroll.Settings) payroll.Settings {
	s := defaults
	for _, row := range t.Rows {
		if row["Key"] == settingDefaultExchangeRate && strings.TrimSpace(row["Value"]) != "" {
			s.DefaultExchangeRate = parseDecimal(row["Value"], settingDefaultExchangeRate)
		}
	}
	return s
}

// ========== LEAVE RECORDS ==========

func decodeLeaveRecords(t docstore.Table) []leave.LeaveRecord {
	records := make([]leave.LeaveRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		records = append(records, leave.LeaveRecord{
			EmployeeID: strings.TrimSpace(row["EmployeeID"]),
			Date:       parseDate(row["Date"], "Date"),
			Reason:     row["Reason"],
			Days:       parseDecimal(row["Days"], "Days"),
		})
	}
	return records
}

// ========== CELLS ==========

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// parseDate returns the zero time for blank or malformed cells.
func parseDate(cell, column string) time.Time {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return time.Time{}
	}
	t, err := time.Parse(dateLayout, cell)
	if err != nil {
		slog.Warn("malformed date cell", "column", column, "value", cell)
		return time.Time{}
	}
	return t
}

// parseDecimal returns zero for blank or malformed cells.
func parseDecimal(cell, column string) decimal.Decimal {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cell)
	if err != nil {
		slog.Warn("malformed numeric cell", "column", column, "value", cell)
		return decimal.Zero
	}
	return d
}

func encodeBlob(v any) string {
	switch x := v.(type) {
	case *employee.Increment:
		if x == nil {
			return ""
		}
	case *employee.Bonus:
		if x == nil {
			return ""
		}
	}
	b, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to encode blob", "error", err)
		return ""
	}
	return string(b)
}

// decodeBlob reports whether a non-empty cell was decoded into dst.
func decodeBlob(cell string, dst any, column string) bool {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return false
	}
	if err := json.Unmarshal([]byte(cell), dst); err != nil {
		slog.Warn("malformed encoded cell", "column", column, "error", err)
		return false
	}
	return true
}

func nonNil(items []payroll.LineItem) []payroll.LineItem {
	if items == nil {
		return []payroll.LineItem{}
	}
	return items
}
