package payslip

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sdgtech/payroll-backend-go/internal/domain/currency"
	"github.com/sdgtech/payroll-backend-go/internal/domain/employee"
	"github.com/sdgtech/payroll-backend-go/internal/domain/payroll"
	payslipdomain "github.com/sdgtech/payroll-backend-go/internal/domain/payslip"
	"github.com/sdgtech/payroll-backend-go/internal/pkg/amountwords"
	"github.com/sdgtech/payroll-backend-go/internal/pkg/payslip"
	"github.com/sdgtech/payroll-backend-go/internal/pkg/storage"
	"github.com/sdgtech/payroll-backend-go/internal/repository/workbook"
)

const footerText = "This is a computer-generated payslip. No signature is required."

// Header carries the employer details printed on every payslip.
type Header struct {
	Employer  string
	Reporting currency.Code
}

type PayslipServiceImpl struct {
	workbook *workbook.Workbook
	renderer payslip.Renderer
	storage  storage.FileStorage
	header   Header
}

func NewPayslipService(wb *workbook.Workbook, renderer payslip.Renderer, storage storage.FileStorage, header Header) payslipdomain.PayslipService {
	return &PayslipServiceImpl{
		workbook: wb,
		renderer: renderer,
		storage:  storage,
		header:   header,
	}
}

func (s *PayslipServiceImpl) Generate(ctx context.Context, recordID string) (payslipdomain.PayslipFile, error) {
	key, err := payroll.ParseRecordKey(recordID)
	if err != nil {
		return payslipdomain.PayslipFile{}, err
	}

	var (
		record payroll.PayrollRecord
		emp    employee.Employee
		empErr error
	)
	err = s.workbook.WithSnapshot(ctx, func(sess *workbook.Session) error {
		var err error
		record, err = sess.Payroll().GetByKey(key)
		if err != nil {
			return err
		}
		// A removed employee still gets a payslip, minus the employee block.
		emp, empErr = sess.Employees().GetByName(key.EmployeeID)
		return nil
	})
	if err != nil {
		return payslipdomain.PayslipFile{}, err
	}

	doc := BuildDocument(s.header, record, emp, empErr)
	content, err := s.renderer.Render(doc)
	if err != nil {
		return payslipdomain.PayslipFile{}, err
	}

	file := payslipdomain.PayslipFile{
		RecordID:    record.ID(),
		FileName:    record.ID() + ".pdf",
		ContentType: s.renderer.ContentType(),
		Content:     content,
		Diagnostics: doc.Diagnostics(),
	}
	s.archive(ctx, &file, key)

	return file, nil
}

// archive stores a copy of the payslip. Archiving is best effort; the
// rendered payslip is returned either way.
func (s *PayslipServiceImpl) archive(ctx context.Context, file *payslipdomain.PayslipFile, key payroll.RecordKey) {
	if s.storage == nil {
		return
	}

	path := fmt.Sprintf("payslips/%d/%s/%s", key.Period.Year, key.Period.Label(), file.FileName)
	stored, err := s.storage.Upload(ctx, bytes.NewReader(file.Content), path, file.ContentType)
	if err != nil {
		slog.Error("failed to archive payslip", "id", file.RecordID, "error", err)
		return
	}
	file.ArchivePath = stored

	url, err := s.storage.GetURL(ctx, stored)
	if err != nil {
		slog.Warn("failed to resolve payslip url", "path", stored, "error", err)
		return
	}
	file.URL = url
}

// BuildDocument lays out a payslip for record. empErr, when set, replaces the
// employee block with a diagnostic.
func BuildDocument(header Header, record payroll.PayrollRecord, emp employee.Employee, empErr error) payslip.Document {
	code := record.Currency

	b := payslip.NewBuilder("PAYSLIP")

	b.Section("Employer", func() ([]payslip.Line, error) {
		return []payslip.Line{{Label: header.Employer}}, nil
	})

	b.Section("Pay Period", func() ([]payslip.Line, error) {
		return []payslip.Line{{Label: "Period", Value: record.Key.Period.String()}}, nil
	})

	b.Section("Employee", func() ([]payslip.Line, error) {
		if empErr != nil {
			return nil, fmt.Errorf("%s: %w", record.Key.EmployeeID, empErr)
		}
		return []payslip.Line{
			{Label: "Name", Value: emp.Name},
			{Label: "Designation", Value: emp.Designation},
			{Label: "Join Date", Value: formatDate(emp.JoinDate)},
			{Label: "Payment Date", Value: formatDate(record.PaymentDate)},
			{Label: "Currency", Value: string(code)},
			{Label: "Bank", Value: emp.BankName},
			{Label: "Account Number", Value: emp.AccountNumber},
		}, nil
	})

	b.Section("Exchange Rate", func() ([]payslip.Line, error) {
		if code == header.Reporting || record.ExchangeRate.IsZero() {
			return nil, nil
		}
		return []payslip.Line{{
			Label: "Exchange Rate",
			Value: fmt.Sprintf("1 %s = %s %s", code, record.ExchangeRate.String(), header.Reporting),
		}}, nil
	})

	b.Section("Earnings", func() ([]payslip.Line, error) {
		return itemLines(record.Earnings, code)
	})

	b.Section("Deductions", func() ([]payslip.Line, error) {
		return itemLines(record.Deductions, code)
	})

	b.Section("Totals", func() ([]payslip.Line, error) {
		return []payslip.Line{
			{Label: "Total Earnings", Value: FormatMoney(record.TotalEarnings(), code)},
			{Label: "Total Deductions", Value: FormatMoney(record.TotalDeductions(), code)},
		}, nil
	})

	b.Emphasized("Net Payable", func() ([]payslip.Line, error) {
		return []payslip.Line{{Label: "Net Payable", Value: FormatMoney(record.NetSalary, code)}}, nil
	})

	b.Section("Amount in Words", func() ([]payslip.Line, error) {
		if _, err := currency.Parse(string(code)); err != nil {
			return nil, err
		}
		units := currency.UnitsOf(code)
		words, err := amountwords.Spell(record.NetSalary, units.Major, units.Minor)
		if err != nil {
			return nil, err
		}
		return []payslip.Line{{Label: words}}, nil
	})

	b.Section("Remark", func() ([]payslip.Line, error) {
		if strings.TrimSpace(record.Remarks) == "" {
			return nil, nil
		}
		return []payslip.Line{{Label: record.Remarks}}, nil
	})

	return b.Footer(footerText).Build()
}

var errNegativeAmount = errors.New("negative line item amount")

// itemLines lists items with a non-zero amount.
func itemLines(items []payroll.LineItem, code currency.Code) ([]payslip.Line, error) {
	var lines []payslip.Line
	for _, item := range items {
		if item.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: %s", errNegativeAmount, item.Description)
		}
		if item.Amount.IsZero() {
			continue
		}
		lines = append(lines, payslip.Line{Label: item.Description, Value: FormatMoney(item.Amount, code)})
	}
	return lines, nil
}

// FormatMoney renders an amount with two decimals and thousands separators, e.g. "MYR 3,300.00".
func FormatMoney(amount decimal.Decimal, code currency.Code) string {
	s := amount.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	sign := ""
	if amount.IsNegative() {
		sign = "-"
	}
	return fmt.Sprintf("%s %s%s.%s", code, sign, b.String(), frac)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02 Jan 2006")
}
