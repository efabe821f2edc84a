package fixtures

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sdgtech/payroll-backend-go/internal/domain/currency"
	"github.com/sdgtech/payroll-backend-go/internal/domain/employee"
	"github.com/sdgtech/payroll-backend-go/internal/pkg/docstore"
	"github.com/sdgtech/payroll-backend-go/internal/repository/workbook"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DemoEmployees is a small mixed-currency workforce used for local development.
func DemoEmployees() []employee.Employee {
	return []employee.Employee{
		{
			Name:          "E001",
			Designation:   "Software Engineer",
			JoinDate:      date(2022, time.March, 1),
			DateOfBirth:   date(1994, time.July, 12),
			Currency:      currency.MYR,
			BankName:      "Maybank",
			AccountNumber: "514012345678",
			BasicSalary:   decimal.NewFromInt(3000),
			Status:        employee.StatusActive,
		},
		{
			Name:          "E002",
			Designation:   "Product Designer",
			JoinDate:      date(2023, time.January, 9),
			Currency:      currency.USD,
			BankName:      "HSBC",
			AccountNumber: "001234567",
			BasicSalary:   decimal.NewFromInt(1000),
			Status:        employee.StatusActive,
		},
		{
			Name:          "E003",
			Designation:   "Finance Executive",
			JoinDate:      date(2021, time.June, 15),
			Currency:      currency.MYR,
			BankName:      "CIMB",
			AccountNumber: "8001234567",
			BasicSalary:   decimal.NewFromInt(2500),
			Status:        employee.StatusInactive,
			Remark:        "resigned",
		},
	}
}

// demoLeaves rows: EmployeeID, Date, Reason, Days
var demoLeaves = [][]string{
	{"E001", "2025-01-06", "Annual leave", "1"},
	{"E001", "2025-02-17", "Medical leave", "2"},
	{"E002", "2025-01-20", "Annual leave", "0.5"},
}

// SeedDemo adds the demo employees and leave records to store. Existing
// employees are left untouched and leave records are only written when the
// relation is empty.
func SeedDemo(ctx context.Context, wb *workbook.Workbook, store docstore.Store) error {
	err := wb.WithSession(ctx, func(s *workbook.Session) error {
		for _, e := range DemoEmployees() {
			if err := s.Employees().Create(e); err != nil && !errors.Is(err, employee.ErrEmployeeExists) {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("seed employees: %w", err)
	}

	existing, err := store.Read(ctx, docstore.RelationLeaveRecords)
	if err != nil {
		return fmt.Errorf("seed leave records: %w", err)
	}
	if !existing.IsEmpty() {
		return nil
	}

	leaves := docstore.NewTable("EmployeeID", "Date", "Reason", "Days")
	for _, row := range demoLeaves {
		leaves.Append(row...)
	}
	if err := store.Write(ctx, docstore.RelationLeaveRecords, leaves); err != nil {
		return fmt.Errorf("seed leave records: %w", err)
	}
	return nil
}
