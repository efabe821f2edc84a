package employee

import (
	"context"
	"iter"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sdgtech/payroll-backend-go/internal/domain/employee"
	"github.com/sdgtech/payroll-backend-go/internal/repository/workbook"
)

var hundred = decimal.NewFromInt(100)

type EmployeeServiceImpl struct {
	workbook *workbook.Workbook
}

func NewEmployeeService(wb *workbook.Workbook) employee.EmployeeService {
	return &EmployeeServiceImpl{workbook: wb}
}

func (s *EmployeeServiceImpl) Add(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	newEmployee := req.ToEntity()
	newEmployee.Status = employee.StatusActive
	newEmployee.LastIncrement = nil
	newEmployee.LastBonus = nil

	err := s.workbook.WithSession(ctx, func(sess *workbook.Session) error {
		return sess.Employees().Create(newEmployee)
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("employee added", "employee", newEmployee.Name)
	return employee.NewEmployeeResponse(newEmployee), nil
}

func (s *EmployeeServiceImpl) Get(ctx context.Context, name string) (employee.EmployeeResponse, error) {
	var e employee.Employee
	err := s.workbook.WithSnapshot(ctx, func(sess *workbook.Session) error {
		var err error
		e, err = sess.Employees().GetByName(name)
		return err
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(e), nil
}

func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	return s.modify(ctx, req.Name, func(e employee.Employee) employee.Employee {
		return req.Apply(e)
	})
}

func (s *EmployeeServiceImpl) Remove(ctx context.Context, name string) error {
	err := s.workbook.WithSession(ctx, func(sess *workbook.Session) error {
		sess.Employees().Delete(name)
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("employee removed", "employee", name)
	return nil
}

// List reads a new snapshot every time the sequence is ranged over.
func (s *EmployeeServiceImpl) List(ctx context.Context, filter employee.Filter) iter.Seq[employee.Employee] {
	return func(yield func(employee.Employee) bool) {
		var all []employee.Employee
		err := s.workbook.WithSnapshot(ctx, func(sess *workbook.Session) error {
			all = sess.Employees().All()
			return nil
		})
		if err != nil {
			slog.Warn("failed to list employees", "error", err)
			return
		}
		for _, e := range all {
			if !filter.Match(e) {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

func (s *EmployeeServiceImpl) ApplyIncrement(ctx context.Context, req employee.ApplyIncrementRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	date, _ := time.Parse("2006-01-02", req.Date)

	return s.modify(ctx, req.Name, func(e employee.Employee) employee.Employee {
		factor := hundred.Add(req.Percentage).Div(hundred)
		e.BasicSalary = e.BasicSalary.Mul(factor).Round(2)
		e.LastIncrement = &employee.Increment{Date: date, Percentage: req.Percentage}
		return e
	})
}

func (s *EmployeeServiceImpl) RecordBonus(ctx context.Context, req employee.RecordBonusRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	return s.modify(ctx, req.Name, func(e employee.Employee) employee.Employee {
		e.LastBonus = &employee.Bonus{Year: req.Year, Amount: req.Amount}
		return e
	})
}

func (s *EmployeeServiceImpl) modify(ctx context.Context, name string, fn func(employee.Employee) employee.Employee) (employee.EmployeeResponse, error) {
	var updated employee.Employee
	err := s.workbook.WithSession(ctx, func(sess *workbook.Session) error {
		repo := sess.Employees()
		e, err := repo.GetByName(name)
		if err != nil {
			return err
		}
		updated = fn(e)
		return repo.Update(updated)
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(updated), nil
}
