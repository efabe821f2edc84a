// Package workbook is the session repository over a docstore.Store.
//
// A Session is the in-memory copy of every relation, produced by Load and
// written back by Flush. Services never hold a Session beyond one operation:
// WithSession runs load, mutate and flush under the workbook lock, and
// WithSnapshot runs a read-only view that degrades to an empty dataset when the
// store cannot be read.
package workbook

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/sdgtech/payroll-backend-go/internal/domain/employee"
	"github.com/sdgtech/payroll-backend-go/internal/domain/leave"
	"github.com/sdgtech/payroll-backend-go/internal/domain/payroll"
	"github.com/sdgtech/payroll-backend-go/internal/pkg/docstore"
)

type Workbook struct {
	store    docstore.Store
	defaults payroll.Settings
	mu       sync.Mutex
}

// New returns a workbook over store. defaults apply when the Settings relation
// has no value.
func New(store docstore.Store, defaults payroll.Settings) *Workbook {
	return &Workbook{store: store, defaults: defaults}
}

// Load reads every relation. Any read failure is returned as is.
func (w *Workbook) Load(ctx context.Context) (*Session, error) {
	empTable, err := w.store.Read(ctx, docstore.RelationEmployees)
	if err != nil {
		return nil, err
	}
	recTable, err := w.store.Read(ctx, docstore.RelationRecords)
	if err != nil {
		return nil, err
	}
	setTable, err := w.store.Read(ctx, docstore.RelationSettings)
	if err != nil {
		return nil, err
	}
	leaveTable, err := w.store.Read(ctx, docstore.RelationLeaveRecords)
	if err != nil {
		return nil, err
	}

	s := w.emptySession()
	for _, e := range decodeEmployees(empTable) {
		s.employees.insert(e)
	}
	for _, r := range decodeRecords(recTable) {
		if _, dup := s.records.byKey[r.Key]; dup {
			slog.Warn("duplicate payroll record in store, keeping the first", "id", r.ID())
			continue
		}
		s.records.insert(r)
	}
	s.settings.value = decodeSettings(setTable, w.defaults)
	s.leaves.records = decodeLeaveRecords(leaveTable)

	return s, nil
}

// Flush writes back the relations the session changed. LeaveRecords is never written.
func (w *Workbook) Flush(ctx context.Context, s *Session) error {
	if s.employees.dirty {
		if err := w.store.Write(ctx, docstore.RelationEmployees, encodeEmployees(s.employees.list)); err != nil {
			return err
		}
		s.employees.dirty = false
	}
	if s.settings.dirty {
		if err := w.store.Write(ctx, docstore.RelationSettings, encodeSettings(s.settings.value)); err != nil {
			return err
		}
		s.settings.dirty = false
	}
	if s.records.dirty {
		if err := w.store.Write(ctx, docstore.RelationRecords, encodeRecords(s.records.ordered())); err != nil {
			return err
		}
		s.records.dirty = false
	}
	return nil
}

// WithSession loads the workbook, runs fn and flushes the changes. A load
// failure aborts before fn runs so an outage is never written back as empty
// relations. Nothing is flushed when fn fails.
func (w *Workbook) WithSession(ctx context.Context, fn func(s *Session) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	s, err := w.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load workbook: %w", err)
	}
	if err := fn(s); err != nil {
		return err
	}
	if err := w.Flush(ctx, s); err != nil {
		return fmt.Errorf("failed to flush workbook: %w", err)
	}
	return nil
}

// WithSnapshot loads the workbook and runs fn on it without flushing. When the
// store cannot be read fn sees an empty workbook.
func (w *Workbook) WithSnapshot(ctx context.Context, fn func(s *Session) error) error {
	w.mu.Lock()
	s, err := w.Load(ctx)
	w.mu.Unlock()
	if err != nil {
		slog.Warn("workbook unavailable, continuing with empty data", "error", err)
		s = w.emptySession()
	}
	return fn(s)
}

func (w *Workbook) emptySession() *Session {
	return &Session{
		employees: &employeeTable{index: map[string]int{}},
		records:   &recordTable{byKey: map[payroll.RecordKey]payroll.PayrollRecord{}},
		settings:  &settingsValue{value: w.defaults},
		leaves:    &leaveTable{},
	}
}

// Session is one loaded copy of the workbook.
type Session struct {
	employees *employeeTable
	records   *recordTable
	settings  *settingsValue
	leaves    *leaveTable
}

func (s *Session) Employees() employee.EmployeeRepository {
	return s.employees
}

func (s *Session) Payroll() payroll.PayrollRepository {
	return payrollRepository{records: s.records, settings: s.settings}
}

func (s *Session) Leaves() leave.LeaveRepository {
	return s.leaves
}

// ========== EMPLOYEES ==========

type employeeTable struct {
	list  []employee.Employee
	index map[string]int
	dirty bool
}

func (t *employeeTable) insert(e employee.Employee) {
	if _, ok := t.index[e.Name]; ok {
		slog.Warn("duplicate employee in store, keeping the first", "employee", e.Name)
		return
	}
	t.index[e.Name] = len(t.list)
	t.list = append(t.list, e)
}

func (t *employeeTable) GetByName(name string) (employee.Employee, error) {
	i, ok := t.index[name]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return t.list[i], nil
}

func (t *employeeTable) Create(newEmployee employee.Employee) error {
	if _, ok := t.index[newEmployee.Name]; ok {
		return employee.ErrEmployeeExists
	}
	t.insert(newEmployee)
	t.dirty = true
	return nil
}

func (t *employeeTable) Update(e employee.Employee) error {
	i, ok := t.index[e.Name]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	t.list[i] = e
	t.dirty = true
	return nil
}

func (t *employeeTable) Delete(name string) {
	i, ok := t.index[name]
	if !ok {
		return
	}
	t.list = slices.Delete(t.list, i, i+1)
	delete(t.index, name)
	for j := i; j < len(t.list); j++ {
		t.index[t.list[j].Name] = j
	}
	t.dirty = true
}

func (t *employeeTable) All() []employee.Employee {
	return slices.Clone(t.list)
}

// ========== RECORDS ==========

type recordTable struct {
	byKey map[payroll.RecordKey]payroll.PayrollRecord
	order []payroll.RecordKey
	dirty bool
}

func (t *recordTable) insert(r payroll.PayrollRecord) {
	t.byKey[r.Key] = r
	t.order = append(t.order, r.Key)
}

// ordered returns records in store order, new records last.
func (t *recordTable) ordered() []payroll.PayrollRecord {
	out := make([]payroll.PayrollRecord, 0, len(t.order))
	for _, k := range t.order {
		out = append(out, t.byKey[k])
	}
	return out
}

type settingsValue struct {
	value payroll.Settings
	dirty bool
}

type payrollRepository struct {
	records  *recordTable
	settings *settingsValue
}

func (r payrollRepository) GetSettings() payroll.Settings {
	return r.settings.value
}

func (r payrollRepository) PutSettings(settings payroll.Settings) {
	r.settings.value = settings
	r.settings.dirty = true
}

func (r payrollRepository) GetByKey(key payroll.RecordKey) (payroll.PayrollRecord, error) {
	rec, ok := r.records.byKey[key]
	if !ok {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	return cloneRecord(rec), nil
}

func (r payrollRepository) Create(record payroll.PayrollRecord) error {
	if _, ok := r.records.byKey[record.Key]; ok {
		return payroll.ErrPayrollRecordAlreadyExists
	}
	r.records.insert(cloneRecord(record))
	r.records.dirty = true
	return nil
}

func (r payrollRepository) Put(record payroll.PayrollRecord) {
	if _, ok := r.records.byKey[record.Key]; ok {
		r.records.byKey[record.Key] = cloneRecord(record)
	} else {
		r.records.insert(cloneRecord(record))
	}
	r.records.dirty = true
}

func (r payrollRepository) List(filter payroll.RecordFilter) []payroll.PayrollRecord {
	var out []payroll.PayrollRecord
	for _, k := range r.records.order {
		rec := r.records.byKey[k]
		if filter.Match(rec) {
			out = append(out, cloneRecord(rec))
		}
	}
	slices.SortStableFunc(out, func(a, b payroll.PayrollRecord) int {
		if c := cmp.Compare(a.Key.EmployeeID, b.Key.EmployeeID); c != 0 {
			return c
		}
		return a.Key.Period.Compare(b.Key.Period)
	})
	return out
}

func cloneRecord(r payroll.PayrollRecord) payroll.PayrollRecord {
	r.Earnings = slices.Clone(r.Earnings)
	r.Deductions = slices.Clone(r.Deductions)
	return r
}

// ========== LEAVE ==========

type leaveTable struct {
	records []leave.LeaveRecord
}

func (t *leaveTable) ListByEmployee(employeeID string) []leave.LeaveRecord {
	var out []leave.LeaveRecord
	for _, r := range t.records {
		if r.EmployeeID == employeeID {
			out = append(out, r)
		}
	}
	slices.SortStableFunc(out, func(a, b leave.LeaveRecord) int {
		return a.Date.Compare(b.Date)
	})
	return out
}
