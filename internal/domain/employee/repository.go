package employee

// EmployeeRepository is the in-memory directory of a loaded workbook session.
// Changes become durable only when the session is flushed.
type EmployeeRepository interface {
	GetByName(name string) (Employee, error)
	Create(newEmployee Employee) error
	Update(e Employee) error
	Delete(name string)
	// All returns employees in directory order.
	All() []Employee
}
