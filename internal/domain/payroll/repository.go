package payroll

// PayrollRepository is the in-memory record collection of a loaded workbook
// session, keyed by RecordKey. Changes become durable only when the session is flushed.
type PayrollRepository interface {
	// Settings
	GetSettings() Settings
	PutSettings(settings Settings)

	// Payroll Records
	GetByKey(key RecordKey) (PayrollRecord, error)
	// Create inserts a record, failing with ErrPayrollRecordAlreadyExists if the key is taken.
	Create(record PayrollRecord) error
	// Put inserts or replaces the record stored under record.Key.
	Put(record PayrollRecord)
	// List returns matching records ordered by employee, then chronologically.
	List(filter RecordFilter) []PayrollRecord
}
