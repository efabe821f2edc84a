package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmployeeExists   = errors.New("employee already exists")
	ErrInvalidStatus    = errors.New("status must be Active or Inactive")
)
