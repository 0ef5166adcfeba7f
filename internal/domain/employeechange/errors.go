package employeechange

import "errors"

var (
	ErrEmployeeChangeNotFound = errors.New("employee change not found")
	ErrInvalidInput           = errors.New("invalid employee change input")
)
