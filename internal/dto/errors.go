package dto

import (
	"errors"
)

var (
	ErrNotFound      = errors.New("errRecordNotFound")
	ErrAlreadyExists = errors.New("errAlreadyExists")
	ErrForbidden     = errors.New("errDepartmentScope")
	ErrShiftOverlap  = errors.New("errShiftOverlap")
)
