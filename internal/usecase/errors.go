package usecase

import "errors"

var (
	ErrInternal     = errors.New("internal error")
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidFile  = errors.New("invalid file")
	ErrForbidden    = errors.New("forbidden")

	ErrCompanyNotFound  = errors.New("company not found")
	ErrCompanyNameTaken = errors.New("company name already registered")

	ErrMissingFields = errors.New("required field missing")
	ErrJobNotFound   = errors.New("job not found")

	ErrApplicationNotFound = errors.New("application not found")
	ErrAlreadyApplied      = errors.New("already applied to this job")
	ErrInvalidStatus       = errors.New("invalid application status")
)
