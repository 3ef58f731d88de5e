package errors

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrForbidden      = errors.New("forbidden")
	ErrInvalid        = errors.New("invalid")
	ErrInvalidID      = errors.New("invalid id")
	ErrConflict       = errors.New("conflict")
	ErrAlreadyApplied = errors.New("already applied")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

func IsAlreadyApplied(err error) bool {
	return errors.Is(err, ErrAlreadyApplied)
}
