package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNoApplicableProfile = errors.New("no applicable salary profile")
	ErrInvalidInterval     = errors.New("end time must be after start time on the same day")
	ErrNotFound            = errors.New("not found")
)

// PersistenceError: сбой записи или чтения в хранилище. Расчёт к этому моменту уже сделан.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure (%s): %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	var pe *PersistenceError
	if errors.As(err, &pe) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}
