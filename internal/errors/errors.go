package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/habit-tracker/internal/logger"
)

// Storage error kinds. Every error returned by the storage layer matches
// exactly one of these with errors.Is.
var (
	// ErrConnection is returned when the backing store cannot be opened or created
	ErrConnection = stderrors.New("cannot open habit store")
	// ErrSchema is returned when table creation fails
	ErrSchema = stderrors.New("schema initialization failed")
	// ErrConstraintViolation is returned when a write breaks a check, foreign key or validation rule
	ErrConstraintViolation = stderrors.New("constraint violation")
	// ErrInvalidEncoding is returned when a serialized column cannot be decoded
	ErrInvalidEncoding = stderrors.New("invalid encoding")
	// ErrInvalidEnumValue is returned when an enumeration column holds an unknown tag
	ErrInvalidEnumValue = stderrors.New("invalid enum value")
	// ErrNotFound is returned when a read-back matches zero rows
	ErrNotFound = stderrors.New("not found")
	// ErrTransaction is returned when a batch fails and is rolled back
	ErrTransaction = stderrors.New("transaction failed")
	// ErrMissingColumn is returned when a result row lacks a required column
	ErrMissingColumn = stderrors.New("missing column")
	// ErrTypeMismatch is returned when a column value has an unexpected type
	ErrTypeMismatch = stderrors.New("type mismatch")
	// ErrFeatureDisabled is returned by calendar operations when calendar sync is off
	ErrFeatureDisabled = stderrors.New("feature disabled")
)

// StorageError records the failed operation, its kind and the underlying cause.
type StorageError struct {
	Op   string
	Kind error
	Err  error
}

// E builds a StorageError. A nil err yields an error carrying only the kind.
func E(op string, kind error, err error) error {
	return &StorageError{Op: op, Kind: kind, Err: err}
}

func (e *StorageError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	if stderrors.Is(e.Err, e.Kind) {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *StorageError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// KindOf returns the storage error kind carried by err, or nil.
func KindOf(err error) error {
	var se *StorageError
	if stderrors.As(err, &se) {
		return se.Kind
	}
	return nil
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
