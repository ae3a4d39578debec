package errs

import "errors"

// Domain-specific sentinel errors shared by the usecase layers
var (
	// Resource errors
	ErrResourceNotFound         = errors.New("resource not found")
	ErrResourceStatusNotAllowed = errors.New("resource status not allowed")

	// Lab errors
	ErrLabNotFound = errors.New("lab not found")

	// Reservation errors
	ErrReservationNotFound = errors.New("reservation not found")
	ErrReservationConflict = errors.New("reservation conflict")
	ErrInvalidTimeSlot     = errors.New("invalid time slot")
	ErrInvalidTransition   = errors.New("invalid reservation transition")
	ErrInvalidRecurrence   = errors.New("invalid recurrence pattern")
	ErrNotOwner            = errors.New("actor is not the reservation owner")

	// Validation errors
	ErrInvalidDate = errors.New("invalid date")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
