package errs

import "errors"

// Domain-specific sentinel errors shared across usecase layers
var (
	// Room errors
	ErrRoomNotFound = errors.New("room not found")

	// Booking errors
	ErrBookingNotFound  = errors.New("booking not found")
	ErrBookingConflict  = errors.New("booking conflict")
	ErrBookingNotActive = errors.New("booking is not active")

	// Validation errors
	ErrMissingField       = errors.New("missing required field")
	ErrMalformedTimestamp = errors.New("malformed timestamp")
	ErrDurationTooShort   = errors.New("booking duration too short")
	ErrDurationTooLong    = errors.New("booking duration too long")

	// Policy errors
	ErrTooLateToModify = errors.New("too late to modify booking")
	ErrTooLateToCancel = errors.New("too late to cancel booking")

	// Operation errors
	ErrStoreOperationFailed = errors.New("store operation failed")
)
