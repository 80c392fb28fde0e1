package services

import "errors"

// Typed failures surfaced to controllers. None of these are retried
// automatically; retries (if any) belong to the caller.
var (
	ErrRoomNotFound        = errors.New("room_not_found")
	ErrOutOfStock          = errors.New("out_of_stock")
	ErrReservationNotFound = errors.New("reservation_not_found")
	ErrInvalidTransition   = errors.New("invalid_transition")
	ErrValidation          = errors.New("validation")
	ErrPersistenceFailed   = errors.New("persistence_failed")

	// ErrCompensationFailed means a reservation write failed after stock was
	// already reserved AND the compensating release also failed. The ledger
	// may be left one unit short until someone reconciles it by hand.
	ErrCompensationFailed = errors.New("compensation_failed")

	// ErrReleaseFailed marks a status change that persisted but whose stock
	// restore did not. The transition is not rolled back.
	ErrReleaseFailed = errors.New("release_failed")

	ErrContactNotFound = errors.New("contact_not_found")
)
