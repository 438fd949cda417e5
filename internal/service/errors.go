package service

import (
	"errors"
	"fmt"

	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/models"
)

// Domain error kinds. All are terminal for the current operation; the
// transport layer maps each to a response, nothing here retries.
var (
	ErrInvalidWindow        = errors.New("start time must precede end time")
	ErrEquipmentUnavailable = errors.New("equipment is inactive or out of service")
	ErrTrainingRequired     = errors.New("equipment requires completed training")
	ErrDurationExceeded     = errors.New("requested duration exceeds equipment maximum")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrInvalidTransition    = errors.New("illegal reservation status transition")
	ErrNotFound             = errors.New("not found")
)

// ConflictError carries the overlapping reservations so callers can
// report the cause, not just the fact, of a rejection.
type ConflictError struct {
	Conflicts []models.Reservation
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("scheduling conflict with %d existing reservation(s)", len(e.Conflicts))
}
