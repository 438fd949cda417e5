package service

import (
	"context"
	"time"

	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/models"
	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/repository"
)

// Availability answers whether a candidate time window on a piece of
// equipment collides with existing reservations. Pure read over store
// state; the transactional re-check at insert time lives in the store.
type Availability struct {
	reservations repository.ReservationRepository
}

func NewAvailability(reservations repository.ReservationRepository) *Availability {
	return &Availability{reservations: reservations}
}

// Conflicts returns every reservation blocking [start, end) on the
// equipment. A reservation blocks iff its status is pending, confirmed or
// active and its window overlaps under half-open semantics: R.start < end
// AND R.end > start. Windows that merely touch at an endpoint do not
// conflict.
func (a *Availability) Conflicts(ctx context.Context, equipmentID string, start, end time.Time) ([]models.Reservation, error) {
	if !start.Before(end) {
		return nil, ErrInvalidWindow
	}
	return a.reservations.FindOverlapping(ctx, equipmentID, start, end)
}

// IsAvailable wraps Conflicts for callers that only need the boolean.
func (a *Availability) IsAvailable(ctx context.Context, equipmentID string, start, end time.Time) (bool, error) {
	conflicts, err := a.Conflicts(ctx, equipmentID, start, end)
	if err != nil {
		return false, err
	}
	return len(conflicts) == 0, nil
}
