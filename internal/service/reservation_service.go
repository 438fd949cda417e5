package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/models"
	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/repository"

	"github.com/rs/zerolog"
)

// ReservationService is the reservation lifecycle manager: it validates a
// request, consults availability and policy, and drives status transitions.
type ReservationService struct {
	reservations  repository.ReservationRepository
	equipment     repository.EquipmentRepository
	notifications repository.NotificationRepository
	availability  *Availability
	log           zerolog.Logger
}

func NewReservationService(
	reservations repository.ReservationRepository,
	equipment repository.EquipmentRepository,
	notifications repository.NotificationRepository,
	availability *Availability,
	log zerolog.Logger,
) *ReservationService {
	return &ReservationService{
		reservations:  reservations,
		equipment:     equipment,
		notifications: notifications,
		availability:  availability,
		log:           log.With().Str("component", "reservations").Logger(),
	}
}

type CreateReservationRequest struct {
	EquipmentID      string
	StartTime        time.Time
	EndTime          time.Time
	Purpose          string
	IsRecurring      bool
	RecurringPattern string
	RecurringEndDate *time.Time
}

// Create admits a reservation for the actor or rejects it with one of the
// domain errors. Order of checks: window sanity, equipment state,
// availability, training, duration. The final insert re-checks overlap
// inside the store transaction, so a competing request that won the race
// still surfaces as a ConflictError here.
func (s *ReservationService) Create(ctx context.Context, actor *models.User, req CreateReservationRequest) (*models.Reservation, error) {
	if !req.StartTime.Before(req.EndTime) {
		return nil, ErrInvalidWindow
	}

	eq, err := s.equipment.Get(ctx, req.EquipmentID)
	if err != nil {
		return nil, err
	}
	if eq == nil {
		return nil, ErrNotFound
	}
	if !eq.Reservable() {
		return nil, ErrEquipmentUnavailable
	}

	// the training gate precedes the availability check so an untrained
	// actor gets the same answer whether or not the slot is busy
	if eq.RequiresTraining && !actor.TrainingCompleted {
		return nil, ErrTrainingRequired
	}

	conflicts, err := s.availability.Conflicts(ctx, req.EquipmentID, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, &ConflictError{Conflicts: conflicts}
	}

	if eq.MaxReservationHours > 0 {
		max := time.Duration(eq.MaxReservationHours) * time.Hour
		if req.EndTime.Sub(req.StartTime) > max {
			return nil, ErrDurationExceeded
		}
	}

	res := &models.Reservation{
		UserID:           actor.ID,
		EquipmentID:      req.EquipmentID,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		Status:           models.ReservationPending,
		Purpose:          strings.TrimSpace(req.Purpose),
		IsRecurring:      req.IsRecurring,
		RecurringPattern: strings.TrimSpace(req.RecurringPattern),
		RecurringEndDate: req.RecurringEndDate,
	}
	raceConflicts, err := s.reservations.Reserve(ctx, res)
	if err != nil {
		return nil, err
	}
	if len(raceConflicts) > 0 {
		return nil, &ConflictError{Conflicts: raceConflicts}
	}

	res.UserName = actor.Username
	res.EquipmentName = eq.Name

	s.notify(ctx, actor.ID, models.NotifyReservationConfirmation,
		"Reservation requested",
		fmt.Sprintf("Your reservation for %s from %s to %s is pending approval.",
			eq.Name, res.StartTime.Format(time.RFC3339), res.EndTime.Format(time.RFC3339)))

	s.log.Info().Str("reservation", res.ID).Str("equipment", eq.ID).Str("user", actor.ID).Msg("reservation created")
	return res, nil
}

// UpdateStatus applies one legal state machine step. The actor must be
// within scope for the reservation; terminal states accept nothing.
func (s *ReservationService) UpdateStatus(ctx context.Context, actor *models.User, id string, next models.ReservationStatus) (*models.Reservation, error) {
	if !next.Valid() {
		return nil, ErrInvalidTransition
	}

	res, err := s.reservations.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, ErrNotFound
	}

	if !ScopeFor(actor.Role, ResourceReservation).Permits(actor.ID, res.UserID) {
		return nil, ErrPermissionDenied
	}
	if !res.Status.CanTransition(next) {
		return nil, ErrInvalidTransition
	}

	// the write only lands while the status still matches the one the
	// legality check saw, so a competing transition cannot be overwritten
	updated, err := s.reservations.UpdateStatus(ctx, id, res.Status, next)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		cur, gerr := s.reservations.Get(ctx, id)
		if gerr != nil {
			return nil, gerr
		}
		if cur == nil {
			return nil, ErrNotFound
		}
		return nil, ErrInvalidTransition
	}

	if next == models.ReservationConfirmed {
		s.notify(ctx, updated.UserID, models.NotifyReservationConfirmation,
			"Reservation confirmed",
			fmt.Sprintf("Your reservation for %s starting %s has been confirmed.",
				updated.EquipmentName, updated.StartTime.Format(time.RFC3339)))
	}

	s.log.Info().Str("reservation", id).
		Str("from", string(res.Status)).Str("to", string(next)).
		Msg("reservation status updated")
	return updated, nil
}

// Cancel is the delete operation: reservations are never removed, they
// transition to cancelled when the state machine allows it.
func (s *ReservationService) Cancel(ctx context.Context, actor *models.User, id string) (*models.Reservation, error) {
	return s.UpdateStatus(ctx, actor, id, models.ReservationCancelled)
}

// ListVisible returns the reservations the actor's scope admits.
func (s *ReservationService) ListVisible(ctx context.Context, actor *models.User, limit, offset int) ([]models.Reservation, error) {
	switch ScopeFor(actor.Role, ResourceReservation) {
	case ScopeAll:
		return s.reservations.ListAll(ctx, limit, offset)
	case ScopeOwn:
		return s.reservations.ListByUser(ctx, actor.ID, limit, offset)
	}
	return nil, ErrPermissionDenied
}

// Get returns a single reservation if the actor's scope admits it.
func (s *ReservationService) Get(ctx context.Context, actor *models.User, id string) (*models.Reservation, error) {
	res, err := s.reservations.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, ErrNotFound
	}
	if !ScopeFor(actor.Role, ResourceReservation).Permits(actor.ID, res.UserID) {
		return nil, ErrPermissionDenied
	}
	return res, nil
}

// notify records notification data; delivery is out of scope. A failed
// write never fails the reservation operation that triggered it.
func (s *ReservationService) notify(ctx context.Context, userID string, t models.NotificationType, title, msg string) {
	if s.notifications == nil {
		return
	}
	n := &models.Notification{UserID: userID, Type: t, Title: title, Message: msg}
	if err := s.notifications.Create(ctx, n); err != nil {
		s.log.Warn().Err(err).Str("user", userID).Msg("notification write failed")
	}
}
