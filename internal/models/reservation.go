package models

import "time"

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationActive    ReservationStatus = "active"
	ReservationCompleted ReservationStatus = "completed"
	ReservationCancelled ReservationStatus = "cancelled"
	ReservationNoShow    ReservationStatus = "no_show"
)

func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationActive,
		ReservationCompleted, ReservationCancelled, ReservationNoShow:
		return true
	}
	return false
}

// Terminal statuses accept no further transitions.
func (s ReservationStatus) Terminal() bool {
	switch s {
	case ReservationCompleted, ReservationCancelled, ReservationNoShow:
		return true
	}
	return false
}

// transitions is the full legal state machine; anything absent is illegal.
var transitions = map[ReservationStatus][]ReservationStatus{
	ReservationPending:   {ReservationConfirmed, ReservationCancelled},
	ReservationConfirmed: {ReservationActive, ReservationCancelled, ReservationNoShow},
	ReservationActive:    {ReservationCompleted, ReservationCancelled},
}

// CanTransition reports whether moving from s to next is legal.
func (s ReservationStatus) CanTransition(next ReservationStatus) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// BlocksAvailability reports whether a reservation in this status counts
// against the equipment's time window. Cancelled, completed and no-show
// reservations release their slot.
func (s ReservationStatus) BlocksAvailability() bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationActive:
		return true
	}
	return false
}

// BlockingStatuses is the status set the overlap query filters on.
var BlockingStatuses = []ReservationStatus{
	ReservationPending, ReservationConfirmed, ReservationActive,
}

type Reservation struct {
	ID               string            `json:"id"`
	UserID           string            `json:"userId"`
	UserName         string            `json:"userName,omitempty"` // joined
	EquipmentID      string            `json:"equipmentId"`
	EquipmentName    string            `json:"equipmentName,omitempty"` // joined
	StartTime        time.Time         `json:"startTime"`
	EndTime          time.Time         `json:"endTime"`
	Status           ReservationStatus `json:"status"`
	Purpose          string            `json:"purpose,omitempty"`
	IsRecurring      bool              `json:"isRecurring"`
	RecurringPattern string            `json:"recurringPattern,omitempty"`
	RecurringEndDate *time.Time        `json:"recurringEndDate,omitempty"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

// Overlaps applies the half-open interval test against [start, end):
// two windows conflict iff each starts before the other ends. Back-to-back
// windows sharing an endpoint do not overlap.
func (r Reservation) Overlaps(start, end time.Time) bool {
	return r.StartTime.Before(end) && r.EndTime.After(start)
}
