package models

import "time"

type NotificationType string

const (
	NotifyReservationConfirmation NotificationType = "reservation_confirmation"
	NotifyReservationReminder     NotificationType = "reservation_reminder"
	NotifyMaintenanceAlert        NotificationType = "maintenance_alert"
	NotifySystemAnnouncement      NotificationType = "system_announcement"
)

// Notification is write-once except for the Read flag.
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"createdAt"`
}
