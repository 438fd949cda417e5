package models

import "time"

type EquipmentStatus string

const (
	EquipmentAvailable    EquipmentStatus = "available"
	EquipmentReserved     EquipmentStatus = "reserved"
	EquipmentMaintenance  EquipmentStatus = "maintenance"
	EquipmentOutOfService EquipmentStatus = "out_of_service"
)

func (s EquipmentStatus) Valid() bool {
	switch s {
	case EquipmentAvailable, EquipmentReserved, EquipmentMaintenance, EquipmentOutOfService:
		return true
	}
	return false
}

type EquipmentCategory struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type Equipment struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Description         string          `json:"description,omitempty"`
	CategoryID          string          `json:"categoryId"`
	CategoryName        string          `json:"categoryName,omitempty"` // joined
	Location            string          `json:"location"`
	Status              EquipmentStatus `json:"status"`
	MaxReservationHours int             `json:"maxReservationHours"`
	RequiresTraining    bool            `json:"requiresTraining"`
	LastMaintenance     *time.Time      `json:"lastMaintenance,omitempty"`
	NextMaintenance     *time.Time      `json:"nextMaintenance,omitempty"`
	Active              bool            `json:"active"`
	CreatedAt           time.Time       `json:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt"`
}

// Reservable reports whether new reservations may target this equipment.
// Inactive and out-of-service items are excluded; "reserved" and
// "maintenance" only matter per time window, which the availability
// check handles.
func (e Equipment) Reservable() bool {
	return e.Active && e.Status != EquipmentOutOfService
}
