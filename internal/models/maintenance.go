package models

import "time"

type MaintenanceLog struct {
	ID            string    `json:"id"`
	EquipmentID   string    `json:"equipmentId"`
	EquipmentName string    `json:"equipmentName,omitempty"` // joined
	Type          string    `json:"type"`
	Description   string    `json:"description,omitempty"`
	PerformedBy   string    `json:"performedBy"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}
