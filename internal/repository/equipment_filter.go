package repository

import "github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/models"

type EquipmentFilter struct {
	Q          string // name/description/location, ILIKE
	CategoryID string
	Status     models.EquipmentStatus
	Location   string
	ActiveOnly bool
	Limit      int
	Offset     int
	Sort       string // name, created_at
	Order      string // asc|desc
}
