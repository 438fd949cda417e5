package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/models"
	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/repository"
)

// MaintenanceService gates maintenance log access behind the role policy.
type MaintenanceService struct {
	logs      repository.MaintenanceRepository
	equipment repository.EquipmentRepository
}

func NewMaintenanceService(logs repository.MaintenanceRepository, equipment repository.EquipmentRepository) *MaintenanceService {
	return &MaintenanceService{logs: logs, equipment: equipment}
}

func (s *MaintenanceService) List(ctx context.Context, actor *models.User, equipmentID string, limit, offset int) ([]models.MaintenanceLog, error) {
	switch ScopeFor(actor.Role, ResourceMaintenanceLog) {
	case ScopeAll:
		return s.logs.List(ctx, equipmentID, limit, offset)
	}
	return nil, ErrPermissionDenied
}

func (s *MaintenanceService) Create(ctx context.Context, actor *models.User, m *models.MaintenanceLog) error {
	if !CanCreateMaintenanceLog(actor.Role) {
		return ErrPermissionDenied
	}
	if m.EquipmentID == "" || strings.TrimSpace(m.Type) == "" {
		return errors.New("equipment and maintenance type are required")
	}
	if !m.StartDate.Before(m.EndDate) {
		return ErrInvalidWindow
	}

	eq, err := s.equipment.Get(ctx, m.EquipmentID)
	if err != nil {
		return err
	}
	if eq == nil {
		return ErrNotFound
	}
	if m.PerformedBy == "" {
		m.PerformedBy = actor.Username
	}
	return s.logs.Create(ctx, m)
}
