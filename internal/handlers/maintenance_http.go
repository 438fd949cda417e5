package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/models"
	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/repository"
	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/service"
	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/utils"
)

type MaintenanceHTTP struct {
	svc   *service.MaintenanceService
	users repository.UserRepository
}

func NewMaintenanceHTTP(svc *service.MaintenanceService, users repository.UserRepository) *MaintenanceHTTP {
	return &MaintenanceHTTP{svc: svc, users: users}
}

// GET /api/maintenance?equipment=&limit=&offset=
func (h *MaintenanceHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := currentUser(r, h.users)
		if !ok {
			utils.Error(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		qv := r.URL.Query()
		items, err := h.svc.List(r.Context(), actor, qv.Get("equipment"),
			utils.QueryInt(qv, "limit", 20), utils.QueryInt(qv, "offset", 0))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"items": items})
	}
}

// POST /api/maintenance
func (h *MaintenanceHTTP) Create() http.HandlerFunc {
	type inDTO struct {
		EquipmentID string    `json:"equipmentId"`
		Type        string    `json:"type"`
		Description string    `json:"description"`
		PerformedBy string    `json:"performedBy"`
		StartDate   time.Time `json:"startDate"`
		EndDate     time.Time `json:"endDate"`
		Notes       string    `json:"notes"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := currentUser(r, h.users)
		if !ok {
			utils.Error(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		m := &models.MaintenanceLog{
			EquipmentID: in.EquipmentID,
			Type:        in.Type,
			Description: in.Description,
			PerformedBy: in.PerformedBy,
			StartDate:   in.StartDate,
			EndDate:     in.EndDate,
			Notes:       in.Notes,
		}
		if err := h.svc.Create(r.Context(), actor, m); err != nil {
			writeDomainError(w, err)
			return
		}
		utils.JSON(w, http.StatusCreated, m)
	}
}
