package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/models"
	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/repository"
	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/service"
	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/utils"

	"github.com/go-chi/chi/v5"
)

// ReservationHTTP wires reservation endpoints to the lifecycle manager.
type ReservationHTTP struct {
	svc   *service.ReservationService
	users repository.UserRepository
}

func NewReservationHTTP(svc *service.ReservationService, users repository.UserRepository) *ReservationHTTP {
	return &ReservationHTTP{svc: svc, users: users}
}

// GET /api/reservations?limit=&offset=
// Elevated roles see everything, others only their own.
func (h *ReservationHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := currentUser(r, h.users)
		if !ok {
			utils.Error(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		qv := r.URL.Query()
		items, err := h.svc.ListVisible(r.Context(), actor,
			utils.QueryInt(qv, "limit", 20), utils.QueryInt(qv, "offset", 0))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"items": items})
	}
}

// POST /api/reservations
func (h *ReservationHTTP) Create() http.HandlerFunc {
	type inDTO struct {
		EquipmentID      string     `json:"equipmentId"`
		StartTime        time.Time  `json:"startTime"`
		EndTime          time.Time  `json:"endTime"`
		Purpose          string     `json:"purpose"`
		IsRecurring      bool       `json:"isRecurring"`
		RecurringPattern string     `json:"recurringPattern"`
		RecurringEndDate *time.Time `json:"recurringEndDate"`
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
		if in.EquipmentID == "" {
			utils.Error(w, http.StatusBadRequest, "equipmentId is required")
			return
		}

		res, err := h.svc.Create(r.Context(), actor, service.CreateReservationRequest{
			EquipmentID:      in.EquipmentID,
			StartTime:        in.StartTime,
			EndTime:          in.EndTime,
			Purpose:          in.Purpose,
			IsRecurring:      in.IsRecurring,
			RecurringPattern: in.RecurringPattern,
			RecurringEndDate: in.RecurringEndDate,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		utils.JSON(w, http.StatusCreated, res)
	}
}

// GET /api/reservations/{id}
func (h *ReservationHTTP) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := currentUser(r, h.users)
		if !ok {
			utils.Error(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		res, err := h.svc.Get(r.Context(), actor, chi.URLParam(r, "id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, res)
	}
}

// PATCH /api/reservations/{id}/status
func (h *ReservationHTTP) UpdateStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := currentUser(r, h.users)
		if !ok {
			utils.Error(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		var in struct {
			Status models.ReservationStatus `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Status == "" {
			utils.Error(w, http.StatusBadRequest, "invalid request")
			return
		}
		res, err := h.svc.UpdateStatus(r.Context(), actor, chi.URLParam(r, "id"), in.Status)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, res)
	}
}

// DELETE /api/reservations/{id} — cancels via the state machine; records
// are never removed.
func (h *ReservationHTTP) Cancel() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := currentUser(r, h.users)
		if !ok {
			utils.Error(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		res, err := h.svc.Cancel(r.Context(), actor, chi.URLParam(r, "id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, res)
	}
}
