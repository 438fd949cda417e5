package handlers

import (
	"net/http"
	"time"

	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/models"
	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/repository"
	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/utils"
)

type ReportsHTTP struct {
	repo repository.ReservationRepository
}

func NewReportsHTTP(r repository.ReservationRepository) *ReportsHTTP { return &ReportsHTTP{repo: r} }

// GET /api/reports/summary
// Returns: { pendingApproval, activeNow, upcoming7d, completed }
func (h *ReportsHTTP) Summary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pending, err := h.repo.CountByStatus(r.Context(), []models.ReservationStatus{models.ReservationPending})
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		active, err := h.repo.CountByStatus(r.Context(), []models.ReservationStatus{models.ReservationActive})
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		now := time.Now()
		upcoming, err := h.repo.CountStartingBetween(r.Context(), now, now.Add(7*24*time.Hour))
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		completed, err := h.repo.CountByStatus(r.Context(), []models.ReservationStatus{models.ReservationCompleted})
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}

		utils.JSON(w, http.StatusOK, map[string]int{
			"pendingApproval": pending,
			"activeNow":       active,
			"upcoming7d":      upcoming,
			"completed":       completed,
		})
	}
}
