package handlers

import (
	"net/http"
	"strings"

	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/models"
	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/repository"
	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/service"
	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/utils"

	"github.com/go-chi/chi/v5"
)

type EquipmentHTTP struct {
	equipment    repository.EquipmentRepository
	categories   repository.CategoryRepository
	availability *service.Availability
}

func NewEquipmentHTTP(
	equipment repository.EquipmentRepository,
	categories repository.CategoryRepository,
	availability *service.Availability,
) *EquipmentHTTP {
	return &EquipmentHTTP{equipment: equipment, categories: categories, availability: availability}
}

// GET /api/categories
func (h *EquipmentHTTP) Categories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cats, err := h.categories.List(r.Context())
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"items": cats})
	}
}

// GET /api/equipment?q=&category=&status=&location=&limit=&offset=&sort=&order=
// Only active equipment is listed.
func (h *EquipmentHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qv := r.URL.Query()
		f := repository.EquipmentFilter{
			Q:          strings.TrimSpace(qv.Get("q")),
			CategoryID: strings.TrimSpace(qv.Get("category")),
			Status:     models.EquipmentStatus(qv.Get("status")),
			Location:   strings.TrimSpace(qv.Get("location")),
			ActiveOnly: true,
			Limit:      utils.QueryInt(qv, "limit", 20),
			Offset:     utils.QueryInt(qv, "offset", 0),
			Sort:       qv.Get("sort"),
			Order:      qv.Get("order"),
		}
		items, total, err := h.equipment.List(r.Context(), f)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"items": items, "total": total})
	}
}

// GET /api/equipment/{id}
func (h *EquipmentHTTP) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			utils.Error(w, http.StatusBadRequest, "missing id")
			return
		}
		e, err := h.equipment.Get(r.Context(), id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if e == nil {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}
		utils.JSON(w, http.StatusOK, e)
	}
}

// GET /api/equipment/{id}/availability?start=&end= (RFC 3339)
func (h *EquipmentHTTP) Availability() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		qv := r.URL.Query()
		start, okS := utils.QueryTime(qv, "start")
		end, okE := utils.QueryTime(qv, "end")
		if !okS || !okE {
			utils.Error(w, http.StatusBadRequest, "start and end are required (RFC 3339)")
			return
		}

		conflicts, err := h.availability.Conflicts(r.Context(), id, start, end)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{
			"available": len(conflicts) == 0,
			"conflicts": conflicts,
		})
	}
}
