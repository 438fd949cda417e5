package handlers

import (
	"net/http"
	"strconv"

	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/middleware"
	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/repository"
	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/utils"

	"github.com/go-chi/chi/v5"
)

type NotificationHTTP struct {
	repo repository.NotificationRepository
}

func NewNotificationHTTP(r repository.NotificationRepository) *NotificationHTTP {
	return &NotificationHTTP{repo: r}
}

// GET /api/notifications?unread=&limit=&offset= — always scoped to the
// authenticated user.
func (h *NotificationHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := utils.GetString(r.Context(), middleware.CtxUserID)
		if !ok || uid == "" {
			utils.Error(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		qv := r.URL.Query()
		unread, _ := strconv.ParseBool(qv.Get("unread"))
		items, err := h.repo.ListByUser(r.Context(), uid, unread,
			utils.QueryInt(qv, "limit", 20), utils.QueryInt(qv, "offset", 0))
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"items": items})
	}
}

// PATCH /api/notifications/{id}/read
func (h *NotificationHTTP) MarkRead() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := utils.GetString(r.Context(), middleware.CtxUserID)
		if !ok || uid == "" {
			utils.Error(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		n, err := h.repo.MarkRead(r.Context(), chi.URLParam(r, "id"), uid)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if n == nil {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}
		utils.JSON(w, http.StatusOK, n)
	}
}
