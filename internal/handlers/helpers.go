package handlers

import (
	"errors"
	"net/http"

	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/middleware"
	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/models"
	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/repository"
	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/service"
	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/utils"
)

// currentUser loads the authenticated actor. Policy decisions need the
// full record (role, training flag), not just the token claims.
func currentUser(r *http.Request, users repository.UserRepository) (*models.User, bool) {
	uid, ok := utils.GetString(r.Context(), middleware.CtxUserID)
	if !ok || uid == "" {
		return nil, false
	}
	u, err := users.GetByID(r.Context(), uid)
	if err != nil || u == nil {
		return nil, false
	}
	return u, true
}

// writeDomainError maps the domain error kinds onto HTTP responses.
// SchedulingConflict carries its conflicting set in the body so the client
// can show the cause.
func writeDomainError(w http.ResponseWriter, err error) {
	var conflict *service.ConflictError
	switch {
	case errors.As(err, &conflict):
		utils.JSON(w, http.StatusConflict, map[string]any{
			"error":     conflict.Error(),
			"conflicts": conflict.Conflicts,
		})
	case errors.Is(err, service.ErrInvalidWindow),
		errors.Is(err, service.ErrDurationExceeded):
		utils.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrTrainingRequired):
		utils.Error(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrEquipmentUnavailable),
		errors.Is(err, service.ErrInvalidTransition):
		utils.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrPermissionDenied):
		utils.Error(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrNotFound):
		utils.Error(w, http.StatusNotFound, err.Error())
	default:
		utils.Error(w, http.StatusInternalServerError, err.Error())
	}
}
