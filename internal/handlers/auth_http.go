package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/middleware"
	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/models"
	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/repository"
	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/service"
	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/utils"
)

type AuthHTTP struct {
	svc   *service.AuthService
	users repository.UserRepository
}

func NewAuthHTTP(s *service.AuthService, users repository.UserRepository) *AuthHTTP {
	return &AuthHTTP{svc: s, users: users}
}

func (h *AuthHTTP) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Username      string `json:"username"`
			Email         string `json:"email"`
			Password      string `json:"password"`
			Role          string `json:"role"`
			InstitutionID string `json:"institutionId"`
			Department    string `json:"department"`
			PhoneNumber   string `json:"phoneNumber"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		u, err := h.svc.Register(r.Context(), service.RegisterRequest{
			Username:      in.Username,
			Email:         in.Email,
			Password:      in.Password,
			Role:          models.Role(in.Role),
			InstitutionID: in.InstitutionID,
			Department:    in.Department,
			PhoneNumber:   in.PhoneNumber,
		})
		if err != nil {
			utils.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.JSON(w, http.StatusCreated, map[string]any{
			"message": "registered; waiting for admin approval",
			"user":    u,
		})
	}
}

func (h *AuthHTTP) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		token, u, err := h.svc.Login(r.Context(), in.Username, in.Password)
		if err != nil {
			if errors.Is(err, service.ErrAccountNotApproved) {
				utils.Error(w, http.StatusForbidden, err.Error())
				return
			}
			utils.Error(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		// Issue httpOnly session cookie
		http.SetCookie(w, &http.Cookie{
			Name:     middleware.SessionCookie,
			Value:    token,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			// Set true behind HTTPS in prod
			Secure:  false,
			Expires: time.Now().Add(24 * time.Hour),
		})

		utils.JSON(w, http.StatusOK, map[string]any{
			"token": token,
			"user":  u,
		})
	}
}

func (h *AuthHTTP) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:     middleware.SessionCookie,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   -1,              // expire immediately
			Expires:  time.Unix(0, 0), // for older browsers
		})
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *AuthHTTP) Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := utils.GetString(r.Context(), middleware.CtxUserID)
		if !ok || uid == "" {
			utils.Error(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		u, err := h.users.GetByID(r.Context(), uid)
		if err != nil || u == nil {
			utils.Error(w, http.StatusNotFound, "user not found")
			return
		}
		utils.JSON(w, http.StatusOK, u)
	}
}
