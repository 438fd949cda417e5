package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/models"
	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/repository"
	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountNotApproved = errors.New("account pending approval or deactivated")
)

type AuthService struct {
	users         repository.UserRepository
	sessionSecret string
}

func NewAuthService(users repository.UserRepository, sessionSecret string) *AuthService {
	return &AuthService{users: users, sessionSecret: sessionSecret}
}

type RegisterRequest struct {
	Username      string
	Email         string
	Password      string
	Role          models.Role
	InstitutionID string
	Department    string
	PhoneNumber   string
}

// Register creates an account pending admin approval. Self-registration
// may only pick the non-elevated roles; anything else falls back to
// student.
func (a *AuthService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" || len(req.Password) < 8 {
		return nil, errors.New("username, email and a password of at least 8 characters are required")
	}

	role := req.Role
	if role != models.RoleResearcher {
		role = models.RoleStudent
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	return a.users.Create(ctx, &models.User{
		Username:      req.Username,
		Email:         req.Email,
		Role:          role,
		InstitutionID: strings.TrimSpace(req.InstitutionID),
		Department:    strings.TrimSpace(req.Department),
		PhoneNumber:   strings.TrimSpace(req.PhoneNumber),
	}, hash)
}

// Login authenticates and issues a session token. Unapproved or inactive
// accounts are rejected even with a valid password.
func (a *AuthService) Login(ctx context.Context, username, password string) (token string, user *models.User, err error) {
	u, hash, err := a.users.GetByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}
	if u == nil {
		return "", nil, ErrInvalidCredentials
	}
	if !utils.CheckPassword(hash, password) {
		return "", nil, ErrInvalidCredentials
	}
	if !u.Approved || !u.Active {
		return "", nil, ErrAccountNotApproved
	}
	tok, err := utils.SignJWT(a.sessionSecret, u.ID, string(u.Role), 24*time.Hour)
	if err != nil {
		return "", nil, err
	}
	return tok, u, nil
}
