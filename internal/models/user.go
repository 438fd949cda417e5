package models

import "time"

// Role is the closed set of account roles. Scope decisions key off this
// type rather than branching on raw strings at call sites.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleLabManager Role = "lab_manager"
	RoleResearcher Role = "researcher"
	RoleStudent    Role = "student"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleLabManager, RoleResearcher, RoleStudent:
		return true
	}
	return false
}

// Elevated reports whether the role may see and mutate records it does
// not own.
func (r Role) Elevated() bool {
	return r == RoleSuperAdmin || r == RoleLabManager
}

type User struct {
	ID                string    `json:"id"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	Role              Role      `json:"role"`
	InstitutionID     string    `json:"institutionId,omitempty"`
	Department        string    `json:"department,omitempty"`
	PhoneNumber       string    `json:"phoneNumber,omitempty"`
	Approved          bool      `json:"approved"`
	Active            bool      `json:"active"`
	TrainingCompleted bool      `json:"trainingCompleted"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}
