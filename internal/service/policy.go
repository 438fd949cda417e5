package service

import "github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/models"

// Scope is what an actor may see or mutate within a resource.
type Scope int

const (
	ScopeNone Scope = iota // no access
	ScopeOwn               // records where record.user == actor
	ScopeAll               // unrestricted
)

// Resource names the record kinds the policy covers.
type Resource int

const (
	ResourceReservation Resource = iota
	ResourceMaintenanceLog
)

// ScopeFor maps (role, resource) to a visibility scope. The same scope
// gates reads and mutations: an actor may only touch a record it can see.
func ScopeFor(role models.Role, res Resource) Scope {
	switch res {
	case ResourceReservation:
		if role.Elevated() {
			return ScopeAll
		}
		return ScopeOwn
	case ResourceMaintenanceLog:
		if role.Elevated() {
			return ScopeAll
		}
		return ScopeNone
	}
	return ScopeNone
}

// Permits reports whether the scope admits a record owned by ownerID
// when the actor is actorID.
func (s Scope) Permits(actorID, ownerID string) bool {
	switch s {
	case ScopeAll:
		return true
	case ScopeOwn:
		return actorID != "" && actorID == ownerID
	}
	return false
}

// CanCreateMaintenanceLog restricts maintenance log creation to elevated
// roles.
func CanCreateMaintenanceLog(role models.Role) bool {
	return role.Elevated()
}
