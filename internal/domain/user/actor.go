package user

import "github.com/google/uuid"

// Actor carries the caller identity and role into domain operations, so
// permission checks never depend on ambient session state.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

func NewActor(id uuid.UUID, role Role) Actor {
	return Actor{ID: id, Role: role}
}

func (a Actor) IsAdmin() bool {
	return a.Role.IsAdmin()
}

func (a Actor) Owns(ownerID uuid.UUID) bool {
	return a.ID == ownerID
}
