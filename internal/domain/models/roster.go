// internal/domain/models/roster.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RosterEntry is the join between a supervisor and an employee they have
// linked. Exactly one document per (supervisor_id, employee_id).
//
// The entry carries a denormalized summary (email, name, role, team) so
// roster listings never fan out to profile reads; the Profile remains the
// source of truth for content, the roster only for visibility.
type RosterEntry struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SupervisorID string             `bson:"supervisor_id" json:"supervisor_id"`
	EmployeeID   string             `bson:"employee_id" json:"employee_id"`
	Email        string             `bson:"email" json:"email"`
	Name         string             `bson:"name" json:"name"`
	Role         string             `bson:"role,omitempty" json:"role,omitempty"`
	Team         string             `bson:"team,omitempty" json:"team,omitempty"`
	LinkedAt     time.Time          `bson:"linked_at" json:"linked_at"`
}
