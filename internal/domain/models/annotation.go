// internal/domain/models/annotation.go
package models

import "time"

// Annotation is a supervisor's private notes about one employee. Exactly one
// document per employee, keyed by employee id, stored separately from the
// Profile so employees never read it.
//
// Ownership is a single field: saving notes overwrites the whole document,
// including AssignedSupervisor. A second supervisor's save silently takes
// ownership; there is no merge or conflict detection.
type Annotation struct {
	EmployeeID         string    `bson:"_id" json:"employee_id"`
	Notes              string    `bson:"notes" json:"notes"`
	AssignedSupervisor string    `bson:"assigned_supervisor" json:"assigned_supervisor"`
	UpdatedAt          time.Time `bson:"updated_at" json:"updated_at"`
}
