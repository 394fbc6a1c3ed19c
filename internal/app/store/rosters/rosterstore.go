package rosterstore

import (
	"context"
	"errors"
	"time"

	"github.com/punxlabs/teampulse/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when a roster entry does not exist.
var ErrNotFound = errors.New("roster entry not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("supervisor_rosters")}
}

// EnsureIndexes creates the compound unique index that makes linking
// idempotent per (supervisor, employee) pair.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "supervisor_id", Value: 1},
				{Key: "employee_id", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "supervisor_id", Value: 1}, {Key: "name", Value: 1}},
		},
	})
	return err
}

// Link upserts a roster entry. Relinking an already-linked employee
// refreshes the denormalized fields and keeps the original linked_at.
func (s *Store) Link(ctx context.Context, e models.RosterEntry) error {
	filter := bson.M{
		"supervisor_id": e.SupervisorID,
		"employee_id":   e.EmployeeID,
	}
	linkedAt := e.LinkedAt
	if linkedAt.IsZero() {
		linkedAt = time.Now().UTC()
	}
	update := bson.M{
		"$set": bson.M{
			"email": e.Email,
			"name":  e.Name,
			"role":  e.Role,
			"team":  e.Team,
		},
		"$setOnInsert": bson.M{
			"supervisor_id": e.SupervisorID,
			"employee_id":   e.EmployeeID,
			"linked_at":     linkedAt,
		},
	}
	_, err := s.c.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// Unlink removes one roster entry. The employee's profile and any other
// supervisors' entries are untouched.
func (s *Store) Unlink(ctx context.Context, supervisorID, employeeID string) error {
	res, err := s.c.DeleteOne(ctx, bson.M{
		"supervisor_id": supervisorID,
		"employee_id":   employeeID,
	})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns a supervisor's linked employees sorted by name.
func (s *Store) List(ctx context.Context, supervisorID string) ([]models.RosterEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"supervisor_id": supervisorID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.RosterEntry
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// IsLinked reports whether the supervisor has the employee on their
// roster.
func (s *Store) IsLinked(ctx context.Context, supervisorID, employeeID string) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{
		"supervisor_id": supervisorID,
		"employee_id":   employeeID,
	}, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
