package annotationstore

import (
	"context"
	"errors"
	"time"

	"github.com/punxlabs/teampulse/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("admin_data")}
}

// GetForSupervisor loads the annotation for an employee as seen by the
// given supervisor. A missing document, or one assigned to a different
// supervisor, comes back with empty notes rather than an error; notes
// are private to whoever saved them last.
func (s *Store) GetForSupervisor(ctx context.Context, employeeID, supervisorID string) (*models.Annotation, error) {
	var a models.Annotation
	err := s.c.FindOne(ctx, bson.M{"_id": employeeID}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return &models.Annotation{EmployeeID: employeeID}, nil
	}
	if err != nil {
		return nil, err
	}
	if a.AssignedSupervisor != "" && a.AssignedSupervisor != supervisorID {
		return &models.Annotation{EmployeeID: employeeID}, nil
	}
	return &a, nil
}

// Save overwrites the annotation wholesale and reassigns ownership to
// the saving supervisor. Last write wins.
func (s *Store) Save(ctx context.Context, employeeID, supervisorID, notes string) (models.Annotation, error) {
	a := models.Annotation{
		EmployeeID:         employeeID,
		Notes:              notes,
		AssignedSupervisor: supervisorID,
		UpdatedAt:          time.Now().UTC(),
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.c.ReplaceOne(ctx, bson.M{"_id": employeeID}, a, opts); err != nil {
		return models.Annotation{}, err
	}
	return a, nil
}

// Delete removes the annotation. Deleting a missing annotation is not an
// error; the purge cascade calls this unconditionally.
func (s *Store) Delete(ctx context.Context, employeeID string) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": employeeID})
	return err
}
