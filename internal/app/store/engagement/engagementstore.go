// Package engagementstore records email sends and pixel opens against
// profile documents. It shares the employee_inputs collection with the
// profile store but only ever touches the bookkeeping subtrees.
package engagementstore

import (
	"context"
	"errors"
	"time"

	"github.com/punxlabs/teampulse/internal/domain/catalog"
	"github.com/punxlabs/teampulse/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no profile exists for the given employee.
var ErrNotFound = errors.New("profile not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("employee_inputs")}
}

// RecordSend registers a pending digest send under email_history.{eventID}
// and stamps last_digest_at, which drives the next due-date calculation.
func (s *Store) RecordSend(ctx context.Context, employeeID, eventID string) error {
	now := time.Now().UTC()
	field := "email_history." + eventID
	res, err := s.c.UpdateByID(ctx, employeeID, bson.M{"$set": bson.M{
		field: models.EmailOpen{
			Status: models.EmailStatusSent,
			SentAt: &now,
		},
		"last_digest_at": now,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DueForDigest returns profiles whose check-in email is due as of now.
// A profile is due when it has an email address and either has never
// received a digest or its cadence interval has elapsed since the last
// one. The weekly interval is 7 days and bi-weekly is 14.
func (s *Store) DueForDigest(ctx context.Context, now time.Time) ([]models.Profile, error) {
	now = now.UTC()
	filter := bson.M{
		"email": bson.M{"$nin": bson.A{"", nil}},
		"$or": bson.A{
			bson.M{"last_digest_at": bson.M{"$exists": false}},
			bson.M{
				"cadence":        catalog.CadenceWeekly,
				"last_digest_at": bson.M{"$lte": now.Add(-7 * 24 * time.Hour)},
			},
			bson.M{
				"cadence":        catalog.CadenceBiweekly,
				"last_digest_at": bson.M{"$lte": now.Add(-14 * 24 * time.Hour)},
			},
		},
	}

	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var due []models.Profile
	if err := cur.All(ctx, &due); err != nil {
		return nil, err
	}
	return due, nil
}

// RecordOpen applies the side effects of a tracking-pixel hit.
//
// With an event ID, the matching email_history entry is marked opened
// and its open count incremented; the profile-wide open total only moves
// when the entry was not already opened, so repeat opens of one email
// count once. Without an event ID the total always moves. Either way
// last_active_at is refreshed.
//
// The prior-status read and the write are separate operations; two
// simultaneous first opens can double-count the total. The metric is
// best effort.
func (s *Store) RecordOpen(ctx context.Context, employeeID, eventID string) error {
	now := time.Now().UTC()

	if eventID == "" {
		res, err := s.c.UpdateByID(ctx, employeeID, bson.M{
			"$inc": bson.M{"metrics.total_emails_opened": 1},
			"$set": bson.M{"last_active_at": now},
		})
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			return ErrNotFound
		}
		return nil
	}

	field := "email_history." + eventID

	var doc struct {
		EmailHistory map[string]models.EmailOpen `bson:"email_history"`
	}
	err := s.c.FindOne(ctx, bson.M{"_id": employeeID},
		options.FindOne().SetProjection(bson.M{field + ".status": 1}),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	prior := doc.EmailHistory[eventID].Status

	inc := bson.M{field + ".open_count": 1}
	if prior != models.EmailStatusOpened {
		inc["metrics.total_emails_opened"] = 1
	}
	update := bson.M{
		"$set": bson.M{
			field + ".status":    models.EmailStatusOpened,
			field + ".opened_at": now,
			"last_active_at":     now,
		},
		"$inc": inc,
	}
	res, err := s.c.UpdateByID(ctx, employeeID, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
