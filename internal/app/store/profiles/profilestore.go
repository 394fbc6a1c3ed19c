package profilestore

import (
	"context"
	"errors"
	"time"

	"github.com/punxlabs/teampulse/internal/app/system/normalize"
	"github.com/punxlabs/teampulse/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrNotFound is returned when no profile exists for the given employee.
	ErrNotFound = errors.New("profile not found")
	// ErrBadTagField is returned for a tag field name outside the known set.
	ErrBadTagField = errors.New(`tag field must be "skills"|"challenges"|"tools"`)
)

// tagFields maps API field names to their document fields.
var tagFields = map[string]string{
	"skills":     "skills_self",
	"challenges": "challenges",
	"tools":      "tools_interest",
}

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("employee_inputs")}
}

// GetByID loads a profile by employee ID.
func (s *Store) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	var p models.Profile
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Save writes a full self-assessment submit. Only the assessment fields
// are overwritten; email_history, metrics, and last_active_at survive a
// resubmit. Sets updated_at. Creates the document on first submit.
func (s *Store) Save(ctx context.Context, p models.Profile) (models.Profile, error) {
	p.Email = normalize.Email(p.Email)
	p.Name = normalize.Name(p.Name)
	p.UpdatedAt = time.Now().UTC()

	update := bson.M{"$set": bson.M{
		"email":              p.Email,
		"name":               p.Name,
		"role":               p.Role,
		"team":               p.Team,
		"cadence":            p.Cadence,
		"skills_self":        p.Skills,
		"challenges":         p.Challenges,
		"tools_interest":     p.Tools,
		"motivational_style": p.MotivationalStyle,
		"learning_style":     p.LearningStyle,
		"additional_notes":   p.AdditionalNotes,
		"updated_at":         p.UpdatedAt,
	}}
	opts := options.Update().SetUpsert(true)
	if _, err := s.c.UpdateByID(ctx, p.ID, update, opts); err != nil {
		return models.Profile{}, err
	}
	return p, nil
}

// SetTagField overwrites exactly one tag array on the profile. It does
// not touch updated_at; that timestamp tracks the employee's own
// submissions only.
func (s *Store) SetTagField(ctx context.Context, id, field string, values []string) error {
	docField, ok := tagFields[field]
	if !ok {
		return ErrBadTagField
	}
	if values == nil {
		values = []string{}
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{docField: values}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// FindByEmail scans all profiles comparing normalized addresses and
// returns the first match. Emails are stored as entered, so an indexed
// equality lookup would miss case or whitespace variants.
func (s *Store) FindByEmail(ctx context.Context, email string) (*models.Profile, error) {
	want := normalize.Email(email)
	if want == "" {
		return nil, ErrNotFound
	}

	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var p models.Profile
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		if normalize.Email(p.Email) == want {
			return &p, nil
		}
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return nil, ErrNotFound
}

// Summary is the projection used for roster browsing.
type Summary struct {
	ID    string `bson:"_id" json:"id"`
	Email string `bson:"email" json:"email"`
	Name  string `bson:"name" json:"name"`
	Role  string `bson:"role,omitempty" json:"role,omitempty"`
	Team  string `bson:"team,omitempty" json:"team,omitempty"`
}

// ListAll returns a summary of every profile, sorted by name.
func (s *Store) ListAll(ctx context.Context) ([]Summary, error) {
	opts := options.Find().
		SetProjection(bson.M{"email": 1, "name": 1, "role": 1, "team": 1}).
		SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []Summary
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a profile permanently.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
