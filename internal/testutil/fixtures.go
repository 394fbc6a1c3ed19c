package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/punxlabs/teampulse/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateProfile inserts a minimal profile document and returns it.
func (f *Fixtures) CreateProfile(ctx context.Context, id, email, name, team, role string) models.Profile {
	f.t.Helper()

	p := models.Profile{
		ID:         id,
		Email:      email,
		Name:       name,
		Team:       team,
		Role:       role,
		Cadence:    "weekly",
		Skills:     []string{},
		Challenges: []string{},
		Tools:      []string{},
		UpdatedAt:  time.Now().UTC(),
	}
	if _, err := f.db.Collection("employee_inputs").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("create profile fixture: %v", err)
	}
	return p
}

// InsertProfile inserts a fully specified profile document.
func (f *Fixtures) InsertProfile(ctx context.Context, p models.Profile) models.Profile {
	f.t.Helper()

	if _, err := f.db.Collection("employee_inputs").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("insert profile fixture: %v", err)
	}
	return p
}

// LinkEmployee inserts a roster entry tying the employee to the supervisor.
func (f *Fixtures) LinkEmployee(ctx context.Context, supervisorID string, p models.Profile) models.RosterEntry {
	f.t.Helper()

	e := models.RosterEntry{
		SupervisorID: supervisorID,
		EmployeeID:   p.ID,
		Email:        p.Email,
		Name:         p.Name,
		Role:         p.Role,
		Team:         p.Team,
		LinkedAt:     time.Now().UTC(),
	}
	if _, err := f.db.Collection("supervisor_rosters").InsertOne(ctx, e); err != nil {
		f.t.Fatalf("link employee fixture: %v", err)
	}
	return e
}

// CreateAnnotation inserts an annotation document for the employee.
func (f *Fixtures) CreateAnnotation(ctx context.Context, employeeID, supervisorID, notes string) models.Annotation {
	f.t.Helper()

	a := models.Annotation{
		EmployeeID:         employeeID,
		Notes:              notes,
		AssignedSupervisor: supervisorID,
		UpdatedAt:          time.Now().UTC(),
	}
	if _, err := f.db.Collection("admin_data").InsertOne(ctx, a); err != nil {
		f.t.Fatalf("create annotation fixture: %v", err)
	}
	return a
}
