package profilestore_test

import (
	"errors"
	"testing"
	"time"

	profilestore "github.com/punxlabs/teampulse/internal/app/store/profiles"
	"github.com/punxlabs/teampulse/internal/domain/models"
	"github.com/punxlabs/teampulse/internal/testutil"
)

func TestStore_Save_RoundTrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := profilestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := models.Profile{
		ID:         "emp-1",
		Email:      "Jane@Example.com ",
		Name:       "  Jane Doe ",
		Team:       "Design & Creatives",
		Role:       "AI Artist",
		Cadence:    "weekly",
		Skills:     []string{"AI Prompting", "Communication"},
		Challenges: []string{"Time management"},
		Tools:      []string{"MidJourney"},
	}
	saved, err := store.Save(ctx, p)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if saved.Email != "jane@example.com" {
		t.Errorf("expected normalized email, got %q", saved.Email)
	}
	if saved.Name != "Jane Doe" {
		t.Errorf("expected trimmed name, got %q", saved.Name)
	}
	if saved.UpdatedAt.IsZero() {
		t.Error("expected updated_at to be set")
	}

	got, err := store.GetByID(ctx, "emp-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Team != p.Team || got.Role != p.Role {
		t.Errorf("round trip lost team/role: %+v", got)
	}
	if len(got.Skills) != 2 || got.Skills[0] != "AI Prompting" {
		t.Errorf("round trip lost skills: %v", got.Skills)
	}
}

func TestStore_Save_PreservesBookkeeping(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := profilestore.New(db)
	fix := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	fix.InsertProfile(ctx, models.Profile{
		ID:    "emp-1",
		Email: "jane@example.com",
		Name:  "Jane Doe",
		EmailHistory: map[string]models.EmailOpen{
			"evt-1": {Status: models.EmailStatusOpened, OpenCount: 2},
		},
		Metrics:      models.EngagementMetrics{TotalEmailsOpened: 2},
		LastActiveAt: &now,
	})

	_, err := store.Save(ctx, models.Profile{
		ID:    "emp-1",
		Email: "jane@example.com",
		Name:  "Jane Doe",
		Team:  "Content",
	})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.GetByID(ctx, "emp-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Metrics.TotalEmailsOpened != 2 {
		t.Errorf("resubmit clobbered metrics: %d", got.Metrics.TotalEmailsOpened)
	}
	if got.EmailHistory["evt-1"].OpenCount != 2 {
		t.Errorf("resubmit clobbered email history: %+v", got.EmailHistory)
	}
	if got.LastActiveAt == nil {
		t.Error("resubmit clobbered last_active_at")
	}
	if got.Team != "Content" {
		t.Errorf("expected team updated, got %q", got.Team)
	}
}

func TestStore_SetTagField(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := profilestore.New(db)
	fix := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := fix.CreateProfile(ctx, "emp-1", "jane@example.com", "Jane Doe", "Content", "Copywriter")
	before, err := store.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}

	if err := store.SetTagField(ctx, p.ID, "skills", []string{"Leadership", "AI Prompting"}); err != nil {
		t.Fatalf("SetTagField failed: %v", err)
	}

	got, err := store.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.Skills) != 2 || got.Skills[0] != "Leadership" {
		t.Errorf("unexpected skills: %v", got.Skills)
	}
	if !got.UpdatedAt.Equal(before.UpdatedAt) {
		t.Error("partial field save must not touch updated_at")
	}
}

func TestStore_SetTagField_BadField(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := profilestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := store.SetTagField(ctx, "emp-1", "notes", []string{"x"})
	if !errors.Is(err, profilestore.ErrBadTagField) {
		t.Fatalf("expected ErrBadTagField, got %v", err)
	}
}

func TestStore_SetTagField_MissingProfile(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := profilestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := store.SetTagField(ctx, "nope", "skills", []string{"x"})
	if !errors.Is(err, profilestore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_FindByEmail_Normalizes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := profilestore.New(db)
	fix := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// Stored as entered, with case and whitespace intact.
	fix.InsertProfile(ctx, models.Profile{ID: "emp-1", Email: " Jane@Example.COM", Name: "Jane Doe"})
	fix.CreateProfile(ctx, "emp-2", "other@example.com", "Other", "", "")

	got, err := store.FindByEmail(ctx, "jane@example.com ")
	if err != nil {
		t.Fatalf("FindByEmail failed: %v", err)
	}
	if got.ID != "emp-1" {
		t.Errorf("expected emp-1, got %q", got.ID)
	}

	if _, err := store.FindByEmail(ctx, "missing@example.com"); !errors.Is(err, profilestore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_ListAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := profilestore.New(db)
	fix := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fix.CreateProfile(ctx, "emp-1", "b@example.com", "Bob", "Content", "Copywriter")
	fix.CreateProfile(ctx, "emp-2", "a@example.com", "Alice", "Tech", "")

	got, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(got))
	}
	if got[0].Name != "Alice" || got[1].Name != "Bob" {
		t.Errorf("expected name sort, got %v", got)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := profilestore.New(db)
	fix := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fix.CreateProfile(ctx, "emp-1", "jane@example.com", "Jane Doe", "", "")

	if err := store.Delete(ctx, "emp-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.GetByID(ctx, "emp-1"); !errors.Is(err, profilestore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := store.Delete(ctx, "emp-1"); !errors.Is(err, profilestore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
