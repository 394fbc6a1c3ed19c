package rosterstore_test

import (
	"errors"
	"testing"

	rosterstore "github.com/punxlabs/teampulse/internal/app/store/rosters"
	"github.com/punxlabs/teampulse/internal/domain/models"
	"github.com/punxlabs/teampulse/internal/testutil"
)

func TestStore_Link_And_List(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := rosterstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes failed: %v", err)
	}

	entries := []models.RosterEntry{
		{SupervisorID: "sup-1", EmployeeID: "emp-1", Email: "b@example.com", Name: "Bob"},
		{SupervisorID: "sup-1", EmployeeID: "emp-2", Email: "a@example.com", Name: "Alice"},
		{SupervisorID: "sup-2", EmployeeID: "emp-1", Email: "b@example.com", Name: "Bob"},
	}
	for _, e := range entries {
		if err := store.Link(ctx, e); err != nil {
			t.Fatalf("Link failed: %v", err)
		}
	}

	got, err := store.List(ctx, "sup-1")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries for sup-1, got %d", len(got))
	}
	if got[0].Name != "Alice" || got[1].Name != "Bob" {
		t.Errorf("expected name sort, got %v", got)
	}
	if got[0].LinkedAt.IsZero() {
		t.Error("expected linked_at to be set")
	}
}

func TestStore_Link_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := rosterstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes failed: %v", err)
	}

	e := models.RosterEntry{SupervisorID: "sup-1", EmployeeID: "emp-1", Email: "jane@example.com", Name: "Jane"}
	if err := store.Link(ctx, e); err != nil {
		t.Fatalf("first Link failed: %v", err)
	}
	first, err := store.List(ctx, "sup-1")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	// Relink with updated denormalized fields.
	e.Name = "Jane Doe"
	if err := store.Link(ctx, e); err != nil {
		t.Fatalf("second Link failed: %v", err)
	}

	got, err := store.List(ctx, "sup-1")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 entry after relink, got %d", len(got))
	}
	if got[0].Name != "Jane Doe" {
		t.Errorf("expected refreshed name, got %q", got[0].Name)
	}
	if !got[0].LinkedAt.Equal(first[0].LinkedAt) {
		t.Error("relink must keep the original linked_at")
	}
}

func TestStore_Unlink(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := rosterstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	e := models.RosterEntry{SupervisorID: "sup-1", EmployeeID: "emp-1", Email: "jane@example.com", Name: "Jane"}
	if err := store.Link(ctx, e); err != nil {
		t.Fatalf("Link failed: %v", err)
	}

	if err := store.Unlink(ctx, "sup-1", "emp-1"); err != nil {
		t.Fatalf("Unlink failed: %v", err)
	}
	if err := store.Unlink(ctx, "sup-1", "emp-1"); !errors.Is(err, rosterstore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second unlink, got %v", err)
	}
}

func TestStore_IsLinked(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := rosterstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	linked, err := store.IsLinked(ctx, "sup-1", "emp-1")
	if err != nil {
		t.Fatalf("IsLinked failed: %v", err)
	}
	if linked {
		t.Error("expected not linked")
	}

	e := models.RosterEntry{SupervisorID: "sup-1", EmployeeID: "emp-1", Email: "jane@example.com", Name: "Jane"}
	if err := store.Link(ctx, e); err != nil {
		t.Fatalf("Link failed: %v", err)
	}

	linked, err = store.IsLinked(ctx, "sup-1", "emp-1")
	if err != nil {
		t.Fatalf("IsLinked failed: %v", err)
	}
	if !linked {
		t.Error("expected linked")
	}
}
