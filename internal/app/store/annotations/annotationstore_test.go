package annotationstore_test

import (
	"testing"

	annotationstore "github.com/punxlabs/teampulse/internal/app/store/annotations"
	"github.com/punxlabs/teampulse/internal/testutil"
)

func TestStore_GetForSupervisor_Missing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := annotationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	got, err := store.GetForSupervisor(ctx, "emp-1", "sup-1")
	if err != nil {
		t.Fatalf("GetForSupervisor failed: %v", err)
	}
	if got.Notes != "" {
		t.Errorf("expected empty notes for missing annotation, got %q", got.Notes)
	}
	if got.EmployeeID != "emp-1" {
		t.Errorf("expected employee id carried through, got %q", got.EmployeeID)
	}
}

func TestStore_Save_And_Get(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := annotationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	saved, err := store.Save(ctx, "emp-1", "sup-1", "strong quarter")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if saved.AssignedSupervisor != "sup-1" {
		t.Errorf("expected ownership assigned, got %q", saved.AssignedSupervisor)
	}
	if saved.UpdatedAt.IsZero() {
		t.Error("expected updated_at to be set")
	}

	got, err := store.GetForSupervisor(ctx, "emp-1", "sup-1")
	if err != nil {
		t.Fatalf("GetForSupervisor failed: %v", err)
	}
	if got.Notes != "strong quarter" {
		t.Errorf("expected own notes visible, got %q", got.Notes)
	}
}

func TestStore_GetForSupervisor_MasksOtherOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := annotationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Save(ctx, "emp-1", "sup-1", "private to sup-1"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.GetForSupervisor(ctx, "emp-1", "sup-2")
	if err != nil {
		t.Fatalf("GetForSupervisor failed: %v", err)
	}
	if got.Notes != "" {
		t.Errorf("expected masked notes for non-owner, got %q", got.Notes)
	}
}

func TestStore_Save_TransfersOwnership(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := annotationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Save(ctx, "emp-1", "sup-1", "original"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	// A second supervisor saving overwrites wholesale and takes ownership.
	if _, err := store.Save(ctx, "emp-1", "sup-2", "replacement"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.GetForSupervisor(ctx, "emp-1", "sup-2")
	if err != nil {
		t.Fatalf("GetForSupervisor failed: %v", err)
	}
	if got.Notes != "replacement" {
		t.Errorf("expected new owner to see replacement, got %q", got.Notes)
	}

	masked, err := store.GetForSupervisor(ctx, "emp-1", "sup-1")
	if err != nil {
		t.Fatalf("GetForSupervisor failed: %v", err)
	}
	if masked.Notes != "" {
		t.Errorf("expected prior owner masked, got %q", masked.Notes)
	}
}

func TestStore_Delete_Tolerant(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := annotationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.Delete(ctx, "emp-1"); err != nil {
		t.Fatalf("Delete of missing annotation must not fail: %v", err)
	}

	if _, err := store.Save(ctx, "emp-1", "sup-1", "notes"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Delete(ctx, "emp-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	got, err := store.GetForSupervisor(ctx, "emp-1", "sup-1")
	if err != nil {
		t.Fatalf("GetForSupervisor failed: %v", err)
	}
	if got.Notes != "" {
		t.Errorf("expected empty notes after delete, got %q", got.Notes)
	}
}
