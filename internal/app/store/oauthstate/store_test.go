package oauthstate_test

import (
	"errors"
	"testing"
	"time"

	"github.com/punxlabs/teampulse/internal/app/store/oauthstate"
	"github.com/punxlabs/teampulse/internal/testutil"
)

func TestSaveAndValidate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := oauthstate.New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.Save(ctx, "tok-abc", "/supervisor/roster", 10*time.Minute); err != nil {
		t.Fatalf("Save: %v", err)
	}

	st, err := store.Validate(ctx, "tok-abc")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if st.ReturnURL != "/supervisor/roster" {
		t.Errorf("ReturnURL = %q, want /supervisor/roster", st.ReturnURL)
	}
}

func TestValidateIsSingleUse(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := oauthstate.New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.Save(ctx, "tok-once", "", 10*time.Minute); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if _, err := store.Validate(ctx, "tok-once"); err != nil {
		t.Fatalf("first Validate: %v", err)
	}
	if _, err := store.Validate(ctx, "tok-once"); !errors.Is(err, oauthstate.ErrNotFound) {
		t.Errorf("second Validate err = %v, want ErrNotFound", err)
	}
}

func TestValidateUnknown(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := oauthstate.New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Validate(ctx, "never-saved"); !errors.Is(err, oauthstate.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestValidateExpired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := oauthstate.New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.Save(ctx, "tok-old", "", -time.Minute); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := store.Validate(ctx, "tok-old"); !errors.Is(err, oauthstate.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestCleanupExpired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := oauthstate.New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.Save(ctx, "tok-stale", "", -time.Minute); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save(ctx, "tok-fresh", "", 10*time.Minute); err != nil {
		t.Fatalf("Save: %v", err)
	}

	n, err := store.CleanupExpired(ctx)
	if err != nil {
		t.Fatalf("CleanupExpired: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted = %d, want 1", n)
	}

	if _, err := store.Validate(ctx, "tok-fresh"); err != nil {
		t.Errorf("fresh token should survive cleanup: %v", err)
	}
}
