package track_test

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/punxlabs/teampulse/internal/app/features/track"
	profilestore "github.com/punxlabs/teampulse/internal/app/store/profiles"
	"github.com/punxlabs/teampulse/internal/domain/models"
	"github.com/punxlabs/teampulse/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const wantPixel = "R0lGODlhAQABAIAAAAAAAP///yH5BAEAAAAALAAAAAABAAEAAAIBRAA7"

func assertPixelResponse(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/gif" {
		t.Errorf("Content-Type: got %q, want image/gif", ct)
	}
	if cc := rec.Header().Get("Cache-Control"); cc != "no-store, no-cache, must-revalidate, proxy-revalidate" {
		t.Errorf("Cache-Control: got %q", cc)
	}
	if p := rec.Header().Get("Pragma"); p != "no-cache" {
		t.Errorf("Pragma: got %q", p)
	}
	if e := rec.Header().Get("Expires"); e != "0" {
		t.Errorf("Expires: got %q", e)
	}
	if got := base64.StdEncoding.EncodeToString(rec.Body.Bytes()); got != wantPixel {
		t.Errorf("body is not the expected GIF: %q", got)
	}
}

// unreachableDB returns a database handle whose operations fail fast.
// The client does not dial until an operation runs, so this needs no
// running MongoDB.
func unreachableDB(t *testing.T) *mongo.Database {
	t.Helper()

	opts := options.Client().
		ApplyURI("mongodb://127.0.0.1:1").
		SetServerSelectionTimeout(100 * time.Millisecond)
	client, err := mongo.Connect(context.Background(), opts)
	if err != nil {
		t.Fatalf("build client: %v", err)
	}
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })
	return client.Database("teampulse_unreachable")
}

func TestServePixel_NoID_NoSideEffects(t *testing.T) {
	h := track.NewHandler(unreachableDB(t), zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/track", nil)
	rec := httptest.NewRecorder()
	h.ServePixel(rec, req)

	assertPixelResponse(t, rec)
}

func TestServePixel_StoreFailure_StillServesPixel(t *testing.T) {
	h := track.NewHandler(unreachableDB(t), zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/track?id=emp-1&eid=evt-1", nil)
	rec := httptest.NewRecorder()
	h.ServePixel(rec, req)

	assertPixelResponse(t, rec)
}

func TestServePixel_RecordsOpen(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fix := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fix.CreateProfile(ctx, "emp-1", "jane@example.com", "Jane", "", "")

	h := track.NewHandler(db, zap.NewNop())
	req := httptest.NewRequest(http.MethodGet, "/track?id=emp-1&eid=evt-1", nil)
	rec := httptest.NewRecorder()
	h.ServePixel(rec, req)

	assertPixelResponse(t, rec)

	got, err := profilestore.New(db).GetByID(ctx, "emp-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.EmailHistory["evt-1"].Status != models.EmailStatusOpened {
		t.Errorf("expected open recorded, got %+v", got.EmailHistory)
	}
	if got.Metrics.TotalEmailsOpened != 1 {
		t.Errorf("expected total 1, got %d", got.Metrics.TotalEmailsOpened)
	}
	if got.LastActiveAt == nil {
		t.Error("expected last_active_at set")
	}
}
