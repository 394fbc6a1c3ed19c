package workers_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	engagementstore "github.com/punxlabs/teampulse/internal/app/store/engagement"
	profilestore "github.com/punxlabs/teampulse/internal/app/store/profiles"
	"github.com/punxlabs/teampulse/internal/app/system/mailer"
	"github.com/punxlabs/teampulse/internal/app/system/workers"
	"github.com/punxlabs/teampulse/internal/domain/models"
	"github.com/punxlabs/teampulse/internal/testutil"
)

type fakeSender struct {
	sent []mailer.Email
	err  error
}

func (f *fakeSender) Send(_ context.Context, email mailer.Email) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, email)
	return nil
}

func TestRunOnceSendsDueDigests(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateProfile(ctx, "emp-1", "one@example.com", "One", "Design & Creatives", "AI Artist")

	sender := &fakeSender{}
	w := workers.NewDigest(engagementstore.New(db), sender, nil, zap.NewNop(),
		"TeamPulse", "https://pulse.example.com", time.Hour)

	if n := w.RunOnce(ctx, time.Now()); n != 1 {
		t.Fatalf("sent = %d, want 1", n)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("delivered = %d, want 1", len(sender.sent))
	}

	email := sender.sent[0]
	if email.To != "one@example.com" {
		t.Errorf("To = %q", email.To)
	}
	if !strings.Contains(email.HTMLBody, "https://pulse.example.com/track?") {
		t.Errorf("HTML body missing tracking pixel: %q", email.HTMLBody)
	}

	p, err := profilestore.New(db).GetByID(ctx, "emp-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if p.LastDigestAt == nil {
		t.Fatal("last_digest_at not stamped")
	}
	if len(p.EmailHistory) != 1 {
		t.Fatalf("email_history entries = %d, want 1", len(p.EmailHistory))
	}
	for _, open := range p.EmailHistory {
		if open.Status != models.EmailStatusSent {
			t.Errorf("status = %q, want sent", open.Status)
		}
		if open.SentAt == nil {
			t.Error("sent_at not set")
		}
	}

	// Just-sent profiles are not due again.
	if n := w.RunOnce(ctx, time.Now()); n != 0 {
		t.Errorf("second run sent = %d, want 0", n)
	}
}

func TestRunOnceRespectsCadence(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateProfile(ctx, "emp-due", "due@example.com", "Due", "Content", "Production Lead")
	fx.CreateProfile(ctx, "emp-recent", "recent@example.com", "Recent", "Content", "Production Lead")

	sender := &fakeSender{}
	eng := engagementstore.New(db)
	w := workers.NewDigest(eng, sender, nil, zap.NewNop(),
		"TeamPulse", "https://pulse.example.com", time.Hour)

	// Both get an initial digest; an immediate rerun finds nothing due.
	if n := w.RunOnce(ctx, time.Now()); n != 2 {
		t.Fatalf("initial run sent = %d, want 2", n)
	}
	if n := w.RunOnce(ctx, time.Now()); n != 0 {
		t.Fatalf("immediate rerun sent = %d, want 0", n)
	}

	// After the weekly interval both are due again.
	if n := w.RunOnce(ctx, time.Now().Add(8*24*time.Hour)); n != 2 {
		t.Errorf("run a week later sent = %d, want 2", n)
	}
}

func TestRunOnceSenderFailure(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateProfile(ctx, "emp-1", "one@example.com", "One", "Content", "AI Artist")

	sender := &fakeSender{err: errors.New("smtp down")}
	w := workers.NewDigest(engagementstore.New(db), sender, nil, zap.NewNop(),
		"TeamPulse", "https://pulse.example.com", time.Hour)

	if n := w.RunOnce(ctx, time.Now()); n != 0 {
		t.Fatalf("sent = %d, want 0", n)
	}

	// No send bookkeeping means the next run retries.
	p, err := profilestore.New(db).GetByID(ctx, "emp-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if p.LastDigestAt != nil {
		t.Error("last_digest_at stamped despite failed delivery")
	}
	if len(p.EmailHistory) != 0 {
		t.Errorf("email_history entries = %d, want 0", len(p.EmailHistory))
	}
}
