// Package workers holds background loops started at app startup.
package workers

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	engagementstore "github.com/punxlabs/teampulse/internal/app/store/engagement"
	"github.com/punxlabs/teampulse/internal/app/system/auditlog"
	"github.com/punxlabs/teampulse/internal/app/system/mailer"
	"github.com/punxlabs/teampulse/internal/domain/models"
)

// EmailSender delivers one email. *mailer.Sender satisfies it.
type EmailSender interface {
	Send(ctx context.Context, email mailer.Email) error
}

// Digest is a background worker that mails periodic check-in emails to
// employees whose cadence interval has elapsed, each carrying a unique
// tracking pixel.
type Digest struct {
	engagement *engagementstore.Store
	sender     EmailSender
	audit      *auditlog.Logger
	log        *zap.Logger

	siteName string
	baseURL  string
	interval time.Duration

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewDigest creates the digest worker. interval is how often the due
// check runs; sends themselves are paced by each profile's cadence.
func NewDigest(engagement *engagementstore.Store, sender EmailSender, audit *auditlog.Logger, logger *zap.Logger, siteName, baseURL string, interval time.Duration) *Digest {
	return &Digest{
		engagement: engagement,
		sender:     sender,
		audit:      audit,
		log:        logger,
		siteName:   siteName,
		baseURL:    baseURL,
		interval:   interval,
		stopCh:     make(chan struct{}),
	}
}

// Start begins the background send loop.
func (w *Digest) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("digest worker started", zap.Duration("interval", w.interval))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *Digest) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("digest worker stopped")
}

func (w *Digest) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			w.RunOnce(ctx, time.Now())
			cancel()
		}
	}
}

// RunOnce sends every digest due as of now and returns the number of
// emails delivered. Failures are logged per profile and do not stop
// the batch.
func (w *Digest) RunOnce(ctx context.Context, now time.Time) int {
	due, err := w.engagement.DueForDigest(ctx, now)
	if err != nil {
		w.log.Error("listing due digests", zap.Error(err))
		return 0
	}

	sent := 0
	for i := range due {
		if err := w.sendOne(ctx, &due[i]); err != nil {
			w.log.Error("sending digest",
				zap.String("employee_id", due[i].ID),
				zap.Error(err))
			continue
		}
		sent++
	}

	if sent > 0 {
		w.log.Info("digest batch complete",
			zap.Int("due", len(due)),
			zap.Int("sent", sent))
	}
	return sent
}

func (w *Digest) sendOne(ctx context.Context, p *models.Profile) error {
	eventID := mailer.NewEventID()

	email := mailer.BuildDigestEmail(mailer.DigestData{
		SiteName:      w.siteName,
		RecipientName: p.Name,
		Cadence:       p.Cadence,
		ProfileURL:    w.baseURL + "/assessment/profile",
		PixelURL:      mailer.PixelURL(w.baseURL, p.ID, eventID),
	})
	email.To = p.Email
	if err := w.sender.Send(ctx, email); err != nil {
		return err
	}

	// The send bookkeeping is written after delivery; if it fails the
	// next run re-sends, which beats silently losing a check-in.
	if err := w.engagement.RecordSend(ctx, p.ID, eventID); err != nil {
		return err
	}

	w.audit.DigestSent(ctx, p.ID, eventID)
	return nil
}
