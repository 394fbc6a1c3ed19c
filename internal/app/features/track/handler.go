// internal/app/features/track/handler.go

// Package track serves the email open-tracking pixel. The endpoint is
// public and unauthenticated; a broken or replayed URL must still get
// the image, so recording failures are logged and never surfaced.
package track

import (
	"context"
	"encoding/base64"
	"net/http"

	engagementstore "github.com/punxlabs/teampulse/internal/app/store/engagement"
	"github.com/punxlabs/teampulse/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// 1x1 transparent GIF.
const pixelB64 = "R0lGODlhAQABAIAAAAAAAP///yH5BAEAAAAALAAAAAABAAEAAAIBRAA7"

var pixelGIF = mustDecodePixel()

func mustDecodePixel() []byte {
	b, err := base64.StdEncoding.DecodeString(pixelB64)
	if err != nil {
		panic("track: bad pixel constant: " + err.Error())
	}
	return b
}

// Handler serves the tracking pixel and records opens.
type Handler struct {
	Engagement *engagementstore.Store
	Log        *zap.Logger
}

// NewHandler constructs a track Handler bound to the given database.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Engagement: engagementstore.New(db),
		Log:        logger,
	}
}

// ServePixel handles GET /track?id=…&eid=….
//
// The response is always 200 with the GIF and cache-disabling headers.
// Side effects run only when an employee id is present.
func (h *Handler) ServePixel(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	eid := r.URL.Query().Get("eid")

	if id != "" {
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
		defer cancel()
		if err := h.Engagement.RecordOpen(ctx, id, eid); err != nil {
			h.Log.Warn("track: record open failed",
				zap.String("employee_id", id),
				zap.String("event_id", eid),
				zap.Error(err),
			)
		}
	}

	w.Header().Set("Content-Type", "image/gif")
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, proxy-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pixelGIF)
}
