// internal/domain/models/profile.go
package models

import "time"

// Email engagement status values stored in Profile.EmailHistory.
const (
	EmailStatusSent   = "sent"
	EmailStatusOpened = "opened"
)

// Profile is the per-employee aggregate of submitted assessment answers plus
// engagement bookkeeping.
//
// NOTE:
//   - The document id is the opaque employee id issued by the identity
//     provider, not an ObjectID.
//   - Tag fields (skills/challenges/tools) store the selected values only;
//     custom entries are derived on load as selection minus catalog.
//   - EmailHistory, Metrics and LastActiveAt are written by the tracking
//     pixel and the mailer, never by form submission.
type Profile struct {
	ID    string `bson:"_id" json:"id"`
	Email string `bson:"email" json:"email"`
	Name  string `bson:"name" json:"name"`

	Role    string `bson:"role" json:"role"`
	Team    string `bson:"team" json:"team"`
	Cadence string `bson:"cadence" json:"cadence"`

	Skills     []string `bson:"skills_self" json:"skills_self"`
	Challenges []string `bson:"challenges" json:"challenges"`
	Tools      []string `bson:"tools_interest" json:"tools_interest"`

	MotivationalStyle string `bson:"motivational_style" json:"motivational_style"`
	LearningStyle     string `bson:"learning_style" json:"learning_style"`
	AdditionalNotes   string `bson:"additional_notes" json:"additional_notes"`

	// UpdatedAt is refreshed on full submission only. Supervisor partial
	// field edits deliberately leave it untouched.
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`

	EmailHistory map[string]EmailOpen `bson:"email_history,omitempty" json:"email_history,omitempty"`
	Metrics      EngagementMetrics    `bson:"metrics,omitempty" json:"metrics"`
	LastActiveAt *time.Time           `bson:"last_active_at,omitempty" json:"last_active_at,omitempty"`
	LastDigestAt *time.Time           `bson:"last_digest_at,omitempty" json:"last_digest_at,omitempty"`
}

// EmailOpen tracks one sent digest email and its opens.
type EmailOpen struct {
	Status    string     `bson:"status" json:"status"`
	SentAt    *time.Time `bson:"sent_at,omitempty" json:"sent_at,omitempty"`
	OpenedAt  *time.Time `bson:"opened_at,omitempty" json:"opened_at,omitempty"`
	OpenCount int64      `bson:"open_count" json:"open_count"`
}

// EngagementMetrics holds profile-level engagement counters.
type EngagementMetrics struct {
	// TotalEmailsOpened counts unique email opens. Best effort: a duplicate
	// open racing the status check can double-count.
	TotalEmailsOpened int64 `bson:"total_emails_opened" json:"total_emails_opened"`
}
