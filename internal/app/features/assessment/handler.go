// internal/app/features/assessment/handler.go

// Package assessment serves the employee self-assessment: reading the
// own profile with its option catalogs, and the full submit.
package assessment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	uierrors "github.com/punxlabs/teampulse/internal/app/features/errors"
	profilestore "github.com/punxlabs/teampulse/internal/app/store/profiles"
	"github.com/punxlabs/teampulse/internal/app/system/auditlog"
	"github.com/punxlabs/teampulse/internal/app/system/auth"
	"github.com/punxlabs/teampulse/internal/app/system/htmlsanitize"
	"github.com/punxlabs/teampulse/internal/app/system/normalize"
	"github.com/punxlabs/teampulse/internal/app/system/timeouts"
	"github.com/punxlabs/teampulse/internal/domain/catalog"
	"github.com/punxlabs/teampulse/internal/domain/models"
	"github.com/punxlabs/teampulse/internal/domain/tagset"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the assessment endpoints.
type Handler struct {
	Profiles *profilestore.Store
	Audit    *auditlog.Logger
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger
}

// NewHandler constructs an assessment Handler bound to the given database.
func NewHandler(db *mongo.Database, audit *auditlog.Logger, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Profiles: profilestore.New(db),
		Audit:    audit,
		ErrLog:   errLog,
		Log:      logger,
	}
}

// optionsView carries the render-order option lists for the form:
// catalog entries first, then the profile's custom entries.
type optionsView struct {
	Teams              []string `json:"teams"`
	Roles              []string `json:"roles"`
	Cadences           []string `json:"cadences"`
	Skills             []string `json:"skills"`
	Challenges         []string `json:"challenges"`
	Tools              []string `json:"tools"`
	MotivationalStyles []string `json:"motivational_styles"`
	LearningStyles     []string `json:"learning_styles"`
}

// profileView is the GET response: the record plus its option lists.
type profileView struct {
	models.Profile
	Options optionsView `json:"options"`
}

func buildOptions(p *models.Profile) optionsView {
	skills := tagset.FromSelection(catalog.Skills(), p.Skills, catalog.MaxSkills)
	challenges := tagset.FromSelection(catalog.Challenges(), p.Challenges, catalog.MaxChallenges)
	tools := tagset.FromSelection(catalog.ToolsFor(p.Team), p.Tools, catalog.MaxTools)

	return optionsView{
		Teams:              catalog.Teams(),
		Roles:              catalog.RolesFor(p.Team),
		Cadences:           catalog.Cadences(),
		Skills:             skills.Options(),
		Challenges:         challenges.Options(),
		Tools:              tools.Options(),
		MotivationalStyles: catalog.MotivationalStyles(),
		LearningStyles:     catalog.LearningStyles(),
	}
}

// ServeProfile handles GET /assessment/profile.
func (h *Handler) ServeProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		h.ErrLog.Unauthorized(w, r)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Profiles.GetByID(ctx, user.ID)
	if errors.Is(err, profilestore.ErrNotFound) {
		h.ErrLog.NotFound(w, r, "profile not found")
		return
	}
	if err != nil {
		h.ErrLog.Internal(w, r, "load own profile", err)
		return
	}

	uierrors.JSON(w, http.StatusOK, profileView{Profile: *p, Options: buildOptions(p)})
}

// submitRequest is the POST body for a full self-assessment submit.
// Identity comes from the session; the name may be overridden, the
// email and id may not.
type submitRequest struct {
	Name              string   `json:"name"`
	Team              string   `json:"team"`
	Role              string   `json:"role"`
	Cadence           string   `json:"cadence"`
	Skills            []string `json:"skills_self"`
	Challenges        []string `json:"challenges"`
	Tools             []string `json:"tools_interest"`
	MotivationalStyle string   `json:"motivational_style"`
	LearningStyle     string   `json:"learning_style"`
	AdditionalNotes   string   `json:"additional_notes"`
}

// HandleSubmit handles POST /assessment/profile.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		h.ErrLog.Unauthorized(w, r)
		return
	}

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.BadRequest(w, r, "invalid JSON body")
		return
	}

	if req.Team != "" && !catalog.ValidTeam(req.Team) {
		h.ErrLog.BadRequest(w, r, "unknown team")
		return
	}
	if !catalog.ValidCadence(req.Cadence) {
		h.ErrLog.BadRequest(w, r, "unknown cadence")
		return
	}
	if !catalog.ValidMotivationalStyle(req.MotivationalStyle) {
		h.ErrLog.BadRequest(w, r, "unknown motivational style")
		return
	}
	if !catalog.ValidLearningStyle(req.LearningStyle) {
		h.ErrLog.BadRequest(w, r, "unknown learning style")
		return
	}

	// The role must belong to the submitted team's catalog; a stale role
	// from a previous team is cleared, not rejected.
	role := req.Role
	if !catalog.ValidRole(req.Team, role) {
		role = ""
	}

	name := normalize.Name(req.Name)
	if name == "" {
		name = user.Name
	}

	p := models.Profile{
		ID:                user.ID,
		Email:             user.Email,
		Name:              name,
		Team:              req.Team,
		Role:              role,
		Cadence:           req.Cadence,
		Skills:            cleanTags(catalog.Skills(), req.Skills, catalog.MaxSkills),
		Challenges:        cleanTags(catalog.Challenges(), req.Challenges, catalog.MaxChallenges),
		Tools:             cleanTags(catalog.ToolsFor(req.Team), req.Tools, catalog.MaxTools),
		MotivationalStyle: req.MotivationalStyle,
		LearningStyle:     req.LearningStyle,
		AdditionalNotes:   normalize.Notes(htmlsanitize.StripTags(req.AdditionalNotes), catalog.MaxNotesLen),
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	saved, err := h.Profiles.Save(ctx, p)
	if err != nil {
		h.ErrLog.Internal(w, r, "save profile", err)
		return
	}

	h.Audit.ProfileSubmitted(ctx, r, user.ID)
	uierrors.JSON(w, http.StatusOK, saved)
}

// cleanTags trims entries, drops empties and duplicates, and truncates
// to the field's cap through the tag set model.
func cleanTags(cat, submitted []string, max int) []string {
	trimmed := make([]string, 0, len(submitted))
	for _, v := range submitted {
		if t := normalize.Tag(v); t != "" {
			trimmed = append(trimmed, t)
		}
	}
	return tagset.FromSelection(cat, trimmed, max).Selected()
}
