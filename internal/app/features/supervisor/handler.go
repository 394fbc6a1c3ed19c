// internal/app/features/supervisor/handler.go

// Package supervisor serves the dashboard API: roster management,
// employee detail with private notes, tag edits, and the permanent
// delete cascade.
package supervisor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	uierrors "github.com/punxlabs/teampulse/internal/app/features/errors"
	annotationstore "github.com/punxlabs/teampulse/internal/app/store/annotations"
	profilestore "github.com/punxlabs/teampulse/internal/app/store/profiles"
	rosterstore "github.com/punxlabs/teampulse/internal/app/store/rosters"
	"github.com/punxlabs/teampulse/internal/app/system/auditlog"
	"github.com/punxlabs/teampulse/internal/app/system/auth"
	"github.com/punxlabs/teampulse/internal/app/system/htmlsanitize"
	"github.com/punxlabs/teampulse/internal/app/system/normalize"
	"github.com/punxlabs/teampulse/internal/app/system/timeouts"
	"github.com/punxlabs/teampulse/internal/domain/catalog"
	"github.com/punxlabs/teampulse/internal/domain/models"
	"github.com/punxlabs/teampulse/internal/domain/tagset"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the supervisor dashboard handlers.
type Handler struct {
	Profiles    *profilestore.Store
	Annotations *annotationstore.Store
	Rosters     *rosterstore.Store
	Audit       *auditlog.Logger
	ErrLog      *uierrors.ErrorLogger
	Log         *zap.Logger
}

// NewHandler constructs a supervisor Handler bound to the given database.
func NewHandler(db *mongo.Database, audit *auditlog.Logger, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Profiles:    profilestore.New(db),
		Annotations: annotationstore.New(db),
		Rosters:     rosterstore.New(db),
		Audit:       audit,
		ErrLog:      errLog,
		Log:         logger,
	}
}

// ServeRoster handles GET /supervisor/roster.
func (h *Handler) ServeRoster(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	entries, err := h.Rosters.List(ctx, user.ID)
	if err != nil {
		h.ErrLog.Internal(w, r, "list roster", err)
		return
	}
	if entries == nil {
		entries = []models.RosterEntry{}
	}
	uierrors.JSON(w, http.StatusOK, entries)
}

// ServeEmployees handles GET /supervisor/employees: the global profile
// list used for quick-add browsing.
func (h *Handler) ServeEmployees(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	summaries, err := h.Profiles.ListAll(ctx)
	if err != nil {
		h.ErrLog.Internal(w, r, "list employees", err)
		return
	}
	if summaries == nil {
		summaries = []profilestore.Summary{}
	}
	uierrors.JSON(w, http.StatusOK, summaries)
}

// linkRequest is the POST /supervisor/roster body. Exactly one of Email
// (link by address) or EmployeeID (direct quick-add) must be set.
type linkRequest struct {
	Email      string `json:"email"`
	EmployeeID string `json:"employee_id"`
}

// HandleLink handles POST /supervisor/roster.
func (h *Handler) HandleLink(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)

	var req linkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.BadRequest(w, r, "invalid JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	var (
		p      *models.Profile
		err    error
		method string
	)
	switch {
	case req.EmployeeID != "":
		method = "direct"
		p, err = h.Profiles.GetByID(ctx, req.EmployeeID)
	case normalize.Email(req.Email) != "":
		method = "email"
		p, err = h.Profiles.FindByEmail(ctx, req.Email)
	default:
		h.ErrLog.BadRequest(w, r, "email or employee_id required")
		return
	}
	if errors.Is(err, profilestore.ErrNotFound) {
		h.ErrLog.NotFound(w, r, "no employee found")
		return
	}
	if err != nil {
		h.ErrLog.Internal(w, r, "look up employee for link", err)
		return
	}

	entry := models.RosterEntry{
		SupervisorID: user.ID,
		EmployeeID:   p.ID,
		Email:        p.Email,
		Name:         p.Name,
		Role:         p.Role,
		Team:         p.Team,
	}
	if err := h.Rosters.Link(ctx, entry); err != nil {
		h.ErrLog.Internal(w, r, "link employee", err)
		return
	}

	h.Audit.EmployeeLinked(ctx, r, user.ID, p.ID, method)
	uierrors.JSON(w, http.StatusOK, entry)
}

// HandleUnlink handles DELETE /supervisor/roster/{employeeID}. Only the
// roster entry goes away; the profile is untouched.
func (h *Handler) HandleUnlink(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)
	employeeID := chi.URLParam(r, "employeeID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err := h.Rosters.Unlink(ctx, user.ID, employeeID)
	if errors.Is(err, rosterstore.ErrNotFound) {
		h.ErrLog.NotFound(w, r, "roster entry not found")
		return
	}
	if err != nil {
		h.ErrLog.Internal(w, r, "unlink employee", err)
		return
	}

	h.Audit.EmployeeUnlinked(ctx, r, user.ID, employeeID)
	w.WriteHeader(http.StatusNoContent)
}

// detailView is the employee detail response: the profile, the caller's
// private notes, and the option lists for editing.
type detailView struct {
	models.Profile
	Notes   string      `json:"notes"`
	Options optionsView `json:"options"`
}

type optionsView struct {
	Roles      []string `json:"roles"`
	Skills     []string `json:"skills"`
	Challenges []string `json:"challenges"`
	Tools      []string `json:"tools"`
}

// ServeEmployeeDetail handles GET /supervisor/employees/{employeeID}.
func (h *Handler) ServeEmployeeDetail(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)
	employeeID := chi.URLParam(r, "employeeID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, err := h.Profiles.GetByID(ctx, employeeID)
	if errors.Is(err, profilestore.ErrNotFound) {
		h.ErrLog.NotFound(w, r, "profile not found")
		return
	}
	if err != nil {
		h.ErrLog.Internal(w, r, "load employee profile", err)
		return
	}

	a, err := h.Annotations.GetForSupervisor(ctx, employeeID, user.ID)
	if err != nil {
		h.ErrLog.Internal(w, r, "load annotation", err)
		return
	}

	view := detailView{
		Profile: *p,
		Notes:   a.Notes,
		Options: optionsView{
			Roles:      catalog.RolesFor(p.Team),
			Skills:     tagset.FromSelection(catalog.Skills(), p.Skills, catalog.MaxSkills).Options(),
			Challenges: tagset.FromSelection(catalog.Challenges(), p.Challenges, catalog.MaxChallenges).Options(),
			Tools:      tagset.FromSelection(catalog.ToolsFor(p.Team), p.Tools, catalog.MaxTools).Options(),
		},
	}
	uierrors.JSON(w, http.StatusOK, view)
}

// tagFieldRequest is the PUT body for a partial tag-field save. The
// submitted values replace the field wholesale; the client sends the
// array it wants stored.
type tagFieldRequest struct {
	Values []string `json:"values"`
}

func maxForField(field string) int {
	switch field {
	case "skills":
		return catalog.MaxSkills
	case "challenges":
		return catalog.MaxChallenges
	default:
		return catalog.MaxTools
	}
}

func catalogForField(field, team string) []string {
	switch field {
	case "skills":
		return catalog.Skills()
	case "challenges":
		return catalog.Challenges()
	default:
		return catalog.ToolsFor(team)
	}
}

// HandleSetTagField handles PUT /supervisor/employees/{employeeID}/tags/{field}.
func (h *Handler) HandleSetTagField(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)
	employeeID := chi.URLParam(r, "employeeID")
	field := chi.URLParam(r, "field")

	var req tagFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.BadRequest(w, r, "invalid JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, err := h.Profiles.GetByID(ctx, employeeID)
	if errors.Is(err, profilestore.ErrNotFound) {
		h.ErrLog.NotFound(w, r, "profile not found")
		return
	}
	if err != nil {
		h.ErrLog.Internal(w, r, "load employee profile", err)
		return
	}

	trimmed := make([]string, 0, len(req.Values))
	for _, v := range req.Values {
		if t := normalize.Tag(v); t != "" {
			trimmed = append(trimmed, t)
		}
	}
	values := tagset.FromSelection(catalogForField(field, p.Team), trimmed, maxForField(field)).Selected()

	err = h.Profiles.SetTagField(ctx, employeeID, field, values)
	if errors.Is(err, profilestore.ErrBadTagField) {
		h.ErrLog.BadRequest(w, r, err.Error())
		return
	}
	if errors.Is(err, profilestore.ErrNotFound) {
		h.ErrLog.NotFound(w, r, "profile not found")
		return
	}
	if err != nil {
		h.ErrLog.Internal(w, r, "set tag field", err)
		return
	}

	h.Audit.TagFieldUpdated(ctx, r, user.ID, employeeID, field, len(values))
	uierrors.JSON(w, http.StatusOK, map[string][]string{"values": values})
}

// notesRequest is the PUT body for saving private notes.
type notesRequest struct {
	Notes string `json:"notes"`
}

// HandleSaveNotes handles PUT /supervisor/employees/{employeeID}/notes.
func (h *Handler) HandleSaveNotes(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)
	employeeID := chi.URLParam(r, "employeeID")

	var req notesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.BadRequest(w, r, "invalid JSON body")
		return
	}

	notes := normalize.Notes(htmlsanitize.StripTags(req.Notes), catalog.MaxNotesLen)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	a, err := h.Annotations.Save(ctx, employeeID, user.ID, notes)
	if err != nil {
		h.ErrLog.Internal(w, r, "save annotation", err)
		return
	}

	h.Audit.NotesSaved(ctx, r, user.ID, employeeID)
	uierrors.JSON(w, http.StatusOK, a)
}

// HandlePurge handles DELETE /supervisor/employees/{employeeID}: the
// permanent delete cascade. It removes the profile, the annotation, and
// the caller's own roster entry. Other supervisors' roster entries are
// left behind; their listings will show an employee whose profile is
// gone.
func (h *Handler) HandlePurge(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)
	employeeID := chi.URLParam(r, "employeeID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	err := h.Profiles.Delete(ctx, employeeID)
	if errors.Is(err, profilestore.ErrNotFound) {
		h.ErrLog.NotFound(w, r, "profile not found")
		return
	}
	if err != nil {
		h.ErrLog.Internal(w, r, "delete profile", err)
		return
	}

	if err := h.Annotations.Delete(ctx, employeeID); err != nil {
		h.ErrLog.Internal(w, r, "delete annotation", err)
		return
	}
	if err := h.Rosters.Unlink(ctx, user.ID, employeeID); err != nil && !errors.Is(err, rosterstore.ErrNotFound) {
		h.ErrLog.Internal(w, r, "remove roster entry", err)
		return
	}

	h.Audit.ProfilePurged(ctx, r, user.ID, employeeID)
	w.WriteHeader(http.StatusNoContent)
}
