// Package authgoogle implements sign-in with Google via OAuth2.
//
// Google is the identity source: the subject id returned by the
// userinfo endpoint becomes the employee id used across the app, and
// the role is derived from the configured supervisor email list.
package authgoogle

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/punxlabs/teampulse/internal/app/features/errors"
	"github.com/punxlabs/teampulse/internal/app/store/oauthstate"
	"github.com/punxlabs/teampulse/internal/app/system/auditlog"
	"github.com/punxlabs/teampulse/internal/app/system/auth"
	"github.com/punxlabs/teampulse/internal/app/system/normalize"
	"github.com/punxlabs/teampulse/internal/app/system/timeouts"
)

const (
	stateTTL        = 10 * time.Minute
	userInfoURL     = "https://www.googleapis.com/oauth2/v2/userinfo"
	employeeHome    = "/assessment/profile"
	supervisorHome  = "/supervisor/roster"
	signInErrorPath = "/?error="
)

// Handler runs the Google OAuth2 login and callback endpoints.
type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	ErrLog     *errors.ErrorLogger
	Audit      *auditlog.Logger
	States     *oauthstate.Store

	clientID     string
	clientSecret string
	redirectURL  string
	supervisors  map[string]bool
}

// NewHandler wires the OAuth2 flow. baseURL is the externally visible
// origin; the Google console must list baseURL+"/auth/google/callback"
// as an authorized redirect URI. supervisorEmails grants the
// supervisor role to matching accounts.
func NewHandler(states *oauthstate.Store, sessionMgr *auth.SessionManager, audit *auditlog.Logger, errLog *errors.ErrorLogger, clientID, clientSecret, baseURL string, supervisorEmails []string, logger *zap.Logger) *Handler {
	sup := make(map[string]bool, len(supervisorEmails))
	for _, e := range supervisorEmails {
		if e = normalize.Email(e); e != "" {
			sup[e] = true
		}
	}
	return &Handler{
		Log:          logger,
		SessionMgr:   sessionMgr,
		ErrLog:       errLog,
		Audit:        audit,
		States:       states,
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURL:  strings.TrimRight(baseURL, "/") + "/auth/google/callback",
		supervisors:  sup,
	}
}

// IsConfigured reports whether Google credentials are present.
func (h *Handler) IsConfigured() bool {
	return h.clientID != "" && h.clientSecret != ""
}

func (h *Handler) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.clientID,
		ClientSecret: h.clientSecret,
		RedirectURL:  h.redirectURL,
		Endpoint:     google.Endpoint,
		Scopes: []string{
			"openid",
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
	}
}

// ServeLogin starts the OAuth2 round trip: it stores a one-time state
// token and sends the browser to Google's consent screen.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if !h.IsConfigured() {
		h.Log.Warn("google sign-in requested but not configured")
		http.Redirect(w, r, signInErrorPath+"google_not_configured", http.StatusSeeOther)
		return
	}

	state, err := generateState()
	if err != nil {
		h.ErrLog.Internal(w, r, "generate oauth state", err)
		return
	}

	returnURL := safeReturnURL(r.URL.Query().Get("return"))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()
	if err := h.States.Save(ctx, state, returnURL, stateTTL); err != nil {
		h.ErrLog.Internal(w, r, "save oauth state", err)
		return
	}

	http.Redirect(w, r, h.oauthConfig().AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// googleUser is the subset of the userinfo response we use.
type googleUser struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
}

// ServeCallback completes the OAuth2 round trip: it validates the
// state token, exchanges the code, fetches the Google profile and
// signs the user in with a role based on the supervisor email list.
func (h *Handler) ServeCallback(w http.ResponseWriter, r *http.Request) {
	if errCode := r.URL.Query().Get("error"); errCode != "" {
		h.Log.Info("google sign-in denied", zap.String("error", errCode))
		http.Redirect(w, r, signInErrorPath+"google_denied", http.StatusSeeOther)
		return
	}

	state := r.URL.Query().Get("state")
	code := r.URL.Query().Get("code")
	if state == "" || code == "" {
		http.Redirect(w, r, signInErrorPath+"google_invalid_callback", http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	st, err := h.States.Validate(ctx, state)
	if err != nil {
		h.Log.Warn("oauth state validation failed", zap.Error(err))
		http.Redirect(w, r, signInErrorPath+"google_state_invalid", http.StatusSeeOther)
		return
	}

	cfg := h.oauthConfig()
	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		h.Log.Warn("oauth code exchange failed", zap.Error(err))
		http.Redirect(w, r, signInErrorPath+"google_exchange_failed", http.StatusSeeOther)
		return
	}

	gu, err := fetchGoogleUser(ctx, cfg, token)
	if err != nil {
		h.Log.Warn("fetching google userinfo failed", zap.Error(err))
		http.Redirect(w, r, signInErrorPath+"google_userinfo_failed", http.StatusSeeOther)
		return
	}
	if gu.ID == "" || gu.Email == "" || !gu.VerifiedEmail {
		h.Log.Warn("google userinfo missing id or verified email",
			zap.String("google_id", gu.ID))
		http.Redirect(w, r, signInErrorPath+"google_account_invalid", http.StatusSeeOther)
		return
	}

	email := normalize.Email(gu.Email)
	role := auth.RoleEmployee
	if h.supervisors[email] {
		role = auth.RoleSupervisor
	}

	// A stale cookie signed with a rotated key fails to decode; the
	// session layer hands back a fresh session, so sign-in still works.
	if _, serr := h.SessionMgr.GetSession(r); serr != nil {
		var scErr securecookie.Error
		if stderrors.As(serr, &scErr) && scErr.IsDecode() {
			h.Log.Debug("replacing undecodable session cookie")
		} else {
			h.Log.Warn("reading session during sign-in", zap.Error(serr))
		}
	}

	user := auth.SessionUser{
		ID:    gu.ID,
		Name:  normalize.Name(gu.Name),
		Email: email,
		Role:  role,
	}
	if err := h.SessionMgr.SignIn(w, r, user); err != nil {
		h.ErrLog.Internal(w, r, "save session", err)
		return
	}

	h.Audit.SignedIn(ctx, r, user.ID, user.Email, user.Role)

	dest := st.ReturnURL
	if dest == "" {
		dest = employeeHome
		if role == auth.RoleSupervisor {
			dest = supervisorHome
		}
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

// fetchGoogleUser calls the userinfo endpoint with the fresh token.
func fetchGoogleUser(ctx context.Context, cfg *oauth2.Config, token *oauth2.Token) (*googleUser, error) {
	client := cfg.Client(ctx, token)
	resp, err := client.Get(userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("requesting userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("userinfo returned %d: %s", resp.StatusCode, body)
	}

	var gu googleUser
	if err := json.NewDecoder(resp.Body).Decode(&gu); err != nil {
		return nil, fmt.Errorf("decoding userinfo: %w", err)
	}
	return &gu, nil
}

// generateState returns a URL-safe random token.
func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// safeReturnURL only allows same-site relative paths, so the callback
// can never bounce a user to another origin.
func safeReturnURL(s string) string {
	if s == "" || !strings.HasPrefix(s, "/") || strings.HasPrefix(s, "//") {
		return ""
	}
	return s
}
