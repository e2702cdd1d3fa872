package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// Permission names match the auth provider's org-role grants.
const (
	PermissionJobListingsCreate        = "job_listings:create"
	PermissionJobListingsUpdate        = "job_listings:update"
	PermissionJobListingsDelete        = "job_listings:delete"
	PermissionJobListingsChangeStatus  = "job_listings:change_status"
	PermissionApplicationsChangeRating = "job_listings_applications:change_rating"
	PermissionApplicationsChangeStage  = "job_listings_applications:change_stage"
)

// Session is the identity the request boundary resolves once and threads
// down explicitly. OrgID is empty when the caller has no active organization.
type Session struct {
	UserID      string
	OrgID       string
	Permissions []string
}

// HasPermission reports whether the session holds a capability against its
// current organization context.
func (s *Session) HasPermission(permission string) bool {
	if s == nil {
		return false
	}
	for _, p := range s.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// TokenVerifier turns a bearer token into a Session. In production this is
// the auth provider's SDK; tests and local dev use StaticTokenVerifier.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Session, error)
}

// StaticTokenVerifier resolves sessions from a local JSON file keyed by
// token. Same pattern as the Gmail credential files: a file next to the
// binary for local dev instead of a SaaS round trip.
type StaticTokenVerifier struct {
	sessions map[string]*Session
}

type staticSessionEntry struct {
	UserID      string   `json:"user_id"`
	OrgID       string   `json:"org_id"`
	Permissions []string `json:"permissions"`
}

// NewStaticTokenVerifier loads AUTH_TOKENS_FILE (default auth_tokens.json).
func NewStaticTokenVerifier() (*StaticTokenVerifier, error) {
	path := os.Getenv("AUTH_TOKENS_FILE")
	if path == "" {
		path = "auth_tokens.json"
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]staticSessionEntry
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, err
	}

	sessions := make(map[string]*Session, len(raw))
	for token, e := range raw {
		sessions[token] = &Session{
			UserID:      e.UserID,
			OrgID:       e.OrgID,
			Permissions: e.Permissions,
		}
	}
	return &StaticTokenVerifier{sessions: sessions}, nil
}

var errUnknownToken = &TokenError{"unknown token"}

// TokenError reports a token the verifier could not resolve.
type TokenError struct{ msg string }

func (e *TokenError) Error() string { return e.msg }

func (v *StaticTokenVerifier) Verify(_ context.Context, token string) (*Session, error) {
	sess, ok := v.sessions[token]
	if !ok {
		return nil, errUnknownToken
	}
	return sess, nil
}

const sessionKey = "auth.session"

// RequireSession is gin middleware that resolves the bearer token once per
// request and stashes the Session for handlers.
func RequireSession(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "You need an account to do this"})
			return
		}

		sess, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "You need an account to do this"})
			return
		}

		c.Set(sessionKey, sess)
		c.Next()
	}
}

// SessionFrom returns the session resolved by RequireSession, or nil on
// routes that skipped the middleware.
func SessionFrom(c *gin.Context) *Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*Session)
	return sess
}
