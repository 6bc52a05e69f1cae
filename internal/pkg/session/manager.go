package session

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campusflow/enroll/internal/pkg/apperrors"
)

// CookieName is the session id cookie
const CookieName = "enroll_session"

// Manager issues and resolves cookie-backed server sessions. The cookie only
// carries a random session id; the identity lives in the Store and the full
// user row is re-read per request by the auth middleware.
type Manager struct {
	store  Store
	ttl    time.Duration
	secure bool
}

// NewManager creates a session manager. secure marks the cookie Secure,
// which production mode should set.
func NewManager(store Store, ttl time.Duration, secure bool) *Manager {
	return &Manager{
		store:  store,
		ttl:    ttl,
		secure: secure,
	}
}

// Issue establishes a new server-side session for the user and sets the
// session cookie on the response. TTL is absolute: sessions are not renewed
// on use.
func (m *Manager) Issue(c *gin.Context, userID int64) error {
	id := uuid.New().String()
	if err := m.store.Save(c.Request.Context(), id, userID, m.ttl); err != nil {
		return err
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, id, int(m.ttl.Seconds()), "/", "", m.secure, true)
	return nil
}

// Resolve maps the request's session cookie to a user id
func (m *Manager) Resolve(c *gin.Context) (int64, error) {
	id, err := c.Cookie(CookieName)
	if err != nil || id == "" {
		return 0, apperrors.ErrSessionNotFound
	}
	return m.store.Get(c.Request.Context(), id)
}

// Destroy removes the server-side session and expires the cookie. Bearer
// tokens issued to the same user remain valid until they expire.
func (m *Manager) Destroy(c *gin.Context) error {
	id, err := c.Cookie(CookieName)
	if err == nil && id != "" {
		if err := m.store.Delete(c.Request.Context(), id); err != nil {
			return err
		}
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", m.secure, true)
	return nil
}

// Close releases the underlying store
func (m *Manager) Close() error {
	return m.store.Close()
}
