package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusflow/enroll/internal/pkg/apperrors"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "sid-1", 17, time.Minute))

	userID, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, int64(17), userID)

	require.NoError(t, store.Delete(ctx, "sid-1"))
	_, err = store.Get(ctx, "sid-1")
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "sid-ttl", 3, -time.Second))

	_, err := store.Get(ctx, "sid-ttl")
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestMemoryStoreUnknownID(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get(context.Background(), "never-saved")
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestNewStoreDefaultsToMemory(t *testing.T) {
	store, err := NewStore("")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)
}

func TestNewStoreRejectsBadRedisURL(t *testing.T) {
	_, err := NewStore("not-a-redis-url")
	assert.Error(t, err)
}

func newTestContext(t *testing.T, req *http.Request) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = req
	return c, recorder
}

func TestManagerIssueAndResolve(t *testing.T) {
	manager := NewManager(NewMemoryStore(), time.Hour, false)

	issueCtx, recorder := newTestContext(t, httptest.NewRequest(http.MethodPost, "/login", nil))
	require.NoError(t, manager.Issue(issueCtx, 99))

	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, CookieName, cookie.Name)
	assert.True(t, cookie.HttpOnly)
	assert.NotEmpty(t, cookie.Value)

	resolveReq := httptest.NewRequest(http.MethodGet, "/user", nil)
	resolveReq.AddCookie(cookie)
	resolveCtx, _ := newTestContext(t, resolveReq)

	userID, err := manager.Resolve(resolveCtx)
	require.NoError(t, err)
	assert.Equal(t, int64(99), userID)
}

func TestManagerResolveWithoutCookie(t *testing.T) {
	manager := NewManager(NewMemoryStore(), time.Hour, false)

	c, _ := newTestContext(t, httptest.NewRequest(http.MethodGet, "/user", nil))
	_, err := manager.Resolve(c)
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestManagerDestroy(t *testing.T) {
	store := NewMemoryStore()
	manager := NewManager(store, time.Hour, false)

	issueCtx, recorder := newTestContext(t, httptest.NewRequest(http.MethodPost, "/login", nil))
	require.NoError(t, manager.Issue(issueCtx, 5))
	cookie := recorder.Result().Cookies()[0]

	destroyReq := httptest.NewRequest(http.MethodPost, "/logout", nil)
	destroyReq.AddCookie(cookie)
	destroyCtx, destroyRecorder := newTestContext(t, destroyReq)
	require.NoError(t, manager.Destroy(destroyCtx))

	// Server-side record is gone.
	_, err := store.Get(context.Background(), cookie.Value)
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)

	// Cookie is expired on the response.
	expired := destroyRecorder.Result().Cookies()
	require.Len(t, expired, 1)
	assert.True(t, expired[0].MaxAge < 0)
}
